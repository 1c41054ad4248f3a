package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/shapefall/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long: `Print the configuration shapefall would play with, after applying
--config and --difficulty, as YAML. Redirect it into
~/.shapefall/configs/shapefall.yaml to start customizing.

Examples:
  shapefall config
  shapefall config --difficulty hard > ~/.shapefall/configs/shapefall.yaml`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

func runConfig(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	data, err := config.Marshal(cfg)
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(data)
	if err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
