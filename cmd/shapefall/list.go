package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/shapefall/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available modes",
	Long:  `Shows every registered puzzle mode with the name 'play' accepts.`,
	Args:  cobra.NoArgs,
	RunE:  runList,
}

// modeAliases maps registered IDs back to their short play names.
var modeAliases = map[string]string{
	classicID: "classic",
	endlessID: "endless",
}

func runList(_ *cobra.Command, _ []string) error {
	games := registry.List()
	if len(games) == 0 {
		fmt.Println("No modes available.")
		return nil
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("240"))).
		Headers("MODE", "ID", "TITLE", "ABOUT").
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return lipgloss.NewStyle().Bold(true).Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		})

	for _, g := range games {
		var about string
		if game, err := registry.Create(g.ID); err == nil {
			if d, ok := game.(registry.Describer); ok {
				about = d.Description()
			}
		}
		name := modeAliases[g.ID]
		if name == "" {
			name = g.ID
		}
		t.Row(name, g.ID, g.Title, about)
	}

	fmt.Println(t)
	fmt.Println()
	fmt.Println("Run 'shapefall play <mode>' to start.")
	return nil
}
