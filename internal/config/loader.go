package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the configuration file looked up in the search directories.
const FileName = "shapefall.yaml"

// Load loads the Shapefall configuration.
// Search order: customPath -> ~/.shapefall/configs/shapefall.yaml -> ./configs/shapefall.yaml -> embedded default
// Files found in the search directories are layered over the defaults, so
// they only need the keys they change.
func Load(customPath string) (ShapefallConfig, error) {
	cfg := embeddedDefault()

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, cfg.Validate()
	}

	// Try user config directory
	if userCfgPath := userConfigPath(FileName); userCfgPath != "" {
		if loaded, ok := tryFile(userCfgPath, cfg); ok {
			return loaded, nil
		}
	}

	// Try local configs directory
	if loaded, ok := tryFile(filepath.Join("configs", FileName), cfg); ok {
		return loaded, nil
	}

	return cfg, nil
}

// tryFile layers the file at path over base. Unreadable, malformed or
// invalid files are skipped.
func tryFile(path string, base ShapefallConfig) (ShapefallConfig, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return base, false
	}
	cfg := base
	cfg.Tiles.Palette = append([]string(nil), base.Tiles.Palette...)
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return base, false
	}
	if cfg.Validate() != nil {
		return base, false
	}
	return cfg, true
}

func embeddedDefault() ShapefallConfig {
	var cfg ShapefallConfig
	if err := yaml.Unmarshal(defaultShapefallYAML, &cfg); err != nil || cfg.Validate() != nil {
		return DefaultShapefallConfig() // Fallback to hardcoded if embed fails
	}
	return cfg
}

// Marshal renders cfg as YAML, as printed by `shapefall config`.
func Marshal(cfg ShapefallConfig) ([]byte, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to encode config: %w", err)
	}
	return data, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".shapefall", "configs", filename)
}
