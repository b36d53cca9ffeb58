package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ConfigFile is the file name looked up in the config directories.
const ConfigFile = "candy.yaml"

// LoadCandy loads the candy configuration.
// Search order: customPath -> ~/.candy/configs/candy.yaml -> ./configs/candy.yaml -> embedded default.
// Files only need the keys they change; the rest keep their defaults.
// A custom path that cannot be read, parsed or validated is an error; other
// locations are skipped when unusable.
func LoadCandy(customPath string) (CandyConfig, error) {
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return CandyConfig{}, fmt.Errorf("config: read %s: %w", customPath, err)
		}
		cfg, err := Parse(data)
		if err != nil {
			return CandyConfig{}, fmt.Errorf("config: %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath(ConfigFile); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := Parse(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", ConfigFile)); err == nil {
		if cfg, err := Parse(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := Parse(defaultCandyYAML)
	if err != nil {
		return DefaultCandyConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// Parse decodes YAML on top of the hard-coded defaults and validates the result.
func Parse(data []byte) (CandyConfig, error) {
	cfg := DefaultCandyConfig()
	// Replace rather than merge list values.
	cfg.Scoring.Tiers = nil
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return CandyConfig{}, fmt.Errorf("parse yaml: %w", err)
	}
	if cfg.Scoring.Tiers == nil {
		cfg.Scoring.Tiers = DefaultCandyConfig().Scoring.Tiers
	}
	if err := Validate(cfg); err != nil {
		return CandyConfig{}, err
	}
	return cfg, nil
}

// Marshal encodes cfg as YAML. Used to snapshot the effective configuration
// into the session journal.
func Marshal(cfg CandyConfig) ([]byte, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("config: marshal: %w", err)
	}
	return data, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".candy", "configs", filename)
}
