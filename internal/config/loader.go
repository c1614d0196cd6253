package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// Output formats understood by the command
var validFormats = map[string]bool{
	"json": true,
	"html": true,
	"text": true,
}

// LoadConfig loads configuration from a YAML or JSON file
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()

	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse YAML config: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse JSON config: %w", err)
		}
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			if err := json.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config (tried YAML and JSON): %w", err)
			}
		}
	}

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// ValidateConfig validates the configuration for consistency.
// Format is lowercased in place.
func ValidateConfig(cfg *Config) error {
	if cfg.Extraction.CharThreshold < 0 {
		return fmt.Errorf("extraction.charThreshold must be >= 0")
	}
	if cfg.Extraction.MaxElemsToParse < 0 {
		return fmt.Errorf("extraction.maxElemsToParse must be >= 0")
	}
	if cfg.Extraction.NbTopCandidates < 1 {
		return fmt.Errorf("extraction.nbTopCandidates must be >= 1")
	}
	if cfg.Extraction.Timeout < 0 {
		return fmt.Errorf("extraction.timeout must be >= 0")
	}
	if cfg.Extraction.VideoRegex != "" {
		if _, err := regexp.Compile(cfg.Extraction.VideoRegex); err != nil {
			return fmt.Errorf("extraction.videoRegex: %w", err)
		}
	}

	cfg.Output.Format = strings.ToLower(cfg.Output.Format)
	if !validFormats[cfg.Output.Format] {
		return fmt.Errorf("unknown output format: %s (valid: json, html, text)", cfg.Output.Format)
	}

	if cfg.Workers < 1 {
		return fmt.Errorf("workers must be >= 1")
	}

	return nil
}

// SaveConfig saves the configuration to a file
func SaveConfig(cfg *Config, path string) error {
	ext := strings.ToLower(filepath.Ext(path))

	var data []byte
	var err error

	switch ext {
	case ".json":
		data, err = json.MarshalIndent(cfg, "", "  ")
	default:
		data, err = yaml.Marshal(cfg)
	}

	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
