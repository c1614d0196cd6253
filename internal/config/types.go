// Package config provides configuration types and loading functionality
// for the readerview command.
package config

import "time"

// Config is the root configuration structure
type Config struct {
	Extraction ExtractionConfig `yaml:"extraction" json:"extraction"`
	Output     OutputConfig     `yaml:"output" json:"output"`
	Workers    int              `yaml:"workers" json:"workers"`
	Verbose    bool             `yaml:"verbose" json:"verbose"`
}

// ExtractionConfig mirrors the extractor options that make sense in a file
type ExtractionConfig struct {
	CharThreshold     int           `yaml:"charThreshold" json:"charThreshold"`
	MaxElemsToParse   int           `yaml:"maxElemsToParse,omitempty" json:"maxElemsToParse,omitempty"`
	NbTopCandidates   int           `yaml:"nbTopCandidates" json:"nbTopCandidates"`
	KeepClasses       bool          `yaml:"keepClasses" json:"keepClasses"`
	ClassesToPreserve []string      `yaml:"classesToPreserve,omitempty" json:"classesToPreserve,omitempty"`
	DisableJSONLD     bool          `yaml:"disableJsonLd" json:"disableJsonLd"`
	VideoRegex        string        `yaml:"videoRegex,omitempty" json:"videoRegex,omitempty"`
	PageURL           string        `yaml:"pageUrl,omitempty" json:"pageUrl,omitempty"`
	Timeout           time.Duration `yaml:"timeout" json:"timeout"`
}

// OutputConfig controls how articles are written
type OutputConfig struct {
	Format   string `yaml:"format" json:"format"`
	Dir      string `yaml:"dir,omitempty" json:"dir,omitempty"`
	Compact  bool   `yaml:"compact" json:"compact"`
	Sanitize bool   `yaml:"sanitize" json:"sanitize"`
}

// DefaultConfig returns a configuration with default values
func DefaultConfig() *Config {
	return &Config{
		Extraction: ExtractionConfig{
			CharThreshold:   500,
			NbTopCandidates: 5,
			Timeout:         30 * time.Second,
		},
		Output: OutputConfig{
			Format: "json",
		},
		Workers: 4,
	}
}
