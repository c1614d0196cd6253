package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadConfigYAML(t *testing.T) {
	path := writeFile(t, "readerview.yaml", `
extraction:
  charThreshold: 250
  keepClasses: true
  classesToPreserve: [caption, lead]
  videoRegex: "media\\.example\\.org"
  timeout: 45s
output:
  format: HTML
  compact: true
workers: 8
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 250, cfg.Extraction.CharThreshold)
	assert.True(t, cfg.Extraction.KeepClasses)
	assert.Equal(t, []string{"caption", "lead"}, cfg.Extraction.ClassesToPreserve)
	assert.Equal(t, `media\.example\.org`, cfg.Extraction.VideoRegex)
	assert.Equal(t, 45*time.Second, cfg.Extraction.Timeout)
	assert.Equal(t, "html", cfg.Output.Format)
	assert.True(t, cfg.Output.Compact)
	assert.Equal(t, 8, cfg.Workers)

	// Untouched keys keep their defaults.
	assert.Equal(t, 5, cfg.Extraction.NbTopCandidates)
}

func TestLoadConfigJSON(t *testing.T) {
	path := writeFile(t, "readerview.json", `{"extraction": {"disableJsonLd": true, "pageUrl": "https://example.com/"}, "output": {"format": "text"}}`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.True(t, cfg.Extraction.DisableJSONLD)
	assert.Equal(t, "https://example.com/", cfg.Extraction.PageURL)
	assert.Equal(t, "text", cfg.Output.Format)
	assert.Equal(t, 500, cfg.Extraction.CharThreshold)
	assert.Equal(t, 4, cfg.Workers)
}

func TestLoadConfigUnknownExtension(t *testing.T) {
	path := writeFile(t, "readerview.conf", "workers: 2\n")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.Workers)
}

func TestLoadConfigErrors(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "failed to read config file")

	_, err = LoadConfig(writeFile(t, "bad.json", "{"))
	assert.ErrorContains(t, err, "failed to parse JSON config")

	_, err = LoadConfig(writeFile(t, "invalid.yaml", "workers: 0\n"))
	assert.ErrorContains(t, err, "invalid configuration")
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "defaults", mutate: func(*Config) {}},
		{name: "negative threshold", mutate: func(c *Config) { c.Extraction.CharThreshold = -1 }, wantErr: "charThreshold"},
		{name: "negative ceiling", mutate: func(c *Config) { c.Extraction.MaxElemsToParse = -5 }, wantErr: "maxElemsToParse"},
		{name: "no candidates", mutate: func(c *Config) { c.Extraction.NbTopCandidates = 0 }, wantErr: "nbTopCandidates"},
		{name: "negative timeout", mutate: func(c *Config) { c.Extraction.Timeout = -time.Second }, wantErr: "timeout"},
		{name: "bad regex", mutate: func(c *Config) { c.Extraction.VideoRegex = "(" }, wantErr: "videoRegex"},
		{name: "unknown format", mutate: func(c *Config) { c.Output.Format = "pdf" }, wantErr: "unknown output format"},
		{name: "no workers", mutate: func(c *Config) { c.Workers = 0 }, wantErr: "workers"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)

			err := ValidateConfig(cfg)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestSaveConfigRoundTrip(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Extraction.CharThreshold = 120
	cfg.Extraction.Timeout = 10 * time.Second
	cfg.Output.Format = "text"

	for _, name := range []string{"out.yaml", "out.json"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			require.NoError(t, SaveConfig(cfg, path))

			loaded, err := LoadConfig(path)
			require.NoError(t, err)
			assert.Equal(t, cfg, loaded)
		})
	}
}
