package config

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// Config is the root configuration structure.
type Config struct {
	Walk    WalkConfig    `json:"walk"`
	Staging StagingConfig `json:"staging"`
	Diff    DiffConfig    `json:"diff"`
	Filters FilterConfig  `json:"filters"`
}

// WalkConfig holds history walk configuration.
type WalkConfig struct {
	Engine       string `json:"engine"`       // "auto", "native" or "cli"
	RenameDetect string `json:"renameDetect"` // "off", "simple" or "aggressive"
	RenameMatch  string `json:"renameMatch"`  // "exact" or "suffix"
	CloneDir     string `json:"cloneDir"`     // Directory for cloned remote repositories
}

// StagingConfig holds snapshot staging configuration.
type StagingConfig struct {
	Dir string `json:"dir"` // Directory for materialized version snapshots
}

// DiffConfig holds diff rendering options.
type DiffConfig struct {
	ContextLines int `json:"contextLines"`
}

// FilterConfig holds file path filtering options.
type FilterConfig struct {
	Include []string `json:"include"`
	Exclude []string `json:"exclude"`
}

// DefaultConfig returns a configuration with default values.
func DefaultConfig() *Config {
	return &Config{
		Walk: WalkConfig{
			Engine:       "auto",
			RenameDetect: "aggressive",
			RenameMatch:  "exact",
			CloneDir:     "cloned-repo",
		},
		Staging: StagingConfig{
			Dir: "filetrail-snapshots",
		},
		Diff: DiffConfig{
			ContextLines: 3,
		},
		Filters: FilterConfig{
			Include: []string{},
			Exclude: []string{},
		},
	}
}

// LoadConfig loads configuration from a file, merging with defaults.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		// Try default locations
		candidates := []string{".filetrail.json"}
		if home, err := os.UserHomeDir(); err == nil && home != "" {
			candidates = append(candidates, filepath.Join(home, ".filetrail.json"))
		} else if envHome := os.Getenv("HOME"); envHome != "" {
			candidates = append(candidates, filepath.Join(envHome, ".filetrail.json"))
		}
		for _, p := range candidates {
			if _, err := os.Stat(p); err == nil {
				path = p
				break
			}
		}
	}

	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// SaveConfig saves configuration to a file.
func SaveConfig(cfg *Config, path string) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
