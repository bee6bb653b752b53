// Package config loads tool defaults from an optional YAML file.
// Flags always override file values; the file only moves the defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultFileName is looked up under the user's home directory when no
// explicit path is given.
const DefaultFileName = ".sheetpress.yaml"

// Config holds the tool defaults.
type Config struct {
	// Paper is the default paper size: a4, letter or legal.
	Paper string `yaml:"paper"`

	// Orientation is portrait or landscape.
	Orientation string `yaml:"orientation"`

	// RowsPerPage overrides the orientation default when non-zero.
	RowsPerPage int `yaml:"rows_per_page"`

	// OutputDir is where rendered artifacts are written.
	OutputDir string `yaml:"output_dir"`

	// ExtractionURL is the base URL of the document-extraction service.
	ExtractionURL string `yaml:"extraction_url"`

	// HistoryDir holds the recent-conversion list.
	HistoryDir string `yaml:"history_dir"`

	// MaxFileSize is the ingestion ceiling in bytes.
	MaxFileSize int64 `yaml:"max_file_size"`
}

func (c *Config) defaults() {
	if c.Paper == "" {
		c.Paper = "a4"
	}
	if c.Orientation == "" {
		c.Orientation = "portrait"
	}
	if c.ExtractionURL == "" {
		c.ExtractionURL = "http://localhost:8090"
	}
	if c.HistoryDir == "" {
		if home, err := os.UserHomeDir(); err == nil {
			c.HistoryDir = filepath.Join(home, ".sheetpress")
		} else {
			c.HistoryDir = ".sheetpress"
		}
	}
	if c.MaxFileSize <= 0 {
		c.MaxFileSize = 10 * 1024 * 1024
	}
}

// Load reads the config file at path. An empty path tries the default
// location; a missing file yields the built-in defaults.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		home, err := os.UserHomeDir()
		if err != nil {
			cfg := &Config{}
			cfg.defaults()
			return cfg, nil
		}
		path = filepath.Join(home, DefaultFileName)
	}

	cfg := &Config{}
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist) && !explicit:
		// Optional file, fall through to defaults.
	case err != nil:
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config %s: %w", path, err)
		}
	}

	cfg.defaults()
	return cfg, nil
}
