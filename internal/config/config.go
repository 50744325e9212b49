// Package config loads the momento YAML configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"
)

// Config represents the CLI configuration.
type Config struct {
	Output  OutputConfig `yaml:"output"`
	Store   StoreConfig  `yaml:"store"`
	Prefs   PrefsConfig  `yaml:"prefs"`
	Fonts   FontsConfig  `yaml:"fonts"`
	Workers int          `yaml:"workers"` // batch concurrency, default NumCPU
}

type OutputConfig struct {
	Format      string `yaml:"format"`       // "jpeg" or "png"
	JpegQuality int    `yaml:"jpeg_quality"` // 1-100, default 90
	Dir         string `yaml:"dir"`          // export directory, default "."
}

type StoreConfig struct {
	Dir string `yaml:"dir"`
}

type PrefsConfig struct {
	Path string `yaml:"path"`
}

type FontsConfig struct {
	Dir string `yaml:"dir"` // optional directory with family font files
}

// DefaultPath is where Load looks when no path is given.
func DefaultPath() string {
	return filepath.Join(baseDir(), "config.yaml")
}

// Load reads configuration from a YAML file. An empty path reads
// DefaultPath and tolerates it being absent.
func Load(path string) (*Config, error) {
	optional := path == ""
	if optional {
		path = DefaultPath()
	}

	var cfg Config
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	case optional && os.IsNotExist(err):
	default:
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Set defaults
	if cfg.Output.Format == "" {
		cfg.Output.Format = "jpeg"
	}
	if cfg.Output.JpegQuality == 0 {
		cfg.Output.JpegQuality = 90
	}
	if cfg.Output.JpegQuality < 1 || cfg.Output.JpegQuality > 100 {
		return nil, fmt.Errorf("output.jpeg_quality out of range: %d", cfg.Output.JpegQuality)
	}
	if cfg.Output.Dir == "" {
		cfg.Output.Dir = "."
	}
	if cfg.Store.Dir == "" {
		cfg.Store.Dir = filepath.Join(baseDir(), "gallery")
	}
	if cfg.Prefs.Path == "" {
		cfg.Prefs.Path = filepath.Join(baseDir(), "prefs.yaml")
	}
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.NumCPU()
	}

	return &cfg, nil
}

func baseDir() string {
	if dir := os.Getenv("MOMENTO_HOME"); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".momento"
	}
	return filepath.Join(home, ".momento")
}
