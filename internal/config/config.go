// Package config loads the keystone.yaml configuration. Values absent
// from the file keep their defaults; CLI flags may override loaded
// values on top.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/dverbeek/keystone/internal/capsule"
	"github.com/dverbeek/keystone/internal/patterns"
	"github.com/dverbeek/keystone/internal/scoring"
)

// DefaultCacheSize bounds the parsed-document cache.
const DefaultCacheSize = 256

// Config represents the keystone.yaml configuration.
type Config struct {
	// Weights distribute the importance score across its signals.
	Weights scoring.Weights `yaml:"weights"`
	// MinConfidence discards pattern detections scoring below it.
	// Zero or negative selects the built-in minimum.
	MinConfidence float64 `yaml:"min_confidence"`
	// MaxFileBytes rejects larger files before parsing. Zero or
	// negative disables the check.
	MaxFileBytes int `yaml:"max_file_bytes"`
	// Workers caps parse parallelism. Zero selects one per CPU.
	Workers int `yaml:"workers"`
	// CacheSize bounds the parsed-document cache entry count.
	CacheSize int `yaml:"cache_size"`
	// PatternFile names an extra YAML pattern-definition file loaded
	// on top of the built-in registry.
	PatternFile string `yaml:"pattern_file"`
	// Ignore lists glob patterns excluded from discovery, on top of
	// gitignore rules.
	Ignore []string `yaml:"ignore"`
	// PageRank tunes the centrality computation.
	PageRank PageRank `yaml:"pagerank"`
}

// PageRank holds the power-iteration parameters.
type PageRank struct {
	Damping       float64 `yaml:"damping"`
	MaxIterations int     `yaml:"max_iterations"`
	Tolerance     float64 `yaml:"tolerance"`
}

// Default returns a Config with sensible defaults.
func Default() *Config {
	return &Config{
		Weights:       scoring.DefaultWeights(),
		MinConfidence: patterns.DefaultMinConfidence,
		MaxFileBytes:  capsule.DefaultMaxBytes,
		CacheSize:     DefaultCacheSize,
		Ignore: []string{
			".git/**",
			"node_modules/**",
			"vendor/**",
			"target/**",
			"dist/**",
			"build/**",
		},
		PageRank: PageRank{
			Damping:       0.85,
			MaxIterations: 100,
			Tolerance:     1e-6,
		},
	}
}

// Load reads a configuration file from the given path. Missing fields
// are filled with defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if cfg.CacheSize <= 0 {
		cfg.CacheSize = DefaultCacheSize
	}
	if cfg.PageRank.Damping <= 0 || cfg.PageRank.Damping >= 1 {
		cfg.PageRank.Damping = 0.85
	}
	if cfg.PageRank.MaxIterations <= 0 {
		cfg.PageRank.MaxIterations = 100
	}
	if cfg.PageRank.Tolerance <= 0 {
		cfg.PageRank.Tolerance = 1e-6
	}

	return cfg, nil
}

// LoadIfPresent loads path when the file exists and falls back to the
// defaults when it does not. A present but malformed file is still an
// error.
func LoadIfPresent(path string) (*Config, error) {
	cfg, err := Load(path)
	if err != nil && errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}
