package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dverbeek/keystone/internal/capsule"
	"github.com/dverbeek/keystone/internal/scoring"
)

// writeConfig drops YAML content into a temp file and returns its path.
func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "keystone.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := Default()
	assert.Equal(t, scoring.DefaultWeights(), cfg.Weights)
	assert.Equal(t, 0.3, cfg.MinConfidence)
	assert.Equal(t, capsule.DefaultMaxBytes, cfg.MaxFileBytes)
	assert.Zero(t, cfg.Workers)
	assert.Equal(t, DefaultCacheSize, cfg.CacheSize)
	assert.Contains(t, cfg.Ignore, ".git/**")
	assert.Contains(t, cfg.Ignore, "node_modules/**")

	assert.Equal(t, 0.85, cfg.PageRank.Damping)
	assert.Equal(t, 100, cfg.PageRank.MaxIterations)
	assert.Equal(t, 1e-6, cfg.PageRank.Tolerance)
}

func TestLoadOverlaysDefaults(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, `
weights:
  size: 0.1
  centrality: 0.4
  complexity: 0.4
  dependency: 0.1
min_confidence: 0.5
workers: 4
pattern_file: custom-patterns.yaml
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, scoring.Weights{Size: 0.1, Centrality: 0.4, Complexity: 0.4, Dependency: 0.1}, cfg.Weights)
	assert.Equal(t, 0.5, cfg.MinConfidence)
	assert.Equal(t, 4, cfg.Workers)
	assert.Equal(t, "custom-patterns.yaml", cfg.PatternFile)

	// Untouched fields keep their defaults.
	assert.Equal(t, capsule.DefaultMaxBytes, cfg.MaxFileBytes)
	assert.Equal(t, DefaultCacheSize, cfg.CacheSize)
	assert.Equal(t, 0.85, cfg.PageRank.Damping)
	assert.Contains(t, cfg.Ignore, "vendor/**")
}

func TestLoadPartialNestedSection(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, "pagerank:\n  damping: 0.9\n")
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 0.9, cfg.PageRank.Damping)
	assert.Equal(t, 100, cfg.PageRank.MaxIterations)
	assert.Equal(t, 1e-6, cfg.PageRank.Tolerance)
}

func TestLoadSanitizesBadValues(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, `
cache_size: -5
pagerank:
  damping: 1.5
  max_iterations: -1
  tolerance: -2
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, DefaultCacheSize, cfg.CacheSize)
	assert.Equal(t, 0.85, cfg.PageRank.Damping)
	assert.Equal(t, 100, cfg.PageRank.MaxIterations)
	assert.Equal(t, 1e-6, cfg.PageRank.Tolerance)
}

func TestLoadErrors(t *testing.T) {
	t.Parallel()

	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading config")

	path := writeConfig(t, "weights: [\n")
	_, err = Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing config")
}

func TestLoadIfPresent(t *testing.T) {
	t.Parallel()

	cfg, err := LoadIfPresent(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	loaded, err := LoadIfPresent(writeConfig(t, "workers: 2\n"))
	require.NoError(t, err)
	assert.Equal(t, 2, loaded.Workers)

	_, err = LoadIfPresent(writeConfig(t, "workers: [\n"))
	require.Error(t, err)
}
