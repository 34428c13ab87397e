package discover

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeFile creates rel under root, making parent directories as needed.
func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestFilesDiscoversSorted(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "main.go", "package main\n")
	writeFile(t, dir, "lib/util.py", "def helper(): pass\n")
	// Unknown extension and hidden file are both ignored.
	writeFile(t, dir, "readme.txt", "hello\n")
	writeFile(t, dir, ".hidden.py", "secret\n")

	entries, err := Files(dir, nil, nil)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, filepath.Join("lib", "util.py"), entries[0].Path)
	assert.Equal(t, "python", entries[0].Language)
	assert.Equal(t, "main.go", entries[1].Path)
	assert.Equal(t, "go", entries[1].Language)
}

func TestFilesSkipsDirs(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "main.go", "package main\n")
	writeFile(t, dir, "node_modules/pkg.js", "module.exports = {}\n")
	writeFile(t, dir, "target/debug/gen.rs", "fn main() {}\n")
	writeFile(t, dir, "__pycache__/cached.py", "pass\n")
	writeFile(t, dir, ".hidden/secret.py", "pass\n")

	entries, err := Files(dir, nil, nil)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "main.go", entries[0].Path)
}

func TestFilesLanguageFilter(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "main.go", "package main\n")
	writeFile(t, dir, "app.py", "pass\n")
	writeFile(t, dir, "web.ts", "export {}\n")

	entries, err := Files(dir, []string{"python"}, nil)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "app.py", entries[0].Path)

	// Aliases resolve to the canonical language.
	entries, err = Files(dir, []string{"ts"}, nil)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "web.ts", entries[0].Path)

	entries, err = Files(dir, []string{"klingon"}, nil)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestFilesExtraIgnoreGlobs(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "src/main.go", "package main\n")
	writeFile(t, dir, "src/gen/big.go", "package gen\n")

	entries, err := Files(dir, nil, []string{"src/gen/**"})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, filepath.Join("src", "main.go"), entries[0].Path)
}

func TestFilesGitignoreRespected(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, ".gitignore", "ignored/\n")
	writeFile(t, dir, "kept.go", "package kept\n")
	writeFile(t, dir, "ignored/a.go", "package a\n")

	entries, err := Files(dir, nil, nil)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "kept.go", entries[0].Path)
}

func TestFilesSymlinksSkipped(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "real.go", "package real\n")

	if err := os.Symlink(filepath.Join(dir, "real.go"), filepath.Join(dir, "link.go")); err != nil {
		t.Skip("symlinks not supported")
	}

	entries, err := Files(dir, nil, nil)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "real.go", entries[0].Path)
}

func TestFilesEmptyTree(t *testing.T) {
	t.Parallel()

	entries, err := Files(t.TempDir(), nil, nil)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestIsTestFile(t *testing.T) {
	t.Parallel()

	cases := []struct {
		path string
		want bool
	}{
		// Test directory components
		{"tests/test_scenes.py", true},
		{"tests/conftest.py", true},
		{"spec/models/user_spec.rb", true},
		{"src/__tests__/foo.js", true},
		{"src/test/java/FooTest.java", true},
		{"test/foo_test.exs", true},
		// Filename patterns
		{"internal/graph/graph_test.go", true},
		{"test_helpers.py", true},
		{"user_spec.rb", true},
		{"foo.test.js", true},
		{"foo.spec.ts", true},
		// Production files
		{"app/models.py", false},
		{"internal/graph/graph.go", false},
		{"conftest.py", false},      // top-level conftest, not in tests/
		{"testing_utils.go", false}, // contains "testing" but not a test pattern
		{"contest.rb", false},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.path, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, IsTestFile(tc.path))
		})
	}
}
