// Package discover finds analyzable source files in a repository.
package discover

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
	"time"

	ignore "github.com/sabhiram/go-gitignore"

	"github.com/dverbeek/keystone/internal/lang"
)

// FileEntry represents a discovered source file.
type FileEntry struct {
	Path     string // Relative to repo root
	Language string // Canonical language id
}

// Directories never worth descending into, regardless of ignore rules.
var skipDirs = map[string]struct{}{
	".git":          {},
	".hg":           {},
	".svn":          {},
	"node_modules":  {},
	"vendor":        {},
	"target":        {},
	"build":         {},
	"dist":          {},
	"__pycache__":   {},
	"venv":          {},
	".venv":         {},
	".tox":          {},
	".mypy_cache":   {},
	".pytest_cache": {},
	".idea":         {},
}

// Files discovers analyzable source files under root, sorted by path.
// When the root is a git checkout the tracked-file list drives
// inclusion; otherwise .gitignore rules apply. If languages is
// non-empty, only files resolving to one of the listed languages (by
// id or alias) are returned. ignoreGlobs are extra gitignore-style
// patterns applied in both modes.
func Files(root string, languages, ignoreGlobs []string) ([]FileEntry, error) {
	langSet := make(map[string]struct{}, len(languages))
	for _, l := range languages {
		key := strings.ToLower(strings.TrimSpace(l))
		if info, ok := lang.ByAlias(key); ok {
			key = info.ID
		}
		langSet[key] = struct{}{}
	}

	gitFiles := gitLsFiles(root)
	var gi *ignore.GitIgnore
	if gitFiles == nil {
		gi = loadGitignore(root)
	}
	var extra *ignore.GitIgnore
	if len(ignoreGlobs) > 0 {
		extra = ignore.CompileIgnoreLines(ignoreGlobs...)
	}

	var results []FileEntry

	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil // unreadable entries are skipped, not fatal
		}

		name := d.Name()

		if d.IsDir() {
			if path == root {
				return nil
			}
			if _, skip := skipDirs[name]; skip || strings.HasPrefix(name, ".") {
				return filepath.SkipDir
			}
			return nil
		}

		if strings.HasPrefix(name, ".") {
			return nil
		}
		if d.Type()&os.ModeSymlink != 0 {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return nil
		}

		if gitFiles != nil {
			if _, ok := gitFiles[rel]; !ok {
				return nil
			}
		} else if gi != nil && gi.MatchesPath(rel) {
			return nil
		}
		if extra != nil && extra.MatchesPath(rel) {
			return nil
		}

		info, ok := lang.ForFile(name)
		if !ok {
			return nil
		}
		if len(langSet) > 0 {
			if _, want := langSet[info.ID]; !want {
				return nil
			}
		}

		results = append(results, FileEntry{Path: rel, Language: info.ID})
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].Path < results[j].Path
	})

	return results, nil
}

// Directory names whose contents count as test code.
var testDirNames = map[string]struct{}{
	"test":      {},
	"tests":     {},
	"spec":      {},
	"specs":     {},
	"__tests__": {},
}

// IsTestFile reports whether a repo-relative path looks like test code
// rather than production code, judged by directory components and
// common per-language filename conventions.
func IsTestFile(path string) bool {
	parts := strings.Split(filepath.ToSlash(path), "/")
	for _, dir := range parts[:len(parts)-1] {
		if _, ok := testDirNames[dir]; ok {
			return true
		}
	}

	name := parts[len(parts)-1]
	base := strings.TrimSuffix(name, filepath.Ext(name))
	switch {
	case strings.HasPrefix(name, "test_"):
		return true
	case strings.HasSuffix(base, "_test"), strings.HasSuffix(base, "_spec"):
		return true
	case strings.Contains(name, ".test."), strings.Contains(name, ".spec."):
		return true
	}
	return false
}

// gitLsFiles returns the tracked and untracked-but-not-ignored file
// set when root is a git checkout, nil otherwise.
func gitLsFiles(root string) map[string]struct{} {
	gitDir := filepath.Join(root, ".git")
	info, err := os.Stat(gitDir)
	if err != nil || !info.IsDir() {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cmd := exec.CommandContext(ctx, "git", "ls-files", "--cached", "--others", "--exclude-standard")
	cmd.Dir = root
	out, err := cmd.Output()
	if err != nil {
		return nil
	}

	files := make(map[string]struct{})
	for _, line := range strings.Split(strings.TrimRight(string(out), "\n"), "\n") {
		if line != "" {
			files[line] = struct{}{}
		}
	}
	return files
}

func loadGitignore(root string) *ignore.GitIgnore {
	gi, err := ignore.CompileIgnoreFile(filepath.Join(root, ".gitignore"))
	if err != nil {
		return nil
	}
	return gi
}
