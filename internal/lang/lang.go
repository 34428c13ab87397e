// Package lang is the static registry of languages keystone can analyze.
// It maps file extensions and aliases to canonical language identities.
// The table is built once at init and never mutated afterwards, so lookups
// are safe from any goroutine.
package lang

import (
	"path/filepath"
	"strings"
	"sync"
)

// Info describes the static identity of one supported language.
type Info struct {
	// ID is the canonical language identifier (e.g. "go", "typescript").
	ID string
	// DisplayName is the human-readable name (e.g. "Go", "TypeScript").
	DisplayName string
	// Extensions lists file extensions including the leading dot.
	Extensions []string
	// Aliases lists alternative names accepted as explicit language hints.
	// Matched case-insensitively; always includes ID.
	Aliases []string
}

// MatchesExtension reports whether ext (with or without leading dot,
// any case) is one of the language's extensions.
func (i Info) MatchesExtension(ext string) bool {
	ext = normalizeExt(ext)
	for _, e := range i.Extensions {
		if e == ext {
			return true
		}
	}
	return false
}

// MatchesAlias reports whether alias matches the language's ID or one of
// its aliases, case-insensitively.
func (i Info) MatchesAlias(alias string) bool {
	alias = strings.ToLower(strings.TrimSpace(alias))
	if alias == i.ID {
		return true
	}
	for _, a := range i.Aliases {
		if a == alias {
			return true
		}
	}
	return false
}

// infos lists every supported language in registration order.
var infos = []Info{
	{ID: "go", DisplayName: "Go", Extensions: []string{".go"}, Aliases: []string{"go", "golang"}},
	{ID: "javascript", DisplayName: "JavaScript", Extensions: []string{".js", ".jsx", ".mjs", ".cjs"}, Aliases: []string{"javascript", "js", "jsx"}},
	{ID: "typescript", DisplayName: "TypeScript", Extensions: []string{".ts", ".tsx"}, Aliases: []string{"typescript", "ts", "tsx"}},
	{ID: "python", DisplayName: "Python", Extensions: []string{".py", ".pyw"}, Aliases: []string{"python", "py"}},
	{ID: "ruby", DisplayName: "Ruby", Extensions: []string{".rb", ".rake"}, Aliases: []string{"ruby", "rb"}},
	{ID: "rust", DisplayName: "Rust", Extensions: []string{".rs"}, Aliases: []string{"rust", "rs"}},
	{ID: "java", DisplayName: "Java", Extensions: []string{".java"}, Aliases: []string{"java"}},
	{ID: "c", DisplayName: "C", Extensions: []string{".c", ".h"}, Aliases: []string{"c"}},
	{ID: "cpp", DisplayName: "C++", Extensions: []string{".cpp", ".cc", ".cxx", ".hpp", ".hh"}, Aliases: []string{"cpp", "c++", "cxx"}},
	{ID: "csharp", DisplayName: "C#", Extensions: []string{".cs"}, Aliases: []string{"csharp", "cs", "c#"}},
	{ID: "php", DisplayName: "PHP", Extensions: []string{".php"}, Aliases: []string{"php"}},
	{ID: "kotlin", DisplayName: "Kotlin", Extensions: []string{".kt", ".kts"}, Aliases: []string{"kotlin", "kt"}},
	{ID: "swift", DisplayName: "Swift", Extensions: []string{".swift"}, Aliases: []string{"swift"}},
	{ID: "scala", DisplayName: "Scala", Extensions: []string{".scala", ".sc"}, Aliases: []string{"scala"}},
	{ID: "bash", DisplayName: "Bash", Extensions: []string{".sh", ".bash"}, Aliases: []string{"bash", "sh", "shell"}},
	{ID: "elixir", DisplayName: "Elixir", Extensions: []string{".ex", ".exs"}, Aliases: []string{"elixir", "ex"}},
	{ID: "lua", DisplayName: "Lua", Extensions: []string{".lua"}, Aliases: []string{"lua"}},
	{ID: "hcl", DisplayName: "HCL", Extensions: []string{".tf", ".hcl"}, Aliases: []string{"hcl", "terraform", "tf"}},
	{ID: "yaml", DisplayName: "YAML", Extensions: []string{".yaml", ".yml"}, Aliases: []string{"yaml", "yml"}},
	{ID: "toml", DisplayName: "TOML", Extensions: []string{".toml"}, Aliases: []string{"toml"}},
}

// Lookup maps, built lazily after the infos table is final.
var (
	byID    map[string]Info
	byExt   map[string]Info
	byAlias map[string]Info
	mapOnce sync.Once
)

func buildMaps() {
	mapOnce.Do(func() {
		byID = make(map[string]Info, len(infos))
		byExt = make(map[string]Info)
		byAlias = make(map[string]Info)
		for _, info := range infos {
			byID[info.ID] = info
			for _, ext := range info.Extensions {
				byExt[ext] = info
			}
			for _, alias := range info.Aliases {
				byAlias[alias] = info
			}
		}
	})
}

// All returns every supported language in registration order.
func All() []Info {
	out := make([]Info, len(infos))
	copy(out, infos)
	return out
}

// ByID returns the language with the given canonical ID.
func ByID(id string) (Info, bool) {
	buildMaps()
	info, ok := byID[id]
	return info, ok
}

// ByAlias resolves an explicit language hint (case-insensitive) to a language.
func ByAlias(alias string) (Info, bool) {
	buildMaps()
	info, ok := byAlias[strings.ToLower(strings.TrimSpace(alias))]
	return info, ok
}

// ByExtension resolves a file extension (with or without leading dot) to a
// language.
func ByExtension(ext string) (Info, bool) {
	buildMaps()
	info, ok := byExt[normalizeExt(ext)]
	return info, ok
}

// ForFile returns the language for a file path based on its extension.
// Returns (Info{}, false) if the extension is not recognized.
func ForFile(path string) (Info, bool) {
	return ByExtension(filepath.Ext(path))
}

func normalizeExt(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}
