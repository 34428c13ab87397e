package keystone

import (
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/dverbeek/keystone/internal/graph"
)

// buildGraph constructs the project dependency graph: every analyzed
// file is a node, and each import resolving to another project file
// adds an import edge weighted by how often the importer references
// that target. Insertion order follows the sorted file list, so
// repeated runs on an unchanged tree produce identical graphs.
func buildGraph(files []*FileAnalysis) *graph.Graph {
	g := graph.New()
	for _, fa := range files {
		g.AddNode(fa.Path)
	}

	r := newResolver(files)
	type edgeKey struct{ from, to string }
	counts := make(map[edgeKey]int)
	var order []edgeKey
	for _, fa := range files {
		if fa.Document == nil {
			continue
		}
		for _, imp := range fa.Document.Imports {
			for _, target := range r.resolve(fa.Path, imp.Path) {
				key := edgeKey{fa.Path, target}
				if counts[key] == 0 {
					order = append(order, key)
				}
				counts[key]++
			}
		}
	}
	for _, key := range order {
		g.AddEdge(key.from, key.to, float64(counts[key]), graph.EdgeImport)
	}
	return g
}

// resolver maps import strings onto project file paths. Matching is
// purely lexical: relative joins first, then path-suffix matches, then
// unique base-name matches. Imports naming nothing in the project,
// such as external packages, resolve to nothing.
type resolver struct {
	// paths maps each file's extension-less path to its full path.
	paths map[string]string
	// stems maps base names without extension to sorted full paths.
	stems map[string][]string
}

func newResolver(files []*FileAnalysis) *resolver {
	r := &resolver{
		paths: make(map[string]string, len(files)),
		stems: make(map[string][]string),
	}
	for _, fa := range files {
		full := filepath.ToSlash(fa.Path)
		bare := strings.TrimSuffix(full, path.Ext(full))
		r.paths[bare] = full
		stem := path.Base(bare)
		r.stems[stem] = append(r.stems[stem], full)
	}
	for _, paths := range r.stems {
		sort.Strings(paths)
	}
	return r
}

// resolve returns the project files an import string refers to,
// sorted, excluding the importer itself.
func (r *resolver) resolve(from, imp string) []string {
	from = filepath.ToSlash(from)
	imp = strings.Trim(strings.TrimSpace(imp), `"'`)
	if imp == "" {
		return nil
	}

	// Explicitly relative imports join against the importer's
	// directory.
	if strings.HasPrefix(imp, "./") || strings.HasPrefix(imp, "../") {
		return r.lookup(path.Join(path.Dir(from), imp), from)
	}

	// Python-style leading dots: one dot is the importer's own
	// package, each extra dot climbs one directory.
	if strings.HasPrefix(imp, ".") {
		dots := 0
		for dots < len(imp) && imp[dots] == '.' {
			dots++
		}
		dir := path.Dir(from)
		for i := 1; i < dots; i++ {
			dir = path.Dir(dir)
		}
		rest := strings.ReplaceAll(imp[dots:], ".", "/")
		return r.lookup(path.Join(dir, rest), from)
	}

	// Quoted C-style includes and extensionful module specifiers are
	// importer-relative without a leading "./".
	if hits := r.lookup(path.Join(path.Dir(from), imp), from); hits != nil {
		return hits
	}

	norm := strings.ReplaceAll(imp, "::", "/")
	norm = strings.ReplaceAll(norm, ".", "/")
	norm = strings.TrimPrefix(norm, "crate/")
	norm = strings.TrimPrefix(norm, "self/")

	// Path-suffix match: "pkg/util" hits "src/pkg/util.py".
	var matches []string
	for bare, full := range r.paths {
		if full == from {
			continue
		}
		if bare == norm || strings.HasSuffix(bare, "/"+norm) {
			matches = append(matches, full)
		}
	}
	if len(matches) > 0 {
		sort.Strings(matches)
		return matches
	}

	// Base-name fallback, only when unambiguous. "import util" with a
	// single util.* in the tree resolves; a dozen candidates would
	// just distort the graph.
	var hits []string
	for _, p := range r.stems[path.Base(norm)] {
		if p != from {
			hits = append(hits, p)
		}
	}
	if len(hits) == 1 {
		return hits
	}
	return nil
}

// lookup resolves one concrete candidate path, trying the path itself,
// its extension-less form, and the package entry files under it.
func (r *resolver) lookup(cand, from string) []string {
	cand = path.Clean(cand)
	if ext := path.Ext(cand); ext != "" {
		cand = strings.TrimSuffix(cand, ext)
	}
	for _, key := range []string{cand, cand + "/index", cand + "/__init__"} {
		if full, ok := r.paths[key]; ok && full != from {
			return []string{full}
		}
	}
	return nil
}
