// Package keystone provides polyglot static analysis built on tree-sitter.
// It parses source files through per-language capsules that normalize every
// grammar onto one document contract, derives size and complexity metrics,
// detects framework and technology patterns, and ranks files by a blended
// importance score for 20 languages from Go and TypeScript to HCL and TOML.
//
// # Pipeline
//
// [Engine.AnalyzeDirectory] runs three phases over a source tree:
//
//  1. Discover: walk the tree honoring gitignore rules and configured
//     ignore globs, keeping files whose language a capsule supports.
//     Files whose content hash matches the attached catalog are reused
//     without re-analysis.
//
//  2. Analyze: parse each remaining file in parallel, compute line,
//     cyclomatic, cognitive, and Halstead metrics, and match content
//     against the pattern registry. A file the grammar rejects produces
//     a degraded result with diagnostics, never a batch failure.
//
//  3. Aggregate: build the import graph across all files, compute
//     PageRank centrality, blend size, centrality, complexity, and
//     dependency signals into per-file importance scores, and persist
//     everything when a catalog is attached.
//
// # Usage
//
// Create an Engine, analyze a tree, and inspect the ranked results:
//
//	eng, err := keystone.New(keystone.WithStore("keystone.db"))
//	if err != nil { ... }
//	defer eng.Close()
//
//	ctx := context.Background()
//	project, err := eng.AnalyzeDirectory(ctx, "path/to/repo")
//
//	for _, score := range project.Scores[:10] {
//		fmt.Println(score.Path, score.Overall)
//	}
//
// # Single-File API
//
// The Engine also exposes the per-file operations directly:
//
//   - [Engine.Parse] runs one source unit through its language capsule.
//   - [Engine.AnalyzeFile] adds metrics, detections, and a score to a parse.
//   - [Engine.DetectPatterns] matches content against the pattern registry.
//   - [Engine.ScoreFile] blends supplied signals into an importance score.
//   - [Engine.RankFiles] orders a path-to-score map into a ranked listing.
//
// # Incremental Analysis
//
// With a catalog attached, [Engine.AnalyzeDirectory] hashes each file's
// content and reuses the stored symbols, imports, metrics, and detections
// for files whose hash is unchanged. Scores and the dependency graph are
// always recomputed, since one changed file can shift every centrality
// figure. Use [WithLanguages] to restrict which languages the Engine
// processes.
package keystone
