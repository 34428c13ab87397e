package keystone

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dverbeek/keystone/internal/capsule"
	"github.com/dverbeek/keystone/internal/discover"
	"github.com/dverbeek/keystone/internal/graph"
	"github.com/dverbeek/keystone/internal/metrics"
	"github.com/dverbeek/keystone/internal/patterns"
	"github.com/dverbeek/keystone/internal/scoring"
	"github.com/dverbeek/keystone/internal/store"
)

// ProjectAnalysis is the result of analyzing a whole source tree.
// Files are ordered by path, Scores by overall score descending.
type ProjectAnalysis struct {
	Root       string             `json:"root"`
	Files      []*FileAnalysis    `json:"files"`
	Scores     []Score            `json:"scores"`
	Centrality map[string]float64 `json:"centrality,omitempty"`
	GraphStats GraphStats         `json:"graph_stats"`
	Summary    Summary            `json:"summary"`

	graph *Graph
}

// Graph returns the dependency graph built during analysis.
func (p *ProjectAnalysis) Graph() *Graph {
	return p.graph
}

// DOT renders the dependency graph in Graphviz format with centrality
// scores as node labels.
func (p *ProjectAnalysis) DOT() string {
	return p.graph.DOT(p.Centrality)
}

// Summary aggregates per-file results into project totals.
type Summary struct {
	TotalFiles   int            `json:"total_files"`
	TestFiles    int            `json:"test_files"`
	TotalLines   int            `json:"total_lines"`
	CodeLines    int            `json:"code_lines"`
	CommentLines int            `json:"comment_lines"`
	BlankLines   int            `json:"blank_lines"`
	Languages    map[string]int `json:"languages"`
	Patterns     map[string]int `json:"patterns,omitempty"`
	Reused       int            `json:"reused,omitempty"`
}

// workItem carries one file through the parallel analysis phase.
type workItem struct {
	index   int
	entry   discover.FileEntry
	content []byte
}

// AnalyzeDirectory runs the full pipeline over the tree rooted at
// root: discovery, parallel per-file analysis, graph construction,
// centrality, scoring, and catalog persistence when a store is
// attached. Per-file failures degrade that file's result and never
// abort the run; only discovery, persistence, or a canceled context
// fail the whole call.
func (e *Engine) AnalyzeDirectory(ctx context.Context, root string) (*ProjectAnalysis, error) {
	entries, err := discover.Files(root, e.languages, e.cfg.Ignore)
	if err != nil {
		return nil, fmt.Errorf("keystone: discover %s: %w", root, err)
	}

	// ---- Phase A: serial read and change detection ----
	analyses := make([]*FileAnalysis, len(entries))
	contents := make([][]byte, len(entries))
	hashes := make([]string, len(entries))
	var work []workItem
	for i, entry := range entries {
		content, err := os.ReadFile(filepath.Join(root, entry.Path))
		if err != nil {
			analyses[i] = degradedAnalysis(entry, fmt.Sprintf("read: %v", err))
			continue
		}
		contents[i] = content
		hashes[i] = store.ContentHash(content)
		if fa := e.reuseUnchanged(entry, hashes[i]); fa != nil {
			analyses[i] = fa
			continue
		}
		work = append(work, workItem{index: i, entry: entry, content: content})
	}

	// ---- Phase B: parallel parse, metrics, and detection ----
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workerCount(len(work)))
	for _, item := range work {
		item := item
		g.Go(func() error {
			analyses[item.index] = e.analyzeEntry(gctx, item.entry, item.content)
			return gctx.Err()
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("keystone: analyze %s: %w", root, err)
	}

	// ---- Phase C: serial graph, scoring, and persistence ----
	pa := &ProjectAnalysis{Root: root, Files: analyses}
	pa.graph = buildGraph(analyses)

	result := pa.graph.PageRank(graph.Options{
		Damping:   e.cfg.PageRank.Damping,
		MaxIter:   e.cfg.PageRank.MaxIterations,
		Tolerance: e.cfg.PageRank.Tolerance,
	})
	pa.Centrality = result.Scores
	pa.GraphStats = result.Stats

	pa.Scores = make([]Score, 0, len(analyses))
	for i, fa := range analyses {
		fa.Score = scoring.ScoreFile(fa.Path, contents[i], pa.Centrality[fa.Path],
			scoring.ComplexityScore(fa.Metrics.Cyclomatic),
			scoring.DependencyScore(fa.Metrics.Imports),
			e.cfg.Weights)
		pa.Scores = append(pa.Scores, fa.Score)
	}
	sort.Slice(pa.Scores, func(i, j int) bool {
		if pa.Scores[i].Overall != pa.Scores[j].Overall {
			return pa.Scores[i].Overall > pa.Scores[j].Overall
		}
		return pa.Scores[i].Path < pa.Scores[j].Path
	})

	pa.Summary = summarize(analyses)

	if e.store != nil {
		if err := e.persist(pa, hashes, contents); err != nil {
			return nil, fmt.Errorf("keystone: persist %s: %w", root, err)
		}
	}

	return pa, nil
}

// workerCount bounds analysis parallelism: the configured worker cap,
// or one per CPU, never more than the number of items and never below
// one.
func (e *Engine) workerCount(items int) int {
	n := e.cfg.Workers
	if n <= 0 {
		n = runtime.NumCPU()
	}
	if items > 0 && n > items {
		n = items
	}
	if n < 1 {
		n = 1
	}
	return n
}

// analyzeEntry analyzes one discovered file. Failures degrade to a
// diagnostic result so one bad file never aborts the batch.
func (e *Engine) analyzeEntry(ctx context.Context, entry discover.FileEntry, content []byte) *FileAnalysis {
	doc, err := e.parseCached(ctx, Source{Path: entry.Path}, content)
	if err != nil {
		return degradedAnalysis(entry, err.Error())
	}
	return &FileAnalysis{
		Path:        entry.Path,
		Language:    doc.Language,
		Document:    doc,
		Metrics:     e.metrics.Compute(doc, content),
		Detections:  e.DetectPatterns(content, entry.Path),
		Diagnostics: doc.Diagnostics,
	}
}

func degradedAnalysis(entry discover.FileEntry, diag string) *FileAnalysis {
	return &FileAnalysis{
		Path:        entry.Path,
		Language:    entry.Language,
		Metrics:     Metrics{Language: entry.Language},
		Diagnostics: []string{diag},
	}
}

// reuseUnchanged returns the catalog analysis for entry when its
// stored content hash matches the current one, or nil when the file
// must be re-analyzed.
func (e *Engine) reuseUnchanged(entry discover.FileEntry, hash string) *FileAnalysis {
	if e.store == nil {
		return nil
	}
	existing, err := e.store.FileByPath(entry.Path)
	if err != nil || existing == nil || existing.Hash != hash {
		return nil
	}
	data, err := e.store.LoadFileData(existing.ID)
	if err != nil || data == nil {
		return nil
	}
	return analysisFromCatalog(data)
}

// summarize aggregates per-file results into project totals.
func summarize(files []*FileAnalysis) Summary {
	s := Summary{
		TotalFiles: len(files),
		Languages:  make(map[string]int),
	}
	for _, fa := range files {
		if fa.Language != "" {
			s.Languages[fa.Language]++
		}
		if discover.IsTestFile(fa.Path) {
			s.TestFiles++
		}
		s.TotalLines += fa.Metrics.Lines.Total
		s.CodeLines += fa.Metrics.Lines.Code
		s.CommentLines += fa.Metrics.Lines.Comment
		s.BlankLines += fa.Metrics.Lines.Blank
		if fa.Reused {
			s.Reused++
		}
		for _, det := range fa.Detections {
			if s.Patterns == nil {
				s.Patterns = make(map[string]int)
			}
			s.Patterns[det.Name]++
		}
	}
	return s
}

// persist writes the project results to the catalog: fresh file
// bundles, the complete edge set, scores, and run metadata. Reused
// files keep their existing rows.
func (e *Engine) persist(pa *ProjectAnalysis, hashes []string, contents [][]byte) error {
	ids := make(map[string]int64, len(pa.Files))
	for i, fa := range pa.Files {
		if fa.Reused {
			ids[fa.Path] = fa.id
			continue
		}
		if contents[i] == nil {
			continue // unreadable this run; any previous rows stay
		}
		id, err := e.store.SaveFileData(catalogData(fa, hashes[i], len(contents[i])))
		if err != nil {
			return err
		}
		fa.id = id
		ids[fa.Path] = id
	}

	var edges []store.Edge
	for _, edge := range pa.graph.Edges() {
		from, to := ids[edge.From], ids[edge.To]
		if from == 0 || to == 0 {
			continue
		}
		edges = append(edges, store.Edge{FromID: from, ToID: to})
	}
	if err := e.store.ReplaceEdges(edges); err != nil {
		return err
	}

	scores := make([]store.Score, 0, len(pa.Files))
	for _, fa := range pa.Files {
		id := ids[fa.Path]
		if id == 0 {
			continue
		}
		scores = append(scores, store.Score{
			FileID:     id,
			Overall:    fa.Score.Overall,
			Size:       fa.Score.Size,
			Centrality: fa.Score.Centrality,
			Complexity: fa.Score.Complexity,
			Dependency: fa.Score.Dependency,
		})
	}
	if err := e.store.SaveScores(scores); err != nil {
		return err
	}

	if err := e.store.SetMeta("root", pa.Root); err != nil {
		return err
	}
	return e.store.SetMeta("last_analyzed", time.Now().UTC().Format(time.RFC3339))
}

// analysisFromCatalog rebuilds a FileAnalysis from stored rows. The
// document carries symbols and imports only; parse-level stats are not
// persisted.
func analysisFromCatalog(data *store.FileData) *FileAnalysis {
	doc := &Document{
		Source:   Source{Path: data.File.Path},
		Language: data.File.Language,
	}
	for _, sym := range data.Symbols {
		doc.Symbols = append(doc.Symbols, Symbol{
			Name:       sym.Name,
			Kind:       capsule.SymbolKind(sym.Kind),
			StartLine:  sym.StartLine,
			EndLine:    sym.EndLine,
			Signature:  sym.Signature,
			Complexity: sym.Complexity,
		})
	}
	for _, imp := range data.Imports {
		doc.Imports = append(doc.Imports, Import{Path: imp.Path, Line: imp.Line})
	}

	fa := &FileAnalysis{
		Path:     data.File.Path,
		Language: data.File.Language,
		Document: doc,
		Metrics:  Metrics{Language: data.File.Language},
		Reused:   true,
		id:       data.File.ID,
	}
	if m := data.Metrics; m != nil {
		fa.Metrics = Metrics{
			Language: data.File.Language,
			Lines: metrics.LineMetrics{
				Code:    m.CodeLines,
				Comment: m.CommentLines,
				Blank:   m.BlankLines,
				Total:   m.TotalLines,
			},
			Cyclomatic: m.Cyclomatic,
			Cognitive:  m.Cognitive,
			Halstead: metrics.Halstead{
				Volume:     m.HalsteadVolume,
				Difficulty: m.HalsteadDifficulty,
				Effort:     m.HalsteadEffort,
			},
			Maintainability: m.Maintainability,
			Functions:       m.Functions,
			Types:           m.Types,
			Imports:         m.Imports,
		}
	}
	for _, d := range data.Detections {
		fa.Detections = append(fa.Detections, Detection{
			Name:         d.Name,
			Category:     patterns.Category(d.Category),
			Confidence:   d.Confidence,
			VersionHints: d.VersionHints,
		})
	}
	for _, d := range data.Diagnostics {
		fa.Diagnostics = append(fa.Diagnostics, d.Message)
	}
	return fa
}

// catalogData converts one fresh analysis to its catalog
// representation.
func catalogData(fa *FileAnalysis, hash string, sizeBytes int) *store.FileData {
	d := &store.FileData{
		File: store.File{
			Path:         fa.Path,
			Language:     fa.Language,
			Hash:         hash,
			SizeBytes:    sizeBytes,
			LineCount:    fa.Metrics.Lines.Total,
			LastAnalyzed: time.Now().UTC(),
		},
	}
	if fa.Document != nil {
		for _, sym := range fa.Document.Symbols {
			d.Symbols = append(d.Symbols, store.Symbol{
				Name:       sym.Name,
				Kind:       string(sym.Kind),
				StartLine:  sym.StartLine,
				EndLine:    sym.EndLine,
				Signature:  sym.Signature,
				Complexity: sym.Complexity,
			})
		}
		for _, imp := range fa.Document.Imports {
			d.Imports = append(d.Imports, store.Import{Path: imp.Path, Line: imp.Line})
		}
		m := fa.Metrics
		d.Metrics = &store.Metrics{
			CodeLines:          m.Lines.Code,
			CommentLines:       m.Lines.Comment,
			BlankLines:         m.Lines.Blank,
			TotalLines:         m.Lines.Total,
			Cyclomatic:         m.Cyclomatic,
			Cognitive:          m.Cognitive,
			HalsteadVolume:     m.Halstead.Volume,
			HalsteadDifficulty: m.Halstead.Difficulty,
			HalsteadEffort:     m.Halstead.Effort,
			Maintainability:    m.Maintainability,
			Functions:          m.Functions,
			Types:              m.Types,
			Imports:            m.Imports,
		}
	}
	for _, det := range fa.Detections {
		d.Detections = append(d.Detections, store.Detection{
			Name:         det.Name,
			Category:     string(det.Category),
			Confidence:   det.Confidence,
			VersionHints: det.VersionHints,
		})
	}
	for _, diag := range fa.Diagnostics {
		d.Diagnostics = append(d.Diagnostics, store.Diagnostic{Message: diag})
	}
	return d
}
