package keystone

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine(t *testing.T, opts ...Option) *Engine {
	t.Helper()
	e, err := New(opts...)
	require.NoError(t, err)
	t.Cleanup(func() { e.Close() })
	return e
}

func newCatalogEngine(t *testing.T, opts ...Option) *Engine {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "keystone.db")
	return newTestEngine(t, append([]Option{WithStore(dbPath)}, opts...)...)
}

const pyFlaskSource = `from flask import Flask

app = Flask(__name__)


@app.route("/")
def index():
    return "hello"
`

func TestNew_Defaults(t *testing.T) {
	e := newTestEngine(t)

	require.NotNil(t, e.registry)
	require.NotNil(t, e.patterns)
	require.NotNil(t, e.cache)
	assert.Nil(t, e.store)
	assert.Nil(t, e.Store())

	langs := e.Languages()
	require.NotEmpty(t, langs)
	ids := make(map[string]bool, len(langs))
	for _, l := range langs {
		ids[l.ID] = true
	}
	for _, want := range []string{"go", "python", "typescript", "rust", "yaml"} {
		assert.True(t, ids[want], "missing language %s", want)
	}
}

func TestNew_WithStore(t *testing.T) {
	e := newCatalogEngine(t)

	require.NotNil(t, e.Store())

	// Migration ran: the catalog accepts queries.
	files, err := e.Store().Files()
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestNew_InvalidStorePath(t *testing.T) {
	_, err := New(WithStore("/nonexistent/dir/keystone.db"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "keystone: open catalog")
}

func TestNew_WithConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Weights = Weights{Size: 0.5, Centrality: 0.5}
	cfg.MinConfidence = 0.9
	e := newTestEngine(t, WithConfig(cfg))

	assert.Equal(t, 0.5, e.cfg.Weights.Size)
	assert.Equal(t, 0.9, e.cfg.MinConfidence)
}

func TestNew_WithPatternFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "patterns.yaml")
	def := `patterns:
  - name: InternalSDK
    category: framework
    patterns:
      - "internal_sdk import"
`
	require.NoError(t, os.WriteFile(path, []byte(def), 0644))

	e := newTestEngine(t, WithPatternFile(path))

	detections := e.DetectPatterns([]byte("from internal_sdk import client"), "")
	require.Len(t, detections, 1)
	assert.Equal(t, "InternalSDK", detections[0].Name)
}

func TestNew_MissingPatternFile(t *testing.T) {
	_, err := New(WithPatternFile(filepath.Join(t.TempDir(), "absent.yaml")))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load pattern file")
}

func TestWithLanguages(t *testing.T) {
	e := newTestEngine(t, WithLanguages("go", "python"))
	assert.Equal(t, []string{"go", "python"}, e.languages)
}

func TestClose_WithoutStore(t *testing.T) {
	e, err := New()
	require.NoError(t, err)
	require.NoError(t, e.Close())
}

func TestParse_Go(t *testing.T) {
	e := newTestEngine(t)

	src := []byte("package main\n\nfunc main() {}\n")
	doc, err := e.Parse(context.Background(), Source{Path: "main.go"}, src, DefaultParseOptions())
	require.NoError(t, err)

	assert.Equal(t, "go", doc.Language)
	assert.Equal(t, 1, doc.FunctionCount())
}

func TestParse_UnsupportedLanguage(t *testing.T) {
	e := newTestEngine(t)

	_, err := e.Parse(context.Background(), Source{Path: "data.zzz"}, []byte("x"), DefaultParseOptions())
	require.ErrorIs(t, err, ErrUnsupportedLanguage)
}

func TestParse_Oversized(t *testing.T) {
	e := newTestEngine(t)

	opts := DefaultParseOptions()
	opts.MaxBytes = 4
	_, err := e.Parse(context.Background(), Source{Path: "main.go"}, []byte("package main"), opts)
	require.ErrorIs(t, err, ErrOversized)
}

func TestAnalyzeFile_Python(t *testing.T) {
	e := newTestEngine(t)

	fa, err := e.AnalyzeFile(context.Background(), "app.py", []byte(pyFlaskSource))
	require.NoError(t, err)

	assert.Equal(t, "app.py", fa.Path)
	assert.Equal(t, "python", fa.Language)
	require.NotNil(t, fa.Document)
	assert.Equal(t, 1, fa.Document.FunctionCount())

	lines := fa.Metrics.Lines
	assert.Equal(t, lines.Total, lines.Code+lines.Comment+lines.Blank)
	assert.Positive(t, lines.Code)

	names := make([]string, 0, len(fa.Detections))
	for _, d := range fa.Detections {
		names = append(names, d.Name)
	}
	assert.Contains(t, names, "Flask")

	assert.GreaterOrEqual(t, fa.Score.Overall, 0.0)
	assert.LessOrEqual(t, fa.Score.Overall, 1.0)
	assert.Zero(t, fa.Score.Centrality)
}

func TestAnalyzeFile_RustSingleFunction(t *testing.T) {
	e := newTestEngine(t)

	src := []byte("pub fn add(a: i32, b: i32) -> i32 { a + b }")
	fa, err := e.AnalyzeFile(context.Background(), "lib.rs", src)
	require.NoError(t, err)

	require.NotNil(t, fa.Document)
	require.Equal(t, 1, fa.Document.FunctionCount())
	assert.Equal(t, "add", fa.Document.Symbols[0].Name)
	assert.Equal(t, 1, fa.Metrics.Lines.Code)
	assert.Equal(t, 1, fa.Metrics.Cyclomatic)
}

func TestAnalyzeFile_UnsupportedLanguage(t *testing.T) {
	e := newTestEngine(t)

	_, err := e.AnalyzeFile(context.Background(), "notes.zzz", []byte("plain text"))
	require.ErrorIs(t, err, ErrUnsupportedLanguage)
}

func TestAnalyzeFile_OversizedDegrades(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxFileBytes = 8
	e := newTestEngine(t, WithConfig(cfg))

	fa, err := e.AnalyzeFile(context.Background(), "big.py", []byte("x = 1\ny = 2\nz = 3\n"))
	require.NoError(t, err)

	assert.Nil(t, fa.Document)
	assert.Equal(t, "python", fa.Language)
	assert.Zero(t, fa.Metrics.Lines.Total)
	require.NotEmpty(t, fa.Diagnostics)
	assert.Contains(t, fa.Diagnostics[0], "exceeds size limit")
	assert.Zero(t, fa.Score.Overall)
}

func TestAnalyzeFile_CachesDocument(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()
	src := []byte("package main\n\nfunc main() {}\n")

	first, err := e.AnalyzeFile(ctx, "main.go", src)
	require.NoError(t, err)
	second, err := e.AnalyzeFile(ctx, "main.go", src)
	require.NoError(t, err)

	assert.Same(t, first.Document, second.Document)
}

func TestAnalyzeFile_CanceledContext(t *testing.T) {
	e := newTestEngine(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := e.AnalyzeFile(ctx, "main.go", []byte("package main"))
	require.Error(t, err)
}

func TestDetectPatterns_AttachesFilePath(t *testing.T) {
	e := newTestEngine(t)

	detections := e.DetectPatterns([]byte(pyFlaskSource), "app.py")
	require.NotEmpty(t, detections)
	for _, d := range detections {
		assert.Equal(t, "app.py", d.Metadata["file"])
	}
}

func TestDetectPatterns_NoPathLeavesMetadata(t *testing.T) {
	e := newTestEngine(t)

	detections := e.DetectPatterns([]byte(pyFlaskSource), "")
	require.NotEmpty(t, detections)
	for _, d := range detections {
		assert.NotContains(t, d.Metadata, "file")
	}
}

func TestDetectPatterns_NoMatches(t *testing.T) {
	e := newTestEngine(t)

	detections := e.DetectPatterns([]byte("x = 1\n"), "plain.py")
	assert.Empty(t, detections)
}

func TestDetectPatterns_MinConfidenceFilters(t *testing.T) {
	// Only one of Flask's three sub-patterns matches, so confidence is
	// 1/3 and a 0.5 floor discards it.
	e := newTestEngine(t, WithMinConfidence(0.5))

	detections := e.DetectPatterns([]byte("from flask import Flask\n"), "")
	for _, d := range detections {
		assert.NotEqual(t, "Flask", d.Name)
	}
}

func TestScoreFile_BlendsSignals(t *testing.T) {
	e := newTestEngine(t)

	score := e.ScoreFile("a.py", []byte("x = 1\n"), 0.5, 0.25)
	assert.Equal(t, "a.py", score.Path)
	assert.Equal(t, 0.5, score.Complexity)
	assert.Equal(t, 0.25, score.Dependency)
	assert.Zero(t, score.Centrality)
	assert.GreaterOrEqual(t, score.Overall, 0.0)
	assert.LessOrEqual(t, score.Overall, 1.0)
}

func TestScoreFile_CustomWeights(t *testing.T) {
	// All weight on complexity makes the overall score the complexity
	// signal alone.
	e := newTestEngine(t, WithWeights(Weights{Complexity: 1}))

	score := e.ScoreFile("a.py", []byte("x = 1\n"), 0.7, 0.9)
	assert.InDelta(t, 0.7, score.Overall, 1e-9)
}

func TestRankFiles_Ordering(t *testing.T) {
	e := newTestEngine(t)

	ranked := e.RankFiles(map[string]float64{
		"a.py": 0.2,
		"b.py": 0.8,
		"c.py": 0.5,
	}, 2)
	require.Len(t, ranked, 2)
	assert.Equal(t, "b.py", ranked[0].Path)
	assert.Equal(t, 1, ranked[0].Rank)
	assert.Equal(t, "c.py", ranked[1].Path)
	assert.InDelta(t, 0.625, ranked[1].Normalized, 1e-9)
}

func TestPatternDiagnostics_InvalidRegex(t *testing.T) {
	path := filepath.Join(t.TempDir(), "patterns.yaml")
	def := `patterns:
  - name: Broken
    category: technology
    patterns:
      - "[unclosed"
`
	require.NoError(t, os.WriteFile(path, []byte(def), 0644))

	e := newTestEngine(t, WithPatternFile(path))

	diags := e.PatternDiagnostics()
	require.NotEmpty(t, diags)
	assert.Contains(t, diags[0], "Broken")
}
