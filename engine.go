package keystone

import (
	"context"
	"errors"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/dverbeek/keystone/internal/capsule"
	"github.com/dverbeek/keystone/internal/config"
	"github.com/dverbeek/keystone/internal/metrics"
	"github.com/dverbeek/keystone/internal/patterns"
	"github.com/dverbeek/keystone/internal/scoring"
	"github.com/dverbeek/keystone/internal/store"
)

// Engine orchestrates the keystone pipeline: capsule parsing, metrics,
// pattern detection, graph centrality, and importance scoring. An Engine
// is safe for concurrent use once constructed.
type Engine struct {
	cfg      *config.Config
	registry *capsule.Registry
	metrics  *metrics.Engine
	patterns *patterns.Registry
	store    *store.Store
	cache    *lru.Cache[string, *capsule.Document]

	// languages restricts directory analysis; nil means all languages.
	languages []string
	dbPath    string
}

// Option configures an Engine. Options apply in order, so later options
// override earlier ones.
type Option func(*Engine)

// WithConfig replaces the engine configuration. A nil cfg is ignored.
func WithConfig(cfg *Config) Option {
	return func(e *Engine) {
		if cfg != nil {
			e.cfg = cfg
		}
	}
}

// WithStore attaches a SQLite catalog at path. Analysis results persist
// there, and files whose content hash is unchanged are reused on
// re-analysis instead of being parsed again.
func WithStore(path string) Option {
	return func(e *Engine) {
		e.dbPath = path
	}
}

// WithLanguages restricts which languages directory analysis will
// process, by id or alias. Single-file operations are unaffected.
func WithLanguages(languages ...string) Option {
	return func(e *Engine) {
		e.languages = languages
	}
}

// WithWeights overrides the importance score weights.
func WithWeights(w Weights) Option {
	return func(e *Engine) {
		e.cfg.Weights = w
	}
}

// WithMinConfidence sets the confidence floor below which pattern
// detections are discarded.
func WithMinConfidence(v float64) Option {
	return func(e *Engine) {
		e.cfg.MinConfidence = v
	}
}

// WithWorkers caps parse parallelism during directory analysis. Zero or
// negative selects one worker per CPU.
func WithWorkers(n int) Option {
	return func(e *Engine) {
		e.cfg.Workers = n
	}
}

// WithPatternFile loads extra pattern definitions on top of the
// built-in registry.
func WithPatternFile(path string) Option {
	return func(e *Engine) {
		e.cfg.PatternFile = path
	}
}

// WithIgnore adds gitignore-style patterns excluded from discovery.
func WithIgnore(globs ...string) Option {
	return func(e *Engine) {
		e.cfg.Ignore = append(e.cfg.Ignore, globs...)
	}
}

// New creates an Engine with every built-in language capsule and
// pattern definition registered. Without options it analyzes in memory
// with the default configuration; WithStore attaches a persistent
// catalog.
func New(opts ...Option) (*Engine, error) {
	e := &Engine{
		cfg:      config.Default(),
		registry: capsule.Builtin(),
		metrics:  metrics.New(metrics.DefaultWeights()),
		patterns: patterns.Builtin(),
	}
	for _, opt := range opts {
		opt(e)
	}

	if e.cfg.PatternFile != "" {
		if err := e.patterns.LoadFile(e.cfg.PatternFile); err != nil {
			return nil, fmt.Errorf("keystone: load pattern file: %w", err)
		}
	}

	size := e.cfg.CacheSize
	if size <= 0 {
		size = config.DefaultCacheSize
	}
	cache, err := lru.New[string, *capsule.Document](size)
	if err != nil {
		return nil, fmt.Errorf("keystone: create parse cache: %w", err)
	}
	e.cache = cache

	if e.dbPath != "" {
		s, err := store.NewStore(e.dbPath)
		if err != nil {
			return nil, fmt.Errorf("keystone: open catalog: %w", err)
		}
		if err := s.Migrate(); err != nil {
			s.Close()
			return nil, fmt.Errorf("keystone: migrate catalog: %w", err)
		}
		e.store = s
	}

	return e, nil
}

// LoadConfig reads a keystone.yaml configuration file, falling back to
// the defaults when the file does not exist. A present but malformed
// file is an error.
func LoadConfig(path string) (*Config, error) {
	return config.LoadIfPresent(path)
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	return config.Default()
}

// Close releases the catalog connection, if any.
func (e *Engine) Close() error {
	if e.store != nil {
		return e.store.Close()
	}
	return nil
}

// Store returns the attached catalog for direct access. Nil when the
// Engine was built without WithStore.
func (e *Engine) Store() *Store {
	return e.store
}

// Languages lists the registered language capsules in registration
// order.
func (e *Engine) Languages() []Language {
	return e.registry.Languages()
}

// DefaultParseOptions returns the options Parse callers use when they
// want full extraction with the default size limit.
func DefaultParseOptions() ParseOptions {
	return capsule.DefaultOptions()
}

// Parse runs one source unit through its language capsule. The
// descriptor's language hint beats extension detection; a descriptor no
// capsule supports fails with ErrUnsupportedLanguage, and content
// larger than opts.MaxBytes fails with ErrOversized.
func (e *Engine) Parse(ctx context.Context, src Source, content []byte, opts ParseOptions) (*Document, error) {
	return e.registry.Parse(ctx, src, content, opts)
}

// parseCached parses with the configured default options through the
// document cache, keyed by content hash and descriptor. Cached
// documents are shared, so callers must treat them as read-only.
func (e *Engine) parseCached(ctx context.Context, src Source, content []byte) (*Document, error) {
	key := store.ContentHash(content) + "\x00" + src.Path + "\x00" + src.LanguageHint
	if doc, ok := e.cache.Get(key); ok {
		return doc, nil
	}
	opts := capsule.DefaultOptions()
	opts.MaxBytes = e.cfg.MaxFileBytes
	doc, err := e.registry.Parse(ctx, src, content, opts)
	if err != nil {
		return nil, err
	}
	e.cache.Add(key, doc)
	return doc, nil
}

// FileAnalysis is the complete analysis result for one file.
type FileAnalysis struct {
	Path     string    `json:"path"`
	Language string    `json:"language,omitempty"`
	Document *Document `json:"document,omitempty"`
	Metrics  Metrics   `json:"metrics"`

	Detections  []Detection `json:"detections,omitempty"`
	Score       Score       `json:"score"`
	Diagnostics []string    `json:"diagnostics,omitempty"`

	// Reused marks a result rebuilt from catalog rows because the
	// file's content hash was unchanged since the previous run.
	Reused bool `json:"reused,omitempty"`

	// id is the catalog row id, zero without an attached store.
	id int64
}

// AnalyzeFile parses one file and derives its metrics, pattern
// detections, and an importance score with zero centrality. Oversized
// content and grammar failures degrade to a zeroed result carrying a
// diagnostic; only an unsupported language or a canceled context is an
// error.
func (e *Engine) AnalyzeFile(ctx context.Context, path string, content []byte) (*FileAnalysis, error) {
	src := Source{Path: path}
	doc, err := e.parseCached(ctx, src, content)
	if err != nil {
		if errors.Is(err, ErrUnsupportedLanguage) || ctx.Err() != nil {
			return nil, err
		}
		fa := &FileAnalysis{Path: path, Diagnostics: []string{err.Error()}}
		if c := e.registry.Resolve(src); c != nil {
			fa.Language = c.Language().ID
			fa.Metrics.Language = fa.Language
		}
		fa.Score = Score{Path: path}
		return fa, nil
	}

	fa := &FileAnalysis{
		Path:        path,
		Language:    doc.Language,
		Document:    doc,
		Metrics:     e.metrics.Compute(doc, content),
		Detections:  e.DetectPatterns(content, path),
		Diagnostics: doc.Diagnostics,
	}
	fa.Score = e.ScoreFile(path, content,
		scoring.ComplexityScore(fa.Metrics.Cyclomatic),
		scoring.DependencyScore(fa.Metrics.Imports))
	return fa, nil
}

// DetectPatterns matches content against the pattern registry and
// returns detections at or above the configured confidence floor. The
// file path, when given, is attached to each detection's metadata so
// batch callers can attribute detections to their source.
func (e *Engine) DetectPatterns(content []byte, filePath string) []Detection {
	detections := e.patterns.Detect(string(content), e.cfg.MinConfidence)
	if filePath == "" {
		return detections
	}
	for i := range detections {
		md := make(map[string]string, len(detections[i].Metadata)+1)
		for k, v := range detections[i].Metadata {
			md[k] = v
		}
		md["file"] = filePath
		detections[i].Metadata = md
	}
	return detections
}

// PatternDiagnostics reports pattern definitions skipped at
// registration time, such as definitions with invalid sub-pattern
// regexes.
func (e *Engine) PatternDiagnostics() []string {
	return e.patterns.Diagnostics()
}

// ScoreFile blends size, centrality, complexity, and dependency
// signals into one importance score under the configured weights.
// Centrality is zero at this surface; AnalyzeDirectory supplies it
// from the dependency graph.
func (e *Engine) ScoreFile(path string, content []byte, complexityScore, dependencyScore float64) Score {
	return scoring.ScoreFile(path, content, 0, complexityScore, dependencyScore, e.cfg.Weights)
}

// RankFiles orders a path-to-score map descending and keeps the top n
// entries. A non-positive n keeps everything.
func (e *Engine) RankFiles(scores map[string]float64, n int) []RankedFile {
	return scoring.RankFiles(scores, n)
}
