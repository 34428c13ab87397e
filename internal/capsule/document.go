package capsule

// Source identifies one input to a parse request. The byte content travels
// separately so a descriptor can be built before the file is read.
type Source struct {
	// Path is the file path, used for extension-based resolution and
	// reporting. May be empty when LanguageHint is set.
	Path string `json:"path"`
	// LanguageHint is an optional explicit language name or alias. When
	// set it overrides extension-based resolution.
	LanguageHint string `json:"language_hint,omitempty"`
}

// SymbolKind classifies an extracted definition.
type SymbolKind string

const (
	SymbolFunction  SymbolKind = "function"
	SymbolMethod    SymbolKind = "method"
	SymbolClass     SymbolKind = "class"
	SymbolStruct    SymbolKind = "struct"
	SymbolInterface SymbolKind = "interface"
	SymbolTrait     SymbolKind = "trait"
	SymbolEnum      SymbolKind = "enum"
	SymbolModule    SymbolKind = "module"
	SymbolType      SymbolKind = "type"
)

// Symbol is one extracted definition (function, class, struct, ...).
type Symbol struct {
	Name      string     `json:"name"`
	Kind      SymbolKind `json:"kind"`
	StartLine int        `json:"start_line"` // 1-based; 0 when unknown
	EndLine   int        `json:"end_line"`
	Signature string     `json:"signature,omitempty"`
	// Complexity is the grammar-aware cyclomatic complexity for function
	// and method symbols, baseline 1. Zero when not computed.
	Complexity int `json:"complexity,omitempty"`
}

// Import is one extracted import/include/require reference.
type Import struct {
	Path string `json:"path"`
	Line int    `json:"line"` // 1-based
}

// Comment is one extracted comment, raw text including markers.
type Comment struct {
	Text      string `json:"text"`
	StartLine int    `json:"start_line"`
	EndLine   int    `json:"end_line"`
}

// Span is a half-open byte range [Start, End) into the source.
type Span struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Stats holds basic size figures for one parsed unit.
type Stats struct {
	ByteLength  int `json:"byte_length"`
	TotalNodes  int `json:"total_nodes"`
	TotalTokens int `json:"total_tokens"` // whitespace-separated token count
}

// Counts holds raw tree-derived tallies the metrics engine consumes.
// All zero when no syntax tree was available.
type Counts struct {
	// Branches is the number of decision points in the file (if, loops,
	// case arms, boolean short-circuits).
	Branches int `json:"branches"`
	// Cognitive is the nesting-weighted decision count.
	Cognitive int `json:"cognitive"`

	DistinctOperators int `json:"distinct_operators"`
	DistinctOperands  int `json:"distinct_operands"`
	TotalOperators    int `json:"total_operators"`
	TotalOperands     int `json:"total_operands"`
}

// Document is the normalized output of a capsule for one source unit.
// It is produced once per parse call and owned by the caller; capsules
// retain no reference to it after returning.
type Document struct {
	Source   Source `json:"source"`
	Language string `json:"language"`

	Symbols  []Symbol  `json:"symbols,omitempty"`
	Imports  []Import  `json:"imports,omitempty"`
	Comments []Comment `json:"comments,omitempty"`

	// CommentSpans covers every comment node's byte range regardless of
	// the CollectComments option; the metrics engine uses it for line
	// classification.
	CommentSpans []Span `json:"-"`

	// Diagnostics are non-fatal notes: syntax error counts, entrypoint
	// hints, degraded-parse explanations.
	Diagnostics []string `json:"diagnostics,omitempty"`

	// Metadata carries free-form per-language extras (e.g. the Go
	// package name).
	Metadata map[string]string `json:"metadata,omitempty"`

	Stats  Stats  `json:"stats"`
	Counts Counts `json:"counts"`
}

// Parsed reports whether a syntax tree backed this document. Degraded
// documents produced from unparseable input report false.
func (d *Document) Parsed() bool {
	return d.Stats.TotalNodes > 0
}

// FunctionCount counts function and method symbols.
func (d *Document) FunctionCount() int {
	n := 0
	for _, s := range d.Symbols {
		if s.Kind == SymbolFunction || s.Kind == SymbolMethod {
			n++
		}
	}
	return n
}

// TypeCount counts type-like symbols (classes, structs, interfaces,
// traits, enums).
func (d *Document) TypeCount() int {
	n := 0
	for _, s := range d.Symbols {
		switch s.Kind {
		case SymbolClass, SymbolStruct, SymbolInterface, SymbolTrait, SymbolEnum:
			n++
		}
	}
	return n
}

// DefaultMaxBytes is the default pre-parse size limit.
const DefaultMaxBytes = 1_000_000 // 1 MB

// Options control one parse request.
type Options struct {
	// MaxBytes rejects inputs larger than this before parsing.
	// Zero means no limit.
	MaxBytes int
	// CollectSymbols toggles the symbol extraction pass.
	CollectSymbols bool
	// CollectComments toggles materializing comment text. Comment byte
	// spans are always collected.
	CollectComments bool
}

// DefaultOptions returns the options used when callers pass nothing
// more specific: full extraction with the default size limit.
func DefaultOptions() Options {
	return Options{
		MaxBytes:        DefaultMaxBytes,
		CollectSymbols:  true,
		CollectComments: true,
	}
}
