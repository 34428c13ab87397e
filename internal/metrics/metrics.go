// Package metrics derives numeric code metrics from parsed documents
// plus raw source text. Computation never fails: anything that cannot
// be measured for a given input reports zero (or a neutral default)
// so that one odd file never blocks a batch.
package metrics

import (
	"math"

	"github.com/dverbeek/keystone/internal/capsule"
)

// LineMetrics is the per-file line classification. Code, Comment and
// Blank always sum to Total.
type LineMetrics struct {
	Code    int `json:"code"`
	Comment int `json:"comment"`
	Blank   int `json:"blank"`
	Total   int `json:"total"`
}

// Halstead holds the classic Halstead software-science figures derived
// from operator/operand counts. Languages without an operator/operand
// classification report the zero value.
type Halstead struct {
	DistinctOperators int     `json:"distinct_operators"`
	DistinctOperands  int     `json:"distinct_operands"`
	TotalOperators    int     `json:"total_operators"`
	TotalOperands     int     `json:"total_operands"`
	Vocabulary        int     `json:"vocabulary"`
	Length            int     `json:"length"`
	Volume            float64 `json:"volume"`
	Difficulty        float64 `json:"difficulty"`
	Effort            float64 `json:"effort"`
	Time              float64 `json:"time"`
	Bugs              float64 `json:"bugs"`
}

// Metrics is the full derived metric set for one file. It is computed
// fresh from a document and is never updated in place.
type Metrics struct {
	Language        string      `json:"language,omitempty"`
	Lines           LineMetrics `json:"lines"`
	Cyclomatic      int         `json:"cyclomatic"`
	Cognitive       int         `json:"cognitive"`
	Halstead        Halstead    `json:"halstead"`
	Maintainability float64     `json:"maintainability"`
	Functions       int         `json:"functions"`
	Types           int         `json:"types"`
	Imports         int         `json:"imports"`
}

// Weights are the maintainability-index coefficients. The index is
//
//	base - volume*ln(V) - cyclomatic*CC - lines*ln(LOC)
//
// clamped to [0, base] and scaled to [0, 100]. The coefficients are
// configuration, not per-language constants.
type Weights struct {
	Base       float64 `json:"base" yaml:"base"`
	Volume     float64 `json:"volume" yaml:"volume"`
	Cyclomatic float64 `json:"cyclomatic" yaml:"cyclomatic"`
	Lines      float64 `json:"lines" yaml:"lines"`
}

// DefaultWeights returns the standard maintainability-index
// coefficients.
func DefaultWeights() Weights {
	return Weights{
		Base:       171,
		Volume:     5.2,
		Cyclomatic: 0.23,
		Lines:      16.2,
	}
}

// Engine computes metrics. The zero-cost construction makes it safe to
// share one engine across workers.
type Engine struct {
	weights Weights
}

// New returns an engine using the given maintainability weights. A
// zero Base selects the defaults.
func New(w Weights) *Engine {
	if w.Base == 0 {
		w = DefaultWeights()
	}
	return &Engine{weights: w}
}

// Compute derives the full metric set for one file. A nil or degraded
// document (no syntax tree) yields line figures from the raw text, a
// token-scan cyclomatic estimate and zeroed Halstead numbers.
func (e *Engine) Compute(doc *capsule.Document, source []byte) Metrics {
	if doc == nil {
		doc = &capsule.Document{}
	}

	m := Metrics{
		Language:  doc.Language,
		Lines:     ClassifyLines(source, doc.CommentSpans),
		Functions: doc.FunctionCount(),
		Types:     doc.TypeCount(),
		Imports:   len(doc.Imports),
	}

	if doc.Parsed() {
		m.Cyclomatic = doc.Counts.Branches + 1
		m.Cognitive = doc.Counts.Cognitive
		m.Halstead = halstead(doc.Counts)
	} else {
		m.Cyclomatic = FallbackCyclomatic(source)
	}

	m.Maintainability = e.maintainability(m.Halstead.Volume, m.Cyclomatic, m.Lines.Code)
	return m
}

func halstead(c capsule.Counts) Halstead {
	h := Halstead{
		DistinctOperators: c.DistinctOperators,
		DistinctOperands:  c.DistinctOperands,
		TotalOperators:    c.TotalOperators,
		TotalOperands:     c.TotalOperands,
		Vocabulary:        c.DistinctOperators + c.DistinctOperands,
		Length:            c.TotalOperators + c.TotalOperands,
	}
	if h.Vocabulary == 0 || h.Length == 0 {
		return h
	}
	h.Volume = float64(h.Length) * math.Log2(float64(h.Vocabulary))
	if c.DistinctOperands > 0 {
		h.Difficulty = float64(c.DistinctOperators) / 2 * float64(c.TotalOperands) / float64(c.DistinctOperands)
	}
	h.Effort = h.Difficulty * h.Volume
	h.Time = h.Effort / 18
	h.Bugs = h.Volume / 3000
	return h
}

// maintainability evaluates the index on a 0..100 scale. Logarithm
// arguments are floored at 1 so empty inputs stay defined.
func (e *Engine) maintainability(volume float64, cyclomatic, codeLines int) float64 {
	w := e.weights
	raw := w.Base -
		w.Volume*math.Log(math.Max(volume, 1)) -
		w.Cyclomatic*float64(cyclomatic) -
		w.Lines*math.Log(math.Max(float64(codeLines), 1))
	if raw < 0 {
		raw = 0
	}
	if raw > w.Base {
		raw = w.Base
	}
	return raw * 100 / w.Base
}
