// Package scoring combines independent per-file signals into one
// bounded importance score. Size and centrality are universal; the
// complexity and dependency inputs come from whatever produced them,
// typically the metrics engine and the import extractor.
package scoring

import (
	"bytes"
	"math"
	"sort"
)

// Saturation ceilings for the signal normalizers. At or past a
// ceiling the signal contributes its full share and stops growing.
const (
	lineSaturation       = 1000
	byteSaturation       = 100_000
	complexitySaturation = 50
	dependencySaturation = 25
)

// Weights distribute the overall score across its four signals.
// Weights that do not sum to 1 are scaled so they do; an all-zero
// value selects the defaults.
type Weights struct {
	Size       float64 `json:"size" yaml:"size"`
	Centrality float64 `json:"centrality" yaml:"centrality"`
	Complexity float64 `json:"complexity" yaml:"complexity"`
	Dependency float64 `json:"dependency" yaml:"dependency"`
}

// DefaultWeights returns the standard signal split: structural
// position and reported complexity weigh equally, ahead of raw size
// and dependency fan-out.
func DefaultWeights() Weights {
	return Weights{
		Size:       0.2,
		Centrality: 0.3,
		Complexity: 0.3,
		Dependency: 0.2,
	}
}

// normalized scales the weights to sum to 1. A non-positive sum falls
// back to the defaults.
func (w Weights) normalized() Weights {
	sum := w.Size + w.Centrality + w.Complexity + w.Dependency
	if sum <= 0 {
		return DefaultWeights()
	}
	if math.Abs(sum-1) < 1e-9 {
		return w
	}
	return Weights{
		Size:       w.Size / sum,
		Centrality: w.Centrality / sum,
		Complexity: w.Complexity / sum,
		Dependency: w.Dependency / sum,
	}
}

// Score is the terminal importance aggregate for one file: the
// weighted overall figure plus the component signals it was built
// from. Recomputed whenever an input changes, never patched in place.
type Score struct {
	Path       string  `json:"file_path"`
	Overall    float64 `json:"overall_score"`
	Size       float64 `json:"file_size_score"`
	Centrality float64 `json:"centrality_score"`
	Complexity float64 `json:"complexity_score"`
	Dependency float64 `json:"dependency_score"`
}

// SizeScore rates content size on [0, 1]. Line and byte counts
// saturate at fixed ceilings and blend with lines carrying most of
// the weight, since line count tracks amount of logic better than
// raw bytes.
func SizeScore(content []byte) float64 {
	lineScore := math.Min(float64(countLines(content))/lineSaturation, 1)
	byteScore := math.Min(float64(len(content))/byteSaturation, 1)
	return math.Min(lineScore*0.6+byteScore*0.4, 1)
}

// ComplexityScore maps a cyclomatic complexity figure onto [0, 1],
// saturating at complexitySaturation.
func ComplexityScore(cyclomatic int) float64 {
	if cyclomatic < 0 {
		return 0
	}
	return math.Min(float64(cyclomatic)/complexitySaturation, 1)
}

// DependencyScore maps an import fan-out count onto [0, 1],
// saturating at dependencySaturation.
func DependencyScore(imports int) float64 {
	if imports < 0 {
		return 0
	}
	return math.Min(float64(imports)/dependencySaturation, 1)
}

// ScoreFile aggregates the four signals for one file under the given
// weights. The size component is computed from content here; the
// centrality, complexity and dependency components are supplied by
// the caller. Overall is clamped to [0, 1].
func ScoreFile(path string, content []byte, centrality, complexity, dependency float64, w Weights) Score {
	w = w.normalized()
	size := SizeScore(content)
	overall := size*w.Size +
		centrality*w.Centrality +
		complexity*w.Complexity +
		dependency*w.Dependency
	return Score{
		Path:       path,
		Overall:    clamp01(overall),
		Size:       size,
		Centrality: centrality,
		Complexity: complexity,
		Dependency: dependency,
	}
}

// RankedFile is one row of a ranked listing. Rank is 1-based with 1
// the highest score; Normalized is the score divided by the best
// score in the listing.
type RankedFile struct {
	Path       string  `json:"path"`
	Score      float64 `json:"score"`
	Normalized float64 `json:"normalized_score"`
	Rank       int     `json:"rank"`
}

// RankFiles orders scores descending and annotates each entry with
// its rank position and max-normalized score. Ties break on path so
// repeated runs produce identical listings. A non-positive n, or one
// past the input size, returns every file.
func RankFiles(scores map[string]float64, n int) []RankedFile {
	ranked := make([]RankedFile, 0, len(scores))
	for path, score := range scores {
		ranked = append(ranked, RankedFile{Path: path, Score: score})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		return ranked[i].Path < ranked[j].Path
	})
	if n <= 0 || n > len(ranked) {
		n = len(ranked)
	}
	ranked = ranked[:n]

	var best float64
	if len(ranked) > 0 {
		best = ranked[0].Score
	}
	for i := range ranked {
		ranked[i].Rank = i + 1
		if best > 0 {
			ranked[i].Normalized = ranked[i].Score / best
		}
	}
	return ranked
}

// countLines counts newline-terminated lines, with a trailing partial
// line counting as one.
func countLines(content []byte) int {
	if len(content) == 0 {
		return 0
	}
	n := bytes.Count(content, []byte{'\n'})
	if content[len(content)-1] != '\n' {
		n++
	}
	return n
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
