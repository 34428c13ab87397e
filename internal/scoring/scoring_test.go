package scoring

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- weight tests ---

func TestDefaultWeightsSumToOne(t *testing.T) {
	t.Parallel()

	w := DefaultWeights()
	require.InDelta(t, 1.0, w.Size+w.Centrality+w.Complexity+w.Dependency, 1e-12)
}

func TestWeightsRenormalized(t *testing.T) {
	t.Parallel()

	content := []byte("package main\nfunc main() {}\n")

	// Ten-fold weights describe the same split and must score the same.
	scaled := ScoreFile("main.go", content, 0.5, 0.4, 0.2, Weights{
		Size:       2,
		Centrality: 3,
		Complexity: 3,
		Dependency: 2,
	})
	plain := ScoreFile("main.go", content, 0.5, 0.4, 0.2, DefaultWeights())
	require.InDelta(t, plain.Overall, scaled.Overall, 1e-12)

	equal := ScoreFile("main.go", content, 0.5, 0.4, 0.2, Weights{
		Size:       1,
		Centrality: 1,
		Complexity: 1,
		Dependency: 1,
	})
	require.InDelta(t, 0.25*SizeScore(content)+0.25*0.5+0.25*0.4+0.25*0.2, equal.Overall, 1e-12)
}

func TestZeroWeightsUseDefaults(t *testing.T) {
	t.Parallel()

	content := []byte("fn main() {}\n")
	got := ScoreFile("main.rs", content, 0.3, 0.1, 0.0, Weights{})
	want := ScoreFile("main.rs", content, 0.3, 0.1, 0.0, DefaultWeights())
	require.Equal(t, want, got)
}

// --- ScoreFile tests ---

func TestScoreFileComponentBreakdown(t *testing.T) {
	t.Parallel()

	content := []byte("package main\nfunc main() {}\n")
	s := ScoreFile("cmd/main.go", content, 0.5, 0.4, 0.2, DefaultWeights())

	assert.Equal(t, "cmd/main.go", s.Path)
	assert.Equal(t, 0.5, s.Centrality)
	assert.Equal(t, 0.4, s.Complexity)
	assert.Equal(t, 0.2, s.Dependency)

	// 2 lines, 28 bytes: size = 0.6*2/1000 + 0.4*28/100000.
	require.InDelta(t, 0.001312, s.Size, 1e-9)
	require.InDelta(t, 0.2*0.001312+0.3*0.5+0.3*0.4+0.2*0.2, s.Overall, 1e-9)
}

func TestScoreFileClampsOverall(t *testing.T) {
	t.Parallel()

	hot := ScoreFile("core.rs", []byte(strings.Repeat("line\n", 2000)), 1.0, 5.0, 3.0, Weights{
		Size:       1,
		Centrality: 1,
		Complexity: 1,
		Dependency: 1,
	})
	require.Equal(t, 1.0, hot.Overall)
	// Components pass through unclamped.
	assert.Equal(t, 5.0, hot.Complexity)
	assert.Equal(t, 3.0, hot.Dependency)

	cold := ScoreFile("odd.go", nil, -2.0, 0, 0, DefaultWeights())
	require.Zero(t, cold.Overall)
}

// --- signal normalizer tests ---

func TestSizeScoreSaturation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content []byte
		want    float64
	}{
		{"empty", nil, 0},
		{"three short lines", []byte("a\nb\nc\n"), 0.6*3.0/1000 + 0.4*6.0/100000},
		{"no trailing newline", []byte("a"), 0.6*1.0/1000 + 0.4*1.0/100000},
		{"line ceiling", []byte(strings.Repeat("x\n", 1000)), 0.6 + 0.4*2000.0/100000},
		{"both ceilings", bytes.Repeat([]byte("0123456789\n"), 20000), 1.0},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := SizeScore(tt.content)
			require.InDelta(t, tt.want, got, 1e-9)
			assert.LessOrEqual(t, got, 1.0)
		})
	}
}

func TestComplexityScore(t *testing.T) {
	t.Parallel()

	tests := []struct {
		cyclomatic int
		want       float64
	}{
		{0, 0},
		{1, 0.02},
		{25, 0.5},
		{50, 1},
		{500, 1},
		{-3, 0},
	}
	for _, tt := range tests {
		require.InDelta(t, tt.want, ComplexityScore(tt.cyclomatic), 1e-12)
	}
}

func TestDependencyScore(t *testing.T) {
	t.Parallel()

	tests := []struct {
		imports int
		want    float64
	}{
		{0, 0},
		{5, 0.2},
		{25, 1},
		{100, 1},
		{-1, 0},
	}
	for _, tt := range tests {
		require.InDelta(t, tt.want, DependencyScore(tt.imports), 1e-12)
	}
}

// --- RankFiles tests ---

func TestRankFilesOrdering(t *testing.T) {
	t.Parallel()

	scores := map[string]float64{
		"a.go": 0.2,
		"b.go": 0.9,
		"c.go": 0.5,
	}
	ranked := RankFiles(scores, 0)
	require.Len(t, ranked, 3)

	assert.Equal(t, "b.go", ranked[0].Path)
	assert.Equal(t, "c.go", ranked[1].Path)
	assert.Equal(t, "a.go", ranked[2].Path)

	assert.Equal(t, 1, ranked[0].Rank)
	assert.Equal(t, 2, ranked[1].Rank)
	assert.Equal(t, 3, ranked[2].Rank)

	assert.Equal(t, 1.0, ranked[0].Normalized)
	assert.InDelta(t, 0.5/0.9, ranked[1].Normalized, 1e-12)
	assert.InDelta(t, 0.2/0.9, ranked[2].Normalized, 1e-12)
}

func TestRankFilesTopN(t *testing.T) {
	t.Parallel()

	scores := map[string]float64{
		"a.go": 0.2,
		"b.go": 0.9,
		"c.go": 0.5,
	}
	top := RankFiles(scores, 2)
	require.Len(t, top, 2)
	assert.Equal(t, "b.go", top[0].Path)
	assert.Equal(t, "c.go", top[1].Path)

	all := RankFiles(scores, 10)
	require.Len(t, all, 3)
}

func TestRankFilesTieBreaksOnPath(t *testing.T) {
	t.Parallel()

	scores := map[string]float64{
		"z.go": 0.5,
		"a.go": 0.5,
		"m.go": 0.5,
	}
	first := RankFiles(scores, 0)
	require.Len(t, first, 3)
	assert.Equal(t, "a.go", first[0].Path)
	assert.Equal(t, "m.go", first[1].Path)
	assert.Equal(t, "z.go", first[2].Path)
	for _, r := range first {
		assert.Equal(t, 1.0, r.Normalized)
	}

	second := RankFiles(scores, 0)
	require.Equal(t, first, second)
}

func TestRankFilesEdgeCases(t *testing.T) {
	t.Parallel()

	require.Empty(t, RankFiles(nil, 5))

	zeroes := RankFiles(map[string]float64{"a.go": 0, "b.go": 0}, 0)
	require.Len(t, zeroes, 2)
	for _, r := range zeroes {
		assert.Zero(t, r.Normalized)
	}
}
