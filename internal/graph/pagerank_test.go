package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sumScores(scores map[string]float64) float64 {
	total := 0.0
	for _, s := range scores {
		total += s
	}
	return total
}

func TestPageRankEmptyGraph(t *testing.T) {
	t.Parallel()

	res := New().PageRank(DefaultOptions())
	assert.Empty(t, res.Scores)
	assert.Equal(t, Stats{}, res.Stats)
}

func TestPageRankSingleNode(t *testing.T) {
	t.Parallel()

	g := New()
	g.AddNode("solo")
	res := g.PageRank(DefaultOptions())

	require.Len(t, res.Scores, 1)
	assert.InDelta(t, 1.0, res.Scores["solo"], 1e-9)
	assert.True(t, res.Stats.Converged)
}

func TestPageRankCycleSymmetry(t *testing.T) {
	t.Parallel()

	g := New()
	g.AddEdge("a", "b", 1, EdgeImport)
	g.AddEdge("b", "c", 1, EdgeImport)
	g.AddEdge("c", "a", 1, EdgeImport)

	res := g.PageRank(DefaultOptions())
	require.Len(t, res.Scores, 3)

	assert.InDelta(t, 1.0/3, res.Scores["a"], 1e-6)
	assert.InDelta(t, res.Scores["a"], res.Scores["b"], 1e-9)
	assert.InDelta(t, res.Scores["b"], res.Scores["c"], 1e-9)
	assert.InDelta(t, 1.0, sumScores(res.Scores), 1e-9)
	assert.True(t, res.Stats.Converged)
}

func TestPageRankNewcomerRanksLowest(t *testing.T) {
	t.Parallel()

	g := New()
	g.AddEdge("a", "b", 1, EdgeImport)
	g.AddEdge("b", "c", 1, EdgeImport)
	g.AddEdge("c", "a", 1, EdgeImport)
	g.AddEdge("d", "a", 1, EdgeImport)

	scores := g.Centrality()
	require.Len(t, scores, 4)

	// d has no inbound references, so it keeps only its teleport share.
	assert.InDelta(t, 0.15/4, scores["d"], 1e-9)
	for _, id := range []string{"a", "b", "c"} {
		assert.Less(t, scores["d"], scores[id], "d should rank below %s", id)
	}
}

func TestPageRankFavorsSharedDependency(t *testing.T) {
	t.Parallel()

	g := New()
	g.AddEdge("a", "b", 1, EdgeImport)
	g.AddEdge("b", "c", 1, EdgeImport)
	g.AddEdge("a", "c", 1, EdgeImport)

	scores := g.Centrality()
	assert.Greater(t, scores["c"], scores["a"])
	assert.Greater(t, scores["c"], scores["b"])
}

func TestPageRankWeightedDistribution(t *testing.T) {
	t.Parallel()

	g := New()
	g.AddEdge("s", "x", 3, EdgeImport)
	g.AddEdge("s", "y", 1, EdgeImport)

	res := g.PageRank(DefaultOptions())
	assert.Greater(t, res.Scores["x"], res.Scores["y"])
	assert.InDelta(t, 1.0, sumScores(res.Scores), 1e-9)
}

func TestPageRankDanglingMassPreserved(t *testing.T) {
	t.Parallel()

	// b and c have no outgoing edges at all.
	g := New()
	g.AddEdge("a", "b", 1, EdgeImport)
	g.AddEdge("a", "c", 1, EdgeImport)

	res := g.PageRank(DefaultOptions())
	assert.InDelta(t, 1.0, sumScores(res.Scores), 1e-9)
	assert.True(t, res.Stats.Converged)
}

func TestPageRankDeterministic(t *testing.T) {
	t.Parallel()

	build := func() *Graph {
		g := New()
		g.AddEdge("core.go", "util.go", 2, EdgeImport)
		g.AddEdge("api.go", "core.go", 1, EdgeImport)
		g.AddEdge("api.go", "util.go", 1, EdgeCall)
		g.AddEdge("cmd.go", "api.go", 1, EdgeImport)
		return g
	}

	first := build().PageRank(DefaultOptions())
	second := build().PageRank(DefaultOptions())
	assert.Equal(t, first.Scores, second.Scores)
	assert.Equal(t, first.Stats, second.Stats)

	// Re-running on the same instance reproduces the same scores too.
	g := build()
	assert.Equal(t, g.PageRank(DefaultOptions()), g.PageRank(DefaultOptions()))
}

func TestPageRankZeroOptionsUseDefaults(t *testing.T) {
	t.Parallel()

	g := New()
	g.AddEdge("a", "b", 1, EdgeImport)
	g.AddEdge("b", "a", 1, EdgeImport)

	assert.Equal(t, g.PageRank(DefaultOptions()), g.PageRank(Options{}))
}

func TestPageRankIterationCap(t *testing.T) {
	t.Parallel()

	g := New()
	g.AddEdge("a", "b", 1, EdgeImport)
	g.AddEdge("b", "c", 1, EdgeImport)
	g.AddEdge("c", "a", 1, EdgeImport)
	g.AddEdge("d", "a", 1, EdgeImport)

	res := g.PageRank(Options{MaxIter: 1})
	assert.Equal(t, 1, res.Stats.Iterations)
	assert.False(t, res.Stats.Converged)
}

func TestPageRankStats(t *testing.T) {
	t.Parallel()

	g := New()
	g.AddEdge("a", "b", 1, EdgeImport)
	g.AddEdge("b", "c", 1, EdgeImport)
	g.AddEdge("c", "a", 1, EdgeImport)

	res := g.PageRank(DefaultOptions())
	assert.Equal(t, 3, res.Stats.Nodes)
	assert.Equal(t, 3, res.Stats.Edges)
	assert.InDelta(t, 1.0, res.Stats.AverageDegree, 1e-9)
	assert.InDelta(t, 0.5, res.Stats.Density, 1e-9)
	assert.True(t, res.Stats.Converged)
	assert.Positive(t, res.Stats.Iterations)
	assert.LessOrEqual(t, res.Stats.Iterations, 100)
}
