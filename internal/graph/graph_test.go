package graph

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddNodeIdempotent(t *testing.T) {
	t.Parallel()

	g := New()
	first := g.AddNode("main.go")
	second := g.AddNode("main.go")

	assert.Equal(t, first, second)
	assert.Equal(t, 1, g.NodeCount())
	assert.True(t, g.HasNode("main.go"))
	assert.False(t, g.HasNode("other.go"))
}

func TestAddEdgeAutoCreatesEndpoints(t *testing.T) {
	t.Parallel()

	g := New()
	g.AddEdge("a.go", "b.go", 1, EdgeImport)

	assert.Equal(t, 2, g.NodeCount())
	assert.Equal(t, 1, g.EdgeCount())
	assert.Equal(t, []string{"a.go", "b.go"}, g.Nodes())
}

func TestAddEdgeParallelKinds(t *testing.T) {
	t.Parallel()

	g := New()
	g.AddEdge("a.go", "b.go", 1, EdgeImport)
	g.AddEdge("a.go", "b.go", 2, EdgeCall)

	require.Equal(t, 2, g.EdgeCount())
	edges := g.Edges()
	assert.Equal(t, EdgeImport, edges[0].Kind)
	assert.Equal(t, EdgeCall, edges[1].Kind)
	assert.Equal(t, 2, g.NodeCount())
}

func TestAddEdgeNonPositiveWeight(t *testing.T) {
	t.Parallel()

	g := New()
	g.AddEdge("a", "b", 0, EdgeImport)
	g.AddEdge("b", "c", -3, EdgeImport)

	edges := g.Edges()
	require.Len(t, edges, 2)
	assert.Equal(t, 1.0, edges[0].Weight)
	assert.Equal(t, 1.0, edges[1].Weight)
}

func TestNodesInsertionOrder(t *testing.T) {
	t.Parallel()

	g := New()
	g.AddNode("c")
	g.AddNode("a")
	g.AddEdge("a", "b", 1, EdgeImport)
	g.AddNode("c")

	assert.Equal(t, []string{"c", "a", "b"}, g.Nodes())
}

func TestNodesReturnsCopy(t *testing.T) {
	t.Parallel()

	g := New()
	g.AddNode("a")
	g.Nodes()[0] = "mutated"
	assert.Equal(t, []string{"a"}, g.Nodes())
}

func TestStatsStructure(t *testing.T) {
	t.Parallel()

	g := New()
	assert.Equal(t, Stats{}, g.Stats())

	g.AddEdge("a", "b", 1, EdgeImport)
	g.AddEdge("b", "a", 1, EdgeImport)
	s := g.Stats()
	assert.Equal(t, 2, s.Nodes)
	assert.Equal(t, 2, s.Edges)
	assert.InDelta(t, 1.0, s.AverageDegree, 1e-9)
	assert.InDelta(t, 1.0, s.Density, 1e-9)
	assert.Zero(t, s.Iterations)
	assert.False(t, s.Converged)
}

func TestDOT(t *testing.T) {
	t.Parallel()

	g := New()
	g.AddEdge("a.go", "b.go", 1, EdgeImport)

	plain := g.DOT(nil)
	assert.True(t, strings.HasPrefix(plain, "digraph dependencies {\n"))
	assert.True(t, strings.HasSuffix(plain, "}\n"))
	assert.Contains(t, plain, `"a.go";`)
	assert.Contains(t, plain, `"a.go" -> "b.go" [label="import", weight=1];`)

	labeled := g.DOT(map[string]float64{"a.go": 0.75, "b.go": 0.25})
	assert.Contains(t, labeled, `"a.go" [label="a.go\n0.7500"];`)
	assert.Contains(t, labeled, `"b.go" [label="b.go\n0.2500"];`)
}
