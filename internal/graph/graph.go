// Package graph models inter-file references as a directed weighted
// multigraph and ranks nodes by PageRank centrality.
package graph

import (
	"fmt"
	"strings"
)

// EdgeKind classifies why one node references another.
type EdgeKind string

const (
	EdgeImport  EdgeKind = "import"
	EdgeCall    EdgeKind = "call"
	EdgeInclude EdgeKind = "include"
	EdgeDepends EdgeKind = "depends"
)

// Edge is one directed reference between two nodes. Parallel edges
// between the same pair with different kinds are allowed.
type Edge struct {
	From   string
	To     string
	Weight float64
	Kind   EdgeKind
}

// Graph is a directed weighted multigraph keyed by string node ids.
// Nodes iterate in insertion order, so centrality runs on an unchanged
// graph reproduce bit-identical scores. Not safe for concurrent
// mutation.
type Graph struct {
	nodes []string
	index map[string]int
	edges []Edge
}

func New() *Graph {
	return &Graph{index: make(map[string]int)}
}

// AddNode registers id and returns its handle. Re-adding an existing
// id returns the existing handle without creating a duplicate.
func (g *Graph) AddNode(id string) int {
	if idx, ok := g.index[id]; ok {
		return idx
	}
	idx := len(g.nodes)
	g.nodes = append(g.nodes, id)
	g.index[id] = idx
	return idx
}

// AddEdge records a directed edge, creating missing endpoints. Rank
// distribution needs positive weights, so anything non-positive is
// recorded as weight 1.
func (g *Graph) AddEdge(from, to string, weight float64, kind EdgeKind) {
	g.AddNode(from)
	g.AddNode(to)
	if weight <= 0 {
		weight = 1
	}
	g.edges = append(g.edges, Edge{From: from, To: to, Weight: weight, Kind: kind})
}

func (g *Graph) HasNode(id string) bool {
	_, ok := g.index[id]
	return ok
}

func (g *Graph) NodeCount() int { return len(g.nodes) }

func (g *Graph) EdgeCount() int { return len(g.edges) }

// Nodes returns the node ids in insertion order.
func (g *Graph) Nodes() []string {
	out := make([]string, len(g.nodes))
	copy(out, g.nodes)
	return out
}

// Edges returns all edges in insertion order.
func (g *Graph) Edges() []Edge {
	out := make([]Edge, len(g.edges))
	copy(out, g.edges)
	return out
}

// Stats reports the structural shape of the graph. Iterations and
// Converged stay zero until a centrality run fills them in.
func (g *Graph) Stats() Stats {
	s := Stats{Nodes: len(g.nodes), Edges: len(g.edges)}
	if s.Nodes > 0 {
		s.AverageDegree = float64(s.Edges) / float64(s.Nodes)
	}
	if s.Nodes > 1 {
		s.Density = float64(s.Edges) / float64(s.Nodes*(s.Nodes-1))
	}
	return s
}

// DOT renders the graph in Graphviz format. When scores are given,
// node labels carry their centrality.
func (g *Graph) DOT(scores map[string]float64) string {
	var b strings.Builder
	b.WriteString("digraph dependencies {\n")
	b.WriteString("  rankdir=LR;\n")
	b.WriteString("  node [shape=box, fontsize=10];\n")
	for _, id := range g.nodes {
		if score, ok := scores[id]; ok {
			fmt.Fprintf(&b, "  %q [label=%q];\n", id, fmt.Sprintf("%s\n%.4f", id, score))
		} else {
			fmt.Fprintf(&b, "  %q;\n", id)
		}
	}
	for _, e := range g.edges {
		fmt.Fprintf(&b, "  %q -> %q [label=%q, weight=%g];\n", e.From, e.To, string(e.Kind), e.Weight)
	}
	b.WriteString("}\n")
	return b.String()
}
