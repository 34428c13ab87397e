package graph

import "math"

// Options tunes the centrality power iteration. Zero fields select
// the corresponding default.
type Options struct {
	Damping   float64
	MaxIter   int
	Tolerance float64
}

// DefaultOptions returns the standard PageRank parameters.
func DefaultOptions() Options {
	return Options{Damping: 0.85, MaxIter: 100, Tolerance: 1e-6}
}

// Stats describes a graph and the centrality run performed over it.
type Stats struct {
	Nodes         int     `json:"nodes"`
	Edges         int     `json:"edges"`
	AverageDegree float64 `json:"average_degree"`
	Density       float64 `json:"density"`
	Iterations    int     `json:"iterations"`
	Converged     bool    `json:"converged"`
}

// Result holds the scores of one centrality run.
type Result struct {
	Scores map[string]float64
	Stats  Stats
}

// Centrality runs PageRank with default options and returns the raw
// score per node id. Scores across the whole graph sum to one.
func (g *Graph) Centrality() map[string]float64 {
	return g.PageRank(DefaultOptions()).Scores
}

// PageRank runs sparse power iteration: every node starts at 1/n, each
// sweep hands out a node's damped rank proportionally across its
// outgoing edge weights plus an even teleport share, and iteration
// stops when the L1 movement drops under Tolerance or MaxIter sweeps
// complete. Rank held by dangling nodes spreads evenly over the whole
// graph so total mass stays one.
func (g *Graph) PageRank(opts Options) Result {
	stats := g.Stats()
	n := len(g.nodes)
	if n == 0 {
		return Result{Scores: map[string]float64{}, Stats: stats}
	}
	if opts.Damping == 0 {
		opts.Damping = 0.85
	}
	if opts.MaxIter == 0 {
		opts.MaxIter = 100
	}
	if opts.Tolerance == 0 {
		opts.Tolerance = 1e-6
	}

	type arc struct {
		to     int
		weight float64
	}
	arcs := make([][]arc, n)
	outWeight := make([]float64, n)
	for _, e := range g.edges {
		from, to := g.index[e.From], g.index[e.To]
		arcs[from] = append(arcs[from], arc{to: to, weight: e.Weight})
		outWeight[from] += e.Weight
	}

	rank := make([]float64, n)
	next := make([]float64, n)
	for i := range rank {
		rank[i] = 1.0 / float64(n)
	}
	teleport := (1.0 - opts.Damping) / float64(n)

	for stats.Iterations < opts.MaxIter && !stats.Converged {
		for i := range next {
			next[i] = teleport
		}
		for i := 0; i < n; i++ {
			if outWeight[i] > 0 {
				share := opts.Damping * rank[i] / outWeight[i]
				for _, a := range arcs[i] {
					next[a.to] += share * a.weight
				}
			} else {
				share := opts.Damping * rank[i] / float64(n)
				for j := range next {
					next[j] += share
				}
			}
		}

		diff := 0.0
		for i := range rank {
			diff += math.Abs(next[i] - rank[i])
		}
		rank, next = next, rank
		stats.Iterations++
		if diff < opts.Tolerance {
			stats.Converged = true
		}
	}

	scores := make(map[string]float64, n)
	for i, id := range g.nodes {
		scores[id] = rank[i]
	}
	return Result{Scores: scores, Stats: stats}
}
