package main

import "github.com/dverbeek/keystone"

// CLIResult is the top-level JSON envelope for all commands that write
// to stdout.
type CLIResult struct {
	Command    string `json:"command"`
	Results    any    `json:"results"`
	TotalCount *int   `json:"total_count,omitempty"`
	Error      string `json:"error,omitempty"`
}

// CLIRankedFile is one row of the importance ranking.
type CLIRankedFile struct {
	Rank       int     `json:"rank"`
	Path       string  `json:"path"`
	Score      float64 `json:"score"`
	Normalized float64 `json:"normalized_score"`
}

// CLIDetection is a JSON-friendly pattern detection.
type CLIDetection struct {
	Name         string   `json:"name"`
	Category     string   `json:"category"`
	Confidence   float64  `json:"confidence"`
	Description  string   `json:"description,omitempty"`
	VersionHints []string `json:"version_hints,omitempty"`
}

// CLIDetectReport bundles one file's detections with any pattern
// registry diagnostics.
type CLIDetectReport struct {
	File        string         `json:"file"`
	Detections  []CLIDetection `json:"detections"`
	Diagnostics []string       `json:"diagnostics,omitempty"`
}

// CLILanguage is a JSON-friendly language capsule description.
type CLILanguage struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Extensions []string `json:"extensions"`
	Aliases    []string `json:"aliases,omitempty"`
}

// CLISymbol is a JSON-friendly symbol row.
type CLISymbol struct {
	Name       string `json:"name"`
	Kind       string `json:"kind"`
	StartLine  int    `json:"start_line"`
	EndLine    int    `json:"end_line"`
	Signature  string `json:"signature,omitempty"`
	Complexity int    `json:"complexity"`
}

// CLIMetrics is a JSON-friendly metrics row.
type CLIMetrics struct {
	CodeLines          int     `json:"code_lines"`
	CommentLines       int     `json:"comment_lines"`
	BlankLines         int     `json:"blank_lines"`
	TotalLines         int     `json:"total_lines"`
	Cyclomatic         int     `json:"cyclomatic"`
	Cognitive          int     `json:"cognitive"`
	HalsteadVolume     float64 `json:"halstead_volume"`
	HalsteadDifficulty float64 `json:"halstead_difficulty"`
	HalsteadEffort     float64 `json:"halstead_effort"`
	Maintainability    float64 `json:"maintainability"`
	Functions          int     `json:"functions"`
	Types              int     `json:"types"`
	Imports            int     `json:"imports"`
}

// CLIScore is a JSON-friendly importance score breakdown.
type CLIScore struct {
	Overall    float64 `json:"overall"`
	Size       float64 `json:"size"`
	Centrality float64 `json:"centrality"`
	Complexity float64 `json:"complexity"`
	Dependency float64 `json:"dependency"`
}

// CLIFileReport is the full catalog view of one file.
type CLIFileReport struct {
	Path         string         `json:"path"`
	Language     string         `json:"language"`
	SizeBytes    int            `json:"size_bytes"`
	LineCount    int            `json:"line_count"`
	LastAnalyzed string         `json:"last_analyzed"`
	Metrics      *CLIMetrics    `json:"metrics,omitempty"`
	Score        *CLIScore      `json:"score,omitempty"`
	Symbols      []CLISymbol    `json:"symbols,omitempty"`
	Imports      []string       `json:"imports,omitempty"`
	Detections   []CLIDetection `json:"detections,omitempty"`
	Diagnostics  []string       `json:"diagnostics,omitempty"`
}

// CLILanguageCount is per-language file statistics.
type CLILanguageCount struct {
	Language  string `json:"language"`
	FileCount int    `json:"file_count"`
	LineCount int    `json:"line_count"`
}

// CLISummary is a JSON-friendly catalog summary.
type CLISummary struct {
	Root         string             `json:"root,omitempty"`
	LastAnalyzed string             `json:"last_analyzed,omitempty"`
	TotalFiles   int                `json:"total_files"`
	TotalLines   int                `json:"total_lines"`
	Languages    []CLILanguageCount `json:"languages"`
}

// CLIGraphEdge is a JSON-friendly dependency edge.
type CLIGraphEdge struct {
	From   string  `json:"from"`
	To     string  `json:"to"`
	Weight float64 `json:"weight"`
	Kind   string  `json:"kind"`
}

// CLIGraph is a JSON-friendly dependency graph with centrality scores.
type CLIGraph struct {
	Nodes      []string            `json:"nodes"`
	Edges      []CLIGraphEdge      `json:"edges"`
	Centrality map[string]float64  `json:"centrality"`
	Stats      keystone.GraphStats `json:"stats"`
}
