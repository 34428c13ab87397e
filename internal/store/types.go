package store

import "time"

// Catalog row types

type File struct {
	ID           int64
	Path         string
	Language     string
	Hash         string
	SizeBytes    int
	LineCount    int
	LastAnalyzed time.Time
}

type Symbol struct {
	ID         int64
	FileID     int64
	Name       string
	Kind       string
	StartLine  int
	EndLine    int
	Signature  string
	Complexity int
}

type Import struct {
	ID     int64
	FileID int64
	Path   string
	Line   int
}

type Metrics struct {
	FileID             int64
	CodeLines          int
	CommentLines       int
	BlankLines         int
	TotalLines         int
	Cyclomatic         int
	Cognitive          int
	HalsteadVolume     float64
	HalsteadDifficulty float64
	HalsteadEffort     float64
	Maintainability    float64
	Functions          int
	Types              int
	Imports            int
}

type Detection struct {
	ID           int64
	FileID       int64
	Name         string
	Category     string
	Confidence   float64
	VersionHints []string
}

type Diagnostic struct {
	ID      int64
	FileID  int64
	Message string
}

// Project-level row types

type Edge struct {
	ID     int64
	FromID int64
	ToID   int64
}

type Score struct {
	FileID     int64
	Overall    float64
	Size       float64
	Centrality float64
	Complexity float64
	Dependency float64
}

// FileData bundles one file's catalog rows for a transactional replace.
// FileID fields on the children are filled in during SaveFileData.
type FileData struct {
	File        File
	Symbols     []Symbol
	Imports     []Import
	Metrics     *Metrics
	Detections  []Detection
	Diagnostics []Diagnostic
}
