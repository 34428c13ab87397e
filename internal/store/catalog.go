package store

import (
	"database/sql"
	"fmt"
)

// --- File operations ---

const fileCols = "id, path, language, hash, size_bytes, line_count, last_analyzed"

func (s *Store) scanFile(scanner interface{ Scan(...any) error }) (*File, error) {
	f := &File{}
	err := scanner.Scan(
		&f.ID, &f.Path, &f.Language, &f.Hash, &f.SizeBytes, &f.LineCount, &f.LastAnalyzed,
	)
	if err != nil {
		return nil, err
	}
	return f, nil
}

func (s *Store) queryFiles(query string, args ...any) ([]*File, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var files []*File
	for rows.Next() {
		f, err := s.scanFile(rows)
		if err != nil {
			return nil, fmt.Errorf("scan file: %w", err)
		}
		files = append(files, f)
	}
	return files, rows.Err()
}

func (s *Store) FileByPath(path string) (*File, error) {
	f, err := s.scanFile(s.db.QueryRow("SELECT "+fileCols+" FROM files WHERE path = ?", path))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("file by path: %w", err)
	}
	return f, nil
}

func (s *Store) FileByID(id int64) (*File, error) {
	f, err := s.scanFile(s.db.QueryRow("SELECT "+fileCols+" FROM files WHERE id = ?", id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("file by id: %w", err)
	}
	return f, nil
}

func (s *Store) Files() ([]*File, error) {
	return s.queryFiles("SELECT " + fileCols + " FROM files ORDER BY path")
}

func (s *Store) FilesByLanguage(language string) ([]*File, error) {
	return s.queryFiles("SELECT "+fileCols+" FROM files WHERE language = ? ORDER BY path", language)
}

// --- Per-file result operations ---

func (s *Store) SymbolsByFile(fileID int64) ([]*Symbol, error) {
	rows, err := s.db.Query(
		"SELECT id, file_id, name, kind, start_line, end_line, signature, complexity FROM symbols WHERE file_id = ? ORDER BY id",
		fileID,
	)
	if err != nil {
		return nil, fmt.Errorf("symbols by file: %w", err)
	}
	defer rows.Close()
	var symbols []*Symbol
	for rows.Next() {
		sym := &Symbol{}
		if err := rows.Scan(
			&sym.ID, &sym.FileID, &sym.Name, &sym.Kind,
			&sym.StartLine, &sym.EndLine, &sym.Signature, &sym.Complexity,
		); err != nil {
			return nil, fmt.Errorf("scan symbol: %w", err)
		}
		symbols = append(symbols, sym)
	}
	return symbols, rows.Err()
}

func (s *Store) ImportsByFile(fileID int64) ([]*Import, error) {
	rows, err := s.db.Query(
		"SELECT id, file_id, path, line FROM imports WHERE file_id = ? ORDER BY id", fileID,
	)
	if err != nil {
		return nil, fmt.Errorf("imports by file: %w", err)
	}
	defer rows.Close()
	var imports []*Import
	for rows.Next() {
		imp := &Import{}
		if err := rows.Scan(&imp.ID, &imp.FileID, &imp.Path, &imp.Line); err != nil {
			return nil, fmt.Errorf("scan import: %w", err)
		}
		imports = append(imports, imp)
	}
	return imports, rows.Err()
}

func (s *Store) MetricsByFile(fileID int64) (*Metrics, error) {
	m := &Metrics{}
	err := s.db.QueryRow(
		`SELECT file_id, code_lines, comment_lines, blank_lines, total_lines,
			cyclomatic, cognitive, halstead_volume, halstead_difficulty, halstead_effort,
			maintainability, functions, types, imports
		 FROM metrics WHERE file_id = ?`, fileID,
	).Scan(
		&m.FileID, &m.CodeLines, &m.CommentLines, &m.BlankLines, &m.TotalLines,
		&m.Cyclomatic, &m.Cognitive, &m.HalsteadVolume, &m.HalsteadDifficulty, &m.HalsteadEffort,
		&m.Maintainability, &m.Functions, &m.Types, &m.Imports,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("metrics by file: %w", err)
	}
	return m, nil
}

func (s *Store) DetectionsByFile(fileID int64) ([]*Detection, error) {
	rows, err := s.db.Query(
		"SELECT id, file_id, name, category, confidence, version_hints FROM detections WHERE file_id = ? ORDER BY id",
		fileID,
	)
	if err != nil {
		return nil, fmt.Errorf("detections by file: %w", err)
	}
	defer rows.Close()
	var detections []*Detection
	for rows.Next() {
		det := &Detection{}
		var hints string
		if err := rows.Scan(&det.ID, &det.FileID, &det.Name, &det.Category, &det.Confidence, &hints); err != nil {
			return nil, fmt.Errorf("scan detection: %w", err)
		}
		det.VersionHints = unmarshalHints(hints)
		detections = append(detections, det)
	}
	return detections, rows.Err()
}

func (s *Store) DiagnosticsByFile(fileID int64) ([]*Diagnostic, error) {
	rows, err := s.db.Query(
		"SELECT id, file_id, message FROM diagnostics WHERE file_id = ? ORDER BY id", fileID,
	)
	if err != nil {
		return nil, fmt.Errorf("diagnostics by file: %w", err)
	}
	defer rows.Close()
	var diags []*Diagnostic
	for rows.Next() {
		diag := &Diagnostic{}
		if err := rows.Scan(&diag.ID, &diag.FileID, &diag.Message); err != nil {
			return nil, fmt.Errorf("scan diagnostic: %w", err)
		}
		diags = append(diags, diag)
	}
	return diags, rows.Err()
}

// LoadFileData reassembles the FileData bundle for a previously saved
// file. Re-analysis uses it to reuse results for unchanged files.
// Returns nil when the file is not in the catalog.
func (s *Store) LoadFileData(fileID int64) (*FileData, error) {
	f, err := s.FileByID(fileID)
	if err != nil {
		return nil, err
	}
	if f == nil {
		return nil, nil
	}
	d := &FileData{File: *f}

	symbols, err := s.SymbolsByFile(fileID)
	if err != nil {
		return nil, err
	}
	for _, sym := range symbols {
		d.Symbols = append(d.Symbols, *sym)
	}
	imports, err := s.ImportsByFile(fileID)
	if err != nil {
		return nil, err
	}
	for _, imp := range imports {
		d.Imports = append(d.Imports, *imp)
	}
	if d.Metrics, err = s.MetricsByFile(fileID); err != nil {
		return nil, err
	}
	detections, err := s.DetectionsByFile(fileID)
	if err != nil {
		return nil, err
	}
	for _, det := range detections {
		d.Detections = append(d.Detections, *det)
	}
	diags, err := s.DiagnosticsByFile(fileID)
	if err != nil {
		return nil, err
	}
	for _, diag := range diags {
		d.Diagnostics = append(d.Diagnostics, *diag)
	}
	return d, nil
}

// --- Project-level operations ---

func (s *Store) Edges() ([]*Edge, error) {
	rows, err := s.db.Query("SELECT id, from_id, to_id FROM edges ORDER BY from_id, to_id")
	if err != nil {
		return nil, fmt.Errorf("edges: %w", err)
	}
	defer rows.Close()
	var edges []*Edge
	for rows.Next() {
		e := &Edge{}
		if err := rows.Scan(&e.ID, &e.FromID, &e.ToID); err != nil {
			return nil, fmt.Errorf("scan edge: %w", err)
		}
		edges = append(edges, e)
	}
	return edges, rows.Err()
}

// Scores returns all importance scores, highest overall first.
func (s *Store) Scores() ([]*Score, error) {
	rows, err := s.db.Query(
		"SELECT file_id, overall, size, centrality, complexity, dependency FROM scores ORDER BY overall DESC, file_id",
	)
	if err != nil {
		return nil, fmt.Errorf("scores: %w", err)
	}
	defer rows.Close()
	var scores []*Score
	for rows.Next() {
		sc := &Score{}
		if err := rows.Scan(&sc.FileID, &sc.Overall, &sc.Size, &sc.Centrality, &sc.Complexity, &sc.Dependency); err != nil {
			return nil, fmt.Errorf("scan score: %w", err)
		}
		scores = append(scores, sc)
	}
	return scores, rows.Err()
}

// Meta returns the value stored under key, or "" when absent.
func (s *Store) Meta(key string) (string, error) {
	var value string
	err := s.db.QueryRow("SELECT value FROM metadata WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("meta %q: %w", key, err)
	}
	return value, nil
}
