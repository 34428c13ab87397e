package store

import (
	"database/sql"
	"fmt"
)

// SaveFileData upserts the file row and replaces all of its dependent
// rows within a single transaction. The file is matched by path; an
// existing row keeps its ID so edges and scores referencing it stay
// valid until the next project-level replace.
func (s *Store) SaveFileData(d *FileData) (int64, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("save file data: begin: %w", err)
	}
	defer tx.Rollback()

	fileID, err := upsertFileTx(tx, &d.File)
	if err != nil {
		return 0, fmt.Errorf("save file data: file %q: %w", d.File.Path, err)
	}

	// Replace semantics: dependent rows from the previous analysis go away.
	for _, q := range []string{
		"DELETE FROM symbols WHERE file_id = ?",
		"DELETE FROM imports WHERE file_id = ?",
		"DELETE FROM metrics WHERE file_id = ?",
		"DELETE FROM detections WHERE file_id = ?",
		"DELETE FROM diagnostics WHERE file_id = ?",
	} {
		if _, err := tx.Exec(q, fileID); err != nil {
			return 0, fmt.Errorf("save file data: clear %q: %w", d.File.Path, err)
		}
	}

	for i := range d.Symbols {
		d.Symbols[i].FileID = fileID
		if _, err := insertSymbolTx(tx, &d.Symbols[i]); err != nil {
			return 0, fmt.Errorf("save file data: symbol %q: %w", d.Symbols[i].Name, err)
		}
	}
	for i := range d.Imports {
		d.Imports[i].FileID = fileID
		if _, err := insertImportTx(tx, &d.Imports[i]); err != nil {
			return 0, fmt.Errorf("save file data: import %q: %w", d.Imports[i].Path, err)
		}
	}
	if d.Metrics != nil {
		d.Metrics.FileID = fileID
		if err := insertMetricsTx(tx, d.Metrics); err != nil {
			return 0, fmt.Errorf("save file data: metrics for %q: %w", d.File.Path, err)
		}
	}
	for i := range d.Detections {
		d.Detections[i].FileID = fileID
		if _, err := insertDetectionTx(tx, &d.Detections[i]); err != nil {
			return 0, fmt.Errorf("save file data: detection %q: %w", d.Detections[i].Name, err)
		}
	}
	for i := range d.Diagnostics {
		d.Diagnostics[i].FileID = fileID
		if _, err := insertDiagnosticTx(tx, &d.Diagnostics[i]); err != nil {
			return 0, fmt.Errorf("save file data: diagnostic: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	d.File.ID = fileID
	return fileID, nil
}

// ReplaceEdges replaces the whole dependency edge set in one
// transaction. Edges are project-level and are rebuilt from scratch
// after every directory analysis.
func (s *Store) ReplaceEdges(edges []Edge) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("replace edges: begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM edges"); err != nil {
		return fmt.Errorf("replace edges: clear: %w", err)
	}
	for _, e := range edges {
		if _, err := tx.Exec(
			"INSERT OR IGNORE INTO edges (from_id, to_id) VALUES (?, ?)",
			e.FromID, e.ToID,
		); err != nil {
			return fmt.Errorf("replace edges: %d to %d: %w", e.FromID, e.ToID, err)
		}
	}
	return tx.Commit()
}

// SaveScores upserts importance scores, one row per file.
func (s *Store) SaveScores(scores []Score) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("save scores: begin: %w", err)
	}
	defer tx.Rollback()

	for _, sc := range scores {
		if _, err := tx.Exec(
			`INSERT OR REPLACE INTO scores (file_id, overall, size, centrality, complexity, dependency)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			sc.FileID, sc.Overall, sc.Size, sc.Centrality, sc.Complexity, sc.Dependency,
		); err != nil {
			return fmt.Errorf("save scores: file %d: %w", sc.FileID, err)
		}
	}
	return tx.Commit()
}

// SetMeta stores a key/value pair in the metadata table.
func (s *Store) SetMeta(key, value string) error {
	_, err := s.db.Exec(
		"INSERT OR REPLACE INTO metadata (key, value) VALUES (?, ?)", key, value,
	)
	if err != nil {
		return fmt.Errorf("set meta %q: %w", key, err)
	}
	return nil
}

// --- Transaction-scoped insert helpers ---
// These mirror the catalog query methods but accept *sql.Tx instead of
// using s.db.

func upsertFileTx(tx *sql.Tx, f *File) (int64, error) {
	var id int64
	err := tx.QueryRow("SELECT id FROM files WHERE path = ?", f.Path).Scan(&id)
	if err == sql.ErrNoRows {
		res, err := tx.Exec(
			`INSERT INTO files (path, language, hash, size_bytes, line_count, last_analyzed)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			f.Path, f.Language, f.Hash, f.SizeBytes, f.LineCount, f.LastAnalyzed,
		)
		if err != nil {
			return 0, err
		}
		return res.LastInsertId()
	}
	if err != nil {
		return 0, err
	}
	_, err = tx.Exec(
		`UPDATE files SET language = ?, hash = ?, size_bytes = ?, line_count = ?, last_analyzed = ?
		 WHERE id = ?`,
		f.Language, f.Hash, f.SizeBytes, f.LineCount, f.LastAnalyzed, id,
	)
	if err != nil {
		return 0, err
	}
	return id, nil
}

func insertSymbolTx(tx *sql.Tx, sym *Symbol) (int64, error) {
	res, err := tx.Exec(
		`INSERT INTO symbols (file_id, name, kind, start_line, end_line, signature, complexity)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		sym.FileID, sym.Name, sym.Kind, sym.StartLine, sym.EndLine, sym.Signature, sym.Complexity,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func insertImportTx(tx *sql.Tx, imp *Import) (int64, error) {
	res, err := tx.Exec(
		"INSERT INTO imports (file_id, path, line) VALUES (?, ?, ?)",
		imp.FileID, imp.Path, imp.Line,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func insertMetricsTx(tx *sql.Tx, m *Metrics) error {
	_, err := tx.Exec(
		`INSERT INTO metrics (file_id, code_lines, comment_lines, blank_lines, total_lines,
			cyclomatic, cognitive, halstead_volume, halstead_difficulty, halstead_effort,
			maintainability, functions, types, imports)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		m.FileID, m.CodeLines, m.CommentLines, m.BlankLines, m.TotalLines,
		m.Cyclomatic, m.Cognitive, m.HalsteadVolume, m.HalsteadDifficulty, m.HalsteadEffort,
		m.Maintainability, m.Functions, m.Types, m.Imports,
	)
	return err
}

func insertDetectionTx(tx *sql.Tx, det *Detection) (int64, error) {
	hints := marshalHints(det.VersionHints)
	res, err := tx.Exec(
		`INSERT INTO detections (file_id, name, category, confidence, version_hints)
		 VALUES (?, ?, ?, ?, ?)`,
		det.FileID, det.Name, det.Category, det.Confidence, hints,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func insertDiagnosticTx(tx *sql.Tx, diag *Diagnostic) (int64, error) {
	res, err := tx.Exec(
		"INSERT INTO diagnostics (file_id, message) VALUES (?, ?)",
		diag.FileID, diag.Message,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}
