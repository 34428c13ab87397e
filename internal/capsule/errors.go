package capsule

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedLanguage means no capsule resolves the descriptor.
	ErrUnsupportedLanguage = errors.New("unsupported language")
	// ErrOversized means the input failed the pre-parse size check.
	ErrOversized = errors.New("input exceeds size limit")
)

// ParseError reports a grammar-level failure for one file. It is
// recoverable per file and never aborts a batch.
type ParseError struct {
	Path     string
	Language string
	Err      error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s (%s): %v", e.Path, e.Language, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }
