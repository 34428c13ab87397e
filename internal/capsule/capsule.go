// Package capsule normalizes per-language syntax trees into one common
// document contract. Each supported language is handled by a capsule, a
// small adapter over a tree-sitter grammar that extracts symbols, imports
// and comments and tallies the raw inputs the metrics engine consumes.
// The Registry routes parse requests to the right capsule by explicit
// language hint or file extension.
package capsule

import (
	"context"

	"github.com/dverbeek/keystone/internal/lang"
)

// Capsule is the per-language adapter contract. Implementations must be
// safe for concurrent use and deterministic: identical input and options
// always produce identical documents. A capsule that cannot parse its
// input returns a typed error, never panics.
type Capsule interface {
	// Language returns the static identity of the handled language.
	Language() lang.Info
	// Parse produces a Document for one source unit.
	Parse(ctx context.Context, src Source, content []byte, opts Options) (*Document, error)
}
