package store

import (
	"crypto/sha256"
	"fmt"
)

// ContentHash computes the hex SHA-256 of a file's raw content. It is
// the change-detection key: a file whose stored hash matches the
// current content is skipped on re-analysis.
func ContentHash(content []byte) string {
	return fmt.Sprintf("%x", sha256.Sum256(content))
}
