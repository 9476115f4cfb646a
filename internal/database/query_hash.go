// file: internal/database/query_hash.go
// version: 1.0.0
// guid: 8850473c-cc16-456d-832b-590315839043

package database

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"github.com/jdfalk/bookwatch/internal/matcher"
)

// QueryHash derives the dedup key for a request's query parameters. Requests
// whose criteria differ only in case, punctuation or whitespace collide, so
// the duplicate guard treats them as the same search.
func QueryHash(q QueryParams) string {
	parts := []string{
		matcher.NormalizeForComparison(q.Title),
		matcher.NormalizeForComparison(q.Author),
		strings.ToLower(strings.TrimSpace(q.Format)),
		strings.ToLower(strings.TrimSpace(q.Language)),
	}
	sum := sha256.Sum256([]byte(strings.Join(parts, "|")))
	return hex.EncodeToString(sum[:])
}
