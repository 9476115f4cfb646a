// file: internal/fetcher/hash.go
// version: 1.0.0
// guid: 7f37c2bd-86af-4bb7-8c34-3fd891eae920

package fetcher

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/jdfalk/bookwatch/internal/matcher"
)

// BookHash derives the stable dedup key for a returned book. Sources with a
// stable remote id use "source:id"; sources without one fall back to a hash
// of the normalized title and author, so the same book re-surfacing with
// different punctuation still dedups.
func BookHash(source Source, sourceBookID, title, author string) string {
	if sourceBookID != "" {
		return fmt.Sprintf("%s:%s", source, sourceBookID)
	}
	key := matcher.NormalizeForComparison(title) + "|" + matcher.NormalizeForComparison(author)
	sum := sha256.Sum256([]byte(key))
	return fmt.Sprintf("%s:%s", source, hex.EncodeToString(sum[:]))
}
