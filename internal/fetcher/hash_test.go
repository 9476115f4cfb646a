// file: internal/fetcher/hash_test.go
// version: 1.0.0
// guid: f65a889e-e9bb-4dd0-a80f-4b449e503614

package fetcher

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBookHash_StableID(t *testing.T) {
	hash := BookHash(SourceGoodreads, "12345", "The Hobbit", "J.R.R. Tolkien")
	assert.Equal(t, "goodreads:12345", hash)

	// Title changes do not move a book with a stable remote id.
	assert.Equal(t, hash, BookHash(SourceGoodreads, "12345", "The Hobbit (Revised)", "Tolkien"))
}

func TestBookHash_FallbackNormalizes(t *testing.T) {
	a := BookHash(SourceGoodreads, "", "The Hobbit", "J.R.R. Tolkien")
	b := BookHash(SourceGoodreads, "", "the hobbit!", "jrr tolkien")
	assert.Equal(t, a, b, "punctuation and case must not change the fallback hash")

	c := BookHash(SourceGoodreads, "", "The Silmarillion", "J.R.R. Tolkien")
	assert.NotEqual(t, a, c)

	// Source is part of the key either way.
	d := BookHash(SourceOpenLibrary, "", "The Hobbit", "J.R.R. Tolkien")
	assert.NotEqual(t, a, d)
}
