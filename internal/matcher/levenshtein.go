// file: internal/matcher/levenshtein.go
// version: 1.0.0
// guid: f40ada02-b3c3-4541-a8d1-d225bde44eda

// Package matcher implements the string-similarity primitives and the
// weighted book-match scorer used to decide whether a discovered book
// satisfies a pending download request.
package matcher

import (
	"regexp"
	"strings"
)

// LevenshteinDistance computes the edit distance between two strings using
// the full dynamic-programming matrix. Inputs are compared as-is; callers
// normalize first.
func LevenshteinDistance(a, b string) int {
	la, lb := len(a), len(b)
	if la == 0 {
		return lb
	}
	if lb == 0 {
		return la
	}

	d := make([][]int, la+1)
	for i := range d {
		d[i] = make([]int, lb+1)
		d[i][0] = i
	}
	for j := 0; j <= lb; j++ {
		d[0][j] = j
	}

	for i := 1; i <= la; i++ {
		for j := 1; j <= lb; j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			d[i][j] = min(d[i-1][j]+1, min(d[i][j-1]+1, d[i-1][j-1]+cost))
		}
	}
	return d[la][lb]
}

// SimilarityRatio returns a normalized similarity in [0, 1].
// Two empty strings are identical (1); exactly one empty string scores 0.
func SimilarityRatio(a, b string) float64 {
	if a == "" && b == "" {
		return 1
	}
	if a == "" || b == "" {
		return 0
	}
	maxLen := max(len(a), len(b))
	return 1 - float64(LevenshteinDistance(a, b))/float64(maxLen)
}

var (
	parenRe    = regexp.MustCompile(`\([^)]*\)|\[[^\]]*\]`)
	nonAlnumRe = regexp.MustCompile(`[^a-z0-9 ]+`)
	spaceRe    = regexp.MustCompile(`\s+`)
)

// NormalizeForComparison lowercases a string, strips parenthesized and
// bracketed spans (edition/subtitle noise), removes everything outside
// [a-z0-9 ], and collapses whitespace.
func NormalizeForComparison(s string) string {
	s = strings.ToLower(s)
	s = parenRe.ReplaceAllString(s, " ")
	s = nonAlnumRe.ReplaceAllString(s, "")
	s = spaceRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}
