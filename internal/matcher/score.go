// file: internal/matcher/score.go
// version: 1.0.0
// guid: 9d033855-a50c-4908-ab6b-150140771043

package matcher

import "strings"

// MatchPolicy holds the tunable scoring constants. The weights and the
// threshold are policy, not algorithm: they come from settings so they can
// be adjusted without a redeploy.
type MatchPolicy struct {
	TitleWeight  float64
	AuthorWeight float64
	Threshold    float64
}

// DefaultPolicy returns the stock 0.6/0.4 split with a 0.6 threshold.
func DefaultPolicy() MatchPolicy {
	return MatchPolicy{
		TitleWeight:  0.6,
		AuthorWeight: 0.4,
		Threshold:    0.6,
	}
}

// CalculateBookMatchScore scores a candidate book against a request in
// [0, 1]. A field only contributes when both sides are non-empty after
// normalization; the remaining weights are renormalized to sum to 1. If
// neither field is comparable the score is 0.
func (p MatchPolicy) CalculateBookMatchScore(requestTitle, requestAuthor, bookTitle string, bookAuthors []string) float64 {
	reqTitle := NormalizeForComparison(requestTitle)
	reqAuthor := NormalizeForComparison(requestAuthor)
	candTitle := NormalizeForComparison(bookTitle)
	candAuthor := NormalizeForComparison(strings.Join(bookAuthors, " "))

	titleWeight := p.TitleWeight
	authorWeight := p.AuthorWeight
	if reqTitle == "" || candTitle == "" {
		titleWeight = 0
	}
	if reqAuthor == "" || candAuthor == "" {
		authorWeight = 0
	}

	total := titleWeight + authorWeight
	if total == 0 {
		return 0
	}

	score := 0.0
	if titleWeight > 0 {
		score += (titleWeight / total) * SimilarityRatio(reqTitle, candTitle)
	}
	if authorWeight > 0 {
		score += (authorWeight / total) * SimilarityRatio(reqAuthor, candAuthor)
	}
	return score
}

// IsGoodMatch reports whether the candidate clears the policy threshold.
// A score exactly at the threshold passes.
func (p MatchPolicy) IsGoodMatch(requestTitle, requestAuthor, bookTitle string, bookAuthors []string) bool {
	return p.CalculateBookMatchScore(requestTitle, requestAuthor, bookTitle, bookAuthors) >= p.Threshold
}
