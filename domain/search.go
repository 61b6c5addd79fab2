package domain

import (
	"cmp"
	"slices"
	"strings"
)

const (
	TitleMatchScore  = 0.8
	FieldsMatchScore = 0.6
	// BothMatchScore is folded at compile time so it is exactly 1.4.
	BothMatchScore = TitleMatchScore + FieldsMatchScore

	DefaultSearchLimit = 20
)

// SearchFilters narrows a query. Empty strings mean "no filter"; both
// filters together intersect.
type SearchFilters struct {
	ContentType string
	Locale      string
	Limit       int
}

// EffectiveLimit returns Limit, or DefaultSearchLimit when Limit is not positive.
func (f SearchFilters) EffectiveLimit() int {
	if f.Limit <= 0 {
		return DefaultSearchLimit
	}
	return f.Limit
}

// Matches reports whether e passes the content type and locale filters.
func (f SearchFilters) Matches(e Entry) bool {
	if f.ContentType != "" && e.ContentTypeUID != f.ContentType {
		return false
	}
	if f.Locale != "" && e.Locale != f.Locale {
		return false
	}
	return true
}

// IsBlankQuery reports whether query is empty after trimming whitespace.
func IsBlankQuery(query string) bool {
	return strings.TrimSpace(query) == ""
}

// ScoreEntry scores e against an already lower-cased query.
func ScoreEntry(e Entry, loweredQuery string) float64 {
	inTitle := strings.Contains(strings.ToLower(e.Title), loweredQuery)
	inFields := FieldsContain(e.Fields, loweredQuery)
	switch {
	case inTitle && inFields:
		return BothMatchScore
	case inTitle:
		return TitleMatchScore
	case inFields:
		return FieldsMatchScore
	default:
		return 0
	}
}

// FieldsContain searches every string value of a mapping for loweredQuery.
// Nested mappings are searched, including mappings held in arrays, but
// primitive array elements are not.
func FieldsContain(fields map[string]any, loweredQuery string) bool {
	for _, v := range fields {
		if valueContains(v, loweredQuery) {
			return true
		}
	}
	return false
}

func valueContains(v any, loweredQuery string) bool {
	switch t := v.(type) {
	case string:
		return strings.Contains(strings.ToLower(t), loweredQuery)
	case map[string]any:
		return FieldsContain(t, loweredQuery)
	case []any:
		for _, el := range t {
			switch el.(type) {
			case map[string]any, []any:
				if valueContains(el, loweredQuery) {
					return true
				}
			}
		}
	}
	return false
}

// RankEntries applies filters, scores, drops non-matches, and orders by
// score descending with uid ascending as the tie-break. A blank query
// yields an empty, non-nil result.
func RankEntries(entries []Entry, query string, filters SearchFilters) []ScoredEntry {
	results := []ScoredEntry{}
	if IsBlankQuery(query) {
		return results
	}

	q := strings.ToLower(query)
	for _, e := range entries {
		if !filters.Matches(e) {
			continue
		}
		score := ScoreEntry(e, q)
		if score == 0 {
			continue
		}
		results = append(results, ScoredEntry{Entry: e, SimilarityScore: score})
	}

	slices.SortStableFunc(results, func(a, b ScoredEntry) int {
		if c := cmp.Compare(b.SimilarityScore, a.SimilarityScore); c != 0 {
			return c
		}
		return cmp.Compare(a.UID, b.UID)
	})

	if limit := filters.EffectiveLimit(); len(results) > limit {
		results = results[:limit]
	}
	return results
}
