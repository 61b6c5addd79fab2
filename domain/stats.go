package domain

import (
	"maps"
	"slices"
)

// IndexStats is the aggregate view of the index at one point in time.
type IndexStats struct {
	TotalEntries int      `json:"totalEntries"`
	ContentTypes []string `json:"contentTypes"`
	Locales      []string `json:"locales"`
}

// DeriveStats computes stats from the given entries. Content types and
// locales are deduplicated, sorted, and empty values are skipped.
func DeriveStats(entries []Entry) IndexStats {
	types := make(map[string]struct{})
	locales := make(map[string]struct{})
	for _, e := range entries {
		if e.ContentTypeUID != "" {
			types[e.ContentTypeUID] = struct{}{}
		}
		if e.Locale != "" {
			locales[e.Locale] = struct{}{}
		}
	}
	return IndexStats{
		TotalEntries: len(entries),
		ContentTypes: sortedKeys(types),
		Locales:      sortedKeys(locales),
	}
}

func sortedKeys(set map[string]struct{}) []string {
	if len(set) == 0 {
		return []string{}
	}
	return slices.Sorted(maps.Keys(set))
}

// EmptyStats returns stats for an empty index with non-nil slices.
func EmptyStats() IndexStats {
	return IndexStats{ContentTypes: []string{}, Locales: []string{}}
}
