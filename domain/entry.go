package domain

import (
	"errors"
	"maps"
)

// Entry is one content item as last known to the index.
type Entry struct {
	UID            string         `json:"uid"`
	Title          string         `json:"title"`
	ContentTypeUID string         `json:"content_type_uid"`
	Locale         string         `json:"locale"`
	URL            string         `json:"url"`
	CreatedAt      string         `json:"created_at"`
	UpdatedAt      string         `json:"updated_at"`
	PublishedAt    string         `json:"published_at,omitempty"`
	Fields         map[string]any `json:"fields"`
}

// ScoredEntry is an Entry returned from a query together with its score.
type ScoredEntry struct {
	Entry
	SimilarityScore float64 `json:"similarity_score"`
}

// NewEntry validates the identifying attributes and applies the title fallback.
func NewEntry(uid, title, contentTypeUID string) (Entry, error) {
	if uid == "" {
		return Entry{}, errors.New("entry uid cannot be empty")
	}
	if contentTypeUID == "" {
		return Entry{}, errors.New("entry content type cannot be empty")
	}
	if title == "" {
		title = uid
	}
	return Entry{
		UID:            uid,
		Title:          title,
		ContentTypeUID: contentTypeUID,
		Fields:         map[string]any{},
	}, nil
}

// Clone returns a copy whose Fields can be mutated without affecting e.
func (e Entry) Clone() Entry {
	c := e
	c.Fields = cloneValue(e.Fields).(map[string]any)
	return c
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		if t == nil {
			return map[string]any{}
		}
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[k] = cloneValue(val)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = cloneValue(val)
		}
		return out
	case []string:
		out := make([]string, len(t))
		copy(out, t)
		return out
	case map[string]string:
		return maps.Clone(t)
	default:
		return v
	}
}
