package domain

import (
	"encoding/json"
	"fmt"
)

// FlatEventPayload is the flattened envelope used by webhook relay tooling.
type FlatEventPayload struct {
	EventType      string         `json:"event_type"`
	ContentTypeUID string         `json:"content_type_uid"`
	EntryUID       string         `json:"entry_uid"`
	Data           map[string]any `json:"data"`
}

// FlatEventAdapter handles ShapeFlatEvent. The entry attributes are read
// from data, which also becomes the entry's fields.
type FlatEventAdapter struct{}

func (FlatEventAdapter) Shape() PayloadShape { return ShapeFlatEvent }

func (FlatEventAdapter) Matches(envelope map[string]json.RawMessage) bool {
	return hasKey(envelope, "event_type")
}

func (a FlatEventAdapter) Normalize(raw []byte) (IndexMutation, error) {
	var p FlatEventPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		return IndexMutation{}, &PayloadError{Shape: a.Shape(), Reason: err.Error()}
	}

	kind := lifecycleKind(p.EventType)
	if kind == MutationIgnore {
		return IndexMutation{Kind: MutationIgnore, Event: p.EventType}, nil
	}
	if p.EntryUID == "" {
		return IndexMutation{}, missingField(a.Shape(), "entry_uid")
	}
	if p.ContentTypeUID == "" {
		return IndexMutation{}, missingField(a.Shape(), "content_type_uid")
	}

	m := IndexMutation{Kind: kind, Event: p.EventType, UID: p.EntryUID}
	if kind == MutationUpsert {
		fields := p.Data
		if fields == nil {
			fields = map[string]any{}
		}
		entry, err := buildEntry(p.EntryUID, p.ContentTypeUID, p.Data, fields)
		if err != nil {
			return IndexMutation{}, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
		}
		m.Entry = entry
	}
	return m, nil
}
