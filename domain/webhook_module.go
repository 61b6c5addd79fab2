package domain

import (
	"encoding/json"
	"fmt"
)

// ModuleEventPayload is the envelope keyed by module, used by authenticated
// webhook deliveries.
type ModuleEventPayload struct {
	Module string            `json:"module"`
	APIKey string            `json:"api_key,omitempty"`
	Event  string            `json:"event"`
	Bulk   bool              `json:"bulk,omitempty"`
	Data   ModuleEventDetail `json:"data"`
}

type ModuleEventDetail struct {
	Locale string         `json:"locale"`
	Status string         `json:"status,omitempty"`
	Action string         `json:"action,omitempty"`
	Entry  map[string]any `json:"entry"`
}

// moduleEvents maps module actions to canonical event names.
var moduleEvents = map[string]string{
	"publish":   EventEntryPublished,
	"update":    EventEntryUpdated,
	"unpublish": EventEntryUnpublished,
	"delete":    EventEntryDeleted,
}

// ModuleEventAdapter handles ShapeModuleEvent. Only the "entry" module
// mutates the index; other modules such as assets are ignored.
type ModuleEventAdapter struct{}

func (ModuleEventAdapter) Shape() PayloadShape { return ShapeModuleEvent }

func (ModuleEventAdapter) Matches(envelope map[string]json.RawMessage) bool {
	return hasKey(envelope, "module")
}

func (a ModuleEventAdapter) Normalize(raw []byte) (IndexMutation, error) {
	var p ModuleEventPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		return IndexMutation{}, &PayloadError{Shape: a.Shape(), Reason: err.Error()}
	}

	event, known := moduleEvents[p.Event]
	if p.Module != "entry" || !known {
		return IndexMutation{Kind: MutationIgnore, Event: p.Event}, nil
	}
	kind := lifecycleKind(event)

	uid := stringValue(p.Data.Entry, "uid")
	if uid == "" {
		return IndexMutation{}, missingField(a.Shape(), "data.entry.uid")
	}
	contentType, _ := p.Data.Entry["content_type"].(map[string]any)
	contentTypeUID := stringValue(contentType, "uid")
	if contentTypeUID == "" {
		return IndexMutation{}, missingField(a.Shape(), "data.entry.content_type.uid")
	}

	m := IndexMutation{Kind: kind, Event: event, UID: uid}
	if kind == MutationUpsert {
		entry, err := buildEntry(uid, contentTypeUID, p.Data.Entry, p.Data.Entry)
		if err != nil {
			return IndexMutation{}, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
		}
		if entry.Locale == "" {
			entry.Locale = p.Data.Locale
		}
		m.Entry = entry
	}
	return m, nil
}
