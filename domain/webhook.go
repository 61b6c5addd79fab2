package domain

import (
	"encoding/json"
	"fmt"
)

// PayloadShape identifies one of the known webhook envelopes.
type PayloadShape string

const (
	// ShapeCMSWebhook is {event, data:{entry, content_type}} as sent by the CMS webhook product.
	ShapeCMSWebhook PayloadShape = "cms_webhook"
	// ShapeFlatEvent is {event_type, content_type_uid, entry_uid, data}.
	ShapeFlatEvent PayloadShape = "flat_event"
	// ShapeModuleEvent is {module, event, data:{locale, entry:{content_type}}}.
	ShapeModuleEvent PayloadShape = "module_event"
	// ShapeUnknown is reported for bodies that match no adapter.
	ShapeUnknown PayloadShape = "unknown"
)

// Canonical event names.
const (
	EventEntryPublished   = "entry.published"
	EventEntryUpdated     = "entry.updated"
	EventEntryUnpublished = "entry.unpublished"
	EventEntryDeleted     = "entry.deleted"
)

// MutationKind is the effect a normalized event has on the index.
type MutationKind string

const (
	MutationUpsert MutationKind = "upsert"
	MutationRemove MutationKind = "remove"
	MutationIgnore MutationKind = "ignore"
)

// IndexMutation is the canonical command every payload adapter produces.
type IndexMutation struct {
	Kind  MutationKind
	Shape PayloadShape
	// Event is the canonical event name, or the raw name when ignored.
	Event string
	UID   string
	// Entry is set only for MutationUpsert.
	Entry *Entry
}

// PayloadAdapter normalizes one envelope shape.
type PayloadAdapter interface {
	Shape() PayloadShape
	// Matches reports whether the top-level keys identify this shape.
	Matches(envelope map[string]json.RawMessage) bool
	Normalize(raw []byte) (IndexMutation, error)
}

// DefaultAdapters lists the adapters in classification order. The module
// envelope also carries "event", so it must be checked before the CMS shape.
func DefaultAdapters() []PayloadAdapter {
	return []PayloadAdapter{
		ModuleEventAdapter{},
		FlatEventAdapter{},
		CMSWebhookAdapter{},
	}
}

// WebhookNormalizer classifies a payload and delegates to the matching adapter.
type WebhookNormalizer struct {
	adapters []PayloadAdapter
}

// NewWebhookNormalizer creates a normalizer. With no adapters, DefaultAdapters is used.
func NewWebhookNormalizer(adapters ...PayloadAdapter) *WebhookNormalizer {
	if len(adapters) == 0 {
		adapters = DefaultAdapters()
	}
	return &WebhookNormalizer{adapters: adapters}
}

// Classify returns the shape of raw without normalizing it.
func (n *WebhookNormalizer) Classify(raw []byte) (PayloadShape, error) {
	adapter, err := n.adapterFor(raw)
	if err != nil {
		return ShapeUnknown, err
	}
	return adapter.Shape(), nil
}

// Normalize turns raw into exactly one IndexMutation or an error. On error
// the returned mutation must not be applied.
func (n *WebhookNormalizer) Normalize(raw []byte) (IndexMutation, error) {
	adapter, err := n.adapterFor(raw)
	if err != nil {
		return IndexMutation{Kind: MutationIgnore, Shape: ShapeUnknown}, err
	}
	m, err := adapter.Normalize(raw)
	if err != nil {
		return IndexMutation{Kind: MutationIgnore, Shape: adapter.Shape()}, err
	}
	m.Shape = adapter.Shape()
	return m, nil
}

func (n *WebhookNormalizer) adapterFor(raw []byte) (PayloadAdapter, error) {
	if !json.Valid(raw) {
		return nil, fmt.Errorf("%w: body is not valid JSON", ErrMalformedPayload)
	}
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(raw, &envelope); err != nil || envelope == nil {
		return nil, fmt.Errorf("%w: body is not a JSON object", ErrUnknownPayloadShape)
	}
	for _, a := range n.adapters {
		if a.Matches(envelope) {
			return a, nil
		}
	}
	return nil, ErrUnknownPayloadShape
}

// lifecycleKind maps a canonical event name to its effect.
func lifecycleKind(event string) MutationKind {
	switch event {
	case EventEntryPublished, EventEntryUpdated:
		return MutationUpsert
	case EventEntryUnpublished, EventEntryDeleted:
		return MutationRemove
	default:
		return MutationIgnore
	}
}

func stringValue(m map[string]any, key string) string {
	if m == nil {
		return ""
	}
	s, _ := m[key].(string)
	return s
}

func hasKey(envelope map[string]json.RawMessage, key string) bool {
	_, ok := envelope[key]
	return ok
}

// buildEntry fills an Entry from a raw object that carries the usual
// CMS attributes. fields becomes the entry's Fields verbatim.
func buildEntry(uid, contentTypeUID string, attrs, fields map[string]any) (*Entry, error) {
	e, err := NewEntry(uid, stringValue(attrs, "title"), contentTypeUID)
	if err != nil {
		return nil, err
	}
	e.Locale = stringValue(attrs, "locale")
	e.URL = stringValue(attrs, "url")
	e.CreatedAt = stringValue(attrs, "created_at")
	e.UpdatedAt = stringValue(attrs, "updated_at")
	e.PublishedAt = stringValue(attrs, "published_at")
	if fields != nil {
		e.Fields = fields
	}
	return &e, nil
}
