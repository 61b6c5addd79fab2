package domain

import (
	"encoding/json"
	"fmt"
)

// CMSWebhookPayload is the envelope the CMS webhook product delivers.
type CMSWebhookPayload struct {
	Event       string         `json:"event"`
	Data        CMSWebhookData `json:"data"`
	Environment any            `json:"environment,omitempty"`
	Timestamp   string         `json:"timestamp,omitempty"`
}

type CMSWebhookData struct {
	Entry       map[string]any `json:"entry"`
	ContentType ContentTypeRef `json:"content_type"`
}

type ContentTypeRef struct {
	UID   string `json:"uid"`
	Title string `json:"title,omitempty"`
}

// CMSWebhookAdapter handles ShapeCMSWebhook.
type CMSWebhookAdapter struct{}

func (CMSWebhookAdapter) Shape() PayloadShape { return ShapeCMSWebhook }

func (CMSWebhookAdapter) Matches(envelope map[string]json.RawMessage) bool {
	return hasKey(envelope, "event") && !hasKey(envelope, "module")
}

func (a CMSWebhookAdapter) Normalize(raw []byte) (IndexMutation, error) {
	var p CMSWebhookPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		return IndexMutation{}, &PayloadError{Shape: a.Shape(), Reason: err.Error()}
	}

	kind := lifecycleKind(p.Event)
	if kind == MutationIgnore {
		return IndexMutation{Kind: MutationIgnore, Event: p.Event}, nil
	}

	uid := stringValue(p.Data.Entry, "uid")
	if uid == "" {
		return IndexMutation{}, missingField(a.Shape(), "data.entry.uid")
	}
	if p.Data.ContentType.UID == "" {
		return IndexMutation{}, missingField(a.Shape(), "data.content_type.uid")
	}

	m := IndexMutation{Kind: kind, Event: p.Event, UID: uid}
	if kind == MutationUpsert {
		entry, err := buildEntry(uid, p.Data.ContentType.UID, p.Data.Entry, p.Data.Entry)
		if err != nil {
			return IndexMutation{}, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
		}
		m.Entry = entry
	}
	return m, nil
}
