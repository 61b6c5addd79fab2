package domain

import (
	"time"

	"github.com/google/uuid"
)

// ChangeEventType names a notification pushed to observers.
type ChangeEventType string

const (
	ChangeSnapshot     ChangeEventType = "snapshot"
	ChangeEntryUpsert  ChangeEventType = "entry.upserted"
	ChangeEntryRemoved ChangeEventType = "entry.removed"
	ChangeIndexCleared ChangeEventType = "index.cleared"
)

// ChangeEvent describes one index change for live observers.
type ChangeEvent struct {
	ID        string          `json:"id"`
	Type      ChangeEventType `json:"type"`
	Event     string          `json:"event,omitempty"`
	UID       string          `json:"uid,omitempty"`
	Entry     *Entry          `json:"entry,omitempty"`
	Entries   []Entry         `json:"entries,omitempty"`
	Stats     IndexStats      `json:"stats"`
	Timestamp time.Time       `json:"timestamp"`
}

// NewChangeEvent stamps a new event with an id and the current time.
func NewChangeEvent(t ChangeEventType, stats IndexStats) ChangeEvent {
	return ChangeEvent{
		ID:        uuid.NewString(),
		Type:      t,
		Stats:     stats,
		Timestamp: time.Now().UTC(),
	}
}

// NewSnapshotEvent carries the full entry list for a newly connected observer.
func NewSnapshotEvent(entries []Entry, stats IndexStats) ChangeEvent {
	ev := NewChangeEvent(ChangeSnapshot, stats)
	if entries == nil {
		entries = []Entry{}
	}
	ev.Entries = entries
	return ev
}

// NewMutationEvent describes an applied upsert or removal.
func NewMutationEvent(m IndexMutation, stats IndexStats) ChangeEvent {
	t := ChangeEntryUpsert
	if m.Kind == MutationRemove {
		t = ChangeEntryRemoved
	}
	ev := NewChangeEvent(t, stats)
	ev.Event = m.Event
	ev.UID = m.UID
	if m.Entry != nil {
		e := m.Entry.Clone()
		ev.Entry = &e
	}
	return ev
}
