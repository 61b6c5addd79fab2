package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMutationEvent(t *testing.T) {
	stats := IndexStats{TotalEntries: 1, ContentTypes: []string{"product"}, Locales: []string{}}

	t.Run("upsert carries a copy of the entry", func(t *testing.T) {
		entry := Entry{UID: "p1", Title: "Red", Fields: map[string]any{"k": "v"}}
		ev := NewMutationEvent(IndexMutation{Kind: MutationUpsert, Event: EventEntryPublished, UID: "p1", Entry: &entry}, stats)

		assert.Equal(t, ChangeEntryUpsert, ev.Type)
		assert.Equal(t, EventEntryPublished, ev.Event)
		assert.Equal(t, "p1", ev.UID)
		assert.NotEmpty(t, ev.ID)
		assert.False(t, ev.Timestamp.IsZero())
		assert.Equal(t, stats, ev.Stats)
		require.NotNil(t, ev.Entry)

		entry.Fields["k"] = "changed"
		assert.Equal(t, "v", ev.Entry.Fields["k"])
	})

	t.Run("remove has no entry", func(t *testing.T) {
		ev := NewMutationEvent(IndexMutation{Kind: MutationRemove, Event: EventEntryDeleted, UID: "p1"}, stats)
		assert.Equal(t, ChangeEntryRemoved, ev.Type)
		assert.Nil(t, ev.Entry)
	})
}

func TestNewSnapshotEvent(t *testing.T) {
	ev := NewSnapshotEvent(nil, EmptyStats())
	assert.Equal(t, ChangeSnapshot, ev.Type)
	assert.NotNil(t, ev.Entries)
	assert.Empty(t, ev.Entries)

	ev = NewSnapshotEvent(sampleEntries(), DeriveStats(sampleEntries()))
	assert.Len(t, ev.Entries, 2)
	assert.Equal(t, 2, ev.Stats.TotalEntries)
}

func TestNewChangeEvent_UniqueIDs(t *testing.T) {
	a := NewChangeEvent(ChangeIndexCleared, EmptyStats())
	b := NewChangeEvent(ChangeIndexCleared, EmptyStats())
	assert.NotEqual(t, a.ID, b.ID)
}
