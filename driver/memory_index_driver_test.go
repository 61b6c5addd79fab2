package driver

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func record(uid, contentType, title string) EntryRecord {
	return EntryRecord{UID: uid, ContentTypeUID: contentType, Title: title, Fields: map[string]any{}}
}

func recordUIDs(records []EntryRecord) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.UID
	}
	return out
}

func TestMemoryIndexDriver_Upsert(t *testing.T) {
	d := NewMemoryIndexDriver()
	fixed := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)
	d.now = func() time.Time { return fixed }

	replaced := d.Upsert(record("p1", "product", "v1"))
	assert.False(t, replaced)
	replaced = d.Upsert(record("p2", "product", "other"))
	assert.False(t, replaced)

	replaced = d.Upsert(record("p1", "product", "v2"))
	assert.True(t, replaced)

	all := d.List(nil)
	require.Len(t, all, 2)
	assert.Equal(t, []string{"p1", "p2"}, recordUIDs(all))
	assert.Equal(t, "v2", all[0].Title)
	assert.Equal(t, fixed, all[0].IndexedAt)
	assert.Equal(t, 2, d.Count())
}

func TestMemoryIndexDriver_Delete(t *testing.T) {
	d := NewMemoryIndexDriver()
	d.Upsert(record("p1", "product", "a"))
	d.Upsert(record("p2", "product", "b"))
	d.Upsert(record("p3", "product", "c"))

	assert.True(t, d.Delete("p2"))
	assert.Equal(t, []string{"p1", "p3"}, recordUIDs(d.List(nil)))

	before := d.Version()
	assert.False(t, d.Delete("missing"))
	assert.Equal(t, before, d.Version())
	assert.Equal(t, 2, d.Count())
}

func TestMemoryIndexDriver_List(t *testing.T) {
	d := NewMemoryIndexDriver()
	d.Upsert(record("p1", "product", "a"))
	d.Upsert(record("a1", "article", "b"))
	d.Upsert(record("p2", "product", "c"))

	products := d.List(func(rec *EntryRecord) bool { return rec.ContentTypeUID == "product" })
	assert.Equal(t, []string{"p1", "p2"}, recordUIDs(products))

	none := d.List(func(rec *EntryRecord) bool { return false })
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestMemoryIndexDriver_Version(t *testing.T) {
	d := NewMemoryIndexDriver()
	assert.Equal(t, uint64(0), d.Version())

	d.Upsert(record("p1", "product", "a"))
	assert.Equal(t, uint64(1), d.Version())

	d.Upsert(record("p1", "product", "b"))
	assert.Equal(t, uint64(2), d.Version())

	_, v := d.ListWithVersion()
	assert.Equal(t, uint64(2), v)

	d.Delete("p1")
	assert.Equal(t, uint64(3), d.Version())

	assert.Equal(t, 0, d.Truncate())
	assert.Equal(t, uint64(3), d.Version(), "truncating an empty store is not a write")
}

func TestMemoryIndexDriver_Truncate(t *testing.T) {
	d := NewMemoryIndexDriver()
	d.Upsert(record("p1", "product", "a"))
	d.Upsert(record("p2", "product", "b"))

	assert.Equal(t, 2, d.Truncate())
	assert.Equal(t, 0, d.Count())
	assert.Empty(t, d.List(nil))

	d.Upsert(record("p3", "product", "c"))
	assert.Equal(t, []string{"p3"}, recordUIDs(d.List(nil)))
}

func TestMemoryIndexDriver_ConcurrentAccess(t *testing.T) {
	d := NewMemoryIndexDriver()

	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := range 50 {
				uid := fmt.Sprintf("w%d-%d", n, j)
				d.Upsert(record(uid, "product", uid))
				_ = d.List(nil)
				if j%2 == 0 {
					d.Delete(uid)
				}
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 8*25, d.Count())
	assert.Len(t, d.List(nil), 8*25)
}
