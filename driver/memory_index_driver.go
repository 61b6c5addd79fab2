package driver

import (
	"sync"
	"time"
)

// MemoryIndexDriver is a process-lifetime record store keyed by uid.
// Listings follow insertion order; a replaced record keeps its position.
type MemoryIndexDriver struct {
	mu      sync.RWMutex
	records map[string]*EntryRecord
	order   []string
	version uint64
	now     func() time.Time
}

// NewMemoryIndexDriver creates an empty store.
func NewMemoryIndexDriver() *MemoryIndexDriver {
	return &MemoryIndexDriver{
		records: make(map[string]*EntryRecord),
		now:     time.Now,
	}
}

// Upsert writes rec and reports whether an existing record was replaced.
func (d *MemoryIndexDriver) Upsert(rec EntryRecord) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	rec.IndexedAt = d.now()
	_, exists := d.records[rec.UID]
	if !exists {
		d.order = append(d.order, rec.UID)
	}
	d.records[rec.UID] = &rec
	d.version++
	return exists
}

// Delete removes uid and reports whether it was present.
func (d *MemoryIndexDriver) Delete(uid string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.records[uid]; !ok {
		return false
	}
	delete(d.records, uid)
	for i, id := range d.order {
		if id == uid {
			d.order = append(d.order[:i], d.order[i+1:]...)
			break
		}
	}
	d.version++
	return true
}

// List returns copies of the records accepted by filter.
func (d *MemoryIndexDriver) List(filter RecordFilter) []EntryRecord {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.listLocked(filter)
}

// ListWithVersion returns all records and the version they were read at.
func (d *MemoryIndexDriver) ListWithVersion() ([]EntryRecord, uint64) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.listLocked(nil), d.version
}

func (d *MemoryIndexDriver) listLocked(filter RecordFilter) []EntryRecord {
	out := make([]EntryRecord, 0, len(d.order))
	for _, uid := range d.order {
		rec := d.records[uid]
		if filter != nil && !filter(rec) {
			continue
		}
		out = append(out, *rec)
	}
	return out
}

// Count returns the number of stored records.
func (d *MemoryIndexDriver) Count() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.records)
}

// Truncate drops every record and returns how many were dropped.
func (d *MemoryIndexDriver) Truncate() int {
	d.mu.Lock()
	defer d.mu.Unlock()

	n := len(d.records)
	d.records = make(map[string]*EntryRecord)
	d.order = nil
	if n > 0 {
		d.version++
	}
	return n
}

// Version increases on every effective write.
func (d *MemoryIndexDriver) Version() uint64 {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.version
}
