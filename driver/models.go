package driver

import "time"

// EntryRecord is the stored form of an indexed entry.
type EntryRecord struct {
	UID            string
	Title          string
	ContentTypeUID string
	Locale         string
	URL            string
	CreatedAt      string
	UpdatedAt      string
	PublishedAt    string
	Fields         map[string]any
	// IndexedAt is when the record was last written.
	IndexedAt time.Time
}

// RecordFilter selects records in a listing. A nil filter selects all.
type RecordFilter func(rec *EntryRecord) bool
