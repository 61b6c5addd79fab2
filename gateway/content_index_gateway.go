package gateway

import (
	"content-indexer/domain"
	"content-indexer/driver"
)

// IndexDriver is the storage the gateway adapts to port.ContentIndex.
type IndexDriver interface {
	Upsert(rec driver.EntryRecord) bool
	Delete(uid string) bool
	List(filter driver.RecordFilter) []driver.EntryRecord
	ListWithVersion() ([]driver.EntryRecord, uint64)
	Truncate() int
}

// ContentIndexGateway converts between domain entries and driver records.
// Entries are cloned on the way in, so later changes to a caller's Fields
// never leak into the index. Entries handed out are shared and must be
// treated as read-only.
type ContentIndexGateway struct {
	driver IndexDriver
}

func NewContentIndexGateway(driver IndexDriver) *ContentIndexGateway {
	return &ContentIndexGateway{
		driver: driver,
	}
}

func (g *ContentIndexGateway) Put(entry domain.Entry) {
	g.driver.Upsert(toRecord(entry.Clone()))
}

func (g *ContentIndexGateway) Remove(uid string) bool {
	return g.driver.Delete(uid)
}

func (g *ContentIndexGateway) All() []domain.Entry {
	return toEntries(g.driver.List(nil))
}

func (g *ContentIndexGateway) ByContentType(contentTypeUID string) []domain.Entry {
	return toEntries(g.driver.List(func(rec *driver.EntryRecord) bool {
		return rec.ContentTypeUID == contentTypeUID
	}))
}

func (g *ContentIndexGateway) ByLocale(locale string) []domain.Entry {
	return toEntries(g.driver.List(func(rec *driver.EntryRecord) bool {
		return rec.Locale == locale
	}))
}

// Stats is derived from the current records on every call.
func (g *ContentIndexGateway) Stats() domain.IndexStats {
	return domain.DeriveStats(g.All())
}

func (g *ContentIndexGateway) Clear() int {
	return g.driver.Truncate()
}

func (g *ContentIndexGateway) Snapshot() ([]domain.Entry, uint64) {
	records, version := g.driver.ListWithVersion()
	return toEntries(records), version
}

func toRecord(e domain.Entry) driver.EntryRecord {
	return driver.EntryRecord{
		UID:            e.UID,
		Title:          e.Title,
		ContentTypeUID: e.ContentTypeUID,
		Locale:         e.Locale,
		URL:            e.URL,
		CreatedAt:      e.CreatedAt,
		UpdatedAt:      e.UpdatedAt,
		PublishedAt:    e.PublishedAt,
		Fields:         e.Fields,
	}
}

func toEntries(records []driver.EntryRecord) []domain.Entry {
	entries := make([]domain.Entry, len(records))
	for i, rec := range records {
		entries[i] = domain.Entry{
			UID:            rec.UID,
			Title:          rec.Title,
			ContentTypeUID: rec.ContentTypeUID,
			Locale:         rec.Locale,
			URL:            rec.URL,
			CreatedAt:      rec.CreatedAt,
			UpdatedAt:      rec.UpdatedAt,
			PublishedAt:    rec.PublishedAt,
			Fields:         rec.Fields,
		}
	}
	return entries
}
