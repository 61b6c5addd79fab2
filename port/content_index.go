package port

import "content-indexer/domain"

//go:generate mockgen -source=content_index.go -destination=../mocks/mock_content_index.go -package=mocks

// ContentIndex holds the current set of entries. Every operation is safe
// for concurrent use and none of them can fail.
type ContentIndex interface {
	// Put inserts or replaces the entry with the same uid.
	Put(entry domain.Entry)
	// Remove deletes uid and reports whether it was present.
	Remove(uid string) bool
	All() []domain.Entry
	ByContentType(contentTypeUID string) []domain.Entry
	ByLocale(locale string) []domain.Entry
	Stats() domain.IndexStats
	// Clear empties the index and returns how many entries were dropped.
	Clear() int
	// Snapshot returns all entries together with the version they were read at.
	Snapshot() ([]domain.Entry, uint64)
}
