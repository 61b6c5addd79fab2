package usecase

import (
	"context"

	"content-indexer/domain"
	"content-indexer/port"
)

// FilterAll is the browse value meaning "no filter".
const FilterAll = "all"

// ListFilter selects one listing dimension. ContentType wins over Locale.
type ListFilter struct {
	ContentType string
	Locale      string
}

// ListResult holds a listing and the stats at the time it was read.
type ListResult struct {
	Entries []domain.Entry
	Stats   domain.IndexStats
	// Dimension is "contentType", "locale" or "all".
	Dimension string
	Value     string
}

// ListEntriesUsecase serves the unfiltered browse paths.
type ListEntriesUsecase struct {
	index port.ContentIndex
}

func NewListEntriesUsecase(index port.ContentIndex) *ListEntriesUsecase {
	return &ListEntriesUsecase{index: index}
}

func (u *ListEntriesUsecase) ListAll(ctx context.Context) []domain.Entry {
	return u.index.All()
}

func (u *ListEntriesUsecase) ListByType(ctx context.Context, contentTypeUID string) []domain.Entry {
	return u.index.ByContentType(contentTypeUID)
}

func (u *ListEntriesUsecase) ListByLocale(ctx context.Context, locale string) []domain.Entry {
	return u.index.ByLocale(locale)
}

// Execute applies at most one filter dimension; empty and "all" values are unset.
func (u *ListEntriesUsecase) Execute(ctx context.Context, filter ListFilter) *ListResult {
	_, span := tracer.Start(ctx, "ListEntries")
	defer span.End()

	result := &ListResult{Dimension: FilterAll}
	switch {
	case isSet(filter.ContentType):
		result.Dimension = "contentType"
		result.Value = filter.ContentType
		result.Entries = u.ListByType(ctx, filter.ContentType)
	case isSet(filter.Locale):
		result.Dimension = "locale"
		result.Value = filter.Locale
		result.Entries = u.ListByLocale(ctx, filter.Locale)
	default:
		result.Entries = u.ListAll(ctx)
	}
	result.Stats = u.index.Stats()
	return result
}

func isSet(v string) bool {
	return v != "" && v != FilterAll
}

// NormalizeFilter maps the browse value "all" to an empty filter.
func NormalizeFilter(v string) string {
	if v == FilterAll {
		return ""
	}
	return v
}
