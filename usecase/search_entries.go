package usecase

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"content-indexer/domain"
	"content-indexer/metrics"
	"content-indexer/port"

	lru "github.com/hashicorp/golang-lru/v2"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/sync/singleflight"
)

// SearchResult is a ranked result list plus the stats it was computed
// against. Stats is nil when the query was blank and the index was not read.
type SearchResult struct {
	Query   string
	Entries []domain.ScoredEntry
	Stats   *domain.IndexStats
}

type searchCacheKey struct {
	version     uint64
	query       string
	contentType string
	locale      string
	limit       int
}

// SearchEntriesUsecase ranks indexed entries against a free-text query.
// Results are cached per index version, so any mutation invalidates them.
type SearchEntriesUsecase struct {
	index port.ContentIndex
	cache *lru.Cache[searchCacheKey, []domain.ScoredEntry]
	group singleflight.Group
	// rank is swapped in tests to simulate a failing scan.
	rank func([]domain.Entry, string, domain.SearchFilters) []domain.ScoredEntry
}

// NewSearchEntriesUsecase creates the usecase. cacheSize <= 0 disables caching.
func NewSearchEntriesUsecase(index port.ContentIndex, cacheSize int) (*SearchEntriesUsecase, error) {
	u := &SearchEntriesUsecase{
		index: index,
		rank:  domain.RankEntries,
	}
	if cacheSize > 0 {
		cache, err := lru.New[searchCacheKey, []domain.ScoredEntry](cacheSize)
		if err != nil {
			return nil, fmt.Errorf("create search cache: %w", err)
		}
		u.cache = cache
	}
	return u, nil
}

// Execute returns ranked entries. A blank query returns an empty result
// without reading the index. Any fault during the scan is reported as
// domain.ErrSearchFailed and no partial result is returned.
func (u *SearchEntriesUsecase) Execute(ctx context.Context, query string, filters domain.SearchFilters) (*SearchResult, error) {
	ctx, span := tracer.Start(ctx, "SearchEntries")
	defer span.End()
	start := time.Now()

	if domain.IsBlankQuery(query) {
		metrics.RecordSearch("empty", time.Since(start))
		return &SearchResult{Query: query, Entries: []domain.ScoredEntry{}}, nil
	}

	entries, version := u.index.Snapshot()
	key := searchCacheKey{
		version:     version,
		query:       query,
		contentType: filters.ContentType,
		locale:      filters.Locale,
		limit:       filters.EffectiveLimit(),
	}
	span.SetAttributes(
		attribute.Int("search.candidates", len(entries)),
		attribute.String("search.content_type", filters.ContentType),
		attribute.String("search.locale", filters.Locale),
	)

	ranked, err := u.lookup(ctx, key, entries, query, filters)
	if err != nil {
		metrics.RecordSearch("error", time.Since(start))
		span.RecordError(err)
		span.SetStatus(codes.Error, "search failed")
		return nil, err
	}

	metrics.RecordSearch("ok", time.Since(start))
	span.SetAttributes(attribute.Int("search.results", len(ranked)))
	stats := domain.DeriveStats(entries)
	return &SearchResult{
		Query:   query,
		Entries: ranked,
		Stats:   &stats,
	}, nil
}

func (u *SearchEntriesUsecase) lookup(_ context.Context, key searchCacheKey, entries []domain.Entry, query string, filters domain.SearchFilters) ([]domain.ScoredEntry, error) {
	if u.cache == nil {
		return u.safeRank(entries, query, filters)
	}
	if hit, ok := u.cache.Get(key); ok {
		metrics.RecordSearchCache(true)
		return hit, nil
	}
	metrics.RecordSearchCache(false)

	flightKey := strconv.FormatUint(key.version, 10) + "\x00" + key.query + "\x00" +
		key.contentType + "\x00" + key.locale + "\x00" + strconv.Itoa(key.limit)
	v, err, _ := u.group.Do(flightKey, func() (any, error) {
		ranked, err := u.safeRank(entries, query, filters)
		if err != nil {
			return nil, err
		}
		u.cache.Add(key, ranked)
		return ranked, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]domain.ScoredEntry), nil
}

func (u *SearchEntriesUsecase) safeRank(entries []domain.Entry, query string, filters domain.SearchFilters) (ranked []domain.ScoredEntry, err error) {
	defer func() {
		if r := recover(); r != nil {
			ranked = nil
			err = fmt.Errorf("%w: %v", domain.ErrSearchFailed, r)
		}
	}()
	return u.rank(entries, query, filters), nil
}
