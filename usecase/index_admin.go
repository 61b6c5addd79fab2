package usecase

import (
	"context"

	"content-indexer/domain"
	"content-indexer/metrics"
	"content-indexer/port"
)

// IndexAdminUsecase provides read-only introspection and the administrative reset.
type IndexAdminUsecase struct {
	index    port.ContentIndex
	notifier port.ChangeNotifier
}

func NewIndexAdminUsecase(index port.ContentIndex, notifier port.ChangeNotifier) *IndexAdminUsecase {
	return &IndexAdminUsecase{index: index, notifier: notifier}
}

func (u *IndexAdminUsecase) Stats(ctx context.Context) domain.IndexStats {
	return u.index.Stats()
}

// Snapshot returns every entry with the matching stats, used to prime new observers.
func (u *IndexAdminUsecase) Snapshot(ctx context.Context) domain.ChangeEvent {
	entries, _ := u.index.Snapshot()
	return domain.NewSnapshotEvent(entries, domain.DeriveStats(entries))
}

// Clear empties the index, tells observers, and returns the new stats,
// which are necessarily zero.
func (u *IndexAdminUsecase) Clear(ctx context.Context) (domain.IndexStats, int) {
	ctx, span := tracer.Start(ctx, "ClearIndex")
	defer span.End()

	removed := u.index.Clear()
	stats := domain.EmptyStats()
	metrics.SetIndexSize(stats.TotalEntries)
	if u.notifier != nil {
		u.notifier.Publish(ctx, domain.NewChangeEvent(domain.ChangeIndexCleared, stats))
	}
	return stats, removed
}
