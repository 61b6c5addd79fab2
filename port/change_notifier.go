package port

import (
	"context"

	"content-indexer/domain"
)

//go:generate mockgen -source=change_notifier.go -destination=../mocks/mock_change_notifier.go -package=mocks

// ChangeNotifier pushes index changes to live observers. Publish must not
// block on slow observers.
type ChangeNotifier interface {
	Publish(ctx context.Context, event domain.ChangeEvent)
}
