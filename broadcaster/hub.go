// Package broadcaster fans index change events out to live observers.
package broadcaster

import (
	"context"
	"log/slog"
	"sync"

	"content-indexer/domain"
	"content-indexer/logger"
	"content-indexer/metrics"

	"github.com/google/uuid"
)

// Subscription is one observer's view of the change stream. Events is
// closed when the subscription ends.
type Subscription struct {
	ID     string
	Events <-chan domain.ChangeEvent

	ch chan domain.ChangeEvent
}

// Hub delivers every published event to each subscriber's buffered channel.
// A subscriber whose buffer is full misses the event; Publish never blocks.
type Hub struct {
	mu          sync.RWMutex
	subscribers map[string]*Subscription
	bufferSize  int
	closed      bool
}

func NewHub(bufferSize int) *Hub {
	if bufferSize <= 0 {
		bufferSize = 1
	}
	return &Hub{
		subscribers: make(map[string]*Subscription),
		bufferSize:  bufferSize,
	}
}

// Subscribe registers a new observer. It returns nil once the hub is closed.
func (h *Hub) Subscribe() *Subscription {
	ch := make(chan domain.ChangeEvent, h.bufferSize)
	sub := &Subscription{ID: uuid.NewString(), Events: ch, ch: ch}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return nil
	}
	h.subscribers[sub.ID] = sub
	metrics.SSESubscribers.Set(float64(len(h.subscribers)))
	return sub
}

// Unsubscribe removes the observer and closes its channel. Calling it twice
// is harmless.
func (h *Hub) Unsubscribe(sub *Subscription) {
	if sub == nil {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.subscribers[sub.ID]; !ok {
		return
	}
	delete(h.subscribers, sub.ID)
	close(sub.ch)
	metrics.SSESubscribers.Set(float64(len(h.subscribers)))
}

// Publish implements port.ChangeNotifier.
func (h *Hub) Publish(ctx context.Context, event domain.ChangeEvent) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, sub := range h.subscribers {
		select {
		case sub.ch <- event:
		default:
			metrics.BroadcastDroppedTotal.Inc()
			logger.GlobalContext.WithContext(ctx).Warn("dropping change event for slow subscriber",
				slog.String("subscriber_id", sub.ID),
				slog.String("event_type", string(event.Type)))
		}
	}
}

// Len returns the number of active subscribers.
func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscribers)
}

// Close ends every subscription. Later Subscribe calls return nil.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	h.closed = true
	for id, sub := range h.subscribers {
		delete(h.subscribers, id)
		close(sub.ch)
	}
	metrics.SSESubscribers.Set(0)
}
