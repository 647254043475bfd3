// Package cache holds posts created locally that are not yet confirmed as
// persisted remotely. The store is a single-writer, many-reader resource:
// the post composer appends and prunes, the feed aggregator watches.
package cache

import (
	"context"
	"sync"

	"github.com/hexagonal-games/backend/internal/models"
)

// Store is the local pending-post cache. Every mutation re-emits the full
// ordered snapshot to all watchers.
type Store interface {
	// Add appends a pending post in emission order.
	Add(ctx context.Context, post models.Post) error

	// Remove prunes a post once the remote store confirms it, so the same
	// post never appears from both sources.
	Remove(ctx context.Context, id string) error

	// List returns the current pending posts in emission order.
	List(ctx context.Context) ([]models.Post, error)

	// Watch subscribes to snapshot emissions. The cancel func must be called
	// when the watcher goes away.
	Watch() (<-chan []models.Post, func())
}

// hub fans a snapshot out to watchers. Delivery is latest-wins per watcher:
// a slow reader always sees the most recent snapshot rather than a backlog.
type hub struct {
	mu   sync.Mutex
	subs map[chan []models.Post]struct{}
}

func newHub() *hub {
	return &hub{subs: make(map[chan []models.Post]struct{})}
}

func (h *hub) subscribe() (<-chan []models.Post, func()) {
	ch := make(chan []models.Post, 1)
	h.mu.Lock()
	h.subs[ch] = struct{}{}
	h.mu.Unlock()

	cancel := func() {
		h.mu.Lock()
		delete(h.subs, ch)
		h.mu.Unlock()
	}
	return ch, cancel
}

func (h *hub) broadcast(snapshot []models.Post) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range h.subs {
		select {
		case ch <- snapshot:
		default:
			select {
			case <-ch:
			default:
			}
			ch <- snapshot
		}
	}
}
