// Package feed merges the remote post collection with the local
// pending-post cache into a single ordered view.
package feed

import (
	"context"
	"log"
	"sync"

	"github.com/hexagonal-games/backend/internal/cache"
	"github.com/hexagonal-games/backend/internal/models"
	"github.com/hexagonal-games/backend/internal/repositories"
)

// Aggregator combines a one-shot fetch of the remote posts with the
// continuously-updated local cache. Remote posts come first in store order,
// followed by local posts in emission order. A failed remote fetch is logged
// and the feed degrades to local-only; there is no automatic retry.
type Aggregator struct {
	remote repositories.PostRepository
	local  cache.Store
}

func NewAggregator(remote repositories.PostRepository, local cache.Store) *Aggregator {
	return &Aggregator{remote: remote, local: local}
}

// Snapshot returns the current aggregate view.
func (a *Aggregator) Snapshot(ctx context.Context) []models.Post {
	remote := a.fetchRemote(ctx)
	local, err := a.local.List(ctx)
	if err != nil {
		log.Printf("feed: list local cache: %v", err)
	}
	return merge(remote, local)
}

// Subscribe emits the initial aggregate and then a re-merged aggregate for
// every local cache update, until the context is done or cancel is called.
// The output channel is closed on teardown; delivery is latest-wins so a
// slow subscriber always sees the freshest view.
func (a *Aggregator) Subscribe(ctx context.Context) (<-chan []models.Post, func()) {
	out := make(chan []models.Post, 1)
	updates, cancelWatch := a.local.Watch()

	done := make(chan struct{})
	var once sync.Once
	cancel := func() {
		once.Do(func() {
			cancelWatch()
			close(done)
		})
	}

	go func() {
		defer close(out)

		remote := a.fetchRemote(ctx)
		local, err := a.local.List(ctx)
		if err != nil {
			log.Printf("feed: list local cache: %v", err)
		}
		send(out, merge(remote, local))

		for {
			select {
			case <-ctx.Done():
				return
			case <-done:
				return
			case local := <-updates:
				send(out, merge(remote, local))
			}
		}
	}()

	return out, cancel
}

func (a *Aggregator) fetchRemote(ctx context.Context) []models.Post {
	posts, err := a.remote.ListPosts(ctx)
	if err != nil {
		log.Printf("feed: remote fetch failed, serving local only: %v", err)
		return nil
	}
	return posts
}

func merge(remote, local []models.Post) []models.Post {
	out := make([]models.Post, 0, len(remote)+len(local))
	out = append(out, remote...)
	out = append(out, local...)
	return out
}

func send(out chan []models.Post, snapshot []models.Post) {
	select {
	case out <- snapshot:
	default:
		select {
		case <-out:
		default:
		}
		out <- snapshot
	}
}
