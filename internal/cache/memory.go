package cache

import (
	"context"
	"sync"

	"github.com/hexagonal-games/backend/internal/models"
)

// MemoryStore implements Store entirely in memory. Pending posts do not
// survive a restart; deployments that want durability use GormStore instead.
type MemoryStore struct {
	mu    sync.Mutex
	posts []models.Post
	hub   *hub
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{hub: newHub()}
}

func (s *MemoryStore) Add(_ context.Context, post models.Post) error {
	s.mu.Lock()
	// A retried submission re-adds the same pending post; replace it in
	// place instead of duplicating it.
	replaced := false
	for i, p := range s.posts {
		if p.ID == post.ID {
			s.posts[i] = post
			replaced = true
			break
		}
	}
	if !replaced {
		s.posts = append(s.posts, post)
	}
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	s.hub.broadcast(snapshot)
	return nil
}

func (s *MemoryStore) Remove(_ context.Context, id string) error {
	s.mu.Lock()
	kept := s.posts[:0]
	for _, p := range s.posts {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	s.posts = kept
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	s.hub.broadcast(snapshot)
	return nil
}

func (s *MemoryStore) List(_ context.Context) ([]models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked(), nil
}

func (s *MemoryStore) Watch() (<-chan []models.Post, func()) {
	return s.hub.subscribe()
}

func (s *MemoryStore) snapshotLocked() []models.Post {
	snapshot := make([]models.Post, len(s.posts))
	copy(snapshot, s.posts)
	return snapshot
}
