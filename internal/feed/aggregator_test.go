package feed

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/hexagonal-games/backend/internal/cache"
	"github.com/hexagonal-games/backend/internal/models"
)

type fakeRepo struct {
	posts   []models.Post
	listErr error
	calls   int
}

func (f *fakeRepo) CreatePost(context.Context, *models.Post) error { return nil }
func (f *fakeRepo) GetPost(context.Context, string) (*models.Post, error) {
	return nil, nil
}
func (f *fakeRepo) AppendComment(context.Context, string, models.Comment) error { return nil }
func (f *fakeRepo) ListPosts(context.Context) ([]models.Post, error) {
	f.calls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.posts, nil
}

func ids(posts []models.Post) []string {
	out := make([]string, len(posts))
	for i, p := range posts {
		out[i] = p.ID
	}
	return out
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func recv(t *testing.T, ch <-chan []models.Post) []models.Post {
	t.Helper()
	select {
	case snap := <-ch:
		return snap
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for emission")
		return nil
	}
}

func TestRemoteFirstThenLocal(t *testing.T) {
	ctx := context.Background()
	local := cache.NewMemoryStore()
	local.Add(ctx, models.Post{ID: "p2"})

	agg := NewAggregator(&fakeRepo{posts: []models.Post{{ID: "p1"}}}, local)

	out, cancel := agg.Subscribe(ctx)
	defer cancel()

	if got := ids(recv(t, out)); !equal(got, []string{"p1", "p2"}) {
		t.Fatalf("initial aggregate = %v", got)
	}

	local.Add(ctx, models.Post{ID: "p3"})
	if got := ids(recv(t, out)); !equal(got, []string{"p1", "p2", "p3"}) {
		t.Fatalf("aggregate after cache update = %v", got)
	}
}

func TestRemoteFailureDegradesToLocal(t *testing.T) {
	ctx := context.Background()
	local := cache.NewMemoryStore()
	local.Add(ctx, models.Post{ID: "p2"})

	repo := &fakeRepo{listErr: errors.New("store unreachable")}
	agg := NewAggregator(repo, local)

	out, cancel := agg.Subscribe(ctx)
	defer cancel()

	if got := ids(recv(t, out)); !equal(got, []string{"p2"}) {
		t.Fatalf("degraded aggregate = %v", got)
	}
	if repo.calls != 1 {
		t.Errorf("remote fetch calls = %d, want 1 (no automatic retry)", repo.calls)
	}
}

func TestPruneReEmitsWithoutPost(t *testing.T) {
	ctx := context.Background()
	local := cache.NewMemoryStore()
	local.Add(ctx, models.Post{ID: "pending"})

	agg := NewAggregator(&fakeRepo{}, local)

	out, cancel := agg.Subscribe(ctx)
	defer cancel()

	if got := ids(recv(t, out)); !equal(got, []string{"pending"}) {
		t.Fatalf("initial aggregate = %v", got)
	}

	local.Remove(ctx, "pending")
	if got := ids(recv(t, out)); len(got) != 0 {
		t.Fatalf("aggregate after prune = %v", got)
	}
}

func TestSnapshot(t *testing.T) {
	ctx := context.Background()
	local := cache.NewMemoryStore()
	local.Add(ctx, models.Post{ID: "p2"})

	agg := NewAggregator(&fakeRepo{posts: []models.Post{{ID: "p1"}}}, local)
	if got := ids(agg.Snapshot(ctx)); !equal(got, []string{"p1", "p2"}) {
		t.Fatalf("Snapshot = %v", got)
	}
}

func TestCancelClosesStream(t *testing.T) {
	ctx := context.Background()
	local := cache.NewMemoryStore()
	agg := NewAggregator(&fakeRepo{}, local)

	out, cancel := agg.Subscribe(ctx)
	recv(t, out)
	cancel()

	select {
	case _, ok := <-out:
		if ok {
			// A final in-flight emission may arrive; the next read must
			// observe the close.
			if _, ok := <-out; ok {
				t.Fatal("stream still open after cancel")
			}
		}
	case <-time.After(2 * time.Second):
		t.Fatal("stream not closed after cancel")
	}
}
