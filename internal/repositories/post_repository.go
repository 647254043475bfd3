package repositories

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/hexagonal-games/backend/internal/models"
)

// postsCollection is the remote document collection holding the feed.
const postsCollection = "posts"

// PostRepository defines the remote document-store operations for posts.
// Every call reports exactly one of a value or an error; a missing document
// on GetPost is a valid empty result, not an error.
type PostRepository interface {
	CreatePost(ctx context.Context, post *models.Post) error
	GetPost(ctx context.Context, id string) (*models.Post, error)
	ListPosts(ctx context.Context) ([]models.Post, error)
	// AppendComment unions a comment into the post's comment array without
	// reading or rewriting the rest of the document, so concurrent appends
	// from other clients are never overwritten.
	AppendComment(ctx context.Context, postID string, comment models.Comment) error
}

// FirestorePostRepository implements PostRepository against Cloud Firestore.
type FirestorePostRepository struct {
	client  *firestore.Client
	timeout time.Duration
}

// NewFirestorePostRepository creates a new FirestorePostRepository. Every
// remote call is bounded by the given timeout; expiry surfaces as an
// ordinary failure.
func NewFirestorePostRepository(client *firestore.Client, timeout time.Duration) *FirestorePostRepository {
	return &FirestorePostRepository{client: client, timeout: timeout}
}

// CreatePost persists a post document keyed by its client-generated id.
func (r *FirestorePostRepository) CreatePost(ctx context.Context, post *models.Post) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	if _, err := r.client.Collection(postsCollection).Doc(post.ID).Set(ctx, post); err != nil {
		return fmt.Errorf("create post %s: %w", post.ID, err)
	}
	return nil
}

// GetPost retrieves a post by id. An absent document returns (nil, nil).
func (r *FirestorePostRepository) GetPost(ctx context.Context, id string) (*models.Post, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	snap, err := r.client.Collection(postsCollection).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("get post %s: %w", id, err)
	}

	var post models.Post
	if err := snap.DataTo(&post); err != nil {
		return nil, fmt.Errorf("decode post %s: %w", id, err)
	}
	return &post, nil
}

// ListPosts retrieves every post in the collection, in store order.
func (r *FirestorePostRepository) ListPosts(ctx context.Context) ([]models.Post, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	snaps, err := r.client.Collection(postsCollection).Documents(ctx).GetAll()
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}

	posts := make([]models.Post, 0, len(snaps))
	for _, snap := range snaps {
		var post models.Post
		if err := snap.DataTo(&post); err != nil {
			return nil, fmt.Errorf("decode post %s: %w", snap.Ref.ID, err)
		}
		posts = append(posts, post)
	}
	return posts, nil
}

// AppendComment adds a comment to a post via an array-union update.
func (r *FirestorePostRepository) AppendComment(ctx context.Context, postID string, comment models.Comment) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	_, err := r.client.Collection(postsCollection).Doc(postID).Update(ctx, []firestore.Update{
		{Path: "comments", Value: firestore.ArrayUnion(comment)},
	})
	if err != nil {
		return fmt.Errorf("append comment to post %s: %w", postID, err)
	}
	return nil
}
