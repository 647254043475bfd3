package repositories

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/hexagonal-games/backend/internal/models"
)

// MongoPostRepository implements PostRepository for MongoDB, for deployments
// that keep the post collection in Mongo instead of Firestore.
type MongoPostRepository struct {
	collection *mongo.Collection
	timeout    time.Duration
}

// NewMongoPostRepository creates a new MongoPostRepository.
func NewMongoPostRepository(db *mongo.Database, timeout time.Duration) *MongoPostRepository {
	return &MongoPostRepository{collection: db.Collection(postsCollection), timeout: timeout}
}

// CreatePost inserts a post document keyed by its client-generated id.
func (r *MongoPostRepository) CreatePost(ctx context.Context, post *models.Post) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	if _, err := r.collection.InsertOne(ctx, post); err != nil {
		return fmt.Errorf("create post %s: %w", post.ID, err)
	}
	return nil
}

// GetPost retrieves a post by id. An absent document returns (nil, nil).
func (r *MongoPostRepository) GetPost(ctx context.Context, id string) (*models.Post, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	var post models.Post
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&post)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("get post %s: %w", id, err)
	}
	return &post, nil
}

// ListPosts retrieves every post in the collection.
func (r *MongoPostRepository) ListPosts(ctx context.Context) ([]models.Post, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	cursor, err := r.collection.Find(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	defer cursor.Close(ctx)

	var posts []models.Post
	if err := cursor.All(ctx, &posts); err != nil {
		return nil, fmt.Errorf("decode posts: %w", err)
	}
	return posts, nil
}

// AppendComment adds a comment to a post with $addToSet, the additive-merge
// counterpart of Firestore's array union. Comment ids are unique, so the
// set semantics never collapse two distinct comments.
func (r *MongoPostRepository) AppendComment(ctx context.Context, postID string, comment models.Comment) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	res, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": postID},
		bson.M{"$addToSet": bson.M{"comments": comment}},
	)
	if err != nil {
		return fmt.Errorf("append comment to post %s: %w", postID, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("append comment: post %s not found", postID)
	}
	return nil
}
