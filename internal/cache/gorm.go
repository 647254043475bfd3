package cache

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/hexagonal-games/backend/internal/models"
)

// PendingPost is the relational row backing one locally-created post that
// has not been confirmed remote yet. The auto-incremented sequence preserves
// emission order across restarts.
type PendingPost struct {
	Seq             uint   `gorm:"primaryKey;autoIncrement"`
	PostID          string `gorm:"uniqueIndex;size:64"`
	Title           string
	Description     string
	PhotoURL        string
	Timestamp       int64
	AuthorID        string
	AuthorFirstname string
	AuthorLastname  string
}

// GormStore implements Store on a relational table so pending posts survive
// process restarts. Watch notifications still fan out in-process.
type GormStore struct {
	db  *gorm.DB
	hub *hub
}

// NewGormStore migrates the pending-post table and returns the store.
func NewGormStore(db *gorm.DB) (*GormStore, error) {
	if err := db.AutoMigrate(&PendingPost{}); err != nil {
		return nil, fmt.Errorf("migrate pending posts: %w", err)
	}
	return &GormStore{db: db, hub: newHub()}, nil
}

func (s *GormStore) Add(ctx context.Context, post models.Post) error {
	row := PendingPost{
		PostID:      post.ID,
		Title:       post.Title,
		Description: post.Description,
		PhotoURL:    post.PhotoURL,
		Timestamp:   post.Timestamp,
	}
	if post.Author != nil {
		row.AuthorID = post.Author.ID
		row.AuthorFirstname = post.Author.Firstname
		row.AuthorLastname = post.Author.Lastname
	}
	// Retried submissions re-add the same post id; update in place.
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "post_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"title", "description", "photo_url", "timestamp"}),
	}).Create(&row).Error
	if err != nil {
		return fmt.Errorf("cache pending post %s: %w", post.ID, err)
	}
	return s.emit(ctx)
}

func (s *GormStore) Remove(ctx context.Context, id string) error {
	if err := s.db.WithContext(ctx).Where("post_id = ?", id).Delete(&PendingPost{}).Error; err != nil {
		return fmt.Errorf("prune pending post %s: %w", id, err)
	}
	return s.emit(ctx)
}

func (s *GormStore) List(ctx context.Context) ([]models.Post, error) {
	var rows []PendingPost
	if err := s.db.WithContext(ctx).Order("seq").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list pending posts: %w", err)
	}

	posts := make([]models.Post, 0, len(rows))
	for _, row := range rows {
		post := models.Post{
			ID:          row.PostID,
			Title:       row.Title,
			Description: row.Description,
			PhotoURL:    row.PhotoURL,
			Timestamp:   row.Timestamp,
		}
		if row.AuthorID != "" {
			post.Author = &models.User{
				ID:        row.AuthorID,
				Firstname: row.AuthorFirstname,
				Lastname:  row.AuthorLastname,
			}
		}
		posts = append(posts, post)
	}
	return posts, nil
}

func (s *GormStore) Watch() (<-chan []models.Post, func()) {
	return s.hub.subscribe()
}

func (s *GormStore) emit(ctx context.Context) error {
	snapshot, err := s.List(ctx)
	if err != nil {
		return err
	}
	s.hub.broadcast(snapshot)
	return nil
}
