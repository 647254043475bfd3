package models

import (
	"io"
	"strings"
)

// Post represents a publication in the shared feed. A post is created
// client-side with a fresh identifier and edited field by field until it is
// submitted; once persisted it is never mutated again (comments are appended
// through a separate union update).
//
// Exactly one of Photo (a pending local image) or PhotoURL (the resolved
// remote location) is populated once the post is persisted; before
// persistence PhotoURL is empty.
type Post struct {
	ID          string    `json:"id" firestore:"id" bson:"_id"`
	Title       string    `json:"title" firestore:"title" bson:"title"`
	Description string    `json:"description,omitempty" firestore:"description" bson:"description,omitempty"`
	PhotoURL    string    `json:"photo_url,omitempty" firestore:"photoUrl" bson:"photo_url,omitempty"`
	Timestamp   int64     `json:"timestamp" firestore:"timestamp" bson:"timestamp"` // milliseconds since epoch
	Author      *User     `json:"author,omitempty" firestore:"author" bson:"author,omitempty"`
	Comments    []Comment `json:"comments,omitempty" firestore:"comments" bson:"comments,omitempty"`

	// Photo is the not-yet-uploaded local image attached to a draft. It is
	// never serialized to any backend.
	Photo *PhotoHandle `json:"-" firestore:"-" bson:"-"`
}

// PhotoHandle points at a local image that has not been uploaded yet.
type PhotoHandle struct {
	Name string
	Size int64
	Open func() (io.ReadCloser, error)
}

// HasPendingPhoto reports whether the post still carries a local image that
// must be uploaded before the post can be persisted.
func (p *Post) HasPendingPhoto() bool {
	return p.Photo != nil
}

// Submittable reports whether the post satisfies the mandatory fields for
// submission: a title that is non-empty after trimming.
func (p *Post) Submittable() bool {
	return strings.TrimSpace(p.Title) != ""
}

// CreatePostRequest defines the request body for submitting a new post.
type CreatePostRequest struct {
	Title       string `json:"title" form:"title" validate:"required"`
	Description string `json:"description,omitempty" form:"description" validate:"omitempty,max=2000"`
}
