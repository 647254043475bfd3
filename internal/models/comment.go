package models

// Comment represents a single comment attached to a post. Comments are
// created complete and submitted atomically; the client only ever appends
// them, it never edits or removes existing ones.
type Comment struct {
	ID     string `json:"id" firestore:"id" bson:"id"`
	PostID string `json:"post_id" firestore:"postId" bson:"post_id"`
	Author *User  `json:"author,omitempty" firestore:"author" bson:"author,omitempty"`
	Text   string `json:"text" firestore:"comment" bson:"text"`
}

// CreateCommentRequest defines the request body for adding a comment to a post.
type CreateCommentRequest struct {
	Text string `json:"text" validate:"required"`
}
