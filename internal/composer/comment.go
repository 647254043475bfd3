package composer

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"

	"github.com/hexagonal-games/backend/internal/identity"
	"github.com/hexagonal-games/backend/internal/models"
	"github.com/hexagonal-games/backend/internal/repositories"
	"github.com/hexagonal-games/backend/internal/state"
)

var (
	// ErrMissingPostID means the composer was constructed without a post to
	// attach comments to; reported without any remote call.
	ErrMissingPostID = errors.New("no post to attach the comment to")

	// ErrEmptyComment rejects blank comment text.
	ErrEmptyComment = errors.New("comment text cannot be empty")
)

// CommentComposer assembles and submits comments for one post.
type CommentComposer struct {
	repo   repositories.PostRepository
	ident  identity.Provider
	screen *state.Screen
	postID string
}

func NewCommentComposer(repo repositories.PostRepository, ident identity.Provider, screen *state.Screen, postID string) *CommentComposer {
	return &CommentComposer{repo: repo, ident: ident, screen: screen, postID: postID}
}

// Screen exposes the composer's observable state container.
func (c *CommentComposer) Screen() *state.Screen {
	return c.screen
}

// Submit builds a complete comment for the current user and appends it to
// the post through the store's union update. Failures are logged and
// surfaced on the screen's error state.
func (c *CommentComposer) Submit(ctx context.Context, text string) error {
	if strings.TrimSpace(c.postID) == "" {
		c.screen.Fail("Cannot comment: the post is unknown.")
		return ErrMissingPostID
	}
	if strings.TrimSpace(text) == "" {
		c.screen.Fail("Comment cannot be empty.")
		return ErrEmptyComment
	}

	author := models.AuthorFrom("", "")
	if u := c.ident.CurrentUser(); u != nil {
		author = models.AuthorFrom(u.UID, u.DisplayName)
	}

	comment := models.Comment{
		ID:     uuid.NewString(),
		PostID: c.postID,
		Author: &author,
		Text:   text,
	}

	c.screen.SetLoading(true)
	defer c.screen.SetLoading(false)

	if err := c.repo.AppendComment(ctx, c.postID, comment); err != nil {
		log.Printf("composer: append comment to post %s: %v", c.postID, err)
		c.screen.Fail(fmt.Sprintf("Error adding comment: %v", err))
		return err
	}
	return nil
}
