// Package composer assembles and submits new posts and comments, binding
// progress and failures to per-screen observable state.
package composer

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/hexagonal-games/backend/internal/cache"
	"github.com/hexagonal-games/backend/internal/identity"
	"github.com/hexagonal-games/backend/internal/models"
	"github.com/hexagonal-games/backend/internal/repositories"
	"github.com/hexagonal-games/backend/internal/state"
	"github.com/hexagonal-games/backend/internal/uploads"
)

var (
	// ErrTitleRequired is reported synchronously when the draft title is
	// blank; no remote call is attempted.
	ErrTitleRequired = errors.New("title cannot be empty")

	// ErrSubmitInFlight guards the at-most-one-in-flight submission
	// invariant per composer.
	ErrSubmitInFlight = errors.New("a submission is already in flight")
)

// titleRequiredMessage is the user-facing form of ErrTitleRequired.
const titleRequiredMessage = "Title cannot be empty."

// PostComposer edits a draft post and drives its submission: identity
// resolution, optional image upload with progress, optimistic caching and
// the remote create. Field edits replace the draft immutably; the draft is
// only discarded once the remote store confirms the post.
type PostComposer struct {
	repo     repositories.PostRepository
	uploader uploads.Uploader
	ident    identity.Provider
	local    cache.Store
	screen   *state.Screen
	now      func() time.Time

	mu         sync.Mutex
	draft      models.Post
	submitting bool
}

func NewPostComposer(repo repositories.PostRepository, uploader uploads.Uploader, ident identity.Provider, local cache.Store, screen *state.Screen) *PostComposer {
	c := &PostComposer{
		repo:     repo,
		uploader: uploader,
		ident:    ident,
		local:    local,
		screen:   screen,
		now:      time.Now,
	}
	c.draft = c.freshDraft()
	return c
}

// Draft returns the current draft snapshot.
func (c *PostComposer) Draft() models.Post {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.draft
}

// Screen exposes the composer's observable state container.
func (c *PostComposer) Screen() *state.Screen {
	return c.screen
}

// SetTitle replaces the draft with one carrying the new title.
func (c *PostComposer) SetTitle(title string) {
	c.edit(func(d *models.Post) { d.Title = title })
}

// SetDescription replaces the draft with one carrying the new description.
func (c *PostComposer) SetDescription(description string) {
	c.edit(func(d *models.Post) { d.Description = description })
}

// SetPhoto attaches a local image to the draft.
func (c *PostComposer) SetPhoto(photo *models.PhotoHandle) {
	c.edit(func(d *models.Post) { d.Photo = photo })
}

// ClearPhoto removes the attached local image.
func (c *PostComposer) ClearPhoto() {
	c.edit(func(d *models.Post) { d.Photo = nil })
}

func (c *PostComposer) edit(apply func(*models.Post)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	draft := c.draft
	apply(&draft)
	c.draft = draft
}

// Submit validates the draft and persists it. A blank title fails without
// any remote call. With a photo attached, the image is uploaded first and
// the local handle swapped for the resolved URL. The post is cached as
// pending before the remote create and pruned once the create confirms, so
// the feed never shows it from both sources. On any failure the draft is
// left intact for retry.
func (c *PostComposer) Submit(ctx context.Context) error {
	c.mu.Lock()
	if c.submitting {
		c.mu.Unlock()
		return ErrSubmitInFlight
	}
	draft := c.draft
	if !draft.Submittable() {
		c.mu.Unlock()
		c.screen.Fail(titleRequiredMessage)
		return ErrTitleRequired
	}
	c.submitting = true
	c.mu.Unlock()

	c.screen.SetLoading(true)
	defer func() {
		c.screen.SetLoading(false)
		c.mu.Lock()
		c.submitting = false
		c.mu.Unlock()
	}()

	author := c.resolveAuthor()
	post := draft
	post.Author = &author

	if post.HasPendingPhoto() {
		url, err := c.uploadPhoto(ctx, post.Photo, author.ID)
		if err != nil {
			c.screen.Fail(err.Error())
			return err
		}
		post.PhotoURL = url
		post.Photo = nil
	}

	post.Timestamp = c.now().UnixMilli()
	post.Comments = nil

	if err := c.local.Add(ctx, post); err != nil {
		log.Printf("composer: cache pending post %s: %v", post.ID, err)
	}
	if err := c.repo.CreatePost(ctx, &post); err != nil {
		// The pending copy stays cached so the local-only feed still shows it.
		c.screen.Fail(fmt.Sprintf("Error adding post: %v", err))
		return err
	}
	if err := c.local.Remove(ctx, post.ID); err != nil {
		log.Printf("composer: prune pending post %s: %v", post.ID, err)
	}

	c.screen.ClearProgress()
	c.screen.Emit(state.EventPostPublished)

	c.mu.Lock()
	c.draft = c.freshDraft()
	c.mu.Unlock()
	return nil
}

func (c *PostComposer) uploadPhoto(ctx context.Context, photo *models.PhotoHandle, authorID string) (string, error) {
	rc, err := photo.Open()
	if err != nil {
		return "", fmt.Errorf("%w: %v", uploads.ErrUploadFailed, err)
	}
	defer rc.Close()

	remotePath := fmt.Sprintf("post_images/%s/%s_%s", authorID, uuid.NewString(), photo.Name)
	for ev := range c.uploader.Upload(ctx, rc, photo.Size, remotePath) {
		if !ev.Terminal {
			c.screen.SetProgress(ev.Progress)
			continue
		}
		if ev.Err != nil {
			return "", ev.Err
		}
		return ev.URL, nil
	}
	return "", uploads.ErrUploadFailed
}

func (c *PostComposer) resolveAuthor() models.User {
	if u := c.ident.CurrentUser(); u != nil {
		return models.AuthorFrom(u.UID, u.DisplayName)
	}
	return models.AuthorFrom("", "")
}

func (c *PostComposer) freshDraft() models.Post {
	return models.Post{
		ID:        uuid.NewString(),
		Timestamp: c.now().UnixMilli(),
	}
}
