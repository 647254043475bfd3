package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/hexagonal-games/backend/internal/cache"
	"github.com/hexagonal-games/backend/internal/composer"
	"github.com/hexagonal-games/backend/internal/middleware"
	"github.com/hexagonal-games/backend/internal/models"
	"github.com/hexagonal-games/backend/internal/repositories"
	"github.com/hexagonal-games/backend/internal/state"
	"github.com/hexagonal-games/backend/internal/uploads"
)

// PostHandler handles HTTP requests related to posts. Each submission runs
// through a fresh composer over the request's own identity session, the same
// screen-session lifecycle the client logic uses.
type PostHandler struct {
	postRepository repositories.PostRepository
	uploader       uploads.Uploader
	localCache     cache.Store
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(postRepo repositories.PostRepository, uploader uploads.Uploader, localCache cache.Store) *PostHandler {
	return &PostHandler{
		postRepository: postRepo,
		uploader:       uploader,
		localCache:     localCache,
	}
}

// RegisterPostRoutes registers post-related routes
func (h *PostHandler) RegisterPostRoutes(g *echo.Group) {
	g.POST("/posts", h.CreatePost)
	g.GET("/posts/:id", h.GetPost)
}

// CreatePost submits a new post. The body is either JSON or a multipart
// form; a multipart "photo" part is uploaded to blob storage before the
// post is persisted.
func (h *PostHandler) CreatePost(c echo.Context) error {
	var req models.CreatePostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	comp := composer.NewPostComposer(h.postRepository, h.uploader, middleware.SessionFrom(c), h.localCache, state.NewScreen())
	comp.SetTitle(req.Title)
	comp.SetDescription(req.Description)

	if fh, err := c.FormFile("photo"); err == nil {
		comp.SetPhoto(&models.PhotoHandle{
			Name: fh.Filename,
			Size: fh.Size,
			Open: func() (io.ReadCloser, error) { return fh.Open() },
		})
	}

	draft := comp.Draft()
	if err := comp.Submit(c.Request().Context()); err != nil {
		switch {
		case errors.Is(err, composer.ErrTitleRequired):
			return echo.NewHTTPError(http.StatusBadRequest, "Title cannot be empty.")
		case errors.Is(err, composer.ErrSubmitInFlight):
			return echo.NewHTTPError(http.StatusConflict, err.Error())
		case errors.Is(err, uploads.ErrUploadFailed), errors.Is(err, uploads.ErrResolveURL):
			return echo.NewHTTPError(http.StatusBadGateway, err.Error())
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}

	return c.JSON(http.StatusCreated, map[string]string{"id": draft.ID})
}

// GetPost retrieves a post by ID
func (h *PostHandler) GetPost(c echo.Context) error {
	post, err := h.postRepository.GetPost(c.Request().Context(), c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if post == nil {
		return echo.NewHTTPError(http.StatusNotFound, "Post not found")
	}
	return c.JSON(http.StatusOK, post)
}
