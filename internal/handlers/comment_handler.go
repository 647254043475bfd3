package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/hexagonal-games/backend/internal/composer"
	"github.com/hexagonal-games/backend/internal/middleware"
	"github.com/hexagonal-games/backend/internal/models"
	"github.com/hexagonal-games/backend/internal/repositories"
	"github.com/hexagonal-games/backend/internal/state"
)

// CommentHandler handles HTTP requests related to comments
type CommentHandler struct {
	postRepository repositories.PostRepository
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(postRepo repositories.PostRepository) *CommentHandler {
	return &CommentHandler{postRepository: postRepo}
}

// RegisterCommentRoutes registers comment-related routes
func (h *CommentHandler) RegisterCommentRoutes(g *echo.Group) {
	g.POST("/posts/:id/comments", h.CreateComment)
}

// CreateComment appends a comment to a post through the store's union
// update, so concurrent comments from other clients are never overwritten.
func (h *CommentHandler) CreateComment(c echo.Context) error {
	var req models.CreateCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	comp := composer.NewCommentComposer(h.postRepository, middleware.SessionFrom(c), state.NewScreen(), c.Param("id"))
	if err := comp.Submit(c.Request().Context(), req.Text); err != nil {
		switch {
		case errors.Is(err, composer.ErrMissingPostID), errors.Is(err, composer.ErrEmptyComment):
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}

	return c.JSON(http.StatusCreated, map[string]string{"post_id": c.Param("id")})
}
