package handlers

import (
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"github.com/hexagonal-games/backend/internal/feed"
)

// FeedHandler serves the aggregated feed, both as a one-shot snapshot and as
// a live stream that re-emits whenever the local pending cache changes.
type FeedHandler struct {
	aggregator *feed.Aggregator
	upgrader   websocket.Upgrader
}

// NewFeedHandler creates a new FeedHandler
func NewFeedHandler(aggregator *feed.Aggregator) *FeedHandler {
	return &FeedHandler{
		aggregator: aggregator,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// RegisterFeedRoutes registers feed-related routes
func (h *FeedHandler) RegisterFeedRoutes(g *echo.Group) {
	g.GET("/feed", h.GetFeed)
	g.GET("/feed/stream", h.StreamFeed)
}

// GetFeed returns the current aggregate view: remote posts first, then
// locally pending ones.
func (h *FeedHandler) GetFeed(c echo.Context) error {
	return c.JSON(http.StatusOK, h.aggregator.Snapshot(c.Request().Context()))
}

// StreamFeed upgrades to a websocket and pushes every re-merged aggregate
// until the client disconnects.
func (h *FeedHandler) StreamFeed(c echo.Context) error {
	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}
	defer conn.Close()

	updates, cancel := h.aggregator.Subscribe(c.Request().Context())
	defer cancel()

	for snapshot := range updates {
		if err := conn.WriteJSON(snapshot); err != nil {
			return nil // client went away
		}
	}
	return nil
}
