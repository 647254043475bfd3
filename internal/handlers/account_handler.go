package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/hexagonal-games/backend/internal/account"
	"github.com/hexagonal-games/backend/internal/identity"
	"github.com/hexagonal-games/backend/internal/middleware"
	"github.com/hexagonal-games/backend/internal/state"
)

// AccountHandler handles HTTP requests related to the signed-in account.
// Each request runs through a fresh manager over its own identity session;
// the manager's one-shot events are drained into the responses, which are
// this surface's observing layer.
type AccountHandler struct{}

// NewAccountHandler creates a new AccountHandler
func NewAccountHandler() *AccountHandler {
	return &AccountHandler{}
}

// RegisterAccountRoutes registers account-related routes
func (h *AccountHandler) RegisterAccountRoutes(g *echo.Group) {
	g.GET("/account", h.GetAccount)
	g.POST("/account/signout", h.SignOut)
	g.DELETE("/account", h.DeleteAccount)
	g.POST("/account/refresh", h.Refresh)
}

func (h *AccountHandler) manager(c echo.Context) *account.Manager {
	return account.NewManager(middleware.SessionFrom(c), state.NewScreen())
}

// GetAccount returns the requesting user's identity snapshot.
func (h *AccountHandler) GetAccount(c echo.Context) error {
	m := h.manager(c)
	defer m.Close()

	u := m.CurrentUser()
	if u == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "No signed-in user")
	}
	return c.JSON(http.StatusOK, map[string]string{
		"uid":          u.UID,
		"display_name": u.DisplayName,
		"email":        u.Email,
	})
}

// SignOut clears the session identity.
func (h *AccountHandler) SignOut(c echo.Context) error {
	m := h.manager(c)
	defer m.Close()

	m.SignOut()
	ev, _ := m.Screen().NextEvent()
	return c.JSON(http.StatusOK, map[string]string{"event": string(ev)})
}

// DeleteAccount removes the requesting user's account.
func (h *AccountHandler) DeleteAccount(c echo.Context) error {
	m := h.manager(c)
	defer m.Close()

	if err := m.DeleteAccount(c.Request().Context()); err != nil {
		// This response is the observing layer: drain the one-shot
		// show-error event and consume the error message.
		m.Screen().NextEvent()
		msg, _ := m.Screen().ConsumeError()
		if errors.Is(err, identity.ErrNoCurrentUser) {
			return echo.NewHTTPError(http.StatusConflict, msg)
		}
		return echo.NewHTTPError(http.StatusInternalServerError, msg)
	}
	ev, _ := m.Screen().NextEvent()
	return c.JSON(http.StatusOK, map[string]string{"event": string(ev)})
}

// Refresh reloads the identity from the auth backend into state.
func (h *AccountHandler) Refresh(c echo.Context) error {
	m := h.manager(c)
	defer m.Close()

	if err := m.Refresh(c.Request().Context()); err != nil {
		m.Screen().ConsumeError()
		return echo.NewHTTPError(http.StatusBadGateway, "Failed to refresh account")
	}
	if u := m.CurrentUser(); u != nil {
		return c.JSON(http.StatusOK, map[string]string{"uid": u.UID})
	}
	return c.JSON(http.StatusOK, map[string]any{"uid": nil})
}
