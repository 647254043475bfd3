// Package account wraps the identity provider with derived observable
// state: a current-user snapshot, loading and error flags, and one-shot
// navigation events for sign-out and account deletion.
package account

import (
	"context"
	"sync"

	"github.com/hexagonal-games/backend/internal/identity"
	"github.com/hexagonal-games/backend/internal/state"
)

// Manager drives the account screen. It subscribes to the provider's
// identity change stream once at construction, so out-of-band sign-ins and
// sign-outs are reflected without polling.
type Manager struct {
	provider identity.Provider
	screen   *state.Screen

	mu        sync.Mutex
	current   *identity.User
	cancelSub func()
}

func NewManager(provider identity.Provider, screen *state.Screen) *Manager {
	m := &Manager{
		provider: provider,
		screen:   screen,
		current:  provider.CurrentUser(),
	}

	changes, cancel := provider.Subscribe()
	m.cancelSub = cancel
	go func() {
		for u := range changes {
			m.mu.Lock()
			m.current = u
			m.mu.Unlock()
		}
	}()
	return m
}

// Screen exposes the manager's observable state container.
func (m *Manager) Screen() *state.Screen {
	return m.screen
}

// CurrentUser returns the identity snapshot, or nil when signed out.
func (m *Manager) CurrentUser() *identity.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current
}

// SignOut clears the identity and emits a one-shot logged-out event.
func (m *Manager) SignOut() {
	m.screen.SetLoading(true)
	m.provider.SignOut()
	m.mu.Lock()
	m.current = nil
	m.mu.Unlock()
	m.screen.SetLoading(false)
	m.screen.Emit(state.EventLoggedOut)
}

// DeleteAccount removes the current user's account. With no identity it
// fails immediately, before any remote call; remote failures surface their
// message both as error state and as a one-shot show-error event.
func (m *Manager) DeleteAccount(ctx context.Context) error {
	if m.provider.CurrentUser() == nil {
		m.screen.Fail("No signed-in user to delete.")
		m.screen.Emit(state.EventShowError)
		return identity.ErrNoCurrentUser
	}

	m.screen.SetLoading(true)
	if err := m.provider.DeleteAccount(ctx); err != nil {
		m.screen.SetLoading(false)
		m.screen.Fail(err.Error())
		m.screen.Emit(state.EventShowError)
		return err
	}

	m.mu.Lock()
	m.current = nil
	m.mu.Unlock()
	m.screen.SetLoading(false)
	m.screen.Emit(state.EventAccountDeleted)
	return nil
}

// Refresh reloads the identity from the auth backend and re-reads the
// snapshot, reconciling state after an out-of-band change such as a profile
// edit or a sign-in completed elsewhere.
func (m *Manager) Refresh(ctx context.Context) error {
	m.screen.SetLoading(true)
	err := m.provider.Refresh(ctx)
	m.screen.SetLoading(false)
	if err != nil {
		m.screen.Fail(err.Error())
		return err
	}
	u := m.provider.CurrentUser()
	m.mu.Lock()
	m.current = u
	m.mu.Unlock()
	return nil
}

// Close tears the screen down: the change subscription is cancelled and any
// late state writes are dropped.
func (m *Manager) Close() {
	m.cancelSub()
	m.screen.Close()
}
