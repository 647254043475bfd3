// Package identity wraps the auth backend behind a session-bound provider:
// a snapshot of the current signed-in user, sign-out and account-deletion
// operations, and a change-notification stream consumers subscribe to once
// at construction.
package identity

import (
	"context"
	"errors"
)

// ErrNoCurrentUser is returned by operations that require a signed-in user
// when the session holds none. It is reported immediately, before any remote
// call is attempted.
var ErrNoCurrentUser = errors.New("no signed-in user")

// User is the raw identity exposed by the auth backend.
type User struct {
	UID         string
	DisplayName string
	Email       string
}

// Provider exposes the current identity and the account operations built on
// it. CurrentUser and SignOut are synchronous snapshots of session state;
// DeleteAccount and Refresh reach the auth backend.
type Provider interface {
	// CurrentUser returns the signed-in user, or nil when nobody is.
	CurrentUser() *User

	// SignOut clears the session identity and notifies subscribers.
	SignOut()

	// DeleteAccount removes the current user's account remotely, then clears
	// the session. With no current user it fails with ErrNoCurrentUser and
	// performs zero remote calls.
	DeleteAccount(ctx context.Context) error

	// Refresh re-reads the identity snapshot from the backend, reconciling
	// session state after an out-of-band change.
	Refresh(ctx context.Context) error

	// Subscribe registers for identity-or-nil change events. The returned
	// cancel func must be called when the subscriber goes away; it closes
	// the channel so range loops over it terminate.
	Subscribe() (<-chan *User, func())
}
