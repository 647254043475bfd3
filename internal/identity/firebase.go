package identity

import (
	"context"
	"fmt"
	"sync"
	"time"

	"firebase.google.com/go/v4/auth"
)

// FirebaseProvider implements Provider on top of the Firebase Auth client.
// One provider holds one session: the auth middleware creates a fresh
// provider per request and binds the verified bearer identity into it, so a
// session never outlives its request.
type FirebaseProvider struct {
	client  *auth.Client
	timeout time.Duration

	mu      sync.Mutex
	current *User
	subs    map[chan *User]struct{}
}

// NewFirebaseProvider creates a provider with no bound identity.
func NewFirebaseProvider(client *auth.Client, timeout time.Duration) *FirebaseProvider {
	return &FirebaseProvider{
		client:  client,
		timeout: timeout,
		subs:    make(map[chan *User]struct{}),
	}
}

// Bind loads the user record for uid and makes it the session identity.
func (p *FirebaseProvider) Bind(ctx context.Context, uid string) error {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	record, err := p.client.GetUser(ctx, uid)
	if err != nil {
		return fmt.Errorf("load user %s: %w", uid, err)
	}
	p.setCurrent(&User{
		UID:         record.UID,
		DisplayName: record.DisplayName,
		Email:       record.Email,
	})
	return nil
}

// CurrentUser returns a copy of the session identity, or nil.
func (p *FirebaseProvider) CurrentUser() *User {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.current == nil {
		return nil
	}
	u := *p.current
	return &u
}

// SignOut clears the session identity.
func (p *FirebaseProvider) SignOut() {
	p.setCurrent(nil)
}

// DeleteAccount deletes the current user's account from the auth backend and
// clears the session on success.
func (p *FirebaseProvider) DeleteAccount(ctx context.Context) error {
	current := p.CurrentUser()
	if current == nil {
		return ErrNoCurrentUser
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	if err := p.client.DeleteUser(ctx, current.UID); err != nil {
		return fmt.Errorf("delete account %s: %w", current.UID, err)
	}
	p.setCurrent(nil)
	return nil
}

// Refresh re-reads the current user's record from the backend. A session
// with no identity refreshes to no identity.
func (p *FirebaseProvider) Refresh(ctx context.Context) error {
	current := p.CurrentUser()
	if current == nil {
		return nil
	}
	return p.Bind(ctx, current.UID)
}

// Subscribe registers a change listener. Events are delivered latest-wins:
// a slow subscriber sees the most recent identity, never a stale backlog.
func (p *FirebaseProvider) Subscribe() (<-chan *User, func()) {
	ch := make(chan *User, 1)
	p.mu.Lock()
	p.subs[ch] = struct{}{}
	p.mu.Unlock()

	// Closing under the mutex keeps setCurrent from sending on a closed
	// channel; a second cancel is a no-op.
	cancel := func() {
		p.mu.Lock()
		defer p.mu.Unlock()
		if _, ok := p.subs[ch]; ok {
			delete(p.subs, ch)
			close(ch)
		}
	}
	return ch, cancel
}

func (p *FirebaseProvider) setCurrent(u *User) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.current = u
	for ch := range p.subs {
		select {
		case ch <- u:
		default:
			select {
			case <-ch:
			default:
			}
			ch <- u
		}
	}
}
