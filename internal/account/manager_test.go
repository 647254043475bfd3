package account

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/hexagonal-games/backend/internal/identity"
	"github.com/hexagonal-games/backend/internal/state"
)

type fakeProvider struct {
	mu          sync.Mutex
	user        *identity.User
	deleteErr   error
	deleteCalls int
	subs        []chan *identity.User
}

func (f *fakeProvider) CurrentUser() *identity.User {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.user
}

func (f *fakeProvider) SignOut() {
	f.setUser(nil)
}

func (f *fakeProvider) DeleteAccount(context.Context) error {
	f.mu.Lock()
	f.deleteCalls++
	err := f.deleteErr
	f.mu.Unlock()
	if err != nil {
		return err
	}
	f.setUser(nil)
	return nil
}

func (f *fakeProvider) Refresh(context.Context) error { return nil }

func (f *fakeProvider) Subscribe() (<-chan *identity.User, func()) {
	ch := make(chan *identity.User, 1)
	f.mu.Lock()
	f.subs = append(f.subs, ch)
	f.mu.Unlock()
	var once sync.Once
	return ch, func() { once.Do(func() { close(ch) }) }
}

func (f *fakeProvider) setUser(u *identity.User) {
	f.mu.Lock()
	f.user = u
	subs := f.subs
	f.mu.Unlock()
	for _, ch := range subs {
		select {
		case ch <- u:
		default:
		}
	}
}

func TestSignOutEmitsLoggedOut(t *testing.T) {
	p := &fakeProvider{user: &identity.User{UID: "u1"}}
	m := NewManager(p, state.NewScreen())
	defer m.Close()

	m.SignOut()

	if m.CurrentUser() != nil {
		t.Error("identity should be cleared")
	}
	if ev, ok := m.Screen().NextEvent(); !ok || ev != state.EventLoggedOut {
		t.Errorf("event = %q, %v", ev, ok)
	}
	if m.Screen().Loading() {
		t.Error("loading should be false after sign-out")
	}
}

func TestDeleteAccountWithoutIdentity(t *testing.T) {
	p := &fakeProvider{}
	m := NewManager(p, state.NewScreen())
	defer m.Close()

	err := m.DeleteAccount(context.Background())
	if !errors.Is(err, identity.ErrNoCurrentUser) {
		t.Fatalf("DeleteAccount() = %v, want ErrNoCurrentUser", err)
	}
	if p.deleteCalls != 0 {
		t.Error("no remote call may happen without an identity")
	}
	if _, ok := m.Screen().ConsumeError(); !ok {
		t.Error("invalid state should surface an error")
	}
	if ev, ok := m.Screen().NextEvent(); !ok || ev != state.EventShowError {
		t.Errorf("event = %q, %v", ev, ok)
	}
}

func TestDeleteAccountSuccess(t *testing.T) {
	p := &fakeProvider{user: &identity.User{UID: "u1"}}
	m := NewManager(p, state.NewScreen())
	defer m.Close()

	if err := m.DeleteAccount(context.Background()); err != nil {
		t.Fatalf("DeleteAccount: %v", err)
	}
	if m.CurrentUser() != nil {
		t.Error("identity should be cleared")
	}
	if ev, ok := m.Screen().NextEvent(); !ok || ev != state.EventAccountDeleted {
		t.Errorf("event = %q, %v", ev, ok)
	}
	if m.Screen().Loading() {
		t.Error("loading should be false after success")
	}
}

func TestDeleteAccountFailure(t *testing.T) {
	p := &fakeProvider{user: &identity.User{UID: "u1"}, deleteErr: errors.New("backend down")}
	m := NewManager(p, state.NewScreen())
	defer m.Close()

	if err := m.DeleteAccount(context.Background()); err == nil {
		t.Fatal("DeleteAccount should propagate the failure")
	}
	if msg, ok := m.Screen().ConsumeError(); !ok || msg != "backend down" {
		t.Errorf("error state = %q, %v", msg, ok)
	}
	if ev, ok := m.Screen().NextEvent(); !ok || ev != state.EventShowError {
		t.Errorf("event = %q, %v", ev, ok)
	}
	if m.Screen().Loading() {
		t.Error("loading should be false after failure")
	}
}

func TestRefreshReconcilesOutOfBandSignIn(t *testing.T) {
	p := &fakeProvider{}
	m := NewManager(p, state.NewScreen())
	defer m.Close()

	p.mu.Lock()
	p.user = &identity.User{UID: "u2"}
	p.mu.Unlock()

	if err := m.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if u := m.CurrentUser(); u == nil || u.UID != "u2" {
		t.Errorf("CurrentUser() = %+v after refresh", u)
	}
}

func TestChangeStreamUpdatesSnapshot(t *testing.T) {
	p := &fakeProvider{}
	m := NewManager(p, state.NewScreen())
	defer m.Close()

	p.setUser(&identity.User{UID: "u3"})

	deadline := time.After(2 * time.Second)
	for {
		if u := m.CurrentUser(); u != nil && u.UID == "u3" {
			return
		}
		select {
		case <-deadline:
			t.Fatal("change event never reached the manager")
		default:
			time.Sleep(time.Millisecond)
		}
	}
}
