package identity

import (
	"testing"
	"time"
)

func TestCurrentUserReturnsCopy(t *testing.T) {
	p := NewFirebaseProvider(nil, time.Second)
	p.setCurrent(&User{UID: "u1", DisplayName: "Max Payne"})

	u := p.CurrentUser()
	u.DisplayName = "mutated"

	if got := p.CurrentUser(); got.DisplayName != "Max Payne" {
		t.Errorf("session identity mutated through snapshot: %+v", got)
	}
}

func TestSignOutClearsAndNotifies(t *testing.T) {
	p := NewFirebaseProvider(nil, time.Second)
	ch, cancel := p.Subscribe()
	defer cancel()

	p.setCurrent(&User{UID: "u1"})
	if u := <-ch; u == nil || u.UID != "u1" {
		t.Fatalf("change event = %+v", u)
	}

	p.SignOut()
	if u := <-ch; u != nil {
		t.Fatalf("sign-out event = %+v, want nil identity", u)
	}
	if p.CurrentUser() != nil {
		t.Error("identity should be cleared")
	}
}

func TestSubscribeLatestWins(t *testing.T) {
	p := NewFirebaseProvider(nil, time.Second)
	ch, cancel := p.Subscribe()
	defer cancel()

	// Nobody reads between these; the second event replaces the first.
	p.setCurrent(&User{UID: "u1"})
	p.setCurrent(&User{UID: "u2"})

	if u := <-ch; u == nil || u.UID != "u2" {
		t.Errorf("slow subscriber got stale identity: %+v", u)
	}
}

func TestCancelClosesSubscription(t *testing.T) {
	p := NewFirebaseProvider(nil, time.Second)
	ch, cancel := p.Subscribe()
	cancel()
	cancel() // second cancel is a no-op

	p.setCurrent(&User{UID: "u1"})
	if _, ok := <-ch; ok {
		t.Error("channel should be closed after cancel")
	}
}
