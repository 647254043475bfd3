// Package state holds the per-screen observable state containers shared by
// the composers and the account manager: a loading flag, a consume-once
// error message, a drained queue of one-shot events and an optional upload
// progress percentage.
package state

import "sync"

// Event is a one-shot notification meant to be observed exactly once by
// whatever layer is watching the screen.
type Event string

const (
	EventLoggedOut      Event = "logged_out"
	EventAccountDeleted Event = "account_deleted"
	EventShowError      Event = "show_error"
	EventPostPublished  Event = "post_published"
)

// Screen is the state container for one screen-session. A producer sets
// fields as work progresses; the observing layer consumes errors and drains
// events exactly once. All methods are safe for concurrent use, and every
// write after Close is dropped so late callback delivery after screen
// teardown never panics or resurrects state.
type Screen struct {
	mu       sync.Mutex
	closed   bool
	loading  bool
	errMsg   string
	hasErr   bool
	events   []Event
	progress int
	hasProg  bool
}

func NewScreen() *Screen {
	return &Screen{}
}

// SetLoading toggles the loading flag.
func (s *Screen) SetLoading(v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.loading = v
}

// Loading reports whether a remote operation is in flight.
func (s *Screen) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// Fail records a human-readable error message. The message stays set until
// ConsumeError claims it; a later failure before consumption replaces it.
func (s *Screen) Fail(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.errMsg = msg
	s.hasErr = true
}

// ConsumeError returns the pending error message and clears it, so the same
// failure is never surfaced twice.
func (s *Screen) ConsumeError() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.hasErr {
		return "", false
	}
	msg := s.errMsg
	s.errMsg = ""
	s.hasErr = false
	return msg, true
}

// Emit appends a one-shot event to the screen's event queue.
func (s *Screen) Emit(ev Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.events = append(s.events, ev)
}

// NextEvent pops the oldest pending event, if any.
func (s *Screen) NextEvent() (Event, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.events) == 0 {
		return "", false
	}
	ev := s.events[0]
	s.events = s.events[1:]
	return ev, true
}

// SetProgress records an upload progress percentage in [0,100].
func (s *Screen) SetProgress(pct int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.progress = pct
	s.hasProg = true
}

// Progress returns the last recorded upload percentage, if one was set.
func (s *Screen) Progress() (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.progress, s.hasProg
}

// ClearProgress resets the progress indicator, e.g. when a submission
// finishes or a new draft begins.
func (s *Screen) ClearProgress() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.progress = 0
	s.hasProg = false
}

// Close marks the screen as torn down. Subsequent writes are dropped.
func (s *Screen) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
}
