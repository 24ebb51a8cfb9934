package session

import (
	"crypto/rand"
	"sort"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/supafloof/backpacks/internal/item"
)

// Session is one live view of a container's contents held by one user.
// The host mutates View directly as the user moves items; nothing is
// persisted until the session closes.
type Session struct {
	ID        string       `json:"id"`
	AccountID string       `json:"account_id"`
	Container string       `json:"container"`
	Capacity  int          `json:"capacity"`
	View      item.SlotMap `json:"-"`
	OpenedAt  time.Time    `json:"opened_at"`
}

// Tracker keeps the set of open sessions, at most one per account.
type Tracker struct {
	mu   sync.Mutex
	open map[string]*Session
}

// NewTracker returns an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{open: make(map[string]*Session)}
}

// Open records a new session for accountID over the given container and
// returns it. contents becomes the live view; indices outside [0,capacity)
// are dropped so an upgraded record never overflows a base-size view.
// Any prior session for the account is replaced; callers flush it first.
func (t *Tracker) Open(accountID, containerID string, capacity int, contents item.SlotMap) *Session {
	view := make(item.SlotMap, len(contents))
	for idx, s := range contents {
		if idx < 0 || idx >= capacity || s.IsEmpty() {
			continue
		}
		view[idx] = s
	}

	sess := &Session{
		ID:        newSessionID(),
		AccountID: accountID,
		Container: containerID,
		Capacity:  capacity,
		View:      view,
		OpenedAt:  time.Now(),
	}

	t.mu.Lock()
	t.open[accountID] = sess
	t.mu.Unlock()
	return sess
}

// Get returns the open session for accountID, if any.
func (t *Tracker) Get(accountID string) (*Session, bool) {
	t.mu.Lock()
	sess, ok := t.open[accountID]
	t.mu.Unlock()
	return sess, ok
}

// Remove forgets the session for accountID and returns it. The second
// return is false when the account had nothing open, which makes close
// idempotent for callers.
func (t *Tracker) Remove(accountID string) (*Session, bool) {
	t.mu.Lock()
	sess, ok := t.open[accountID]
	if ok {
		delete(t.open, accountID)
	}
	t.mu.Unlock()
	return sess, ok
}

// All returns the open sessions ordered oldest first.
func (t *Tracker) All() []*Session {
	t.mu.Lock()
	out := make([]*Session, 0, len(t.open))
	for _, sess := range t.open {
		out = append(out, sess)
	}
	t.mu.Unlock()

	sort.Slice(out, func(i, j int) bool { return out[i].OpenedAt.Before(out[j].OpenedAt) })
	return out
}

// Len returns the number of open sessions.
func (t *Tracker) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.open)
}

// newSessionID generates a new ULID.
func newSessionID() string {
	entropy := ulid.Monotonic(rand.Reader, 0)
	return ulid.MustNew(ulid.Timestamp(time.Now()), entropy).String()
}
