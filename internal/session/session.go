// Package session holds the explicit per-request identity passed to every
// service operation, and the in-process stream of sign-in/sign-out changes.
package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Session is created by sign-in and rebuilt from the access token on every
// request. Managers have no tenant.
type Session struct {
	UserID    uuid.UUID
	SessionID string
	Role      string
	TenantID  *uuid.UUID
	Email     string
	Name      string
}

// Tenant returns the session's tenant, if any.
func (s Session) Tenant() (uuid.UUID, bool) {
	if s.TenantID == nil || *s.TenantID == uuid.Nil {
		return uuid.Nil, false
	}
	return *s.TenantID, true
}

func (s Session) HasRole(roles ...string) bool {
	for _, r := range roles {
		if s.Role == r {
			return true
		}
	}
	return false
}

// Change types.
const (
	SignedIn  = "signed_in"
	SignedOut = "signed_out"
)

type Event struct {
	UserID uuid.UUID
	Type   string
	At     time.Time
}

// Notifier fans session changes out to subscribers of the same user.
// Slow subscribers drop events rather than block publishers.
type Notifier struct {
	mu     sync.RWMutex
	nextID int
	subs   map[uuid.UUID]map[int]chan Event
}

func NewNotifier() *Notifier {
	return &Notifier{subs: make(map[uuid.UUID]map[int]chan Event)}
}

// Subscribe registers a listener for userID. The returned func unsubscribes
// and closes the channel; it is safe to call more than once.
func (n *Notifier) Subscribe(userID uuid.UUID) (<-chan Event, func()) {
	ch := make(chan Event, 8)

	n.mu.Lock()
	id := n.nextID
	n.nextID++
	if n.subs[userID] == nil {
		n.subs[userID] = make(map[int]chan Event)
	}
	n.subs[userID][id] = ch
	n.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			n.mu.Lock()
			delete(n.subs[userID], id)
			if len(n.subs[userID]) == 0 {
				delete(n.subs, userID)
			}
			n.mu.Unlock()
			close(ch)
		})
	}
}

func (n *Notifier) Publish(ev Event) {
	if ev.At.IsZero() {
		ev.At = time.Now()
	}
	n.mu.RLock()
	defer n.mu.RUnlock()
	for _, ch := range n.subs[ev.UserID] {
		select {
		case ch <- ev:
		default:
		}
	}
}

// Subscribers returns the number of live subscriptions for userID.
func (n *Notifier) Subscribers(userID uuid.UUID) int {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return len(n.subs[userID])
}
