// Package session tracks live session tokens in memory with sliding-window
// expiry. Tokens outlive any single connection; a client that reconnects can
// resume its session until the idle timeout lapses.
package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Registry maps session tokens to their last-activity time. It is shared by
// every connection, so each check-and-update runs as one unit under the lock.
type Registry struct {
	mu       sync.Mutex
	ttl      time.Duration
	lastSeen map[string]time.Time
	now      func() time.Time
}

// NewRegistry creates a registry whose sessions expire after ttl of
// inactivity.
func NewRegistry(ttl time.Duration) *Registry {
	return &Registry{
		ttl:      ttl,
		lastSeen: make(map[string]time.Time),
		now:      time.Now,
	}
}

// Issue generates a new session token and records the current time
// against it.
func (r *Registry) Issue() string {
	token := uuid.NewString()

	r.mu.Lock()
	r.lastSeen[token] = r.now()
	r.mu.Unlock()

	return token
}

// Touch reports whether token names a live session. A live session has its
// last-activity time bumped to now; an expired one is evicted and stays
// invalid for good. There is no side-effect-free lookup: every validity
// check extends the session.
func (r *Registry) Touch(token string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	seen, ok := r.lastSeen[token]
	if !ok {
		return false
	}

	now := r.now()
	if now.Sub(seen) > r.ttl {
		delete(r.lastSeen, token)
		return false
	}

	r.lastSeen[token] = now
	return true
}

// Len returns the number of tracked sessions, expired-but-unread included.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.lastSeen)
}
