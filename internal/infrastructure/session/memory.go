// Package session provides the in-process session registry. It backs the
// concurrent-session cap when the gateway runs as a single instance; the
// redis registry replaces it for multi-instance deployments.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/pres-portal/auth-gateway/internal/core/ports"
)

// DefaultMaxPerPrincipal mirrors the maximumSessions(10) setting of the
// original configuration.
const DefaultMaxPerPrincipal = 10

type entry struct {
	id string
	at time.Time
}

// MemoryRegistry holds sessions in RAM behind a single mutex. Check-and-
// insert happens under the lock, so the cap holds under concurrent logins.
// Sessions are lost on restart, which is acceptable for this registry's
// intended single-instance use.
type MemoryRegistry struct {
	mu       sync.Mutex
	max      int
	sessions map[string][]entry // principal → sessions, oldest first
}

var _ ports.SessionRegistry = (*MemoryRegistry)(nil)

// NewMemoryRegistry creates a registry capping each principal at max
// concurrent sessions. max <= 0 falls back to DefaultMaxPerPrincipal.
func NewMemoryRegistry(max int) *MemoryRegistry {
	if max <= 0 {
		max = DefaultMaxPerPrincipal
	}
	return &MemoryRegistry{
		max:      max,
		sessions: make(map[string][]entry),
	}
}

// Register adds the session, evicting the principal's oldest session first
// when the cap is reached.
func (r *MemoryRegistry) Register(_ context.Context, principal, sessionID string, at time.Time) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	list := r.sessions[principal]
	var evicted string
	if len(list) >= r.max {
		evicted = list[0].id
		list = list[1:]
	}
	r.sessions[principal] = append(list, entry{id: sessionID, at: at})
	return evicted, nil
}

func (r *MemoryRegistry) Contains(_ context.Context, principal, sessionID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, e := range r.sessions[principal] {
		if e.id == sessionID {
			return true, nil
		}
	}
	return false, nil
}

func (r *MemoryRegistry) Evict(_ context.Context, principal, sessionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	list := r.sessions[principal]
	for i, e := range list {
		if e.id == sessionID {
			r.sessions[principal] = append(list[:i], list[i+1:]...)
			break
		}
	}
	if len(r.sessions[principal]) == 0 {
		delete(r.sessions, principal)
	}
	return nil
}

func (r *MemoryRegistry) ActiveCount(_ context.Context, principal string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions[principal]), nil
}
