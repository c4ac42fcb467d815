package ports

import (
	"context"
	"time"
)

// SessionRegistry tracks active sessions per principal with a hard cap on
// concurrent sessions. Register must be atomic: under concurrent logins the
// registry may never hold more than the cap for one principal.
//
// When the cap is reached the oldest session is evicted to make room (the
// same policy Spring applies for maximumSessions); Register reports the
// evicted session id so callers can count evictions.
type SessionRegistry interface {
	// Register adds a session for the principal, evicting the oldest one
	// first if the principal is at the cap. Returns the evicted session id,
	// or "" when nothing was evicted.
	Register(ctx context.Context, principal, sessionID string, at time.Time) (evicted string, err error)

	// Contains reports whether the session is currently registered.
	Contains(ctx context.Context, principal, sessionID string) (bool, error)

	// Evict removes a single session, e.g. on logout. Evicting an unknown
	// session is not an error.
	Evict(ctx context.Context, principal, sessionID string) error

	// ActiveCount returns the number of registered sessions for a principal.
	ActiveCount(ctx context.Context, principal string) (int, error)
}
