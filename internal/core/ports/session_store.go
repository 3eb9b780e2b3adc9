package ports

import (
	"context"
	"time"
)

// SessionStore persists server-side session records. A session maps an opaque
// session id to the owning user's id and expires after its TTL. Deleting the
// record revokes the session even while its signed token is still valid.
type SessionStore interface {
	Create(ctx context.Context, sessionID string, userID int, ttl time.Duration) error
	// Get returns the user id for the session, or domain.ErrSessionNotFound
	// when the session is unknown or expired.
	Get(ctx context.Context, sessionID string) (int, error)
	Delete(ctx context.Context, sessionID string) error
}
