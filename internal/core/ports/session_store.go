package ports

import (
	"context"
	"time"

	"github.com/accountd/account-api/internal/core/domain"
)

// SessionStore holds the transport session payloads addressed by the session
// cookie. Expiry is enforced by the store's own TTL mechanism; Get returns
// (nil, nil) for missing or expired entries.
type SessionStore interface {
	Put(ctx context.Context, sid string, data domain.SessionData, ttl time.Duration) error
	Get(ctx context.Context, sid string) (*domain.SessionData, error)
	Delete(ctx context.Context, sid string) error
}
