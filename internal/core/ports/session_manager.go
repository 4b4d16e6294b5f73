package ports

import (
	"context"

	"github.com/accountd/account-api/internal/core/domain"
)

// SessionManager owns the logical session lifecycle: it binds a transport
// session to a user id + role snapshot and keeps the audit trail alongside.
type SessionManager interface {
	// Create establishes an authenticated transport session and inserts an
	// audit record. Each call issues an independent record; concurrent
	// logins for one user are all valid simultaneously.
	Create(ctx context.Context, userID, role string) (string, error)

	// Validate resolves a cookie session id to its payload. It returns
	// domain.ErrNoSession when the id is empty, unknown, expired, or the
	// payload carries no user id.
	Validate(ctx context.Context, sid string) (*domain.SessionData, error)

	// Destroy terminates the transport session and removes the owning
	// user's audit records. Returns domain.ErrNoSession when there is
	// nothing to destroy; store failures surface to the caller.
	Destroy(ctx context.Context, sid string) error
}
