package ports

import (
	"context"

	"github.com/accountd/account-api/internal/core/domain"
)

// SessionRepository persists the audit Session records created at login and
// registration time. Records are append-only until a logout removes every
// record belonging to the user.
type SessionRepository interface {
	Create(ctx context.Context, session *domain.Session) error
	FindByUserID(ctx context.Context, userID string) ([]domain.Session, error)
	FindBySessionID(ctx context.Context, sessionID string) (*domain.Session, error)
	DeleteByUserID(ctx context.Context, userID string) error
}
