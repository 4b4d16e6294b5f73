package ports

import (
	"context"

	"github.com/accountd/account-api/internal/core/domain"
)

// RegisterInput carries the validated registration fields.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

// AuthService orchestrates credentials and sessions. Register and Login both
// return the session id to be set as the transport cookie (register implies
// auto-login).
type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*domain.User, string, error)
	Login(ctx context.Context, email, password string) (*domain.User, string, error)
	Logout(ctx context.Context, sid string) error

	// CurrentUser re-fetches the user record fresh from the store so name
	// and role changes are reflected; it never answers from the session
	// snapshot.
	CurrentUser(ctx context.Context, userID string) (*domain.User, error)

	Sessions(ctx context.Context, userID string) ([]domain.Session, error)
	Session(ctx context.Context, userID, sessionID string) (*domain.Session, error)
}
