package ports

import (
	"context"

	"github.com/accountd/account-api/internal/core/domain"
)

// UpdateUserInput describes a user update on behalf of an actor. Nil fields
// are left unchanged. Non-admin actors may only target themselves and may
// not change roles.
type UpdateUserInput struct {
	ActorID   string
	ActorRole string
	TargetID  string

	Name     *string
	Email    *string
	Password *string
	Role     *string
}

type UserService interface {
	List(ctx context.Context) ([]domain.User, error)
	Get(ctx context.Context, id string) (*domain.User, error)
	Update(ctx context.Context, in UpdateUserInput) (*domain.User, error)
	Delete(ctx context.Context, id string) error
}
