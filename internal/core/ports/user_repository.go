package ports

import (
	"context"

	"github.com/accountd/account-api/internal/core/domain"
)

// UserRepository defines the interface for user record persistence.
// Email uniqueness is the store's responsibility: Create must fail with
// domain.ErrUserExists when a concurrent registration wins the race.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByNameAndEmail(ctx context.Context, name, email string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) (*domain.User, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]domain.User, error)
}
