package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/accountd/account-api/internal/core/domain"
	"github.com/accountd/account-api/internal/core/ports"
)

// UserService implements user listing and administration. Authorization for
// updates is enforced here, not in the transport layer: non-admin actors may
// only touch their own record and may never change roles.
type UserService struct {
	users  ports.UserRepository
	hasher ports.PasswordHasher
}

func NewUserService(users ports.UserRepository, hasher ports.PasswordHasher) *UserService {
	return &UserService{users: users, hasher: hasher}
}

func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	return s.users.List(ctx)
}

func (s *UserService) Get(ctx context.Context, id string) (*domain.User, error) {
	if id == "" {
		return nil, domain.ErrInvalidID
	}
	return s.users.FindByID(ctx, id)
}

func (s *UserService) Update(ctx context.Context, in ports.UpdateUserInput) (*domain.User, error) {
	if in.TargetID == "" {
		return nil, domain.ErrInvalidID
	}

	isAdmin := in.ActorRole == domain.RoleAdmin
	if !isAdmin && in.ActorID != in.TargetID {
		return nil, domain.ErrForbidden
	}
	if !isAdmin && in.Role != nil {
		return nil, domain.ErrForbidden
	}

	user, err := s.users.FindByID(ctx, in.TargetID)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if len(name) < nameMinLen || len(name) > nameMaxLen {
			return nil, fmt.Errorf("%w: name must be between %d and %d characters", domain.ErrValidation, nameMinLen, nameMaxLen)
		}
		user.Name = name
	}

	if in.Email != nil {
		if !ValidEmail(*in.Email) {
			return nil, fmt.Errorf("%w: email must be a valid email address", domain.ErrValidation)
		}
		email := NormalizeEmail(*in.Email)
		if email != user.Email {
			if existing, err := s.users.FindByEmail(ctx, email); err != nil && !errors.Is(err, domain.ErrUserNotFound) {
				return nil, err
			} else if existing != nil {
				return nil, domain.ErrUserExists
			}
			user.Email = email
		}
	}

	if in.Password != nil {
		if err := CheckPasswordStrength(*in.Password); err != nil {
			return nil, err
		}
		hashed, err := s.hasher.Hash(*in.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hashed
	}

	if in.Role != nil {
		if *in.Role != domain.RoleAdmin && *in.Role != domain.RoleUser {
			return nil, fmt.Errorf("%w: role must be one of: admin user", domain.ErrValidation)
		}
		user.Role = *in.Role
	}

	return s.users.Update(ctx, user)
}

func (s *UserService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return domain.ErrInvalidID
	}
	return s.users.Delete(ctx, id)
}
