package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/accountd/account-api/internal/core/domain"
	"github.com/accountd/account-api/internal/core/ports"
	"github.com/accountd/account-api/internal/pkg/hash"
)

const (
	nameMinLen     = 3
	nameMaxLen     = 50
	passwordMinLen = 8
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// AuthService implements registration, login, logout and session-backed
// identity on top of the user store, the password hasher and the session
// manager.
type AuthService struct {
	users    ports.UserRepository
	sessions ports.SessionRepository
	manager  ports.SessionManager
	hasher   ports.PasswordHasher
}

func NewAuthService(users ports.UserRepository, sessions ports.SessionRepository, manager ports.SessionManager, hasher ports.PasswordHasher) *AuthService {
	return &AuthService{users: users, sessions: sessions, manager: manager, hasher: hasher}
}

func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, string, error) {
	if err := validateRegistration(in); err != nil {
		return nil, "", err
	}

	email := NormalizeEmail(in.Email)

	// Advisory pre-check; the store's unique index is authoritative and a
	// losing race still comes back as ErrUserExists from Create.
	if existing, err := s.users.FindByEmail(ctx, email); err != nil && !errors.Is(err, domain.ErrUserNotFound) {
		return nil, "", err
	} else if existing != nil {
		return nil, "", domain.ErrUserExists
	}

	hashed, err := s.hasher.Hash(in.Password)
	if err != nil {
		if errors.Is(err, hash.ErrMissingArgument) {
			return nil, "", fmt.Errorf("%w: password is required", domain.ErrValidation)
		}
		return nil, "", err
	}

	user := &domain.User{
		Name:         strings.TrimSpace(in.Name),
		Email:        email,
		PasswordHash: hashed,
		Role:         domain.RoleUser,
	}
	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, "", err
	}

	// Register implies auto-login.
	sid, err := s.manager.Create(ctx, created.ID, created.Role)
	if err != nil {
		return nil, "", err
	}
	return created, sid, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	if email == "" || password == "" {
		return nil, "", fmt.Errorf("%w: email and password are required", domain.ErrValidation)
	}

	user, err := s.users.FindByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, "", domain.ErrInvalidCredentials
		}
		return nil, "", err
	}

	// A record with no stored hash can never authenticate. Skip Verify
	// entirely so its throw-on-missing contract cannot leak as a 500.
	if user.PasswordHash == "" {
		return nil, "", domain.ErrInvalidCredentials
	}

	ok, err := s.hasher.Verify(password, user.PasswordHash)
	if err != nil {
		if errors.Is(err, hash.ErrMissingArgument) {
			return nil, "", fmt.Errorf("%w: email and password are required", domain.ErrValidation)
		}
		return nil, "", err
	}
	if !ok {
		return nil, "", domain.ErrPasswordIncorrect
	}

	sid, err := s.manager.Create(ctx, user.ID, user.Role)
	if err != nil {
		return nil, "", err
	}
	return user, sid, nil
}

func (s *AuthService) Logout(ctx context.Context, sid string) error {
	return s.manager.Destroy(ctx, sid)
}

func (s *AuthService) CurrentUser(ctx context.Context, userID string) (*domain.User, error) {
	if userID == "" {
		return nil, domain.ErrNoSession
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) || errors.Is(err, domain.ErrInvalidID) {
			return nil, domain.ErrStaleSession
		}
		return nil, err
	}
	return user, nil
}

func (s *AuthService) Sessions(ctx context.Context, userID string) ([]domain.Session, error) {
	if userID == "" {
		return nil, domain.ErrNoSession
	}
	return s.sessions.FindByUserID(ctx, userID)
}

func (s *AuthService) Session(ctx context.Context, userID, sessionID string) (*domain.Session, error) {
	if userID == "" {
		return nil, domain.ErrNoSession
	}

	record, err := s.sessions.FindBySessionID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if record.UserID != userID {
		return nil, domain.ErrForbidden
	}
	return record, nil
}

// NormalizeEmail lowercases and trims an address so uniqueness checks are
// case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validateRegistration(in ports.RegisterInput) error {
	name := strings.TrimSpace(in.Name)
	if name == "" || in.Email == "" || in.Password == "" {
		return fmt.Errorf("%w: name, email and password are required", domain.ErrValidation)
	}
	if len(name) < nameMinLen || len(name) > nameMaxLen {
		return fmt.Errorf("%w: name must be between %d and %d characters", domain.ErrValidation, nameMinLen, nameMaxLen)
	}
	if !ValidEmail(in.Email) {
		return fmt.Errorf("%w: email must be a valid email address", domain.ErrValidation)
	}
	if err := CheckPasswordStrength(in.Password); err != nil {
		return err
	}
	return nil
}

// ValidEmail applies the same lenient syntax rule as the registration form:
// one @, no whitespace, a dot in the domain part.
func ValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// CheckPasswordStrength enforces the registration policy: minimum length
// plus upper, lower, digit and symbol character classes.
func CheckPasswordStrength(password string) error {
	if len(password) < passwordMinLen {
		return fmt.Errorf("%w: password must be at least %d characters long", domain.ErrValidation, passwordMinLen)
	}

	var upper, lower, digit, symbol bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		default:
			symbol = true
		}
	}
	if !upper || !lower || !digit || !symbol {
		return fmt.Errorf("%w: password must contain upper and lower case letters, a digit and a symbol", domain.ErrValidation)
	}
	return nil
}
