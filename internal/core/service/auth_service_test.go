package service

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/accountd/account-api/internal/core/domain"
	"github.com/accountd/account-api/internal/core/ports"
	"github.com/accountd/account-api/internal/pkg/hash"
)

type stubUserRepo struct {
	users  map[string]*domain.User
	nextID int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == user.Email {
			return nil, domain.ErrUserExists
		}
	}
	r.nextID++
	copy := cloneUser(user)
	copy.ID = "u" + strconv.Itoa(r.nextID)
	r.users[copy.ID] = cloneUser(copy)
	return cloneUser(copy), nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	if u, ok := r.users[id]; ok {
		return cloneUser(u), nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByNameAndEmail(_ context.Context, name, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Name == name && u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) Update(_ context.Context, user *domain.User) (*domain.User, error) {
	if _, ok := r.users[user.ID]; !ok {
		return nil, domain.ErrUserNotFound
	}
	r.users[user.ID] = cloneUser(user)
	return cloneUser(user), nil
}

func (r *stubUserRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

func (r *stubUserRepo) List(_ context.Context) ([]domain.User, error) {
	out := make([]domain.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, *u)
	}
	return out, nil
}

func newTestAuthService() (*AuthService, *stubUserRepo, *stubSessionStore, *stubSessionRepo) {
	users := newStubUserRepo()
	store := newStubSessionStore()
	sessions := &stubSessionRepo{}
	manager := NewSessionManager(store, sessions, time.Hour)
	hasher := hash.NewBcryptHasher(bcrypt.MinCost)
	return NewAuthService(users, sessions, manager, hasher), users, store, sessions
}

func TestAuthService_Register_Success(t *testing.T) {
	svc, _, store, _ := newTestAuthService()

	user, sid, err := svc.Register(context.Background(), ports.RegisterInput{
		Name: "alice", Email: "Alice@X.com", Password: "Str0ng!pw",
	})
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if user.Email != "alice@x.com" {
		t.Fatalf("expected normalized email, got %s", user.Email)
	}
	if user.Role != domain.RoleUser {
		t.Fatalf("expected default role user, got %s", user.Role)
	}
	if user.PasswordHash == "Str0ng!pw" || user.PasswordHash == "" {
		t.Fatalf("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("Str0ng!pw")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}

	// Register implies auto-login.
	if sid == "" {
		t.Fatalf("expected session id")
	}
	data, _ := store.Get(context.Background(), sid)
	if data == nil || data.UserID != user.ID || data.Role != domain.RoleUser {
		t.Fatalf("unexpected session payload: %+v", data)
	}
}

func TestAuthService_Register_Validation(t *testing.T) {
	svc, _, _, _ := newTestAuthService()

	cases := []struct {
		name string
		in   ports.RegisterInput
	}{
		{"missing fields", ports.RegisterInput{Name: "", Email: "", Password: ""}},
		{"short name", ports.RegisterInput{Name: "al", Email: "al@x.com", Password: "Str0ng!pw"}},
		{"bad email", ports.RegisterInput{Name: "alice", Email: "not-an-email", Password: "Str0ng!pw"}},
		{"short password", ports.RegisterInput{Name: "alice", Email: "alice@x.com", Password: "S0!a"}},
		{"no digit", ports.RegisterInput{Name: "alice", Email: "alice@x.com", Password: "Strong!pw"}},
		{"no upper", ports.RegisterInput{Name: "alice", Email: "alice@x.com", Password: "str0ng!pw"}},
		{"no symbol", ports.RegisterInput{Name: "alice", Email: "alice@x.com", Password: "Str0ngpwd"}},
	}
	for _, tc := range cases {
		if _, _, err := svc.Register(context.Background(), tc.in); !errors.Is(err, domain.ErrValidation) {
			t.Fatalf("%s: expected ErrValidation, got %v", tc.name, err)
		}
	}
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	svc, users, _, _ := newTestAuthService()

	first, _, err := svc.Register(context.Background(), ports.RegisterInput{
		Name: "alice", Email: "alice@x.com", Password: "Str0ng!pw",
	})
	if err != nil {
		t.Fatalf("first register failed: %v", err)
	}

	// Same address in a different case must still collide.
	if _, _, err := svc.Register(context.Background(), ports.RegisterInput{
		Name: "mallory", Email: "ALICE@x.com", Password: "Diff3r3nt!",
	}); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}

	// First registration unaffected.
	kept, err := users.FindByID(context.Background(), first.ID)
	if err != nil || kept.Name != "alice" {
		t.Fatalf("first user damaged: %+v err=%v", kept, err)
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	svc, _, store, sessions := newTestAuthService()

	user, _, err := svc.Register(context.Background(), ports.RegisterInput{
		Name: "carol", Email: "carol@x.com", Password: "S3cret!pw",
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	got, sid, err := svc.Login(context.Background(), "Carol@X.com", "S3cret!pw")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if got.ID != user.ID {
		t.Fatalf("unexpected user: %+v", got)
	}
	data, _ := store.Get(context.Background(), sid)
	if data == nil || data.UserID != user.ID {
		t.Fatalf("session not established: %+v", data)
	}
	// Registration + login leave two concurrent audit records.
	if len(sessions.records) != 2 {
		t.Fatalf("expected 2 audit records, got %d", len(sessions.records))
	}
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	svc, _, _, _ := newTestAuthService()

	_, _, _ = svc.Register(context.Background(), ports.RegisterInput{
		Name: "dave", Email: "dave@x.com", Password: "G00dpass!",
	})
	if _, _, err := svc.Login(context.Background(), "dave@x.com", "badpass"); !errors.Is(err, domain.ErrPasswordIncorrect) {
		t.Fatalf("expected ErrPasswordIncorrect, got %v", err)
	}
}

func TestAuthService_Login_UnknownEmailIsGeneric(t *testing.T) {
	svc, _, _, _ := newTestAuthService()

	if _, _, err := svc.Login(context.Background(), "ghost@x.com", "whatever"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_MissingFields(t *testing.T) {
	svc, _, _, _ := newTestAuthService()

	if _, _, err := svc.Login(context.Background(), "", "pw"); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	if _, _, err := svc.Login(context.Background(), "a@x.com", ""); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestAuthService_Login_MissingStoredHashFailsClosed(t *testing.T) {
	svc, users, _, _ := newTestAuthService()

	// Legacy record with no hash: must be invalid credentials, never a
	// hasher error.
	users.users["u9"] = &domain.User{ID: "u9", Name: "eve", Email: "eve@x.com", Role: domain.RoleUser}

	if _, _, err := svc.Login(context.Background(), "eve@x.com", "Whatever1!"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Logout(t *testing.T) {
	svc, _, store, _ := newTestAuthService()

	_, sid, _ := svc.Register(context.Background(), ports.RegisterInput{
		Name: "fred", Email: "fred@x.com", Password: "Str0ng!pw",
	})

	if err := svc.Logout(context.Background(), sid); err != nil {
		t.Fatalf("logout failed: %v", err)
	}
	if data, _ := store.Get(context.Background(), sid); data != nil {
		t.Fatalf("session survived logout")
	}
	if err := svc.Logout(context.Background(), sid); !errors.Is(err, domain.ErrNoSession) {
		t.Fatalf("expected ErrNoSession on second logout, got %v", err)
	}
}

func TestAuthService_CurrentUser_RefetchesFreshRecord(t *testing.T) {
	svc, users, _, _ := newTestAuthService()

	user, _, _ := svc.Register(context.Background(), ports.RegisterInput{
		Name: "gina", Email: "gina@x.com", Password: "Str0ng!pw",
	})

	// A rename after login must be visible without re-authenticating.
	users.users[user.ID].Name = "georgina"

	got, err := svc.CurrentUser(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("CurrentUser returned error: %v", err)
	}
	if got.Name != "georgina" {
		t.Fatalf("expected fresh record, got %+v", got)
	}
}

func TestAuthService_CurrentUser_StaleSession(t *testing.T) {
	svc, users, _, _ := newTestAuthService()

	user, _, _ := svc.Register(context.Background(), ports.RegisterInput{
		Name: "hank", Email: "hank@x.com", Password: "Str0ng!pw",
	})
	delete(users.users, user.ID)

	if _, err := svc.CurrentUser(context.Background(), user.ID); !errors.Is(err, domain.ErrStaleSession) {
		t.Fatalf("expected ErrStaleSession, got %v", err)
	}
}

func TestAuthService_Session_OwnershipEnforced(t *testing.T) {
	svc, _, _, sessions := newTestAuthService()

	alice, _, _ := svc.Register(context.Background(), ports.RegisterInput{
		Name: "alice", Email: "alice@x.com", Password: "Str0ng!pw",
	})
	bob, _, _ := svc.Register(context.Background(), ports.RegisterInput{
		Name: "bobby", Email: "bob@x.com", Password: "Str0ng!pw",
	})

	aliceRecords, err := svc.Sessions(context.Background(), alice.ID)
	if err != nil || len(aliceRecords) != 1 {
		t.Fatalf("expected 1 record for alice, got %d err=%v", len(aliceRecords), err)
	}

	if _, err := svc.Session(context.Background(), bob.ID, aliceRecords[0].SessionID); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden reading another user's session, got %v", err)
	}
	if _, err := svc.Session(context.Background(), alice.ID, aliceRecords[0].SessionID); err != nil {
		t.Fatalf("owner read failed: %v", err)
	}
	_ = sessions
}
