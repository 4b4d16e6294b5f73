package service

import (
	"context"
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/accountd/account-api/internal/core/domain"
	"github.com/accountd/account-api/internal/core/ports"
	"github.com/accountd/account-api/internal/pkg/hash"
)

func strptr(s string) *string { return &s }

func seedUsers(t *testing.T) (*UserService, *stubUserRepo, *domain.User, *domain.User) {
	t.Helper()
	users := newStubUserRepo()
	svc := NewUserService(users, hash.NewBcryptHasher(bcrypt.MinCost))

	admin, err := users.Create(context.Background(), &domain.User{
		Name: "root", Email: "root@x.com", Role: domain.RoleAdmin, PasswordHash: "h",
	})
	if err != nil {
		t.Fatalf("seed admin: %v", err)
	}
	member, err := users.Create(context.Background(), &domain.User{
		Name: "alice", Email: "alice@x.com", Role: domain.RoleUser, PasswordHash: "h",
	})
	if err != nil {
		t.Fatalf("seed member: %v", err)
	}
	return svc, users, admin, member
}

func TestUserService_Get(t *testing.T) {
	svc, _, _, member := seedUsers(t)

	got, err := svc.Get(context.Background(), member.ID)
	if err != nil || got.Email != "alice@x.com" {
		t.Fatalf("unexpected result: %+v err=%v", got, err)
	}

	if _, err := svc.Get(context.Background(), ""); !errors.Is(err, domain.ErrInvalidID) {
		t.Fatalf("expected ErrInvalidID, got %v", err)
	}
	if _, err := svc.Get(context.Background(), "missing"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserService_Update_SelfRename(t *testing.T) {
	svc, _, _, member := seedUsers(t)

	got, err := svc.Update(context.Background(), ports.UpdateUserInput{
		ActorID: member.ID, ActorRole: domain.RoleUser, TargetID: member.ID,
		Name: strptr("alicia"),
	})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if got.Name != "alicia" {
		t.Fatalf("rename not applied: %+v", got)
	}
}

func TestUserService_Update_NonAdminTargetsOther(t *testing.T) {
	svc, _, admin, member := seedUsers(t)

	if _, err := svc.Update(context.Background(), ports.UpdateUserInput{
		ActorID: member.ID, ActorRole: domain.RoleUser, TargetID: admin.ID,
		Name: strptr("gotcha"),
	}); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestUserService_Update_NonAdminRoleChange(t *testing.T) {
	svc, _, _, member := seedUsers(t)

	if _, err := svc.Update(context.Background(), ports.UpdateUserInput{
		ActorID: member.ID, ActorRole: domain.RoleUser, TargetID: member.ID,
		Role: strptr(domain.RoleAdmin),
	}); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for self-promotion, got %v", err)
	}
}

func TestUserService_Update_AdminPromotes(t *testing.T) {
	svc, _, admin, member := seedUsers(t)

	got, err := svc.Update(context.Background(), ports.UpdateUserInput{
		ActorID: admin.ID, ActorRole: domain.RoleAdmin, TargetID: member.ID,
		Role: strptr(domain.RoleAdmin),
	})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if got.Role != domain.RoleAdmin {
		t.Fatalf("promotion not applied: %+v", got)
	}
}

func TestUserService_Update_InvalidEmail(t *testing.T) {
	svc, _, _, member := seedUsers(t)

	if _, err := svc.Update(context.Background(), ports.UpdateUserInput{
		ActorID: member.ID, ActorRole: domain.RoleUser, TargetID: member.ID,
		Email: strptr("not an email"),
	}); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestUserService_Update_EmailCollision(t *testing.T) {
	svc, _, _, member := seedUsers(t)

	if _, err := svc.Update(context.Background(), ports.UpdateUserInput{
		ActorID: member.ID, ActorRole: domain.RoleUser, TargetID: member.ID,
		Email: strptr("root@x.com"),
	}); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestUserService_Update_PasswordIsRehashed(t *testing.T) {
	svc, users, _, member := seedUsers(t)

	_, err := svc.Update(context.Background(), ports.UpdateUserInput{
		ActorID: member.ID, ActorRole: domain.RoleUser, TargetID: member.ID,
		Password: strptr("N3wStr0ng!"),
	})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}

	stored := users.users[member.ID].PasswordHash
	if stored == "N3wStr0ng!" || stored == "h" {
		t.Fatalf("password not rehashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(stored), []byte("N3wStr0ng!")); err != nil {
		t.Fatalf("new hash does not verify: %v", err)
	}
}

func TestUserService_Update_WeakPassword(t *testing.T) {
	svc, _, _, member := seedUsers(t)

	if _, err := svc.Update(context.Background(), ports.UpdateUserInput{
		ActorID: member.ID, ActorRole: domain.RoleUser, TargetID: member.ID,
		Password: strptr("short"),
	}); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestUserService_Delete(t *testing.T) {
	svc, users, _, member := seedUsers(t)

	if err := svc.Delete(context.Background(), member.ID); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if _, ok := users.users[member.ID]; ok {
		t.Fatalf("record still present after delete")
	}
	if err := svc.Delete(context.Background(), member.ID); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserService_List(t *testing.T) {
	svc, _, _, _ := seedUsers(t)

	all, err := svc.List(context.Background())
	if err != nil || len(all) != 2 {
		t.Fatalf("expected 2 users, got %d err=%v", len(all), err)
	}
}
