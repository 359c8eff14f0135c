package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/anish-1308/ibilling/internal/clock"
	userdomain "github.com/anish-1308/ibilling/internal/user/domain"
	"github.com/bwmarrin/snowflake"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupUserTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&userdomain.User{}); err != nil {
		t.Fatalf("migrate users: %v", err)
	}
	db.Exec("DELETE FROM users")
	return db
}

func newUserService(t *testing.T, db *gorm.DB) *Service {
	t.Helper()
	node, err := snowflake.NewNode(1)
	if err != nil {
		t.Fatalf("snowflake node: %v", err)
	}
	return &Service{
		db:    db,
		log:   zap.NewNop(),
		genID: node,
		clock: clock.FixedClock{At: time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)},
	}
}

func TestCreateAndAuthenticate(t *testing.T) {
	db := setupUserTestDB(t)
	svc := newUserService(t, db)
	ctx := context.Background()

	created, err := svc.Create(ctx, userdomain.CreateUserRequest{
		Name:     "Leila Haddad",
		Email:    "Leila@Example.COM",
		Role:     userdomain.RoleManager,
		Password: "correct horse battery",
	}, "admin")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.Email != "leila@example.com" {
		t.Fatalf("email not normalized: %q", created.Email)
	}
	if created.PasswordHash == "correct horse battery" {
		t.Fatal("password stored in clear")
	}

	got, err := svc.Authenticate(ctx, "leila@example.com", "correct horse battery")
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if got.ID != created.ID {
		t.Fatalf("authenticated wrong user: %v", got.ID)
	}

	_, err = svc.Authenticate(ctx, "leila@example.com", "wrong")
	if !errors.Is(err, userdomain.ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials, got %v", err)
	}
}

func TestAuthenticateInactive(t *testing.T) {
	db := setupUserTestDB(t)
	svc := newUserService(t, db)
	ctx := context.Background()

	created, err := svc.Create(ctx, userdomain.CreateUserRequest{
		Name:     "Omar",
		Email:    "omar@example.com",
		Password: "long enough secret",
	}, "admin")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	inactive := false
	if _, err := svc.Update(ctx, created.ID.String(), userdomain.UpdateUserRequest{IsActive: &inactive}, "admin"); err != nil {
		t.Fatalf("deactivate: %v", err)
	}

	_, err = svc.Authenticate(ctx, "omar@example.com", "long enough secret")
	if !errors.Is(err, userdomain.ErrUserInactive) {
		t.Fatalf("expected inactive, got %v", err)
	}
}

func TestCreateRejectsDuplicateEmail(t *testing.T) {
	db := setupUserTestDB(t)
	svc := newUserService(t, db)
	ctx := context.Background()

	req := userdomain.CreateUserRequest{
		Name:     "First",
		Email:    "dup@example.com",
		Password: "long enough secret",
	}
	if _, err := svc.Create(ctx, req, "admin"); err != nil {
		t.Fatalf("first create: %v", err)
	}
	req.Name = "Second"
	_, err := svc.Create(ctx, req, "admin")
	if !errors.Is(err, userdomain.ErrEmailTaken) {
		t.Fatalf("expected email taken, got %v", err)
	}
}

func TestCreateRejectsWeakPassword(t *testing.T) {
	db := setupUserTestDB(t)
	svc := newUserService(t, db)

	_, err := svc.Create(context.Background(), userdomain.CreateUserRequest{
		Name:     "Weak",
		Email:    "weak@example.com",
		Password: "short",
	}, "admin")
	if !errors.Is(err, userdomain.ErrWeakPassword) {
		t.Fatalf("expected weak password, got %v", err)
	}
}

func TestSoftDeleteHidesUser(t *testing.T) {
	db := setupUserTestDB(t)
	svc := newUserService(t, db)
	ctx := context.Background()

	created, err := svc.Create(ctx, userdomain.CreateUserRequest{
		Name:     "Gone",
		Email:    "gone@example.com",
		Password: "long enough secret",
	}, "admin")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := svc.SoftDelete(ctx, created.ID.String(), "admin"); err != nil {
		t.Fatalf("soft delete: %v", err)
	}
	if _, err := svc.GetByID(ctx, created.ID.String()); !errors.Is(err, userdomain.ErrUserNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if _, err := svc.Authenticate(ctx, "gone@example.com", "long enough secret"); !errors.Is(err, userdomain.ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials after delete, got %v", err)
	}

	if err := svc.SoftDelete(ctx, created.ID.String(), "admin"); !errors.Is(err, userdomain.ErrUserNotFound) {
		t.Fatalf("expected not found on second delete, got %v", err)
	}
}
