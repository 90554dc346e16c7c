package service

import (
	"testing"

	"github.com/gastos-app/gastos-backend/internal/domain"
	"github.com/gastos-app/gastos-backend/internal/testutil"
	"github.com/google/uuid"
)

func TestHandleLogin_CreatesProfileOnFirstLogin(t *testing.T) {
	userRepo := testutil.NewMockUserRepository()
	service := NewAuthService(userRepo)

	user, err := service.HandleLogin("auth0|abc123", "ana@example.com", "Ana García")
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if user.Auth0ID != "auth0|abc123" {
		t.Errorf("expected auth0 ID preserved, got %q", user.Auth0ID)
	}
	if user.Name != "Ana García" {
		t.Errorf("expected name from claim, got %q", user.Name)
	}
	if user.ID == uuid.Nil {
		t.Error("expected assigned profile ID")
	}
}

func TestHandleLogin_Idempotent(t *testing.T) {
	userRepo := testutil.NewMockUserRepository()
	service := NewAuthService(userRepo)

	first, err := service.HandleLogin("auth0|abc123", "ana@example.com", "Ana")
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	second, err := service.HandleLogin("auth0|abc123", "ana@example.com", "Ana")
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if first.ID != second.ID {
		t.Errorf("expected same profile across logins, got %s and %s", first.ID, second.ID)
	}
}

func TestHandleLogin_NameFallsBackToEmailLocalPart(t *testing.T) {
	userRepo := testutil.NewMockUserRepository()
	service := NewAuthService(userRepo)

	user, err := service.HandleLogin("auth0|abc123", "beto@example.com", "  ")
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if user.Name != "beto" {
		t.Errorf("expected name seeded from email local-part, got %q", user.Name)
	}
}

func TestHandleLogin_NameFallsBackToDefault(t *testing.T) {
	userRepo := testutil.NewMockUserRepository()
	service := NewAuthService(userRepo)

	user, err := service.HandleLogin("auth0|abc123", "", "")
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if user.Name != "Usuario" {
		t.Errorf("expected default name, got %q", user.Name)
	}
}

func TestGetProfile_NotFound(t *testing.T) {
	userRepo := testutil.NewMockUserRepository()
	service := NewAuthService(userRepo)

	if _, err := service.GetProfile("auth0|missing"); err != domain.ErrUserNotFound {
		t.Errorf("expected ErrUserNotFound, got: %v", err)
	}
}

func TestGetUserIDByAuth0ID(t *testing.T) {
	userRepo := testutil.NewMockUserRepository()
	service := NewAuthService(userRepo)

	user := &domain.User{ID: uuid.New(), Auth0ID: "auth0|abc123", Email: "ana@example.com", Name: "Ana"}
	userRepo.AddUser(user)

	id, err := service.GetUserIDByAuth0ID("auth0|abc123")
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if id != user.ID.String() {
		t.Errorf("expected %s, got %s", user.ID, id)
	}

	if _, err := service.GetUserIDByAuth0ID("auth0|missing"); err == nil {
		t.Error("expected error for unknown subject")
	}
}
