package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gachamap/gachamap-backend/internal/config"
	"github.com/gachamap/gachamap-backend/internal/dto"
	"github.com/gachamap/gachamap-backend/internal/models"
)

func newTestAuthService(t *testing.T) (*AuthService, *OwnerService) {
	t.Helper()
	db := newTestDB(t)
	cfg := &config.Config{
		JWTSecret:        "test-secret",
		JWTAccessExpiry:  15 * time.Minute,
		JWTRefreshExpiry: time.Hour,
	}
	owners := NewOwnerService(db)
	return NewAuthService(db, cfg, owners), owners
}

func TestRegisterProvisionsOwner(t *testing.T) {
	svc, owners := newTestAuthService(t)
	ctx := context.Background()

	resp, err := svc.Register(ctx, &dto.RegisterRequest{
		Email:    "new@example.com",
		Password: "password123",
		Name:     "신규가입자",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if resp.AccessToken == "" || resp.RefreshToken == "" {
		t.Error("token pair not issued")
	}

	owner, err := owners.ResolveOwner(ctx, resp.User.ID.String())
	if err != nil {
		t.Fatalf("owner not provisioned: %v", err)
	}
	if owner.Name != "신규가입자" || owner.Role != models.RoleOwner {
		t.Errorf("owner = %+v, want name 신규가입자 with owner role", owner)
	}
}

func TestRegisterRejectsDuplicateEmailAndShortPassword(t *testing.T) {
	svc, _ := newTestAuthService(t)
	ctx := context.Background()

	req := &dto.RegisterRequest{Email: "dup@example.com", Password: "password123"}
	if _, err := svc.Register(ctx, req); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if _, err := svc.Register(ctx, req); !errors.Is(err, ErrEmailTaken) {
		t.Errorf("duplicate register = %v, want ErrEmailTaken", err)
	}

	if _, err := svc.Register(ctx, &dto.RegisterRequest{Email: "short@example.com", Password: "short"}); err == nil {
		t.Error("short password accepted")
	}
}

func TestLoginVerifiesPasswordAndHealsOwner(t *testing.T) {
	svc, owners := newTestAuthService(t)
	ctx := context.Background()

	reg, err := svc.Register(ctx, &dto.RegisterRequest{Email: "login@example.com", Password: "password123"})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	// Simulate an account predating the owners table.
	if err := svc.db.Where("auth_user_id = ?", reg.User.ID.String()).Delete(&models.Owner{}).Error; err != nil {
		t.Fatal(err)
	}

	if _, err := svc.Login(ctx, &dto.LoginRequest{Email: "login@example.com", Password: "wrong-password"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("wrong password = %v, want ErrInvalidCredentials", err)
	}
	if _, err := svc.Login(ctx, &dto.LoginRequest{Email: "nobody@example.com", Password: "password123"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("unknown email = %v, want ErrInvalidCredentials", err)
	}

	if _, err := svc.Login(ctx, &dto.LoginRequest{Email: "login@example.com", Password: "password123"}); err != nil {
		t.Fatalf("Login: %v", err)
	}
	if _, err := owners.ResolveOwner(ctx, reg.User.ID.String()); err != nil {
		t.Errorf("owner not re-provisioned on login: %v", err)
	}
}

func TestRefreshRotatesToken(t *testing.T) {
	svc, _ := newTestAuthService(t)
	ctx := context.Background()

	reg, err := svc.Register(ctx, &dto.RegisterRequest{Email: "rot@example.com", Password: "password123"})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	refreshed, err := svc.Refresh(ctx, &dto.RefreshRequest{RefreshToken: reg.RefreshToken})
	if err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if refreshed.RefreshToken == reg.RefreshToken {
		t.Error("refresh token not rotated")
	}

	// The old token is revoked after use.
	if _, err := svc.Refresh(ctx, &dto.RefreshRequest{RefreshToken: reg.RefreshToken}); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("reused refresh token = %v, want ErrInvalidToken", err)
	}
}

func TestLogoutRevokesRefreshToken(t *testing.T) {
	svc, _ := newTestAuthService(t)
	ctx := context.Background()

	reg, err := svc.Register(ctx, &dto.RegisterRequest{Email: "out@example.com", Password: "password123"})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	if err := svc.Logout(ctx, &dto.LogoutRequest{RefreshToken: reg.RefreshToken}); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if _, err := svc.Refresh(ctx, &dto.RefreshRequest{RefreshToken: reg.RefreshToken}); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("refresh after logout = %v, want ErrInvalidToken", err)
	}
}
