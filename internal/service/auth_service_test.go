package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"entrenador/gym-platform/internal/domain"

	"github.com/golang-jwt/jwt/v4"
)

func seedAccount(t *testing.T, repo *fakeUserRepo, username, email, password string) {
	t.Helper()
	hash, err := hashPassword(password)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	if _, err := repo.Create(context.Background(), &domain.User{
		Name:         "Ana",
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Role:         domain.RoleUser,
	}); err != nil {
		t.Fatalf("seed account: %v", err)
	}
}

func TestLoginWithUsernameAndEmail(t *testing.T) {
	repo := newFakeUserRepo()
	seedAccount(t, repo, "ana", "ana@example.com", "secret123")
	svc := NewAuthService(repo, "test-secret", time.Hour)
	ctx := context.Background()

	token, user, err := svc.Login(ctx, "ana", "secret123")
	if err != nil {
		t.Fatalf("Login by username: %v", err)
	}
	if token == "" {
		t.Error("empty token")
	}
	if user.PasswordHash != "" {
		t.Error("password hash leaked")
	}

	// Email works as a fallback login name.
	if _, _, err := svc.Login(ctx, "ana@example.com", "secret123"); err != nil {
		t.Fatalf("Login by email: %v", err)
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	repo := newFakeUserRepo()
	seedAccount(t, repo, "ana", "", "secret123")
	svc := NewAuthService(repo, "test-secret", time.Hour)
	ctx := context.Background()

	if _, _, err := svc.Login(ctx, "ana", "wrong"); !errors.Is(err, ErrAuthenticationFailed) {
		t.Fatalf("wrong password err = %v, want ErrAuthenticationFailed", err)
	}
	if _, _, err := svc.Login(ctx, "nobody", "secret123"); !errors.Is(err, ErrAuthenticationFailed) {
		t.Fatalf("unknown user err = %v, want ErrAuthenticationFailed", err)
	}
}

func TestTokenCarriesClaims(t *testing.T) {
	repo := newFakeUserRepo()
	seedAccount(t, repo, "ana", "", "secret123")
	svc := NewAuthService(repo, "test-secret", time.Hour)

	token, user, err := svc.Login(context.Background(), "ana", "secret123")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	claims := &jwtClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("parse token: %v", err)
	}
	if claims.UserID != user.ID.Hex() {
		t.Errorf("uid claim = %q, want %q", claims.UserID, user.ID.Hex())
	}
	if claims.Role != domain.RoleUser {
		t.Errorf("role claim = %q, want %q", claims.Role, domain.RoleUser)
	}
	if claims.ExpiresAt == nil || time.Until(claims.ExpiresAt.Time) > time.Hour {
		t.Error("expiry claim missing or beyond the configured lifetime")
	}
}
