package usecase

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"prep-pilot/internal/pkg/jwt"
	"prep-pilot/internal/storage"
	ucauth "prep-pilot/internal/usecase/auth"
)

func newTestAuth(t *testing.T) *Auth {
	t.Helper()
	users := storage.NewUserStore(filepath.Join(t.TempDir(), "users.json"))
	jwtSvc := jwt.NewHMACService("access-secret", "refresh-secret", time.Minute, time.Hour)
	return NewAuthUsecase(users, jwtSvc)
}

func TestAuth_RegisterLoginRefreshRoundTrip(t *testing.T) {
	uc := newTestAuth(t)
	ctx := context.Background()

	usr, access, refresh, err := uc.Register(ctx, ucauth.RegisterInput{
		Email:            "Alice@Example.com",
		Password:         "correct horse",
		LeetCodeUsername: "alice_lc",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if usr.Email != "alice@example.com" {
		t.Fatalf("email must be normalized, got %q", usr.Email)
	}
	if usr.PasswordHash != "" {
		t.Fatalf("password hash must not leave the usecase")
	}
	if access == "" || refresh == "" {
		t.Fatalf("expected both tokens")
	}

	loggedIn, _, _, err := uc.Login(ctx, ucauth.LoginInput{Email: "alice@example.com", Password: "correct horse"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if loggedIn.ID != usr.ID {
		t.Fatalf("login returned a different user")
	}

	newAccess, newRefresh, err := uc.Refresh(ctx, refresh)
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if newAccess == "" || newRefresh == "" {
		t.Fatalf("refresh must issue a new token pair")
	}
}

func TestAuth_DuplicateEmail(t *testing.T) {
	uc := newTestAuth(t)
	ctx := context.Background()

	in := ucauth.RegisterInput{Email: "bob@example.com", Password: "long enough"}
	if _, _, _, err := uc.Register(ctx, in); err != nil {
		t.Fatalf("register: %v", err)
	}
	_, _, _, err := uc.Register(ctx, in)
	if !errors.Is(err, ucauth.ErrEmailAlreadyRegistered) {
		t.Fatalf("expected ErrEmailAlreadyRegistered, got %v", err)
	}
}

func TestAuth_WrongPassword(t *testing.T) {
	uc := newTestAuth(t)
	ctx := context.Background()

	if _, _, _, err := uc.Register(ctx, ucauth.RegisterInput{Email: "bob@example.com", Password: "long enough"}); err != nil {
		t.Fatalf("register: %v", err)
	}
	_, _, _, err := uc.Login(ctx, ucauth.LoginInput{Email: "bob@example.com", Password: "wrong password"})
	if !errors.Is(err, ucauth.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuth_RefreshRejectsAccessToken(t *testing.T) {
	uc := newTestAuth(t)
	ctx := context.Background()

	_, access, _, err := uc.Register(ctx, ucauth.RegisterInput{Email: "bob@example.com", Password: "long enough"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, _, err := uc.Refresh(ctx, access); !errors.Is(err, ErrInvalidRefreshToken) {
		t.Fatalf("expected ErrInvalidRefreshToken, got %v", err)
	}
}

func TestAuth_ShortPasswordRejected(t *testing.T) {
	uc := newTestAuth(t)

	_, _, _, err := uc.Register(context.Background(), ucauth.RegisterInput{Email: "x@example.com", Password: "short"})
	if !errors.Is(err, ucauth.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
