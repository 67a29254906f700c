package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"

	domainErrors "github.com/polkiloo/topdonators/internal/domain/errors"
	pkgAuth "github.com/polkiloo/topdonators/internal/pkg/auth"
	testhelpers "github.com/polkiloo/topdonators/internal/test"
)

func newAuthUseCase(repo *testhelpers.UserRepositoryStub) *AuthUseCase {
	return NewAuthUseCase(repo, testhelpers.HasherStub{}, testhelpers.StrategyStub{})
}

func TestAuthUseCaseRegisterSuccess(t *testing.T) {
	repo := testhelpers.NewUserRepositoryStub()
	uc := newAuthUseCase(repo)

	ctx := context.Background()
	user, token, err := uc.Register(ctx, "alice", " Alice@Example.com ", "password")
	if err != nil {
		t.Fatalf("register returned error: %v", err)
	}
	if user.ID == 0 {
		t.Fatalf("expected user to have ID assigned")
	}
	if token != "session:1" {
		t.Fatalf("unexpected token %q", token)
	}
	if user.Amount != 0 || user.Level != "F0" {
		t.Fatalf("expected fresh standing, got %+v", user.Standing)
	}
	stored, err := repo.GetByUsername(ctx, "alice")
	if err != nil {
		t.Fatalf("expected user in repository: %v", err)
	}
	if stored.PasswordHash != "hash:password" {
		t.Fatalf("password hash not stored: %v", stored.PasswordHash)
	}
	if stored.Email != "alice@example.com" {
		t.Fatalf("expected normalized email, got %q", stored.Email)
	}
}

func TestAuthUseCaseRegisterDuplicate(t *testing.T) {
	repo := testhelpers.NewUserRepositoryStub()
	uc := newAuthUseCase(repo)

	ctx := context.Background()
	if _, _, err := uc.Register(ctx, "bob", "bob@example.com", "secret"); err != nil {
		t.Fatalf("unexpected error on first register: %v", err)
	}
	if _, _, err := uc.Register(ctx, "bob", "other@example.com", "secret"); err != domainErrors.ErrAlreadyExists {
		t.Fatalf("expected ErrAlreadyExists for username, got %v", err)
	}
	if _, _, err := uc.Register(ctx, "bobby", "BOB@example.com", "secret"); err != domainErrors.ErrAlreadyExists {
		t.Fatalf("expected ErrAlreadyExists for email, got %v", err)
	}
}

func TestAuthUseCaseRegisterValidation(t *testing.T) {
	uc := newAuthUseCase(testhelpers.NewUserRepositoryStub())
	cases := []struct {
		name     string
		username string
		email    string
		password string
		want     error
	}{
		{"empty username", "", "a@b.c", "pwd", domainErrors.ErrInvalidUsername},
		{"bad username", "no spaces", "a@b.c", "pwd", domainErrors.ErrInvalidUsername},
		{"bad email", "user", "not-an-email", "pwd", domainErrors.ErrInvalidEmail},
		{"empty password", "user", "a@b.c", "", domainErrors.ErrInvalidCredentials},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, _, err := uc.Register(context.Background(), tc.username, tc.email, tc.password); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestAuthUseCaseRegisterHasherError(t *testing.T) {
	repo := testhelpers.NewUserRepositoryStub()
	uc := NewAuthUseCase(repo, testhelpers.HasherStub{HashFn: func(string) (string, error) {
		return "", fmt.Errorf("hash error")
	}}, testhelpers.StrategyStub{})
	if _, _, err := uc.Register(context.Background(), "user", "u@example.com", "pass"); err == nil {
		t.Fatal("expected hashing error")
	}
}

func TestAuthUseCaseRegisterRepositoryError(t *testing.T) {
	repo := testhelpers.NewUserRepositoryStub()
	repo.Err = fmt.Errorf("db down")
	uc := newAuthUseCase(repo)
	if _, _, err := uc.Register(context.Background(), "user", "u@example.com", "pass"); err == nil {
		t.Fatal("expected repository error")
	}
}

func TestAuthUseCaseRegisterIssueTokenError(t *testing.T) {
	repo := testhelpers.NewUserRepositoryStub()
	strategy := testhelpers.StrategyStub{IssueFn: func(int64, pkgAuth.Purpose) (string, error) {
		return "", fmt.Errorf("cannot issue token")
	}}
	uc := NewAuthUseCase(repo, testhelpers.HasherStub{}, strategy)
	if _, _, err := uc.Register(context.Background(), "user", "u@example.com", "pass"); err == nil {
		t.Fatal("expected token issuing error")
	}
}

func TestAuthUseCaseAuthenticate(t *testing.T) {
	repo := testhelpers.NewUserRepositoryStub()
	uc := newAuthUseCase(repo)

	ctx := context.Background()
	if _, _, err := uc.Register(ctx, "carol", "carol@example.com", "123456"); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	if _, _, err := uc.Authenticate(ctx, "carol", "bad"); err != domainErrors.ErrInvalidCredentials {
		t.Fatalf("expected invalid credentials error, got %v", err)
	}

	_, token, err := uc.Authenticate(ctx, " carol ", "123456")
	if err != nil {
		t.Fatalf("authenticate returned error: %v", err)
	}
	if token != "session:1" {
		t.Fatalf("unexpected token %q", token)
	}
}

func TestAuthUseCaseAuthenticateNotFound(t *testing.T) {
	uc := newAuthUseCase(testhelpers.NewUserRepositoryStub())
	if _, _, err := uc.Authenticate(context.Background(), "absent", "pass"); err != domainErrors.ErrInvalidCredentials {
		t.Fatalf("expected invalid credentials error, got %v", err)
	}
}

func TestAuthUseCaseAuthenticateValidation(t *testing.T) {
	uc := newAuthUseCase(testhelpers.NewUserRepositoryStub())
	if _, _, err := uc.Authenticate(context.Background(), "", "pass"); err != domainErrors.ErrInvalidCredentials {
		t.Fatalf("expected invalid credentials error, got %v", err)
	}
	if _, _, err := uc.Authenticate(context.Background(), "user", ""); err != domainErrors.ErrInvalidCredentials {
		t.Fatalf("expected invalid credentials error, got %v", err)
	}
}

func TestAuthUseCaseAuthenticateIssueTokenError(t *testing.T) {
	repo := testhelpers.NewUserRepositoryStub()
	calls := 0
	strategy := testhelpers.StrategyStub{
		IssueFn: func(int64, pkgAuth.Purpose) (string, error) {
			calls++
			if calls > 1 {
				return "", fmt.Errorf("issue error")
			}
			return "token", nil
		},
	}
	uc := NewAuthUseCase(repo, testhelpers.HasherStub{}, strategy)
	if _, _, err := uc.Register(context.Background(), "user", "u@example.com", "pass"); err != nil {
		t.Fatalf("register returned error: %v", err)
	}
	if _, _, err := uc.Authenticate(context.Background(), "user", "pass"); err == nil {
		t.Fatal("expected issue error on authenticate")
	}
}

func TestAuthUseCaseAuthenticateRepositoryError(t *testing.T) {
	repo := testhelpers.NewUserRepositoryStub()
	uc := newAuthUseCase(repo)
	if _, _, err := uc.Register(context.Background(), "user", "u@example.com", "pass"); err != nil {
		t.Fatalf("register returned error: %v", err)
	}
	repo.Err = fmt.Errorf("storage unavailable")
	if _, _, err := uc.Authenticate(context.Background(), "user", "pass"); err == nil || err.Error() != "storage unavailable" {
		t.Fatalf("expected repository error, got %v", err)
	}
}

func TestAuthUseCaseParseToken(t *testing.T) {
	uc := newAuthUseCase(testhelpers.NewUserRepositoryStub())

	id, err := uc.ParseToken("session:42")
	if err != nil {
		t.Fatalf("parse token failed: %v", err)
	}
	if id != 42 {
		t.Fatalf("expected id 42, got %d", id)
	}

	for _, token := range []string{"", "bad-token", "password_reset:42"} {
		if _, err := uc.ParseToken(token); err != pkgAuth.ErrInvalidToken {
			t.Fatalf("expected invalid token error for %q, got %v", token, err)
		}
	}
}

func TestAuthUseCaseGetByID(t *testing.T) {
	repo := testhelpers.NewUserRepositoryStub()
	uc := newAuthUseCase(repo)
	user, _, err := uc.Register(context.Background(), "dave", "dave@example.com", "pwd")
	if err != nil {
		t.Fatalf("register returned error: %v", err)
	}
	fetched, err := uc.GetByID(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("get by id returned error: %v", err)
	}
	if fetched.Username != user.Username {
		t.Fatalf("expected username %q, got %q", user.Username, fetched.Username)
	}

	repo.Err = fmt.Errorf("read error")
	if _, err := uc.GetByID(context.Background(), 1); err == nil {
		t.Fatal("expected repository error")
	}
}

func TestAuthUseCaseRegisterThenAuthenticateRandomDonors(t *testing.T) {
	repo := testhelpers.NewUserRepositoryStub()
	uc := newAuthUseCase(repo)
	ctx := context.Background()

	for range 20 {
		username := testhelpers.RandomUsername()
		password := testhelpers.RandomASCIIString(8, 24)

		registered, _, err := uc.Register(ctx, username, testhelpers.RandomEmail(), password)
		if err != nil {
			t.Fatalf("register %q: %v", username, err)
		}
		authenticated, token, err := uc.Authenticate(ctx, username, password)
		if err != nil {
			t.Fatalf("authenticate %q: %v", username, err)
		}
		if authenticated.ID != registered.ID {
			t.Fatalf("expected id %d, got %d", registered.ID, authenticated.ID)
		}
		if id, err := uc.ParseToken(token); err != nil || id != registered.ID {
			t.Fatalf("expected token for %d, got %d (%v)", registered.ID, id, err)
		}
	}
}
