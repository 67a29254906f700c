package usecase

import (
	"errors"
	"strings"
	"testing"

	domainErrors "github.com/polkiloo/topdonators/internal/domain/errors"
	pkgAuth "github.com/polkiloo/topdonators/internal/pkg/auth"
	testhelpers "github.com/polkiloo/topdonators/internal/test"
)

func TestNormalizeUsername(t *testing.T) {
	valid := map[string]string{
		"alice":                  "alice",
		"  Bob_42 ":              "Bob_42",
		"_":                      "_",
		strings.Repeat("a", 20): strings.Repeat("a", 20),
	}
	for in, want := range valid {
		got, err := NormalizeUsername(in)
		if err != nil {
			t.Fatalf("expected %q to be valid: %v", in, err)
		}
		if got != want {
			t.Fatalf("expected %q, got %q", want, got)
		}
	}

	invalid := []string{"", "   ", "has space", "dash-name", "émile", "a.b", strings.Repeat("a", 21)}
	for _, in := range invalid {
		if _, err := NormalizeUsername(in); !errors.Is(err, domainErrors.ErrInvalidUsername) {
			t.Fatalf("expected %q to be rejected, got %v", in, err)
		}
	}
}

func TestNormalizeEmail(t *testing.T) {
	got, err := NormalizeEmail("  Alice@Example.COM ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "alice@example.com" {
		t.Fatalf("expected normalized email, got %q", got)
	}

	invalid := []string{
		"",
		"no-at-sign",
		"@example.com",
		"alice@",
		"a@b@c",
		"al ice@example.com",
		strings.Repeat("a", 40) + "@example.com",
	}
	for _, in := range invalid {
		if _, err := NormalizeEmail(in); !errors.Is(err, domainErrors.ErrInvalidEmail) {
			t.Fatalf("expected %q to be rejected, got %v", in, err)
		}
	}
}

func TestHashPassword(t *testing.T) {
	hasher := testhelpers.HasherStub{}

	if _, err := hashPassword(hasher, ""); !errors.Is(err, domainErrors.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for empty password, got %v", err)
	}

	hash, err := hashPassword(hasher, "pw")
	if err != nil || hash != "hash:pw" {
		t.Fatalf("unexpected result %q, %v", hash, err)
	}

	tooLong := testhelpers.HasherStub{HashFn: func(string) (string, error) { return "", pkgAuth.ErrPasswordTooLong }}
	_, err = hashPassword(tooLong, strings.Repeat("x", 100))
	if !errors.Is(err, domainErrors.ErrInvalidCredentials) || !errors.Is(err, pkgAuth.ErrPasswordTooLong) {
		t.Fatalf("expected both sentinels, got %v", err)
	}

	broken := testhelpers.HasherStub{HashFn: func(string) (string, error) { return "", errors.New("rng failure") }}
	if _, err := hashPassword(broken, "pw"); err == nil || errors.Is(err, domainErrors.ErrInvalidCredentials) {
		t.Fatalf("expected raw hasher error, got %v", err)
	}
}
