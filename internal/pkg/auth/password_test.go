package auth

import (
	"errors"
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestNewBcryptHasherCost(t *testing.T) {
	for _, cost := range []int{0, -3} {
		if got := NewBcryptHasher(cost).cost; got != bcrypt.DefaultCost {
			t.Fatalf("cost %d: expected default, got %d", cost, got)
		}
	}
	if got := NewBcryptHasher(bcrypt.MinCost).cost; got != bcrypt.MinCost {
		t.Fatalf("expected min cost, got %d", got)
	}
}

func TestBcryptHasherRoundTrip(t *testing.T) {
	hasher := NewBcryptHasher(bcrypt.MinCost)
	hash, err := hasher.Hash("correct horse")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if !strings.HasPrefix(hash, "$2a$") {
		t.Fatalf("expected bcrypt hash, got %q", hash)
	}
	if err := hasher.Compare(hash, "correct horse"); err != nil {
		t.Fatalf("compare: %v", err)
	}
	if err := hasher.Compare(hash, "battery staple"); !errors.Is(err, ErrPasswordMismatch) {
		t.Fatalf("expected ErrPasswordMismatch, got %v", err)
	}
}

func TestBcryptHasherErrors(t *testing.T) {
	hasher := NewBcryptHasher(bcrypt.MinCost)

	if _, err := hasher.Hash(strings.Repeat("a", maxPasswordBytes+1)); !errors.Is(err, ErrPasswordTooLong) {
		t.Fatalf("expected ErrPasswordTooLong, got %v", err)
	}
	if _, err := hasher.Hash(strings.Repeat("a", maxPasswordBytes)); err != nil {
		t.Fatalf("72 bytes must be accepted: %v", err)
	}
	if _, err := (&BcryptHasher{cost: bcrypt.MaxCost + 1}).Hash("pw"); err == nil {
		t.Fatal("expected error for invalid cost")
	}

	err := hasher.Compare("not-a-hash", "pw")
	if err == nil || errors.Is(err, ErrPasswordMismatch) {
		t.Fatalf("expected malformed hash error, got %v", err)
	}
}
