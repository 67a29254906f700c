package test

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	pkgAuth "github.com/polkiloo/topdonators/internal/pkg/auth"
)

// HasherStub provides deterministic hashing for tests.
type HasherStub struct {
	HashFn    func(string) (string, error)
	CompareFn func(string, string) error
}

// Hash returns a predictable hash for the supplied password.
func (h HasherStub) Hash(password string) (string, error) {
	if h.HashFn != nil {
		return h.HashFn(password)
	}
	return "hash:" + password, nil
}

// Compare validates password against stored hash.
func (h HasherStub) Compare(hash string, password string) error {
	if h.CompareFn != nil {
		return h.CompareFn(hash, password)
	}
	if hash != "hash:"+password {
		return errors.New("mismatch")
	}
	return nil
}

// StrategyStub issues and parses tokens via function overrides. Without
// overrides it encodes the user id and purpose into the token text.
type StrategyStub struct {
	IssueFn func(int64, pkgAuth.Purpose) (string, error)
	ParseFn func(string, pkgAuth.Purpose) (int64, error)
	NameVal string
}

// IssueToken returns deterministic tokens for tests.
func (s StrategyStub) IssueToken(userID int64, purpose pkgAuth.Purpose) (string, error) {
	if s.IssueFn != nil {
		return s.IssueFn(userID, purpose)
	}
	return fmt.Sprintf("%s:%d", purpose, userID), nil
}

// ParseToken parses previously issued token strings.
func (s StrategyStub) ParseToken(token string, purpose pkgAuth.Purpose) (int64, error) {
	if s.ParseFn != nil {
		return s.ParseFn(token, purpose)
	}
	prefix, rest, ok := strings.Cut(token, ":")
	if !ok || prefix != string(purpose) {
		return 0, pkgAuth.ErrInvalidToken
	}
	id, err := strconv.ParseInt(rest, 10, 64)
	if err != nil {
		return 0, pkgAuth.ErrInvalidToken
	}
	return id, nil
}

// Name returns the strategy identifier used in tests.
func (s StrategyStub) Name() string {
	if s.NameVal != "" {
		return s.NameVal
	}
	return "stub"
}

// TokenParserStub implements middleware token parsing contract.
type TokenParserStub struct {
	ID      int64
	Err     error
	ParseFn func(string) (int64, error)
}

// ParseToken either delegates to override or returns predefined result.
func (s TokenParserStub) ParseToken(token string) (int64, error) {
	if s.ParseFn != nil {
		return s.ParseFn(token)
	}
	if s.Err != nil {
		return 0, s.Err
	}
	return s.ID, nil
}

var _ pkgAuth.PasswordHasher = HasherStub{}
var _ pkgAuth.Strategy = StrategyStub{}
