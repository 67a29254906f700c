package usecase

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	domainErrors "github.com/polkiloo/topdonators/internal/domain/errors"
	pkgAuth "github.com/polkiloo/topdonators/internal/pkg/auth"
)

const (
	maxUsernameLength = 20
	maxEmailLength    = 50
)

var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)

// NormalizeUsername trims the username and checks it against the allowed alphabet.
func NormalizeUsername(username string) (string, error) {
	username = strings.TrimSpace(username)
	if username == "" || len(username) > maxUsernameLength || !usernamePattern.MatchString(username) {
		return "", domainErrors.ErrInvalidUsername
	}
	return username, nil
}

// NormalizeEmail trims and lower-cases the address. Exactly one "@" with
// something on both sides is required.
func NormalizeEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || utf8.RuneCountInString(email) > maxEmailLength {
		return "", domainErrors.ErrInvalidEmail
	}
	local, domain, found := strings.Cut(email, "@")
	if !found || local == "" || domain == "" || strings.Contains(domain, "@") || strings.ContainsAny(email, " \t\r\n") {
		return "", domainErrors.ErrInvalidEmail
	}
	return email, nil
}

// hashPassword rejects passwords the hasher cannot store faithfully as
// invalid credentials rather than internal errors.
func hashPassword(hasher pkgAuth.PasswordHasher, password string) (string, error) {
	if password == "" {
		return "", domainErrors.ErrInvalidCredentials
	}
	hash, err := hasher.Hash(password)
	if errors.Is(err, pkgAuth.ErrPasswordTooLong) {
		return "", fmt.Errorf("%w: %w", domainErrors.ErrInvalidCredentials, err)
	}
	return hash, err
}
