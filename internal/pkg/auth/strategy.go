package auth

import (
	"errors"
	"time"
)

var ErrInvalidToken = errors.New("invalid auth token")

// Purpose scopes a token so a password reset token can never open a session.
type Purpose string

const (
	PurposeSession       Purpose = "session"
	PurposePasswordReset Purpose = "password_reset"
)

type Strategy interface {
	IssueToken(userID int64, purpose Purpose) (string, error)
	ParseToken(token string, purpose Purpose) (int64, error)
	Name() string
}

type Options struct {
	SessionTTL time.Duration
	ResetTTL   time.Duration
	Issuer     string
}

const (
	defaultSessionTTL = 24 * time.Hour
	defaultResetTTL   = time.Hour
	defaultIssuer     = "topdonators"
)

func (o Options) withDefaults() Options {
	if o.SessionTTL <= 0 {
		o.SessionTTL = defaultSessionTTL
	}
	if o.ResetTTL <= 0 {
		o.ResetTTL = defaultResetTTL
	}
	if o.Issuer == "" {
		o.Issuer = defaultIssuer
	}
	return o
}

func (o Options) ttl(purpose Purpose) time.Duration {
	if purpose == PurposePasswordReset {
		return o.ResetTTL
	}
	return o.SessionTTL
}
