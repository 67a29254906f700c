package errors

import "errors"

var (
	ErrAlreadyExists      = errors.New("already exists")
	ErrNotFound           = errors.New("not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidUsername    = errors.New("invalid username")
	ErrInvalidEmail       = errors.New("invalid email")
	ErrInvalidAmount      = errors.New("invalid amount")

	// Payment notifications.
	ErrInvalidSignature = errors.New("invalid payment signature")
	ErrMalformedPayload = errors.New("malformed payment payload")
	ErrAlreadyProcessed = errors.New("payment already processed")

	ErrInvalidResetToken = errors.New("invalid or expired reset token")
)
