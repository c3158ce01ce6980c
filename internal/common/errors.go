// Package common defines shared constants and sentinel errors used across
// client and server layers of thingful. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")
	ErrStore      = errors.New("store error")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)

// Registration rejections.
var (
	ErrPasswordTooShort   = NewRejection(KindPolicy, CodePasswordTooShort, "Password must be at least 8 characters")
	ErrPasswordTooLong    = NewRejection(KindPolicy, CodePasswordTooLong, "Password must be less than 72 characters")
	ErrPasswordSpaces     = NewRejection(KindPolicy, CodePasswordSpaces, "Password must not start or end with empty spaces")
	ErrPasswordComplexity = NewRejection(KindPolicy, CodePasswordComplexity, "Password must contain 1 uppercase, lowercase, number, and special character")
	ErrUsernameTaken      = NewRejection(KindConflict, CodeUsernameTaken, "Username already taken")
)

// Login rejections.
var (
	ErrInvalidCredentials = NewRejection(KindAuthentication, CodeInvalidCredentials, "Incorrect user name or password")
)
