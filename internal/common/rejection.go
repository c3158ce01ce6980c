package common

import (
	"errors"
	"fmt"
)

// Kind groups rejections by how a caller can recover from them.
type Kind int

const (
	KindValidation Kind = iota + 1
	KindPolicy
	KindConflict
	KindAuthentication
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "ValidationError"
	case KindPolicy:
		return "PolicyViolation"
	case KindConflict:
		return "ConflictError"
	case KindAuthentication:
		return "AuthenticationError"
	default:
		return "Unknown"
	}
}

// Stable, machine-checkable reason codes.
const (
	CodeMissingField       = "MISSING_FIELD"
	CodePasswordTooShort   = "PASSWORD_TOO_SHORT"
	CodePasswordTooLong    = "PASSWORD_TOO_LONG"
	CodePasswordSpaces     = "PASSWORD_LEADING_OR_TRAILING_SPACE"
	CodePasswordComplexity = "PASSWORD_INSUFFICIENT_COMPLEXITY"
	CodeUsernameTaken      = "USERNAME_TAKEN"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
)

// Rejection is an expected, recoverable outcome of a registration or login
// attempt. Message is shown to the caller verbatim.
type Rejection struct {
	Kind    Kind
	Code    string
	Field   string
	Message string
}

// NewRejection builds a Rejection.
func NewRejection(kind Kind, code, message string) *Rejection {
	return &Rejection{Kind: kind, Code: code, Message: message}
}

// MissingBodyField reports a required registration field absent from the request body.
func MissingBodyField(name string) *Rejection {
	return &Rejection{
		Kind:    KindValidation,
		Code:    CodeMissingField,
		Field:   name,
		Message: fmt.Sprintf("Missing '%s' in request body", name),
	}
}

// MissingRequestField reports a required login field absent from the request.
func MissingRequestField(name string) *Rejection {
	return &Rejection{
		Kind:    KindValidation,
		Code:    CodeMissingField,
		Field:   name,
		Message: fmt.Sprintf("Missing %s in request", name),
	}
}

func (r *Rejection) Error() string {
	return r.Message
}

// Is matches rejections by code and field, so fresh values built by
// MissingBodyField compare equal to each other.
func (r *Rejection) Is(target error) bool {
	t, ok := target.(*Rejection)
	if !ok {
		return false
	}
	return r.Code == t.Code && r.Field == t.Field
}

// AsRejection extracts a Rejection from an error chain.
func AsRejection(err error) (*Rejection, bool) {
	var r *Rejection
	if errors.As(err, &r) {
		return r, true
	}
	return nil, false
}
