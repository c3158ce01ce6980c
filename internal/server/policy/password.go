// Package policy holds the structural rules a candidate password must pass
// before it is hashed and stored.
package policy

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/dmitrijs2005/thingful/internal/common"
)

const (
	MinPasswordLength = 8
	MaxPasswordLength = 72

	// MaxPasswordBytes is the most bcrypt reads; longer input would be
	// silently truncated.
	MaxPasswordBytes = 72
)

// SpecialCharacters is the set a password must draw at least one character from.
const SpecialCharacters = "!@#$%^&*"

// Validate checks password against the rules in order and returns the first
// violation, or nil. Length is counted in characters; a password that fits in
// 72 characters but not in 72 bytes is reported as too long as well.
func Validate(password string) error {
	n := utf8.RuneCountInString(password)

	if n < MinPasswordLength {
		return common.ErrPasswordTooShort
	}
	if n > MaxPasswordLength || len(password) > MaxPasswordBytes {
		return common.ErrPasswordTooLong
	}

	first, _ := utf8.DecodeRuneInString(password)
	last, _ := utf8.DecodeLastRuneInString(password)
	if unicode.IsSpace(first) || unicode.IsSpace(last) {
		return common.ErrPasswordSpaces
	}

	if !isComplex(password) {
		return common.ErrPasswordComplexity
	}

	return nil
}

// isComplex requires one each of A-Z, a-z, 0-9 and SpecialCharacters.
// Letters and digits outside ASCII count toward none of the classes.
func isComplex(password string) bool {
	var upper, lower, digit, special bool
	for _, r := range password {
		switch {
		case 'A' <= r && r <= 'Z':
			upper = true
		case 'a' <= r && r <= 'z':
			lower = true
		case '0' <= r && r <= '9':
			digit = true
		case strings.ContainsRune(SpecialCharacters, r):
			special = true
		}
	}
	return upper && lower && digit && special
}
