package policy

import (
	"errors"
	"strings"
	"unicode/utf8"
)

var (
	ErrPasswordLength = errors.New("Password must be 8–128 characters")
	ErrPasswordWeak   = errors.New("Password is too weak")
)

// ValidatePassword is the password-strength predicate applied at
// registration: 8–128 characters, must not contain "password", and must not
// be a single repeated character.
func ValidatePassword(pw string) error {
	if n := utf8.RuneCountInString(pw); n < 8 || n > 128 {
		return ErrPasswordLength
	}
	if strings.Contains(strings.ToLower(pw), "password") {
		return ErrPasswordWeak
	}
	if allSameRune(pw) {
		return ErrPasswordWeak
	}
	return nil
}

func allSameRune(s string) bool {
	var first rune
	for i, r := range s {
		if i == 0 {
			first = r
			continue
		}
		if r != first {
			return false
		}
	}
	return true
}
