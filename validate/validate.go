// Package validate holds the field checks shared by the resource handlers.
// Every check returns a *gateway.ValidationError naming the field.
package validate

import (
	"fmt"
	"regexp"
	"slices"
	"strings"
	"unicode/utf8"

	"git.sr.ht/~relay/giftwise-backend/gateway"
)

var (
	currencyPattern = regexp.MustCompile(`^[A-Z]{3}$`)
	emailPattern    = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

// MinLength checks that value, once trimmed, has at least min characters.
func MinLength(field, value string, min int) error {
	if utf8.RuneCountInString(strings.TrimSpace(value)) < min {
		return gateway.Invalid(field, fmt.Sprintf("must be at least %d characters long", min))
	}
	return nil
}

// Currency checks for a three-letter uppercase ISO 4217 style code.
func Currency(field, value string) error {
	if !currencyPattern.MatchString(value) {
		return gateway.Invalid(field, "must be a 3-letter uppercase currency code")
	}
	return nil
}

// Email checks that value looks like an email address.
func Email(field, value string) error {
	if !emailPattern.MatchString(value) {
		return gateway.Invalid(field, "must be a valid email address")
	}
	return nil
}

// OneOf checks that value is one of allowed.
func OneOf(field, value string, allowed ...string) error {
	if !slices.Contains(allowed, value) {
		return gateway.Invalid(field, "must be one of "+strings.Join(allowed, ", "))
	}
	return nil
}

// First returns the first non-nil error, so callers stop at the first bad field.
func First(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
