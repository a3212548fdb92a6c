package validation

import (
	"regexp"
	"time"
	"unicode"
)

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// companyIDRe: unified business number, exactly 8 digits.
var companyIDRe = regexp.MustCompile(`^\d{8}$`)

// identifierRe: national ID (letter + 9 digits) or unified business
// number (8 digits) for shareholders.
var identifierRe = regexp.MustCompile(`^([A-Z]\d{9}|\d{8})$`)

func IsValidEmail(email string) bool {
	return emailRe.MatchString(email)
}

// IsValidCompanyID checks the 8-digit unified business number format.
func IsValidCompanyID(id string) bool {
	return companyIDRe.MatchString(id)
}

// IsValidIdentifier checks a shareholder identifier: national ID for
// persons, unified business number for entities.
func IsValidIdentifier(id string) bool {
	return identifierRe.MatchString(id)
}

// ParseDate parses an ISO date (2006-01-02). Dates are validated here at
// the boundary; services assume pre-validated values.
func ParseDate(s string) (time.Time, bool) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// IsValidPassword requires at least 8 characters with a letter, a digit
// and a special character.
func IsValidPassword(password string) bool {
	if len(password) < 8 {
		return false
	}
	hasLetter, hasDigit, hasSpecial := false, false, false
	for _, r := range password {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			hasSpecial = true
		}
	}
	return hasLetter && hasDigit && hasSpecial
}
