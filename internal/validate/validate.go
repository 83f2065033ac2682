// Package validate holds the input format checks used at the edges of the
// application. The services themselves only enforce entity invariants; these
// stricter rules are for caller-facing input.
package validate

import "regexp"

var (
	emailPattern    = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_]{3,20}$`)
	digitPattern    = regexp.MustCompile(`\d`)
	letterPattern   = regexp.MustCompile(`[a-zA-Z]`)
	phoneStrip      = regexp.MustCompile(`[\s\-\(\)\.]+`)
	digitsOnly      = regexp.MustCompile(`^[0-9]+$`)
)

// Email checks basic address shape: local part, @, dotted domain.
func Email(email string) bool {
	return emailPattern.MatchString(email)
}

// Username accepts 3-20 characters of letters, digits, and underscores.
func Username(username string) bool {
	return usernamePattern.MatchString(username)
}

// Password requires at least 8 characters including a letter and a digit.
func Password(password string) bool {
	if len(password) < 8 {
		return false
	}
	return digitPattern.MatchString(password) && letterPattern.MatchString(password)
}

// Phone strips common separators and accepts 10-15 digits.
func Phone(phone string) bool {
	cleaned := phoneStrip.ReplaceAllString(phone, "")
	return digitsOnly.MatchString(cleaned) && len(cleaned) >= 10 && len(cleaned) <= 15
}

// Input dispatches to the named validator. Unknown kinds fail closed.
func Input(value, kind string) bool {
	switch kind {
	case "email":
		return Email(value)
	case "username":
		return Username(value)
	case "password":
		return Password(value)
	case "phone":
		return Phone(value)
	default:
		return false
	}
}
