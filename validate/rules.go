package validate

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

// shape backs the rules that are plain format checks (email, url).
var shape = validator.New()

// NonEmpty requires a string with visible content.
func NonEmpty(v string) string {
	if strings.TrimSpace(v) == "" {
		return " must be a non-empty string"
	}
	return ""
}

// Email requires an email-shaped string. Callers normalize case before
// validating; the rule itself only checks shape.
func Email(v string) string {
	if strings.TrimSpace(v) == "" {
		return " must be a non-empty string"
	}
	if err := shape.Var(v, "email"); err != nil {
		return " must be a valid email address"
	}
	return ""
}

// Password requires at least 8 characters with at least one letter and one
// digit. Checks run in order; only the first failure is reported.
func Password(v string) string {
	if v == "" {
		return " must be a non-empty string"
	}
	if len(v) < 8 {
		return " must be at least 8 characters long"
	}
	var letter, digit bool
	for _, r := range v {
		switch {
		case unicode.IsLetter(r):
			letter = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	if !letter {
		return " must contain at least one letter"
	}
	if !digit {
		return " must contain at least one digit"
	}
	return ""
}

// IntBetween requires a number within an inclusive range, e.g. a donation
// amount of 1-10000 or a page size of 1-20.
func IntBetween(n, min, max int) string {
	if n < min || n > max {
		return fmt.Sprintf(" must be a number between %d and %d", min, max)
	}
	return ""
}

// Positive requires a number of at least 1.
func Positive(n int) string {
	if n < 1 {
		return " must be a positive number"
	}
	return ""
}

// SortDirection requires "asc" or "desc".
func SortDirection(v string) string {
	if v != "asc" && v != "desc" {
		return ` must be "asc" or "desc"`
	}
	return ""
}

// OneOf requires membership in an enumerated set.
func OneOf(v string, allowed []string) string {
	for _, a := range allowed {
		if v == a {
			return ""
		}
	}
	return fmt.Sprintf(" must be one of %s", strings.Join(allowed, ", "))
}

// ImageURL requires a well-formed URL.
func ImageURL(v string) string {
	if strings.TrimSpace(v) == "" {
		return " must be a non-empty string"
	}
	if err := shape.Var(v, "url"); err != nil {
		return " must be a well-formed URL"
	}
	return ""
}

// ImageURLs requires a non-empty array of well-formed URLs.
func ImageURLs(vs []string) string {
	if len(vs) == 0 {
		return " must be a non-empty array"
	}
	for _, v := range vs {
		if ImageURL(v) != "" {
			return " must contain only well-formed URLs"
		}
	}
	return ""
}

// Optional applies a rule only when the value is present. Absent optional
// fields always pass.
func Optional(v string, rule func(string) string) string {
	if v == "" {
		return ""
	}
	return rule(v)
}
