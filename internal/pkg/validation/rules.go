package validation

import (
	"regexp"
	"unicode"
	"unicode/utf8"
)

// Validation rule patterns
var (
	EmailPattern = `^[a-z0-9._%+\-]+@[a-z0-9.\-]+\.[a-z]{2,}$`

	// Usernames are lowercase handles used in profile URLs
	UsernamePattern = `^[a-z0-9_]{3,30}$`

	PasswordMinLength = 8

	NameMinLength = 2
	NameMaxLength = 100

	DescriptionMaxLength = 20000
)

// CompiledPatterns caches compiled regex patterns
var CompiledPatterns = struct {
	Email    *regexp.Regexp
	Username *regexp.Regexp
}{
	Email:    regexp.MustCompile(EmailPattern),
	Username: regexp.MustCompile(UsernamePattern),
}

// StringValidation is a small builder for one string field
type StringValidation struct {
	Value    string
	MinLen   int
	MaxLen   int
	Required bool
	Pattern  *regexp.Regexp
}

// NewStringValidation creates a new string validation
func NewStringValidation(value string) *StringValidation {
	return &StringValidation{
		Value:    value,
		Required: true,
	}
}

// WithMinLength sets minimum length in runes
func (v *StringValidation) WithMinLength(min int) *StringValidation {
	v.MinLen = min
	return v
}

// WithMaxLength sets maximum length in runes
func (v *StringValidation) WithMaxLength(max int) *StringValidation {
	v.MaxLen = max
	return v
}

// WithPattern sets regex pattern
func (v *StringValidation) WithPattern(pattern *regexp.Regexp) *StringValidation {
	v.Pattern = pattern
	return v
}

// WithRequired sets if field is required
func (v *StringValidation) WithRequired(required bool) *StringValidation {
	v.Required = required
	return v
}

// Validate performs validation
func (v *StringValidation) Validate() bool {
	if v.Value == "" {
		return !v.Required
	}

	n := utf8.RuneCountInString(v.Value)
	if v.MinLen > 0 && n < v.MinLen {
		return false
	}
	if v.MaxLen > 0 && n > v.MaxLen {
		return false
	}

	if v.Pattern != nil && !v.Pattern.MatchString(v.Value) {
		return false
	}

	return true
}

// IsValidUsername reports whether s is an acceptable username
func IsValidUsername(s string) bool {
	return NewStringValidation(s).WithPattern(CompiledPatterns.Username).Validate()
}

// IsValidEmail reports whether s looks like a lowercase email address
func IsValidEmail(s string) bool {
	return NewStringValidation(s).WithPattern(CompiledPatterns.Email).Validate()
}

// IsStrongPassword requires the minimum length plus at least one letter and one digit
func IsStrongPassword(s string) bool {
	if !NewStringValidation(s).WithMinLength(PasswordMinLength).Validate() {
		return false
	}
	var letter, digit bool
	for _, r := range s {
		switch {
		case unicode.IsLetter(r):
			letter = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	return letter && digit
}
