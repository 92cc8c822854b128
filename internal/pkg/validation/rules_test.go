package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStringValidation(t *testing.T) {
	assert.False(t, NewStringValidation("").Validate())
	assert.True(t, NewStringValidation("").WithRequired(false).WithMinLength(3).Validate())
	assert.False(t, NewStringValidation("ab").WithMinLength(3).Validate())
	assert.True(t, NewStringValidation("çağ").WithMinLength(3).WithMaxLength(3).Validate())
	assert.False(t, NewStringValidation("abcd").WithMaxLength(3).Validate())
}

func TestIsValidUsername(t *testing.T) {
	cases := map[string]bool{
		"ada":                   true,
		"ada_lovelace_1815":     true,
		"ab":                    false,
		"Ada":                   false,
		"ada lovelace":          false,
		"ada-lovelace":          false,
		strings.Repeat("a", 30): true,
		strings.Repeat("a", 31): false,
	}
	for in, want := range cases {
		assert.Equal(t, want, IsValidUsername(in), in)
	}
}

func TestIsValidEmail(t *testing.T) {
	assert.True(t, IsValidEmail("ada@uni.example.edu"))
	assert.True(t, IsValidEmail("first.last+tag@campus.museum"))
	assert.False(t, IsValidEmail("ada@"))
	assert.False(t, IsValidEmail("ADA@UNI.EDU"))
}

func TestIsStrongPassword(t *testing.T) {
	assert.True(t, IsStrongPassword("password1"))
	assert.False(t, IsStrongPassword("pass1"))
	assert.False(t, IsStrongPassword("passwordonly"))
	assert.False(t, IsStrongPassword("1234567890"))
}
