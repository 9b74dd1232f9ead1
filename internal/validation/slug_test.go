package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateGroupSlug(t *testing.T) {
	valid := []string{"go-news", "cats", "board-42", "a1b"}
	for _, slug := range valid {
		assert.NoError(t, ValidateGroupSlug(slug), slug)
	}

	invalid := []string{
		"ab",            // too short
		"Has-Caps",      // uppercase
		"with space",    // space
		"-leading",      // leading hyphen
		"trailing-",     // trailing hyphen
		"under_score",   // underscore
		"create",        // reserved
		"profile",       // reserved
		"admin",         // reserved
	}
	for _, slug := range invalid {
		assert.Error(t, ValidateGroupSlug(slug), slug)
	}
}

func TestValidateUsername(t *testing.T) {
	assert.NoError(t, ValidateUsername("leo_tolstoy"))
	assert.NoError(t, ValidateUsername("anna-k"))
	assert.Error(t, ValidateUsername("ab"))
	assert.Error(t, ValidateUsername("_hidden"))
	assert.Error(t, ValidateUsername("spaced name"))
}

func TestValidateEmail(t *testing.T) {
	assert.NoError(t, ValidateEmail("reader@example.com"))
	assert.Error(t, ValidateEmail("not-an-email"))
}
