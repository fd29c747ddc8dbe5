package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type innerSection struct {
	Title string `json:"title" validate:"notblank"`
}

type sampleRequest struct {
	Language string       `json:"language" validate:"notblank"`
	Hero     innerSection `json:"hero"`
	Count    int          `json:"count" validate:"gte=0"`
}

func TestFieldErrorsUsesJSONPathsAndMessages(t *testing.T) {
	v := NewValidator()

	errs := v.FieldErrors(sampleRequest{Language: "  ", Count: -1}, map[string]string{
		"language":   "Language is required",
		"hero.title": "Hero title is required",
	})

	require.Len(t, errs, 3)
	assert.Equal(t, ValidationError{Field: "language", Message: "Language is required", Code: CodeRequired}, errs[0])
	assert.Equal(t, ValidationError{Field: "hero.title", Message: "Hero title is required", Code: CodeRequired}, errs[1])
	assert.Equal(t, "count", errs[2].Field)
	assert.Equal(t, CodeInvalid, errs[2].Code)
}

func TestFieldErrorsNoneWhenValid(t *testing.T) {
	v := NewValidator()

	errs := v.FieldErrors(sampleRequest{Language: "en", Hero: innerSection{Title: "Learn"}}, nil)

	assert.Empty(t, errs)
}

func TestValidateEmail(t *testing.T) {
	valid := []string{"info@example.com", "a@b.co", "first.last+tag@sub.example.org"}
	invalid := []string{"", "plain", "no-at.example.com", "a@b", "a b@example.com", "a@@example.com", "  "}

	for _, e := range valid {
		assert.True(t, ValidateEmail(e), e)
	}
	for _, e := range invalid {
		assert.False(t, ValidateEmail(e), e)
	}
}

func TestSanitizeString(t *testing.T) {
	assert.Equal(t, "hello", SanitizeString("  hel\x00lo \n"))
	assert.True(t, IsBlank(" \t"))
	assert.False(t, IsBlank(" x "))
}
