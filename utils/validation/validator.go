package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

var (
	// EmailRegex is the deliberately loose email check the homepage editor has always used
	EmailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

// Error codes reported per field
const (
	CodeRequired      = "REQUIRED"
	CodeInvalidFormat = "INVALID_FORMAT"
	CodeInvalid       = "INVALID"
)

// ValidationError describes one failing field
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

// Validator wraps the go-playground validator
type Validator struct {
	validate *validator.Validate
}

// NewValidator creates a new validator instance. Field names in reported errors
// follow the json tags, and "notblank" is available for trimmed-required checks.
func NewValidator() *Validator {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})
	_ = v.RegisterValidation("notblank", validators.NotBlank)
	_ = v.RegisterValidation("simple_email", func(fl validator.FieldLevel) bool {
		return ValidateEmail(fl.Field().String())
	})

	return &Validator{validate: v}
}

// FieldErrors validates s and converts every failure into a ValidationError.
// messages maps a dotted json path (e.g. "hero.title") to the message for that field.
func (v *Validator) FieldErrors(s interface{}, messages map[string]string) []ValidationError {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return []ValidationError{{Field: "", Message: err.Error(), Code: CodeInvalid}}
	}

	out := make([]ValidationError, 0, len(validationErrs))
	for _, e := range validationErrs {
		field := fieldPath(e.Namespace())
		code := codeFor(e.Tag())
		msg, ok := messages[field]
		if !ok || code != CodeRequired {
			msg = defaultMessage(field, code)
		}
		out = append(out, ValidationError{Field: field, Message: msg, Code: code})
	}
	return out
}

// fieldPath drops the root struct name from a validator namespace
func fieldPath(namespace string) string {
	if i := strings.Index(namespace, "."); i >= 0 {
		return namespace[i+1:]
	}
	return namespace
}

func codeFor(tag string) string {
	switch tag {
	case "required", "notblank":
		return CodeRequired
	case "email", "simple_email":
		return CodeInvalidFormat
	default:
		return CodeInvalid
	}
}

func defaultMessage(field, code string) string {
	switch code {
	case CodeRequired:
		return fmt.Sprintf("%s is required", field)
	case CodeInvalidFormat:
		if strings.HasSuffix(field, "email") {
			return "Invalid email format"
		}
		return fmt.Sprintf("%s has an invalid format", field)
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}

// ValidateEmail checks if an email is valid
func ValidateEmail(email string) bool {
	return EmailRegex.MatchString(email)
}

// IsBlank reports whether s is empty after trimming whitespace
func IsBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// SanitizeString removes potentially dangerous characters
func SanitizeString(s string) string {
	// Remove null bytes
	s = strings.ReplaceAll(s, "\x00", "")
	// Trim whitespace
	s = strings.TrimSpace(s)
	return s
}
