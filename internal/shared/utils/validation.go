package utils

import (
	stderrors "errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"

	"github.com/carmen-hq/carmen/internal/shared/errors"
)

var (
	codePattern      = regexp.MustCompile(`^[A-Z0-9][A-Z0-9_-]*$`)
	telephonePattern = regexp.MustCompile(`^\+?[0-9][0-9\s\-()]{4,19}$`)
	emailPattern     = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

	// Free-text fields accept no markup at all.
	textPolicy = bluemonday.StrictPolicy()
)

// IsValidCode reports whether s is a well-formed entity code
// (uppercase letters, digits, underscore, hyphen; must start alphanumeric).
func IsValidCode(s string) bool {
	return codePattern.MatchString(s)
}

// IsValidTelephone reports whether s looks like a phone number.
func IsValidTelephone(s string) bool {
	return telephonePattern.MatchString(s)
}

// IsValidEmail reports whether s looks like an email address.
func IsValidEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// SanitizeText strips any markup from operator-supplied free text
// (names, descriptions) before it is stored.
func SanitizeText(s string) string {
	return strings.TrimSpace(textPolicy.Sanitize(s))
}

// TranslateBindingError converts a request binding failure into a validation
// error with field-level messages. Anything that is not a field validation
// failure (malformed JSON, wrong types) gets a generic message.
func TranslateBindingError(err error) error {
	var fieldErrors validator.ValidationErrors
	if !stderrors.As(err, &fieldErrors) {
		return errors.NewValidationError("invalid request body")
	}

	messages := make([]string, 0, len(fieldErrors))
	for _, fe := range fieldErrors {
		messages = append(messages, fieldErrorMessage(fe))
	}
	return errors.NewValidationError(strings.Join(messages, "; "))
}

func fieldErrorMessage(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "email":
		return fmt.Sprintf("%s must be a valid email address", field)
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at least %s characters long", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at most %s characters long", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}
