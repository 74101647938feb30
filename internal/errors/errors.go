package errors

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Sentinel errors for common failure modes.
var (
	ErrConfigurationNotSet = errors.New("configuration is not set")
	ErrInvalidProfile      = errors.New("invalid profile")
	ErrUserCancelled       = errors.New("user cancelled operation")
	ErrTimeout             = errors.New("operation timed out")
)

// ValidationError represents a field validation failure.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

// ValidationErrors is a list of field failures reported together.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	msgs := make([]string, len(e))
	for i, ve := range e {
		msgs[i] = ve.Error()
	}
	return strings.Join(msgs, "; ")
}

// Unwrap exposes ErrInvalidProfile so callers can match with errors.Is.
func (e ValidationErrors) Unwrap() error {
	return ErrInvalidProfile
}

// FromValidator converts validator failures into ValidationErrors.
// Errors of any other type are returned unchanged.
func FromValidator(err error) error {
	var valErrs validator.ValidationErrors
	if !errors.As(err, &valErrs) {
		return err
	}

	out := make(ValidationErrors, 0, len(valErrs))
	for _, ve := range valErrs {
		out = append(out, ValidationError{
			Field:   ve.Field(),
			Message: formatValidationError(ve),
		})
	}
	return out
}

// formatValidationError converts a validator.FieldError to a human-readable message.
func formatValidationError(ve validator.FieldError) string {
	switch ve.Tag() {
	case "required":
		return "required"
	case "max":
		return "must be at most " + ve.Param() + " characters"
	case "min":
		return "must be at least " + ve.Param() + " characters"
	case "url":
		return "must be a valid URL"
	case "oneof":
		return "must be one of: " + ve.Param()
	default:
		if ve.Param() != "" {
			return "failed " + ve.Tag() + "=" + ve.Param() + " validation"
		}
		return "failed " + ve.Tag() + " validation"
	}
}
