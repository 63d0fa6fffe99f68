package validation

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/yigit/erp-migrator/internal/pkg/apperrors"
)

// Validation rule patterns
var (
	// Aadhaar number in its stored 4-4-4 form
	AadhaarPattern = `^\d{4}-\d{4}-\d{4}$`
)

// CompiledPatterns caches compiled regex patterns
var CompiledPatterns = struct {
	Aadhaar *regexp.Regexp
}{
	Aadhaar: regexp.MustCompile(AadhaarPattern),
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("aadhaar", func(fl validator.FieldLevel) bool {
		return CompiledPatterns.Aadhaar.MatchString(fl.Field().String())
	})
	return v
}

// Validate checks v against its `validate` struct tags. A nil return means the
// value is valid; otherwise the error wraps apperrors.ErrValidationFailed and
// carries one detail entry per failing field.
func Validate(v interface{}) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("%w: %v", apperrors.ErrValidationFailed, err)
	}

	details := make(map[string]interface{}, len(fieldErrs))
	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msg := FormatFieldError(fe)
		details[fe.Field()] = msg
		msgs = append(msgs, msg)
	}
	return apperrors.NewValidationError("validation failed: "+strings.Join(msgs, "; "), details)
}

// FormatFieldError creates a human-readable validation error message
func FormatFieldError(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return e.Field() + " is required"
	case "email":
		return e.Field() + " must be a valid email address"
	case "oneof":
		return e.Field() + " must be one of [" + e.Param() + "]"
	case "min":
		return e.Field() + " must be at least " + e.Param()
	case "max":
		return e.Field() + " must be at most " + e.Param()
	case "gt":
		return e.Field() + " must be greater than " + e.Param()
	case "aadhaar":
		return e.Field() + " must be formatted as dddd-dddd-dddd"
	default:
		return e.Field() + " is invalid"
	}
}
