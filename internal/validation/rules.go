// Package validation provides custom validation rules for the application.
package validation

import (
	"strings"

	validation "github.com/jellydator/validation"

	apperrors "github.com/vttbridge/relay/internal/errors"
)

// WrapValidationError wraps validation errors as domain ErrInvalidInput
func WrapValidationError(err error) error {
	if err == nil {
		return nil
	}
	return apperrors.Wrap(apperrors.ErrInvalidInput, err.Error())
}

// NotBlank validates that a string is not empty after trimming whitespace
var NotBlank = validation.NewStringRuleWithError(
	func(s string) bool {
		return strings.TrimSpace(s) != ""
	},
	validation.NewError("validation_not_blank", "must not be blank"),
)

// PositiveID validates that an integer identifier is greater than zero.
var PositiveID = validation.By(func(value interface{}) error {
	id, ok := value.(int)
	if !ok {
		return validation.NewError("validation_id_type", "must be an integer id")
	}
	if id <= 0 {
		return validation.NewError("validation_id_positive", "must be a positive id")
	}
	return nil
})
