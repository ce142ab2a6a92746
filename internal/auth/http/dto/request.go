// Package dto provides data transfer objects for authentication HTTP handling.
package dto

import (
	validation "github.com/jellydator/validation"

	customValidation "github.com/vttbridge/relay/internal/validation"
)

// ValidateCookieRequest carries the session credential to verify. The raw
// value is exchanged upstream and then discarded; it is never logged or stored.
type ValidateCookieRequest struct {
	CobaltCookie string `json:"cobaltCookie" binding:"required"`
}

// Validate checks if the validate cookie request is valid.
func (r *ValidateCookieRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.CobaltCookie,
			validation.Required,
			customValidation.NotBlank,
			validation.Length(1, 1000),
		),
	)
}
