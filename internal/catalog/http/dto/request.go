// Package dto provides data transfer objects for catalog HTTP handling.
package dto

import (
	validation "github.com/jellydator/validation"

	customValidation "github.com/vttbridge/relay/internal/validation"
)

// ContentRequest carries the parameters for a content fetch. The credential is
// forwarded upstream for token exchange and never logged or stored raw.
type ContentRequest struct {
	CobaltCookie  string `json:"cobaltCookie" binding:"required"`
	BustCache     bool   `json:"bustCache"`
	SourceBookIDs []int  `json:"sourceBookIds"`
}

// Validate checks if the content request is valid.
func (r *ContentRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.CobaltCookie,
			validation.Required,
			customValidation.NotBlank,
			validation.Length(1, 1000),
		),
		validation.Field(&r.SourceBookIDs,
			validation.Each(validation.Min(1)),
		),
	)
}

// CharacterRequest carries the credential for an authenticated character read.
type CharacterRequest struct {
	CobaltCookie string `json:"cobaltCookie" binding:"required"`
}

// Validate checks if the character request is valid.
func (r *CharacterRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.CobaltCookie,
			validation.Required,
			customValidation.NotBlank,
			validation.Length(1, 1000),
		),
	)
}
