// Package validation provides input validation for settings, requests and
// chunk batches.
//
// It supports both struct tag validation (using the validator library) and
// programmatic validation with error collection. Both report failures as an
// *errors.AppError with code INVALID_INPUT and per-field details.
//
// # Struct Tag Validation
//
//	type Request struct {
//	    APIKey   string `json:"api_key" validate:"required"`
//	    Language string `json:"language" validate:"omitempty,langcode"`
//	}
//	err := validation.Validate(req)
//
// # Programmatic Validation
//
//	v := validation.New()
//	v.Required("api_key", key).Prefix("api_key", key, "sk-")
//	err := v.Validate()
package validation
