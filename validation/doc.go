// Package validation checks request payloads before they reach the
// assessment pipeline.
//
// Struct tag validation uses go-playground/validator with two extra tags:
// target_word (letters, spaces, hyphens and apostrophes, at most 64 runes)
// and audio_mime (a content type from the accepted audio allow list).
//
//	type AssessRequest struct {
//	    Audio  string `json:"audio" validate:"required,base64"`
//	    Target string `json:"target_word" validate:"required,target_word"`
//	}
//	err := validation.Validate(req)
//
// Programmatic checks collect field errors the same way:
//
//	v := validation.New()
//	v.Required("target_word", target).OneOf("strategy", s, strategies)
//	err := v.Validate()
package validation
