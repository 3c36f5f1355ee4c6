package validation

import (
	"fmt"
	"strings"

	"github.com/kbukum/pronounce/errors"
)

const msgRequired = "is required"

// FieldError is one rejected request field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Validator checks assessment request fields in a chain and reports every
// problem at once:
//
//	err := validation.New().
//		RequiredBytes("audio", req.Audio).
//		TargetWord("target_word", req.TargetWord).
//		Validate()
type Validator struct {
	problems []FieldError
}

// New creates an empty Validator.
func New() *Validator {
	return &Validator{}
}

// check records message against field unless ok holds.
func (v *Validator) check(ok bool, field, message string) *Validator {
	if !ok {
		v.problems = append(v.problems, FieldError{Field: field, Message: message})
	}
	return v
}

// Failed reports whether any check failed.
func (v *Validator) Failed() bool { return len(v.problems) > 0 }

// Validate turns the collected problems into an AppError, or nil. A lone
// missing field maps to MISSING_FIELD; anything else is INVALID_INPUT
// with the per-field list under details.fields.
func (v *Validator) Validate() *errors.AppError {
	switch {
	case len(v.problems) == 0:
		return nil
	case len(v.problems) == 1 && v.problems[0].Message == msgRequired:
		return errors.MissingField(v.problems[0].Field)
	}

	parts := make([]string, 0, len(v.problems))
	for _, p := range v.problems {
		parts = append(parts, p.Field+": "+p.Message)
	}
	return errors.Validation(strings.Join(parts, "; ")).WithDetail("fields", v.problems)
}

// Required checks that a string is not blank.
func (v *Validator) Required(field, value string) *Validator {
	return v.check(strings.TrimSpace(value) != "", field, msgRequired)
}

// RequiredBytes checks that a payload is non-empty.
func (v *Validator) RequiredBytes(field string, value []byte) *Validator {
	return v.check(len(value) > 0, field, msgRequired)
}

// TargetWord checks that value names a word or short phrase.
func (v *Validator) TargetWord(field, value string) *Validator {
	if strings.TrimSpace(value) == "" {
		return v.check(false, field, msgRequired)
	}
	return v.check(IsTargetWord(value), field, "must be a word of letters, spaces, hyphens or apostrophes")
}

// MaxBytes checks that a payload is at most limit bytes. A limit of 0 or
// less disables the check.
func (v *Validator) MaxBytes(field string, value []byte, limit int64) *Validator {
	return v.check(limit <= 0 || int64(len(value)) <= limit, field, fmt.Sprintf("must be %d bytes or less", limit))
}

// OneOf checks that a non-empty value is among allowed.
func (v *Validator) OneOf(field, value string, allowed []string) *Validator {
	ok := value == ""
	for _, a := range allowed {
		ok = ok || value == a
	}
	return v.check(ok, field, "must be one of: "+strings.Join(allowed, ", "))
}
