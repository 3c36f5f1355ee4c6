package validation

import (
	"reflect"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"

	"github.com/kbukum/pronounce/errors"
)

// MaxTargetWordRunes bounds the target word length.
const MaxTargetWordRunes = 64

// AudioContentTypes is the upload allow list shared by the HTTP handlers.
var AudioContentTypes = []string{"audio/wav", "audio/mp3", "audio/mpeg", "audio/m4a"}

var (
	validate *validator.Validate
	once     sync.Once
)

// getValidator returns the singleton validator instance.
func getValidator() *validator.Validate {
	once.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())

		// Use json tag names for field names in error messages
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return toSnakeCase(fld.Name)
			}
			return name
		})
		_ = validate.RegisterValidation("target_word", func(fl validator.FieldLevel) bool {
			return IsTargetWord(fl.Field().String())
		})
		_ = validate.RegisterValidation("audio_mime", func(fl validator.FieldLevel) bool {
			return IsAudioContentType(fl.Field().String())
		})
	})
	return validate
}

// Validate validates a struct using struct tags.
func Validate(s any) error {
	v := getValidator()
	err := v.Struct(s)
	if err == nil {
		return nil
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return errors.Validation("validation failed")
	}

	collected := New()
	for _, e := range validationErrors {
		collected.check(false, e.Field(), formatValidationError(e))
	}
	return collected.Validate()
}

// IsTargetWord reports whether s is a plausible word or short phrase to assess.
func IsTargetWord(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" || utf8.RuneCountInString(s) > MaxTargetWordRunes {
		return false
	}
	for _, r := range s {
		if !unicode.IsLetter(r) && r != ' ' && r != '-' && r != '\'' {
			return false
		}
	}
	return true
}

// IsAudioContentType reports whether a content type is on the upload allow list.
// Parameters such as "; codecs=..." are ignored.
func IsAudioContentType(ct string) bool {
	base := strings.ToLower(strings.TrimSpace(strings.SplitN(ct, ";", 2)[0]))
	for _, a := range AudioContentTypes {
		if base == a {
			return true
		}
	}
	return false
}

// formatValidationError creates a human-readable error message.
func formatValidationError(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "is required"
	case "base64":
		return "must be base64 encoded"
	case "target_word":
		return "must be a word of letters, spaces, hyphens or apostrophes"
	case "audio_mime":
		return "must be one of: " + strings.Join(AudioContentTypes, ", ")
	case "min":
		return "must be at least " + e.Param()
	case "max":
		return "must be at most " + e.Param()
	case "oneof":
		return "must be one of: " + e.Param()
	default:
		return "is invalid"
	}
}

// toSnakeCase converts a field name to snake_case.
func toSnakeCase(s string) string {
	var result strings.Builder
	for i, r := range s {
		if i > 0 && unicode.IsUpper(r) {
			result.WriteRune('_')
		}
		result.WriteRune(unicode.ToLower(r))
	}
	return result.String()
}
