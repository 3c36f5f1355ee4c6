package errors

import (
	"fmt"
	"net/http"
)

// AppError is the unified application error type.
type AppError struct {
	// Code is a machine-readable error code.
	Code ErrorCode `json:"code"`
	// Message is a human-readable error message.
	Message string `json:"message"`
	// Retryable indicates if the operation can be retried.
	Retryable bool `json:"retryable"`
	// HTTPStatus is the recommended HTTP status code for this error.
	HTTPStatus int `json:"-"`
	// Details contains additional context for the error.
	Details map[string]any `json:"details,omitempty"`
	// Cause is the underlying error that caused this error.
	Cause error `json:"-"`
}

// Error returns the string representation of the error.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause of the error.
func (e *AppError) Unwrap() error { return e.Cause }

// IsRetryable reports whether repeating the failed call may succeed.
func (e *AppError) IsRetryable() bool { return e.Retryable }

// WithCause sets the underlying cause of the error and returns the receiver.
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// WithDetail sets a single detail key-value pair and returns the receiver.
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// New creates a new AppError with automatic retryable detection.
func New(code ErrorCode, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Retryable:  IsRetryableCode(code),
	}
}

// --- Pipeline constructors ---

// Decode creates an AppError for audio that could not be decoded.
func Decode(format string, cause error) *AppError {
	msg := "Audio decoding failed."
	if cause != nil {
		msg = fmt.Sprintf("Audio decoding failed: %v", cause)
	}
	e := &AppError{
		Code: ErrCodeDecode, Message: msg,
		HTTPStatus: http.StatusUnprocessableEntity, Cause: cause,
	}
	if format != "" {
		e.WithDetail("format", format)
	}
	return e
}

// Extraction creates an AppError for PCM the feature extractor cannot analyze.
func Extraction(reason string) *AppError {
	return &AppError{
		Code: ErrCodeExtraction, Message: fmt.Sprintf("Could not extract features from audio: %s", reason),
		HTTPStatus: http.StatusUnprocessableEntity,
	}
}

// ModelUnavailable creates an AppError for the placeholder mode without a trained model.
func ModelUnavailable(path string) *AppError {
	return &AppError{
		Code: ErrCodeModelUnavailable, Message: "Pronunciation model is not trained or loaded.",
		HTTPStatus: http.StatusServiceUnavailable,
		Details:    map[string]any{"path": path},
	}
}

// TranscriptionUnavailable creates an AppError for a speech-to-text backend that could not answer.
func TranscriptionUnavailable(provider string, cause error) *AppError {
	return &AppError{
		Code: ErrCodeTranscriptionUnavailable, Message: fmt.Sprintf("Speech recognition via %s is unavailable.", provider),
		HTTPStatus: http.StatusServiceUnavailable, Retryable: true,
		Details: map[string]any{"provider": provider}, Cause: cause,
	}
}

// InternalScoring creates an AppError for a scorer fault such as a feature shape mismatch.
func InternalScoring(reason string) *AppError {
	return &AppError{
		Code: ErrCodeInternalScoring, Message: fmt.Sprintf("Scoring failed: %s", reason),
		HTTPStatus: http.StatusInternalServerError,
	}
}

// UnsupportedMedia creates an AppError for an upload whose content type is not accepted.
func UnsupportedMedia(contentType string, allowed []string) *AppError {
	return &AppError{
		Code:       ErrCodeUnsupportedMedia,
		Message:    fmt.Sprintf("Invalid file type: %s. Expected one of %v.", contentType, allowed),
		HTTPStatus: http.StatusBadRequest,
		Details:    map[string]any{"content_type": contentType, "allowed": allowed},
	}
}

// --- Common constructors ---

// ServiceUnavailable creates a new AppError for a service that is temporarily unavailable.
func ServiceUnavailable(service string) *AppError {
	return &AppError{
		Code: ErrCodeServiceUnavailable, Message: fmt.Sprintf("The %s is temporarily unavailable. Please try again.", service),
		HTTPStatus: http.StatusServiceUnavailable, Retryable: true,
		Details: map[string]any{"service": service},
	}
}

// Timeout creates a new AppError for an operation that timed out.
func Timeout(operation string) *AppError {
	return &AppError{
		Code: ErrCodeTimeout, Message: "The request took too long. Please try again.",
		HTTPStatus: http.StatusGatewayTimeout, Retryable: true,
		Details: map[string]any{"operation": operation},
	}
}

// RateLimited creates a new AppError for a client over its request budget.
func RateLimited(limit int) *AppError {
	return &AppError{
		Code: ErrCodeRateLimited, Message: "Too many requests. Please slow down.",
		HTTPStatus: http.StatusTooManyRequests, Retryable: true,
		Details: map[string]any{"requests_per_minute": limit},
	}
}

// TooLarge creates a new AppError for a request body over the size limit.
func TooLarge(limit int64) *AppError {
	return &AppError{
		Code: ErrCodeTooLarge, Message: "The uploaded audio is too large.",
		HTTPStatus: http.StatusRequestEntityTooLarge,
		Details:    map[string]any{"limit_bytes": limit},
	}
}

// NotFound creates a new AppError for a resource that was not found.
func NotFound(resource, id string) *AppError {
	details := map[string]any{"resource": resource}
	if id != "" {
		details["id"] = id
	}
	return &AppError{
		Code: ErrCodeNotFound, Message: fmt.Sprintf("The requested %s was not found.", resource),
		HTTPStatus: http.StatusNotFound, Details: details,
	}
}

// InvalidInput creates a new AppError for invalid input.
func InvalidInput(field, reason string) *AppError {
	details := make(map[string]any)
	if field != "" {
		details["field"] = field
	}
	return &AppError{
		Code: ErrCodeInvalidInput, Message: fmt.Sprintf("Invalid input: %s", reason),
		HTTPStatus: http.StatusBadRequest, Details: details,
	}
}

// Validation creates a new AppError for validation errors.
func Validation(message string) *AppError {
	return &AppError{
		Code: ErrCodeInvalidInput, Message: message,
		HTTPStatus: http.StatusBadRequest,
	}
}

// MissingField creates a new AppError for a missing required field.
func MissingField(field string) *AppError {
	return &AppError{
		Code: ErrCodeMissingField, Message: fmt.Sprintf("Missing required field: %s", field),
		HTTPStatus: http.StatusBadRequest,
		Details:    map[string]any{"field": field},
	}
}

// InvalidFormat creates a new AppError for an invalid field format.
func InvalidFormat(field, expectedFormat string) *AppError {
	return &AppError{
		Code: ErrCodeInvalidFormat, Message: fmt.Sprintf("Invalid format for %s. Expected: %s", field, expectedFormat),
		HTTPStatus: http.StatusBadRequest,
		Details:    map[string]any{"field": field, "expected_format": expectedFormat},
	}
}

// Internal creates a new AppError for an internal server error.
func Internal(cause error) *AppError {
	return &AppError{
		Code: ErrCodeInternal, Message: "An unexpected error occurred. Please try again or contact support.",
		HTTPStatus: http.StatusInternalServerError, Cause: cause,
	}
}

// ExternalServiceError creates a new AppError for an error from an external service.
func ExternalServiceError(service string, cause error) *AppError {
	return &AppError{
		Code: ErrCodeExternalService, Message: fmt.Sprintf("The %s service encountered an error. Please try again.", service),
		HTTPStatus: http.StatusBadGateway, Retryable: true,
		Details: map[string]any{"service": service}, Cause: cause,
	}
}
