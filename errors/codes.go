package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Pipeline errors
const (
	// ErrCodeDecode indicates the audio payload could not be decoded.
	ErrCodeDecode ErrorCode = "DECODE_ERROR"
	// ErrCodeExtraction indicates degenerate or malformed PCM.
	ErrCodeExtraction ErrorCode = "EXTRACTION_FAILURE"
	// ErrCodeModelUnavailable indicates no trained classifier is loaded.
	ErrCodeModelUnavailable ErrorCode = "MODEL_UNAVAILABLE"
	// ErrCodeTranscriptionUnavailable indicates speech-to-text could not run.
	ErrCodeTranscriptionUnavailable ErrorCode = "TRANSCRIPTION_UNAVAILABLE"
	// ErrCodeInternalScoring indicates a classifier input-shape mismatch or scorer fault.
	ErrCodeInternalScoring ErrorCode = "INTERNAL_SCORING_ERROR"
	// ErrCodeUnsupportedMedia indicates the upload content type is not accepted.
	ErrCodeUnsupportedMedia ErrorCode = "UNSUPPORTED_MEDIA_TYPE"
)

// Connection/Availability errors (retryable)
const (
	ErrCodeServiceUnavailable ErrorCode = "SERVICE_UNAVAILABLE"
	ErrCodeTimeout            ErrorCode = "TIMEOUT"
	ErrCodeRateLimited        ErrorCode = "RATE_LIMITED"
)

// Resource and validation errors
const (
	ErrCodeNotFound      ErrorCode = "NOT_FOUND"
	ErrCodeInvalidInput  ErrorCode = "INVALID_INPUT"
	ErrCodeMissingField  ErrorCode = "MISSING_FIELD"
	ErrCodeInvalidFormat ErrorCode = "INVALID_FORMAT"
	ErrCodeTooLarge      ErrorCode = "PAYLOAD_TOO_LARGE"
)

// Internal errors
const (
	ErrCodeInternal        ErrorCode = "INTERNAL_ERROR"
	ErrCodeExternalService ErrorCode = "EXTERNAL_SERVICE_ERROR"
)

var retryableCodes = map[ErrorCode]bool{
	ErrCodeServiceUnavailable:       true,
	ErrCodeTimeout:                  true,
	ErrCodeRateLimited:              true,
	ErrCodeExternalService:          true,
	ErrCodeTranscriptionUnavailable: true,
}

var terminalCodes = map[ErrorCode]bool{
	ErrCodeDecode:          true,
	ErrCodeExtraction:      true,
	ErrCodeInternalScoring: true,
	ErrCodeInternal:        true,
}

// IsRetryableCode returns true if the error code indicates a retryable error.
func IsRetryableCode(code ErrorCode) bool {
	return retryableCodes[code]
}

// IsTerminal reports whether a pipeline failure with this code ends the request.
// Degraded-mode codes such as MODEL_UNAVAILABLE are not terminal.
func IsTerminal(code ErrorCode) bool {
	return terminalCodes[code]
}
