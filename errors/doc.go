// Package errors provides the structured error type shared by every stage of
// the assessment pipeline. Each AppError carries a machine-readable code, an
// HTTP status and a retryable flag, and serializes to an RFC 7807 style body.
//
// Pipeline failures are split in two groups. Terminal codes (DECODE_ERROR,
// EXTRACTION_FAILURE, INTERNAL_SCORING_ERROR) end a request with a zero score.
// Degraded codes (MODEL_UNAVAILABLE, TRANSCRIPTION_UNAVAILABLE) route the
// request to a fallback branch and never fail it.
package errors
