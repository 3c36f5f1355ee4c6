package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"strings"
	"testing"
)

func TestAppError_New_Retryable(t *testing.T) {
	tests := []struct {
		code      ErrorCode
		retryable bool
	}{
		{ErrCodeTimeout, true},
		{ErrCodeServiceUnavailable, true},
		{ErrCodeTranscriptionUnavailable, true},
		{ErrCodeDecode, false},
		{ErrCodeNotFound, false},
		{ErrCodeInternal, false},
	}
	for _, tc := range tests {
		t.Run(string(tc.code), func(t *testing.T) {
			err := New(tc.code, "msg", http.StatusTeapot)
			if err.Retryable != tc.retryable {
				t.Errorf("retryable = %v, want %v", err.Retryable, tc.retryable)
			}
			if err.HTTPStatus != http.StatusTeapot {
				t.Errorf("expected status %d, got %d", http.StatusTeapot, err.HTTPStatus)
			}
		})
	}
}

func TestIsTerminal(t *testing.T) {
	terminal := []ErrorCode{ErrCodeDecode, ErrCodeExtraction, ErrCodeInternalScoring, ErrCodeInternal}
	for _, c := range terminal {
		if !IsTerminal(c) {
			t.Errorf("%s should be terminal", c)
		}
	}
	degraded := []ErrorCode{ErrCodeModelUnavailable, ErrCodeTranscriptionUnavailable, ErrCodeTimeout}
	for _, c := range degraded {
		if IsTerminal(c) {
			t.Errorf("%s should not be terminal", c)
		}
	}
}

func TestDecode(t *testing.T) {
	cause := fmt.Errorf("bad RIFF header")
	err := Decode("wav", cause)
	if err.Code != ErrCodeDecode {
		t.Errorf("expected DECODE_ERROR, got %s", err.Code)
	}
	if err.HTTPStatus != http.StatusUnprocessableEntity {
		t.Errorf("expected 422, got %d", err.HTTPStatus)
	}
	if err.Details["format"] != "wav" {
		t.Errorf("expected format=wav, got %v", err.Details["format"])
	}
	if !stderrors.Is(err, cause) {
		t.Error("expected errors.Is to find the cause")
	}
	if !strings.Contains(err.Message, "bad RIFF header") {
		t.Errorf("message should mention the cause, got %q", err.Message)
	}
}

func TestDecode_NoFormat(t *testing.T) {
	err := Decode("", nil)
	if _, ok := err.Details["format"]; ok {
		t.Error("expected no format detail")
	}
	if err.Message != "Audio decoding failed." {
		t.Errorf("unexpected message %q", err.Message)
	}
}

func TestPipelineConstructors(t *testing.T) {
	tests := []struct {
		name   string
		err    *AppError
		code   ErrorCode
		status int
	}{
		{"extraction", Extraction("empty buffer"), ErrCodeExtraction, http.StatusUnprocessableEntity},
		{"model unavailable", ModelUnavailable("models/m.msgpack"), ErrCodeModelUnavailable, http.StatusServiceUnavailable},
		{"transcription unavailable", TranscriptionUnavailable("whisper", nil), ErrCodeTranscriptionUnavailable, http.StatusServiceUnavailable},
		{"internal scoring", InternalScoring("expected 13 features, got 12"), ErrCodeInternalScoring, http.StatusInternalServerError},
		{"unsupported media", UnsupportedMedia("text/plain", []string{"audio/wav"}), ErrCodeUnsupportedMedia, http.StatusBadRequest},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if tc.err.Code != tc.code {
				t.Errorf("expected %s, got %s", tc.code, tc.err.Code)
			}
			if tc.err.HTTPStatus != tc.status {
				t.Errorf("expected %d, got %d", tc.status, tc.err.HTTPStatus)
			}
		})
	}
}

func TestAppError_Error(t *testing.T) {
	err := NotFound("word", "mauve")
	if got := err.Error(); got != "NOT_FOUND: The requested word was not found." {
		t.Errorf("unexpected %q", got)
	}
	wrapped := Internal(fmt.Errorf("boom"))
	if !strings.Contains(wrapped.Error(), "cause: boom") {
		t.Errorf("expected cause in %q", wrapped.Error())
	}
}

func TestToResponse(t *testing.T) {
	err := InvalidInput("target_word", "must not be empty")
	resp := err.ToResponse()
	if resp.Error.Code != ErrCodeInvalidInput {
		t.Errorf("expected INVALID_INPUT, got %s", resp.Error.Code)
	}
	if resp.Error.Details["field"] != "target_word" {
		t.Errorf("expected field detail, got %v", resp.Error.Details)
	}
}

func TestCodeOf(t *testing.T) {
	if CodeOf(nil) != "" {
		t.Error("nil error should have no code")
	}
	if CodeOf(fmt.Errorf("plain")) != ErrCodeInternal {
		t.Error("foreign errors map to INTERNAL_ERROR")
	}
	wrapped := fmt.Errorf("stage decode: %w", Decode("mp3", nil))
	if CodeOf(wrapped) != ErrCodeDecode {
		t.Errorf("expected DECODE_ERROR through wrapping, got %s", CodeOf(wrapped))
	}
	if _, ok := AsAppError(wrapped); !ok {
		t.Error("AsAppError should unwrap")
	}
}
