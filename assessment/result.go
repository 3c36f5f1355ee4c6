package assessment

import (
	"github.com/kbukum/pronounce/errors"
	"github.com/kbukum/pronounce/scoring"
)

// Result statuses.
const (
	StatusOK       = "ok"
	StatusDegraded = "degraded"
	StatusFailed   = "failed"
)

// StageInput is reported when the request itself is invalid.
const StageInput = "input"

// Request is one assessment.
type Request struct {
	Audio       []byte
	ContentType string
	Filename    string
	TargetWord  string
	// Strategy overrides the configured scoring strategy when set.
	Strategy string
}

// Result is the outcome of one assessment. It is built once and not
// modified afterwards.
type Result struct {
	ID             string            `json:"id"`
	Score          float64           `json:"score"`
	Scale          scoring.Scale     `json:"scale"`
	Rating         string            `json:"rating"`
	Feedback       []string          `json:"feedback"`
	RecognizedWord string            `json:"recognized_word"`
	IsCorrectWord  bool              `json:"is_correct_word"`
	TargetWord     string            `json:"target_word"`
	Duration       float64           `json:"duration"`
	Energy         float64           `json:"energy"`
	Strategy       string            `json:"strategy"`
	Status         string            `json:"status"`
	Penalties      []scoring.Penalty `json:"penalties,omitempty"`
	FailedStage    string            `json:"failed_stage,omitempty"`
	ErrorCode      errors.ErrorCode  `json:"error_code,omitempty"`
	Diagnostic     string            `json:"diagnostic,omitempty"`

	err *errors.AppError
}

// Err returns the error behind a failed result, or nil.
func (r *Result) Err() *errors.AppError { return r.err }

// Failed reports whether a stage ended the request.
func (r *Result) Failed() bool { return r.Status == StatusFailed }
