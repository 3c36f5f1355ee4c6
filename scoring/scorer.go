package scoring

import (
	"context"

	"github.com/kbukum/pronounce/features"
	"github.com/kbukum/pronounce/transcription"
)

// Scale is the range a Score value lives in.
type Scale string

const (
	// ScaleUnit is a probability-like value in [0,1].
	ScaleUnit Scale = "unit"
	// ScalePercent is a point score in [0,100].
	ScalePercent Scale = "percent"
)

// Status tells a usable score from a degraded one.
type Status string

const (
	StatusOK               Status = "ok"
	StatusModelUnavailable Status = "model_unavailable"
	StatusInternalError    Status = "internal_error"
)

// Verdict is the word-level judgement behind a score.
type Verdict string

const (
	// VerdictCorrect means the target word was heard (or matched acoustically).
	VerdictCorrect Verdict = "correct"
	// VerdictWrongWord means a different word was heard.
	VerdictWrongWord Verdict = "wrong_word"
	// VerdictUnverified means nothing could be heard or the backend was down.
	VerdictUnverified Verdict = "unverified"
	// VerdictMismatch means the utterance is acoustically far from the
	// reference, or the classifier rejected it with no transcript to check.
	VerdictMismatch Verdict = "mismatch"
)

// Outcome is the transcription result a scorer consumes.
type Outcome = transcription.Outcome

// Target is what the user was asked to say.
type Target struct {
	Word      string
	Reference *features.Vector
}

// Penalty records one applied deduction.
type Penalty struct {
	Rule   string `json:"rule"`
	Points int    `json:"points"`
}

// Score is the output of a Scorer.
type Score struct {
	Value       float64   `json:"value"`
	Scale       Scale     `json:"scale"`
	Status      Status    `json:"status"`
	Diagnostic  string    `json:"diagnostic,omitempty"`
	WordCorrect bool      `json:"word_correct"`
	Verdict     Verdict   `json:"verdict"`
	Penalties   []Penalty `json:"penalties,omitempty"`
}

// Degraded reports whether the score came from a fallback path.
func (s Score) Degraded() bool { return s.Status != StatusOK }

// Percent returns the value on the 0..100 scale.
func (s Score) Percent() float64 {
	if s.Scale == ScaleUnit {
		return s.Value * 100
	}
	return s.Value
}

// Scorer scores one utterance against a target.
type Scorer interface {
	Name() string
	Score(ctx context.Context, v *features.Vector, target Target, outcome Outcome) Score
}

// Lexicon supplies per-word articulation tips and accepted variants.
// *vocabulary.Catalog satisfies it.
type Lexicon interface {
	Tip(word string) string
	Variations(word string) []string
}

type emptyLexicon struct{}

func (emptyLexicon) Tip(string) string          { return "" }
func (emptyLexicon) Variations(string) []string { return nil }
