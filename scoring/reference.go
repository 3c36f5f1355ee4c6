package scoring

import (
	"context"

	"github.com/kbukum/pronounce/features"
	"github.com/kbukum/pronounce/util"
)

// DefaultSimilarityThreshold is the reference similarity counted as correct.
const DefaultSimilarityThreshold = 0.7

// ReferenceScorer compares the utterance with a recorded reference.
type ReferenceScorer struct {
	threshold float64
}

// NewReferenceScorer creates a reference scorer.
func NewReferenceScorer(threshold float64) *ReferenceScorer {
	if threshold <= 0 {
		threshold = DefaultSimilarityThreshold
	}
	return &ReferenceScorer{threshold: threshold}
}

func (r *ReferenceScorer) Name() string { return "reference" }

// Score returns the weighted similarity in [0,1]. Without a reference the
// score is flagged model_unavailable so the caller can fall back.
func (r *ReferenceScorer) Score(_ context.Context, v *features.Vector, target Target, _ Outcome) Score {
	s := Score{Scale: ScaleUnit, Status: StatusOK}
	switch {
	case v == nil:
		s.Status = StatusInternalError
		s.Diagnostic = "no features to score"
		s.Verdict = VerdictUnverified
		return s
	case target.Reference == nil:
		s.Status = StatusModelUnavailable
		s.Diagnostic = "no reference recording for " + target.Word
		s.Verdict = VerdictUnverified
		return s
	}

	s.Value = util.RoundTo(features.Compare(target.Reference, v), 2)
	s.WordCorrect = s.Value >= r.threshold
	s.Verdict = VerdictMismatch
	if s.WordCorrect {
		s.Verdict = VerdictCorrect
	}
	return s
}
