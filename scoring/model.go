package scoring

import (
	"context"
	"fmt"

	"github.com/kbukum/pronounce/errors"
	"github.com/kbukum/pronounce/features"
	"github.com/kbukum/pronounce/model"
	"github.com/kbukum/pronounce/util"
)

// SentinelScore is returned when no model is loaded.
const SentinelScore = 0.10

// ForestSource yields the loaded forest or nil. *model.Store satisfies it.
type ForestSource interface {
	Forest(ctx context.Context) *model.Forest
}

// ModelScorer scores with the trained classifier on a 0..1 scale.
type ModelScorer struct {
	source ForestSource
}

// NewModelScorer creates a model scorer.
func NewModelScorer(src ForestSource) *ModelScorer {
	return &ModelScorer{source: src}
}

func (m *ModelScorer) Name() string { return "model" }

// Available reports whether a model is loaded.
func (m *ModelScorer) Available(ctx context.Context) bool {
	return m.source != nil && m.source.Forest(ctx) != nil
}

// Score feeds the 13 mean cepstra to the forest. The word stays
// unverified; Policy.Gate applies the transcript afterwards.
func (m *ModelScorer) Score(ctx context.Context, v *features.Vector, target Target, _ Outcome) Score {
	s := Score{Scale: ScaleUnit, Status: StatusOK, Verdict: VerdictUnverified}
	if v == nil {
		s.Status = StatusInternalError
		s.Diagnostic = "no features to score"
		return s
	}
	if !m.Available(ctx) {
		s.Value = SentinelScore
		s.Status = StatusModelUnavailable
		s.Diagnostic = fmt.Sprintf("SYSTEM ERROR: AI Model not trained/loaded. Target: %s", target.Word)
		return s
	}

	p, err := m.source.Forest(ctx).PredictProba(v.Row())
	if err != nil {
		s.Status = StatusInternalError
		s.Diagnostic = err.Error()
		if app, ok := errors.AsAppError(err); ok {
			s.Diagnostic = app.Message
		}
		return s
	}
	s.Value = util.RoundTo(util.Clamp(p, 0, 1), 2)
	return s
}
