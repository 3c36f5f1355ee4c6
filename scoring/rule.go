package scoring

import (
	"context"

	"github.com/kbukum/pronounce/features"
	"github.com/kbukum/pronounce/util"
)

// RuleScorer scores on a 0..100 scale from heuristics.
type RuleScorer struct {
	policy  Policy
	lexicon Lexicon
}

// NewRuleScorer creates a rule scorer. lex may be nil.
func NewRuleScorer(policy Policy, lex Lexicon) *RuleScorer {
	if lex == nil {
		lex = emptyLexicon{}
	}
	return &RuleScorer{policy: policy, lexicon: lex}
}

func (r *RuleScorer) Name() string { return "rule" }

// Policy returns the active policy.
func (r *RuleScorer) Policy() Policy { return r.policy }

// Score starts at 100 and deducts. A wrong or unknown word skips every
// quality rule.
func (r *RuleScorer) Score(_ context.Context, v *features.Vector, target Target, outcome Outcome) Score {
	s := Score{Scale: ScalePercent, Status: StatusOK, Verdict: VerdictUnverified}
	if v == nil {
		s.Status = StatusInternalError
		s.Diagnostic = "no features to score"
		return s
	}

	points := 100
	deduct := func(rule string, n int) {
		if n <= 0 {
			return
		}
		points -= n
		s.Penalties = append(s.Penalties, Penalty{Rule: rule, Points: n})
	}

	switch {
	case !outcome.IsRecognized():
		deduct(PenaltyUnknownWord, r.policy.UnknownWordPenalty)
	case !MatchWord(r.policy, target.Word, outcome.Text, r.lexicon.Variations(target.Word)):
		s.Verdict = VerdictWrongWord
		deduct(PenaltyWrongWord, r.policy.WrongWordPenalty)
	default:
		s.Verdict = VerdictCorrect
		s.WordCorrect = true
		d := v.Descriptors()
		tip := r.lexicon.Tip(target.Word)
		for _, rule := range r.policy.Rules() {
			if rule.Applies(d, tip) {
				deduct(rule.Name, rule.Points)
			}
		}
	}

	s.Value = float64(util.Clamp(points, 0, 100))
	return s
}
