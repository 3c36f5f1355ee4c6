package feedback

import (
	"fmt"

	"github.com/kbukum/pronounce/features"
	"github.com/kbukum/pronounce/scoring"
	"github.com/kbukum/pronounce/transcription"
	"github.com/kbukum/pronounce/vocabulary"
)

// Word statements.
const (
	MessageCorrectWord = "✅ Correct word recognized!"
	MessageNotHeard    = "❓ Could not understand what you said"
	MessageNotChecked  = "🎧 Speech recognition unavailable, the word was not checked"
	wrongWordFormat    = "❌ You said '%s', but should be '%s'"
)

// Redirects replace quality remarks when the wrong word was said.
const (
	MessageRedirect      = "🎯 Focus on saying the correct word"
	MessageRedirectColor = "🎯 Focus on saying the correct color name"
)

// Classifier tier messages.
const (
	MessageExcellent     = "Excellent pronunciation! Great job."
	MessageGood          = "Good job! A little practice on vowels will make it perfect."
	MessageNeedsPractice = "Needs practice. Try focusing on the initial sound."
)

// Input is everything the generator looks at.
type Input struct {
	Score       scoring.Score
	Outcome     transcription.Outcome
	Descriptors features.Descriptors
	Target      string
	Tip         string
	Category    string
}

// Generator builds feedback for one policy.
type Generator struct {
	Policy scoring.Policy
	Tiers  scoring.ModelTiers
}

// New creates a generator.
func New(policy scoring.Policy, tiers scoring.ModelTiers) *Generator {
	return &Generator{Policy: policy, Tiers: tiers}
}

// Generate returns the remarks for in. Degraded scores yield only their
// diagnostic. Otherwise the word statement comes first. An incorrect word
// gets a single redirect (the tier message when the sound, not the word,
// was rejected); a correct one gets the classifier tier (unit scores) and
// the quality remarks.
func (g *Generator) Generate(in Input) []string {
	s := in.Score
	if s.Degraded() {
		if s.Diagnostic == "" {
			return []string{string(s.Status)}
		}
		return []string{s.Diagnostic}
	}

	out := []string{g.wordStatement(in)}
	if !s.WordCorrect {
		return append(out, g.redirect(in))
	}
	if s.Scale == scoring.ScaleUnit {
		out = append(out, g.tierMessage(s.Value))
	}
	return append(out, g.qualityRemarks(in)...)
}

func (g *Generator) wordStatement(in Input) string {
	switch {
	case in.Outcome.Kind == transcription.KindUnavailable, in.Outcome.Kind == "":
		return MessageNotChecked
	case !in.Outcome.IsRecognized():
		return MessageNotHeard
	case in.Score.Verdict == scoring.VerdictWrongWord:
		return fmt.Sprintf(wrongWordFormat, in.Outcome.Text, in.Target)
	default:
		return MessageCorrectWord
	}
}

func (g *Generator) redirect(in Input) string {
	if in.Score.Verdict == scoring.VerdictMismatch {
		return g.tierMessage(in.Score.Value)
	}
	if g.Policy.Name == scoring.PolicyColors && in.Category == vocabulary.CategoryColors {
		return MessageRedirectColor
	}
	return MessageRedirect
}

func (g *Generator) qualityRemarks(in Input) []string {
	var out []string
	for _, rule := range g.Policy.Rules() {
		if !rule.Applies(in.Descriptors, in.Tip) {
			continue
		}
		if rule.Remark == "" {
			out = append(out, in.Tip)
		} else {
			out = append(out, rule.Remark)
		}
	}
	return out
}

// tierMessage returns the classifier message for a unit score.
func (g *Generator) tierMessage(unit float64) string {
	switch g.Tiers.Tier(unit) {
	case scoring.TierExcellent:
		return MessageExcellent
	case scoring.TierGood:
		return MessageGood
	default:
		return MessageNeedsPractice
	}
}
