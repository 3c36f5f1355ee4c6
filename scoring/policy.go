package scoring

import (
	"fmt"
	"sort"

	"github.com/kbukum/pronounce/features"
)

// Policy names.
const (
	PolicyColors   = "colors"
	PolicyAdvisory = "advisory"
	PolicyLenient  = "lenient"
)

// Policy is a named set of deductions and bands for rule scoring.
type Policy struct {
	Name string

	UnknownWordPenalty int
	WrongWordPenalty   int

	MinDuration  float64
	ShortPenalty int
	MaxDuration  float64
	LongPenalty  int
	MinEnergy    float64
	QuietPenalty int
	MinZCR       float64
	VoicePenalty int
	TipPenalty   int

	// Lenient accepts suffix-stripped equality and catalog variations.
	Lenient bool
}

var policies = map[string]Policy{
	PolicyColors: {
		Name:               PolicyColors,
		UnknownWordPenalty: 30,
		WrongWordPenalty:   40,
		MinDuration:        0.3,
		ShortPenalty:       15,
		MaxDuration:        2.0,
		LongPenalty:        10,
		MinEnergy:          0.001,
		QuietPenalty:       10,
		MinZCR:             0.05,
		VoicePenalty:       8,
		TipPenalty:         5,
	},
}

func init() {
	advisory := policies[PolicyColors]
	advisory.Name = PolicyAdvisory
	advisory.TipPenalty = 0
	policies[PolicyAdvisory] = advisory

	lenient := advisory
	lenient.Name = PolicyLenient
	lenient.MaxDuration = 3.0
	lenient.Lenient = true
	policies[PolicyLenient] = lenient
}

// PolicyByName returns a named policy.
func PolicyByName(name string) (Policy, error) {
	p, ok := policies[name]
	if !ok {
		return Policy{}, fmt.Errorf("scoring: unknown policy %q (known: %v)", name, PolicyNames())
	}
	return p, nil
}

// PolicyNames lists the built-in policies.
func PolicyNames() []string {
	names := make([]string, 0, len(policies))
	for n := range policies {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Rule is one quality deduction. Rules only run once the word is judged
// correct.
type Rule struct {
	Name string
	// Points deducted when the rule applies. May be 0 for advisory rules.
	Points int
	// Remark is the feedback line; empty means the articulation tip itself.
	Remark string
	// Applies decides from the descriptors and the target's tip.
	Applies func(d features.Descriptors, tip string) bool
}

// Rule names.
const (
	RuleTooShort = "duration_short"
	RuleTooLong  = "duration_long"
	RuleQuiet    = "energy"
	RuleUnvoiced = "voicing"
	RuleTip      = "articulation_tip"
)

// Rules returns the quality rules in feedback order: duration, energy,
// voicing, articulation tip.
func (p Policy) Rules() []Rule {
	return []Rule{
		{
			Name: RuleTooShort, Points: p.ShortPenalty, Remark: "🗣️ Speak a bit longer",
			Applies: func(d features.Descriptors, _ string) bool { return d.Duration < p.MinDuration },
		},
		{
			Name: RuleTooLong, Points: p.LongPenalty, Remark: "🗣️ Try saying it quicker",
			Applies: func(d features.Descriptors, _ string) bool { return d.Duration > p.MaxDuration },
		},
		{
			Name: RuleQuiet, Points: p.QuietPenalty, Remark: "🔊 Speak louder",
			Applies: func(d features.Descriptors, _ string) bool { return d.Energy < p.MinEnergy },
		},
		{
			Name: RuleUnvoiced, Points: p.VoicePenalty, Remark: "🎤 Make sure to voice the word clearly",
			Applies: func(d features.Descriptors, _ string) bool { return d.ZeroCrossingRate < p.MinZCR },
		},
		{
			Name: RuleTip, Points: p.TipPenalty,
			Applies: func(_ features.Descriptors, tip string) bool { return tip != "" },
		},
	}
}

// WithTipPenalty returns a copy of p with the tip deduction replaced.
func (p Policy) WithTipPenalty(points int) Policy {
	p.TipPenalty = points
	return p
}

// WordCap is the highest unit score allowed when the wrong word was heard.
func (p Policy) WordCap() float64 {
	return 1 - float64(p.WrongWordPenalty)/100
}

// UnknownCap is the highest unit score allowed when speech was heard but
// not understood.
func (p Policy) UnknownCap() float64 {
	return 1 - float64(p.UnknownWordPenalty)/100
}
