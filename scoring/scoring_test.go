package scoring_test

import (
	"context"
	"math"
	"strings"
	"testing"

	"github.com/kbukum/pronounce/features"
	"github.com/kbukum/pronounce/model"
	"github.com/kbukum/pronounce/scoring"
	"github.com/kbukum/pronounce/transcription"
	"github.com/kbukum/pronounce/vocabulary"
)

// healthy is within every band of the colors policy.
func healthy() *features.Vector {
	v := &features.Vector{Duration: 0.8, Energy: 0.02, ZeroCrossingRate: 0.1, SpectralCentroid: 1500, SpectralRolloff: 3000}
	for i := range v.MFCCMean {
		v.MFCCMean[i] = float64(i + 1)
		v.MFCCStd[i] = 1
	}
	return v
}

func colors(t *testing.T) scoring.Policy {
	t.Helper()
	p, err := scoring.PolicyByName(scoring.PolicyColors)
	if err != nil {
		t.Fatal(err)
	}
	return p
}

func TestRuleScorer_PerfectWithoutTip(t *testing.T) {
	r := scoring.NewRuleScorer(colors(t), vocabulary.Default())
	s := r.Score(context.Background(), healthy(), scoring.Target{Word: "hello"}, transcription.Recognized("hello"))
	if s.Value != 100 || !s.WordCorrect || s.Status != scoring.StatusOK {
		t.Fatalf("unexpected score %+v", s)
	}
	if got := scoring.DefaultThresholds().Rating(s); got != scoring.RatingExcellent {
		t.Errorf("rating = %q, want Excellent", got)
	}
}

func TestRuleScorer_TipPenalty(t *testing.T) {
	tests := []struct {
		policy string
		want   float64
	}{
		{scoring.PolicyColors, 95},
		{scoring.PolicyAdvisory, 100},
		{scoring.PolicyLenient, 100},
	}
	for _, tc := range tests {
		t.Run(tc.policy, func(t *testing.T) {
			p, err := scoring.PolicyByName(tc.policy)
			if err != nil {
				t.Fatal(err)
			}
			r := scoring.NewRuleScorer(p, vocabulary.Default())
			s := r.Score(context.Background(), healthy(), scoring.Target{Word: "blue"}, transcription.Recognized("blue"))
			if s.Value != tc.want {
				t.Errorf("score = %v, want %v", s.Value, tc.want)
			}
		})
	}
}

func TestRuleScorer_TipOverride(t *testing.T) {
	cfg := scoring.Config{Policy: scoring.PolicyColors, TipPenalty: new(int)}
	p, err := cfg.ResolvePolicy()
	if err != nil {
		t.Fatal(err)
	}
	s := scoring.NewRuleScorer(p, vocabulary.Default()).
		Score(context.Background(), healthy(), scoring.Target{Word: "red"}, transcription.Recognized("red"))
	if s.Value != 100 {
		t.Errorf("tip override 0 should give 100, got %v", s.Value)
	}
}

func TestRuleScorer_WordGate(t *testing.T) {
	tests := []struct {
		name    string
		outcome scoring.Outcome
		want    float64
		verdict scoring.Verdict
	}{
		{"wrong word", transcription.Recognized("red"), 60, scoring.VerdictWrongWord},
		{"unrecognized", transcription.Unrecognized(), 70, scoring.VerdictUnverified},
		{"unavailable", transcription.Unavailable("down"), 70, scoring.VerdictUnverified},
	}
	// Silent, short and unvoiced: quality rules would fire if they ran.
	bad := &features.Vector{Duration: 0.1}
	r := scoring.NewRuleScorer(colors(t), vocabulary.Default())
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := r.Score(context.Background(), bad, scoring.Target{Word: "blue"}, tc.outcome)
			if s.Value != tc.want {
				t.Errorf("score = %v, want %v", s.Value, tc.want)
			}
			if s.WordCorrect || s.Verdict != tc.verdict {
				t.Errorf("unexpected verdict %+v", s)
			}
			if len(s.Penalties) != 1 {
				t.Errorf("quality rules must be skipped, penalties = %+v", s.Penalties)
			}
		})
	}
}

func TestRuleScorer_SilentInput(t *testing.T) {
	silent := &features.Vector{Duration: 1.0}
	r := scoring.NewRuleScorer(colors(t), nil)
	s := r.Score(context.Background(), silent, scoring.Target{Word: "hello"}, transcription.Recognized("hello"))
	if s.Value < 0 || s.Value > 100 {
		t.Fatalf("score out of range: %v", s.Value)
	}
	found := false
	for _, p := range s.Penalties {
		if p.Rule == scoring.RuleQuiet {
			found = true
		}
	}
	if !found {
		t.Errorf("expected the audibility penalty, got %+v", s.Penalties)
	}
	if s.Value != 82 {
		t.Errorf("expected 100-10-8 = 82, got %v", s.Value)
	}
}

func TestRuleScorer_DurationMonotonic(t *testing.T) {
	r := scoring.NewRuleScorer(colors(t), vocabulary.Default())
	prev := math.Inf(1)
	for d := 0.5; d <= 4.0; d += 0.25 {
		v := healthy()
		v.Duration = d
		s := r.Score(context.Background(), v, scoring.Target{Word: "green"}, transcription.Recognized("green"))
		if s.Value > prev {
			t.Fatalf("score rose from %v to %v at duration %v", prev, s.Value, d)
		}
		prev = s.Value
	}
}

func TestRuleScorer_Clamp(t *testing.T) {
	p := colors(t)
	p.ShortPenalty = 90
	p.QuietPenalty = 90
	s := scoring.NewRuleScorer(p, nil).
		Score(context.Background(), &features.Vector{Duration: 0.1}, scoring.Target{Word: "a"}, transcription.Recognized("a"))
	if s.Value != 0 {
		t.Errorf("expected clamp to 0, got %v", s.Value)
	}
}

func TestModelScorer_Sentinel(t *testing.T) {
	m := scoring.NewModelScorer(model.NewStaticStore(nil))
	s := m.Score(context.Background(), healthy(), scoring.Target{Word: "hello"}, transcription.Unavailable("off"))
	if s.Value != scoring.SentinelScore || s.Status != scoring.StatusModelUnavailable {
		t.Fatalf("unexpected %+v", s)
	}
	if s.Diagnostic != "SYSTEM ERROR: AI Model not trained/loaded. Target: hello" {
		t.Errorf("unexpected diagnostic %q", s.Diagnostic)
	}
}

func stump(features int, threshold, left, right float64) *model.Forest {
	return &model.Forest{
		Version:  model.FormatVersion,
		Features: features,
		Trees: []model.Tree{{Nodes: []model.Node{
			{Feature: 0, Threshold: threshold, Left: 1, Right: 2},
			{Leaf: true, Prob: left},
			{Leaf: true, Prob: right},
		}}},
	}
}

func TestModelScorer_Predict(t *testing.T) {
	m := scoring.NewModelScorer(model.NewStaticStore(stump(features.NumCoefficients, 0.5, 0.2, 0.876)))
	s := m.Score(context.Background(), healthy(), scoring.Target{Word: "hello"}, transcription.Unrecognized())
	if s.Status != scoring.StatusOK || s.Value != 0.88 || s.Scale != scoring.ScaleUnit {
		t.Fatalf("unexpected %+v", s)
	}
}

func TestModelScorer_DimensionMismatch(t *testing.T) {
	m := scoring.NewModelScorer(model.NewStaticStore(stump(12, 0.5, 0.2, 0.9)))
	s := m.Score(context.Background(), healthy(), scoring.Target{Word: "hello"}, transcription.Unrecognized())
	if s.Value != 0 || s.Status != scoring.StatusInternalError {
		t.Fatalf("unexpected %+v", s)
	}
	if !strings.Contains(s.Diagnostic, "expected 12 features") {
		t.Errorf("unexpected diagnostic %q", s.Diagnostic)
	}
}

func TestPolicyGate(t *testing.T) {
	p := colors(t)
	base := scoring.Score{Value: 0.95, Scale: scoring.ScaleUnit, Status: scoring.StatusOK, Verdict: scoring.VerdictUnverified}

	wrong := p.Gate(base, "blue", transcription.Recognized("red"), nil)
	if wrong.Value != 0.6 || wrong.WordCorrect || wrong.Verdict != scoring.VerdictWrongWord {
		t.Errorf("wrong word: %+v", wrong)
	}
	right := p.Gate(base, "blue", transcription.Recognized("blue"), nil)
	if right.Value != 0.95 || !right.WordCorrect {
		t.Errorf("right word: %+v", right)
	}
	unheard := p.Gate(base, "blue", transcription.Unrecognized(), nil)
	if unheard.Value != 0.7 || unheard.WordCorrect || unheard.Verdict != scoring.VerdictUnverified {
		t.Errorf("unrecognized: %+v", unheard)
	}
	if len(unheard.Penalties) != 1 || unheard.Penalties[0].Rule != scoring.PenaltyUnknownWord {
		t.Errorf("unrecognized penalties: %+v", unheard.Penalties)
	}
	acoustic := p.Gate(base, "blue", transcription.Unavailable("x"), nil)
	if acoustic.Value != 0.95 || !acoustic.WordCorrect || acoustic.Verdict != scoring.VerdictCorrect {
		t.Errorf("unavailable, high score: %+v", acoustic)
	}
	low := base
	low.Value = 0.3
	rejected := p.Gate(low, "blue", transcription.Unavailable("x"), nil)
	if rejected.Value != 0.3 || rejected.WordCorrect || rejected.Verdict != scoring.VerdictMismatch {
		t.Errorf("unavailable, low score: %+v", rejected)
	}
	sentinel := base
	sentinel.Status = scoring.StatusModelUnavailable
	if got := p.Gate(sentinel, "blue", transcription.Recognized("red"), nil); got.Value != 0.95 {
		t.Errorf("degraded scores pass through, got %+v", got)
	}
}

func TestReferenceScorer(t *testing.T) {
	r := scoring.NewReferenceScorer(0.7)
	v := healthy()
	same := r.Score(context.Background(), v, scoring.Target{Word: "red", Reference: healthy()}, transcription.Unrecognized())
	if same.Value != 1 || !same.WordCorrect {
		t.Errorf("identical vectors: %+v", same)
	}
	missing := r.Score(context.Background(), v, scoring.Target{Word: "red"}, transcription.Unrecognized())
	if missing.Status != scoring.StatusModelUnavailable {
		t.Errorf("missing reference: %+v", missing)
	}
}

func TestMatchWord(t *testing.T) {
	strict := colors(t)
	lenient, _ := scoring.PolicyByName(scoring.PolicyLenient)
	tests := []struct {
		name       string
		policy     scoring.Policy
		target     string
		heard      string
		variations []string
		want       bool
	}{
		{"substring", strict, "Blue", "the sky is blue", nil, true},
		{"different", strict, "blue", "red", nil, false},
		{"empty heard", strict, "blue", "", nil, false},
		{"strict ignores variation", strict, "hello", "hallo", []string{"hallo"}, false},
		{"lenient variation", lenient, "hello", "hallo", []string{"hallo", "hellow"}, true},
		{"lenient shared suffix", lenient, "walking", "walking", nil, true},
		{"lenient token variation", lenient, "computer", "my computor", []string{"computor"}, true},
		{"lenient still rejects", lenient, "computer", "keyboard", []string{"computor"}, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := scoring.MatchWord(tc.policy, tc.target, tc.heard, tc.variations); got != tc.want {
				t.Errorf("MatchWord(%q, %q) = %v, want %v", tc.target, tc.heard, got, tc.want)
			}
		})
	}
}

func TestThresholds(t *testing.T) {
	th := scoring.DefaultThresholds()
	tests := []struct {
		score float64
		want  string
	}{
		{100, scoring.RatingExcellent},
		{85, scoring.RatingExcellent},
		{84, scoring.RatingGood},
		{70, scoring.RatingGood},
		{50, scoring.RatingOkay},
		{49, scoring.RatingPractice},
		{0, scoring.RatingPractice},
	}
	for _, tc := range tests {
		if got := th.Rate(tc.score); got != tc.want {
			t.Errorf("Rate(%v) = %q, want %q", tc.score, got, tc.want)
		}
	}
	tiers := scoring.DefaultModelTiers()
	if tiers.Tier(0.9) != scoring.TierExcellent || tiers.Tier(0.7) != scoring.TierGood || tiers.Tier(0.69) != scoring.TierNeedsPractice {
		t.Error("unexpected model tiers")
	}
}

func TestAccuracy(t *testing.T) {
	tests := []struct {
		name string
		ref  string
		hyp  string
		want float64
	}{
		{"exact", "Hello world", "hello, world!", 100},
		{"one substitution", "the quick brown fox", "the quick red fox", 75},
		{"deletion", "good morning", "good", 50},
		{"insertions exceed", "hi", "hi there friend", -100},
		{"empty reference", "", "anything", 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := scoring.Accuracy(tc.ref, tc.hyp); got != tc.want {
				t.Errorf("Accuracy = %v, want %v", got, tc.want)
			}
		})
	}
	if wer := scoring.WordErrorRate("a", "b c d"); wer != 3 {
		t.Errorf("WER can exceed 1, got %v", wer)
	}
}

func TestConfig(t *testing.T) {
	var cfg scoring.Config
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
	if cfg.Strategy != scoring.StrategyAuto || cfg.Policy != scoring.PolicyColors {
		t.Errorf("unexpected defaults %+v", cfg)
	}
	bad := []scoring.Config{
		{Strategy: "magic", Policy: scoring.PolicyColors},
		{Strategy: scoring.StrategyRule, Policy: "strict"},
		{Strategy: scoring.StrategyRule, Policy: scoring.PolicyColors, SimilarityThreshold: 2},
		{Strategy: scoring.StrategyRule, Policy: scoring.PolicyColors, Thresholds: scoring.Thresholds{Excellent: 50, Good: 70, Okay: 10}},
	}
	for i, c := range bad {
		c.ApplyDefaults()
		if err := c.Validate(); err == nil {
			t.Errorf("case %d: expected error", i)
		}
	}
}
