package scoring

// Rating labels.
const (
	RatingExcellent = "Excellent"
	RatingGood      = "Good"
	RatingOkay      = "Okay"
	RatingPractice  = "Keep practicing"
	RatingError     = "Error"
)

// Thresholds map a 0..100 score to a rating. Bounds are inclusive.
type Thresholds struct {
	Excellent float64 `yaml:"excellent" mapstructure:"excellent"`
	Good      float64 `yaml:"good" mapstructure:"good"`
	Okay      float64 `yaml:"okay" mapstructure:"okay"`
}

// DefaultThresholds returns 85 / 70 / 50.
func DefaultThresholds() Thresholds {
	return Thresholds{Excellent: 85, Good: 70, Okay: 50}
}

// Rate returns the rating label for a 0..100 score.
func (t Thresholds) Rate(percent float64) string {
	switch {
	case percent >= t.Excellent:
		return RatingExcellent
	case percent >= t.Good:
		return RatingGood
	case percent >= t.Okay:
		return RatingOkay
	default:
		return RatingPractice
	}
}

// Rating rates a score on either scale.
func (t Thresholds) Rating(s Score) string {
	return t.Rate(s.Percent())
}

// Tier is a coarse band of a unit score.
type Tier int

const (
	TierNeedsPractice Tier = iota
	TierGood
	TierExcellent
)

// ModelTiers band classifier probabilities. Bounds are inclusive.
type ModelTiers struct {
	Excellent float64 `yaml:"excellent" mapstructure:"excellent"`
	Good      float64 `yaml:"good" mapstructure:"good"`
}

// DefaultModelTiers returns 0.90 / 0.70.
func DefaultModelTiers() ModelTiers {
	return ModelTiers{Excellent: 0.90, Good: 0.70}
}

// Tier returns the band for a unit score.
func (m ModelTiers) Tier(unit float64) Tier {
	switch {
	case unit >= m.Excellent:
		return TierExcellent
	case unit >= m.Good:
		return TierGood
	default:
		return TierNeedsPractice
	}
}
