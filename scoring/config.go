package scoring

import (
	"fmt"
	"slices"
)

// Strategies select which scorer the orchestrator uses.
const (
	StrategyRule      = "rule"
	StrategyModel     = "model"
	StrategyReference = "reference"
	StrategyAuto      = "auto"
)

// Strategies lists the accepted strategy names.
var Strategies = []string{StrategyAuto, StrategyRule, StrategyModel, StrategyReference}

// Config selects the scoring strategy and policy.
type Config struct {
	Strategy string `yaml:"strategy" mapstructure:"strategy"`
	Policy   string `yaml:"policy" mapstructure:"policy"`
	// TipPenalty overrides the policy's tip deduction when set.
	TipPenalty          *int       `yaml:"tip_penalty" mapstructure:"tip_penalty"`
	SimilarityThreshold float64    `yaml:"similarity_threshold" mapstructure:"similarity_threshold"`
	Thresholds          Thresholds `yaml:"thresholds" mapstructure:"thresholds"`
	ModelTiers          ModelTiers `yaml:"model_tiers" mapstructure:"model_tiers"`
}

// ApplyDefaults fills zero fields.
func (c *Config) ApplyDefaults() {
	if c.Strategy == "" {
		c.Strategy = StrategyAuto
	}
	if c.Policy == "" {
		c.Policy = PolicyColors
	}
	if c.SimilarityThreshold == 0 {
		c.SimilarityThreshold = DefaultSimilarityThreshold
	}
	if c.Thresholds == (Thresholds{}) {
		c.Thresholds = DefaultThresholds()
	}
	if c.ModelTiers == (ModelTiers{}) {
		c.ModelTiers = DefaultModelTiers()
	}
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if !slices.Contains(Strategies, c.Strategy) {
		return fmt.Errorf("scoring: strategy must be one of %v (got: %s)", Strategies, c.Strategy)
	}
	if _, err := PolicyByName(c.Policy); err != nil {
		return err
	}
	if c.TipPenalty != nil && (*c.TipPenalty < 0 || *c.TipPenalty > 100) {
		return fmt.Errorf("scoring: tip_penalty must be within 0..100")
	}
	if c.SimilarityThreshold <= 0 || c.SimilarityThreshold > 1 {
		return fmt.Errorf("scoring: similarity_threshold must be within (0,1]")
	}
	t := c.Thresholds
	if !(t.Excellent > t.Good && t.Good > t.Okay && t.Okay >= 0 && t.Excellent <= 100) {
		return fmt.Errorf("scoring: thresholds must satisfy 100 >= excellent > good > okay >= 0")
	}
	if !(c.ModelTiers.Excellent > c.ModelTiers.Good && c.ModelTiers.Excellent <= 1 && c.ModelTiers.Good > 0) {
		return fmt.Errorf("scoring: model_tiers must satisfy 1 >= excellent > good > 0")
	}
	return nil
}

// ResolvePolicy returns the configured policy with the tip override applied.
func (c *Config) ResolvePolicy() (Policy, error) {
	p, err := PolicyByName(c.Policy)
	if err != nil {
		return Policy{}, err
	}
	if c.TipPenalty != nil {
		p = p.WithTipPenalty(*c.TipPenalty)
	}
	return p, nil
}
