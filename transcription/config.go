package transcription

import (
	"fmt"
	"time"
)

// Config selects and tunes the transcription backend.
type Config struct {
	Enabled  bool   `yaml:"enabled" mapstructure:"enabled"`
	Provider string `yaml:"provider" mapstructure:"provider"`
	URL      string `yaml:"url" mapstructure:"url"`
	Model    string `yaml:"model" mapstructure:"model"`
	Language string `yaml:"language" mapstructure:"language"`

	// Timeout bounds one recognition attempt, retries included.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`
	// PhraseLimit is the longest utterance forwarded to the backend.
	PhraseLimit time.Duration `yaml:"phrase_limit" mapstructure:"phrase_limit"`
	MaxAttempts int           `yaml:"max_attempts" mapstructure:"max_attempts"`

	BreakerFailures int           `yaml:"breaker_failures" mapstructure:"breaker_failures"`
	BreakerCooldown time.Duration `yaml:"breaker_cooldown" mapstructure:"breaker_cooldown"`
}

// ApplyDefaults fills zero fields.
func (c *Config) ApplyDefaults() {
	if c.Provider == "" {
		c.Provider = "whisper"
	}
	if c.Language == "" {
		c.Language = "en"
	}
	if c.Timeout == 0 {
		c.Timeout = 10 * time.Second
	}
	if c.PhraseLimit == 0 {
		c.PhraseLimit = 5 * time.Second
	}
	if c.MaxAttempts == 0 {
		c.MaxAttempts = 3
	}
	if c.BreakerFailures == 0 {
		c.BreakerFailures = 3
	}
	if c.BreakerCooldown == 0 {
		c.BreakerCooldown = 30 * time.Second
	}
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if c.Timeout < 0 || c.PhraseLimit < 0 || c.BreakerCooldown < 0 {
		return fmt.Errorf("transcription: durations must not be negative")
	}
	if c.MaxAttempts < 1 {
		return fmt.Errorf("transcription: max_attempts must be at least 1")
	}
	if c.Enabled && c.Provider == "" {
		return fmt.Errorf("transcription: provider is required when enabled")
	}
	return nil
}
