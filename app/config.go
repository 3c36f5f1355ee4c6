package app

import (
	"fmt"
	"time"

	"github.com/kbukum/pronounce/audio"
	"github.com/kbukum/pronounce/config"
	"github.com/kbukum/pronounce/features"
	"github.com/kbukum/pronounce/model"
	"github.com/kbukum/pronounce/observability"
	"github.com/kbukum/pronounce/scoring"
	"github.com/kbukum/pronounce/server"
	"github.com/kbukum/pronounce/storage"
	"github.com/kbukum/pronounce/transcription"
	"github.com/kbukum/pronounce/util"
	"github.com/kbukum/pronounce/version"
)

// ServiceName keys the config search paths and the environment prefix.
const ServiceName = "pronounce"

// Config is the full service configuration.
//
//	name: pronounce
//	server:
//	  port: 8000
//	scoring:
//	  strategy: auto
//	  policy: colors
type Config struct {
	config.ServiceConfig `yaml:",inline" mapstructure:",squash"`

	Server        server.Config        `yaml:"server" mapstructure:"server"`
	Audio         AudioConfig          `yaml:"audio" mapstructure:"audio"`
	Features      features.Config      `yaml:"features" mapstructure:"features"`
	Scoring       scoring.Config       `yaml:"scoring" mapstructure:"scoring"`
	Model         ModelConfig          `yaml:"model" mapstructure:"model"`
	Transcription transcription.Config `yaml:"transcription" mapstructure:"transcription"`
	Storage       storage.Config       `yaml:"storage" mapstructure:"storage"`
	Vocabulary    VocabularyConfig     `yaml:"vocabulary" mapstructure:"vocabulary"`
	Observability observability.Config `yaml:"observability" mapstructure:"observability"`
}

// AudioConfig tunes decoding.
type AudioConfig struct {
	// ChunkSize is the number of frames read per step when decoding WAV.
	ChunkSize     int                `yaml:"chunk_size" mapstructure:"chunk_size"`
	DecodeTimeout time.Duration      `yaml:"decode_timeout" mapstructure:"decode_timeout"`
	FFmpeg        audio.FFmpegConfig `yaml:"ffmpeg" mapstructure:"ffmpeg"`
}

// ModelConfig locates the trained model artifact inside storage.
type ModelConfig struct {
	Path string `yaml:"path" mapstructure:"path"`
}

// VocabularyConfig points at an optional YAML catalog merged over the
// built-in words.
type VocabularyConfig struct {
	Path string `yaml:"path" mapstructure:"path"`
}

// ApplyDefaults fills every section.
func (c *Config) ApplyDefaults() {
	c.ServiceConfig.ApplyDefaults()
	c.Version = util.Coalesce(c.Version, version.GetShortVersion())
	c.Server.ApplyDefaults()
	if c.Audio.ChunkSize <= 0 {
		c.Audio.ChunkSize = audio.DefaultChunkFrames
	}
	if c.Audio.DecodeTimeout <= 0 {
		c.Audio.DecodeTimeout = 15 * time.Second
	}
	c.Features.ApplyDefaults()
	c.Scoring.ApplyDefaults()
	c.Model.Path = util.Coalesce(c.Model.Path, model.DefaultPath)
	c.Transcription.ApplyDefaults()
	c.Storage.ApplyDefaults()
	c.Observability.Environment = util.Coalesce(c.Observability.Environment, c.Environment)
	c.Observability.ApplyDefaults()
}

// Validate checks every section and reports the first failure.
func (c *Config) Validate() error {
	if err := c.ServiceConfig.Validate(); err != nil {
		return err
	}
	if err := c.Server.Validate(); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	if c.Features.SampleRate != audio.CanonicalSampleRate {
		return fmt.Errorf("features: sample_rate must be %d (got: %d)", audio.CanonicalSampleRate, c.Features.SampleRate)
	}
	checks := []func() error{
		c.Features.Validate,
		c.Scoring.Validate,
		c.Transcription.Validate,
		c.Storage.Validate,
		c.Observability.Validate,
	}
	for _, check := range checks {
		if err := check(); err != nil {
			return err
		}
	}
	return nil
}

// Load reads the configuration from the resolved config file, the .env
// file and PRONOUNCE_* environment variables, then applies defaults and
// validates.
func Load(opts ...config.LoaderOption) (*Config, error) {
	cfg := &Config{}
	if err := config.LoadConfig(ServiceName, cfg, opts...); err != nil {
		return nil, err
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}
	return cfg, nil
}
