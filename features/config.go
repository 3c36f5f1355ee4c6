package features

import "fmt"

// NumCoefficients is the number of cepstral coefficients kept per frame.
const NumCoefficients = 13

// Config controls feature extraction.
type Config struct {
	SampleRate      int     `yaml:"sample_rate" mapstructure:"sample_rate"`
	FrameSize       int     `yaml:"frame_size" mapstructure:"frame_size"`
	HopSize         int     `yaml:"hop_size" mapstructure:"hop_size"`
	FFTSize         int     `yaml:"fft_size" mapstructure:"fft_size"`
	NumMels         int     `yaml:"num_mels" mapstructure:"num_mels"`
	NumCoefficients int     `yaml:"num_coefficients" mapstructure:"num_coefficients"`
	LowFreq         float64 `yaml:"low_freq" mapstructure:"low_freq"`
	HighFreq        float64 `yaml:"high_freq" mapstructure:"high_freq"`
	PreEmphasis     float64 `yaml:"pre_emphasis" mapstructure:"pre_emphasis"`
	RolloffPercent  float64 `yaml:"rolloff_percent" mapstructure:"rolloff_percent"`
}

// DefaultConfig returns 16 kHz analysis with 25 ms frames and a 10 ms hop.
func DefaultConfig() Config {
	return Config{
		SampleRate:      16000,
		FrameSize:       400,
		HopSize:         160,
		FFTSize:         512,
		NumMels:         40,
		NumCoefficients: NumCoefficients,
		LowFreq:         20,
		HighFreq:        8000,
		PreEmphasis:     0.97,
		RolloffPercent:  0.85,
	}
}

// ApplyDefaults fills zero fields from DefaultConfig.
func (c *Config) ApplyDefaults() {
	d := DefaultConfig()
	if c.SampleRate == 0 {
		c.SampleRate = d.SampleRate
	}
	if c.FrameSize == 0 {
		c.FrameSize = d.FrameSize
	}
	if c.HopSize == 0 {
		c.HopSize = d.HopSize
	}
	if c.FFTSize == 0 {
		c.FFTSize = d.FFTSize
	}
	if c.NumMels == 0 {
		c.NumMels = d.NumMels
	}
	if c.NumCoefficients == 0 {
		c.NumCoefficients = d.NumCoefficients
	}
	if c.LowFreq == 0 {
		c.LowFreq = d.LowFreq
	}
	if c.HighFreq == 0 {
		c.HighFreq = float64(c.SampleRate) / 2
	}
	if c.PreEmphasis == 0 {
		c.PreEmphasis = d.PreEmphasis
	}
	if c.RolloffPercent == 0 {
		c.RolloffPercent = d.RolloffPercent
	}
}

// Validate checks the configuration for internal consistency.
func (c *Config) Validate() error {
	switch {
	case c.SampleRate <= 0:
		return fmt.Errorf("features: sample_rate must be positive")
	case c.FrameSize <= 0 || c.HopSize <= 0:
		return fmt.Errorf("features: frame_size and hop_size must be positive")
	case c.FFTSize < c.FrameSize || c.FFTSize&(c.FFTSize-1) != 0:
		return fmt.Errorf("features: fft_size must be a power of two >= frame_size, got %d", c.FFTSize)
	case c.NumCoefficients != NumCoefficients:
		return fmt.Errorf("features: num_coefficients must be %d", NumCoefficients)
	case c.NumMels < c.NumCoefficients:
		return fmt.Errorf("features: num_mels must be >= num_coefficients")
	case c.LowFreq < 0 || c.HighFreq <= c.LowFreq || c.HighFreq > float64(c.SampleRate)/2:
		return fmt.Errorf("features: need 0 <= low_freq < high_freq <= sample_rate/2")
	case c.PreEmphasis < 0 || c.PreEmphasis >= 1:
		return fmt.Errorf("features: pre_emphasis must be within [0,1)")
	case c.RolloffPercent <= 0 || c.RolloffPercent >= 1:
		return fmt.Errorf("features: rolloff_percent must be within (0,1)")
	}
	return nil
}
