package audio

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/kbukum/pronounce/errors"
	"github.com/kbukum/pronounce/process"
	"github.com/kbukum/pronounce/resilience"
)

// Runner executes a subprocess. process.Runner satisfies it.
type Runner interface {
	Run(ctx context.Context, cmd process.Command) (*process.Result, error)
}

// FFmpegConfig configures the ffmpeg decoder.
type FFmpegConfig struct {
	Binary        string        `yaml:"binary" mapstructure:"binary"`
	Timeout       time.Duration `yaml:"timeout" mapstructure:"timeout"`
	MaxConcurrent int           `yaml:"max_concurrent" mapstructure:"max_concurrent"`
}

// FFmpegDecoder converts compressed formats to 16 kHz mono s16le through an
// ffmpeg subprocess reading stdin and writing stdout.
type FFmpegDecoder struct {
	cfg      FFmpegConfig
	runner   Runner
	bulkhead *resilience.Bulkhead
}

// NewFFmpegDecoder creates the decoder. A nil runner uses process.Runner
// with the configured timeout.
func NewFFmpegDecoder(cfg FFmpegConfig, runner Runner) *FFmpegDecoder {
	if cfg.Binary == "" {
		cfg.Binary = "ffmpeg"
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 15 * time.Second
	}
	if cfg.MaxConcurrent <= 0 {
		cfg.MaxConcurrent = 4
	}
	if runner == nil {
		runner = &process.Runner{Timeout: cfg.Timeout}
	}
	return &FFmpegDecoder{
		cfg:    cfg,
		runner: runner,
		bulkhead: resilience.NewBulkhead(resilience.BulkheadConfig{
			Name:          "ffmpeg",
			MaxConcurrent: cfg.MaxConcurrent,
			MaxWait:       cfg.Timeout,
		}),
	}
}

func (d *FFmpegDecoder) Name() string { return "ffmpeg" }

func (d *FFmpegDecoder) ContentTypes() []string {
	return []string{"audio/mp3", "audio/mpeg", "audio/m4a", "audio/mp4", "audio/x-m4a", "audio/aac", "audio/ogg", "audio/webm"}
}

func (d *FFmpegDecoder) Extensions() []string {
	return []string{".mp3", ".m4a", ".mp4", ".aac", ".ogg", ".webm"}
}

// Available reports whether the ffmpeg binary is on PATH.
func (d *FFmpegDecoder) Available() bool {
	return process.Available(d.cfg.Binary)
}

// Args returns the ffmpeg argument list for a canonical-rate conversion.
func (d *FFmpegDecoder) Args() []string {
	return []string{
		"-hide_banner", "-loglevel", "error",
		"-i", "pipe:0",
		"-f", "s16le", "-acodec", "pcm_s16le",
		"-ac", "1", "-ar", strconv.Itoa(CanonicalSampleRate),
		"pipe:1",
	}
}

// Decode runs ffmpeg under the concurrency bulkhead.
func (d *FFmpegDecoder) Decode(ctx context.Context, data []byte) (*Buffer, error) {
	var res *process.Result
	err := d.bulkhead.Execute(ctx, func() error {
		var runErr error
		res, runErr = d.runner.Run(ctx, process.Command{
			Binary: d.cfg.Binary,
			Args:   d.Args(),
			Stdin:  bytes.NewReader(data),
		})
		return runErr
	})
	if err != nil {
		if res != nil && len(res.Stderr) > 0 {
			err = fmt.Errorf("%w: %s", err, res.StderrTail(3))
		}
		return nil, errors.Decode(d.Name(), err)
	}
	if len(res.Stdout) < 2 {
		return nil, errors.Decode(d.Name(), fmt.Errorf("ffmpeg produced no audio"))
	}
	return &Buffer{Samples: PCM16LE(res.Stdout), SampleRate: CanonicalSampleRate}, nil
}
