package audio

import (
	"fmt"

	resampling "github.com/tphakala/go-audio-resampling"

	"github.com/kbukum/pronounce/errors"
)

// Resample converts buf to the target rate. It returns buf unchanged when
// the rates already match.
func Resample(buf *Buffer, rate int) (*Buffer, error) {
	if buf == nil {
		return nil, errors.Extraction("audio buffer is empty")
	}
	if rate <= 0 {
		return nil, errors.Extraction(fmt.Sprintf("invalid target sample rate %d", rate))
	}
	if buf.SampleRate == rate {
		return buf, nil
	}
	if buf.SampleRate <= 0 {
		return nil, errors.Extraction(fmt.Sprintf("invalid sample rate %d", buf.SampleRate))
	}

	r, err := resampling.New(&resampling.Config{
		InputRate:  float64(buf.SampleRate),
		OutputRate: float64(rate),
		Channels:   1,
		Quality:    resampling.QualitySpec{Preset: resampling.QualityHigh},
	})
	if err != nil {
		return nil, errors.Extraction(fmt.Sprintf("create resampler: %v", err))
	}
	out, err := r.Process(buf.Samples)
	if err != nil {
		return nil, errors.Extraction(fmt.Sprintf("resample %d->%d: %v", buf.SampleRate, rate, err))
	}
	return &Buffer{Samples: out, SampleRate: rate}, nil
}
