package audio

import (
	"fmt"
	"math"
	"time"

	"github.com/kbukum/pronounce/errors"
)

// CanonicalSampleRate is the rate every buffer is resampled to before
// feature extraction.
const CanonicalSampleRate = 16000

// Buffer is a mono PCM signal with samples normalized to [-1, 1].
type Buffer struct {
	Samples    []float64
	SampleRate int
}

// Duration returns the signal length in seconds.
func (b *Buffer) Duration() float64 {
	if b == nil || b.SampleRate <= 0 {
		return 0
	}
	return float64(len(b.Samples)) / float64(b.SampleRate)
}

// DurationTime returns the signal length as a time.Duration.
func (b *Buffer) DurationTime() time.Duration {
	return time.Duration(b.Duration() * float64(time.Second))
}

// Validate checks that the buffer is non-empty, has a positive rate and
// contains only finite samples.
func (b *Buffer) Validate() error {
	if b == nil || len(b.Samples) == 0 {
		return errors.Extraction("audio buffer is empty")
	}
	if b.SampleRate <= 0 {
		return errors.Extraction(fmt.Sprintf("invalid sample rate %d", b.SampleRate))
	}
	for i, s := range b.Samples {
		if math.IsNaN(s) || math.IsInf(s, 0) {
			return errors.Extraction(fmt.Sprintf("sample %d is not finite", i))
		}
	}
	return nil
}

// Downmix averages interleaved frames of the given channel count into mono.
// A trailing partial frame is dropped.
func Downmix(interleaved []float64, channels int) []float64 {
	if channels <= 1 {
		return interleaved
	}
	frames := len(interleaved) / channels
	mono := make([]float64, frames)
	for f := 0; f < frames; f++ {
		sum := 0.0
		for c := 0; c < channels; c++ {
			sum += interleaved[f*channels+c]
		}
		mono[f] = sum / float64(channels)
	}
	return mono
}

// NormalizeInt scales signed integer PCM of the given bit depth to [-1, 1]
// by dividing by the full-scale value 1 << (bits-1).
func NormalizeInt(samples []int, bitDepth int) []float64 {
	out := make([]float64, len(samples))
	if bitDepth <= 0 {
		return out
	}
	full := float64(int64(1) << (bitDepth - 1))
	for i, s := range samples {
		out[i] = float64(s) / full
	}
	return out
}

// PCM16LE converts little-endian signed 16-bit bytes into normalized samples.
func PCM16LE(data []byte) []float64 {
	n := len(data) / 2
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		s := int16(data[i*2]) | int16(data[i*2+1])<<8
		out[i] = float64(s) / 32768.0
	}
	return out
}
