package features

import (
	"fmt"
	"math"

	"github.com/kbukum/pronounce/audio"
	"github.com/kbukum/pronounce/errors"
)

// logFloor keeps silent mel bands finite.
const logFloor = 1e-10

// Extractor computes Vectors. It is safe for concurrent use; all tables are
// built once in NewExtractor and only read afterwards.
type Extractor struct {
	cfg     Config
	window  []float64
	melBank [][]float64
	dct     [][]float64
	binHz   []float64
}

// NewExtractor validates cfg and precomputes the window, filterbank and DCT.
func NewExtractor(cfg Config) (*Extractor, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	halfFFT := cfg.FFTSize/2 + 1
	binHz := make([]float64, halfFFT)
	for k := range binHz {
		binHz[k] = float64(k) * float64(cfg.SampleRate) / float64(cfg.FFTSize)
	}
	return &Extractor{
		cfg:     cfg,
		window:  hammingWindow(cfg.FrameSize),
		melBank: melFilterBank(cfg.NumMels, cfg.FFTSize, cfg.SampleRate, cfg.LowFreq, cfg.HighFreq),
		dct:     dctMatrix(NumCoefficients, cfg.NumMels),
		binHz:   binHz,
	}, nil
}

// Config returns the effective configuration.
func (e *Extractor) Config() Config { return e.cfg }

// Extract summarizes buf. The buffer must already be at the configured
// sample rate. Inputs shorter than one frame are zero-padded to one frame.
func (e *Extractor) Extract(buf *audio.Buffer) (*Vector, error) {
	if err := buf.Validate(); err != nil {
		return nil, err
	}
	if buf.SampleRate != e.cfg.SampleRate {
		return nil, errors.Extraction(fmt.Sprintf("sample rate %d does not match analysis rate %d", buf.SampleRate, e.cfg.SampleRate))
	}

	cfg := e.cfg
	samples := buf.Samples
	if len(samples) < cfg.FrameSize {
		padded := make([]float64, cfg.FrameSize)
		copy(padded, samples)
		samples = padded
	}

	emphasized := make([]float64, len(samples))
	emphasized[0] = samples[0]
	for i := 1; i < len(samples); i++ {
		emphasized[i] = samples[i] - cfg.PreEmphasis*samples[i-1]
	}

	numFrames := (len(samples)-cfg.FrameSize)/cfg.HopSize + 1
	halfFFT := cfg.FFTSize/2 + 1

	real := make([]float64, cfg.FFTSize)
	imag := make([]float64, cfg.FFTSize)
	power := make([]float64, halfFFT)
	logMel := make([]float64, cfg.NumMels)

	var sum, sumSq [NumCoefficients]float64
	var centroidSum, rolloffSum, zcrSum float64

	for t := 0; t < numFrames; t++ {
		start := t * cfg.HopSize

		for i := 0; i < cfg.FFTSize; i++ {
			imag[i] = 0
			if i < cfg.FrameSize {
				real[i] = emphasized[start+i] * e.window[i]
			} else {
				real[i] = 0
			}
		}
		fft(real, imag)

		var magTotal, weighted float64
		for k := 0; k < halfFFT; k++ {
			p := real[k]*real[k] + imag[k]*imag[k]
			power[k] = p
			mag := math.Sqrt(p)
			magTotal += mag
			weighted += mag * e.binHz[k]
		}
		if magTotal > 0 {
			centroidSum += weighted / magTotal
			rolloffSum += e.rolloff(power)
		}

		for m, filter := range e.melBank {
			s := 0.0
			for k, w := range filter {
				if w != 0 {
					s += w * power[k]
				}
			}
			logMel[m] = math.Log(math.Max(s, logFloor))
		}
		for c, basis := range e.dct {
			v := 0.0
			for m, b := range basis {
				v += b * logMel[m]
			}
			sum[c] += v
			sumSq[c] += v * v
		}

		zcrSum += zeroCrossingRate(samples[start : start+cfg.FrameSize])
	}

	n := float64(numFrames)
	vec := &Vector{
		SpectralCentroid: centroidSum / n,
		SpectralRolloff:  rolloffSum / n,
		ZeroCrossingRate: zcrSum / n,
		Energy:           meanSquare(buf.Samples),
		Duration:         buf.Duration(),
	}
	for c := 0; c < NumCoefficients; c++ {
		mean := sum[c] / n
		variance := sumSq[c]/n - mean*mean
		vec.MFCCMean[c] = mean
		vec.MFCCStd[c] = math.Sqrt(math.Max(variance, 0))
	}

	if err := vec.check(); err != nil {
		return nil, err
	}
	return vec, nil
}

// rolloff is the lowest frequency below which RolloffPercent of the
// spectral energy lies.
func (e *Extractor) rolloff(power []float64) float64 {
	total := 0.0
	for _, p := range power {
		total += p
	}
	if total == 0 {
		return 0
	}
	threshold := e.cfg.RolloffPercent * total
	acc := 0.0
	for k, p := range power {
		acc += p
		if acc >= threshold {
			return e.binHz[k]
		}
	}
	return e.binHz[len(e.binHz)-1]
}

func zeroCrossingRate(frame []float64) float64 {
	if len(frame) < 2 {
		return 0
	}
	crossings := 0
	for i := 1; i < len(frame); i++ {
		if (frame[i] >= 0) != (frame[i-1] >= 0) {
			crossings++
		}
	}
	return float64(crossings) / float64(len(frame))
}

func meanSquare(samples []float64) float64 {
	if len(samples) == 0 {
		return 0
	}
	s := 0.0
	for _, v := range samples {
		s += v * v
	}
	return s / float64(len(samples))
}

func (v *Vector) check() error {
	values := append(append([]float64{}, v.MFCCMean[:]...), v.MFCCStd[:]...)
	values = append(values, v.SpectralCentroid, v.SpectralRolloff, v.ZeroCrossingRate, v.Energy, v.Duration)
	for _, x := range values {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return errors.Extraction("feature vector contains non-finite values")
		}
	}
	return nil
}
