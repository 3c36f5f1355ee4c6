package features

import "math"

// Vector is the fixed-shape summary of one utterance.
type Vector struct {
	MFCCMean         [NumCoefficients]float64 `json:"mfcc_mean" msgpack:"mfcc_mean"`
	MFCCStd          [NumCoefficients]float64 `json:"mfcc_std" msgpack:"mfcc_std"`
	SpectralCentroid float64                  `json:"spectral_centroid" msgpack:"spectral_centroid"`
	SpectralRolloff  float64                  `json:"spectral_rolloff" msgpack:"spectral_rolloff"`
	ZeroCrossingRate float64                  `json:"zero_crossing_rate" msgpack:"zero_crossing_rate"`
	Energy           float64                  `json:"energy" msgpack:"energy"`
	Duration         float64                  `json:"duration" msgpack:"duration"`
}

// Descriptors are the auxiliary scalars consumed by rule scoring and feedback.
type Descriptors struct {
	Duration         float64 `json:"duration"`
	Energy           float64 `json:"energy"`
	ZeroCrossingRate float64 `json:"zero_crossing_rate"`
	SpectralCentroid float64 `json:"spectral_centroid"`
	SpectralRolloff  float64 `json:"spectral_rolloff"`
}

// Descriptors returns the auxiliary scalar view of v.
func (v *Vector) Descriptors() Descriptors {
	return Descriptors{
		Duration:         v.Duration,
		Energy:           v.Energy,
		ZeroCrossingRate: v.ZeroCrossingRate,
		SpectralCentroid: v.SpectralCentroid,
		SpectralRolloff:  v.SpectralRolloff,
	}
}

// Row returns the mean cepstra, the only input the classifier sees.
func (v *Vector) Row() []float64 {
	row := make([]float64, NumCoefficients)
	copy(row, v.MFCCMean[:])
	return row
}

// Cosine returns dot(a, b) / (|a|*|b|), or 0 when either norm is 0 or the
// lengths differ.
func Cosine(a, b []float64) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, na, nb float64
	for i := range a {
		dot += a[i] * b[i]
		na += a[i] * a[i]
		nb += b[i] * b[i]
	}
	if na == 0 || nb == 0 {
		return 0
	}
	sim := dot / (math.Sqrt(na) * math.Sqrt(nb))
	if math.IsNaN(sim) {
		return 0
	}
	return sim
}

// ratioSimilarity is 1 - |a-b|/max(a,b), and 1 when both are 0.
func ratioSimilarity(a, b float64) float64 {
	hi := math.Max(math.Abs(a), math.Abs(b))
	if hi == 0 {
		return 1
	}
	return 1 - math.Abs(a-b)/hi
}

// Compare weighs cepstral shape against brightness:
// 0.6*cos(mfcc) + 0.2*centroidSim + 0.2*rolloffSim, clamped to [0,1].
func Compare(ref, user *Vector) float64 {
	if ref == nil || user == nil {
		return 0
	}
	score := 0.6*Cosine(ref.MFCCMean[:], user.MFCCMean[:]) +
		0.2*ratioSimilarity(ref.SpectralCentroid, user.SpectralCentroid) +
		0.2*ratioSimilarity(ref.SpectralRolloff, user.SpectralRolloff)
	return math.Min(math.Max(score, 0), 1)
}
