// Package features extracts a fixed-shape acoustic summary from PCM audio.
//
// The front-end follows the usual speech pipeline: pre-emphasis, 25 ms
// Hamming frames every 10 ms, a radix-2 FFT, a triangular mel filterbank,
// log compression and a DCT-II. The per-frame cepstra are reduced to a mean
// and a standard deviation over time so utterances of any length produce the
// same 13 + 13 values, alongside scalar spectral centroid, rolloff,
// zero-crossing rate and energy descriptors.
package features
