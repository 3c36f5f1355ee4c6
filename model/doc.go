// Package model holds the pronunciation classifier: a random forest over the
// 13 mean cepstral coefficients, its msgpack artifact format, a Store that
// loads the artifact once from storage, and a demo trainer over synthetic
// clusters.
//
// A missing artifact is a normal state. The Store then reports placeholder
// mode and callers fall back to rule scoring.
package model
