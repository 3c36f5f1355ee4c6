// Package util provides small helpers shared across the service: size
// parsing for upload limits, fixed-precision rounding for reported
// measurements, and a few generic slice utilities.
package util
