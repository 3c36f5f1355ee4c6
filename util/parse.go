package util

import (
	"strconv"
	"strings"
)

// sizeUnits are checked longest suffix first so "MB" is not read as "B".
var sizeUnits = []struct {
	suffix string
	bytes  float64
}{
	{"GB", 1 << 30},
	{"MB", 1 << 20},
	{"KB", 1 << 10},
	{"G", 1 << 30},
	{"M", 1 << 20},
	{"K", 1 << 10},
	{"B", 1},
}

// ParseSize reads a size such as "10MB", "1.5M", "512kb" or "4096" as a
// byte count. Units are binary. Empty, malformed or negative input yields
// defaultBytes.
func ParseSize(s string, defaultBytes int64) int64 {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" {
		return defaultBytes
	}
	multiplier := 1.0
	for _, u := range sizeUnits {
		if strings.HasSuffix(s, u.suffix) {
			multiplier = u.bytes
			s = strings.TrimSpace(strings.TrimSuffix(s, u.suffix))
			break
		}
	}
	val, err := strconv.ParseFloat(s, 64)
	if err != nil || val < 0 {
		return defaultBytes
	}
	return int64(val * multiplier)
}

// MaskSecret keeps the first visiblePrefix characters of a credential for
// log lines and hides the rest.
func MaskSecret(s string, visiblePrefix int) string {
	if len(s) <= visiblePrefix {
		return "***"
	}
	return s[:visiblePrefix] + "***"
}
