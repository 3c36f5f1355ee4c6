package scoring

import (
	"slices"
	"strings"
)

var commonEndings = []string{"ing", "ed", "s", "es"}

// Penalty names for the word gate.
const (
	PenaltyUnknownWord = "unknown_word"
	PenaltyWrongWord   = "wrong_word"
)

// MatchWord reports whether heard contains target. Matching is
// case-insensitive on substrings; a lenient policy also accepts a heard
// token equal to the target after stripping a shared ending, or listed in
// variations.
func MatchWord(p Policy, target, heard string, variations []string) bool {
	target = strings.ToLower(strings.TrimSpace(target))
	heard = strings.ToLower(strings.TrimSpace(heard))
	if target == "" || heard == "" {
		return false
	}
	if strings.Contains(heard, target) {
		return true
	}
	if !p.Lenient {
		return false
	}
	candidates := append([]string{heard}, strings.Fields(heard)...)
	for _, c := range candidates {
		if similar(target, c, variations) {
			return true
		}
	}
	return false
}

func similar(target, heard string, variations []string) bool {
	targetBase, heardBase := target, heard
	for _, ending := range commonEndings {
		if strings.HasSuffix(target, ending) && strings.HasSuffix(heard, ending) {
			targetBase = strings.TrimSuffix(target, ending)
			heardBase = strings.TrimSuffix(heard, ending)
			break
		}
	}
	if targetBase == heardBase {
		return true
	}
	return slices.Contains(variations, heard)
}
