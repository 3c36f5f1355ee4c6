package scoring

import (
	"strings"
	"unicode"

	"github.com/kbukum/pronounce/util"
)

// WordErrorRate is (substitutions + deletions + insertions) / len(reference)
// over normalized word tokens. It can exceed 1. An empty reference gives 1.
func WordErrorRate(reference, hypothesis string) float64 {
	ref := tokens(reference)
	hyp := tokens(hypothesis)
	if len(ref) == 0 {
		return 1
	}
	return float64(editDistance(ref, hyp)) / float64(len(ref))
}

// Accuracy is (1 - WER) * 100 rounded to 2 decimals. It is negative when
// the hypothesis has many insertions.
func Accuracy(reference, hypothesis string) float64 {
	return util.RoundTo((1-WordErrorRate(reference, hypothesis))*100, 2)
}

func tokens(s string) []string {
	return strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '\''
	})
}

func editDistance(a, b []string) int {
	prev := make([]int, len(b)+1)
	cur := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(a); i++ {
		cur[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			cur[j] = min(prev[j]+1, cur[j-1]+1, prev[j-1]+cost)
		}
		prev, cur = cur, prev
	}
	return prev[len(b)]
}
