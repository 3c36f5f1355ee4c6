package scoring

import (
	"github.com/kbukum/pronounce/transcription"
	"github.com/kbukum/pronounce/util"
)

// AcousticPass is the unit score at which an utterance that could not be
// transcribed still counts as the target word.
const AcousticPass = 0.5

// Gate applies a transcript to a unit-scale score:
//   - recognized wrong word: capped at WordCap, word incorrect
//   - recognized match: confirms an unverified word
//   - unrecognized speech: capped at UnknownCap, word incorrect
//   - transcription unavailable: an unverified word is judged on the score
//     alone against AcousticPass
//
// Percent scores and degraded scores pass through unchanged since
// RuleScorer gates on its own.
func (p Policy) Gate(s Score, target string, outcome Outcome, variations []string) Score {
	if s.Scale != ScaleUnit || s.Status != StatusOK {
		return s
	}

	switch outcome.Kind {
	case transcription.KindRecognized:
		if MatchWord(p, target, outcome.Text, variations) {
			if s.Verdict == VerdictUnverified {
				s.Verdict = VerdictCorrect
				s.WordCorrect = true
			}
			return s
		}
		return p.cap(s, p.WordCap(), VerdictWrongWord, PenaltyWrongWord, p.WrongWordPenalty)
	case transcription.KindUnrecognized:
		return p.cap(s, p.UnknownCap(), VerdictUnverified, PenaltyUnknownWord, p.UnknownWordPenalty)
	}

	if s.Verdict == VerdictUnverified {
		s.WordCorrect = s.Value >= AcousticPass
		s.Verdict = VerdictMismatch
		if s.WordCorrect {
			s.Verdict = VerdictCorrect
		}
	}
	return s
}

func (p Policy) cap(s Score, limit float64, verdict Verdict, rule string, points int) Score {
	s.Value = util.RoundTo(min(s.Value, limit), 2)
	s.WordCorrect = false
	s.Verdict = verdict
	s.Penalties = append(s.Penalties, Penalty{Rule: rule, Points: points})
	return s
}
