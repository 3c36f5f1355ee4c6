// Package scoring turns a feature vector, a target word and a
// transcription outcome into a Score.
//
// Three strategies implement Scorer:
//
//   - RuleScorer starts from 100 and applies the word gate and the ordered
//     penalty rules of a named Policy.
//   - ModelScorer returns the class-1 probability of the trained forest, or
//     a flagged 0.10 sentinel when no model is loaded.
//   - ReferenceScorer compares the utterance to a recorded reference vector.
//
// Scorers never return errors. Degraded states are carried in Score.Status
// so the caller can tell "system degraded" from "user mispronounced".
package scoring
