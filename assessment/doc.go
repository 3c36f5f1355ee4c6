// Package assessment runs one pronunciation assessment end to end:
//
//	decode -> resample -> extract -> transcribe -> score -> feedback
//
// Each stage is traced and timed. Decode and extraction failures end the
// request with a zero score and a diagnostic naming the stage; a missing
// model, a missing reference or an unavailable transcriber degrade the
// result instead. Assess always returns exactly one Result and never
// panics.
package assessment
