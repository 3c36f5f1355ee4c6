// Package transcription turns speech-to-text backends into a tri-state
// Outcome: Recognized(text), Unrecognized or Unavailable(reason).
//
// Backends implement Provider and register a factory by name. The
// Transcriber wraps the selected backend with logging, tracing, metrics,
// retries, a circuit breaker and a listen timeout, so callers never see an
// error: every failure becomes Unavailable and the assessment continues on
// its word-unverified branch.
//
// # Backends
//
//   - transcription/whisper: faster-whisper HTTP sidecar
//   - "disabled": always Unavailable
//
// # Usage
//
//	p, err := transcription.New(cfg)
//	t := transcription.NewTranscriber(p, cfg, log, metrics)
//	outcome := t.Transcribe(ctx, transcription.Request{Audio: wav})
package transcription
