// Package resilience guards the pipeline's external collaborators.
//
//   - CircuitBreaker stops calling a speech-recognition backend that keeps
//     failing, so requests fall through to the word-unverified branch fast.
//   - Retry repeats retryable calls with exponential backoff.
//   - Bulkhead caps concurrent decoder subprocesses.
//
//	cb := resilience.NewCircuitBreaker(resilience.DefaultCircuitBreakerConfig("whisper"))
//	err := cb.Execute(func() error {
//	    _, err := client.Transcribe(ctx, req)
//	    return err
//	})
package resilience
