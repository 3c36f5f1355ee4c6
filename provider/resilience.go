package provider

import (
	"context"

	"github.com/kbukum/pronounce/resilience"
)

// ResilienceConfig bundles optional resilience policies for a provider.
// Nil fields are skipped. The breaker and bulkhead are passed as instances so
// their state can be shared with health reporting.
type ResilienceConfig struct {
	// Bulkhead limits concurrent calls.
	Bulkhead *resilience.Bulkhead
	// CircuitBreaker stops calls after repeated errors.
	CircuitBreaker *resilience.CircuitBreaker
	// Retry retries failed calls with exponential backoff.
	Retry *resilience.RetryConfig
}

// IsEmpty returns true if no resilience policies are configured.
func (c ResilienceConfig) IsEmpty() bool {
	return c.Bulkhead == nil && c.CircuitBreaker == nil && c.Retry == nil
}

// WithResilience wraps a RequestResponse provider.
// Execution chain: Bulkhead -> CircuitBreaker -> Retry -> Execute.
// An empty config returns the provider unchanged.
func WithResilience[I, O any](p RequestResponse[I, O], cfg ResilienceConfig) RequestResponse[I, O] {
	if cfg.IsEmpty() {
		return p
	}
	return &resilientRR[I, O]{inner: p, cfg: cfg}
}

type resilientRR[I, O any] struct {
	inner RequestResponse[I, O]
	cfg   ResilienceConfig
}

func (r *resilientRR[I, O]) Name() string { return r.inner.Name() }

// IsAvailable is false while the breaker is open.
func (r *resilientRR[I, O]) IsAvailable(ctx context.Context) bool {
	if r.cfg.CircuitBreaker != nil && r.cfg.CircuitBreaker.State() == resilience.StateOpen {
		return false
	}
	return r.inner.IsAvailable(ctx)
}

func (r *resilientRR[I, O]) Execute(ctx context.Context, input I) (O, error) {
	var output O
	call := func() error {
		var err error
		if r.cfg.Retry != nil {
			output, err = resilience.Retry(ctx, *r.cfg.Retry, func() (O, error) {
				return r.inner.Execute(ctx, input)
			})
		} else {
			output, err = r.inner.Execute(ctx, input)
		}
		return err
	}

	guarded := call
	if cb := r.cfg.CircuitBreaker; cb != nil {
		guarded = func() error { return cb.Execute(call) }
	}
	if bh := r.cfg.Bulkhead; bh != nil {
		inner := guarded
		guarded = func() error { return bh.Execute(ctx, inner) }
	}

	err := guarded()
	return output, err
}
