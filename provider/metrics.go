package provider

import (
	"context"

	"github.com/kbukum/pronounce/errors"
	"github.com/kbukum/pronounce/observability"
)

// WithMetrics returns a Middleware that counts failed calls in error.total,
// typed by error code and attributed to the provider name.
func WithMetrics[I, O any](metrics *observability.Metrics) Middleware[I, O] {
	return func(inner RequestResponse[I, O]) RequestResponse[I, O] {
		return &metricsRR[I, O]{inner: inner, metrics: metrics}
	}
}

type metricsRR[I, O any] struct {
	inner   RequestResponse[I, O]
	metrics *observability.Metrics
}

func (m *metricsRR[I, O]) Name() string                         { return m.inner.Name() }
func (m *metricsRR[I, O]) IsAvailable(ctx context.Context) bool { return m.inner.IsAvailable(ctx) }

func (m *metricsRR[I, O]) Execute(ctx context.Context, input I) (O, error) {
	output, err := m.inner.Execute(ctx, input)
	if err != nil {
		m.metrics.RecordError(ctx, string(errors.CodeOf(err)), m.inner.Name())
	}
	return output, err
}
