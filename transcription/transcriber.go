package transcription

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/kbukum/pronounce/component"
	"github.com/kbukum/pronounce/errors"
	"github.com/kbukum/pronounce/logger"
	"github.com/kbukum/pronounce/observability"
	"github.com/kbukum/pronounce/provider"
	"github.com/kbukum/pronounce/resilience"
)

// Transcriber adapts a Provider into an Outcome. It never returns an error.
type Transcriber struct {
	backend  Provider
	call     provider.RequestResponse[Request, *Response]
	breaker  *resilience.CircuitBreaker
	timeout  time.Duration
	phrase   time.Duration
	language string
	model    string
	log      *logger.Logger
}

// NewTranscriber wraps p with logging, tracing, metrics, retries and a
// circuit breaker. metrics may be nil.
func NewTranscriber(p Provider, cfg Config, log *logger.Logger, metrics *observability.Metrics) *Transcriber {
	cfg.ApplyDefaults()
	if p == nil {
		p = Disabled{}
	}
	if log == nil {
		log = logger.Nop()
	}
	log = log.WithComponent("transcription")

	breakerCfg := resilience.DefaultCircuitBreakerConfig(p.Name())
	breakerCfg.MaxFailures = cfg.BreakerFailures
	breakerCfg.Timeout = cfg.BreakerCooldown
	breakerCfg.OnStateChange = func(name string, from, to resilience.State) {
		log.Warn("transcription circuit changed state", logger.Fields(
			"provider", name, "from", from.String(), "to", to.String(),
		))
	}
	breaker := resilience.NewCircuitBreaker(breakerCfg)

	retry := resilience.DefaultRetryConfig()
	retry.MaxAttempts = cfg.MaxAttempts

	base := provider.Func(p.Name(), p.Transcribe)
	call := provider.Chain(
		provider.WithLogging[Request, *Response](log),
		provider.WithTracing[Request, *Response]("transcription"),
		provider.WithMetrics[Request, *Response](metrics),
	)(base)
	call = provider.WithResilience(call, provider.ResilienceConfig{
		CircuitBreaker: breaker,
		Retry:          &retry,
	})

	return &Transcriber{
		backend:  p,
		call:     call,
		breaker:  breaker,
		timeout:  cfg.Timeout,
		phrase:   cfg.PhraseLimit,
		language: cfg.Language,
		model:    cfg.Model,
		log:      log,
	}
}

// Enabled reports whether a real backend is configured.
func (t *Transcriber) Enabled() bool {
	_, disabled := t.backend.(Disabled)
	return !disabled
}

// PhraseLimit is the longest utterance worth sending to the backend.
func (t *Transcriber) PhraseLimit() time.Duration { return t.phrase }

// Provider returns the backend name.
func (t *Transcriber) Provider() string { return t.backend.Name() }

// Transcribe asks the backend what was said, bounded by the listen timeout.
func (t *Transcriber) Transcribe(ctx context.Context, req Request) Outcome {
	if !t.Enabled() {
		return Unavailable("transcription disabled")
	}
	if len(req.Audio) == 0 {
		return Unrecognized()
	}
	if req.Language == "" {
		req.Language = t.language
	}
	if req.Model == "" {
		req.Model = t.model
	}

	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()

	resp, err := t.call.Execute(ctx, req)
	switch {
	case err == nil && resp != nil:
		return Recognized(resp.Text)
	case err == nil:
		return Unrecognized()
	case stderrors.Is(err, resilience.ErrCircuitOpen):
		return Unavailable("circuit open for " + t.backend.Name())
	case stderrors.Is(err, context.DeadlineExceeded):
		return Unavailable(fmt.Sprintf("no answer within %s", t.timeout))
	case stderrors.Is(err, context.Canceled):
		return Unavailable("request cancelled")
	default:
		return Unavailable(reason(err))
	}
}

func reason(err error) string {
	if app, ok := errors.AsAppError(err); ok {
		if app.Cause != nil {
			return app.Message + " " + app.Cause.Error()
		}
		return app.Message
	}
	return err.Error()
}

func (t *Transcriber) Name() string { return "transcription" }

// Start probes the backend once and logs the result. An unreachable
// backend does not fail startup.
func (t *Transcriber) Start(ctx context.Context) error {
	if !t.Enabled() {
		t.log.Info("transcription disabled")
		return nil
	}
	fields := logger.Fields("provider", t.backend.Name())
	if t.backend.IsAvailable(ctx) {
		t.log.Info("transcription backend reachable", fields)
	} else {
		t.log.Warn("transcription backend unreachable, words will be unverified", fields)
	}
	return nil
}

func (t *Transcriber) Stop(context.Context) error { return nil }

// Health is degraded when the backend is disabled or its circuit is open.
func (t *Transcriber) Health(context.Context) component.Health {
	h := component.Health{Name: t.Name(), Status: component.StatusHealthy}
	switch {
	case !t.Enabled():
		h.Status = component.StatusDegraded
		h.Message = "transcription disabled"
	case t.breaker.State() == resilience.StateOpen:
		h.Status = component.StatusDegraded
		h.Message = "circuit open for " + t.backend.Name()
	}
	return h
}

// Describe reports the backend for the startup summary.
func (t *Transcriber) Describe() component.Description {
	return component.Description{Type: "transcription", Details: t.backend.Name()}
}
