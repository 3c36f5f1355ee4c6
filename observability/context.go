package observability

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Pipeline stage names.
const (
	StageDecode     = "decode"
	StageResample   = "resample"
	StageExtract    = "extract"
	StageTranscribe = "transcribe"
	StageScore      = "score"
	StageFeedback   = "feedback"
)

// Stage tracks one traced and timed pipeline stage.
type Stage struct {
	Name      string
	StartTime time.Time
	span      trace.Span
	ctx       context.Context
	metrics   *Metrics
}

// StartStage opens a child span named "assessment.<stage>".
// If metrics is nil, metric recording is silently skipped.
func StartStage(ctx context.Context, metrics *Metrics, name string) (context.Context, *Stage) {
	ctx, span := StartSpan(ctx, "assessment."+name)
	span.SetAttributes(attribute.String(AttrStage, name))
	return ctx, &Stage{
		Name:      name,
		StartTime: time.Now(),
		span:      span,
		ctx:       ctx,
		metrics:   metrics,
	}
}

// End closes the span and records the stage duration. A non-nil err marks
// the span failed.
func (s *Stage) End(err error) time.Duration {
	d := time.Since(s.StartTime)
	if err != nil {
		SetSpanError(s.ctx, err)
		s.span.SetAttributes(attribute.String(AttrErrorMessage, err.Error()))
	}
	s.span.SetAttributes(attribute.Int64(AttrDurationMs, d.Milliseconds()))
	s.span.End()
	s.metrics.RecordStage(s.ctx, s.Name, d)
	return d
}

// Duration returns the elapsed time since the stage started.
func (s *Stage) Duration() time.Duration {
	return time.Since(s.StartTime)
}
