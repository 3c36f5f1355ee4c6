package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

// InitMeter installs an OTLP/HTTP meter provider as the global provider.
func InitMeter(ctx context.Context, cfg Config, serviceName, serviceVersion string) (*sdkmetric.MeterProvider, error) {
	opts := []otlpmetrichttp.Option{
		otlpmetrichttp.WithEndpoint(cfg.Endpoint),
	}
	if cfg.Insecure {
		opts = append(opts, otlpmetrichttp.WithInsecure())
	}

	exporter, err := otlpmetrichttp.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating metric exporter: %w", err)
	}

	res, err := newResource(serviceName, serviceVersion, cfg.Environment)
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	readerOpts := []sdkmetric.PeriodicReaderOption{}
	if cfg.Interval > 0 {
		readerOpts = append(readerOpts, sdkmetric.WithInterval(cfg.Interval))
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter, readerOpts...)),
		sdkmetric.WithResource(res),
	)
	otel.SetMeterProvider(mp)
	return mp, nil
}

// Meter returns a named meter from the global provider.
func Meter(name string) metric.Meter {
	return otel.Meter(name)
}

// Metrics holds the assessment instruments.
type Metrics struct {
	assessmentTotal    metric.Int64Counter
	assessmentDuration metric.Float64Histogram
	stageDuration      metric.Float64Histogram
	assessmentScore    metric.Float64Histogram
	errorTotal         metric.Int64Counter
}

// NewMetrics creates metric instruments on the given meter.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	assessmentTotal, err := meter.Int64Counter("assessment.total",
		metric.WithDescription("Total number of assessments by strategy and status"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating assessment.total counter: %w", err)
	}

	assessmentDuration, err := meter.Float64Histogram("assessment.duration",
		metric.WithDescription("Duration of assessments in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating assessment.duration histogram: %w", err)
	}

	stageDuration, err := meter.Float64Histogram("assessment.stage.duration",
		metric.WithDescription("Duration of pipeline stages in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating assessment.stage.duration histogram: %w", err)
	}

	assessmentScore, err := meter.Float64Histogram("assessment.score",
		metric.WithDescription("Assessment scores normalized to [0,1]"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating assessment.score histogram: %w", err)
	}

	errorTotal, err := meter.Int64Counter("error.total",
		metric.WithDescription("Total errors by type and component"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating error.total counter: %w", err)
	}

	return &Metrics{
		assessmentTotal:    assessmentTotal,
		assessmentDuration: assessmentDuration,
		stageDuration:      stageDuration,
		assessmentScore:    assessmentScore,
		errorTotal:         errorTotal,
	}, nil
}

// RecordAssessment records one finished assessment. score must already be
// normalized to [0,1].
func (m *Metrics) RecordAssessment(ctx context.Context, strategy, status string, duration time.Duration, score float64) {
	if m == nil {
		return
	}
	m.assessmentTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("strategy", strategy),
		attribute.String("status", status),
	))
	m.assessmentDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(
		attribute.String("strategy", strategy),
	))
	m.assessmentScore.Record(ctx, score, metric.WithAttributes(
		attribute.String("strategy", strategy),
	))
}

// RecordStage records the duration of one pipeline stage.
func (m *Metrics) RecordStage(ctx context.Context, stage string, duration time.Duration) {
	if m == nil {
		return
	}
	m.stageDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(
		attribute.String("stage", stage),
	))
}

// RecordError records an error by type and component.
func (m *Metrics) RecordError(ctx context.Context, errType, component string) {
	if m == nil {
		return
	}
	m.errorTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("type", errType),
		attribute.String("component", component),
	))
}
