// Package observability wires OpenTelemetry tracing and metrics for the
// assessment pipeline.
//
// Tracing and metrics export over OTLP/HTTP when enabled:
//
//	shutdown, err := observability.Setup(ctx, cfg, "pronounce", version.Version, log)
//	defer shutdown(ctx)
//
//	metrics, err := observability.NewMetrics(observability.Meter("pronounce"))
//	ctx, stage := observability.StartStage(ctx, metrics, observability.StageExtract)
//	defer stage.End(err)
//
// With observability disabled the global providers stay no-op, so spans and
// instruments can be used unconditionally.
package observability
