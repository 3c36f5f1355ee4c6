// Package logger provides structured logging for the pronunciation service
// using zerolog.
//
// Loggers are scoped by component (decoder, extractor, scorer, api) and
// enriched with request identifiers from the context. Assessment stages log
// with the Field* keys so that a single request can be followed from upload
// to result.
//
// # Configuration
//
//	logging:
//	  level: "info"
//	  format: "json"
//
// # Usage
//
//	log := logger.NewDefault("pronounce").WithComponent("scoring")
//	log.Info("scored", logger.Fields(logger.FieldTarget, "red", logger.FieldScore, 85))
package logger
