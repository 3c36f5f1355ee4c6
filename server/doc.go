// Package server provides the HTTP server for the pronunciation service:
// Gin behind a net/http middleware stack, with h2c so HTTP/2 clients can
// connect without TLS.
//
// # Middleware
//
// Applied around every route (server/middleware):
//
//   - Recovery: panic recovery with structured logging
//   - RequestID: request id generation and propagation into log context
//   - CORS: cross-origin configuration for browser recorders
//   - BodySizeLimit: upload size cap
//   - RequestLogger: per-request log line at a level chosen by status
//
// RateLimit is a gin middleware the api package applies to analysis routes.
//
// # Endpoints
//
// Built-in endpoints (server/endpoint): /health, /ready and /info.
package server
