// Package component manages the lifecycle of long-lived service parts:
// the model store, the speech-recognition client, artifact storage,
// telemetry exporters and the HTTP server.
//
// Components start in registration order and stop in reverse. Health is
// reported per component and folded into one service status, where a
// degraded component (for example a missing model) degrades the service
// without failing it.
package component
