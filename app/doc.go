// Package app wires the pronunciation service: it loads configuration,
// builds storage, the model store, the feature extractor, the reference
// library, the transcriber and the assessment orchestrator, mounts the HTTP
// API and manages the component lifecycle.
//
// Long-running services call Run, which blocks until SIGINT, SIGTERM or
// context cancellation. One-shot commands build the App WithoutServer and
// call RunTask.
package app
