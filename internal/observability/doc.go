// Package observability groups the cross-cutting telemetry concerns:
//
//   - logging: structured logging with slog and request ID propagation
//   - tracing: OpenTelemetry span creation and HTTP middleware
//
// Prometheus metrics are registered next to the code they measure rather
// than centrally, so there is no metrics subpackage here.
package observability
