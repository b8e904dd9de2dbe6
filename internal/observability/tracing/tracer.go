// Package tracing provides OpenTelemetry span creation and the HTTP
// middleware that ties incoming requests to traces.
package tracing

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("newsbridge")

// GetTracer returns the application tracer for creating spans.
//
//	ctx, span := tracing.GetTracer().Start(ctx, "listview.GetPage")
//	defer span.End()
func GetTracer() trace.Tracer {
	return tracer
}
