// Package tracing provides OpenTelemetry tracing for the feed pipeline and
// the HTTP API.
package tracing

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "news-feed-app"

// GetTracer returns the application tracer. It is resolved from the global
// provider on every call, so spans always reach the provider that is
// current at span-start time, not the one installed at package init.
//
// Example usage:
//
//	ctx, span := tracing.GetTracer().Start(ctx, "operation-name")
//	defer span.End()
func GetTracer() trace.Tracer {
	return otel.Tracer(tracerName)
}
