package observability

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "finitefield.org/roster-admin"

// Tracer returns the process tracer. Spans are no-ops unless a provider is installed.
func Tracer() trace.Tracer {
	return otel.Tracer(tracerName)
}
