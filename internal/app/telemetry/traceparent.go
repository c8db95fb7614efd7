package telemetry

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

const traceparentHeader = "traceparent"

// NewTraceparent builds a W3C traceparent value. It is generated once per
// process and attached to every outbound charge request of the batch.
func NewTraceparent() (string, error) {
	traceID := trace.TraceID(uuid.New())

	var spanID trace.SpanID
	spanUUID := uuid.New()
	copy(spanID[:], spanUUID[:len(spanID)])

	spanCtx := trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    traceID,
		SpanID:     spanID,
		TraceFlags: trace.FlagsSampled,
	})

	carrier := propagation.MapCarrier{}
	propagation.TraceContext{}.Inject(trace.ContextWithSpanContext(context.Background(), spanCtx), carrier)

	value := carrier.Get(traceparentHeader)
	if value == "" {
		return "", errors.New("failed to build traceparent")
	}

	return value, nil
}
