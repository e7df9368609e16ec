package telemetry

import (
	"context"
)

// Span is one traced operation
type Span interface {
	// SetAttribute sets a single attribute. Values that are neither basic
	// types nor fmt.Stringer are formatted with %v.
	SetAttribute(key string, value interface{})

	// SetAttributes sets every attribute of the map
	SetAttributes(attributes map[string]interface{})

	// Fail records err on the span and marks it failed. A nil err is
	// ignored.
	Fail(err error)

	// End ends the span
	End()

	// Context returns the context carrying this span, for child spans
	Context() context.Context
}

// Tracer starts spans under one instrumentation namespace
type Tracer interface {
	StartWithContext(ctx context.Context, name string) Span
}

type TracerProvider interface {
	// NewTracer creates a new tracer
	NewTracer(namespace string) Tracer

	// Shutdown flushes pending spans and stops the provider
	Shutdown(context.Context) error
}
