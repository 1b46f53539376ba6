// Package usecase holds the standings read and sync services.
package usecase

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

var (
	// ErrInvalidInput marks a caller mistake, such as an unknown division
	// or a malformed provider competition code.
	ErrInvalidInput = errors.New("invalid input")
	// ErrNotFound marks a missing upstream resource.
	ErrNotFound = errors.New("resource not found")
	// ErrDependencyUnavailable wraps repository and provider failures the
	// caller may retry later.
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)

var tracer = otel.Tracer("football-standings/internal/usecase")

// startUsecaseSpan only opens child spans so background sync ticks don't
// create root traces of their own.
func startUsecaseSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	parent := trace.SpanFromContext(ctx)
	if !parent.SpanContext().IsValid() {
		return ctx, parent
	}
	return tracer.Start(ctx, name)
}
