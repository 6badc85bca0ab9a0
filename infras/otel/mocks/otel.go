// Package mocks provides an otel.Otel for tests. Spans are real scopes over a no-op
// tracer, so nothing is recorded or exported.
package mocks

import (
	"context"

	"bookly/infras/otel"

	oteltrace "go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

type otelImpl struct {
	tracer oteltrace.Tracer
}

func (o *otelImpl) NewScope(ctx context.Context, _, spanName string) (context.Context, otel.Scope) {
	ctx, span := o.tracer.Start(ctx, spanName)

	return ctx, otel.NewScope(span)
}

func NewOtel() otel.Otel {
	return &otelImpl{
		tracer: noop.NewTracerProvider().Tracer("mocks"),
	}
}

func NewScope() otel.Scope {
	_, span := noop.NewTracerProvider().Tracer("mocks").Start(context.Background(), "mocks")

	return otel.NewScope(span)
}
