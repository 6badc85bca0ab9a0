package otel_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"bookly/infras/otel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func newRecorder() (*tracetest.SpanRecorder, otel.Otel) {
	recorder := tracetest.NewSpanRecorder()
	provider := trace.NewTracerProvider(trace.WithSpanProcessor(recorder))

	return recorder, otel.NewWithProvider(provider)
}

func TestScope_Attributes(t *testing.T) {
	recorder, ot := newRecorder()

	_, scope := ot.NewScope(context.Background(), "test", "test.Attributes")
	scope.SetAttributes(map[string]any{
		"appointment.id":     "a-1",
		"slots.count":        12,
		"booking.at":         time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC),
		"relay.elapsed":      1500 * time.Millisecond,
		"business.confirmed": true,
	})
	scope.AddEvent("done")
	scope.End()

	spans := recorder.Ended()
	require.Len(t, spans, 1)

	attrs := map[attribute.Key]attribute.Value{}
	for _, kv := range spans[0].Attributes() {
		attrs[kv.Key] = kv.Value
	}

	assert.Equal(t, "test.Attributes", spans[0].Name())
	assert.Equal(t, "a-1", attrs["appointment.id"].AsString())
	assert.Equal(t, int64(12), attrs["slots.count"].AsInt64())
	assert.Equal(t, "2024-05-01T09:00:00Z", attrs["booking.at"].AsString())
	assert.Equal(t, int64(1500), attrs["relay.elapsed_ms"].AsInt64())
	assert.True(t, attrs["business.confirmed"].AsBool())
	require.Len(t, spans[0].Events(), 1)
	assert.Equal(t, "done", spans[0].Events()[0].Name)
}

func TestScope_TraceIfError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus codes.Code
	}{
		{name: "nil error leaves status unset", err: nil, wantStatus: codes.Unset},
		{name: "error marks span", err: errors.New("slot unavailable"), wantStatus: codes.Error},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder, ot := newRecorder()

			_, scope := ot.NewScope(context.Background(), "test", "test.TraceIfError")
			scope.TraceIfError(tt.err)
			scope.End()

			spans := recorder.Ended()
			require.Len(t, spans, 1)
			assert.Equal(t, tt.wantStatus, spans[0].Status().Code)
		})
	}
}
