package otel

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func newRecordedScope(t *testing.T) (Scope, *tracetest.SpanRecorder) {
	t.Helper()

	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))

	o := &otelImpl{TracerProvider: provider}
	_, scope := o.NewScope(context.Background(), "test", "test.span")

	return scope, recorder
}

func TestScope_TypedAttributes(t *testing.T) {
	scope, recorder := newRecordedScope(t)

	at := time.Date(2026, 3, 1, 14, 0, 0, 0, time.UTC)

	scope.SetAttributes(map[string]any{
		"booking.count":   3,
		"booking.charges": 45.5,
		"checked_at":      at,
		"remaining":       90 * time.Minute,
	})
	scope.AddEvent("booking.monitored", map[string]any{"booking.code": "BK-1"})
	scope.TraceIfError(errors.New("boom"))
	scope.End()

	spans := recorder.Ended()
	require.Len(t, spans, 1)

	attrs := map[attribute.Key]attribute.Value{}
	for _, kv := range spans[0].Attributes() {
		attrs[kv.Key] = kv.Value
	}

	assert.Equal(t, int64(3), attrs["booking.count"].AsInt64())
	assert.InDelta(t, 45.5, attrs["booking.charges"].AsFloat64(), 0.001)
	assert.Equal(t, "2026-03-01T14:00:00Z", attrs["checked_at"].AsString())
	assert.Equal(t, int64(5400), attrs["remaining"].AsInt64())

	require.Len(t, spans[0].Events(), 2)
	assert.Equal(t, "booking.monitored", spans[0].Events()[0].Name)
	assert.Equal(t, codes.Error, spans[0].Status().Code)
}

func TestScope_TraceIfErrorIgnoresNil(t *testing.T) {
	scope, recorder := newRecordedScope(t)

	scope.TraceIfError(nil)
	scope.End()

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, codes.Unset, spans[0].Status().Code)
	assert.Empty(t, spans[0].Events())
}
