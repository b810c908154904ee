package otel

import (
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

func TestToAttribute(t *testing.T) {
	at := time.Date(2030, 1, 1, 9, 0, 0, 0, time.UTC)

	assert.Equal(t, attribute.String("k", "v"), toAttribute("k", "v"))
	assert.Equal(t, attribute.Int("k", 3), toAttribute("k", 3))
	assert.Equal(t, attribute.Int64("k", 3), toAttribute("k", int64(3)))
	assert.Equal(t, attribute.Bool("k", true), toAttribute("k", true))
	assert.Equal(t, attribute.String("k", "2030-01-01T09:00:00Z"), toAttribute("k", at))
	assert.Equal(t, attribute.String("k", "45m0s"), toAttribute("k", 45*time.Minute))
	assert.Equal(t, attribute.String("k", "[1 2]"), toAttribute("k", []int{1, 2}))
}

func TestScopeRecordsErrors(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	tracer := &otelImpl{provider: provider}

	_, ok := tracer.NewScope(t.Context(), "test", "booking.Create")
	ok.SetAttribute("booking_id", "b-1")
	ok.TraceIfError(nil)
	ok.End()

	_, failed := tracer.NewScope(t.Context(), "test", "booking.Cancel")
	failed.TraceIfError(errors.New("already cancelled"))
	failed.End()

	spans := recorder.Ended()
	require.Len(t, spans, 2)

	assert.Equal(t, "booking.Create", spans[0].Name())
	assert.Equal(t, codes.Unset, spans[0].Status().Code)
	assert.Contains(t, spans[0].Attributes(), attribute.String("booking_id", "b-1"))

	assert.Equal(t, codes.Error, spans[1].Status().Code)
	assert.Equal(t, "already cancelled", spans[1].Status().Description)
}
