package tracing

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func useRecorder(t *testing.T) *tracetest.SpanRecorder {
	t.Helper()
	prev := otel.GetTracerProvider()
	rec := tracetest.NewSpanRecorder()
	otel.SetTracerProvider(sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(rec)))
	t.Cleanup(func() { otel.SetTracerProvider(prev) })
	return rec
}

func TestInitTracer(t *testing.T) {
	prev := otel.GetTracerProvider()
	defer otel.SetTracerProvider(prev)

	shutdown, err := InitTracer("test-service", "localhost:4317")
	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))
}

func TestStartSpan(t *testing.T) {
	rec := useRecorder(t)

	t.Run("子Span共享TraceID", func(t *testing.T) {
		ctx, root := StartSpan(context.Background(), "order", "CreateOrder")
		_, child := StartSpan(ctx, "order", "SaveOrder")

		assert.Equal(t, root.SpanContext().TraceID(), child.SpanContext().TraceID())
		assert.NotEqual(t, root.SpanContext().SpanID(), child.SpanContext().SpanID())
		assert.Equal(t, root.SpanContext().TraceID().String(), ExtractTraceID(ctx))

		child.End()
		root.End()
	})

	t.Run("记录错误", func(t *testing.T) {
		_, span := StartSpan(context.Background(), "order", "SetStatus")
		RecordError(span, errors.New("boom"))
		span.End()

		ended := rec.Ended()
		require.NotEmpty(t, ended)
		last := ended[len(ended)-1]
		assert.Equal(t, codes.Error, last.Status().Code)
	})

	t.Run("无Span时TraceID为空", func(t *testing.T) {
		assert.Empty(t, ExtractTraceID(context.Background()))
	})
}
