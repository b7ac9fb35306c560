package tracing_test

import (
	"testing"

	"printdesk/internal/pkg/tracing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twmb/franz-go/pkg/kgo"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

func TestKafkaPropagation(t *testing.T) {
	tp := sdktrace.NewTracerProvider()
	t.Cleanup(func() { _ = tp.Shutdown(t.Context()) })

	ctx, span := tp.Tracer("test").Start(t.Context(), "produce")
	defer span.End()

	headers := tracing.KafkaHeaders(ctx)
	require.Len(t, headers, 1)
	assert.Equal(t, "traceparent", headers[0].Key)

	links := tracing.KafkaLinks(t.Context(), headers)
	require.Len(t, links, 1)
	assert.Equal(t, span.SpanContext().TraceID(), links[0].SpanContext.TraceID())
}

func TestKafkaPropagation_NoSpan(t *testing.T) {
	assert.Empty(t, tracing.KafkaHeaders(t.Context()))
	assert.Nil(t, tracing.KafkaLinks(t.Context(), []kgo.RecordHeader{{Key: "other", Value: []byte("x")}}))
}
