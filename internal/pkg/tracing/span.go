package tracing

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// SubLayer tags infrastructure spans with the kind of dependency they touch.
type SubLayer string

const (
	SubLayerDatabase SubLayer = "database"
	SubLayerBroker   SubLayer = "broker"
	SubLayerPush     SubLayer = "push"
)

// StartApplication opens a span around a use case.
func StartApplication(ctx context.Context, operation string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	ctx, span := otel.Tracer(instrumentationName).Start(ctx, "Business "+operation)
	span.SetAttributes(append(attrs, attribute.String("layer", "application"))...)
	return ctx, span
}

// StartInfrastructure opens a span around an adapter call.
func StartInfrastructure(ctx context.Context, operation string, sub SubLayer, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
	ctx, span := otel.Tracer(instrumentationName).Start(ctx, string(sub)+" "+operation, opts...)
	span.SetAttributes(
		attribute.String("layer", "infrastructure"),
		attribute.String("subLayer", string(sub)),
	)
	return ctx, span
}

// Fail records err on span. A nil err is ignored.
func Fail(span trace.Span, err error) {
	if err == nil {
		return
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
