package observability

import (
	"context"
	"net/url"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	semconv "go.opentelemetry.io/otel/semconv/v1.37.0"
	"go.opentelemetry.io/otel/trace"
)

// TracerName names the tracer used for client spans.
const TracerName = "github.com/gezibash/geoclient"

// StartSpan creates an internal span with the given name and attributes.
func StartSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return otel.Tracer(TracerName).Start(ctx, name, trace.WithAttributes(attrs...))
}

// StartRequestSpan creates a client span for one HTTP request to target.
// The span is named after the method alone; the URL carries the feature id.
func StartRequestSpan(ctx context.Context, method string, target *url.URL) (context.Context, trace.Span) {
	attrs := []attribute.KeyValue{
		semconv.HTTPRequestMethodKey.String(method),
		semconv.URLFull(target.String()),
		semconv.ServerAddress(target.Hostname()),
	}
	return otel.Tracer(TracerName).Start(ctx, method,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attrs...),
	)
}

// SetResponseStatus records the HTTP status code on span. Status codes are
// not treated as span errors; only transport and decoding failures are.
func SetResponseStatus(span trace.Span, code int) {
	span.SetAttributes(semconv.HTTPResponseStatusCode(code))
}

// EndSpan ends a span, recording any error.
func EndSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
