package tracing

import (
	"context"
	"encoding/json"
	"net/http"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.17.0"
	oteltrace "go.opentelemetry.io/otel/trace"
)

// Tracer wraps the otel tracer with the span plumbing this repo needs:
// in-process spans, spans continued from incoming HTTP headers, spans
// continued from a span context carried inside a queue message, and header
// injection for outgoing calls.
type Tracer interface {
	Start(ctx context.Context, spanName string) (context.Context, oteltrace.Span)
	StartSpanFromHeader(ctx context.Context, h http.Header, spanName string) (context.Context, oteltrace.Span)
	StartSpanWithContext(
		ctx context.Context,
		spanName string,
		spanContext oteltrace.SpanContext,
	) (context.Context, oteltrace.Span)
	InjectHTTP(ctx context.Context, h http.Header)
	Shutdown() error
}

type tracer struct {
	tracer oteltrace.Tracer
	tp     *trace.TracerProvider
}

func (t tracer) Start(ctx context.Context, spanName string) (context.Context, oteltrace.Span) {
	return t.tracer.Start(ctx, spanName)
}

func (t tracer) StartSpanFromHeader(
	ctx context.Context,
	h http.Header,
	spanName string,
) (context.Context, oteltrace.Span) {
	ctx = propagation.TraceContext{}.Extract(ctx, propagation.HeaderCarrier(h))

	return t.Start(ctx, spanName)
}

func (t tracer) StartSpanWithContext(
	ctx context.Context,
	spanName string,
	spanContext oteltrace.SpanContext,
) (context.Context, oteltrace.Span) {
	ctx = oteltrace.ContextWithRemoteSpanContext(ctx, spanContext.WithRemote(true))

	return t.tracer.Start(ctx, spanName)
}

func (t tracer) InjectHTTP(ctx context.Context, h http.Header) {
	propagation.TraceContext{}.Inject(ctx, propagation.HeaderCarrier(h))
}

func (t tracer) Shutdown() error {
	ctx := context.Background()
	_ = t.tp.ForceFlush(ctx)

	return t.tp.Shutdown(ctx)
}

// NewTracer creates a Tracer exporting through the given exporter, with the
// service name recorded on every span.
func NewTracer(serviceName string, exporter trace.SpanExporter) Tracer {
	tp := trace.NewTracerProvider(
		trace.WithBatcher(exporter),
		trace.WithResource(resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(serviceName),
		)),
	)

	otel.SetTextMapPropagator(
		propagation.NewCompositeTextMapPropagator(
			propagation.TraceContext{},
			propagation.Baggage{}),
	)
	otel.SetTracerProvider(tp)

	return tracer{
		tracer: tp.Tracer(serviceName),
		tp:     tp,
	}
}

// SpanContext is the JSON-transportable form of an otel span context, used
// to link queue consumers back to the publishing request.
type SpanContext struct {
	SpanContext oteltrace.SpanContext
	TraceID     string `json:"TraceID"`
	SpanID      string `json:"SpanID"`
	TraceFlags  string `json:"TraceFlags"`
	TraceState  string `json:"TraceState"`
	Remote      bool   `json:"Remote"`
}

func NewSpanContext(spanContext oteltrace.SpanContext) SpanContext {
	return SpanContext{
		SpanContext: spanContext,
		TraceID:     spanContext.TraceID().String(),
		SpanID:      spanContext.SpanID().String(),
		TraceFlags:  spanContext.TraceFlags().String(),
		TraceState:  spanContext.TraceState().String(),
		Remote:      spanContext.IsRemote(),
	}
}

func (s *SpanContext) MarshalJSON() ([]byte, error) {
	return s.SpanContext.MarshalJSON()
}

func (s *SpanContext) UnmarshalJSON(data []byte) error {
	spanContext, err := UnmarshalSpanContext(data)
	if err != nil {
		return err
	}

	s.SpanContext = spanContext
	s.TraceID = spanContext.TraceID().String()
	s.SpanID = spanContext.SpanID().String()
	s.TraceFlags = spanContext.TraceFlags().String()
	s.TraceState = spanContext.TraceState().String()
	s.Remote = spanContext.IsRemote()

	return nil
}

// UnmarshalSpanContext rebuilds an otel span context from its JSON form.
// Unparseable ids fall back to the zero value rather than failing, so a
// damaged message still gets processed, just without the link.
func UnmarshalSpanContext(data []byte) (oteltrace.SpanContext, error) {
	var transported struct {
		TraceID string `json:"TraceID"`
		SpanID  string `json:"SpanID"`
		Remote  bool   `json:"Remote"`
	}
	if err := json.Unmarshal(data, &transported); err != nil {
		return oteltrace.SpanContext{}, err
	}

	traceID, err := oteltrace.TraceIDFromHex(transported.TraceID)
	if err != nil {
		traceID = oteltrace.TraceID{}
	}

	spanID, err := oteltrace.SpanIDFromHex(transported.SpanID)
	if err != nil {
		spanID = oteltrace.SpanID{}
	}

	return oteltrace.NewSpanContext(oteltrace.SpanContextConfig{
		TraceID:    traceID,
		SpanID:     spanID,
		TraceFlags: oteltrace.FlagsSampled,
		Remote:     transported.Remote,
	}), nil
}
