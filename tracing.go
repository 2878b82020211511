package tracelog

import (
	"context"
	"os"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.34.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/openmeta-io/tracelog/errs"
)

const tracerName = "tracelog"

// initializeTracing installs an OTLP/gRPC span exporter when a collector
// endpoint is configured, either on the Config or through EnvOTLPEndpoint.
// Without an endpoint the global no-op provider stays in place and
// StartSpan is inert. The exporter dials lazily, so an unreachable
// collector does not fail Initialize.
func (s *Service) initializeTracing(ctx context.Context) error {
	const op errs.Op = "tracelog.initializeTracing"

	endpoint := strings.TrimSpace(s.Config.TracingEndpoint)
	if endpoint == emptyString {
		endpoint = strings.TrimSpace(os.Getenv(EnvOTLPEndpoint))
	}
	if endpoint == emptyString {
		return nil
	}

	exporter, err := otlptracegrpc.New(ctx,
		otlptracegrpc.WithEndpoint(endpoint),
		otlptracegrpc.WithInsecure(),
	)
	if err != nil {
		return errs.New(op).Err(err).Msg("creating OTLP span exporter")
	}

	res, err := resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(s.Config.ServiceName),
		),
	)
	if err != nil {
		return errs.New(op).Err(err).Msg("building tracing resource")
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(tp)
	s.tracerShutdown = tp.Shutdown

	return nil
}

// StartSpan creates a span as a child of the span in ctx, or a root span
// when ctx carries none. The caller must call span.End() when the
// operation is done (typically via defer). When Init configured no
// exporter, the returned span is a no-op and every call on it is inert.
func StartSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return otel.Tracer(tracerName).Start(ctx, name, trace.WithAttributes(attrs...))
}
