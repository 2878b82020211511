package tracelog

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
)

func TestStartSpan_NoExporter(t *testing.T) {
	// Without a configured endpoint the global no-op provider is in
	// place: spans are inert but never nil.
	ctx, span := StartSpan(context.Background(), "test.operation",
		attribute.String("query.id", "q-1"),
	)
	require.NotNil(t, ctx)
	require.NotNil(t, span)
	span.End()
}

func TestInitializeTracing_Disabled(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ServiceName = "test"
	cfg.LogDir = t.TempDir()

	svc := NewService(cfg)
	require.NoError(t, svc.Initialize())
	t.Cleanup(func() { _ = svc.Close() })

	assert.Nil(t, svc.tracerShutdown)
}

func TestInitializeTracing_Endpoint(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ServiceName = "test"
	cfg.LogDir = t.TempDir()
	// The exporter dials lazily; no collector needs to be listening.
	cfg.TracingEndpoint = "127.0.0.1:4317"
	cfg.ShutdownTimeout = 200 * time.Millisecond

	svc := NewService(cfg)
	require.NoError(t, svc.Initialize())
	assert.NotNil(t, svc.tracerShutdown)

	require.NoError(t, svc.Close())
	assert.Nil(t, svc.tracerShutdown)
}

func TestInitializeTracing_EnvEndpoint(t *testing.T) {
	t.Setenv(EnvOTLPEndpoint, "127.0.0.1:4317")

	cfg := DefaultConfig()
	cfg.ServiceName = "test"
	cfg.LogDir = t.TempDir()
	cfg.ShutdownTimeout = 200 * time.Millisecond

	svc := NewService(cfg)
	require.NoError(t, svc.Initialize())
	assert.NotNil(t, svc.tracerShutdown)
	_ = svc.Close()
}
