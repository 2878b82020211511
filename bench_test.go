package tracelog

import (
	"io"
	"testing"

	"github.com/stretchr/testify/require"
)

func newBenchService(b *testing.B) *Service {
	b.Helper()
	cfg := DefaultConfig()
	cfg.ServiceName = "bench"
	cfg.LogDir = b.TempDir()
	cfg.Level = "info"
	cfg.FileLogging = false
	cfg.ExtraSink = io.Discard

	svc := NewService(cfg)
	require.NoError(b, svc.Initialize())
	b.Cleanup(func() { _ = svc.Close() })
	return svc
}

func BenchmarkInfoWith(b *testing.B) {
	svc := newBenchService(b)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		svc.InfoWith().Str("key", "value").Int("i", i).Msg("benchmark message")
	}
}

func BenchmarkInfoWith_Suppressed(b *testing.B) {
	svc := newBenchService(b)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		// Below the configured level: measures the early-return path.
		svc.DebugWith().Str("key", "value").Msg("suppressed")
	}
}

func BenchmarkContextLogger(b *testing.B) {
	svc := newBenchService(b)
	child := svc.With().Str("request_id", "r-1").Logger()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		child.InfoWith().Int("i", i).Msg("benchmark message")
	}
}
