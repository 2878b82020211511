package tracelog

import (
	"io"
	"time"
)

// Config describes the global logging/tracing pipeline. It is read once by
// Init and never mutated afterwards.
type Config struct {
	// ServiceName labels emitted records and is the log file stem under
	// LogDir. Filled from the Init argument.
	ServiceName string `validate:"required"`

	// LogDir is the destination directory for file output. Created if
	// absent.
	LogDir string `validate:"required"`

	// Level is the inclusive minimum severity: trace, debug, info, warn,
	// error, fatal or panic. EnvLevel overrides it when set.
	Level string `validate:"required"`

	// ExtraSink is an optional additional output target fanned in
	// alongside the configured writers. Nil means no extra output.
	ExtraSink io.Writer `validate:"-"`

	// ConsoleLogging enables human-readable output on stderr.
	ConsoleLogging    bool
	ConsoleNoColor    bool
	ConsoleTimeFormat string

	// FileLogging enables the rolling file writer. When no channel is
	// enabled at all, file logging is forced on so records are never
	// silently dropped.
	FileLogging       bool
	LogFileMaxSizeMB  int `validate:"gte=0"`
	LogFileMaxBackups int `validate:"gte=0"`
	LogFileMaxAgeDays int `validate:"gte=0"`
	LogFileCompress   bool

	WithTimestamp  bool
	SkipFrameCount int `validate:"gte=0"`

	// ShutdownTimeout bounds how long Guard.Close waits for in-flight
	// log events before giving up on them.
	ShutdownTimeout        time.Duration `validate:"gte=0"`
	ShutdownTimeoutWarning bool

	// TracingEndpoint is an optional OTLP/gRPC collector endpoint
	// (host:port). Empty disables span export unless EnvOTLPEndpoint is
	// set.
	TracingEndpoint string
}

// DefaultConfig returns the configuration Init starts from when the caller
// does not supply one of its own.
func DefaultConfig() Config {
	return Config{
		Level:                  "info",
		FileLogging:            true,
		LogFileMaxSizeMB:       100,
		LogFileMaxBackups:      3,
		LogFileMaxAgeDays:      7,
		WithTimestamp:          true,
		ShutdownTimeout:        defaultShutdownTimeout,
		ShutdownTimeoutWarning: true,
	}
}
