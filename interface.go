package tracelog

// Logger is the structured logging surface handed out by the global
// pipeline and by With(). Events below the configured level are no-ops.
type Logger interface {
	TraceWith() LogEvent
	DebugWith() LogEvent
	InfoWith() LogEvent
	WarnWith() LogEvent
	ErrorWith() LogEvent
	FatalWith() LogEvent
	PanicWith() LogEvent

	// With creates a child logger with pre-populated fields that will be
	// included in all subsequent logs.
	// Example: reqLogger := logger.With().Str("request_id", id).Logger()
	With() LogContext
}
