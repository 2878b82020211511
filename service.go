package tracelog

import (
	"context"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"go.uber.org/atomic"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/openmeta-io/tracelog/errs"
)

// Service owns one logging pipeline: the zerolog logger, its writers and
// the bookkeeping that lets Close wait for in-flight events. The global
// pipeline installed by Init is a Service; NewFileLogger builds detached
// ones.
type Service struct {
	Config *Config

	logger        atomic.Pointer[zerolog.Logger]
	isInitialized atomic.Bool
	initOnce      sync.Once

	// mu excludes Close from running while an event is being built;
	// wg/activeOps track events that have been handed out but not yet
	// terminated with Msg/Msgf/Send.
	mu        sync.RWMutex
	wg        sync.WaitGroup
	activeOps atomic.Int64

	fileWriter *lumberjack.Logger

	// plainText switches the file writer to bare message lines. Used by
	// NewFileLogger for query/audit style logs.
	plainText bool

	tracerShutdown func(context.Context) error
}

// NewService returns an uninitialized Service for the given config. Most
// callers want Init instead, which also installs the global pipeline.
func NewService(cfg Config) *Service {
	return &Service{Config: &cfg}
}

// Initialize builds the writers and installs the logger. It runs at most
// once per Service; repeated calls return the nil result of the no-op.
func (s *Service) Initialize() error {
	if s == nil {
		return errs.New("tracelog.Initialize").Msg(errMsgNilService)
	}
	var err error
	s.initOnce.Do(func() {
		err = s.initialize()
	})
	return err
}

func (s *Service) initialize() error {
	const op errs.Op = "tracelog.initialize"
	if s.Config == nil {
		return errs.New(op).Msg(errMsgNilConfig)
	}

	s.Config.Level = levelFromEnv(s.Config.Level)

	if err := validateConfig(s.Config); err != nil {
		return errs.New(op).Err(err).Msg(errMsgConfigInvalid)
	}

	if err := os.MkdirAll(s.Config.LogDir, 0o755); err != nil {
		return errs.New(op).Err(err).Msg(errMsgLogDir)
	}

	writers := s.initializeWriters()

	if s.fileWriter != nil {
		// Surface an unwritable directory now rather than on first write.
		if err := probeWritable(s.fileWriter.Filename); err != nil {
			return errs.New(op).Err(err).Msg(errMsgLogDir)
		}
	}

	mw := zerolog.MultiLevelWriter(writers...)
	logger := zerolog.New(mw)
	if !s.plainText {
		logger = logger.With().Str("service", s.Config.ServiceName).Logger()
	}

	level, err := parseLevel(s.Config.Level)
	if err != nil {
		return errs.New(op).Err(err).Msg(errMsgConfigInvalid)
	}
	logger = logger.Level(level)

	if s.Config.WithTimestamp {
		logger = logger.With().Timestamp().Logger()
	}
	if s.Config.SkipFrameCount > 0 {
		logger = logger.With().CallerWithSkipFrameCount(s.Config.SkipFrameCount).Logger()
	}

	if err := s.initializeTracing(context.Background()); err != nil {
		return errs.New(op).Err(err).Msg("initializing span export")
	}

	s.logger.Store(&logger)
	s.isInitialized.Store(true)
	return nil
}

// Close flushes the pipeline: it waits (bounded by ShutdownTimeout) for
// events that are still in flight, closes the file writer and shuts down
// the span exporter. It is safe to call multiple times; only the first
// call does work.
func (s *Service) Close() error {
	if s == nil {
		return nil
	}
	// First caller wins; everyone else sees an already-closed service.
	if !s.isInitialized.CompareAndSwap(true, false) {
		return nil
	}

	timeout := defaultShutdownTimeout
	warn := false
	if s.Config != nil {
		if s.Config.ShutdownTimeout > 0 {
			timeout = s.Config.ShutdownTimeout
		}
		warn = s.Config.ShutdownTimeoutWarning
	}

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(timeout):
		if warn {
			if logger := s.logger.Load(); logger != nil {
				logger.Warn().
					Int64("active_operations", s.activeOps.Load()).
					Msg("Logger shutdown timeout exceeded")
			}
		}
	}

	// Exclude event builders between their wg.Add and their initialized
	// re-check, then tear down.
	s.mu.Lock()
	defer s.mu.Unlock()

	s.logger.Store(nil)

	var closeErr error
	if s.fileWriter != nil {
		closeErr = s.fileWriter.Close()
		s.fileWriter = nil
	}

	if s.tracerShutdown != nil {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		if err := s.tracerShutdown(ctx); err != nil && closeErr == nil {
			closeErr = err
		}
		s.tracerShutdown = nil
	}

	if closeErr != nil {
		return errs.New("tracelog.Close").Err(closeErr).Msg("closing logging pipeline")
	}
	return nil
}

// TraceWith returns a LogEvent for structured Trace-level logging.
func (s *Service) TraceWith() LogEvent {
	return logEventBuilder(s, zerolog.TraceLevel)
}

// DebugWith returns a LogEvent for structured Debug-level logging.
func (s *Service) DebugWith() LogEvent {
	return logEventBuilder(s, zerolog.DebugLevel)
}

// InfoWith returns a LogEvent for structured Info-level logging.
// Example: svc.InfoWith().Str("user_id", id).Int("count", 5).Msg("User processed")
func (s *Service) InfoWith() LogEvent {
	return logEventBuilder(s, zerolog.InfoLevel)
}

// WarnWith returns a LogEvent for structured Warn-level logging.
func (s *Service) WarnWith() LogEvent {
	return logEventBuilder(s, zerolog.WarnLevel)
}

// ErrorWith returns a LogEvent for structured Error-level logging.
// Example: svc.ErrorWith().Err(err).Str("operation", "flush").Msg("Write failed")
func (s *Service) ErrorWith() LogEvent {
	return logEventBuilder(s, zerolog.ErrorLevel)
}

// FatalWith returns a LogEvent for structured Fatal-level logging.
// The process exits after the event is written.
func (s *Service) FatalWith() LogEvent {
	return logEventBuilder(s, zerolog.FatalLevel)
}

// PanicWith returns a LogEvent for structured Panic-level logging.
func (s *Service) PanicWith() LogEvent {
	return logEventBuilder(s, zerolog.PanicLevel)
}

// With returns a LogContext for creating a child logger with
// pre-populated fields.
// Example: reqLogger := svc.With().Str("request_id", id).Logger()
func (s *Service) With() LogContext {
	if s == nil || !s.isInitialized.Load() {
		return &noopLogContext{}
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.isInitialized.Load() {
		return &noopLogContext{}
	}
	logger := s.logger.Load()
	if logger == nil {
		return &noopLogContext{}
	}

	return &logContext{
		context: logger.With(),
		service: s,
	}
}

// Hook installs zerolog hooks on the active logger.
func (s *Service) Hook(hooks ...zerolog.Hook) {
	if s == nil || !s.isInitialized.Load() {
		return
	}

	// CAS loop so concurrent Hook calls never lose an installation.
	for {
		oldLogger := s.logger.Load()
		if oldLogger == nil {
			return
		}

		newLogger := oldLogger.Hook(hooks...)

		if s.logger.CompareAndSwap(oldLogger, &newLogger) {
			break
		}
	}
}
