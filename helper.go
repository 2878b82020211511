package tracelog

import (
	stderrs "errors"
	"strings"

	"github.com/rs/zerolog"

	"github.com/openmeta-io/tracelog/errs"
)

// parseLevel parses a string log level into a zerolog.Level. Matching is
// case-insensitive so env overrides like "DEBUG" work.
// Returns zerolog.NoLevel and an error if parsing fails.
func parseLevel(level string) (zerolog.Level, error) {
	l, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		return zerolog.NoLevel, err
	}
	return l, nil
}

// buildErrorChain walks an error's cause chain and returns:
//   - chain: outermost -> innermost error messages
//   - ops: operation identifiers for DetailedError links ("" if not available)
//   - root: the innermost error message
//   - rootOp: the innermost operation identifier if available
//
// The traversal prefers errs.DetailedError.Cause() and then falls back to
// stdlib errors.Unwrap. It guards against excessive depth and repeated
// messages to avoid cycles.
func buildErrorChain(err error) (chain []string, ops []string, root string, rootOp string) {
	const maxDepth = 50
	visited := 0
	seen := map[string]bool{}

	for err != nil && visited < maxDepth {
		visited++

		if dErr, ok := errs.AsDetailedError(err); ok && dErr != nil {
			msg := dErr.Error()
			chain = append(chain, msg)
			ops = append(ops, string(dErr.Op()))
			// prefer unwrapping via our error type first
			err = dErr.Cause()
			continue
		}

		// Fallback: generic error
		msg := err.Error()
		// avoid infinite loops if messages repeat due to unusual cycles
		if seen[msg] {
			break
		}
		seen[msg] = true
		chain = append(chain, msg)
		ops = append(ops, "")
		err = stderrs.Unwrap(err)
	}

	if len(chain) > 0 {
		root = chain[len(chain)-1]
	}
	if len(ops) > 0 {
		rootOp = ops[len(ops)-1]
	}
	return
}

// joinChain returns a single string for the error chain separated by " -> ".
func joinChain(chain []string) string {
	if len(chain) == 0 {
		return ""
	}
	return strings.Join(chain, " -> ")
}

// logEventBuilder creates a log event for the given level.
// It registers the event with the service's in-flight tracking so Close
// can wait for it, and acquires the read lock so Close cannot tear the
// pipeline down mid-build. If the level is disabled, it returns a no-op
// LogEvent.
func logEventBuilder(s *Service, level zerolog.Level) LogEvent {
	if s == nil || !s.isInitialized.Load() {
		return newLogEvent(nil)
	}
	if level == zerolog.NoLevel {
		return newLogEvent(nil)
	}

	s.activeOps.Add(1)
	s.wg.Add(1)

	s.mu.RLock()

	// Double-check after acquiring lock
	if !s.isInitialized.Load() {
		s.mu.RUnlock()
		s.activeOps.Add(-1)
		s.wg.Done()
		return newLogEvent(nil)
	}

	logger := s.logger.Load()
	if logger == nil {
		s.mu.RUnlock()
		s.activeOps.Add(-1)
		s.wg.Done()
		return newLogEvent(nil)
	}

	if logger.GetLevel() > level {
		s.mu.RUnlock()
		s.activeOps.Add(-1)
		s.wg.Done()
		return newLogEvent(nil)
	}

	var event *zerolog.Event
	switch level {
	case zerolog.TraceLevel:
		event = logger.Trace()
	case zerolog.DebugLevel:
		event = logger.Debug()
	case zerolog.InfoLevel:
		event = logger.Info()
	case zerolog.WarnLevel:
		event = logger.Warn()
	case zerolog.ErrorLevel:
		event = logger.Error()
	case zerolog.FatalLevel:
		event = logger.Fatal()
	case zerolog.PanicLevel:
		event = logger.Panic()
	default:
		s.mu.RUnlock()
		s.activeOps.Add(-1)
		s.wg.Done()
		return newLogEvent(nil)
	}

	s.mu.RUnlock()

	// Wrap the event so the in-flight counters drop when it terminates.
	return newTrackedLogEvent(event, s)
}
