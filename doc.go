// Package tracelog initializes a process-wide structured logging and
// tracing pipeline in a single call and hands back a Guard whose Close
// flushes everything exactly once.
//
// Key features
//   - One-shot global init: Init(service, Config) or the positional
//     InitGlobalTracing(service, dir, level, extraSink)
//   - Rolling log files via lumberjack, optional console output, and an
//     optional caller-supplied extra sink fanned in alongside them
//   - Guard-owned lifecycle: Close waits for in-flight log events
//     (bounded timeout), flushes the file writer, and shuts down the
//     span exporter
//   - Optional OTLP span export when a collector endpoint is configured
//   - Error history enrichment: for any Err/AnErr the record includes
//     the full error chain (outermost -> root), the root cause string, a
//     joined human-readable history, and operation identifiers when the
//     error is an errs.DetailedError
//
// Typical usage
//
//	guard, err := tracelog.Init("bend-query", cfg)
//	if err != nil { panic(err) }
//	defer guard.Close()
//
//	tracelog.L().InfoWith().Str("user_id", id).Msg("processed")
//	req := tracelog.L().With().Str("request_id", rid).Logger()
//	req.ErrorWith().Err(err).Msg("failed")
package tracelog
