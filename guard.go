package tracelog

import (
	stderrs "errors"
	"io"
	"strings"
	"sync"

	"go.uber.org/atomic"

	"github.com/openmeta-io/tracelog/errs"
)

// ErrAlreadyInitialized is returned by Init when a previous Init succeeded
// and its Guard has not been closed yet. Silent replacement would lose
// records buffered by the prior pipeline, so reinitialization requires an
// explicit Guard.Close first.
var ErrAlreadyInitialized = stderrs.New("tracelog: global logging already initialized")

// globalService is the process-wide pipeline installed by Init and
// uninstalled by the owning Guard's Close.
var globalService atomic.Pointer[Service]

// Guard keeps a logging pipeline alive. Hold it for as long as logging is
// needed; Close flushes buffered records, tears the pipeline down and, for
// the global guard, uninstalls the process-wide logger. Dropping the guard
// without closing it forfeits the flush-on-exit guarantee.
type Guard struct {
	svc    *Service
	global bool
	once   sync.Once
}

// Init installs the process-wide logging/tracing pipeline described by cfg
// and returns the Guard that owns its lifetime.
//
// serviceName labels every record and is the log file stem under
// cfg.LogDir. The EnvLevel variable, when set, overrides cfg.Level. A
// second Init while the previous Guard is open fails with
// ErrAlreadyInitialized; after Guard.Close, Init may be called again.
func Init(serviceName string, cfg Config) (*Guard, error) {
	const op errs.Op = "tracelog.Init"

	if strings.TrimSpace(serviceName) == emptyString {
		return nil, errs.New(op).Msg(errMsgEmptyService)
	}
	if globalService.Load() != nil {
		return nil, ErrAlreadyInitialized
	}

	cfg.ServiceName = serviceName
	svc := NewService(cfg)
	if err := svc.Initialize(); err != nil {
		return nil, errs.New(op).Err(err).Msg("initializing logging pipeline")
	}

	if !globalService.CompareAndSwap(nil, svc) {
		// Lost the race to a concurrent Init; discard our pipeline.
		_ = svc.Close()
		return nil, ErrAlreadyInitialized
	}

	return &Guard{svc: svc, global: true}, nil
}

// InitGlobalTracing is the positional variant of Init. It fills a default
// Config with the given log directory, minimum level and optional extra
// sink (nil means no extra output).
func InitGlobalTracing(serviceName, logDir, level string, extraSink io.Writer) (*Guard, error) {
	cfg := DefaultConfig()
	cfg.LogDir = logDir
	cfg.Level = level
	cfg.ExtraSink = extraSink
	return Init(serviceName, cfg)
}

// Close flushes and tears down the guarded pipeline. It blocks until
// in-flight records are flushed (bounded by the configured shutdown
// timeout) and is safe to call multiple times; only the first call does
// work.
func (g *Guard) Close() error {
	if g == nil || g.svc == nil {
		return nil
	}
	var err error
	g.once.Do(func() {
		err = g.svc.Close()
		if g.global {
			globalService.CompareAndSwap(g.svc, nil)
		}
	})
	return err
}

// L returns the global logger installed by Init. Before Init, or after the
// guard is closed, it returns a no-op logger that suppresses everything.
func L() Logger {
	if svc := globalService.Load(); svc != nil {
		return svc
	}
	return &noopLogger{}
}
