package tracelog

import (
	"strings"

	"github.com/openmeta-io/tracelog/errs"
)

// NewFileLogger builds a standalone rolling-file logger that is completely
// independent of the global pipeline: its records are plain message lines
// (no timestamp or level prefix, structured fields appended as key=value),
// which suits query or audit logs that are parsed by line. The returned
// Guard owns the writer; close it to flush.
func NewFileLogger(name, dir string) (Logger, *Guard, error) {
	const op errs.Op = "tracelog.NewFileLogger"

	if strings.TrimSpace(name) == emptyString {
		return nil, nil, errs.New(op).Msg(errMsgEmptyService)
	}

	cfg := DefaultConfig()
	cfg.ServiceName = name
	cfg.LogDir = dir
	cfg.FileLogging = true
	cfg.ConsoleLogging = false
	cfg.WithTimestamp = false

	svc := NewService(cfg)
	svc.plainText = true
	if err := svc.Initialize(); err != nil {
		return nil, nil, errs.New(op).Err(err).Msg("initializing file logger")
	}

	return svc, &Guard{svc: svc}, nil
}
