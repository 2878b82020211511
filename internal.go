package tracelog

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

func (s *Service) initializeRollingFileLogger(name string) *lumberjack.Logger {
	if name == emptyString {
		name = "app"
	}

	path := filepath.Join(s.Config.LogDir, name+".log")

	return &lumberjack.Logger{
		Filename:   path,
		MaxSize:    s.Config.LogFileMaxSizeMB,
		MaxBackups: s.Config.LogFileMaxBackups,
		MaxAge:     s.Config.LogFileMaxAgeDays,
		Compress:   s.Config.LogFileCompress,
	}
}

func (s *Service) initializeWriters() []io.Writer {
	var writers []io.Writer

	// If no channel is enabled at all, fall back to the file writer so
	// records are never silently dropped.
	if !s.Config.ConsoleLogging && !s.Config.FileLogging && s.Config.ExtraSink == nil {
		s.Config.FileLogging = true
	}
	if s.Config.FileLogging {
		s.fileWriter = s.initializeRollingFileLogger(s.Config.ServiceName)
		if s.plainText {
			writers = append(writers, plainWriter(s.fileWriter))
		} else {
			writers = append(writers, s.fileWriter)
		}
	}
	if s.Config.ConsoleLogging {
		writers = append(writers, zerolog.ConsoleWriter{
			Out:        os.Stderr,
			NoColor:    s.Config.ConsoleNoColor,
			TimeFormat: s.Config.ConsoleTimeFormat,
		})
	}
	if s.Config.ExtraSink != nil {
		writers = append(writers, s.Config.ExtraSink)
	}

	return writers
}

// plainWriter renders bare message lines (no timestamp, level or color)
// into w. Structured fields follow the message as key=value pairs.
func plainWriter(w io.Writer) io.Writer {
	return zerolog.ConsoleWriter{
		Out:        w,
		NoColor:    true,
		PartsOrder: []string{zerolog.MessageFieldName},
	}
}

// levelFromEnv resolves the effective level: the EnvLevel variable wins
// over the configured value.
func levelFromEnv(configured string) string {
	if v := strings.TrimSpace(os.Getenv(EnvLevel)); v != emptyString {
		return v
	}
	return configured
}

// probeWritable verifies the log file can actually be opened for append,
// so a read-only directory fails Initialize instead of the first write.
func probeWritable(path string) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}
	return f.Close()
}
