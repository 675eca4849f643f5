package logger

import (
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// DefaultPath is the file the log sink appends to when no path is configured.
const DefaultPath = "logfile"

// Log is the process-wide logger. It discards everything until Init is called.
// Readers use it without locking, so it is only swapped by Init and Replace.
var Log = zap.NewNop()

// Init points Log at the given file (JSON lines, appended) and at stderr.
// The first entry records when logging started. Call it before starting any
// goroutine that logs.
func Init(path string) error {
	if path == "" {
		path = DefaultPath
	}

	cfg := zap.NewProductionConfig()
	cfg.Encoding = "json"
	cfg.OutputPaths = []string{path, "stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	cfg.EncoderConfig.TimeKey = "at"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.Sampling = nil

	l, err := cfg.Build()
	if err != nil {
		return errors.Wrapf(err, "open log sink %s", path)
	}

	Replace(l)
	l.Info("logging started", zap.Time("started", time.Now()))
	return nil
}

// Replace swaps the process logger and returns a func restoring the previous
// one. The swap is not synchronized: call it, and the restore func, only
// while no other goroutine is logging, as Init and tests do.
func Replace(l *zap.Logger) func() {
	prev := Log
	Log = l
	return func() { Log = prev }
}

// AppendLine writes a plain line to the sink. Fire-and-forget.
func AppendLine(text string) {
	Log.Info(text)
}

// Sync flushes buffered entries. Errors from syncing stderr are ignored.
func Sync() {
	_ = Log.Sync()
}
