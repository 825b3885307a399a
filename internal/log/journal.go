package log

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Journal is the append-only record of cache decisions and fetch outcomes.
// It is write-only: nothing in weather reads it back.
type Journal struct {
	*zap.Logger
	closer io.Closer
}

// OpenJournal appends JSON lines to path, rotating the file once it grows
// past a few megabytes.
func OpenJournal(path, level string) (*Journal, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}

	sink := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    5, // megabytes
		MaxBackups: 3,
		MaxAge:     28, // days
	}

	return &Journal{
		Logger: zap.New(newJournalCore(zapcore.AddSync(sink), level)),
		closer: sink,
	}, nil
}

// NewJournal writes journal lines to w. Used by tests and by callers that
// manage the sink themselves.
func NewJournal(w io.Writer, level string) *Journal {
	return &Journal{Logger: zap.New(newJournalCore(zapcore.AddSync(w), level))}
}

// NopJournal discards everything.
func NopJournal() *Journal {
	return &Journal{Logger: zap.NewNop()}
}

// Close flushes buffered entries and closes the underlying file.
func (j *Journal) Close() error {
	_ = j.Sync()
	if j.closer == nil {
		return nil
	}
	return j.closer.Close()
}

func newJournalCore(ws zapcore.WriteSyncer, level string) zapcore.Core {
	encCfg := zap.NewProductionEncoderConfig()
	encCfg.TimeKey = "timestamp"
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	return zapcore.NewCore(zapcore.NewJSONEncoder(encCfg), ws, ParseLevel(level))
}

// ParseLevel maps a level name to a zap level, defaulting to info.
func ParseLevel(s string) zap.AtomicLevel {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG":
		return zap.NewAtomicLevelAt(zap.DebugLevel)
	case "WARN":
		return zap.NewAtomicLevelAt(zap.WarnLevel)
	case "ERROR":
		return zap.NewAtomicLevelAt(zap.ErrorLevel)
	default:
		return zap.NewAtomicLevelAt(zap.InfoLevel)
	}
}
