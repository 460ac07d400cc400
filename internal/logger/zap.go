package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is a thin wrapper so callers depend on this package, not zap directly.
type Logger struct {
	*zap.SugaredLogger
}

// Unknown level strings fall back to debug rather than failing startup.
const fallbackLevel = zapcore.DebugLevel

func toZapLevel(level string) zapcore.Level {
	switch level {
	case InfoLevel:
		return zapcore.InfoLevel
	case WarnLevel:
		return zapcore.WarnLevel
	case ErrorLevel:
		return zapcore.ErrorLevel
	default:
		return fallbackLevel
	}
}

// newConsoleCore writes console-encoded lines to a locked stdout.
func newConsoleCore(level zapcore.Level) zapcore.Core {
	cfg := zap.NewProductionEncoderConfig()
	cfg.TimeKey = ""
	cfg.EncodeTime = zapcore.RFC3339TimeEncoder
	cfg.EncodeLevel = zapcore.CapitalLevelEncoder

	encoder := zapcore.NewConsoleEncoder(cfg)
	ws := zapcore.Lock(os.Stdout)
	return zapcore.NewCore(encoder, zapcore.AddSync(ws), zap.NewAtomicLevelAt(level))
}

func newZapLogger(level string) *Logger {
	core := newConsoleCore(toZapLevel(level))
	return &Logger{SugaredLogger: zap.New(core).Sugar()}
}
