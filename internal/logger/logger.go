// Package logger is a thin package-level facade over a sugared zap logger.
// Logs are written to stderr so they never interleave with prompts on stdout.
package logger

import (
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Level names accepted by Init.
const (
	LevelDebug = "debug"
	LevelInfo  = "info"
	LevelWarn  = "warn"
	LevelError = "error"
)

const timeFormat = "2006-01-02 15:04:05"

var (
	mu  sync.RWMutex
	log = zap.NewNop().Sugar()
)

// Config controls the output of the package logger.
type Config struct {
	Level  string
	Output io.Writer
	// Fields are attached to every entry, e.g. the run ID.
	Fields []any
}

// ParseLevel maps a level name to a zap level. Unknown names fall back to warn.
func ParseLevel(name string) zapcore.Level {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case LevelDebug:
		return zapcore.DebugLevel
	case LevelInfo:
		return zapcore.InfoLevel
	case LevelError:
		return zapcore.ErrorLevel
	default:
		return zapcore.WarnLevel
	}
}

// New builds a sugared console logger from cfg.
func New(cfg Config) *zap.SugaredLogger {
	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}

	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.EncodeTime = zapcore.TimeEncoderOfLayout(timeFormat)
	encCfg.EncodeLevel = zapcore.CapitalLevelEncoder

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encCfg),
		zapcore.AddSync(out),
		zap.NewAtomicLevelAt(ParseLevel(cfg.Level)),
	)
	return zap.New(core).Sugar().With(cfg.Fields...)
}

// Init replaces the package logger.
func Init(cfg Config) {
	l := New(cfg)
	mu.Lock()
	log = l
	mu.Unlock()
}

// L returns the current package logger.
func L() *zap.SugaredLogger {
	mu.RLock()
	defer mu.RUnlock()
	return log
}

// Sync flushes buffered entries. Errors from syncing stderr are ignored.
func Sync() {
	_ = L().Sync()
}

func Info(msg string, args ...any) {
	L().Infow(msg, args...)
}

func Error(msg string, args ...any) {
	L().Errorw(msg, args...)
}

func Debug(msg string, args ...any) {
	L().Debugw(msg, args...)
}

func Warn(msg string, args ...any) {
	L().Warnw(msg, args...)
}

func InfoWithDuration(msg string, start time.Time, args ...any) {
	args = append(args, "duration", time.Since(start).Round(time.Millisecond))
	L().Infow(msg, args...)
}

func ErrorWithDuration(msg string, start time.Time, args ...any) {
	args = append(args, "duration", time.Since(start).Round(time.Millisecond))
	L().Errorw(msg, args...)
}

// RedirectStdLog sends the standard library logger, used by some extractor
// libraries, to the package logger at debug level. It returns a restore func.
func RedirectStdLog() func() {
	restore, err := zap.RedirectStdLogAt(L().Desugar(), zapcore.DebugLevel)
	if err != nil {
		return func() {}
	}
	return restore
}
