package logx

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
)

// Level is the minimum severity that gets written
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) slogLevel() slog.Level {
	switch l {
	case LevelDebug:
		return slog.LevelDebug
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// ParseLevel maps a textual level (debug, info, warn, error) to a Level
func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

var (
	mu      sync.RWMutex
	level             = new(slog.LevelVar)
	out     io.Writer = os.Stdout
	jsonOut bool
	logger  = build()
	exit    = os.Exit
)

func build() *slog.Logger {
	opts := &slog.HandlerOptions{Level: level}
	if jsonOut {
		return slog.New(slog.NewJSONHandler(out, opts))
	}
	return slog.New(slog.NewTextHandler(out, opts))
}

// SetLevel changes the minimum level
func SetLevel(l Level) {
	level.Set(l.slogLevel())
}

// SetOutput redirects log output; nil restores stdout
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	if w == nil {
		w = os.Stdout
	}
	out = w
	logger = build()
}

// SetJSON switches between JSON and text output
func SetJSON(enabled bool) {
	mu.Lock()
	defer mu.Unlock()
	jsonOut = enabled
	logger = build()
}

// Logger exposes the underlying structured logger
func Logger() *slog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return logger
}

// With returns a logger carrying the given attributes
func With(args ...any) *slog.Logger {
	return Logger().With(args...)
}

func logf(l slog.Level, format string, args ...any) {
	lg := Logger()
	if !lg.Enabled(context.Background(), l) {
		return
	}
	lg.Log(context.Background(), l, fmt.Sprintf(format, args...))
}

func Debug(msg string, args ...any) { Logger().Debug(msg, args...) }
func Info(msg string, args ...any)  { Logger().Info(msg, args...) }
func Warn(msg string, args ...any)  { Logger().Warn(msg, args...) }
func Error(msg string, args ...any) { Logger().Error(msg, args...) }

func Debugf(format string, args ...any) { logf(slog.LevelDebug, format, args...) }
func Infof(format string, args ...any)  { logf(slog.LevelInfo, format, args...) }
func Warnf(format string, args ...any)  { logf(slog.LevelWarn, format, args...) }
func Errorf(format string, args ...any) { logf(slog.LevelError, format, args...) }

// Fatal logs at error level and exits the process
func Fatal(msg string, args ...any) {
	Logger().Error(msg, args...)
	exit(1)
}

// Fatalf logs a formatted message at error level and exits the process
func Fatalf(format string, args ...any) {
	logf(slog.LevelError, format, args...)
	exit(1)
}
