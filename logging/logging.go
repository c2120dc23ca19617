// Package logging provides the application's structured diagnostic log,
// written to a rotated file so the terminal UI stays clean.
package logging

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Logger wraps slog with the log file location.
type Logger struct {
	*slog.Logger
	LogFile string
}

// New creates a logger writing JSON records to a size-rotated file in dir.
// An empty dir uses the user config directory.
func New(level string, dir string) *Logger {
	if dir == "" {
		base, err := os.UserConfigDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "unable to find user config dir: %v\n", err)
			base = "."
		}
		dir = filepath.Join(base, "worddeck")
	}

	w := &lumberjack.Logger{
		Filename:   filepath.Join(dir, "worddeck.log"),
		MaxSize:    16, // MB
		MaxBackups: 1,
	}

	lvl := slog.LevelInfo
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "info", "":
		lvl = slog.LevelInfo
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		fmt.Fprintf(os.Stderr, "%s: invalid log level\n", level)
	}

	h := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: lvl})
	return &Logger{
		Logger:  slog.New(h),
		LogFile: w.Filename,
	}
}

// Errorf logs a formatted message at error level.
func (l *Logger) Errorf(format string, args ...any) {
	l.Error(fmt.Sprintf(format, args...))
}
