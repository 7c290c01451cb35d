// Package logger builds the process slog.Logger from config.
package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/imkonsowa/rera-insights/config"
	"github.com/lmittmann/tint"
)

func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// New returns a logger writing to w (stdout when nil) in the configured format.
func New(cfg config.Log, w io.Writer) *slog.Logger {
	if w == nil {
		w = os.Stdout
	}

	level := ParseLevel(cfg.Level)

	var handler slog.Handler
	switch strings.ToLower(cfg.Format) {
	case "json":
		handler = slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
	case "text":
		handler = slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	default:
		handler = tint.NewHandler(w, &tint.Options{
			Level:      level,
			TimeFormat: time.DateTime,
		})
	}

	return slog.New(handler)
}

// Setup installs the configured logger as the slog default.
func Setup(cfg config.Log) *slog.Logger {
	l := New(cfg, os.Stdout)
	slog.SetDefault(l)

	return l
}
