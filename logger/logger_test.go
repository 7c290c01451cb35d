package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/imkonsowa/rera-insights/config"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"WARN":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"bogus":   slog.LevelInfo,
	}

	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestNewJSONRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New(config.Log{Level: "warn", Format: "json"}, &buf)

	l.Info("dropped")
	l.Warn("kept", "address", "Erode")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("expected exactly one json line, got %q: %v", buf.String(), err)
	}
	if entry["msg"] != "kept" || entry["address"] != "Erode" {
		t.Fatalf("unexpected entry %v", entry)
	}
}

func TestNewTintWritesOutput(t *testing.T) {
	var buf bytes.Buffer
	New(config.Log{Format: "tint"}, &buf).Info("hello")

	if !bytes.Contains(buf.Bytes(), []byte("hello")) {
		t.Fatalf("tint output missing message: %q", buf.String())
	}
}
