package logging

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    slog.Level
		wantErr bool
	}{
		{"ERROR", slog.LevelError, false},
		{"warn", slog.LevelWarn, false},
		{"", slog.LevelInfo, false},
		{"Info", slog.LevelInfo, false},
		{"DEBUG", slog.LevelDebug, false},
		{"TRACE", slog.LevelDebug, false},
		{"LOUD", slog.LevelInfo, true},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseLevel(%q) error = %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestNewWithWriter_NormalizesErrorKey(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(&buf, slog.LevelInfo)

	logger.Error("write failed", "error", errors.New("disk full"))
	logger.Debug("hidden")

	out := buf.String()
	if !strings.Contains(out, `err="disk full"`) {
		t.Errorf("expected err key in %q", out)
	}
	if strings.Contains(out, "hidden") {
		t.Error("debug line should be filtered at info level")
	}
}
