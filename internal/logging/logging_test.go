package logging

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input   string
		want    slog.Level
		wantErr bool
	}{
		{"debug", slog.LevelDebug, false},
		{"INFO", slog.LevelInfo, false},
		{"", slog.LevelInfo, false},
		{"warn", slog.LevelWarn, false},
		{"warning", slog.LevelWarn, false},
		{" error ", slog.LevelError, false},
		{"verbose", slog.LevelInfo, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseLevel(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseLevel(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if tt.wantErr && !errors.Is(err, ErrUnknownLevel) {
				t.Errorf("error should wrap ErrUnknownLevel, got %v", err)
			}
			if got != tt.want {
				t.Errorf("ParseLevel(%q): got %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestNew(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(&buf, "warn")
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	logger.Info("hidden")
	logger.Warn("shown", "form", "01")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Error("info record should be filtered at warn level")
	}
	if !strings.Contains(out, "shown") || !strings.Contains(out, "form=01") {
		t.Errorf("warn record missing: %q", out)
	}
}

func TestNew_InvalidLevel(t *testing.T) {
	if _, err := New(&bytes.Buffer{}, "loud"); err == nil {
		t.Error("expected an error for an unknown level")
	}
}

func TestDiscard(t *testing.T) {
	if Discard().Enabled(context.Background(), slog.LevelError) {
		t.Error("discard logger should not be enabled for errors")
	}
}
