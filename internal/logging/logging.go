// Package logging builds the structured logger used across formcheck.
//
// Logs are text records written to stderr so stdout stays free for the MCP
// protocol when the binary runs as a server.
package logging

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// EnvLevel is the environment variable holding the log level.
const EnvLevel = "FORMCHECK_LOG_LEVEL"

// ErrUnknownLevel is returned by ParseLevel for unrecognized names.
var ErrUnknownLevel = errors.New("unknown log level")

// ParseLevel converts a level name (debug, info, warn, warning, error) to a
// slog level. The empty string means info.
func ParseLevel(name string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("%w: %q", ErrUnknownLevel, name)
	}
}

// New returns a text logger writing to w at the named level.
func New(w io.Writer, level string) (*slog.Logger, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}
	h := slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl})
	return slog.New(h), nil
}

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
