// Package logging provides the slog setup used by the CLI: colored,
// single-line output on stderr.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

const (
	colorGreen = "\033[32m"
	colorRed   = "\033[31m"
	colorReset = "\033[0m"
)

// Handler is a minimal slog.Handler for command line output: message
// first, attributes appended as key=value pairs, errors in red.
type Handler struct {
	writer io.Writer
	level  slog.Level
	group  string
}

func NewHandler(w io.Writer, level slog.Level) *Handler {
	return &Handler{writer: w, level: level}
}

func (h *Handler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level
}

func (h *Handler) Handle(_ context.Context, r slog.Record) error {
	msg := r.Message
	if h.group != "" {
		msg = "[" + h.group + "] " + msg
	}

	if r.NumAttrs() > 0 {
		attrs := make([]string, 0, r.NumAttrs())
		r.Attrs(func(a slog.Attr) bool {
			attrs = append(attrs, fmt.Sprintf("%s=%v", a.Key, a.Value))
			return true
		})
		msg = msg + ": " + strings.Join(attrs, " ")
	}

	color := colorGreen
	if r.Level >= slog.LevelError {
		color = colorRed
	}
	_, err := fmt.Fprintln(h.writer, color+msg+colorReset)
	return err
}

func (h *Handler) WithAttrs(_ []slog.Attr) slog.Handler {
	return h
}

func (h *Handler) WithGroup(name string) slog.Handler {
	return &Handler{writer: h.writer, level: h.level, group: name}
}

// SetDefaultCLILogger installs the CLI handler as the default slog
// logger at the given level.
func SetDefaultCLILogger(level string) {
	slog.SetDefault(slog.New(NewHandler(os.Stderr, ParseLevel(level))))
}

// ParseLevel converts a string log level to slog.Level, defaulting to
// info for anything unrecognized.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
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
