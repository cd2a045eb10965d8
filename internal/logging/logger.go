package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	slogmulti "github.com/samber/slog-multi"
)

// New creates a configured application logger.
// It writes to Stderr (stdout carries verdicts and JSON responses) and fans
// out to any extra handlers, e.g. the JSON file handler from FileHandler.
func New(level slog.Level, extra ...slog.Handler) *slog.Logger {
	return NewWithWriter(os.Stderr, level, extra...)
}

// NewWithWriter is New with an explicit destination for the text handler.
func NewWithWriter(w io.Writer, level slog.Level, extra ...slog.Handler) *slog.Logger {
	text := slog.NewTextHandler(w, &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: ReplaceAttr,
	})
	if len(extra) == 0 {
		return slog.New(text)
	}
	handlers := append([]slog.Handler{text}, extra...)
	return slog.New(slogmulti.Fanout(handlers...))
}

// ReplaceAttr standardizes common keys ("error" -> "err").
func ReplaceAttr(groups []string, a slog.Attr) slog.Attr {
	if a.Key == "error" {
		a.Key = "err"
	}
	return a
}

// FileHandler opens path for appending and returns a JSON handler writing to it.
// The returned closer releases the file.
func FileHandler(path string, level slog.Level) (slog.Handler, io.Closer, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}
	h := slog.NewJSONHandler(f, &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: ReplaceAttr,
	})
	return h, f, nil
}

// ParseLevel converts "debug", "info", "warn" or "error" into a slog.Level.
func ParseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log level %q", s)
	}
	return level, nil
}

// NewNop returns a no-op logger.
func NewNop() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
