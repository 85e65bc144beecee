package logging

import (
	"io"
	"log/slog"
	"strings"
)

// Setup creates a configured *slog.Logger writing to w, sets it as
// the default, and returns it. The level string accepts "debug",
// "info", "warn", or "error" (case-insensitive); anything else falls
// back to info. Logs go to w so the rendered output on stdout stays
// clean for piping.
func Setup(w io.Writer, level string) *slog.Logger {
	var lvl slog.Level
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}

	handler := slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: lvl,
	})
	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}
