package internal

import (
	"io"
	"log"
	"log/slog"
	"strings"
)

// InitLogging builds the process logger and installs it as the default for
// both log and slog. Verbose output enables debug records; format is "text"
// or "json".
func InitLogging(w io.Writer, verbose bool, format string) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	switch strings.ToLower(format) {
	case "json":
		handler = slog.NewJSONHandler(w, opts)
	default:
		handler = slog.NewTextHandler(w, opts)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	return logger
}
