package observability

import (
	"log/slog"
	"os"
)

// NewLogger returns the process logger. Dev gets human-readable text at
// debug level, everything else ships JSON for the log pipeline.
func NewLogger(env string) *slog.Logger {
	if env == "dev" {
		return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
	}

	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})

	return slog.New(handler).With("service", "coursehub")
}
