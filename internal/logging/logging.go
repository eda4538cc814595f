// Package logging configures the process-wide slog logger from the optional
// logging section of the configuration file.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"meetup-backend/internal/config"
)

// Setup builds a text-format slog.Logger writing to stdout, and additionally
// to the configured log file when one is set. The returned close function
// releases the log file and may be called more than once.
func Setup(cfg *config.Logging) (*slog.Logger, func(), error) {
	level := slog.LevelInfo
	var out io.Writer = os.Stdout
	closeFn := func() {}

	if cfg != nil {
		if cfg.Level != "" {
			parsed, err := parseLevel(cfg.Level)
			if err != nil {
				return nil, nil, err
			}
			level = parsed
		}
		if cfg.File != "" {
			f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o640)
			if err != nil {
				return nil, nil, fmt.Errorf("opening log file %s: %w", cfg.File, err)
			}
			out = io.MultiWriter(os.Stdout, f)
			closeFn = func() { f.Close() }
		}
	}

	handler := slog.NewTextHandler(out, &slog.HandlerOptions{Level: level})
	return slog.New(handler), closeFn, nil
}

func parseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("unknown log level %q", s)
	}
}
