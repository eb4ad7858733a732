package main

import (
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// setupLogger builds the CLI logger. The level applies to this logger only,
// so tests can build several side by side.
func setupLogger(cfg LoggingConfig, w io.Writer) zerolog.Logger {
	level := zerolog.InfoLevel
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = zerolog.DebugLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	}

	if cfg.Format == "json" {
		return zerolog.New(w).Level(level).With().Timestamp().Logger()
	}

	output := zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: time.RFC3339,
		NoColor:    !cfg.Color,
	}
	return zerolog.New(output).Level(level).With().Timestamp().Logger()
}
