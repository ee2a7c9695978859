// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package logger configures the zerolog logger shared by the server and CLI.
package logger

import (
	"io"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/pdiddy/cvsite/pkg/types"
)

// New builds a logger writing to w. Unknown levels fall back to info;
// Format "json" writes one JSON object per line, anything else uses the
// human-readable console writer.
func New(cfg types.LogConfig, w io.Writer) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || cfg.Level == "" {
		level = zerolog.InfoLevel
	}

	out := w
	if cfg.Format != "json" {
		out = zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}
	}

	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}

// Init builds a logger with New and installs it as the zerolog global.
func Init(cfg types.LogConfig, w io.Writer) zerolog.Logger {
	l := New(cfg, w)
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = l
	return l
}
