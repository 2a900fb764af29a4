/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

// Package logging configures the process-wide structured logger.
package logging

import (
	"log/slog"
	"os"
	"strings"
)

// Option is a functional option for logger configuration.
type Option func(*config)

type config struct {
	level slog.Level
	json  bool
}

// WithLevel returns an Option that sets the minimum log level.
func WithLevel(level slog.Level) Option {
	return func(c *config) {
		c.level = level
	}
}

// WithJSON returns an Option that switches output to JSON format.
func WithJSON(json bool) Option {
	return func(c *config) {
		c.json = json
	}
}

// LevelFromEnv reads the LOG_LEVEL environment variable.
// Unknown or empty values default to Info.
func LevelFromEnv() slog.Level {
	switch strings.ToLower(os.Getenv("LOG_LEVEL")) {
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

// SetDefaultStructuredLogger installs a slog default logger that tags every
// record with the component name and version. The level defaults to LOG_LEVEL
// from the environment.
func SetDefaultStructuredLogger(name, version string, opts ...Option) {
	cfg := &config{level: LevelFromEnv()}
	for _, opt := range opts {
		opt(cfg)
	}

	hopts := &slog.HandlerOptions{Level: cfg.level}

	var handler slog.Handler
	if cfg.json {
		handler = slog.NewJSONHandler(os.Stderr, hopts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, hopts)
	}

	logger := slog.New(handler).With(
		slog.String("name", name),
		slog.String("version", version),
	)
	slog.SetDefault(logger)
}
