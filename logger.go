package main

import (
	"log/slog"
	"os"
)

// NewLogger returns a structured slog.Logger with the given level, writing
// JSON or text records to stderr.
func NewLogger(level slog.Leveler, asJSON bool) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level}
	if asJSON {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}
