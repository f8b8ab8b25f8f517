package main

import (
	"io"
	"log/slog"
)

// newLogger writes to w at the level named by level ("debug", "WARN",
// "info+2", ...); an unparsable level logs at info. format "json" selects
// the JSON handler, anything else text. slog's default is left alone.
func newLogger(level, format string, w io.Writer) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: lvl}
	if format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
