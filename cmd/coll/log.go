package main

import (
	"io"
	"log/slog"
	"os"
)

var (
	logLevel = new(slog.LevelVar)
	theLog   = newLogger(os.Stderr, logLevel)
)

// newLogger writes text records without timestamps; the level is only
// shown when it is not INFO.
func newLogger(w io.Writer, level slog.Leveler) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: dropNoise,
	}))
}

func dropNoise(groups []string, a slog.Attr) slog.Attr {
	if len(groups) != 0 {
		return a
	}
	switch {
	case a.Key == slog.TimeKey:
		return slog.Attr{}
	case a.Key == slog.LevelKey && a.Value.String() == slog.LevelInfo.String():
		return slog.Attr{}
	}
	return a
}
