// SPDX-License-Identifier: MIT OR Apache-2.0

// Package logging builds the process-wide structured logger: a
// log/slog text handler, leveled by the CLI's repeated -v flag, wrapped
// for components that prefer the logr.Logger calling convention.
package logging

import (
	"log/slog"
	"os"

	"github.com/go-logr/logr"
)

// levelFor maps the verbosity counter (0=Warning, 1=Info, 2=Debug,
// >=3=Trace) onto a slog.Level. slog has no Trace level, so verbosity 3
// and above go four steps below Debug, matching how logr's V(n) scales
// its verbosity offset against a handler's base level.
func levelFor(verbosity int) slog.Level {
	switch {
	case verbosity <= 0:
		return slog.LevelWarn
	case verbosity == 1:
		return slog.LevelInfo
	case verbosity == 2:
		return slog.LevelDebug
	default:
		return slog.LevelDebug - 4
	}
}

// New builds the slog handler/logger pair for the given verbosity and
// runtime environment name, returning both the raw *slog.Logger for
// components that log directly and a logr.Logger facade for components
// built around the logr calling convention.
func New(verbosity int, env string) (*slog.Logger, logr.Logger) {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: levelFor(verbosity),
	}).WithAttrs([]slog.Attr{slog.String("env", env)})

	slogger := slog.New(handler)
	return slogger, logr.FromSlogHandler(handler)
}
