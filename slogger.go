// SPDX-License-Identifier: GPL-3.0-or-later

package sockaddr

// SLogger abstracts the [*slog.Logger] behavior.
//
// This package logs lifecycle events (name resolution, interface probing,
// DNS exchanges) at the Info level. The tcp package logs per-input
// events at the Debug level.
//
// The [*slog.Logger] type satisfies this interface.
type SLogger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
}

// DefaultSLogger returns the default [SLogger], which discards all output.
//
// Use a custom [*slog.Logger] for emitting logs.
func DefaultSLogger() SLogger {
	return discardSLogger{}
}

type discardSLogger struct{}

var _ SLogger = discardSLogger{}

// Debug implements [SLogger].
func (discardSLogger) Debug(msg string, args ...any) {}

// Info implements [SLogger].
func (discardSLogger) Info(msg string, args ...any) {}
