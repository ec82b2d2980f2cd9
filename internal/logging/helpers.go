package logging

import "log/slog"

// Nil-safe logging wrappers. Most components treat their logger as
// optional, so these let call sites skip the nil check.

// Info logs at info level; a nil logger is a no-op.
func Info(logger *slog.Logger, msg string, args ...any) {
	if logger == nil {
		return
	}
	logger.Info(msg, args...)
}

// Warn logs at warn level; a nil logger is a no-op.
func Warn(logger *slog.Logger, msg string, args ...any) {
	if logger == nil {
		return
	}
	logger.Warn(msg, args...)
}

// Error logs at error level, appending the error under the "error"
// key when present; a nil logger is a no-op.
func Error(logger *slog.Logger, msg string, err error, args ...any) {
	if logger == nil {
		return
	}
	if err != nil {
		args = append(args, "error", err)
	}
	logger.Error(msg, args...)
}
