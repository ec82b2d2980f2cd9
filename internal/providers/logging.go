package providers

import (
	"context"
	"log/slog"

	"gridiron-data-service/internal/logging"
)

// logWithSource logs through the context logger when one is present,
// falling back to the configured logger. The source name is attached
// either way.
func logWithSource(ctx context.Context, logger *slog.Logger, level slog.Level, source, msg string, args ...any) {
	args = append([]any{logging.FieldSource, source}, args...)
	if l := logging.FromContext(ctx, logger); l != nil {
		l.Log(ctx, level, msg, args...)
	}
}
