package logger

import (
	"context"
	"log/slog"
)

// LogCollisions returns a collision hook that logs every rejected candidate
// at debug level. It has the shape of unique.AttemptFunc.
func LogCollisions(log *slog.Logger, attrs ...slog.Attr) func(ctx context.Context, attempt int, candidate string) {
	if log == nil {
		log = NewNope()
	}
	log = slog.New(log.Handler().WithAttrs(attrs))

	return func(ctx context.Context, attempt int, candidate string) {
		log.DebugContext(ctx, "candidate collided",
			slog.Int("attempt", attempt),
			slog.String("candidate", candidate),
		)
	}
}
