// Package logger builds log/slog loggers with context extraction and optional
// Sentry forwarding.
//
//	log := logger.New(
//		logger.WithLevel(logger.ParseLevel(os.Getenv("LOG_LEVEL"))),
//		logger.WithExtractors(logger.ValueExtractor(requestIDKey{}, "request_id")),
//	)
//
// Extractors run on every log call, so values set on the context after the
// logger was created are still picked up.
//
// # Sentry
//
// [NewWithSentry] fans records out to the local handler and to Sentry. Errors
// become Sentry events; records at or above MinLevel are stored as Sentry
// logs. With an empty DSN the logger falls back to local output:
//
//	log, flush := logger.NewWithSentry(logger.SentryConfig{DSN: os.Getenv("SENTRY_DSN")})
//	defer flush()
//
// # Collisions
//
// [LogCollisions] adapts a logger to the unique package's collision hook:
//
//	slug, err := unique.Slug(ctx, title, exists,
//		unique.WithOnCollision(logger.LogCollisions(log, slog.String("table", "posts"))),
//	)
package logger
