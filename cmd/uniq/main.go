// Command uniq allocates unique identifiers and slugs against a backing store.
//
//	UNIQ_STORE=postgres DATABASE_CONN_URL=postgres://... uniq migrate
//	UNIQ_STORE=postgres DATABASE_CONN_URL=postgres://... uniq -table handles -column handle slug John Doe
//	UNIQ_STORE=redis REDIS_URL=redis://localhost:6379 uniq -gen uuid id
package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrymomot/uniq/pkg/config"
	"github.com/dmitrymomot/uniq/pkg/logger"
)

func main() {
	var cfg appConfig
	config.MustLoad(&cfg)

	opts := []logger.Option{
		logger.WithOutput(os.Stderr),
		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
		logger.WithExtractors(logger.ValueExtractor(commandKey{}, "command")),
	}
	if cfg.LogFormat == "text" {
		opts = append(opts, logger.WithText())
	}
	log, flush := logger.NewWithSentry(cfg.Sentry, opts...)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx, cfg, os.Args[1:], os.Stdout, os.Stderr, log)
	cancel()

	code := 0
	switch {
	case err == nil:
	case errors.Is(err, flag.ErrHelp), errors.Is(err, errNoCommand):
		code = 2
	default:
		log.Error("uniq failed", slog.Any("error", err))
		code = 1
	}
	flush()
	os.Exit(code)
}
