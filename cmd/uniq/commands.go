package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/dmitrymomot/uniq/pkg/health"
	"github.com/dmitrymomot/uniq/pkg/id"
	"github.com/dmitrymomot/uniq/pkg/logger"
	"github.com/dmitrymomot/uniq/pkg/unique"
)

const usage = `usage: uniq [flags] <command> [args]

commands:
  id            allocate and claim a random identifier
  slug <text>   allocate and claim a slug derived from text
  check         run store health checks
  migrate       prepare the store schema (postgres, mongo)

flags:
`

var (
	errNoCommand      = errors.New("no command given")
	errUnknownCommand = errors.New("unknown command")
	errNoText         = errors.New("slug needs text")
	errUnknownGen     = errors.New("unknown generator")
)

type commandKey struct{}

type cliFlags struct {
	store    string
	table    string
	column   string
	gen      string
	prefix   string
	attempts int
	length   int
	maxLen   int
	timeout  time.Duration
	check    bool
}

func parseFlags(args []string, cfg appConfig, stderr io.Writer) (*cliFlags, []string, error) {
	f := &cliFlags{}
	fs := flag.NewFlagSet("uniq", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprint(stderr, usage)
		fs.PrintDefaults()
	}

	fs.StringVar(&f.store, "store", cfg.Store, "backing store: memory|postgres|sql|redis|mongo")
	fs.StringVar(&f.table, "table", cfg.Table, "table, collection or key namespace")
	fs.StringVar(&f.column, "column", cfg.Column, "unique column or document field")
	fs.StringVar(&f.gen, "gen", "nanoid", "id generator: nanoid|uuid|snowflake")
	fs.StringVar(&f.prefix, "prefix", "", "nanoid prefix")
	fs.IntVar(&f.length, "length", id.DefaultLength, "nanoid length")
	fs.IntVar(&f.attempts, "attempts", 0, "retry budget (0 uses the default)")
	fs.IntVar(&f.maxLen, "maxlen", unique.DefaultSlugMaxLength, "maximum slug length")
	fs.DurationVar(&f.timeout, "timeout", 30*time.Second, "overall deadline")
	fs.BoolVar(&f.check, "check", false, "slug: look up candidates before claiming instead of insert-and-retry")

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return nil, nil, errNoCommand
	}
	return f, fs.Args(), nil
}

func run(ctx context.Context, cfg appConfig, args []string, stdout, stderr io.Writer, log *slog.Logger) error {
	f, rest, err := parseFlags(args, cfg, stderr)
	if err != nil {
		return err
	}
	cfg.Store, cfg.Table, cfg.Column = f.store, f.table, f.column

	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()
	ctx = context.WithValue(ctx, commandKey{}, rest[0])

	b, err := openBackend(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer func() { _ = b.close(log) }()

	return dispatch(ctx, b, f, cfg, rest, stdout, log)
}

func dispatch(ctx context.Context, b *backend, f *cliFlags, cfg appConfig, args []string, out io.Writer, log *slog.Logger) error {
	opts := []unique.Option{
		unique.WithMaxAttempts(f.attempts),
		unique.WithMaxLength(f.maxLen),
		unique.WithOnCollision(logger.LogCollisions(log, slog.String("store", b.name))),
	}

	switch args[0] {
	case "id":
		gen, err := generator(f, cfg)
		if err != nil {
			return err
		}
		v, err := unique.Create(ctx, gen, b.claim, b.isDuplicate, opts...)
		if err != nil {
			return err
		}
		log.InfoContext(ctx, "id allocated", slog.String("value", v), slog.String("store", b.name))
		fmt.Fprintln(out, v)
		return nil

	case "slug":
		text := strings.Join(args[1:], " ")
		if strings.TrimSpace(text) == "" {
			return errNoText
		}
		v, err := allocateSlug(ctx, b, text, f.check, opts)
		if err != nil {
			return err
		}
		log.InfoContext(ctx, "slug allocated", slog.String("value", v), slog.String("store", b.name))
		fmt.Fprintln(out, v)
		return nil

	case "check":
		report := health.Run(ctx, b.checks, health.WithLogger(log))
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			return err
		}
		return report.Err()

	case "migrate":
		if b.migrate == nil {
			return fmt.Errorf("%w: %s", errMigrationUnsupported, b.name)
		}
		if err := b.migrate(ctx); err != nil {
			return err
		}
		log.InfoContext(ctx, "store migrated", slog.String("store", b.name))
		return nil

	default:
		return fmt.Errorf("%w: %q", errUnknownCommand, args[0])
	}
}

// allocateSlug claims a slug. With lookup set, candidates are checked first
// and the winner is claimed afterwards, which can still lose a race.
func allocateSlug(ctx context.Context, b *backend, text string, lookup bool, opts []unique.Option) (string, error) {
	if !lookup {
		return unique.CreateSlug(ctx, text, b.claim, b.isDuplicate, opts...)
	}

	v, err := unique.Slug(ctx, text, b.exists, opts...)
	if err != nil {
		return "", err
	}
	return b.claim(ctx, v)
}

func generator(f *cliFlags, cfg appConfig) (unique.GenerateFunc, error) {
	switch f.gen {
	case "nanoid":
		return id.New(id.WithLength(f.length), id.WithPrefix(f.prefix))
	case "uuid":
		return id.UUID(), nil
	case "snowflake":
		return id.Snowflake(cfg.NodeID)
	default:
		return nil, fmt.Errorf("%w: %q", errUnknownGen, f.gen)
	}
}
