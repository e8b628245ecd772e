package main

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/dmitrymomot/uniq/pkg/config"
	"github.com/dmitrymomot/uniq/pkg/db"
	"github.com/dmitrymomot/uniq/pkg/health"
	"github.com/dmitrymomot/uniq/pkg/memstore"
	"github.com/dmitrymomot/uniq/pkg/mongo"
	"github.com/dmitrymomot/uniq/pkg/redis"
	"github.com/dmitrymomot/uniq/pkg/sqldb"
	"github.com/dmitrymomot/uniq/pkg/unique"
)

//go:embed migrations/*.sql
var migrations embed.FS

var (
	errUnknownStore         = errors.New("unknown store")
	errMigrationUnsupported = errors.New("store has no migrations")
)

// backend binds the unique capabilities of one store.
type backend struct {
	exists      unique.ExistsFunc
	claim       unique.InsertFunc[string]
	isDuplicate unique.DuplicateFunc
	checks      health.Checks
	migrate     func(context.Context) error
	shutdown    []func(context.Context) error
	name        string
}

func (b *backend) close(log *slog.Logger) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var errs []error
	for _, hook := range b.shutdown {
		if err := hook(ctx); err != nil {
			log.Error("shutdown hook failed", slog.String("store", b.name), slog.Any("error", err))
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func openBackend(ctx context.Context, cfg appConfig, log *slog.Logger) (*backend, error) {
	name := strings.ToLower(strings.TrimSpace(cfg.Store))

	switch name {
	case "memory":
		s := memstore.New(memstore.WithTTL(cfg.ReserveTTL))
		return &backend{
			name:        name,
			exists:      s.Exists,
			claim:       s.Claim,
			isDuplicate: memstore.IsDuplicateKeyError,
			checks:      health.Checks{"memory": func(context.Context) error { return nil }},
			shutdown:    []func(context.Context) error{func(context.Context) error { return s.Close() }},
		}, nil

	case "postgres":
		var dbCfg db.Config
		if err := config.Load(&dbCfg); err != nil {
			return nil, err
		}
		pool, err := db.Connect(ctx, dbCfg)
		if err != nil {
			return nil, err
		}
		return &backend{
			name:        name,
			exists:      db.Exists(pool, cfg.Table, cfg.Column),
			claim:       db.Claim(pool, cfg.Table, cfg.Column),
			isDuplicate: db.IsDuplicateKeyError,
			checks:      health.Checks{"postgres": db.Healthcheck(pool)},
			migrate: func(ctx context.Context) error {
				return db.Migrate(ctx, pool, migrations, "migrations", dbCfg.MigrationsTable, log)
			},
			shutdown: []func(context.Context) error{db.Shutdown(pool)},
		}, nil

	case "sql":
		var dbCfg db.Config
		if err := config.Load(&dbCfg); err != nil {
			return nil, err
		}
		conn, err := sqldb.Open(ctx, dbCfg.ConnectionString)
		if err != nil {
			return nil, err
		}
		idx := sqldb.NewIndex(conn, cfg.Table, cfg.Column)
		return &backend{
			name:        name,
			exists:      idx.Exists,
			claim:       idx.Claim,
			isDuplicate: sqldb.IsDuplicateKeyError,
			checks:      health.Checks{"sql": conn.PingContext},
			shutdown:    []func(context.Context) error{func(context.Context) error { return conn.Close() }},
		}, nil

	case "redis":
		var rc redisConfig
		if err := config.Load(&rc); err != nil {
			return nil, err
		}
		client, err := redis.Open(ctx, rc.URL)
		if err != nil {
			return nil, err
		}
		prefix := cfg.Table + ":"
		return &backend{
			name:        name,
			exists:      redis.Exists(client, prefix),
			claim:       redis.Reserve(client, prefix, cfg.ReserveTTL),
			isDuplicate: redis.IsDuplicateKeyError,
			checks:      health.Checks{"redis": redis.Healthcheck(client)},
			shutdown:    []func(context.Context) error{redis.Shutdown(client)},
		}, nil

	case "mongo":
		var mc mongo.Config
		if err := config.Load(&mc); err != nil {
			return nil, err
		}
		database, err := mongo.Database(ctx, mc)
		if err != nil {
			return nil, err
		}
		coll := database.Collection(cfg.Table)
		b := &backend{
			name:        name,
			exists:      mongo.Exists(coll, cfg.Column),
			claim:       mongo.Claim(coll, cfg.Column, nil),
			isDuplicate: mongo.IsDuplicateKeyError,
			checks:      health.Checks{"mongo": mongo.Healthcheck(database.Client())},
			migrate: func(ctx context.Context) error {
				return mongo.EnsureUniqueIndex(ctx, coll, cfg.Column)
			},
			shutdown: []func(context.Context) error{mongo.Shutdown(database.Client())},
		}
		return b, nil

	default:
		return nil, fmt.Errorf("%w: %q", errUnknownStore, cfg.Store)
	}
}
