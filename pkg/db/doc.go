// Package db provides PostgreSQL collaborators for the unique package.
//
// This package wraps [github.com/jackc/pgx/v5/pgxpool] with connection setup,
// health checks, migrations and the three pieces unique needs from a store:
// a duplicate-key classifier, an existence oracle and a failure-atomic insert.
//
// # Configuration
//
// All settings are loaded from environment variables:
//
//	DATABASE_CONN_URL           - PostgreSQL connection URL (required)
//	DATABASE_MAX_OPEN_CONNS     - Maximum open connections (default: 10)
//	DATABASE_MIN_CONNS          - Minimum idle connections (default: 2)
//	DATABASE_HEALTHCHECK_PERIOD - Health check interval (default: 1m)
//	DATABASE_MAX_CONN_IDLE_TIME - Maximum connection idle time (default: 10m)
//	DATABASE_MAX_CONN_LIFETIME  - Maximum connection lifetime (default: 30m)
//	DATABASE_RETRY_ATTEMPTS     - Connection retry attempts (default: 3)
//	DATABASE_RETRY_INTERVAL     - Base retry interval (default: 5s)
//	DATABASE_MIGRATIONS_TABLE   - Migrations table name (default: schema_migrations)
//
// # Usage
//
//	var cfg db.Config
//	config.MustLoad(&cfg)
//
//	pool, err := db.Connect(ctx, cfg)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer pool.Close()
//
//	// Race-safe: the unique index on handles.handle decides.
//	handle, err := unique.CreateSlug(ctx, "John Doe",
//		db.Claim(pool, "handles", "handle"),
//		db.IsDuplicateKeyError,
//	)
//
//	// Check-then-use: cheaper, but two callers may observe the same free value.
//	handle, err = unique.Slug(ctx, "John Doe", db.Exists(pool, "handles", "handle"))
//
// # Transactions
//
// [WithTx] commits when fn succeeds and rolls back on error or panic. [Claim]
// runs each insert through it so a rejected candidate leaves nothing behind.
//
// # Error Handling
//
// The package defines sentinel errors for common failure modes:
//
//   - [ErrFailedToParseDBConfig] - Invalid connection string format
//   - [ErrFailedToOpenDBConnection] - Connection failed after all retries
//   - [ErrHealthcheckFailed] - Database ping failed
//   - [ErrSetDialect] - Migration dialect configuration error
//   - [ErrApplyMigrations] - Migration execution failed
//   - [ErrInvalidIdentifier] - Empty table or column name
//
// Errors are wrapped using [errors.Join] to preserve the original error context.
package db
