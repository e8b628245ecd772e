// Package sqldb provides unique-index collaborators over database/sql.
//
// Queries are built with squirrel using dollar placeholders and run through
// sqlx, so any PostgreSQL-compatible driver works. Open registers nothing: it
// uses the pgx stdlib driver ("pgx").
//
//	sqlDB, err := sqldb.Open(ctx, os.Getenv("DATABASE_CONN_URL"))
//	idx := sqldb.NewIndex(sqlDB, "handles", "handle")
//
//	handle, err := unique.CreateSlug(ctx, "John Doe", idx.Claim, sqldb.IsDuplicateKeyError)
package sqldb

import (
	"context"
	"errors"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"

	"github.com/dmitrymomot/uniq/pkg/db"
)

var (
	ErrFailedToOpen      = errors.New("sqldb: failed to open database")
	ErrInvalidIdentifier = errors.New("sqldb: table and column names must not be empty")
)

// Open connects to PostgreSQL through the pgx stdlib driver and pings it.
func Open(ctx context.Context, dsn string) (*sqlx.DB, error) {
	conn, err := sqlx.Open("pgx", dsn)
	if err != nil {
		return nil, errors.Join(ErrFailedToOpen, err)
	}
	if err := conn.PingContext(ctx); err != nil {
		_ = conn.Close()
		return nil, errors.Join(ErrFailedToOpen, err)
	}
	return conn, nil
}

// IsDuplicateKeyError reports whether err is a unique constraint violation.
func IsDuplicateKeyError(err error) bool {
	return db.IsDuplicateKeyError(err)
}

// Index is a unique column of a table.
type Index struct {
	db      *sqlx.DB
	builder sq.StatementBuilderType
	table   string
	column  string
}

// NewIndex returns an Index over column of table.
func NewIndex(conn *sqlx.DB, table, column string) *Index {
	return &Index{
		db:      conn,
		builder: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
		table:   table,
		column:  column,
	}
}

// Exists reports whether value is already present. It has the signature of
// unique.ExistsFunc.
func (i *Index) Exists(ctx context.Context, value string) (bool, error) {
	if err := i.validate(); err != nil {
		return false, err
	}

	query, args, err := i.builder.
		Select("1").
		From(identifier(i.table)).
		Where(sq.Eq{identifier(i.column): value}).
		Limit(1).
		Prefix("SELECT EXISTS (").
		Suffix(")").
		ToSql()
	if err != nil {
		return false, fmt.Errorf("sqldb: build exists query: %w", err)
	}

	var found bool
	if err := i.db.GetContext(ctx, &found, query, args...); err != nil {
		return false, fmt.Errorf("sqldb: exists %s.%s: %w", i.table, i.column, err)
	}
	return found, nil
}

// Insert stores value together with extra columns in a single statement.
// The driver error is returned unwrapped so classifiers see it as is.
func (i *Index) Insert(ctx context.Context, value string, extra map[string]any) error {
	if err := i.validate(); err != nil {
		return err
	}

	values := sq.Eq{identifier(i.column): value}
	for k, v := range extra {
		if k == "" {
			return ErrInvalidIdentifier
		}
		values[identifier(k)] = v
	}

	query, args, err := i.builder.Insert(identifier(i.table)).SetMap(values).ToSql()
	if err != nil {
		return fmt.Errorf("sqldb: build insert query: %w", err)
	}

	_, err = i.db.ExecContext(ctx, query, args...)
	return err
}

// Claim inserts value with no extra columns and returns it. It has the
// signature of unique.InsertFunc[string].
func (i *Index) Claim(ctx context.Context, value string) (string, error) {
	if err := i.Insert(ctx, value, nil); err != nil {
		return "", err
	}
	return value, nil
}

func (i *Index) validate() error {
	if i.table == "" || i.column == "" {
		return ErrInvalidIdentifier
	}
	return nil
}

// identifier quotes a possibly schema-qualified name.
func identifier(name string) string {
	return pgx.Identifier(strings.Split(name, ".")).Sanitize()
}
