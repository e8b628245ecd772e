package db

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
)

// Querier is implemented by *pgxpool.Pool, *pgx.Conn and pgx.Tx.
type Querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Exists returns an existence oracle reporting whether any row of table has
// column equal to the candidate. Table may be schema qualified ("app.users").
//
// The answer is a snapshot; pair it with a unique index on column.
func Exists(q Querier, table, column string) func(ctx context.Context, value string) (bool, error) {
	query, buildErr := existsQuery(table, column)
	return func(ctx context.Context, value string) (bool, error) {
		if buildErr != nil {
			return false, buildErr
		}

		var found bool
		if err := q.QueryRow(ctx, query, value).Scan(&found); err != nil {
			return false, fmt.Errorf("db: exists %s.%s: %w", table, column, err)
		}
		return found, nil
	}
}

func existsQuery(table, column string) (string, error) {
	if table == "" || column == "" {
		return "", ErrInvalidIdentifier
	}
	return fmt.Sprintf(
		"SELECT EXISTS (SELECT 1 FROM %s WHERE %s = $1)",
		identifier(table), pgx.Identifier{column}.Sanitize(),
	), nil
}

// identifier sanitizes a possibly schema-qualified name.
func identifier(name string) string {
	return pgx.Identifier(strings.Split(name, ".")).Sanitize()
}
