package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// Claim returns an insert function that stores the candidate in column of
// table inside its own transaction. With a unique index on column the
// returned error satisfies IsDuplicateKeyError when the value is taken,
// which makes the pair usable with unique.Create:
//
//	v, err := unique.Create(ctx, gen, db.Claim(pool, "handles", "handle"), db.IsDuplicateKeyError)
//
// Extra column values can be supplied through with; they are written in the
// same statement.
func Claim(db TxBeginner, table, column string, with ...Column) func(ctx context.Context, value string) (string, error) {
	query, buildErr := claimQuery(table, column, with)
	args := make([]any, 0, len(with)+1)
	for _, c := range with {
		args = append(args, c.Value)
	}

	return func(ctx context.Context, value string) (string, error) {
		if buildErr != nil {
			return "", buildErr
		}

		err := WithTx(ctx, db, func(tx pgx.Tx) error {
			_, err := tx.Exec(ctx, query, append([]any{value}, args...)...)
			return err
		})
		if err != nil {
			return "", err
		}
		return value, nil
	}
}

// Column is an extra column written alongside a claimed value.
type Column struct {
	Value any
	Name  string
}

func claimQuery(table, column string, with []Column) (string, error) {
	if table == "" || column == "" {
		return "", ErrInvalidIdentifier
	}

	names := pgx.Identifier{column}.Sanitize()
	placeholders := "$1"
	for i, c := range with {
		if c.Name == "" {
			return "", ErrInvalidIdentifier
		}
		names += ", " + pgx.Identifier{c.Name}.Sanitize()
		placeholders += fmt.Sprintf(", $%d", i+2)
	}

	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", identifier(table), names, placeholders), nil
}
