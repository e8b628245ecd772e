package db_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/uniq/pkg/db"
	"github.com/dmitrymomot/uniq/pkg/unique"
)

func TestIsDuplicateKeyError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "nil", err: nil, want: false},
		{name: "plain error", err: errors.New("boom"), want: false},
		{name: "unique violation", err: &pgconn.PgError{Code: "23505"}, want: true},
		{name: "wrapped unique violation", err: fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"}), want: true},
		{name: "joined unique violation", err: errors.Join(errors.New("tx"), &pgconn.PgError{Code: "23505"}), want: true},
		{name: "foreign key violation", err: &pgconn.PgError{Code: "23503"}, want: false},
		{name: "no rows", err: pgx.ErrNoRows, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, db.IsDuplicateKeyError(tt.err))
		})
	}
}

type fakeRow struct {
	err   error
	found bool
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	*dest[0].(*bool) = r.found
	return nil
}

type fakeQuerier struct {
	taken map[string]bool
	err   error
	sql   []string
}

func (q *fakeQuerier) QueryRow(_ context.Context, sql string, args ...any) pgx.Row {
	q.sql = append(q.sql, sql)
	return fakeRow{found: q.taken[args[0].(string)], err: q.err}
}

func TestExists(t *testing.T) {
	t.Parallel()

	t.Run("builds a sanitized query", func(t *testing.T) {
		t.Parallel()

		q := &fakeQuerier{taken: map[string]bool{"john-doe": true}}
		exists := db.Exists(q, "app.users", "handle")

		found, err := exists(context.Background(), "john-doe")
		require.NoError(t, err)
		assert.True(t, found)

		found, err = exists(context.Background(), "jane")
		require.NoError(t, err)
		assert.False(t, found)

		require.Len(t, q.sql, 2)
		assert.Equal(t, `SELECT EXISTS (SELECT 1 FROM "app"."users" WHERE "handle" = $1)`, q.sql[0])
	})

	t.Run("drives unique.Slug", func(t *testing.T) {
		t.Parallel()

		q := &fakeQuerier{taken: map[string]bool{"john-doe": true, "john-doe-2": true}}
		s, err := unique.Slug(context.Background(), "John Doe", db.Exists(q, "users", "handle"))
		require.NoError(t, err)
		assert.Equal(t, "john-doe-3", s)
	})

	t.Run("wraps query errors", func(t *testing.T) {
		t.Parallel()

		boom := errors.New("connection refused")
		q := &fakeQuerier{err: boom}
		_, err := db.Exists(q, "users", "handle")(context.Background(), "x")
		require.Error(t, err)
		assert.ErrorIs(t, err, boom)
	})

	t.Run("rejects empty identifiers", func(t *testing.T) {
		t.Parallel()

		q := &fakeQuerier{}
		_, err := db.Exists(q, "", "handle")(context.Background(), "x")
		assert.ErrorIs(t, err, db.ErrInvalidIdentifier)
		assert.Empty(t, q.sql)
	})
}

// fakeTx implements the parts of pgx.Tx that Claim uses.
type fakeTx struct {
	pgx.Tx
	execErr    func(value string) error
	sql        string
	args       []any
	committed  bool
	rolledBack bool
}

func (tx *fakeTx) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	tx.sql, tx.args = sql, args
	if tx.execErr != nil {
		if err := tx.execErr(args[0].(string)); err != nil {
			return pgconn.CommandTag{}, err
		}
	}
	return pgconn.NewCommandTag("INSERT 0 1"), nil
}

func (tx *fakeTx) Commit(context.Context) error {
	tx.committed = true
	return nil
}

func (tx *fakeTx) Rollback(context.Context) error {
	tx.rolledBack = true
	return nil
}

type fakeBeginner struct {
	execErr func(value string) error
	txs     []*fakeTx
}

func (b *fakeBeginner) Begin(context.Context) (pgx.Tx, error) {
	tx := &fakeTx{execErr: b.execErr}
	b.txs = append(b.txs, tx)
	return tx, nil
}

func TestClaim(t *testing.T) {
	t.Parallel()

	t.Run("inserts in a committed transaction", func(t *testing.T) {
		t.Parallel()

		b := &fakeBeginner{}
		claim := db.Claim(b, "handles", "handle", db.Column{Name: "owner_id", Value: 42})

		v, err := claim(context.Background(), "john-doe")
		require.NoError(t, err)
		assert.Equal(t, "john-doe", v)

		require.Len(t, b.txs, 1)
		tx := b.txs[0]
		assert.Equal(t, `INSERT INTO "handles" ("handle", "owner_id") VALUES ($1, $2)`, tx.sql)
		assert.Equal(t, []any{"john-doe", 42}, tx.args)
		assert.True(t, tx.committed)
		assert.False(t, tx.rolledBack)
	})

	t.Run("rolls back and retries through unique.Create", func(t *testing.T) {
		t.Parallel()

		b := &fakeBeginner{execErr: func(v string) error {
			if v != "c" {
				return &pgconn.PgError{Code: db.UniqueViolation}
			}
			return nil
		}}
		values := []string{"a", "b", "c"}
		i := 0
		gen := func() string {
			v := values[i]
			i++
			return v
		}

		v, err := unique.Create(context.Background(), gen, db.Claim(b, "handles", "handle"), db.IsDuplicateKeyError)
		require.NoError(t, err)
		assert.Equal(t, "c", v)

		require.Len(t, b.txs, 3)
		assert.True(t, b.txs[0].rolledBack)
		assert.True(t, b.txs[1].rolledBack)
		assert.True(t, b.txs[2].committed)
	})

	t.Run("rejects empty column names", func(t *testing.T) {
		t.Parallel()

		b := &fakeBeginner{}
		_, err := db.Claim(b, "handles", "handle", db.Column{Value: 1})(context.Background(), "x")
		assert.ErrorIs(t, err, db.ErrInvalidIdentifier)
		assert.Empty(t, b.txs)
	})
}

func TestConnect_InvalidConfig(t *testing.T) {
	t.Parallel()

	_, err := db.Connect(context.Background(), db.Config{ConnectionString: "postgres://%zz"})
	require.Error(t, err)
	assert.ErrorIs(t, err, db.ErrFailedToParseDBConfig)
}

func TestHealthcheck_NilPool(t *testing.T) {
	t.Parallel()

	assert.ErrorIs(t, db.Healthcheck(nil)(context.Background()), db.ErrHealthcheckFailed)
}

func TestIntegration_Claim(t *testing.T) {
	url := os.Getenv("DATABASE_CONN_URL")
	if url == "" {
		t.Skip("DATABASE_CONN_URL not set")
	}

	ctx := context.Background()
	pool, err := db.Connect(ctx, db.Config{ConnectionString: url, RetryAttempts: 1})
	require.NoError(t, err)
	defer pool.Close()

	_, err = pool.Exec(ctx, `CREATE TABLE IF NOT EXISTS claim_test (handle text PRIMARY KEY)`)
	require.NoError(t, err)
	t.Cleanup(func() {
		_, _ = pool.Exec(context.Background(), `DROP TABLE IF EXISTS claim_test`)
	})
	_, err = pool.Exec(ctx, `TRUNCATE claim_test`)
	require.NoError(t, err)

	claim := db.Claim(pool, "claim_test", "handle")
	first, err := unique.CreateSlug(ctx, "Integration Test", claim, db.IsDuplicateKeyError)
	require.NoError(t, err)
	second, err := unique.CreateSlug(ctx, "Integration Test", claim, db.IsDuplicateKeyError)
	require.NoError(t, err)

	assert.Equal(t, "integration-test", first)
	assert.Equal(t, "integration-test-2", second)
}
