package db

import "errors"

var (
	ErrFailedToParseDBConfig    = errors.New("db: failed to parse database configuration")
	ErrFailedToOpenDBConnection = errors.New("db: failed to open database connection")
	ErrHealthcheckFailed        = errors.New("db: healthcheck failed")
	ErrSetDialect               = errors.New("db migrator: failed to set dialect")
	ErrApplyMigrations          = errors.New("db migrator: failed to apply migrations")
	ErrInvalidIdentifier        = errors.New("db: table and column must not be empty")
)

// UniqueViolation is the SQLSTATE PostgreSQL reports for a unique constraint violation.
const UniqueViolation = "23505"

// IsDuplicateKeyError reports whether err is a PostgreSQL unique constraint violation.
// It recognizes *pgconn.PgError as well as any error exposing SQLState(), so it
// works for both pgx pools and database/sql handles using the pgx stdlib driver.
func IsDuplicateKeyError(err error) bool {
	var state interface{ SQLState() string }
	if errors.As(err, &state) {
		return state.SQLState() == UniqueViolation
	}
	return false
}
