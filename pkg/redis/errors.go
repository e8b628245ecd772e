package redis

import "errors"

var (
	ErrEmptyConnectionURL = errors.New("redis: empty connection URL")
	ErrFailedToParseURL   = errors.New("redis: failed to parse connection URL")
	ErrConnectionFailed   = errors.New("redis: failed to establish connection")
	ErrHealthcheckFailed  = errors.New("redis: healthcheck failed")
	ErrKeyTaken           = errors.New("redis: key already reserved")
)

// IsDuplicateKeyError reports whether err comes from a rejected reservation.
func IsDuplicateKeyError(err error) bool {
	return errors.Is(err, ErrKeyTaken)
}
