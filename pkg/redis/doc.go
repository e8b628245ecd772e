// Package redis provides Redis connection helpers and key reservation
// collaborators for the unique package.
//
// It wraps [github.com/redis/go-redis/v9]. [Open] retries the initial PING
// with a linear backoff; [Healthcheck] and [Shutdown] plug into health reports
// and shutdown hooks.
//
// # Reservations
//
// [Reserve] claims prefix+value with SET NX, so concurrent callers cannot
// obtain the same value. Combine it with [IsDuplicateKeyError]:
//
//	client := redis.MustOpen(ctx, os.Getenv("REDIS_URL"))
//	defer client.Close()
//
//	handle, err := unique.CreateSlug(ctx, "John Doe",
//		redis.Reserve(client, "handles:", 0),
//		redis.IsDuplicateKeyError,
//	)
//
// [Exists] is the read-only counterpart for check-then-use flows.
//
// # Error Handling
//
//   - [ErrEmptyConnectionURL] - Empty connection URL provided
//   - [ErrFailedToParseURL] - Invalid connection URL format or scheme
//   - [ErrConnectionFailed] - Connection failed after all retry attempts
//   - [ErrHealthcheckFailed] - Redis ping failed
//   - [ErrKeyTaken] - Value is already reserved
package redis
