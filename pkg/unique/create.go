package unique

import "context"

// GenerateFunc produces a fresh candidate. It is called once per attempt.
type GenerateFunc func() string

// InsertFunc persists a candidate. A failed call must leave no partial record.
type InsertFunc[T any] func(ctx context.Context, value string) (T, error)

// DuplicateFunc reports whether err is a uniqueness violation.
type DuplicateFunc func(err error) bool

// Create inserts freshly generated candidates until one is accepted by the store.
//
// Errors classified by isDuplicate are absorbed and the next attempt uses a new
// candidate. Any other error is returned unchanged and ends the call. When all
// attempts collide, Create returns an *ExhaustedError.
//
// Create is safe under concurrent writers only if the store enforces uniqueness
// atomically at insert time.
func Create[T any](ctx context.Context, generate GenerateFunc, insert InsertFunc[T], isDuplicate DuplicateFunc, opts ...Option) (T, error) {
	var zero T
	if generate == nil || insert == nil || isDuplicate == nil {
		return zero, ErrNilFunc
	}

	o := newOptions(DefaultMaxAttempts, opts)
	return create(ctx, generate, insert, isDuplicate, o, opCreate)
}

func create[T any](ctx context.Context, generate GenerateFunc, insert InsertFunc[T], isDuplicate DuplicateFunc, o *options, op string) (T, error) {
	var zero T
	for attempt := 1; attempt <= o.maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return zero, err
		}

		candidate := generate()
		result, err := insert(ctx, candidate)
		if err == nil {
			return result, nil
		}
		if !isDuplicate(err) {
			return zero, err
		}
		o.collided(ctx, attempt, candidate)
	}

	return zero, &ExhaustedError{Op: op, Attempts: o.maxAttempts}
}
