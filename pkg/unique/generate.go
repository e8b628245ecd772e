package unique

import "context"

// ExistsFunc reports whether a candidate is already taken.
// The answer is a snapshot: it may be stale by the time the caller uses it.
type ExistsFunc func(ctx context.Context, value string) (bool, error)

// Generate returns the first generated candidate that exists reports as free.
//
// Generate performs no writes. The caller claims the value afterwards, so two
// concurrent calls may both receive the same candidate. Pair it with a unique
// constraint, or use Create, when writers race.
func Generate(ctx context.Context, generate GenerateFunc, exists ExistsFunc, opts ...Option) (string, error) {
	if generate == nil || exists == nil {
		return "", ErrNilFunc
	}

	o := newOptions(DefaultMaxAttempts, opts)
	for attempt := 1; attempt <= o.maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		candidate := generate()
		taken, err := exists(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
		o.collided(ctx, attempt, candidate)
	}

	return "", &ExhaustedError{Op: opGenerate, Attempts: o.maxAttempts}
}
