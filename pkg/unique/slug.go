package unique

import (
	"context"
	"strconv"
	"unicode/utf8"
)

// Slug derives a slug from input and returns the first free candidate of the
// sequence base, base-2, base-3, ... up to the retry budget.
//
// The base is shortened, never the suffix, so that no candidate exceeds the
// maximum length. If maxLen is too small to hold even one base character plus
// the suffix, the one-character base plus full suffix is still produced.
//
// Slug returns ErrEmptyBase without consulting exists when the input has no
// representable characters. Like Generate it is not race-safe on its own; see
// CreateSlug.
func Slug(ctx context.Context, input string, exists ExistsFunc, opts ...Option) (string, error) {
	if exists == nil {
		return "", ErrNilFunc
	}

	o := newOptions(DefaultSlugMaxAttempts, opts)
	base := o.normalize(input, o.maxLength)
	if base == "" {
		return "", ErrEmptyBase
	}

	for attempt := 1; attempt <= o.maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		candidate := suffixed(base, attempt, o.maxLength)
		taken, err := exists(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
		o.collided(ctx, attempt, candidate)
	}

	return "", &ExhaustedError{Op: opSlug, Attempts: o.maxAttempts}
}

// SlugCandidates returns a generator that yields base, base-2, base-3, ...
// on successive calls. Each call advances the sequence.
func SlugCandidates(input string, opts ...Option) (GenerateFunc, error) {
	o := newOptions(DefaultSlugMaxAttempts, opts)
	return slugCandidates(input, o)
}

func slugCandidates(input string, o *options) (GenerateFunc, error) {
	base := o.normalize(input, o.maxLength)
	if base == "" {
		return nil, ErrEmptyBase
	}

	n := 0
	return func() string {
		n++
		return suffixed(base, n, o.maxLength)
	}, nil
}

// CreateSlug allocates a slug by inserting the candidates of SlugCandidates
// until the store accepts one. Unlike Slug it is race-safe when the store
// enforces a unique constraint on the slug.
func CreateSlug[T any](ctx context.Context, input string, insert InsertFunc[T], isDuplicate DuplicateFunc, opts ...Option) (T, error) {
	var zero T
	if insert == nil || isDuplicate == nil {
		return zero, ErrNilFunc
	}

	o := newOptions(DefaultSlugMaxAttempts, opts)
	generate, err := slugCandidates(input, o)
	if err != nil {
		return zero, err
	}

	return create(ctx, generate, insert, isDuplicate, o, opSlug)
}

// suffixed returns the n-th candidate for base. The first candidate is the
// base itself; the n-th (n >= 2) is base[:cut] + "-n" with
// cut = max(1, maxLen - len("-n")). Lengths are in bytes; cut moves back to
// a rune boundary but keeps at least one whole rune.
func suffixed(base string, n, maxLen int) string {
	if n <= 1 {
		return base
	}

	suffix := "-" + strconv.Itoa(n)
	cut := min(max(1, maxLen-len(suffix)), len(base))
	for cut > 0 && cut < len(base) && !utf8.RuneStart(base[cut]) {
		cut--
	}
	if cut == 0 {
		_, cut = utf8.DecodeRuneInString(base)
	}
	return base[:cut] + suffix
}
