package unique

import (
	"context"

	"github.com/dmitrymomot/uniq/pkg/slug"
)

const (
	// DefaultMaxAttempts is the retry budget of Create and Generate.
	DefaultMaxAttempts = 10

	// DefaultSlugMaxAttempts is the retry budget of Slug, CreateSlug and SlugCandidates.
	DefaultSlugMaxAttempts = 50

	// DefaultSlugMaxLength caps the length of allocated slugs.
	DefaultSlugMaxLength = 60
)

// AttemptFunc observes a rejected candidate. attempt starts at 1.
type AttemptFunc func(ctx context.Context, attempt int, candidate string)

// NormalizeFunc turns free-form text into a slug base no longer than maxLen
// bytes. It must be deterministic and idempotent.
type NormalizeFunc func(input string, maxLen int) string

// Option configures a single call.
type Option func(*options)

type options struct {
	onCollision AttemptFunc
	normalize   NormalizeFunc
	maxAttempts int
	maxLength   int
}

func newOptions(defaultAttempts int, opts []Option) *options {
	o := &options{
		maxLength: DefaultSlugMaxLength,
		normalize: defaultNormalize,
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.maxAttempts <= 0 {
		o.maxAttempts = defaultAttempts
	}
	return o
}

func (o *options) collided(ctx context.Context, attempt int, candidate string) {
	if o.onCollision != nil {
		o.onCollision(ctx, attempt, candidate)
	}
}

// WithMaxAttempts sets the retry budget. Non-positive values keep the default.
func WithMaxAttempts(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.maxAttempts = n
		}
	}
}

// WithMaxLength sets the maximum slug length.
// Default: 60. Non-positive values keep the default.
func WithMaxLength(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.maxLength = n
		}
	}
}

// WithOnCollision registers a hook called for every rejected candidate.
func WithOnCollision(fn AttemptFunc) Option {
	return func(o *options) {
		o.onCollision = fn
	}
}

// WithNormalizer replaces the default slug normalizer.
func WithNormalizer(fn NormalizeFunc) Option {
	return func(o *options) {
		if fn != nil {
			o.normalize = fn
		}
	}
}

func defaultNormalize(input string, maxLen int) string {
	return slug.Make(input, slug.MaxLength(maxLen))
}
