// Package id provides candidate generators for unique identifiers.
//
// Every generator returns a func() string that can be handed to unique.Create
// or unique.Generate. Collisions are expected to be rare, not impossible: the
// unique package resolves them against the store.
package id

import (
	"errors"
	"fmt"
	"unicode/utf8"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

const (
	// DefaultAlphabet omits characters that are easy to confuse: 0, 1, i, l, o.
	DefaultAlphabet = "abcdefghjkmnpqrstuvwxyz23456789"

	// DefaultLength is the length of the random part of an id.
	DefaultLength = 10
)

var (
	ErrInvalidAlphabet = errors.New("id: alphabet must have between 2 and 255 distinct characters")
	ErrInvalidLength   = errors.New("id: length must be positive")
)

// Option configures a random id generator.
type Option func(*options)

type options struct {
	alphabet string
	prefix   string
	length   int
}

// WithAlphabet sets the characters ids are drawn from.
// Default: DefaultAlphabet
func WithAlphabet(alphabet string) Option {
	return func(o *options) {
		o.alphabet = alphabet
	}
}

// WithLength sets the length of the random part.
// Default: 10
func WithLength(n int) Option {
	return func(o *options) {
		o.length = n
	}
}

// WithPrefix prepends a fixed prefix, e.g. "usr_". The prefix does not count
// towards the length.
func WithPrefix(prefix string) Option {
	return func(o *options) {
		o.prefix = prefix
	}
}

// New returns a generator of random ids drawn uniformly from the configured
// alphabet using crypto/rand.
//
// Example:
//
//	gen, err := id.New(id.WithPrefix("prov_"), id.WithLength(16))
//	if err != nil {
//	    return err
//	}
//	v := gen() // "prov_k3m9xq2nd7hs8vwa"
func New(opts ...Option) (func() string, error) {
	o := &options{
		alphabet: DefaultAlphabet,
		length:   DefaultLength,
	}
	for _, opt := range opts {
		opt(o)
	}

	if o.length <= 0 {
		return nil, ErrInvalidLength
	}
	if !validAlphabet(o.alphabet) {
		return nil, ErrInvalidAlphabet
	}

	// Fail now rather than on the first call.
	if _, err := gonanoid.Generate(o.alphabet, o.length); err != nil {
		return nil, errors.Join(ErrInvalidAlphabet, err)
	}

	alphabet, length, prefix := o.alphabet, o.length, o.prefix
	return func() string {
		return prefix + gonanoid.MustGenerate(alphabet, length)
	}, nil
}

// MustNew is like New but panics on invalid options.
func MustNew(opts ...Option) func() string {
	gen, err := New(opts...)
	if err != nil {
		panic(fmt.Sprintf("id: %v", err))
	}
	return gen
}

func validAlphabet(alphabet string) bool {
	n := utf8.RuneCountInString(alphabet)
	if n < 2 || n > 255 {
		return false
	}
	seen := make(map[rune]struct{}, n)
	for _, r := range alphabet {
		if _, dup := seen[r]; dup {
			return false
		}
		seen[r] = struct{}{}
	}
	return true
}
