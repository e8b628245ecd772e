// Package memstore is an in-process uniqueness index.
//
// A Store remembers claimed values, optionally for a limited time, and hands
// out the existence oracle and the atomic insert the unique package expects.
// It is safe for concurrent use. Values are kept only in memory and are lost
// when the process exits.
//
//	s := memstore.New(memstore.WithTTL(time.Hour))
//	defer s.Close()
//
//	code, err := unique.Create(ctx, gen, s.Claim, memstore.IsDuplicateKeyError)
package memstore

import (
	"context"
	"errors"
	"sync"
	"time"
)

var (
	ErrTaken  = errors.New("memstore: value already claimed")
	ErrClosed = errors.New("memstore: store is closed")
)

// IsDuplicateKeyError reports whether err comes from a rejected claim.
func IsDuplicateKeyError(err error) bool {
	return errors.Is(err, ErrTaken)
}

// Option configures a Store.
type Option func(*options)

type options struct {
	ttl             time.Duration
	cleanupInterval time.Duration
}

// WithTTL makes claims expire after d. Zero or negative keeps them forever.
func WithTTL(d time.Duration) Option {
	return func(o *options) {
		o.ttl = d
	}
}

// WithCleanupInterval sets how often expired claims are swept.
// Zero disables the sweeper; expired claims are then dropped lazily on access.
// Default: 1 minute
func WithCleanupInterval(d time.Duration) Option {
	return func(o *options) {
		o.cleanupInterval = d
	}
}

// Store is a set of claimed values.
type Store struct {
	items  map[string]time.Time // zero value = never expires
	opts   options
	done   chan struct{}
	mu     sync.Mutex
	closed bool
}

// New creates a Store. A sweeper goroutine runs only when a TTL is set.
func New(opts ...Option) *Store {
	o := options{cleanupInterval: time.Minute}
	for _, opt := range opts {
		opt(&o)
	}

	s := &Store{
		items: make(map[string]time.Time),
		opts:  o,
		done:  make(chan struct{}),
	}
	if o.ttl > 0 && o.cleanupInterval > 0 {
		go s.janitor()
	}
	return s
}

// Exists reports whether value is currently claimed.
func (s *Store) Exists(ctx context.Context, value string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return false, ErrClosed
	}
	return s.live(value, time.Now()), nil
}

// Claim records value. It fails with ErrTaken when value is already claimed.
func (s *Store) Claim(ctx context.Context, value string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return "", ErrClosed
	}

	now := time.Now()
	if s.live(value, now) {
		return "", ErrTaken
	}

	var expiresAt time.Time
	if s.opts.ttl > 0 {
		expiresAt = now.Add(s.opts.ttl)
	}
	s.items[value] = expiresAt
	return value, nil
}

// Release forgets value so it can be claimed again.
func (s *Store) Release(value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.items, value)
}

// Len returns the number of live claims.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sweep(time.Now())
	return len(s.items)
}

// Close stops the sweeper. Close is idempotent.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true
	close(s.done)
	return nil
}

// live must be called with mu held.
func (s *Store) live(value string, now time.Time) bool {
	expiresAt, ok := s.items[value]
	if !ok {
		return false
	}
	if !expiresAt.IsZero() && !now.Before(expiresAt) {
		delete(s.items, value)
		return false
	}
	return true
}

func (s *Store) janitor() {
	ticker := time.NewTicker(s.opts.cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.done:
			return
		case now := <-ticker.C:
			s.mu.Lock()
			s.sweep(now)
			s.mu.Unlock()
		}
	}
}

func (s *Store) sweep(now time.Time) {
	for value, expiresAt := range s.items {
		if !expiresAt.IsZero() && !now.Before(expiresAt) {
			delete(s.items, value)
		}
	}
}
