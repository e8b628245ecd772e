// Package unique resolves collisions when allocating unique identifiers and slugs.
//
// Three strategies are provided. Pick the one that matches the guarantees of
// your store:
//
//   - [Create] inserts a freshly generated candidate and retries on duplicate-key
//     failures. It is the only strategy that is safe under concurrent writers,
//     provided the store enforces a unique constraint atomically.
//   - [Generate] asks an existence oracle about each candidate and returns the
//     first free one. Nothing is written, so the answer may be stale by the time
//     the caller claims the value.
//   - [Slug] turns free-form text into a slug and appends -2, -3, ... until the
//     oracle reports a free candidate. [CreateSlug] walks the same sequence
//     through an insert, combining deterministic slugs with Create's race safety.
//
// # Usage
//
//	gen := id.MustNew(id.WithPrefix("usr_"))
//
//	user, err := unique.Create(ctx, gen,
//		func(ctx context.Context, v string) (*User, error) {
//			return repo.Insert(ctx, v, name)
//		},
//		db.IsDuplicateKeyError,
//	)
//
//	handle, err := unique.Slug(ctx, "John Doe", db.Exists(pool, "users", "handle"))
//	// "john-doe", or "john-doe-2", "john-doe-3", ... when taken
//
// # Errors
//
// Duplicate-key failures never leave Create; they only consume attempts. When the
// budget runs out every strategy returns an [*ExhaustedError], which matches
// [ErrExhausted] with errors.Is and carries the attempt count. Slug returns
// [ErrEmptyBase] before any lookup when the input normalizes to nothing. Every
// other error from insert or exists is returned to the caller untouched.
//
// # Cancellation
//
// The context is handed to every callback and checked before each attempt. Once
// it is done no further attempt is started.
//
// The package does not log. Use [WithOnCollision] to observe rejected candidates.
package unique
