package unique_test

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/uniq/pkg/slug"
	"github.com/dmitrymomot/uniq/pkg/unique"
)

func never(context.Context, string) (bool, error) { return false, nil }

func always(context.Context, string) (bool, error) { return true, nil }

func TestSlug(t *testing.T) {
	t.Parallel()

	t.Run("free base is returned without suffix", func(t *testing.T) {
		t.Parallel()

		exists, asked := takenSet()
		s, err := unique.Slug(context.Background(), "Hello World", exists)
		require.NoError(t, err)
		assert.Equal(t, "hello-world", s)
		assert.Equal(t, []string{"hello-world"}, *asked)
	})

	t.Run("adds suffix on collision", func(t *testing.T) {
		t.Parallel()

		exists, asked := takenSet("john-doe", "john-doe-2")
		s, err := unique.Slug(context.Background(), "John Doe", exists)
		require.NoError(t, err)
		assert.Equal(t, "john-doe-3", s)
		assert.Equal(t, []string{"john-doe", "john-doe-2", "john-doe-3"}, *asked)
	})

	t.Run("empty base is rejected before any lookup", func(t *testing.T) {
		t.Parallel()

		for _, input := range []string{"!!!", "", "   ", "😀🌍", "---"} {
			exists, asked := takenSet()
			_, err := unique.Slug(context.Background(), input, exists)
			assert.ErrorIs(t, err, unique.ErrEmptyBase, "input %q", input)
			assert.Empty(t, *asked, "input %q", input)
		}
	})

	t.Run("suffixes are sequential from 2", func(t *testing.T) {
		t.Parallel()

		exists, asked := takenSet()
		_, err := unique.Slug(context.Background(), "Post", func(ctx context.Context, v string) (bool, error) {
			_, _ = exists(ctx, v)
			return true, nil
		}, unique.WithMaxAttempts(5))
		require.Error(t, err)
		assert.Equal(t, []string{"post", "post-2", "post-3", "post-4", "post-5"}, *asked)
	})

	t.Run("exhaustion names the attempt count", func(t *testing.T) {
		t.Parallel()

		_, err := unique.Slug(context.Background(), "taken", always, unique.WithMaxAttempts(7))
		require.Error(t, err)
		assert.ErrorIs(t, err, unique.ErrExhausted)
		assert.EqualError(t, err, "unique: failed to generate unique slug after 7 attempts")

		var exhausted *unique.ExhaustedError
		require.ErrorAs(t, err, &exhausted)
		assert.Equal(t, 7, exhausted.Attempts)
	})

	t.Run("default budget is fifty attempts", func(t *testing.T) {
		t.Parallel()

		calls := 0
		_, err := unique.Slug(context.Background(), "taken", func(context.Context, string) (bool, error) {
			calls++
			return true, nil
		})
		assert.ErrorIs(t, err, unique.ErrExhausted)
		assert.Equal(t, 50, calls)
	})

	t.Run("base is truncated, never the suffix", func(t *testing.T) {
		t.Parallel()

		exists, _ := takenSet("abcdefghij")
		s, err := unique.Slug(context.Background(), "abcdefghij", exists, unique.WithMaxLength(10))
		require.NoError(t, err)
		assert.Equal(t, "abcdefgh-2", s)
	})

	t.Run("default max length is sixty", func(t *testing.T) {
		t.Parallel()

		input := strings.Repeat("a", 100)
		s, err := unique.Slug(context.Background(), input, never)
		require.NoError(t, err)
		assert.Equal(t, strings.Repeat("a", 60), s)

		exists, _ := takenSet(strings.Repeat("a", 60))
		s, err = unique.Slug(context.Background(), input, exists)
		require.NoError(t, err)
		assert.Equal(t, strings.Repeat("a", 58)+"-2", s)
	})

	t.Run("oracle error is returned unchanged", func(t *testing.T) {
		t.Parallel()

		boom := errors.New("lookup failed")
		calls := 0
		_, err := unique.Slug(context.Background(), "John Doe", func(_ context.Context, v string) (bool, error) {
			calls++
			if v == "john-doe" {
				return true, nil
			}
			return false, boom
		})
		assert.Same(t, boom, err)
		assert.Equal(t, 2, calls)
	})

	t.Run("custom normalizer", func(t *testing.T) {
		t.Parallel()

		s, err := unique.Slug(context.Background(), "Mixed Case", never,
			unique.WithNormalizer(func(in string, maxLen int) string {
				return slug.Make(in, slug.MaxLength(maxLen), slug.Separator("_"))
			}),
		)
		require.NoError(t, err)
		assert.Equal(t, "mixed_case", s)
	})

	t.Run("nil oracle is rejected", func(t *testing.T) {
		t.Parallel()

		_, err := unique.Slug(context.Background(), "x", nil)
		assert.ErrorIs(t, err, unique.ErrNilFunc)
	})
}

func TestSlug_NoCollisionPathIsIdempotent(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"Hello World",
		"  A@@@B   C  ",
		"Café résumé naïve",
		"Price: $99.99",
		strings.Repeat("word ", 40),
	}
	for _, input := range inputs {
		for _, maxLen := range []int{5, 10, 60} {
			base := slug.Make(input, slug.MaxLength(maxLen))
			got, err := unique.Slug(context.Background(), input, never, unique.WithMaxLength(maxLen))
			require.NoError(t, err)
			assert.Equal(t, base, got)

			again, err := unique.Slug(context.Background(), got, never, unique.WithMaxLength(maxLen))
			require.NoError(t, err)
			assert.Equal(t, got, again)
		}
	}
}

// allCandidates returns every candidate Slug tries when all of them are taken.
func allCandidates(t *testing.T, input string, maxLen, maxAttempts int) []string {
	t.Helper()

	var asked []string
	_, err := unique.Slug(context.Background(), input, func(_ context.Context, v string) (bool, error) {
		asked = append(asked, v)
		return true, nil
	}, unique.WithMaxLength(maxLen), unique.WithMaxAttempts(maxAttempts))
	require.ErrorIs(t, err, unique.ErrExhausted)
	require.Len(t, asked, maxAttempts)
	return asked
}

func TestSlug_LengthBudget(t *testing.T) {
	t.Parallel()

	t.Run("never exceeds max length when it fits a base character", func(t *testing.T) {
		t.Parallel()

		for maxLen := 1; maxLen <= 70; maxLen++ {
			for i, candidate := range allCandidates(t, "The Quick Brown Fox Jumps Over The Lazy Dog", maxLen, 120) {
				n := i + 1
				suffixLen := 0
				if n > 1 {
					suffixLen = len("-" + strconv.Itoa(n))
				}
				if maxLen >= suffixLen+1 {
					assert.LessOrEqual(t, len(candidate), maxLen, "maxLen=%d n=%d candidate=%q", maxLen, n, candidate)
				}
				if n > 1 {
					assert.True(t, strings.HasSuffix(candidate, "-"+strconv.Itoa(n)), "suffix must be intact: %q", candidate)
				}
			}
		}
	})

	// With 10 attempts the widest suffix is "-10" (3 characters).
	tests := []struct {
		name     string
		maxLen   int
		expected []string
	}{
		{
			name:   "one above widest suffix",
			maxLen: 4,
			expected: []string{
				"abcd", "ab-2", "ab-3", "ab-4", "ab-5", "ab-6", "ab-7", "ab-8", "ab-9", "a-10",
			},
		},
		{
			name:   "equal to widest suffix",
			maxLen: 3,
			expected: []string{
				"abc", "a-2", "a-3", "a-4", "a-5", "a-6", "a-7", "a-8", "a-9", "a-10",
			},
		},
		{
			name:   "one below widest suffix",
			maxLen: 2,
			expected: []string{
				"ab", "a-2", "a-3", "a-4", "a-5", "a-6", "a-7", "a-8", "a-9", "a-10",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.expected, allCandidates(t, "abcdefgh", tt.maxLen, 10))
		})
	}

	t.Run("one character base plus full suffix below the budget", func(t *testing.T) {
		t.Parallel()

		got := allCandidates(t, "abcdefgh", 1, 3)
		assert.Equal(t, []string{"a", "a-2", "a-3"}, got)
	})
}

func TestSlugCandidates(t *testing.T) {
	t.Parallel()

	gen, err := unique.SlugCandidates("John Doe", unique.WithMaxLength(10))
	require.NoError(t, err)

	var got []string
	for range 4 {
		got = append(got, gen())
	}
	assert.Equal(t, []string{"john-doe", "john-doe-2", "john-doe-3", "john-doe-4"}, got)

	_, err = unique.SlugCandidates("%%%")
	assert.ErrorIs(t, err, unique.ErrEmptyBase)
}

func TestCreateSlug(t *testing.T) {
	t.Parallel()

	t.Run("inserts the first accepted candidate", func(t *testing.T) {
		t.Parallel()

		taken := map[string]bool{"john-doe": true, "john-doe-2": true}
		var inserted []string
		rec, err := unique.CreateSlug(context.Background(), "John Doe",
			func(_ context.Context, v string) (record, error) {
				inserted = append(inserted, v)
				if taken[v] {
					return record{}, errDuplicate
				}
				return record{Value: v}, nil
			},
			isDuplicate,
		)
		require.NoError(t, err)
		assert.Equal(t, "john-doe-3", rec.Value)
		assert.Equal(t, []string{"john-doe", "john-doe-2", "john-doe-3"}, inserted)
	})

	t.Run("empty base performs no insert", func(t *testing.T) {
		t.Parallel()

		inserts := 0
		_, err := unique.CreateSlug(context.Background(), "!!!",
			func(context.Context, string) (record, error) {
				inserts++
				return record{}, nil
			},
			isDuplicate,
		)
		assert.ErrorIs(t, err, unique.ErrEmptyBase)
		assert.Zero(t, inserts)
	})

	t.Run("exhaustion uses the slug budget", func(t *testing.T) {
		t.Parallel()

		inserts := 0
		_, err := unique.CreateSlug(context.Background(), "busy",
			func(context.Context, string) (record, error) {
				inserts++
				return record{}, errDuplicate
			},
			isDuplicate,
		)
		assert.ErrorIs(t, err, unique.ErrExhausted)
		assert.EqualError(t, err, fmt.Sprintf("unique: failed to generate unique slug after %d attempts", unique.DefaultSlugMaxAttempts))
		assert.Equal(t, unique.DefaultSlugMaxAttempts, inserts)
	})

	t.Run("opaque failure is returned unchanged", func(t *testing.T) {
		t.Parallel()

		boom := errors.New("connection reset")
		_, err := unique.CreateSlug(context.Background(), "busy",
			func(context.Context, string) (record, error) { return record{}, boom },
			isDuplicate,
		)
		assert.Same(t, boom, err)
	})

	t.Run("exhaustion from inside insert is returned unchanged", func(t *testing.T) {
		t.Parallel()

		inner := &unique.ExhaustedError{Op: "generate", Attempts: 3}
		msg := inner.Error()

		_, err := unique.CreateSlug(context.Background(), "busy",
			func(context.Context, string) (record, error) { return record{}, inner },
			func(error) bool { return false },
		)
		assert.Same(t, inner, err)
		assert.Equal(t, "generate", inner.Op)
		assert.EqualError(t, err, msg)
	})
}

func TestSlug_MultibyteNormalizer(t *testing.T) {
	t.Parallel()

	keep := unique.WithNormalizer(func(input string, _ int) string { return input })

	tests := []struct {
		name   string
		input  string
		maxLen int
		want   []string
	}{
		{name: "cut backs off to a rune boundary", input: "éé", maxLen: 5, want: []string{"éé", "é-2", "é-3"}},
		{name: "first rune is kept whole", input: "é", maxLen: 2, want: []string{"é", "é-2"}},
		{name: "ascii is unaffected", input: "abcd", maxLen: 4, want: []string{"abcd", "ab-2"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			gen, err := unique.SlugCandidates(tt.input, keep, unique.WithMaxLength(tt.maxLen))
			require.NoError(t, err)

			for _, want := range tt.want {
				got := gen()
				assert.True(t, utf8.ValidString(got), "invalid UTF-8 in %q", got)
				assert.Equal(t, want, got)
			}
		})
	}
}
