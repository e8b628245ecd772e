package unique

import (
	"errors"
	"fmt"
)

var (
	// ErrExhausted is matched by every *ExhaustedError.
	ErrExhausted = errors.New("unique: retry budget exhausted")

	// ErrEmptyBase is returned by Slug when the normalized input is empty.
	ErrEmptyBase = errors.New("unique: slug base is empty")

	// ErrNilFunc is returned when a required callback is nil.
	ErrNilFunc = errors.New("unique: nil callback")
)

// ExhaustedError reports that every attempt of a call collided.
type ExhaustedError struct {
	Op       string
	Attempts int
}

func (e *ExhaustedError) Error() string {
	switch e.Op {
	case opCreate:
		return fmt.Sprintf("unique: failed to create after %d attempts due to duplicates", e.Attempts)
	case opSlug:
		return fmt.Sprintf("unique: failed to generate unique slug after %d attempts", e.Attempts)
	default:
		return fmt.Sprintf("unique: failed to generate unique value after %d attempts", e.Attempts)
	}
}

// Is makes errors.Is(err, ErrExhausted) report true.
func (e *ExhaustedError) Is(target error) bool {
	return target == ErrExhausted
}

const (
	opCreate   = "create"
	opGenerate = "generate"
	opSlug     = "slug"
)
