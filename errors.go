package gostreams

import "errors"

var (
	// ErrInvalidState is returned when a Sequence is used in a way its current state does not allow:
	// running a second operation on an already operated upon Sequence, running a parallel terminal
	// operation on an unsized Sequence, or reducing in parallel without a combiner.
	ErrInvalidState = errors.New("invalid state")

	// ErrTypeMismatch is returned when elements are sorted by natural order, but their type has none.
	ErrTypeMismatch = errors.New("type mismatch")

	// ErrOutOfRange is returned when a Sequence is constructed from an invalid sub-range of a slice.
	ErrOutOfRange = errors.New("index out of range")

	// ErrShortCircuit is a generic error used to short-circuit a stream by canceling its context.
	// Terminal operations do not return it.
	ErrShortCircuit = errors.New("short circuit")
)

// A DuplicateKeyError is used to short-circuit a stream by canceling its context to indicate that
// a key could not be added to a map because it already exists.
type DuplicateKeyError[T any, K comparable] struct {
	// Element is the upstream producer's element that caused the error.
	Element T

	// Key is the key that was already in the map.
	Key K
}

// Error implements error.
func (e *DuplicateKeyError[T, K]) Error() string {
	return "duplicate key"
}
