package chaintable

import "github.com/cockroachdb/errors"

var (
	// ErrInvalidArgument is returned by the constructors for a negative
	// capacity, a load factor that is not positive, or a nil Hasher.
	ErrInvalidArgument = errors.New("chaintable: invalid argument")

	// ErrNoSuchElement is returned by Next once the iterator is exhausted.
	ErrNoSuchElement = errors.New("chaintable: no such element")

	// ErrInvalidState is returned by Remove when there is no entry
	// returned by Next left to remove.
	ErrInvalidState = errors.New("chaintable: invalid iterator state")

	// ErrConcurrentModification is returned by Next, and raised as a panic
	// by All, Keys, Values and Range, when the table was structurally
	// modified other than through the iterator during iteration.
	ErrConcurrentModification = errors.New("chaintable: table modified during iteration")
)
