// Package options implements the functional option pattern shared by the
// builder and parser configuration types.
package options

import (
	"github.com/cockroachdb/errors"

	"github.com/arloliu/bdoc/errs"
)

// Option represents a functional option for configuring any type T.
type Option[T any] interface {
	apply(T) error
}

// Func is a generic functional option that wraps a function.
// It implements the Option interface for any type T.
type Func[T any] struct {
	applyFunc func(T) error
}

// apply implements the Option interface.
func (f *Func[T]) apply(target T) error {
	return f.applyFunc(target)
}

// New creates a new functional option from a function that may reject its input.
func New[T any](fn func(T) error) *Func[T] {
	return &Func[T]{applyFunc: fn}
}

// NoError creates a functional option from a function that doesn't return an error.
func NoError[T any](fn func(T)) *Func[T] {
	return &Func[T]{
		applyFunc: func(target T) error {
			fn(target)
			return nil
		},
	}
}

// Apply applies opts to target in order and stops at the first failure.
//
// Errors are marked with errs.ErrInvalidOption, so callers can match them
// with errors.Is regardless of the message the option produced.
func Apply[T any](target T, opts ...Option[T]) error {
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt.apply(target); err != nil {
			return errors.Mark(err, errs.ErrInvalidOption)
		}
	}

	return nil
}

// MustApply is like Apply but panics on failure. It is meant for option sets
// built only from NoError options.
func MustApply[T any](target T, opts ...Option[T]) {
	if err := Apply(target, opts...); err != nil {
		panic(err)
	}
}
