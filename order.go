package gostreams

import (
	"context"
	"fmt"
	"reflect"

	"golang.org/x/exp/constraints"
)

// LessFunc returns true if element a is "less" than element b.
type LessFunc[T any] func(ctx context.Context, cancel context.CancelCauseFunc, a T, b T) bool

// Comparable is implemented by types that define their own natural order.
// Compare returns a negative number if the receiver is less than other, zero if they are equal,
// and a positive number otherwise.
type Comparable[T any] interface {
	Compare(other T) int
}

// Less returns a LessFunc that orders elements using the < operator.
func Less[T constraints.Ordered]() LessFunc[T] {
	return func(_ context.Context, _ context.CancelCauseFunc, a T, b T) bool {
		return a < b
	}
}

// FuncLess returns a LessFunc that calls less.
func FuncLess[T any](less func(a T, b T) bool) LessFunc[T] {
	return func(_ context.Context, _ context.CancelCauseFunc, a T, b T) bool {
		return less(a, b)
	}
}

// Reverse returns a LessFunc that orders elements in the reverse order of less.
func Reverse[T any](less LessFunc[T]) LessFunc[T] {
	return func(ctx context.Context, cancel context.CancelCauseFunc, a T, b T) bool {
		return less(ctx, cancel, b, a)
	}
}

// Comparing returns a LessFunc that orders elements by the keys returned by key.
func Comparing[T any, K constraints.Ordered](key Function[T, K]) LessFunc[T] {
	return func(_ context.Context, _ context.CancelCauseFunc, a T, b T) bool {
		return key(a) < key(b)
	}
}

// NaturalOrder returns a LessFunc that orders elements of type T by their natural order.
//
// Types implementing Comparable are ordered using their Compare method. Types whose underlying type
// is an integer, floating point, or string type are ordered using the < operator.
// For all other types, NaturalOrder returns an error wrapping ErrTypeMismatch.
func NaturalOrder[T any]() (LessFunc[T], error) {
	typ := reflect.TypeOf((*T)(nil)).Elem()

	if typ.Implements(reflect.TypeOf((*Comparable[T])(nil)).Elem()) {
		return func(_ context.Context, _ context.CancelCauseFunc, a T, b T) bool {
			return any(a).(Comparable[T]).Compare(b) < 0
		}, nil
	}

	var less func(a reflect.Value, b reflect.Value) bool

	switch typ.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		less = func(a reflect.Value, b reflect.Value) bool { return a.Int() < b.Int() }

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		less = func(a reflect.Value, b reflect.Value) bool { return a.Uint() < b.Uint() }

	case reflect.Float32, reflect.Float64:
		less = func(a reflect.Value, b reflect.Value) bool { return a.Float() < b.Float() }

	case reflect.String:
		less = func(a reflect.Value, b reflect.Value) bool { return a.String() < b.String() }

	default:
		return nil, fmt.Errorf("%w: %s has no natural order", ErrTypeMismatch, typ)
	}

	return func(_ context.Context, _ context.CancelCauseFunc, a T, b T) bool {
		return less(reflect.ValueOf(a), reflect.ValueOf(b))
	}, nil
}
