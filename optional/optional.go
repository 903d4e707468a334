// Package optional provides a container type that either holds exactly one value or holds nothing.
//
// An Optional is immutable. The zero value is an empty Optional, so Empty is only needed where a type
// argument has to be spelled out.
package optional

import (
	"errors"
	"fmt"
	"reflect"
)

var (
	// ErrNoValue is returned when the value of an empty Optional is requested.
	ErrNoValue = errors.New("no value present")

	// ErrInvalidArgument is returned by Of when it is given an absent (nil) value.
	ErrInvalidArgument = errors.New("invalid argument")
)

// Optional holds either exactly one value of type T, or nothing.
type Optional[T any] struct {
	value   T
	present bool
}

// Of returns an Optional holding value.
// If value is nil (a nil pointer, interface, map, slice, channel, or function), it returns an
// error wrapping ErrInvalidArgument.
func Of[T any](value T) (Optional[T], error) {
	if isNil(value) {
		return Optional[T]{}, fmt.Errorf("%w: nil %T passed to optional.Of", ErrInvalidArgument, value)
	}

	return Optional[T]{value: value, present: true}, nil
}

// MustOf is like Of but panics if value is nil.
func MustOf[T any](value T) Optional[T] {
	opt, err := Of(value)
	if err != nil {
		panic(err)
	}

	return opt
}

// OfNullable returns an empty Optional if value is nil, and an Optional holding value otherwise.
func OfNullable[T any](value T) Optional[T] {
	if isNil(value) {
		return Optional[T]{}
	}

	return Optional[T]{value: value, present: true}
}

// Empty returns an empty Optional.
func Empty[T any]() Optional[T] {
	return Optional[T]{}
}

// IsPresent returns true if o holds a value.
func (o Optional[T]) IsPresent() bool {
	return o.present
}

// IsEmpty returns true if o holds no value.
func (o Optional[T]) IsEmpty() bool {
	return !o.present
}

// Get returns the value held by o.
// If o is empty, it returns an error wrapping ErrNoValue. Prefer OrElse, OrElseGet, or IfPresent
// unless presence has already been checked.
func (o Optional[T]) Get() (T, error) {
	if !o.present {
		var zero T
		return zero, ErrNoValue
	}

	return o.value, nil
}

// IfPresent calls consume with the value if o holds one.
func (o Optional[T]) IfPresent(consume func(value T)) {
	if o.present {
		consume(o.value)
	}
}

// IfPresentOrElse calls consume with the value if o holds one, and otherwise calls orElse.
func (o Optional[T]) IfPresentOrElse(consume func(value T), orElse func()) {
	if o.present {
		consume(o.value)
		return
	}

	orElse()
}

// Filter returns o if it holds a value that matches pred, and an empty Optional otherwise.
// pred is called at most once.
func (o Optional[T]) Filter(pred func(value T) bool) Optional[T] {
	if !o.present || !pred(o.value) {
		return Optional[T]{}
	}

	return o
}

// Or returns o if it holds a value, and the Optional returned by supply otherwise.
func (o Optional[T]) Or(supply func() Optional[T]) Optional[T] {
	if o.present {
		return o
	}

	return supply()
}

// OrElse returns the value held by o, or def if o is empty.
//
// def is an ordinary argument: any expression computing it runs before OrElse is called,
// even when o holds a value. Use OrElseGet to compute the default only when it is needed.
func (o Optional[T]) OrElse(def T) T {
	if o.present {
		return o.value
	}

	return def
}

// OrElseGet returns the value held by o, or the result of calling supply if o is empty.
// supply is only called when o is empty.
func (o Optional[T]) OrElseGet(supply func() T) T {
	if o.present {
		return o.value
	}

	return supply()
}

// OrElseThrow returns the value held by o.
// If o is empty, it returns the error constructed by newErr.
func (o Optional[T]) OrElseThrow(newErr func() error) (T, error) {
	if o.present {
		return o.value, nil
	}

	var zero T
	return zero, newErr()
}

// String implements fmt.Stringer.
func (o Optional[T]) String() string {
	if !o.present {
		return "Optional.empty"
	}

	return fmt.Sprintf("Optional[%v]", o.value)
}

// Map returns OfNullable(mapp(value)) if o holds a value, and an empty Optional otherwise.
// mapp is not called if o is empty. If mapp itself returns an Optional, the result is an
// Optional of an Optional; use FlatMap to avoid the nesting.
func Map[T any, U any](o Optional[T], mapp func(value T) U) Optional[U] {
	if !o.present {
		return Optional[U]{}
	}

	return OfNullable(mapp(o.value))
}

// FlatMap returns mapp(value) if o holds a value, and an empty Optional otherwise.
// The Optional returned by mapp is returned as is, without wrapping it again.
func FlatMap[T any, U any](o Optional[T], mapp func(value T) Optional[U]) Optional[U] {
	if !o.present {
		return Optional[U]{}
	}

	return mapp(o.value)
}

// isNil returns true if value is nil, or a nil value of a nillable kind.
func isNil[T any](value T) bool {
	v := any(value)
	if v == nil {
		return true
	}

	rv := reflect.ValueOf(v)

	switch rv.Kind() {
	case reflect.Chan, reflect.Func, reflect.Interface, reflect.Map, reflect.Pointer, reflect.Slice, reflect.UnsafePointer:
		return rv.IsNil()

	default:
		return false
	}
}
