package gostreams

import (
	"context"

	"golang.org/x/exp/slices"
)

// Function returns the result of applying an operation to elem.
type Function[T any, U any] func(elem T) U

// MapperFunc maps element elem to type U.
type MapperFunc[T any, U any] func(ctx context.Context, cancel context.CancelCauseFunc, elem T) U

// PredicateFunc returns true if elem matches a predicate.
type PredicateFunc[T any] func(ctx context.Context, cancel context.CancelCauseFunc, elem T) bool

// FuncMapper returns a mapper that calls mapp for each element.
func FuncMapper[T any, U any](mapp Function[T, U]) MapperFunc[T, U] {
	return func(_ context.Context, _ context.CancelCauseFunc, elem T) U {
		return mapp(elem)
	}
}

// FuncPredicate returns a predicate that calls pred for each element.
func FuncPredicate[T any](pred Function[T, bool]) PredicateFunc[T] {
	return func(_ context.Context, _ context.CancelCauseFunc, elem T) bool {
		return pred(elem)
	}
}

// Identity returns a mapper that returns the same element it receives.
func Identity[T any]() MapperFunc[T, T] {
	return func(_ context.Context, _ context.CancelCauseFunc, elem T) T {
		return elem
	}
}

// Map returns a Sequence that calls mapp for each element produced by s, mapping it to type U.
func Map[T any, U any](s *Sequence[T], mapp MapperFunc[T, U]) *Sequence[U] {
	return chain(s, func(ctx context.Context, cancel context.CancelCauseFunc, pull PullFunc[T]) PullFunc[U] {
		return func() (U, bool) {
			var zero U

			elem, ok := pull()
			if !ok {
				return zero, false
			}

			outElem := mapp(ctx, cancel, elem)

			if contextDone(ctx) {
				return zero, false
			}

			return outElem, true
		}
	})
}

// FlatMap returns a Sequence that calls mapp for each element produced by s, mapping it to an intermediate
// Sequence that produces elements of type U.
// The new Sequence produces all elements produced by the intermediate Sequences, in order.
// Each intermediate Sequence is drained sequentially, regardless of its mode. A nil intermediate Sequence
// produces no elements.
func FlatMap[T any, U any](s *Sequence[T], mapp MapperFunc[T, *Sequence[U]]) *Sequence[U] {
	return chain(s, func(ctx context.Context, cancel context.CancelCauseFunc, pull PullFunc[T]) PullFunc[U] {
		var inner PullFunc[U]

		return func() (U, bool) {
			var zero U

			for {
				if inner != nil {
					if elem, ok := inner(); ok {
						return elem, true
					}

					inner = nil
				}

				if contextDone(ctx) {
					return zero, false
				}

				elem, ok := pull()
				if !ok {
					return zero, false
				}

				seq := mapp(ctx, cancel, elem)

				if contextDone(ctx) {
					return zero, false
				}

				// nil is an empty Sequence
				if seq == nil {
					continue
				}

				if err := seq.begin(); err != nil {
					cancel(err)
					return zero, false
				}

				inner = seq.produce(ctx, cancel)
			}
		}
	})
}

// Filter returns a Sequence that calls filter for each element produced by s, and only produces elements for which
// filter returns true.
func Filter[T any](s *Sequence[T], filter PredicateFunc[T]) *Sequence[T] {
	return chain(s, func(ctx context.Context, cancel context.CancelCauseFunc, pull PullFunc[T]) PullFunc[T] {
		return func() (T, bool) {
			for {
				elem, ok := pull()
				if !ok {
					return elem, false
				}

				filterResult := filter(ctx, cancel, elem)

				if contextDone(ctx) {
					var zero T
					return zero, false
				}

				if filterResult {
					return elem, true
				}
			}
		}
	})
}

// Peek returns a Sequence that calls peek for each element produced by s, and produces the same elements.
// peek is only called for elements that are pulled by a downstream operation. In parallel mode, it may be
// called concurrently, in undefined order.
func Peek[T any](s *Sequence[T], peek ConsumerFunc[T]) *Sequence[T] {
	return chain(s, func(ctx context.Context, cancel context.CancelCauseFunc, pull PullFunc[T]) PullFunc[T] {
		return func() (T, bool) {
			elem, ok := pull()
			if !ok {
				return elem, false
			}

			peek(ctx, cancel, elem)

			if contextDone(ctx) {
				var zero T
				return zero, false
			}

			return elem, true
		}
	})
}

// Limit returns a Sequence that produces the same elements as s, in order, up to max elements.
// The new Sequence is sized even if s is not, so Limit may be used to run infinite Sequences in parallel.
func Limit[T any](s *Sequence[T], max uint64) *Sequence[T] {
	produce := func(ctx context.Context, cancel context.CancelCauseFunc) PullFunc[T] {
		pull := s.produce(ctx, cancel)

		done := uint64(0)

		return func() (T, bool) {
			if done >= max {
				var zero T
				return zero, false
			}

			elem, ok := pull()
			if !ok {
				return elem, false
			}

			done++

			return elem, true
		}
	}

	return derive(s, produce, buffered(produce))
}

// Skip returns a Sequence that produces the same elements as s, in order, skipping the first num elements.
func Skip[T any](s *Sequence[T], num uint64) *Sequence[T] {
	produce := func(ctx context.Context, cancel context.CancelCauseFunc) PullFunc[T] {
		pull := s.produce(ctx, cancel)

		skipped := uint64(0)

		return func() (T, bool) {
			for skipped < num {
				if _, ok := pull(); !ok {
					var zero T
					return zero, false
				}

				skipped++
			}

			return pull()
		}
	}

	var split splitFunc[T]
	if s.split != nil {
		split = buffered(produce)
	}

	return derive(s, produce, split)
}

// Distinct returns a Sequence that produces the same elements as s, in order, skipping elements that are equal
// to an element produced before.
func Distinct[T comparable](s *Sequence[T]) *Sequence[T] {
	produce := func(ctx context.Context, cancel context.CancelCauseFunc) PullFunc[T] {
		pull := s.produce(ctx, cancel)

		seen := map[T]struct{}{}

		return func() (T, bool) {
			for {
				elem, ok := pull()
				if !ok {
					return elem, false
				}

				if _, ok := seen[elem]; ok {
					continue
				}

				seen[elem] = struct{}{}

				return elem, true
			}
		}
	}

	var split splitFunc[T]
	if s.split != nil {
		split = buffered(produce)
	}

	return derive(s, produce, split)
}

// Sorted returns a Sequence that consumes all elements from s, and produces them sorted by their natural order.
// The sort is stable.
// If T has no natural order, the terminal operation fails with ErrTypeMismatch without producing any elements.
// See NaturalOrder.
func Sorted[T any](s *Sequence[T]) *Sequence[T] {
	less, err := NaturalOrder[T]()
	if err != nil {
		d := derive(s, s.produce, s.split)
		if d.err == nil {
			d.err = err
		}

		return d
	}

	return SortedFunc(s, less)
}

// SortedFunc returns a Sequence that consumes all elements from s, sorts them using less, and produces them
// in sorted order. The sort is stable.
func SortedFunc[T any](s *Sequence[T], less LessFunc[T]) *Sequence[T] {
	sortElems := func(ctx context.Context, cancel context.CancelCauseFunc, elems []T) []T {
		slices.SortStableFunc(elems, func(a T, b T) int {
			switch {
			case less(ctx, cancel, a, b):
				return -1
			case less(ctx, cancel, b, a):
				return 1
			default:
				return 0
			}
		})

		return elems
	}

	produce := func(ctx context.Context, cancel context.CancelCauseFunc) PullFunc[T] {
		upstream := s.produce(ctx, cancel)

		var sorted PullFunc[T]

		return func() (T, bool) {
			if sorted == nil {
				sorted = pullSlice(ctx, sortElems(ctx, cancel, drain(upstream)))
			}

			return sorted()
		}
	}

	var split splitFunc[T]

	if s.split != nil {
		split = func(ctx context.Context, cancel context.CancelCauseFunc, cfg Config) []PullFunc[T] {
			elems := drainPartitions(ctx, cancel, s.split(ctx, cancel, cfg), cfg.Workers)
			return splitSlice(ctx, sortElems(ctx, cancel, elems), cfg.partitions())
		}
	}

	return derive(s, produce, split)
}

// Boxed returns a Sequence that produces the elements produced by s, converted to any.
func Boxed[T any](s *Sequence[T]) *Sequence[any] {
	return Map(s, func(_ context.Context, _ context.CancelCauseFunc, elem T) any {
		return elem
	})
}
