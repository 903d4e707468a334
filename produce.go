package gostreams

import (
	"context"
	"fmt"
	"regexp"

	"github.com/google/uuid"
	"golang.org/x/exp/constraints"
)

// Of returns a Sequence that produces elems, in order.
func Of[T any](elems ...T) *Sequence[T] {
	return FromSlice(elems)
}

// FromSlice returns a Sequence that produces the elements of elems, in order.
// elems is not copied, it must not be modified until the Sequence has been drained.
func FromSlice[T any](elems []T) *Sequence[T] {
	produce := func(ctx context.Context, _ context.CancelCauseFunc) PullFunc[T] {
		return pullSlice(ctx, elems)
	}

	split := func(ctx context.Context, _ context.CancelCauseFunc, cfg Config) []PullFunc[T] {
		return splitSlice(ctx, elems, cfg.partitions())
	}

	return newSequence(produce, split)
}

// FromSliceRange returns a Sequence that produces the elements of elems[start:end], in order.
// It returns an error wrapping ErrOutOfRange if start or end are not valid indices for elems, or if start > end.
func FromSliceRange[T any](elems []T, start int, end int) (*Sequence[T], error) {
	if start < 0 || end > len(elems) || start > end {
		return nil, fmt.Errorf("%w: [%d:%d] with length %d", ErrOutOfRange, start, end, len(elems))
	}

	return FromSlice(elems[start:end]), nil
}

// Empty returns a Sequence that produces no elements.
func Empty[T any]() *Sequence[T] {
	return FromSlice[T](nil)
}

// Generate returns an unsized Sequence that produces an infinite number of elements by calling supply for each one.
// It should be limited using Limit.
func Generate[T any](supply func() T) *Sequence[T] {
	return FromProducer(func(ctx context.Context, _ context.CancelCauseFunc) PullFunc[T] {
		return func() (T, bool) {
			if contextDone(ctx) {
				var zero T
				return zero, false
			}

			return supply(), true
		}
	})
}

// Iterate returns an unsized Sequence that produces an infinite number of elements: first seed, then the result
// of calling step with the previous element, for each subsequent element.
// It should be limited using Limit.
func Iterate[T any](seed T, step func(prev T) T) *Sequence[T] {
	return FromProducer(func(ctx context.Context, _ context.CancelCauseFunc) PullFunc[T] {
		started := false
		elem := seed

		return func() (T, bool) {
			if contextDone(ctx) {
				var zero T
				return zero, false
			}

			if started {
				elem = step(elem)
			}

			started = true

			return elem, true
		}
	})
}

// FromChannel returns an unsized Sequence that produces the elements received through ch, in order,
// until ch is closed.
func FromChannel[T any](ch <-chan T) *Sequence[T] {
	return FromProducer(func(ctx context.Context, _ context.CancelCauseFunc) PullFunc[T] {
		return func() (T, bool) {
			var zero T

			select {
			case elem, ok := <-ch:
				if !ok {
					return zero, false
				}

				return elem, true

			case <-ctx.Done():
				return zero, false
			}
		}
	})
}

// Concat returns a Sequence that produces all elements produced by seqs, in order.
// The new Sequence is sized if all of seqs are sized, and parallel if any of seqs is parallel.
// Its configuration is that of the first Sequence.
func Concat[T any](seqs ...*Sequence[T]) *Sequence[T] {
	if len(seqs) == 0 {
		return Empty[T]()
	}

	produce := func(ctx context.Context, cancel context.CancelCauseFunc) PullFunc[T] {
		current := 0

		var pull PullFunc[T]

		return func() (T, bool) {
			for current < len(seqs) {
				if pull == nil {
					pull = seqs[current].produce(ctx, cancel)
				}

				if elem, ok := pull(); ok {
					return elem, true
				}

				if contextDone(ctx) {
					break
				}

				current++
				pull = nil
			}

			var zero T
			return zero, false
		}
	}

	sized := true
	parallel := false

	for _, s := range seqs {
		sized = sized && s.split != nil
		parallel = parallel || s.parallel
	}

	var split splitFunc[T]

	if sized {
		split = func(ctx context.Context, cancel context.CancelCauseFunc, cfg Config) []PullFunc[T] {
			parts := []PullFunc[T]{}
			for _, s := range seqs {
				parts = append(parts, s.split(ctx, cancel, cfg)...)
			}

			return parts
		}
	}

	c := derive(seqs[0], produce, split)
	c.id = uuid.New()
	c.parallel = parallel

	for _, s := range seqs[1:] {
		if err := s.claim(); err != nil && c.err == nil {
			c.err = err
		}

		if s.err != nil && c.err == nil {
			c.err = s.err
		}
	}

	return c
}

// Range returns a Sequence that produces the integers from start (inclusive) to end (exclusive), in order.
func Range[T constraints.Integer](start T, end T) *Sequence[T] {
	if start >= end {
		return Empty[T]()
	}

	return RangeClosed(start, end-1)
}

// RangeClosed returns a Sequence that produces the integers from start to end (both inclusive), in order.
func RangeClosed[T constraints.Integer](start T, end T) *Sequence[T] {
	if start > end {
		return Empty[T]()
	}

	produce := func(ctx context.Context, _ context.CancelCauseFunc) PullFunc[T] {
		return pullRange(ctx, start, end)
	}

	split := func(ctx context.Context, _ context.CancelCauseFunc, cfg Config) []PullFunc[T] {
		// span is the number of elements minus one. It does not overflow even if the range
		// covers all values of a 64-bit type.
		span := uint64(end) - uint64(start)

		n := uint64(cfg.partitions())
		if span < n-1 {
			n = span + 1
		}

		// the first extra partitions hold one more element than the others
		size := span / n
		extra := span%n + 1

		parts := make([]PullFunc[T], n)
		offset := uint64(0)

		for i := range parts {
			partSize := size
			if uint64(i) < extra {
				partSize++
			}

			lo := start + T(offset)
			hi := start + T(offset+partSize-1)
			parts[i] = pullRange(ctx, lo, hi)

			offset += partSize
		}

		return parts
	}

	return newSequence(produce, split)
}

// pullRange returns a PullFunc that produces the integers from lo to hi (both inclusive), in order.
func pullRange[T constraints.Integer](ctx context.Context, lo T, hi T) PullFunc[T] {
	next := lo
	done := false

	return func() (T, bool) {
		if done || contextDone(ctx) {
			var zero T
			return zero, false
		}

		elem := next

		if next == hi {
			done = true
		} else {
			next++
		}

		return elem, true
	}
}

// Runes returns a Sequence that produces the runes of str, in order.
func Runes(str string) *Sequence[rune] {
	return FromSlice([]rune(str))
}

// SplitPattern returns a Sequence that produces the substrings of str between matches of re, in order.
// Trailing empty substrings are not produced.
func SplitPattern(re *regexp.Regexp, str string) *Sequence[string] {
	parts := re.Split(str, -1)

	for len(parts) > 1 && parts[len(parts)-1] == "" {
		parts = parts[:len(parts)-1]
	}

	return FromSlice(parts)
}

// Builder builds a Sequence by adding elements one by one.
// The zero value is ready to use.
type Builder[T any] struct {
	elems []T
}

// Add adds elem to the Sequence being built, and returns b.
func (b *Builder[T]) Add(elem T) *Builder[T] {
	b.elems = append(b.elems, elem)
	return b
}

// Build returns a Sequence that produces the elements added so far, in order.
// Elements added after Build has been called are not produced by the returned Sequence.
func (b *Builder[T]) Build() *Sequence[T] {
	elems := make([]T, len(b.elems))
	copy(elems, b.elems)

	return FromSlice(elems)
}
