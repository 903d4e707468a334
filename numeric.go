package gostreams

import (
	"context"

	"golang.org/x/exp/constraints"

	"github.com/deadlyengineer/gostreams/optional"
)

// Number is a constraint that permits any integer or floating point type.
type Number interface {
	constraints.Integer | constraints.Float
}

// Sum returns the sum of all elements produced by s, or zero if s produces no elements.
func Sum[T Number](ctx context.Context, s *Sequence[T]) (T, error) {
	return ReduceSeed(ctx, s, 0, func(_ context.Context, _ context.CancelCauseFunc, a T, b T) T {
		return a + b
	})
}

// Min returns the smallest element produced by s, or an empty Optional if s produces no elements.
func Min[T constraints.Ordered](ctx context.Context, s *Sequence[T]) (optional.Optional[T], error) {
	return MinFunc(ctx, s, Less[T]())
}

// Max returns the largest element produced by s, or an empty Optional if s produces no elements.
func Max[T constraints.Ordered](ctx context.Context, s *Sequence[T]) (optional.Optional[T], error) {
	return MaxFunc(ctx, s, Less[T]())
}

// MinFunc returns the smallest element produced by s according to less, or an empty Optional if s produces
// no elements. If there are multiple smallest elements, the first one is returned.
func MinFunc[T any](ctx context.Context, s *Sequence[T], less LessFunc[T]) (optional.Optional[T], error) {
	return Reduce(ctx, s, func(ctx context.Context, cancel context.CancelCauseFunc, a T, b T) T {
		if less(ctx, cancel, b, a) {
			return b
		}

		return a
	})
}

// MaxFunc returns the largest element produced by s according to less, or an empty Optional if s produces
// no elements. If there are multiple largest elements, the first one is returned.
func MaxFunc[T any](ctx context.Context, s *Sequence[T], less LessFunc[T]) (optional.Optional[T], error) {
	return Reduce(ctx, s, func(ctx context.Context, cancel context.CancelCauseFunc, a T, b T) T {
		if less(ctx, cancel, a, b) {
			return b
		}

		return a
	})
}

// Average returns the arithmetic mean of all elements produced by s, or an empty Optional if s produces
// no elements.
func Average[T Number](ctx context.Context, s *Sequence[T]) (optional.Optional[float64], error) {
	result, err := terminal[T, mean]{
		name:   "Average",
		supply: func() mean { return mean{} },
		accumulate: func(_ context.Context, _ context.CancelCauseFunc, elem T, acc mean) mean {
			return acc.add(float64(elem))
		},
		combine: func(_ context.Context, _ context.CancelCauseFunc, a mean, b mean) mean {
			return a.merge(b)
		},
	}.run(ctx, s)

	if err != nil || result.count == 0 {
		return optional.Empty[float64](), err
	}

	return optional.OfNullable(result.average()), nil
}

// Summarize returns statistics about all elements produced by s.
func Summarize[T Number](ctx context.Context, s *Sequence[T]) (Statistics[T], error) {
	return Collect(ctx, s, CollectStatistics(func(elem T) T {
		return elem
	}))
}

// Statistics summarizes a number of values.
// Min and Max are zero if Count is zero.
type Statistics[T Number] struct {
	Count uint64
	Sum   T
	Min   T
	Max   T

	mean mean
}

// Average returns the arithmetic mean of the values, or zero if Count is zero.
func (st Statistics[T]) Average() float64 {
	return st.mean.average()
}

func (st Statistics[T]) add(value T) Statistics[T] {
	if st.Count == 0 || value < st.Min {
		st.Min = value
	}

	if st.Count == 0 || value > st.Max {
		st.Max = value
	}

	st.Count++
	st.Sum += value
	st.mean = st.mean.add(float64(value))

	return st
}

func (st Statistics[T]) merge(other Statistics[T]) Statistics[T] {
	switch {
	case other.Count == 0:
		return st
	case st.Count == 0:
		return other
	}

	if other.Min < st.Min {
		st.Min = other.Min
	}

	if other.Max > st.Max {
		st.Max = other.Max
	}

	st.Count += other.Count
	st.Sum += other.Sum
	st.mean = st.mean.merge(other.mean)

	return st
}

// mean accumulates values for an arithmetic mean using Kahan summation.
type mean struct {
	count        uint64
	sum          float64
	compensation float64
}

func (m mean) add(value float64) mean {
	y := value - m.compensation
	t := m.sum + y

	m.compensation = (t - m.sum) - y
	m.sum = t
	m.count++

	return m
}

func (m mean) merge(other mean) mean {
	count := m.count + other.count

	m = m.add(other.sum)
	m = m.add(-other.compensation)
	m.count = count

	return m
}

func (m mean) average() float64 {
	if m.count == 0 {
		return 0
	}

	return m.sum / float64(m.count)
}
