package gostreams

import (
	"context"
	"fmt"

	"github.com/deadlyengineer/gostreams/optional"
)

// ConsumerFunc consumes element elem.
type ConsumerFunc[T any] func(ctx context.Context, cancel context.CancelCauseFunc, elem T)

// AccumulatorFunc folds element elem into the accumulator acc, returning acc, or a new accumulator.
type AccumulatorFunc[T any, A any] func(ctx context.Context, cancel context.CancelCauseFunc, elem T, acc A) A

// BinaryFunc combines a and b into a single value.
// When used to combine partial results of a parallel terminal operation, a is the result of a partition
// that precedes the partition of b in encounter order.
type BinaryFunc[T any] func(ctx context.Context, cancel context.CancelCauseFunc, a T, b T) T

// FuncConsumer returns a consumer that calls consume for each element.
func FuncConsumer[T any](consume func(elem T)) ConsumerFunc[T] {
	return func(_ context.Context, _ context.CancelCauseFunc, elem T) {
		consume(elem)
	}
}

// FuncBinary returns a BinaryFunc that calls combine.
func FuncBinary[T any](combine func(a T, b T) T) BinaryFunc[T] {
	return func(_ context.Context, _ context.CancelCauseFunc, a T, b T) T {
		return combine(a, b)
	}
}

// terminal describes a terminal operation as a fold.
type terminal[T any, A any] struct {
	// name identifies the operation in errors and log events.
	name string

	// supply returns a fresh accumulator, one per partition in parallel mode.
	supply func() A

	accumulate AccumulatorFunc[T, A]

	// combine merges the accumulators of two consecutive partitions. It is required in parallel mode.
	combine BinaryFunc[A]

	// stop returns true if no more elements need to be folded into acc. It may be nil.
	stop func(acc A) bool
}

// run drains s, folding its elements using t, and returns the final accumulator.
// If any function cancels the stream's context, it returns the accumulator so far, and the cause of the cancelation.
func (t terminal[T, A]) run(ctx context.Context, s *Sequence[T]) (A, error) {
	if err := s.begin(); err != nil {
		return t.supply(), err
	}

	logger := s.cfg.Logger.With().
		Str("sequence", s.id.String()).
		Str("operation", t.name).
		Bool("parallel", s.parallel).
		Logger()

	ctx, failed, cancel, release := withShortCircuit(ctx)
	defer release()

	if !s.parallel {
		logger.Debug().Msg("running terminal operation")

		acc := fold(ctx, cancel, s.produce(ctx, cancel), t.supply(), t.accumulate, t.stop)

		err := cause(failed)
		if err != nil {
			logger.Debug().Err(err).Msg("terminal operation failed")
		}

		return acc, err
	}

	if s.split == nil {
		return t.supply(), fmt.Errorf("%w: %s: can not run unsized sequence %s in parallel", ErrInvalidState, t.name, s.id)
	}

	if t.combine == nil {
		return t.supply(), fmt.Errorf("%w: %s: a combiner is required to run in parallel", ErrInvalidState, t.name)
	}

	parts := s.split(ctx, cancel, s.cfg)

	logger.Debug().
		Int("partitions", len(parts)).
		Int("workers", s.cfg.Workers).
		Msg("running terminal operation")

	results := foldPartitions(ctx, cancel, parts, s.cfg.Workers, t.supply, t.accumulate, t.stop)

	if err := cause(failed); err != nil {
		logger.Debug().Err(err).Msg("terminal operation failed")
		return t.supply(), err
	}

	if len(results) == 0 {
		return t.supply(), nil
	}

	acc := results[0]

	for _, result := range results[1:] {
		acc = t.combine(ctx, cancel, acc, result)

		// a short-circuited stream still needs all partial results
		if cause(failed) != nil {
			break
		}
	}

	err := cause(failed)
	if err != nil {
		logger.Debug().Err(err).Msg("terminal operation failed")
	}

	return acc, err
}

// ForEach calls each for each element produced by s.
// In parallel mode, each is called concurrently, in undefined order.
// If any function cancels the stream's context, it returns the cause of the cancelation.
func ForEach[T any](ctx context.Context, s *Sequence[T], each ConsumerFunc[T]) error {
	_, err := terminal[T, struct{}]{
		name:   "ForEach",
		supply: func() struct{} { return struct{}{} },
		accumulate: func(ctx context.Context, cancel context.CancelCauseFunc, elem T, acc struct{}) struct{} {
			each(ctx, cancel, elem)
			return acc
		},
		combine: func(_ context.Context, _ context.CancelCauseFunc, a struct{}, _ struct{}) struct{} {
			return a
		},
	}.run(ctx, s)

	return err
}

// Fold calls accumulate for each element produced by s, folding it into an accumulator that starts as seed,
// and returns the final accumulator.
//
// In parallel mode, each partition is folded into its own accumulator starting as seed, and the partial
// accumulators are merged using combine, in encounter order. seed should therefore be an identity for
// combine. combine may be nil in sequential mode.
//
// seed is shared by all partitions. If accumulate mutates its accumulator, as with maps or slices that have
// spare capacity, use Collect with a Collector whose Supplier returns a fresh accumulator per partition.
//
// If any function cancels the stream's context, it returns the accumulator so far, and the cause of the cancelation.
func Fold[T any, A any](ctx context.Context, s *Sequence[T], seed A, accumulate AccumulatorFunc[T, A], combine BinaryFunc[A]) (A, error) {
	return terminal[T, A]{
		name:       "Fold",
		supply:     func() A { return seed },
		accumulate: accumulate,
		combine:    combine,
	}.run(ctx, s)
}

// ReduceSeed folds all elements produced by s using op, starting with seed, and returns the result.
// It returns seed if s produces no elements. In parallel mode, op is also used to merge partial results,
// so it must be associative, and seed should be an identity for op.
func ReduceSeed[T any](ctx context.Context, s *Sequence[T], seed T, op BinaryFunc[T]) (T, error) {
	accumulate := func(ctx context.Context, cancel context.CancelCauseFunc, elem T, acc T) T {
		return op(ctx, cancel, acc, elem)
	}

	result, err := terminal[T, T]{
		name:       "ReduceSeed",
		supply:     func() T { return seed },
		accumulate: accumulate,
		combine:    op,
	}.run(ctx, s)

	return result, err
}

// partial is the accumulator of reductions without a seed.
type partial[T any] struct {
	value T
	ok    bool
}

// Reduce folds all elements produced by s using op, from left to right, and returns the result.
// It returns an empty Optional if s produces no elements. In parallel mode, op must be associative.
func Reduce[T any](ctx context.Context, s *Sequence[T], op BinaryFunc[T]) (optional.Optional[T], error) {
	result, err := terminal[T, partial[T]]{
		name:   "Reduce",
		supply: func() partial[T] { return partial[T]{} },
		accumulate: func(ctx context.Context, cancel context.CancelCauseFunc, elem T, acc partial[T]) partial[T] {
			if !acc.ok {
				return partial[T]{value: elem, ok: true}
			}

			return partial[T]{value: op(ctx, cancel, acc.value, elem), ok: true}
		},
		combine: func(ctx context.Context, cancel context.CancelCauseFunc, a partial[T], b partial[T]) partial[T] {
			switch {
			case !a.ok:
				return b
			case !b.ok:
				return a
			default:
				return partial[T]{value: op(ctx, cancel, a.value, b.value), ok: true}
			}
		},
	}.run(ctx, s)

	if err != nil || !result.ok {
		return optional.Empty[T](), err
	}

	return optional.OfNullable(result.value), nil
}

// FindFirst returns the first element produced by s, or an empty Optional if s produces no elements.
// Only as many elements are pulled as needed.
func FindFirst[T any](ctx context.Context, s *Sequence[T]) (optional.Optional[T], error) {
	result, err := terminal[T, partial[T]]{
		name:   "FindFirst",
		supply: func() partial[T] { return partial[T]{} },
		accumulate: func(_ context.Context, _ context.CancelCauseFunc, elem T, _ partial[T]) partial[T] {
			return partial[T]{value: elem, ok: true}
		},
		combine: func(_ context.Context, _ context.CancelCauseFunc, a partial[T], b partial[T]) partial[T] {
			if a.ok {
				return a
			}

			return b
		},
		stop: func(acc partial[T]) bool {
			return acc.ok
		},
	}.run(ctx, s)

	if err != nil || !result.ok {
		return optional.Empty[T](), err
	}

	return optional.OfNullable(result.value), nil
}

// AnyMatch returns true as soon as pred returns true for an element produced by s, that is, an element matches.
// If an element matches, it cancels the stream's context using ErrShortCircuit.
// It returns false if s produces no elements.
// If any function cancels the stream's context, it returns an undefined result, and the cause of the cancelation.
func AnyMatch[T any](ctx context.Context, s *Sequence[T], pred PredicateFunc[T]) (bool, error) {
	return terminal[T, bool]{
		name:   "AnyMatch",
		supply: func() bool { return false },
		accumulate: func(ctx context.Context, cancel context.CancelCauseFunc, elem T, _ bool) bool {
			if !pred(ctx, cancel, elem) {
				return false
			}

			cancel(ErrShortCircuit)

			return true
		},
		combine: func(_ context.Context, _ context.CancelCauseFunc, a bool, b bool) bool {
			return a || b
		},
	}.run(ctx, s)
}

// AllMatch returns true if pred returns true for all elements produced by s, that is, all elements match.
// If any element does not match, it cancels the stream's context using ErrShortCircuit.
// It returns true if s produces no elements.
// If any function cancels the stream's context, it returns an undefined result, and the cause of the cancelation.
func AllMatch[T any](ctx context.Context, s *Sequence[T], pred PredicateFunc[T]) (bool, error) {
	return terminal[T, bool]{
		name:   "AllMatch",
		supply: func() bool { return true },
		accumulate: func(ctx context.Context, cancel context.CancelCauseFunc, elem T, _ bool) bool {
			if pred(ctx, cancel, elem) {
				return true
			}

			cancel(ErrShortCircuit)

			return false
		},
		combine: func(_ context.Context, _ context.CancelCauseFunc, a bool, b bool) bool {
			return a && b
		},
	}.run(ctx, s)
}

// NoneMatch returns true if pred returns false for all elements produced by s, that is, no element matches.
// If any element matches, it cancels the stream's context using ErrShortCircuit.
// It returns true if s produces no elements.
// If any function cancels the stream's context, it returns an undefined result, and the cause of the cancelation.
func NoneMatch[T any](ctx context.Context, s *Sequence[T], pred PredicateFunc[T]) (bool, error) {
	anyMatch, err := AnyMatch(ctx, s, pred)
	return !anyMatch, err
}

// Count returns the number of elements produced by s.
// If any function cancels the stream's context, it returns an undefined result, and the cause of the cancelation.
func Count[T any](ctx context.Context, s *Sequence[T]) (uint64, error) {
	return terminal[T, uint64]{
		name:   "Count",
		supply: func() uint64 { return 0 },
		accumulate: func(_ context.Context, _ context.CancelCauseFunc, _ T, acc uint64) uint64 {
			return acc + 1
		},
		combine: func(_ context.Context, _ context.CancelCauseFunc, a uint64, b uint64) uint64 {
			return a + b
		},
	}.run(ctx, s)
}
