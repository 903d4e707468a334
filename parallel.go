package gostreams

import (
	"context"

	"github.com/sourcegraph/conc/panics"
	"golang.org/x/sync/errgroup"
)

// pullSlice returns a PullFunc that produces the elements of elems, in order.
func pullSlice[T any](ctx context.Context, elems []T) PullFunc[T] {
	index := 0

	return func() (T, bool) {
		if index >= len(elems) || contextDone(ctx) {
			var zero T
			return zero, false
		}

		elem := elems[index]
		index++

		return elem, true
	}
}

// splitSlice splits elems into at most n consecutive partitions of nearly equal size.
// It returns no partitions if elems is empty.
func splitSlice[T any](ctx context.Context, elems []T, n int) []PullFunc[T] {
	if n > len(elems) {
		n = len(elems)
	}

	parts := make([]PullFunc[T], n)
	for i := range parts {
		parts[i] = pullSlice(ctx, elems[i*len(elems)/n:(i+1)*len(elems)/n])
	}

	return parts
}

// drain returns all elements produced by pull.
func drain[T any](pull PullFunc[T]) []T {
	elems := []T{}

	for {
		elem, ok := pull()
		if !ok {
			return elems
		}

		elems = append(elems, elem)
	}
}

// fold calls accumulate for each element produced by pull, folding it into acc, and returns the final accumulator.
// It stops early if ctx is done, or if stop returns true for the accumulator.
func fold[T any, A any](ctx context.Context, cancel context.CancelCauseFunc, pull PullFunc[T], acc A,
	accumulate AccumulatorFunc[T, A], stop func(acc A) bool,
) A {
	for {
		if stop != nil && stop(acc) {
			return acc
		}

		elem, ok := pull()
		if !ok {
			return acc
		}

		acc = accumulate(ctx, cancel, elem, acc)

		if contextDone(ctx) {
			return acc
		}
	}
}

// foldPartitions folds each partition into its own accumulator supplied by supply, processing at most workers
// partitions concurrently. It returns the accumulators in partition order.
// A panic in a partition cancels the stream's context with the recovered panic as the cause.
func foldPartitions[T any, A any](ctx context.Context, cancel context.CancelCauseFunc, parts []PullFunc[T], workers int,
	supply func() A, accumulate AccumulatorFunc[T, A], stop func(acc A) bool,
) []A {
	results := make([]A, len(parts))

	grp := errgroup.Group{}
	grp.SetLimit(workers)

	for i, part := range parts {
		i, part := i, part

		grp.Go(func() error {
			results[i] = supply()

			if contextDone(ctx) {
				return nil
			}

			catcher := panics.Catcher{}
			catcher.Try(func() {
				results[i] = fold(ctx, cancel, part, results[i], accumulate, stop)
			})

			if recovered := catcher.Recovered(); recovered != nil {
				err := recovered.AsError()
				cancel(err)

				return err
			}

			return nil
		})
	}

	_ = grp.Wait()

	return results
}

// drainPartitions returns all elements produced by parts, in partition order.
// Partitions are drained concurrently.
func drainPartitions[T any](ctx context.Context, cancel context.CancelCauseFunc, parts []PullFunc[T], workers int) []T {
	collect := func(_ context.Context, _ context.CancelCauseFunc, elem T, acc []T) []T {
		return append(acc, elem)
	}

	chunks := foldPartitions(ctx, cancel, parts, workers, func() []T { return []T{} }, collect, nil)

	elems := []T{}
	for _, chunk := range chunks {
		elems = append(elems, chunk...)
	}

	return elems
}
