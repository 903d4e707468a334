package gostreams

import (
	"context"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"
)

// Collector describes how to collect elements of type T into a result of type R, using an intermediate
// accumulator of type A.
//
// In parallel mode, Supplier is called once per partition, and the accumulators of consecutive partitions are
// merged using Combiner, in encounter order. Combiner must therefore be associative with respect to
// Accumulator, so that sequential and parallel execution produce the same result.
type Collector[T any, A any, R any] struct {
	// Supplier returns a new, empty accumulator.
	Supplier func() A

	// Accumulator folds an element into an accumulator.
	Accumulator AccumulatorFunc[T, A]

	// Combiner merges two accumulators. It may be nil if the Collector is only used in sequential mode.
	Combiner BinaryFunc[A]

	// Finisher converts the final accumulator into the result. If nil, the accumulator must be of type R.
	Finisher func(acc A) R
}

// mapEntry is an entry of the accumulator used by CollectMapNoDuplicateKeys.
type mapEntry[T any, V any] struct {
	elem  T
	value V
}

// NewCollector returns a Collector whose result is its accumulator.
func NewCollector[T any, A any](supply func() A, accumulate AccumulatorFunc[T, A], combine BinaryFunc[A]) Collector[T, A, A] {
	return Collector[T, A, A]{
		Supplier:    supply,
		Accumulator: accumulate,
		Combiner:    combine,
		Finisher:    func(acc A) A { return acc },
	}
}

// CollectAndThen returns a Collector that collects using coll, then converts the result using finish.
func CollectAndThen[T any, A any, R any, S any](coll Collector[T, A, R], finish func(result R) S) Collector[T, A, S] {
	return Collector[T, A, S]{
		Supplier:    coll.Supplier,
		Accumulator: coll.Accumulator,
		Combiner:    coll.Combiner,
		Finisher: func(acc A) S {
			return finish(finishCollect(coll, acc))
		},
	}
}

// Collect collects all elements produced by s using coll, and returns the result.
// If any function cancels the stream's context, it returns the result so far, and the cause of the cancelation.
func Collect[T any, A any, R any](ctx context.Context, s *Sequence[T], coll Collector[T, A, R]) (R, error) {
	acc, err := terminal[T, A]{
		name:       "Collect",
		supply:     coll.Supplier,
		accumulate: coll.Accumulator,
		combine:    coll.Combiner,
	}.run(ctx, s)

	return finishCollect(coll, acc), err
}

func finishCollect[T any, A any, R any](coll Collector[T, A, R], acc A) R {
	if coll.Finisher == nil {
		return any(acc).(R)
	}

	return coll.Finisher(acc)
}

// ToSlice returns all elements produced by s, in encounter order, even in parallel mode.
func ToSlice[T any](ctx context.Context, s *Sequence[T]) ([]T, error) {
	return Collect(ctx, s, CollectSlice[T]())
}

// ToSet returns the set of all distinct elements produced by s.
func ToSet[T comparable](ctx context.Context, s *Sequence[T]) (mapset.Set[T], error) {
	return Collect(ctx, s, CollectSet[T]())
}

// GroupingBy groups all elements produced by s by the keys returned by key.
// Keys are kept in the order they were first seen, elements within a group in encounter order.
func GroupingBy[T any, K comparable](ctx context.Context, s *Sequence[T], key MapperFunc[T, K]) (*Groups[K, T], error) {
	return Collect(ctx, s, CollectGroup(key, Identity[T]()))
}

// PartitioningBy partitions all elements produced by s by the result of pred.
// The returned map always contains both the true and the false key, elements within a partition are kept
// in encounter order.
func PartitioningBy[T any](ctx context.Context, s *Sequence[T], pred PredicateFunc[T]) (map[bool][]T, error) {
	return Collect(ctx, s, CollectPartition(pred, Identity[T]()))
}

// Joining concatenates all strings produced by s, separated by delimiter, and enclosed in prefix and suffix.
func Joining(ctx context.Context, s *Sequence[string], delimiter string, prefix string, suffix string) (string, error) {
	return Collect(ctx, s, CollectJoining(delimiter, prefix, suffix))
}

// CollectSlice returns a Collector that collects elements into a slice, in encounter order.
func CollectSlice[T any]() Collector[T, []T, []T] {
	return NewCollector(
		func() []T {
			return []T{}
		},
		func(_ context.Context, _ context.CancelCauseFunc, elem T, acc []T) []T {
			return append(acc, elem)
		},
		func(_ context.Context, _ context.CancelCauseFunc, a []T, b []T) []T {
			return append(a, b...)
		},
	)
}

// CollectSet returns a Collector that collects elements into a set.
// The result is a thread-safe set as returned by mapset.NewSet.
func CollectSet[T comparable]() Collector[T, mapset.Set[T], mapset.Set[T]] {
	return Collector[T, mapset.Set[T], mapset.Set[T]]{
		Supplier: func() mapset.Set[T] {
			return mapset.NewThreadUnsafeSet[T]()
		},
		Accumulator: func(_ context.Context, _ context.CancelCauseFunc, elem T, acc mapset.Set[T]) mapset.Set[T] {
			acc.Add(elem)
			return acc
		},
		Combiner: func(_ context.Context, _ context.CancelCauseFunc, a mapset.Set[T], b mapset.Set[T]) mapset.Set[T] {
			return a.Union(b)
		},
		Finisher: func(acc mapset.Set[T]) mapset.Set[T] {
			return mapset.NewSet(acc.ToSlice()...)
		},
	}
}

// CollectMap returns a Collector that collects elements into a map.
// Elements are mapped using key and value, respectively.
// If a key is already in the map, the map entry will be overwritten.
func CollectMap[T any, K comparable, V any](key MapperFunc[T, K], value MapperFunc[T, V]) Collector[T, map[K]V, map[K]V] {
	return NewCollector(
		func() map[K]V {
			return map[K]V{}
		},
		func(ctx context.Context, cancel context.CancelCauseFunc, elem T, acc map[K]V) map[K]V {
			acc[key(ctx, cancel, elem)] = value(ctx, cancel, elem)
			return acc
		},
		func(_ context.Context, _ context.CancelCauseFunc, a map[K]V, b map[K]V) map[K]V {
			for k, v := range b {
				a[k] = v
			}

			return a
		},
	)
}

// CollectMapNoDuplicateKeys returns a Collector that collects elements into a map.
// Elements are mapped using key and value, respectively.
// If a key is already in the map, the stream's context will be canceled with a DuplicateKeyError.
func CollectMapNoDuplicateKeys[T any, K comparable, V any](key MapperFunc[T, K], value MapperFunc[T, V]) Collector[T, map[K]mapEntry[T, V], map[K]V] {
	return Collector[T, map[K]mapEntry[T, V], map[K]V]{
		Supplier: func() map[K]mapEntry[T, V] {
			return map[K]mapEntry[T, V]{}
		},
		Accumulator: func(ctx context.Context, cancel context.CancelCauseFunc, elem T, acc map[K]mapEntry[T, V]) map[K]mapEntry[T, V] {
			key := key(ctx, cancel, elem)

			if _, ok := acc[key]; ok {
				cancel(&DuplicateKeyError[T, K]{
					Element: elem,
					Key:     key,
				})

				return acc
			}

			acc[key] = mapEntry[T, V]{elem: elem, value: value(ctx, cancel, elem)}

			return acc
		},
		Combiner: func(_ context.Context, cancel context.CancelCauseFunc, a map[K]mapEntry[T, V], b map[K]mapEntry[T, V]) map[K]mapEntry[T, V] {
			for key, entry := range b {
				if _, ok := a[key]; ok {
					cancel(&DuplicateKeyError[T, K]{
						Element: entry.elem,
						Key:     key,
					})

					return a
				}

				a[key] = entry
			}

			return a
		},
		Finisher: func(acc map[K]mapEntry[T, V]) map[K]V {
			result := make(map[K]V, len(acc))
			for key, entry := range acc {
				result[key] = entry.value
			}

			return result
		},
	}
}

// CollectGroup returns a Collector that collects elements into groups.
// Elements will be grouped into slices according to key, and mapped using value.
func CollectGroup[T any, K comparable, V any](key MapperFunc[T, K], value MapperFunc[T, V]) Collector[T, *Groups[K, V], *Groups[K, V]] {
	return NewCollector(
		newGroups[K, V],
		func(ctx context.Context, cancel context.CancelCauseFunc, elem T, acc *Groups[K, V]) *Groups[K, V] {
			acc.add(key(ctx, cancel, elem), value(ctx, cancel, elem))
			return acc
		},
		func(_ context.Context, _ context.CancelCauseFunc, a *Groups[K, V], b *Groups[K, V]) *Groups[K, V] {
			return a.merge(b)
		},
	)
}

// CollectPartition returns a Collector that collects elements into a partition map.
// Elements will be grouped into slices according to pred, and mapped using value.
// The map always contains both the true and the false key.
func CollectPartition[T any, V any](pred PredicateFunc[T], value MapperFunc[T, V]) Collector[T, map[bool][]V, map[bool][]V] {
	return NewCollector(
		func() map[bool][]V {
			return map[bool][]V{
				true:  {},
				false: {},
			}
		},
		func(ctx context.Context, cancel context.CancelCauseFunc, elem T, acc map[bool][]V) map[bool][]V {
			key := pred(ctx, cancel, elem)
			acc[key] = append(acc[key], value(ctx, cancel, elem))

			return acc
		},
		func(_ context.Context, _ context.CancelCauseFunc, a map[bool][]V, b map[bool][]V) map[bool][]V {
			a[true] = append(a[true], b[true]...)
			a[false] = append(a[false], b[false]...)

			return a
		},
	)
}

// CollectJoining returns a Collector that concatenates strings, separated by delimiter, and enclosed
// in prefix and suffix. If there are no strings, the result is prefix followed by suffix.
func CollectJoining(delimiter string, prefix string, suffix string) Collector[string, []string, string] {
	return CollectAndThen(CollectSlice[string](), func(strs []string) string {
		return prefix + strings.Join(strs, delimiter) + suffix
	})
}

// CollectCount returns a Collector that counts elements.
func CollectCount[T any]() Collector[T, uint64, uint64] {
	return NewCollector(
		func() uint64 {
			return 0
		},
		func(_ context.Context, _ context.CancelCauseFunc, _ T, acc uint64) uint64 {
			return acc + 1
		},
		func(_ context.Context, _ context.CancelCauseFunc, a uint64, b uint64) uint64 {
			return a + b
		},
	)
}

// CollectSum returns a Collector that sums the numbers returned by number for each element.
func CollectSum[T any, N Number](number Function[T, N]) Collector[T, N, N] {
	return NewCollector(
		func() N {
			return 0
		},
		func(_ context.Context, _ context.CancelCauseFunc, elem T, acc N) N {
			return acc + number(elem)
		},
		func(_ context.Context, _ context.CancelCauseFunc, a N, b N) N {
			return a + b
		},
	)
}

// CollectAverage returns a Collector that averages the numbers returned by number for each element.
// The result is zero if there are no elements.
func CollectAverage[T any, N Number](number Function[T, N]) Collector[T, mean, float64] {
	return Collector[T, mean, float64]{
		Supplier: func() mean {
			return mean{}
		},
		Accumulator: func(_ context.Context, _ context.CancelCauseFunc, elem T, acc mean) mean {
			return acc.add(float64(number(elem)))
		},
		Combiner: func(_ context.Context, _ context.CancelCauseFunc, a mean, b mean) mean {
			return a.merge(b)
		},
		Finisher: mean.average,
	}
}

// CollectStatistics returns a Collector that summarizes the numbers returned by number for each element.
func CollectStatistics[T any, N Number](number Function[T, N]) Collector[T, Statistics[N], Statistics[N]] {
	return NewCollector(
		func() Statistics[N] {
			return Statistics[N]{}
		},
		func(_ context.Context, _ context.CancelCauseFunc, elem T, acc Statistics[N]) Statistics[N] {
			return acc.add(number(elem))
		},
		func(_ context.Context, _ context.CancelCauseFunc, a Statistics[N], b Statistics[N]) Statistics[N] {
			return a.merge(b)
		},
	)
}
