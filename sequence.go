package gostreams

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
)

// PullFunc returns the next element of a stream, and true.
// It returns false once the stream is exhausted, or when the stream's context is done.
type PullFunc[T any] func() (T, bool)

// ProducerFunc opens a stream, returning a PullFunc for its elements.
// Producers must not produce an element before the PullFunc is called for it, and must stop producing
// elements once ctx is done.
type ProducerFunc[T any] func(ctx context.Context, cancel context.CancelCauseFunc) PullFunc[T]

// splitFunc opens a sized stream as consecutive partitions, in encounter order.
// It returns at most cfg.partitions() partitions.
type splitFunc[T any] func(ctx context.Context, cancel context.CancelCauseFunc, cfg Config) []PullFunc[T]

// stageFunc wraps the PullFunc of an upstream stream into the PullFunc of a downstream stream.
// It is called once per opened stream or partition, so any state it needs must be created inside it.
type stageFunc[T any, U any] func(ctx context.Context, cancel context.CancelCauseFunc, pull PullFunc[T]) PullFunc[U]

// A Sequence is a lazy, single-use pipeline of elements.
//
// A Sequence is built from a source, transformed by intermediate operations that each return a new
// Sequence, and finally drained by exactly one terminal operation. No element is produced before the
// terminal operation runs.
//
// Each operation claims the Sequence it operates upon: a Sequence can only be operated upon once.
// Running a terminal operation on a Sequence that has already been operated upon returns an error
// wrapping ErrInvalidState.
type Sequence[T any] struct {
	id      uuid.UUID
	produce ProducerFunc[T]

	// split is nil if the number of elements can not be known before they are produced.
	split splitFunc[T]

	// err is returned by the terminal operation before any element is produced.
	err error

	cfg      Config
	parallel bool
	claimed  atomic.Bool
}

var defaultConfig = sync.OnceValue(DefaultConfig)

// FromProducer returns an unsized Sequence that produces the elements produced by prod.
func FromProducer[T any](prod ProducerFunc[T]) *Sequence[T] {
	return newSequence(prod, nil)
}

func newSequence[T any](produce ProducerFunc[T], split splitFunc[T]) *Sequence[T] {
	return &Sequence[T]{
		id:      uuid.New(),
		produce: produce,
		split:   split,
		cfg:     defaultConfig(),
	}
}

// ID returns the identifier of the pipeline s belongs to.
// All Sequences derived from the same source share the same identifier.
func (s *Sequence[T]) ID() uuid.UUID {
	return s.id
}

// IsParallel returns true if terminal operations on s execute in parallel.
func (s *Sequence[T]) IsParallel() bool {
	return s.parallel
}

// Parallel returns a Sequence with the same elements as s, whose terminal operation executes in parallel.
//
// In parallel mode, the elements are split into partitions that are processed concurrently.
// Mapping, filtering, and peeking functions may be called concurrently, and the order in which
// they see elements is undefined. Terminal operations that collect elements into ordered results
// preserve encounter order. Parallel terminal operations fail with ErrInvalidState if the number
// of elements can not be known in advance, for example for Generate or Iterate without Limit.
func (s *Sequence[T]) Parallel() *Sequence[T] {
	d := derive(s, s.produce, s.split)
	d.parallel = true

	return d
}

// Sequential returns a Sequence with the same elements as s, whose terminal operation executes sequentially,
// in encounter order.
func (s *Sequence[T]) Sequential() *Sequence[T] {
	d := derive(s, s.produce, s.split)
	d.parallel = false

	return d
}

// With returns a Sequence with the same elements as s, configured using opts.
func (s *Sequence[T]) With(opts ...Option) *Sequence[T] {
	d := derive(s, s.produce, s.split)

	cfg := s.cfg
	for _, opt := range opts {
		opt(&cfg)
	}

	d.cfg = cfg.sanitized()

	return d
}

// claim marks s as operated upon.
// It returns an error wrapping ErrInvalidState if s has already been operated upon.
func (s *Sequence[T]) claim() error {
	if s.claimed.Swap(true) {
		return fmt.Errorf("%w: sequence %s has already been operated upon", ErrInvalidState, s.id)
	}

	return nil
}

// begin claims s for a terminal operation, and returns the error that prevents it from running, if any.
func (s *Sequence[T]) begin() error {
	if err := s.claim(); err != nil {
		return err
	}

	return s.err
}

// derive claims s and returns a new Sequence that inherits the configuration, mode, and error of s.
func derive[T any, U any](s *Sequence[T], produce ProducerFunc[U], split splitFunc[U]) *Sequence[U] {
	d := &Sequence[U]{
		id:       s.id,
		produce:  produce,
		split:    split,
		err:      s.err,
		cfg:      s.cfg,
		parallel: s.parallel,
	}

	if err := s.claim(); err != nil && d.err == nil {
		d.err = err
	}

	return d
}

// chain returns a new Sequence that applies stage to the stream of s, or to each of its partitions.
func chain[T any, U any](s *Sequence[T], stage stageFunc[T, U]) *Sequence[U] {
	produce := func(ctx context.Context, cancel context.CancelCauseFunc) PullFunc[U] {
		return stage(ctx, cancel, s.produce(ctx, cancel))
	}

	var split splitFunc[U]

	if s.split != nil {
		split = func(ctx context.Context, cancel context.CancelCauseFunc, cfg Config) []PullFunc[U] {
			parts := s.split(ctx, cancel, cfg)

			outParts := make([]PullFunc[U], len(parts))
			for i, part := range parts {
				outParts[i] = stage(ctx, cancel, part)
			}

			return outParts
		}
	}

	return derive(s, produce, split)
}

// buffered returns a splitFunc that drains produce sequentially, then splits the buffered elements.
func buffered[T any](produce ProducerFunc[T]) splitFunc[T] {
	return func(ctx context.Context, cancel context.CancelCauseFunc, cfg Config) []PullFunc[T] {
		return splitSlice(ctx, drain(produce(ctx, cancel)), cfg.partitions())
	}
}
