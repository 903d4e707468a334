// Package gostreams provides lazy, single-use sequences of elements, and operations on them.
//
// A Sequence is constructed from a source, such as a slice (Of, FromSlice), a generator function
// (Generate, Iterate), or a channel (FromChannel).
//
// Elements may then be operated upon using mapping, filtering, limiting, and sorting operations
// (intermediate operations), each of which returns a new Sequence that owns the previous one.
//
// Finally, the elements are consumed by exactly one terminal operation, such as collecting them into
// slices, sets, or maps (Collect), grouping/partitioning them, reducing them to a single value,
// checking for matching elements, or simply iterating over them.
//
// Sequences are always lazy: no element is produced, and no function is called, before the terminal
// operation runs, and elements are only pulled from the source as needed. Infinite sources must be
// limited using Limit before draining them.
//
// Sequences are sequential by default. A Sequence switched to parallel mode using Sequence.Parallel
// splits its elements into partitions that are processed concurrently by the terminal operation, and
// merges the partial results in encounter order.
//
// Functions passed to operations receive a context.CancelCauseFunc. Calling the cancel function will
// cancel the entire stream, thus short-circuiting processing elements, and the terminal operation will
// return the cause of the cancelation.
//
// Values that may be absent, such as the result of Reduce or Min, are returned as optional.Optional.
package gostreams
