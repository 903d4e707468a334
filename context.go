package gostreams

import (
	"context"
	"errors"
)

// contextDone returns true if ctx.Err() != nil.
func contextDone(ctx context.Context) bool {
	return ctx.Err() != nil
}

// withShortCircuit returns a context derived from parent, and a cancel function that cancels it.
// Causes other than ErrShortCircuit are also recorded in failed, so that a short-circuit never masks
// a failure that happens after it. release must be called to free the contexts.
func withShortCircuit(parent context.Context) (ctx context.Context, failed context.Context, cancel context.CancelCauseFunc, release func()) {
	failed, fail := context.WithCancelCause(parent)
	ctx, stop := context.WithCancelCause(failed)

	cancel = func(err error) {
		if errors.Is(err, ErrShortCircuit) {
			stop(err)
			return
		}

		fail(err)
	}

	release = func() {
		stop(nil)
		fail(nil)
	}

	return ctx, failed, cancel, release
}

// cause returns the cause of ctx's cancelation, or nil if ctx was short-circuited or is not done.
func cause(ctx context.Context) error {
	err := context.Cause(ctx)
	if errors.Is(err, ErrShortCircuit) {
		return nil
	}

	return err
}
