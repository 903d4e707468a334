package gostreams

import (
	"bytes"
	"context"
	"runtime"
	"strings"
	"testing"

	"github.com/matryer/is"
	"github.com/rs/zerolog"
)

func TestDefaultConfig(t *testing.T) {
	is := is.New(t)

	cfg := DefaultConfig()

	is.Equal(cfg.Workers, runtime.GOMAXPROCS(0))
	is.Equal(cfg.SplitFactor, defaultSplitFactor)
}

func TestDefaultConfig_Env(t *testing.T) {
	is := is.New(t)

	t.Setenv("GOSTREAMS_WORKERS", "3")
	t.Setenv("GOSTREAMS_SPLIT_FACTOR", "7")

	cfg := DefaultConfig()

	is.Equal(cfg.Workers, 3)
	is.Equal(cfg.SplitFactor, 7)
	is.Equal(cfg.partitions(), 21)
}

func TestDefaultConfig_InvalidEnv(t *testing.T) {
	is := is.New(t)

	t.Setenv("GOSTREAMS_WORKERS", "-2")
	t.Setenv("GOSTREAMS_SPLIT_FACTOR", "lots")

	cfg := DefaultConfig()

	is.Equal(cfg.Workers, runtime.GOMAXPROCS(0))
	is.Equal(cfg.SplitFactor, defaultSplitFactor)
}

func TestWithLogger(t *testing.T) {
	is := is.New(t)

	ctx := context.Background()

	buf := bytes.Buffer{}
	logger := zerolog.New(&buf).Level(zerolog.DebugLevel)

	ints := Of(1, 2, 3).With(WithLogger(logger))

	_, err := Count(ctx, ints)
	is.NoErr(err)

	out := buf.String()
	is.True(strings.Contains(out, `"operation":"Count"`))
	is.True(strings.Contains(out, `"sequence":"`+ints.ID().String()+`"`))
	is.True(strings.Contains(out, `"parallel":false`))
}

func TestWithLogger_Failure(t *testing.T) {
	is := is.New(t)

	ctx := context.Background()

	buf := bytes.Buffer{}
	logger := zerolog.New(&buf).Level(zerolog.DebugLevel)

	ints := Of(1, 2, 3).With(WithLogger(logger), WithWorkers(2), WithSplitFactor(1)).Parallel()

	_ = ForEach(ctx, ints, func(_ context.Context, cancel context.CancelCauseFunc, _ int) {
		cancel(ErrInvalidState)
	})

	out := buf.String()
	is.True(strings.Contains(out, `"partitions":2`))
	is.True(strings.Contains(out, "terminal operation failed"))
}
