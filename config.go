package gostreams

import (
	"runtime"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

const (
	// EnvPrefix is the prefix of the environment variables read by DefaultConfig.
	EnvPrefix = "GOSTREAMS"

	defaultSplitFactor = 4
)

// Config configures how a Sequence is executed.
// A Config is copied along a pipeline, so it can not be changed by downstream stages.
type Config struct {
	// Workers is the maximum number of partitions processed concurrently in parallel mode.
	Workers int

	// SplitFactor is the number of partitions created per worker in parallel mode.
	SplitFactor int

	// Logger receives debug events of terminal operations. The default logger discards all events.
	Logger zerolog.Logger
}

// Option changes a Config.
type Option func(cfg *Config)

// DefaultConfig returns the default configuration.
// Workers and SplitFactor can be overridden using the GOSTREAMS_WORKERS and GOSTREAMS_SPLIT_FACTOR
// environment variables. Missing or non-positive values are ignored.
func DefaultConfig() Config {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	v.SetDefault("workers", runtime.GOMAXPROCS(0))
	v.SetDefault("split_factor", defaultSplitFactor)

	cfg := Config{
		Workers:     v.GetInt("workers"),
		SplitFactor: v.GetInt("split_factor"),
		Logger:      zerolog.Nop(),
	}

	return cfg.sanitized()
}

// WithWorkers sets the maximum number of partitions processed concurrently in parallel mode.
func WithWorkers(workers int) Option {
	return func(cfg *Config) {
		cfg.Workers = workers
	}
}

// WithSplitFactor sets the number of partitions created per worker in parallel mode.
func WithSplitFactor(factor int) Option {
	return func(cfg *Config) {
		cfg.SplitFactor = factor
	}
}

// WithLogger sets the logger that receives debug events of terminal operations.
func WithLogger(logger zerolog.Logger) Option {
	return func(cfg *Config) {
		cfg.Logger = logger
	}
}

// partitions returns the number of partitions a parallel terminal operation splits a stream into.
func (cfg Config) partitions() int {
	return cfg.Workers * cfg.SplitFactor
}

// sanitized returns a copy of cfg with non-positive values replaced by defaults.
func (cfg Config) sanitized() Config {
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.GOMAXPROCS(0)
	}

	if cfg.SplitFactor <= 0 {
		cfg.SplitFactor = defaultSplitFactor
	}

	return cfg
}
