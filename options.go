package lzjd

import "runtime"

// Option is a functional option for configuring batch operations.
type Option func(*batchConfig)

type batchConfig struct {
	workers int
}

func defaultBatchConfig() *batchConfig {
	return &batchConfig{
		workers: runtime.NumCPU(),
	}
}

// WithWorkers sets the number of parallel workers used by HashSources and
// CompareAll. The default is the host's logical core count. A value below
// one is rejected by the operation with errors.ErrBadWorkers.
func WithWorkers(n int) Option {
	return func(c *batchConfig) {
		c.workers = n
	}
}
