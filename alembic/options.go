package alembic

import "go.uber.org/zap"

// Option configures how an archive is opened.
type Option func(*options)

type options struct {
	logger *zap.Logger
	cache  bool
}

func defaultOptions() *options {
	return &options{
		logger: zap.NewNop(),
		cache:  true,
	}
}

// WithLogger sets the logger used for debug output and warnings.
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithCache enables or disables memoization of resolved groups and data
// chunks. Caching is on by default.
func WithCache(enabled bool) Option {
	return func(o *options) {
		o.cache = enabled
	}
}
