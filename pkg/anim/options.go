package anim

import "go.uber.org/zap"

// Option configures a Clip or Controller.
type Option func(*options)

type options struct {
	log *zap.Logger
}

// WithLogger routes diagnostics to log. Without it they are discarded.
func WithLogger(log *zap.Logger) Option {
	return func(o *options) {
		o.log = log
	}
}

func applyOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	o.log = orNop(o.log)
	return o
}
