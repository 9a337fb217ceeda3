package corag

import "github.com/rs/zerolog"

// DefaultMaxAttempts is the research budget when none is configured
const DefaultMaxAttempts = 3

type Options struct {
	maxAttempts int
	observer    Observer
	faultPolicy FaultPolicy
	logger      zerolog.Logger
}

type Option func(*Options)

// WithMaxAttempts sets the research budget. Values below 1 make Run fail.
func WithMaxAttempts(n int) Option {
	return func(o *Options) {
		o.maxAttempts = n
	}
}

func WithObserver(observer Observer) Option {
	return func(o *Options) {
		o.observer = observer
	}
}

func WithFaultPolicy(policy FaultPolicy) Option {
	return func(o *Options) {
		o.faultPolicy = policy
	}
}

func WithLogger(l zerolog.Logger) Option {
	return func(o *Options) {
		o.logger = l
	}
}
