package worker

import "github.com/okian/squadcraft/pkg/logger"

// Option applies a configuration option to a worker or pool.
type Option func(*settings)

type settings struct {
	name   string
	logger logger.Logger
}

// WithName sets the worker name used in logs.
func WithName(name string) Option {
	return func(s *settings) {
		if name != "" {
			s.name = name
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l logger.Logger) Option {
	return func(s *settings) {
		if l != nil {
			s.logger = l
		}
	}
}

func apply(defaultName string, opts []Option) settings {
	s := settings{name: defaultName, logger: logger.Discard()}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}
