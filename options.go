package automaton

import "go.uber.org/zap"

type minimizeOptions[S comparable] struct {
	states   []S
	explicit bool
	compare  func(a, b S) int
	logger   *zap.Logger
}

type Option[S comparable] func(*minimizeOptions[S])

func newMinimizeOptions[S comparable](opts ...Option[S]) *minimizeOptions[S] {
	options := &minimizeOptions[S]{
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(options)
	}
	return options
}

// WithStates fixes the state universe instead of discovering it from the
// accepting states and the inverse relation. States, accepting or predecessor,
// that are not listed are ignored.
func WithStates[S comparable](states ...S) Option[S] {
	return func(o *minimizeOptions[S]) {
		o.states = states
		o.explicit = true
	}
}

// WithCompare orders the universe before refinement, which makes block order,
// member order and smaller-half tie-breaks independent of input order.
func WithCompare[S comparable](compare func(a, b S) int) Option[S] {
	return func(o *minimizeOptions[S]) {
		o.compare = compare
	}
}

// WithLogger traces worklist pops and block splits at debug level.
func WithLogger[S comparable](logger *zap.Logger) Option[S] {
	return func(o *minimizeOptions[S]) {
		if logger != nil {
			o.logger = logger
		}
	}
}
