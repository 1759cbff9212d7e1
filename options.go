package forcetypes

import (
	"log/slog"

	"github.com/saylorsolutions/forcetypes/internal/env"
	"github.com/saylorsolutions/forcetypes/typex"
)

// Option configures a wrapped callable.
type Option func(*settings)

type settings struct {
	matcher *typex.Matcher
	logger  *slog.Logger
}

// WithMatcher sets the [typex.Matcher] used to check arguments and return values.
// By default, a matcher is created with the nesting limit in FORCETYPES_MAX_DEPTH, or [typex.DefaultMaxDepth].
func WithMatcher(m *typex.Matcher) Option {
	return func(s *settings) {
		if m != nil {
			s.matcher = m
		}
	}
}

// WithLogger sets a logger that receives a debug record for every mismatch.
// Nothing is logged by default.
func WithLogger(logger *slog.Logger) Option {
	return func(s *settings) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func newSettings(opts []Option) settings {
	s := settings{
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&s)
		}
	}
	if s.matcher == nil {
		s.matcher = typex.NewMatcher(env.Int(env.MaxDepth, typex.DefaultMaxDepth))
	}
	return s
}
