package profiles

import (
	"github.com/rs/zerolog"

	"github.com/agentstation/ledgerlink/pkg/errors"
)

// options configures a Builder.
type options struct {
	logger   *zerolog.Logger
	tracking bool
}

func defaultOptions() *options {
	return &options{
		tracking: true,
	}
}

// Option is a function that configures a Builder.
type Option func(*options) error

func (o *options) apply(opts ...Option) (*options, error) {
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, err
		}
	}
	return o, nil
}

// newOptions returns builder options with default values.
func newOptions(opts ...Option) (*options, error) {
	return defaultOptions().apply(opts...)
}

// WithLogger sets the logger used for pass and build events. Without it the
// logger is taken from the build context.
func WithLogger(logger *zerolog.Logger) Option {
	return func(o *options) error {
		if logger == nil {
			return &errors.ValidationError{
				Field:   "logger",
				Message: "cannot be nil",
			}
		}
		o.logger = logger
		return nil
	}
}

// WithProvenance enables field-level tracking of identity fields.
func WithProvenance(enabled bool) Option {
	return func(o *options) error {
		o.tracking = enabled
		return nil
	}
}
