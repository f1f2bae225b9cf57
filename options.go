package ledgerlink

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/agentstation/ledgerlink/pkg/constants"
	"github.com/agentstation/ledgerlink/pkg/errors"
	"github.com/agentstation/ledgerlink/pkg/profiles"
)

// Option is a function that configures a Cache.
type Option func(*config) error

// config holds Cache settings.
type config struct {
	ttl          time.Duration
	cleanup      time.Duration
	logger       *zerolog.Logger
	buildOptions []profiles.Option
}

func defaultConfig() *config {
	return &config{
		ttl:     constants.DefaultCacheTTL,
		cleanup: constants.DefaultCacheCleanup,
	}
}

func (c *config) apply(opts ...Option) (*config, error) {
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// WithTTL sets how long a built result stays cached. Zero keeps results
// until Invalidate.
func WithTTL(ttl time.Duration) Option {
	return func(c *config) error {
		if ttl < 0 {
			return &errors.ValidationError{Field: "ttl", Value: ttl, Message: "cannot be negative"}
		}
		c.ttl = ttl
		return nil
	}
}

// WithCleanupInterval sets how often expired results are purged.
func WithCleanupInterval(interval time.Duration) Option {
	return func(c *config) error {
		c.cleanup = interval
		return nil
	}
}

// WithLogger sets the logger for cache and build events.
func WithLogger(logger *zerolog.Logger) Option {
	return func(c *config) error {
		if logger == nil {
			return &errors.ValidationError{Field: "logger", Message: "cannot be nil"}
		}
		c.logger = logger
		return nil
	}
}

// WithBuildOptions passes options through to every profile build.
func WithBuildOptions(opts ...profiles.Option) Option {
	return func(c *config) error {
		c.buildOptions = append(c.buildOptions, opts...)
		return nil
	}
}
