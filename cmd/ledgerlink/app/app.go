// Package app provides the application context and dependency management
// for the ledgerlink CLI. It centralizes configuration, logging, the
// ledger set and the build cache.
package app

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/rs/zerolog"

	"github.com/agentstation/ledgerlink"
	"github.com/agentstation/ledgerlink/internal/appcontext"
	"github.com/agentstation/ledgerlink/pkg/ledgers"
	"github.com/agentstation/ledgerlink/pkg/provenance"
)

// App represents the ledgerlink application with all its dependencies.
type App struct {
	// Version information
	version string
	commit  string
	date    string
	builtBy string

	// Configuration
	config *Config

	// Logger
	logger *zerolog.Logger

	// Command output, stdout when nil
	out io.Writer

	// Lazy-initialized, one per process
	mu      sync.RWMutex
	cache   *ledgerlink.Cache
	ledgers *ledgers.Set
}

var _ appcontext.Interface = (*App)(nil)

// New creates a new App instance with the given version information.
// The app is initialized with configuration from the environment that can be
// customized using functional options.
func New(version, commit, date, builtBy string, opts ...Option) (*App, error) {
	app := &App{
		version: version,
		commit:  commit,
		date:    date,
		builtBy: builtBy,
	}

	config, err := LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	app.config = config

	logger := NewLogger(config)
	app.logger = &logger

	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	return app, nil
}

// Version returns the version information.
func (a *App) Version() string {
	return a.version
}

// Commit returns the git commit hash.
func (a *App) Commit() string {
	return a.commit
}

// Date returns the build date.
func (a *App) Date() string {
	return a.date
}

// BuiltBy returns the build system identifier.
func (a *App) BuiltBy() string {
	return a.builtBy
}

// Config returns the application configuration.
func (a *App) Config() *Config {
	return a.config
}

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger {
	return a.logger
}

// OutputFormat returns the configured output format.
func (a *App) OutputFormat() string {
	return a.config.Format
}

// TopPlaces returns how many linked places entity views rank.
func (a *App) TopPlaces() int {
	return a.config.TopPlaces
}

// LedgerPaths returns the configured ledger file locations.
func (a *App) LedgerPaths() ledgers.Paths {
	return a.config.Paths()
}

// Cache returns the build cache, creating it lazily if needed.
// This is thread-safe and ensures only one instance is created.
func (a *App) Cache() (*ledgerlink.Cache, error) {
	a.mu.RLock()
	if a.cache != nil {
		c := a.cache
		a.mu.RUnlock()
		return c, nil
	}
	a.mu.RUnlock()

	a.mu.Lock()
	defer a.mu.Unlock()

	// Double-check after acquiring write lock
	if a.cache != nil {
		return a.cache, nil
	}

	c, err := ledgerlink.New(
		ledgerlink.WithTTL(a.config.CacheTTL),
		ledgerlink.WithLogger(a.logger),
	)
	if err != nil {
		return nil, fmt.Errorf("creating cache: %w", err)
	}
	c.OnConflict(func(conflict provenance.Conflict) {
		a.logger.Warn().
			Str("entity_key", conflict.EntityKey).
			Str("field", conflict.Field).
			Interface("kept", conflict.Kept).
			Interface("rejected", conflict.Rejected).
			Str("row", conflict.Row).
			Msg("Identity conflict")
	})

	a.cache = c
	return c, nil
}

// Ledgers returns the ledger set, reading the configured files on first use.
func (a *App) Ledgers() (*ledgers.Set, error) {
	a.mu.RLock()
	if a.ledgers != nil {
		set := a.ledgers
		a.mu.RUnlock()
		return set, nil
	}
	a.mu.RUnlock()

	a.mu.Lock()
	defer a.mu.Unlock()

	if a.ledgers != nil {
		return a.ledgers, nil
	}

	paths := a.config.Paths()
	set, err := ledgers.Load(paths)
	if err != nil {
		return nil, err
	}
	a.logger.Debug().
		Str("site", paths.Site).
		Str("money", paths.Money).
		Str("place", paths.Place).
		Msg("Loaded ledgers")

	a.ledgers = set
	return set, nil
}

// Shutdown releases the cached builds.
func (a *App) Shutdown(_ context.Context) error {
	a.mu.RLock()
	c := a.cache
	a.mu.RUnlock()

	if c != nil {
		stats := c.Stats()
		a.logger.Debug().
			Int("items", stats.ItemCount).
			Int64("hits", stats.Hits).
			Int64("misses", stats.Misses).
			Msg("Releasing build cache")
		c.Invalidate()
	}
	return nil
}

// Option is a functional option for configuring the App.
type Option func(*App) error

// WithConfig sets a custom configuration.
func WithConfig(config *Config) Option {
	return func(a *App) error {
		a.config = config
		return nil
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(a *App) error {
		a.logger = logger
		return nil
	}
}

// WithLedgers sets a preloaded ledger set, skipping file loading.
func WithLedgers(set *ledgers.Set) Option {
	return func(a *App) error {
		a.ledgers = set
		return nil
	}
}

// WithOutput redirects command output.
func WithOutput(w io.Writer) Option {
	return func(a *App) error {
		a.out = w
		return nil
	}
}
