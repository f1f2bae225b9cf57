// Package ledgerlink reconciles UK asylum accommodation ledgers into entity
// profiles and investigation trails, memoizing results for the caller.
//
// A Cache is owned by whoever creates it; there is no package-level state.
// Results are keyed by a fingerprint of the three input ledgers, so passing
// changed ledgers always triggers a fresh build.
//
//	c, err := ledgerlink.New(ledgerlink.WithTTL(time.Hour))
//	result, err := c.Profiles(ctx, site, money, place)
package ledgerlink

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/agentstation/ledgerlink/internal/cache"
	"github.com/agentstation/ledgerlink/pkg/ledgers"
	"github.com/agentstation/ledgerlink/pkg/logging"
	"github.com/agentstation/ledgerlink/pkg/profiles"
	"github.com/agentstation/ledgerlink/pkg/trails"
)

const (
	profilesPrefix = "profiles:"
	trailsPrefix   = "trails:"
)

// Stats reports cache usage.
type Stats = cache.Stats

// Cache memoizes profile and trail builds by input fingerprint.
// It is safe for concurrent use.
type Cache struct {
	mu     sync.Mutex // serializes builds so one fingerprint is built once
	store  *cache.Store
	config *config
	hooks  *hooks
}

// New creates a Cache.
func New(opts ...Option) (*Cache, error) {
	cfg, err := defaultConfig().apply(opts...)
	if err != nil {
		return nil, err
	}
	return &Cache{
		store:  cache.New(cfg.ttl, cfg.cleanup),
		config: cfg,
		hooks:  newHooks(),
	}, nil
}

// OnBuilt registers a callback run after each fresh profile build.
func (c *Cache) OnBuilt(fn BuiltHook) {
	c.hooks.OnBuilt(fn)
}

// OnConflict registers a callback run for each identity conflict of a fresh build.
func (c *Cache) OnConflict(fn ConflictHook) {
	c.hooks.OnConflict(fn)
}

// Profiles returns the profile build for the ledgers, building it when the
// fingerprint has not been seen or has expired. The returned result is
// shared with later callers and must not be modified.
func (c *Cache) Profiles(ctx context.Context, site *ledgers.SiteLedger, money *ledgers.MoneyLedger, place *ledgers.PlaceLedger) (*profiles.Result, error) {
	logger := c.logger(ctx, "profiles")
	fp, err := Fingerprint(site, money, place)
	if err != nil {
		return nil, err
	}
	key := profilesPrefix + fp

	if result, ok := cache.Lookup[*profiles.Result](c.store, key); ok {
		logger.Debug().Str("fingerprint", fp).Msg("Profile cache hit")
		return result, nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if result, ok := cache.Lookup[*profiles.Result](c.store, key); ok {
		return result, nil
	}

	opts := append([]profiles.Option{profiles.WithLogger(logger)}, c.config.buildOptions...)
	result, err := profiles.Build(ctx, site, money, place, opts...)
	if err != nil {
		return nil, err
	}
	c.store.Set(key, result)
	logger.Debug().
		Str("fingerprint", fp).
		Int("profiles", len(result.Profiles)).
		Msg("Profile cache stored")

	c.hooks.triggerBuilt(fp, result)
	return result, nil
}

// Trails returns the trail build for the ledgers, cached like Profiles.
func (c *Cache) Trails(ctx context.Context, site *ledgers.SiteLedger, money *ledgers.MoneyLedger, place *ledgers.PlaceLedger) ([]trails.Trail, error) {
	logger := c.logger(ctx, "trails")
	fp, err := Fingerprint(site, money, place)
	if err != nil {
		return nil, err
	}
	key := trailsPrefix + fp

	if cached, ok := cache.Lookup[[]trails.Trail](c.store, key); ok {
		logger.Debug().Str("fingerprint", fp).Msg("Trail cache hit")
		return cached, nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if cached, ok := cache.Lookup[[]trails.Trail](c.store, key); ok {
		return cached, nil
	}

	built, err := trails.Build(site, money, place)
	if err != nil {
		return nil, err
	}
	c.store.Set(key, built)
	logger.Debug().
		Str("fingerprint", fp).
		Int("trails", len(built)).
		Msg("Trail cache stored")
	return built, nil
}

// Invalidate drops every cached result.
func (c *Cache) Invalidate() {
	c.store.Clear()
}

// Len returns the number of cached results.
func (c *Cache) Len() int {
	return c.store.ItemCount()
}

// Stats returns cache usage counters.
func (c *Cache) Stats() Stats {
	return c.store.GetStats()
}

func (c *Cache) logger(ctx context.Context, operation string) *zerolog.Logger {
	if c.config.logger != nil {
		ctx = logging.WithLogger(ctx, c.config.logger)
	}
	return logging.FromContext(logging.WithOperation(ctx, operation))
}
