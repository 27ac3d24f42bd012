package configcache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/exp/slog"
	"golang.org/x/sync/singleflight"

	"github.com/Batareeed/afterpay-go/afterpay"
)

// DefaultTTL is the freshness window before a persisted configuration is
// considered stale.
const DefaultTTL = 24 * time.Hour

// Fetcher retrieves the raw configuration payload from the gateway.
type Fetcher interface {
	FetchConfiguration(ctx context.Context) ([]byte, error)
}

// FetcherFunc adapts a function to the Fetcher interface.
type FetcherFunc func(ctx context.Context) ([]byte, error)

func (f FetcherFunc) FetchConfiguration(ctx context.Context) ([]byte, error) {
	return f(ctx)
}

// Cache decides between serving the persisted configuration and fetching a
// fresh one. Persistence writes happen only after a fetched payload has
// decoded and validated, so the store never holds a payload this package
// cannot read back. Concurrent misses are coalesced into one in-flight
// fetch sharing its result.
type Cache struct {
	store   Store
	fetcher Fetcher
	ttl     time.Duration
	now     func() time.Time
	logger  *slog.Logger

	group singleflight.Group

	mu   sync.RWMutex
	last *afterpay.Configuration
}

// Option adjusts a Cache at construction.
type Option func(*Cache)

// WithTTL overrides the freshness window.
func WithTTL(ttl time.Duration) Option {
	return func(c *Cache) { c.ttl = ttl }
}

// WithClock injects the cache's time source so freshness decisions are
// deterministic under test.
func WithClock(now func() time.Time) Option {
	return func(c *Cache) { c.now = now }
}

// WithLogger overrides the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Cache) { c.logger = logger }
}

func New(store Store, fetcher Fetcher, opts ...Option) *Cache {
	c := &Cache{
		store:   store,
		fetcher: fetcher,
		ttl:     DefaultTTL,
		now:     time.Now,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Configuration returns the merchant configuration, serving the persisted
// copy while it is fresh and fetching a new one otherwise.
//
// Fetch errors pass through wrapped; decode and validation failures surface
// as *afterpay.DecodeError and afterpay.ErrInvalidConfiguration and leave
// the persisted state untouched.
func (c *Cache) Configuration(ctx context.Context) (afterpay.Configuration, error) {
	if cfg, ok := c.fresh(ctx); ok {
		return cfg, nil
	}
	return c.fetch(ctx)
}

// Refresh fetches a new configuration immediately, bypassing the freshness
// window. Concurrent refreshes still share one in-flight fetch.
func (c *Cache) Refresh(ctx context.Context) (afterpay.Configuration, error) {
	return c.fetch(ctx)
}

// Cached returns the last configuration this process observed, regardless of
// freshness, falling back to whatever decodable payload the store holds. It
// never touches the network.
func (c *Cache) Cached(ctx context.Context) (afterpay.Configuration, bool) {
	c.mu.RLock()
	last := c.last
	c.mu.RUnlock()
	if last != nil {
		return *last, true
	}

	raw, err := c.store.Configuration(ctx)
	if err != nil || raw == nil {
		return afterpay.Configuration{}, false
	}
	cfg, err := afterpay.DecodeConfiguration(raw)
	if err != nil {
		return afterpay.Configuration{}, false
	}
	c.remember(cfg)
	return cfg, true
}

// Currency returns the currency code of the last known configuration. The
// widget bridge uses it to resolve the process-wide currency for updates.
func (c *Cache) Currency(ctx context.Context) (string, bool) {
	cfg, ok := c.Cached(ctx)
	if !ok {
		return "", false
	}
	return cfg.Currency, true
}

// Invalidate drops the in-memory copy and clears both persisted slots so the
// next Configuration call fetches.
func (c *Cache) Invalidate(ctx context.Context) error {
	c.mu.Lock()
	c.last = nil
	c.mu.Unlock()

	// Clear the freshness mark first: if the payload delete is lost, the
	// leftover payload reads as stale rather than fresh.
	if err := c.store.SetLastFetch(ctx, time.Time{}); err != nil {
		return fmt.Errorf("clear last fetch: %w", err)
	}
	if err := c.store.SetConfiguration(ctx, nil); err != nil {
		return fmt.Errorf("clear configuration: %w", err)
	}
	return nil
}

// fresh serves the persisted configuration when the freshness window has not
// elapsed. Store read failures and persisted payloads that no longer decode
// degrade to a miss; the network path can still produce a configuration.
func (c *Cache) fresh(ctx context.Context) (afterpay.Configuration, bool) {
	lastFetch, err := c.store.LastFetch(ctx)
	if err != nil {
		c.logger.Warn("config cache: reading last fetch failed", slog.String("error", err.Error()))
		return afterpay.Configuration{}, false
	}
	if lastFetch.IsZero() || c.now().Sub(lastFetch) >= c.ttl {
		return afterpay.Configuration{}, false
	}

	raw, err := c.store.Configuration(ctx)
	if err != nil {
		c.logger.Warn("config cache: reading persisted payload failed", slog.String("error", err.Error()))
		return afterpay.Configuration{}, false
	}
	if raw == nil {
		return afterpay.Configuration{}, false
	}
	cfg, err := afterpay.DecodeConfiguration(raw)
	if err != nil {
		c.logger.Warn("config cache: persisted payload no longer decodes", slog.String("error", err.Error()))
		return afterpay.Configuration{}, false
	}
	c.remember(cfg)
	return cfg, true
}

func (c *Cache) fetch(ctx context.Context) (afterpay.Configuration, error) {
	v, err, _ := c.group.Do(slotConfiguration, func() (any, error) {
		return c.refresh(ctx)
	})
	if err != nil {
		return afterpay.Configuration{}, err
	}
	return v.(afterpay.Configuration), nil
}

func (c *Cache) refresh(ctx context.Context) (afterpay.Configuration, error) {
	raw, err := c.fetcher.FetchConfiguration(ctx)
	if err != nil {
		return afterpay.Configuration{}, fmt.Errorf("fetch configuration: %w", err)
	}
	cfg, err := afterpay.DecodeConfiguration(raw)
	if err != nil {
		return afterpay.Configuration{}, err
	}

	// Payload before freshness mark: a half-completed write reads as stale,
	// never as a fresh window over missing bytes.
	if err := c.store.SetConfiguration(ctx, raw); err != nil {
		c.logger.Warn("config cache: persisting payload failed", slog.String("error", err.Error()))
	} else if err := c.store.SetLastFetch(ctx, c.now()); err != nil {
		c.logger.Warn("config cache: persisting fetch time failed", slog.String("error", err.Error()))
	}

	c.remember(cfg)
	return cfg, nil
}

func (c *Cache) remember(cfg afterpay.Configuration) {
	c.mu.Lock()
	c.last = &cfg
	c.mu.Unlock()
}
