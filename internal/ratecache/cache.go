// Package ratecache short-circuits the oracle with a recently resolved land
// rate. The freshness window is recomputed from the current baseline on every
// read, so the same entry can turn fresh or stale as the baseline evolves.
package ratecache

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Kirankkt/Trivandrum-Realty-v2/internal/baseline"
	"github.com/Kirankkt/Trivandrum-Realty-v2/internal/storage/models"
)

const (
	LongTTL    = 7 * 24 * time.Hour
	MediumTTL  = 2 * 24 * time.Hour
	DefaultTTL = 12 * time.Hour
)

// Port is the persistence boundary for the one-row-per-locality cache.
// GetCachedRate returns nil, nil when no row exists.
type Port interface {
	GetCachedRate(ctx context.Context, locality string) (*models.CachedRate, error)
	PutCachedRate(ctx context.Context, c *models.CachedRate) error
}

// BaselineReader is the part of the baseline store the cache consults.
type BaselineReader interface {
	Get(ctx context.Context, locality string) (*models.LocalityBaseline, error)
}

// TTL picks the freshness window for a baseline. A nil baseline gets the
// default.
func TTL(b *models.LocalityBaseline) time.Duration {
	if b == nil {
		return DefaultTTL
	}
	switch {
	case b.SampleSize >= 15 && baseline.VariancePct(b) <= 10 && b.ConfidenceScore >= 85:
		return LongTTL
	case b.SampleSize >= 5 && b.SampleSize < 15:
		return MediumTTL
	default:
		return DefaultTTL
	}
}

type Cache struct {
	port      Port
	baselines BaselineReader
	logger    *zap.Logger
	now       func() time.Time
}

type Option func(*Cache)

func WithClock(now func() time.Time) Option {
	return func(c *Cache) { c.now = now }
}

func WithLogger(l *zap.Logger) Option {
	return func(c *Cache) { c.logger = l }
}

func New(port Port, baselines BaselineReader, opts ...Option) *Cache {
	c := &Cache{port: port, baselines: baselines, logger: zap.NewNop(), now: time.Now}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Check returns the cached rate when it is younger than the TTL derived
// from the current baseline. Store errors are logged and reported as a
// miss. Stale rows are left in place.
func (c *Cache) Check(ctx context.Context, locality string) (float64, bool) {
	entry, err := c.port.GetCachedRate(ctx, locality)
	if err != nil {
		c.logger.Warn("Rate cache read failed", zap.String("locality", locality), zap.Error(err))
		return 0, false
	}
	if entry == nil || entry.Rate <= 0 {
		return 0, false
	}

	b, err := c.baselines.Get(ctx, locality)
	if err != nil {
		c.logger.Warn("Baseline read failed during cache check", zap.String("locality", locality), zap.Error(err))
		b = nil
	}

	ttl := TTL(b)
	age := c.now().Sub(entry.CachedAt)
	if age >= ttl {
		c.logger.Debug("Rate cache stale",
			zap.String("locality", locality),
			zap.Duration("age", age),
			zap.Duration("ttl", ttl),
		)
		return 0, false
	}

	c.logger.Debug("Rate cache hit", zap.String("locality", locality), zap.Float64("rate", entry.Rate))
	return entry.Rate, true
}

// Update overwrites the locality's cache row.
func (c *Cache) Update(ctx context.Context, locality string, rate float64) error {
	entry := &models.CachedRate{Locality: locality, Rate: rate, CachedAt: c.now().UTC()}
	if err := c.port.PutCachedRate(ctx, entry); err != nil {
		return fmt.Errorf("failed to update rate cache for %s: %w", locality, err)
	}
	return nil
}
