// Package postgres implements the baseline and rate cache ports on a hosted
// Postgres database through pgx.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/Kirankkt/Trivandrum-Realty-v2/internal/storage/models"
	"github.com/Kirankkt/Trivandrum-Realty-v2/pkg/logger"
)

// Pool is the subset of *pgxpool.Pool the store uses. pgxmock satisfies it.
type Pool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Ping(ctx context.Context) error
	Close()
}

type PoolConfig struct {
	MaxConns int32
	MinConns int32
}

type Store struct {
	pool Pool
}

func New(ctx context.Context, connString string, poolCfg PoolConfig) (*Store, error) {
	cfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("postgres: parse config: %w", err)
	}

	cfg.MaxConns = 10
	cfg.MinConns = 2
	if poolCfg.MaxConns > 0 {
		cfg.MaxConns = poolCfg.MaxConns
	}
	if poolCfg.MinConns > 0 {
		cfg.MinConns = poolCfg.MinConns
	}
	cfg.MaxConnLifetime = 30 * time.Minute
	cfg.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("postgres: create pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres: ping: %w", err)
	}

	logger.Info("Postgres store initialized", zap.Int32("max_conns", cfg.MaxConns))
	return &Store{pool: pool}, nil
}

// NewWithPool wraps an existing pool.
func NewWithPool(pool Pool) *Store {
	return &Store{pool: pool}
}

func (s *Store) Close() error {
	s.pool.Close()
	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

const schema = `
CREATE TABLE IF NOT EXISTS locality_baselines (
	locality         TEXT PRIMARY KEY,
	median_rate      DOUBLE PRECISION NOT NULL,
	sample_size      INTEGER NOT NULL DEFAULT 0,
	std_deviation    DOUBLE PRECISION NOT NULL DEFAULT 0,
	confidence_score DOUBLE PRECISION NOT NULL DEFAULT 0,
	last_updated     TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS search_cache (
	locality  TEXT PRIMARY KEY,
	rate      DOUBLE PRECISION NOT NULL,
	cached_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS locality_search_history (
	id          TEXT PRIMARY KEY DEFAULT gen_random_uuid()::text,
	locality    TEXT NOT NULL,
	rate        DOUBLE PRECISION NOT NULL,
	source      TEXT NOT NULL,
	observed_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_history_locality ON locality_search_history (locality, observed_at);
`

func (s *Store) Migrate(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("postgres: migrate: %w", err)
	}
	return nil
}

func (s *Store) GetBaseline(ctx context.Context, locality string) (*models.LocalityBaseline, error) {
	var b models.LocalityBaseline
	err := s.pool.QueryRow(ctx,
		`SELECT locality, median_rate, sample_size, std_deviation, confidence_score, last_updated FROM locality_baselines WHERE locality = $1`,
		locality,
	).Scan(&b.Locality, &b.MedianRate, &b.SampleSize, &b.StdDeviation, &b.ConfidenceScore, &b.LastUpdated)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("postgres: get baseline: %w", err)
	}
	return &b, nil
}

// UpsertBaseline ignores rows that would lower sample_size.
func (s *Store) UpsertBaseline(ctx context.Context, b *models.LocalityBaseline) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO locality_baselines (locality, median_rate, sample_size, std_deviation, confidence_score, last_updated)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (locality) DO UPDATE SET
			median_rate = EXCLUDED.median_rate,
			sample_size = EXCLUDED.sample_size,
			std_deviation = EXCLUDED.std_deviation,
			confidence_score = EXCLUDED.confidence_score,
			last_updated = EXCLUDED.last_updated
		WHERE EXCLUDED.sample_size >= locality_baselines.sample_size`,
		b.Locality, b.MedianRate, b.SampleSize, b.StdDeviation, b.ConfidenceScore, b.LastUpdated,
	)
	if err != nil {
		return fmt.Errorf("postgres: upsert baseline: %w", err)
	}
	return nil
}

func (s *Store) AppendObservation(ctx context.Context, o *models.RateObservation) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO locality_search_history (id, locality, rate, source, observed_at) VALUES ($1, $2, $3, $4, $5)`,
		o.ID, o.Locality, o.Rate, string(o.Source), o.ObservedAt,
	)
	if err != nil {
		return fmt.Errorf("postgres: append observation: %w", err)
	}
	return nil
}

func (s *Store) ListObservations(ctx context.Context, locality string) ([]models.RateObservation, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, locality, rate, source, observed_at FROM locality_search_history WHERE locality = $1 ORDER BY observed_at ASC`,
		locality,
	)
	if err != nil {
		return nil, fmt.Errorf("postgres: list observations: %w", err)
	}
	defer rows.Close()

	var out []models.RateObservation
	for rows.Next() {
		var o models.RateObservation
		var source string
		if err := rows.Scan(&o.ID, &o.Locality, &o.Rate, &source, &o.ObservedAt); err != nil {
			return nil, fmt.Errorf("postgres: scan observation: %w", err)
		}
		o.Source = models.RateSource(source)
		out = append(out, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres: iterate observations: %w", err)
	}
	return out, nil
}

func (s *Store) ListObservedLocalities(ctx context.Context) ([]string, error) {
	rows, err := s.pool.Query(ctx, `SELECT DISTINCT locality FROM locality_search_history ORDER BY locality`)
	if err != nil {
		return nil, fmt.Errorf("postgres: list localities: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("postgres: scan locality: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres: iterate localities: %w", err)
	}
	return names, nil
}

func (s *Store) GetCachedRate(ctx context.Context, locality string) (*models.CachedRate, error) {
	var c models.CachedRate
	err := s.pool.QueryRow(ctx,
		`SELECT locality, rate, cached_at FROM search_cache WHERE locality = $1`,
		locality,
	).Scan(&c.Locality, &c.Rate, &c.CachedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("postgres: get cached rate: %w", err)
	}
	return &c, nil
}

func (s *Store) PutCachedRate(ctx context.Context, c *models.CachedRate) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO search_cache (locality, rate, cached_at) VALUES ($1, $2, $3)
		ON CONFLICT (locality) DO UPDATE SET rate = EXCLUDED.rate, cached_at = EXCLUDED.cached_at`,
		c.Locality, c.Rate, c.CachedAt,
	)
	if err != nil {
		return fmt.Errorf("postgres: put cached rate: %w", err)
	}
	return nil
}
