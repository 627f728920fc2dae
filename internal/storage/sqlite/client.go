package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"

	"github.com/Kirankkt/Trivandrum-Realty-v2/internal/storage/models"
	"github.com/Kirankkt/Trivandrum-Realty-v2/pkg/logger"
)

type Client struct {
	db *sql.DB
}

func NewClient(dbPath string) (*Client, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	_, err = db.Exec("PRAGMA journal_mode = WAL")
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	_, err = db.Exec("PRAGMA busy_timeout = 5000")
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set busy timeout: %w", err)
	}

	logger.Info("SQLite client initialized", zap.String("path", dbPath))

	return &Client{db: db}, nil
}

func (c *Client) Close() error {
	return c.db.Close()
}

func (c *Client) Ping(ctx context.Context) error {
	return c.db.PingContext(ctx)
}

func (c *Client) InitSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS locality_baselines (
		locality TEXT PRIMARY KEY,
		median_rate REAL NOT NULL,
		sample_size INTEGER NOT NULL DEFAULT 0,
		std_deviation REAL NOT NULL DEFAULT 0,
		confidence_score REAL NOT NULL DEFAULT 0,
		last_updated INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS search_cache (
		locality TEXT PRIMARY KEY,
		rate REAL NOT NULL,
		cached_at INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS locality_search_history (
		id TEXT PRIMARY KEY,
		locality TEXT NOT NULL,
		rate REAL NOT NULL,
		source TEXT NOT NULL,
		observed_at INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_history_locality ON locality_search_history(locality, observed_at);
	`

	_, err := c.db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to initialize schema: %w", err)
	}

	logger.Info("SQLite schema initialized")
	return nil
}

func (c *Client) GetBaseline(ctx context.Context, locality string) (*models.LocalityBaseline, error) {
	query := `SELECT locality, median_rate, sample_size, std_deviation, confidence_score, last_updated FROM locality_baselines WHERE locality = ?`

	var b models.LocalityBaseline
	var lastUpdated int64

	err := c.db.QueryRowContext(ctx, query, locality).Scan(
		&b.Locality,
		&b.MedianRate,
		&b.SampleSize,
		&b.StdDeviation,
		&b.ConfidenceScore,
		&lastUpdated,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get baseline: %w", err)
	}

	b.LastUpdated = time.UnixMilli(lastUpdated).UTC()
	return &b, nil
}

// UpsertBaseline replaces the row for the locality. A row with a smaller
// sample_size than the stored one is ignored, so sample_size never moves
// backwards and the score always matches the count it was computed from.
func (c *Client) UpsertBaseline(ctx context.Context, b *models.LocalityBaseline) error {
	query := `
		INSERT INTO locality_baselines (locality, median_rate, sample_size, std_deviation, confidence_score, last_updated)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(locality) DO UPDATE SET
			median_rate = excluded.median_rate,
			sample_size = excluded.sample_size,
			std_deviation = excluded.std_deviation,
			confidence_score = excluded.confidence_score,
			last_updated = excluded.last_updated
		WHERE excluded.sample_size >= locality_baselines.sample_size
	`

	_, err := c.db.ExecContext(ctx, query,
		b.Locality,
		b.MedianRate,
		b.SampleSize,
		b.StdDeviation,
		b.ConfidenceScore,
		b.LastUpdated.UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert baseline: %w", err)
	}

	logger.Debug("Baseline upserted", zap.String("locality", b.Locality), zap.Int("sample_size", b.SampleSize))
	return nil
}

func (c *Client) AppendObservation(ctx context.Context, o *models.RateObservation) error {
	query := `INSERT INTO locality_search_history (id, locality, rate, source, observed_at) VALUES (?, ?, ?, ?, ?)`

	_, err := c.db.ExecContext(ctx, query,
		o.ID,
		o.Locality,
		o.Rate,
		string(o.Source),
		o.ObservedAt.UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("failed to append observation: %w", err)
	}

	return nil
}

func (c *Client) ListObservations(ctx context.Context, locality string) ([]models.RateObservation, error) {
	query := `
		SELECT id, locality, rate, source, observed_at
		FROM locality_search_history
		WHERE locality = ?
		ORDER BY observed_at ASC, rowid ASC
	`

	rows, err := c.db.QueryContext(ctx, query, locality)
	if err != nil {
		return nil, fmt.Errorf("failed to list observations: %w", err)
	}
	defer rows.Close()

	var out []models.RateObservation
	for rows.Next() {
		var o models.RateObservation
		var source string
		var observedAt int64

		if err := rows.Scan(&o.ID, &o.Locality, &o.Rate, &source, &observedAt); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}

		o.Source = models.RateSource(source)
		o.ObservedAt = time.UnixMilli(observedAt).UTC()
		out = append(out, o)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate observations: %w", err)
	}
	return out, nil
}

func (c *Client) ListObservedLocalities(ctx context.Context) ([]string, error) {
	rows, err := c.db.QueryContext(ctx, `SELECT DISTINCT locality FROM locality_search_history ORDER BY locality`)
	if err != nil {
		return nil, fmt.Errorf("failed to list observed localities: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		names = append(names, name)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate localities: %w", err)
	}
	return names, nil
}

func (c *Client) GetCachedRate(ctx context.Context, locality string) (*models.CachedRate, error) {
	query := `SELECT locality, rate, cached_at FROM search_cache WHERE locality = ?`

	var cr models.CachedRate
	var cachedAt int64

	err := c.db.QueryRowContext(ctx, query, locality).Scan(&cr.Locality, &cr.Rate, &cachedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get cached rate: %w", err)
	}

	cr.CachedAt = time.UnixMilli(cachedAt).UTC()
	return &cr, nil
}

func (c *Client) PutCachedRate(ctx context.Context, cr *models.CachedRate) error {
	query := `
		INSERT INTO search_cache (locality, rate, cached_at)
		VALUES (?, ?, ?)
		ON CONFLICT(locality) DO UPDATE SET
			rate = excluded.rate,
			cached_at = excluded.cached_at
	`

	_, err := c.db.ExecContext(ctx, query, cr.Locality, cr.Rate, cr.CachedAt.UnixMilli())
	if err != nil {
		return fmt.Errorf("failed to put cached rate: %w", err)
	}

	logger.Debug("Rate cached", zap.String("locality", cr.Locality), zap.Float64("rate", cr.Rate))
	return nil
}
