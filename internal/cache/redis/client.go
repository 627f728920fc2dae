package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/Kirankkt/Trivandrum-Realty-v2/internal/storage/models"
	"github.com/Kirankkt/Trivandrum-Realty-v2/pkg/logger"
	"github.com/Kirankkt/Trivandrum-Realty-v2/pkg/utils"
)

// rateKeyTTL bounds how long Redis holds a rate row. Freshness is still
// decided at read time by the rate cache; this only needs to outlive the
// longest window it can grant.
const rateKeyTTL = 7 * 24 * time.Hour

const rateFingerprintKey = "ratecfg:fingerprint"

type Client struct {
	client *redis.Client
}

func NewClient(host string, port int, password string, db int) (*Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", host, port),
		Password: password,
		DB:       db,
	})

	ctx := context.Background()
	_, err := client.Ping(ctx).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	logger.Info("Redis client initialized", zap.String("addr", fmt.Sprintf("%s:%d", host, port)))

	return &Client{client: client}, nil
}

// NewFromClient wraps an existing go-redis client.
func NewFromClient(client *redis.Client) *Client {
	return &Client{client: client}
}

func (c *Client) Close() error {
	return c.client.Close()
}

func (c *Client) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func rateKey(locality string) string {
	return "rate:" + strings.ToLower(strings.TrimSpace(locality))
}

func (c *Client) GetCachedRate(ctx context.Context, locality string) (*models.CachedRate, error) {
	data, err := c.client.Get(ctx, rateKey(locality)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get cached rate: %w", err)
	}

	var cr models.CachedRate
	if err := json.Unmarshal(data, &cr); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cached rate: %w", err)
	}
	return &cr, nil
}

func (c *Client) PutCachedRate(ctx context.Context, cr *models.CachedRate) error {
	data, err := json.Marshal(cr)
	if err != nil {
		return fmt.Errorf("failed to marshal cached rate: %w", err)
	}

	err = c.client.Set(ctx, rateKey(cr.Locality), data, rateKeyTTL).Err()
	if err != nil {
		return fmt.Errorf("failed to set cached rate: %w", err)
	}

	logger.Debug("Rate cached in redis", zap.String("locality", cr.Locality), zap.Float64("rate", cr.Rate))
	return nil
}

// SetSearch memoizes a search response under a digest of the query.
func (c *Client) SetSearch(ctx context.Context, query string, results interface{}, ttl time.Duration) error {
	data, err := json.Marshal(results)
	if err != nil {
		return fmt.Errorf("failed to marshal search results: %w", err)
	}

	err = c.client.Set(ctx, utils.CacheKey("search", query), data, ttl).Err()
	if err != nil {
		return fmt.Errorf("failed to set search cache: %w", err)
	}

	logger.Debug("Search results cached", zap.String("query", query), zap.Duration("ttl", ttl))
	return nil
}

// GetSearch loads a memoized search response into results. The bool reports
// whether an entry existed.
func (c *Client) GetSearch(ctx context.Context, query string, results interface{}) (bool, error) {
	data, err := c.client.Get(ctx, utils.CacheKey("search", query)).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to get search cache: %w", err)
	}

	if err := json.Unmarshal(data, results); err != nil {
		return false, fmt.Errorf("failed to unmarshal search results: %w", err)
	}

	logger.Debug("Search cache hit", zap.String("query", query))
	return true, nil
}

// InvalidateRates drops every cached rate row.
func (c *Client) InvalidateRates(ctx context.Context) (int, error) {
	deleted := 0
	iter := c.client.Scan(ctx, 0, "rate:*", 0).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			logger.Warn("Failed to delete cache key", zap.String("key", iter.Val()), zap.Error(err))
			continue
		}
		deleted++
	}

	if err := iter.Err(); err != nil {
		return deleted, fmt.Errorf("failed to iterate cache keys: %w", err)
	}

	logger.Info("Rate cache invalidated", zap.Int("deleted", deleted))
	return deleted, nil
}

// SyncRateFingerprint compares fingerprint with the one recorded by the last
// process that used this Redis. On a mismatch every cached rate is dropped,
// since those rates were resolved against other reference settings, and the
// new fingerprint is stored. It returns the number of rows dropped.
func (c *Client) SyncRateFingerprint(ctx context.Context, fingerprint string) (int, error) {
	prev, err := c.client.Get(ctx, rateFingerprintKey).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return 0, fmt.Errorf("failed to read rate fingerprint: %w", err)
	}
	if prev == fingerprint {
		return 0, nil
	}

	deleted, err := c.InvalidateRates(ctx)
	if err != nil {
		return deleted, err
	}

	if err := c.client.Set(ctx, rateFingerprintKey, fingerprint, 0).Err(); err != nil {
		return deleted, fmt.Errorf("failed to store rate fingerprint: %w", err)
	}
	return deleted, nil
}
