package ratecache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kirankkt/Trivandrum-Realty-v2/internal/baseline"
	"github.com/Kirankkt/Trivandrum-Realty-v2/internal/storage/memory"
	"github.com/Kirankkt/Trivandrum-Realty-v2/internal/storage/models"
)

type clock struct{ t time.Time }

func (c *clock) now() time.Time { return c.t }

type failingPort struct{}

func (failingPort) GetCachedRate(context.Context, string) (*models.CachedRate, error) {
	return nil, errors.New("connection refused")
}

func (failingPort) PutCachedRate(context.Context, *models.CachedRate) error {
	return errors.New("connection refused")
}

func strong() *models.LocalityBaseline {
	return &models.LocalityBaseline{MedianRate: 20, StdDeviation: 1, SampleSize: 15, ConfidenceScore: 100}
}

func TestTTLTable(t *testing.T) {
	assert.Equal(t, DefaultTTL, TTL(nil))
	assert.Equal(t, 7*24*time.Hour, TTL(strong()))

	noisy := strong()
	noisy.StdDeviation = 2.5 // 12.5%
	assert.Equal(t, DefaultTTL, TTL(noisy))

	unsure := strong()
	unsure.ConfidenceScore = 84
	assert.Equal(t, DefaultTTL, TTL(unsure))

	for _, n := range []int{5, 9, 14} {
		assert.Equal(t, 2*24*time.Hour, TTL(&models.LocalityBaseline{SampleSize: n, MedianRate: 10, StdDeviation: 9}), "n=%d", n)
	}
	for _, n := range []int{0, 1, 4} {
		assert.Equal(t, 12*time.Hour, TTL(&models.LocalityBaseline{SampleSize: n, MedianRate: 10}), "n=%d", n)
	}
}

func TestTTLFollowsScoredBaselines(t *testing.T) {
	for n := 0; n < 40; n++ {
		for _, v := range []float64{0, 5, 10, 10.01, 20, 35} {
			b := &models.LocalityBaseline{SampleSize: n, MedianRate: 100, StdDeviation: v}
			b.ConfidenceScore = baseline.Score(n, v).Score
			got := TTL(b)
			switch {
			case n >= 15 && v <= 10 && b.ConfidenceScore >= 85:
				assert.Equal(t, LongTTL, got)
			case n >= 5 && n < 15:
				assert.Equal(t, MediumTTL, got)
			default:
				assert.Equal(t, DefaultTTL, got)
			}
		}
	}
}

func newCache(t *testing.T) (*Cache, *memory.Store, *clock) {
	t.Helper()
	mem := memory.NewStore()
	clk := &clock{t: time.Date(2025, 1, 10, 12, 0, 0, 0, time.UTC)}
	return New(mem, baseline.NewStore(mem), WithClock(clk.now)), mem, clk
}

func TestCheckMissWhenEmpty(t *testing.T) {
	c, _, _ := newCache(t)
	_, hit := c.Check(context.Background(), "Kowdiar")
	assert.False(t, hit)
}

func TestCheckHitWithinDefaultTTL(t *testing.T) {
	ctx := context.Background()
	c, _, clk := newCache(t)
	require.NoError(t, c.Update(ctx, "Kowdiar", 27.5))

	clk.t = clk.t.Add(11 * time.Hour)
	rate, hit := c.Check(ctx, "Kowdiar")
	assert.True(t, hit)
	assert.Equal(t, 27.5, rate)

	clk.t = clk.t.Add(time.Hour)
	_, hit = c.Check(ctx, "Kowdiar")
	assert.False(t, hit)
}

func TestTTLRecomputedAtReadTime(t *testing.T) {
	ctx := context.Background()
	c, mem, clk := newCache(t)
	require.NoError(t, c.Update(ctx, "Pattom", 18))

	clk.t = clk.t.Add(30 * time.Hour)
	_, hit := c.Check(ctx, "Pattom")
	require.False(t, hit, "stale under the 12h default")

	// The baseline matures; the same untouched row is fresh again.
	require.NoError(t, mem.UpsertBaseline(ctx, &models.LocalityBaseline{Locality: "Pattom", MedianRate: 18, SampleSize: 6, StdDeviation: 1}))
	rate, hit := c.Check(ctx, "Pattom")
	assert.True(t, hit)
	assert.Equal(t, 18.0, rate)

	row, err := mem.GetCachedRate(ctx, "Pattom")
	require.NoError(t, err)
	assert.NotNil(t, row, "stale rows are not deleted")
}

func TestUpdateOverwrites(t *testing.T) {
	ctx := context.Background()
	c, mem, clk := newCache(t)
	require.NoError(t, c.Update(ctx, "Veli", 8))
	clk.t = clk.t.Add(time.Minute)
	require.NoError(t, c.Update(ctx, "Veli", 9))

	row, err := mem.GetCachedRate(ctx, "Veli")
	require.NoError(t, err)
	assert.Equal(t, 9.0, row.Rate)
	assert.Equal(t, clk.t, row.CachedAt)
}

func TestCheckTreatsStoreErrorsAsMiss(t *testing.T) {
	c := New(failingPort{}, baseline.NewStore(memory.NewStore()))
	_, hit := c.Check(context.Background(), "Kowdiar")
	assert.False(t, hit)
	assert.Error(t, c.Update(context.Background(), "Kowdiar", 10))
}
