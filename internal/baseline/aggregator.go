package baseline

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/stat"

	"github.com/Kirankkt/Trivandrum-Realty-v2/internal/locality"
	"github.com/Kirankkt/Trivandrum-Realty-v2/internal/storage/models"
)

var (
	ErrNoObservations = errors.New("no oracle observations")
	ErrOutsideBand    = errors.New("median rate outside sane band")
)

// SaneBand bounds a materialized median in lakhs per cent.
type SaneBand struct {
	Low  float64
	High float64
}

// BandFor derives the band from the suburb and premium benchmarks.
func BandFor(b locality.Benchmarks, lowMultiple, highMultiple float64) SaneBand {
	return SaneBand{Low: b.Suburb * lowMultiple, High: b.Premium * highMultiple}
}

func (s SaneBand) Contains(rate float64) bool {
	return rate >= s.Low && rate <= s.High
}

type AggregatorConfig struct {
	// Window caps how many of the most recent oracle observations feed the
	// median and deviation. Zero uses all of them.
	Window int
	Band   SaneBand
	Logger *zap.Logger
	Now    func() time.Time
}

// Aggregator recomputes locality baselines from the observation log.
type Aggregator struct {
	port   Port
	cfg    AggregatorConfig
	logger *zap.Logger
	now    func() time.Time

	// mu serializes Refresh so the read of the previous row and the upsert
	// are not interleaved with another refresh.
	mu sync.Mutex
}

func NewAggregator(port Port, cfg AggregatorConfig) *Aggregator {
	a := &Aggregator{port: port, cfg: cfg, logger: cfg.Logger, now: cfg.Now}
	if a.logger == nil {
		a.logger = zap.NewNop()
	}
	if a.now == nil {
		a.now = time.Now
	}
	return a
}

// Stats are the summary statistics of one locality's rate history.
type Stats struct {
	Median float64
	StdDev float64
	Count  int
}

// Summarize returns the median and sample standard deviation of rates.
func Summarize(rates []float64) Stats {
	n := len(rates)
	if n == 0 {
		return Stats{}
	}

	xs := make([]float64, n)
	copy(xs, rates)
	sort.Float64s(xs)

	median := stat.Quantile(0.5, stat.Empirical, xs, nil)
	if n%2 == 0 {
		median = (median + xs[n/2]) / 2
	}

	var sd float64
	if n > 1 {
		sd = stat.StdDev(xs, nil)
	}
	return Stats{Median: median, StdDev: sd, Count: n}
}

// Refresh rebuilds and upserts the baseline for one locality. Only
// oracle-sourced observations count; guard and fallback substitutions would
// just echo the existing median back into it.
func (a *Aggregator) Refresh(ctx context.Context, name string) (*models.LocalityBaseline, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	history, err := a.port.ListObservations(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to list observations for %s: %w", name, err)
	}

	rates := make([]float64, 0, len(history))
	for _, o := range history {
		if o.Source == models.SourceOracle && o.Rate > 0 {
			rates = append(rates, o.Rate)
		}
	}
	if len(rates) == 0 {
		return nil, fmt.Errorf("%w for %s", ErrNoObservations, name)
	}

	total := len(rates)
	if a.cfg.Window > 0 && len(rates) > a.cfg.Window {
		rates = rates[len(rates)-a.cfg.Window:]
	}
	st := Summarize(rates)

	if a.cfg.Band.High > 0 && !a.cfg.Band.Contains(st.Median) {
		a.logger.Warn("Refusing to persist baseline outside sane band",
			zap.String("locality", name),
			zap.Float64("median", st.Median),
			zap.Float64("band_low", a.cfg.Band.Low),
			zap.Float64("band_high", a.cfg.Band.High),
		)
		return nil, fmt.Errorf("%w: %s median %.2f", ErrOutsideBand, name, st.Median)
	}

	prev, err := a.port.GetBaseline(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to read previous baseline for %s: %w", name, err)
	}
	sampleSize := total
	if prev != nil && prev.SampleSize > sampleSize {
		sampleSize = prev.SampleSize
	}

	b := &models.LocalityBaseline{
		Locality:     name,
		MedianRate:   round4(st.Median),
		SampleSize:   sampleSize,
		StdDeviation: round4(st.StdDev),
		LastUpdated:  a.now().UTC(),
	}
	b.ConfidenceScore = Score(b.SampleSize, VariancePct(b)).Score

	if err := a.port.UpsertBaseline(ctx, b); err != nil {
		return nil, fmt.Errorf("failed to upsert baseline for %s: %w", name, err)
	}

	a.logger.Debug("Baseline refreshed",
		zap.String("locality", name),
		zap.Float64("median", b.MedianRate),
		zap.Int("sample_size", b.SampleSize),
		zap.Float64("confidence", b.ConfidenceScore),
	)
	return b, nil
}

type RefreshSummary struct {
	Refreshed int
	Skipped   int
	Failed    int
}

// RefreshAll refreshes every locality that has observations. Individual
// failures are logged and counted, not returned.
func (a *Aggregator) RefreshAll(ctx context.Context) (RefreshSummary, error) {
	var sum RefreshSummary

	names, err := a.port.ListObservedLocalities(ctx)
	if err != nil {
		return sum, fmt.Errorf("failed to list observed localities: %w", err)
	}

	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return sum, err
		}
		_, err := a.Refresh(ctx, name)
		switch {
		case err == nil:
			sum.Refreshed++
		case errors.Is(err, ErrNoObservations), errors.Is(err, ErrOutsideBand):
			sum.Skipped++
		default:
			sum.Failed++
			a.logger.Error("Baseline refresh failed", zap.String("locality", name), zap.Error(err))
		}
	}
	return sum, nil
}

// Run refreshes all baselines every interval until ctx is done. onPass, if
// set, observes each pass.
func (a *Aggregator) Run(ctx context.Context, interval time.Duration, onPass func(RefreshSummary)) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			sum, err := a.RefreshAll(ctx)
			if err != nil && ctx.Err() == nil {
				a.logger.Error("Baseline aggregation pass failed", zap.Error(err))
				continue
			}
			if onPass != nil {
				onPass(sum)
			}
			a.logger.Info("Baseline aggregation pass complete",
				zap.Int("refreshed", sum.Refreshed),
				zap.Int("skipped", sum.Skipped),
				zap.Int("failed", sum.Failed),
			)
		}
	}
}

func round4(v float64) float64 {
	return math.Round(v*1e4) / 1e4
}
