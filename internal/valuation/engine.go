package valuation

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/Kirankkt/Trivandrum-Realty-v2/internal/baseline"
	"github.com/Kirankkt/Trivandrum-Realty-v2/internal/geo"
	"github.com/Kirankkt/Trivandrum-Realty-v2/internal/listing"
	"github.com/Kirankkt/Trivandrum-Realty-v2/internal/locality"
	"github.com/Kirankkt/Trivandrum-Realty-v2/internal/metrics"
	"github.com/Kirankkt/Trivandrum-Realty-v2/internal/search/web"
	"github.com/Kirankkt/Trivandrum-Realty-v2/internal/storage/models"
	"github.com/Kirankkt/Trivandrum-Realty-v2/internal/suitability"
)

type Searcher interface {
	Search(ctx context.Context, query string, maxResults int) ([]web.SearchResult, error)
}

// Baselines reads the current baseline and appends observations.
type Baselines interface {
	Get(ctx context.Context, locality string) (*models.LocalityBaseline, error)
	RecordObservation(ctx context.Context, locality string, rate float64, source models.RateSource) error
}

type RateCache interface {
	Check(ctx context.Context, locality string) (float64, bool)
	Update(ctx context.Context, locality string, rate float64) error
}

// Refresher recomputes a locality baseline after a new observation.
type Refresher interface {
	Refresh(ctx context.Context, locality string) (*models.LocalityBaseline, error)
}

type Config struct {
	Benchmarks           locality.Benchmarks
	GuardDeviation       float64
	ConstructionStandard float64 // rupees per sqft
	ConstructionPremium  float64
	PersistTimeout       time.Duration
	MaxSearchResults     int
	Logger               *zap.Logger
}

func DefaultConfig() Config {
	return Config{
		Benchmarks:           locality.DefaultBenchmarks(),
		GuardDeviation:       0.30,
		ConstructionStandard: 2800,
		ConstructionPremium:  3500,
		PersistTimeout:       10 * time.Second,
		MaxSearchResults:     web.MaxResults,
	}
}

type Engine struct {
	cfg       Config
	oracle    Oracle
	baselines Baselines
	cache     RateCache
	searcher  Searcher
	refresher Refresher
	logger    *zap.Logger

	inflight sync.WaitGroup
}

type Option func(*Engine)

func WithSearcher(s Searcher) Option {
	return func(e *Engine) { e.searcher = s }
}

func WithRefresher(r Refresher) Option {
	return func(e *Engine) { e.refresher = r }
}

func NewEngine(cfg Config, oracle Oracle, baselines Baselines, cache RateCache, opts ...Option) *Engine {
	def := DefaultConfig()
	if cfg.Benchmarks == (locality.Benchmarks{}) {
		cfg.Benchmarks = def.Benchmarks
	}
	if cfg.GuardDeviation <= 0 {
		cfg.GuardDeviation = def.GuardDeviation
	}
	if cfg.ConstructionStandard <= 0 {
		cfg.ConstructionStandard = def.ConstructionStandard
	}
	if cfg.ConstructionPremium <= 0 {
		cfg.ConstructionPremium = def.ConstructionPremium
	}
	if cfg.PersistTimeout <= 0 {
		cfg.PersistTimeout = def.PersistTimeout
	}
	if cfg.MaxSearchResults <= 0 || cfg.MaxSearchResults > web.MaxResults {
		cfg.MaxSearchResults = web.MaxResults
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}

	e := &Engine{
		cfg:       cfg,
		oracle:    oracle,
		baselines: baselines,
		cache:     cache,
		logger:    cfg.Logger,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Validate checks an input and returns the locality profile it names.
func Validate(in Input) (locality.Profile, error) {
	switch in.Kind {
	case KindPlot, KindHouse:
	default:
		return locality.Profile{}, &ValidationError{Field: "type", Reason: fmt.Sprintf("must be %s or %s", KindPlot, KindHouse)}
	}

	if strings.TrimSpace(in.Locality) == "" {
		return locality.Profile{}, &ValidationError{Field: "locality", Reason: "is required"}
	}
	profile, ok := locality.Lookup(in.Locality)
	if !ok {
		return locality.Profile{}, &ValidationError{Field: "locality", Reason: fmt.Sprintf("unknown locality %q", in.Locality)}
	}

	if !finite(in.PlotAreaCents) || in.PlotAreaCents <= 0 {
		return locality.Profile{}, &ValidationError{Field: "plotArea", Reason: "must be greater than zero"}
	}
	if !finite(in.BuiltAreaSqft) || in.BuiltAreaSqft < 0 {
		return locality.Profile{}, &ValidationError{Field: "builtArea", Reason: "must not be negative"}
	}
	if in.Bedrooms < 0 {
		return locality.Profile{}, &ValidationError{Field: "bedrooms", Reason: "must not be negative"}
	}
	if in.BeachDistanceKm != nil && (!finite(*in.BeachDistanceKm) || *in.BeachDistanceKm < 0) {
		return locality.Profile{}, &ValidationError{Field: "distanceToBeach", Reason: "must not be negative"}
	}
	return profile, nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// resolution is the outcome of the rate-finding states.
type resolution struct {
	rate     float64
	source   models.RateSource
	degraded bool
	estimate *OracleEstimate
	sources  []listing.Source
}

// Estimate values one property. Only an oracle failure with no baseline to
// fall back on ends without a result.
func (e *Engine) Estimate(ctx context.Context, in Input) (*Result, error) {
	start := time.Now()

	profile, err := Validate(in)
	if err != nil {
		metrics.EstimateTotal.WithLabelValues("invalid").Inc()
		return nil, err
	}
	in.Locality = profile.Name

	beach := profile.BeachDistanceKm
	if in.BeachDistanceKm != nil {
		beach = *in.BeachDistanceKm
	}

	current := e.readBaseline(ctx, profile.Name)

	res, err := e.resolveRate(ctx, in, profile, beach, current)
	if err != nil {
		metrics.EstimateTotal.WithLabelValues("unavailable").Inc()
		return nil, err
	}

	if res.source != models.SourceCache && res.rate > 0 {
		e.persist(ctx, profile.Name, res.rate, res.source)
	}

	result := e.assemble(in, profile, beach, current, res)

	metrics.EstimateTotal.WithLabelValues("ok").Inc()
	metrics.RateSourceTotal.WithLabelValues(string(res.source)).Inc()
	metrics.ConfidenceScore.Observe(result.Confidence.Score)
	metrics.EstimateDuration.WithLabelValues(string(res.source)).Observe(time.Since(start).Seconds())

	e.logger.Info("Estimate completed",
		zap.String("locality", profile.Name),
		zap.String("rate_source", string(res.source)),
		zap.Float64("rate", res.rate),
		zap.Float64("min", result.PriceRangeMin),
		zap.Float64("max", result.PriceRangeMax),
		zap.Bool("degraded", res.degraded),
	)
	return result, nil
}

func (e *Engine) readBaseline(ctx context.Context, name string) *models.LocalityBaseline {
	b, err := e.baselines.Get(ctx, name)
	if err != nil {
		e.logger.Warn("Baseline read failed, continuing without it",
			zap.String("locality", name), zap.Error(err))
		return nil
	}
	if b != nil && b.MedianRate <= 0 {
		return nil
	}
	return b
}

func (e *Engine) resolveRate(ctx context.Context, in Input, profile locality.Profile, beach float64, current *models.LocalityBaseline) (*resolution, error) {
	if rate, hit := e.cache.Check(ctx, profile.Name); hit && rate > 0 {
		metrics.CacheHits.Inc()
		return &resolution{rate: rate, source: models.SourceCache}, nil
	}
	metrics.CacheMisses.Inc()

	snippets := e.search(ctx, profile.Name)

	res := &resolution{sources: make([]listing.Source, 0, len(snippets))}
	for _, s := range snippets {
		res.sources = append(res.sources, listing.Source{Title: s.Title, URL: s.URL})
	}

	est, err := e.oracle.EstimateRate(ctx, OracleRequest{
		Input:           in,
		Tier:            profile.Tier,
		BeachDistanceKm: beach,
		Benchmarks:      e.cfg.Benchmarks,
		Snippets:        snippets,
	})
	if err == nil && (est == nil || est.LandRatePerCent <= 0) {
		err = fmt.Errorf("%w: no positive land rate", ErrOracle)
	}

	if err != nil {
		metrics.OracleFailures.WithLabelValues(oracleFailureReason(err)).Inc()
		if current == nil {
			return nil, fmt.Errorf("%w for %s: %w", ErrEstimationUnavailable, profile.Name, err)
		}
		e.logger.Warn("Oracle failed, falling back to baseline median",
			zap.String("locality", profile.Name),
			zap.Float64("median", current.MedianRate),
			zap.Error(err),
		)
		res.rate = current.MedianRate
		res.source = models.SourceBaselineFallback
		res.degraded = true
		return res, nil
	}

	res.estimate = est
	res.rate, res.source = e.guard(profile.Name, est.LandRatePerCent, current)
	return res, nil
}

func (e *Engine) search(ctx context.Context, name string) []web.SearchResult {
	if e.searcher == nil {
		return nil
	}
	results, err := e.searcher.Search(ctx, web.QueryFor(name), e.cfg.MaxSearchResults)
	if err != nil {
		e.logger.Warn("Search failed, asking oracle without evidence",
			zap.String("locality", name), zap.Error(err))
		return nil
	}
	results = web.Rank(results)
	if len(results) > e.cfg.MaxSearchResults {
		results = results[:e.cfg.MaxSearchResults]
	}
	return results
}

// guard keeps the oracle rate unless it strays more than GuardDeviation from
// the baseline median.
func (e *Engine) guard(name string, oracleRate float64, current *models.LocalityBaseline) (float64, models.RateSource) {
	if current == nil {
		return oracleRate, models.SourceOracle
	}

	deviation := math.Abs(oracleRate-current.MedianRate) / current.MedianRate
	if deviation > e.cfg.GuardDeviation {
		metrics.GuardRejections.Inc()
		e.logger.Warn("Oracle rate rejected by baseline guard",
			zap.String("locality", name),
			zap.Float64("oracle_rate", oracleRate),
			zap.Float64("median", current.MedianRate),
			zap.Float64("deviation", deviation),
		)
		return current.MedianRate, models.SourceBaselineGuard
	}
	return oracleRate, models.SourceOracle
}

func oracleFailureReason(err error) string {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case errors.Is(err, context.Canceled):
		return "canceled"
	case errors.Is(err, ErrOracle):
		return "oracle"
	default:
		return "transport"
	}
}

// persist records the accepted rate off the request path. The write outlives
// the request's cancellation but not PersistTimeout.
func (e *Engine) persist(ctx context.Context, name string, rate float64, source models.RateSource) {
	e.inflight.Add(1)
	go func() {
		defer e.inflight.Done()

		ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), e.cfg.PersistTimeout)
		defer cancel()

		if err := e.baselines.RecordObservation(ctx, name, rate, source); err != nil {
			e.persistFailed("observation", name, err)
		}
		if err := e.cache.Update(ctx, name, rate); err != nil {
			e.persistFailed("cache", name, err)
		}

		if e.refresher == nil || source != models.SourceOracle {
			return
		}
		_, err := e.refresher.Refresh(ctx, name)
		switch {
		case err == nil:
			metrics.BaselinesRefreshed.WithLabelValues("refreshed").Inc()
		case errors.Is(err, baseline.ErrOutsideBand), errors.Is(err, baseline.ErrNoObservations):
			metrics.BaselinesRefreshed.WithLabelValues("skipped").Inc()
		default:
			metrics.BaselinesRefreshed.WithLabelValues("failed").Inc()
			e.persistFailed("baseline", name, err)
		}
	}()
}

func (e *Engine) persistFailed(op, name string, err error) {
	metrics.PersistenceFailures.WithLabelValues(op).Inc()
	e.logger.Error("Background write failed",
		zap.String("op", op),
		zap.String("locality", name),
		zap.Error(fmt.Errorf("%w: %w", ErrPersistence, err)),
	)
}

// Wait blocks until background writes started so far have finished.
func (e *Engine) Wait() {
	e.inflight.Wait()
}

func (e *Engine) constructionRate(tier locality.Tier, est *OracleEstimate) float64 {
	if est != nil && est.ConstructionRatePerSqft > 0 {
		return est.ConstructionRatePerSqft
	}
	if tier == locality.TierPremium {
		return e.cfg.ConstructionPremium
	}
	return e.cfg.ConstructionStandard
}

func (e *Engine) assemble(in Input, profile locality.Profile, beach float64, current *models.LocalityBaseline, res *resolution) *Result {
	constructionRate := e.constructionRate(profile.Tier, res.estimate)

	p := Price(PricingInput{
		Kind:             in.Kind,
		PlotAreaCents:    in.PlotAreaCents,
		BuiltAreaSqft:    in.BuiltAreaSqft,
		AgeBand:          in.AgeBand,
		RoadAccess:       in.RoadAccess,
		LandRate:         res.rate,
		ConstructionRate: constructionRate,
	})

	result := &Result{
		PriceRangeMin:  p.Min,
		PriceRangeMax:  p.Max,
		Currency:       "INR",
		LandValue:      p.LandValue,
		StructureValue: p.StructureValue,
		Breakdown: Breakdown{
			LandRatePerCent:                  res.rate,
			LandRateMin:                      roundRate(res.rate * bandLow),
			LandRateMax:                      roundRate(res.rate * bandHigh),
			LandTotal:                        p.LandValue,
			StructureRatePerSqft:             constructionRate,
			StructureTotalBeforeDepreciation: p.StructureBeforeDepreciation,
			DepreciationPercentage:           geo.Round2(p.Depreciation * 100),
			FinalStructureValue:              p.StructureValue,
			RoadAccessAdjustment:             RoadAdjustmentLabel(p.RoadFactor),
		},
		Confidence:     baseline.ForBaseline(current),
		Suitability:    suitability.Evaluate(profile.Name, in.PlotAreaCents, beach),
		Markers:        listing.Parse(res.sources),
		Sources:        res.sources,
		Benchmarks:     e.compare(profile.Name, res.rate),
		Explanation:    defaultExplanation,
		Recommendation: defaultRecommendation,
		RateSource:     res.source,
		Degraded:       res.degraded,
	}
	if result.Sources == nil {
		result.Sources = []listing.Source{}
	}

	if est := res.estimate; est != nil {
		result.Explanation = est.Explanation
		result.Recommendation = est.Recommendation
		result.Investment = est.Investment
		result.GeoSpatial = est.GeoSpatial
	}
	return result
}

// compare places the locality rate among the benchmark rates, lowest first.
func (e *Engine) compare(name string, rate float64) []BenchmarkPoint {
	b := e.cfg.Benchmarks
	points := []BenchmarkPoint{
		{Name: "Suburb", Rate: b.Suburb},
		{Name: "City Average", Rate: b.CityAvg},
		{Name: "Tech Hub", Rate: b.TechHub},
		{Name: "Premium", Rate: b.Premium},
		{Name: name, Rate: rate, Current: true},
	}
	sort.SliceStable(points, func(i, j int) bool { return points[i].Rate < points[j].Rate })
	return points
}

func roundRate(v float64) float64 {
	return math.Round(v*10000) / 10000
}
