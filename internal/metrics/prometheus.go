package metrics

import (
	"sync"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	EstimateDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "tvm_realty_estimate_duration_seconds",
			Help:    "Estimate processing duration in seconds",
			Buckets: []float64{0.05, 0.1, 0.5, 1, 2, 5, 10, 30},
		},
		[]string{"source"},
	)

	EstimateTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tvm_realty_estimate_total",
			Help: "Total number of estimates by outcome",
		},
		[]string{"status"},
	)

	RateSourceTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tvm_realty_rate_source_total",
			Help: "Where the land rate of each estimate came from",
		},
		[]string{"source"},
	)

	CacheHits = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "tvm_realty_cache_hits_total",
			Help: "Total rate cache hits",
		},
	)

	CacheMisses = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "tvm_realty_cache_misses_total",
			Help: "Total rate cache misses",
		},
	)

	GuardRejections = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "tvm_realty_guard_rejections_total",
			Help: "Oracle rates replaced by the baseline median",
		},
	)

	OracleFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tvm_realty_oracle_failures_total",
			Help: "Oracle calls that produced no usable rate",
		},
		[]string{"reason"},
	)

	LLMTokensUsed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tvm_realty_llm_tokens_used",
			Help: "Total LLM tokens used",
		},
		[]string{"model", "type"},
	)

	ConfidenceScore = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "tvm_realty_confidence_score",
			Help:    "Confidence score attached to estimates",
			Buckets: []float64{10, 20, 30, 40, 50, 60, 70, 80, 90, 100},
		},
	)

	PersistenceFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tvm_realty_persistence_failures_total",
			Help: "Background writes that failed",
		},
		[]string{"op"},
	)

	BaselinesRefreshed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tvm_realty_baselines_refreshed_total",
			Help: "Baseline recomputations by outcome",
		},
		[]string{"outcome"},
	)

	initOnce sync.Once
)

func Init() {
	initOnce.Do(func() {
		prometheus.MustRegister(EstimateDuration)
		prometheus.MustRegister(EstimateTotal)
		prometheus.MustRegister(RateSourceTotal)
		prometheus.MustRegister(CacheHits)
		prometheus.MustRegister(CacheMisses)
		prometheus.MustRegister(GuardRejections)
		prometheus.MustRegister(OracleFailures)
		prometheus.MustRegister(LLMTokensUsed)
		prometheus.MustRegister(ConfidenceScore)
		prometheus.MustRegister(PersistenceFailures)
		prometheus.MustRegister(BaselinesRefreshed)
	})
}

// RecordTokens adds one completion's usage to the token counter.
func RecordTokens(model string, prompt, completion int) {
	LLMTokensUsed.WithLabelValues(model, "prompt").Add(float64(prompt))
	LLMTokensUsed.WithLabelValues(model, "completion").Add(float64(completion))
}

func MetricsHandler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.Handler())
}
