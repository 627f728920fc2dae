package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"

	"github.com/Kirankkt/Trivandrum-Realty-v2/internal/api/handlers"
	"github.com/Kirankkt/Trivandrum-Realty-v2/internal/baseline"
	redisCache "github.com/Kirankkt/Trivandrum-Realty-v2/internal/cache/redis"
	"github.com/Kirankkt/Trivandrum-Realty-v2/internal/llm"
	"github.com/Kirankkt/Trivandrum-Realty-v2/internal/locality"
	"github.com/Kirankkt/Trivandrum-Realty-v2/internal/metrics"
	"github.com/Kirankkt/Trivandrum-Realty-v2/internal/middleware/ratelimit"
	"github.com/Kirankkt/Trivandrum-Realty-v2/internal/middleware/security"
	"github.com/Kirankkt/Trivandrum-Realty-v2/internal/middleware/validation"
	"github.com/Kirankkt/Trivandrum-Realty-v2/internal/ratecache"
	"github.com/Kirankkt/Trivandrum-Realty-v2/internal/search/web"
	"github.com/Kirankkt/Trivandrum-Realty-v2/internal/storage/memory"
	"github.com/Kirankkt/Trivandrum-Realty-v2/internal/storage/postgres"
	"github.com/Kirankkt/Trivandrum-Realty-v2/internal/storage/sqlite"
	"github.com/Kirankkt/Trivandrum-Realty-v2/internal/valuation"
	"github.com/Kirankkt/Trivandrum-Realty-v2/pkg/config"
	appLogger "github.com/Kirankkt/Trivandrum-Realty-v2/pkg/logger"
	"github.com/Kirankkt/Trivandrum-Realty-v2/pkg/utils"
)

// store is what every storage driver provides.
type store interface {
	baseline.Port
	ratecache.Port
	io.Closer
}

type pinger interface {
	Ping(ctx context.Context) error
}

const searchMemoTTL = 6 * time.Hour

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	err = appLogger.Init(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.OutputPath)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer appLogger.Sync()

	if err := cfg.Validate(); err != nil {
		appLogger.Fatal("Invalid configuration", zap.Error(err))
	}

	appLogger.Info("Starting Trivandrum land valuation API")
	metrics.Init()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	st, err := openStore(ctx, cfg.Store)
	if err != nil {
		appLogger.Fatal("Failed to open store", zap.String("driver", cfg.Store.Driver), zap.Error(err))
	}
	defer st.Close()

	var cachePort ratecache.Port = st
	var memo web.Memo
	if cfg.Redis.Enabled {
		redisClient, err := redisCache.NewClient(cfg.Redis.Host, cfg.Redis.Port, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			appLogger.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		defer redisClient.Close()

		dropped, err := redisClient.SyncRateFingerprint(ctx, rateFingerprint(cfg.Valuation))
		if err != nil {
			appLogger.Warn("Failed to reconcile cached rates with valuation settings", zap.Error(err))
		} else if dropped > 0 {
			appLogger.Info("Dropped cached rates after valuation settings changed", zap.Int("dropped", dropped))
		}

		cachePort = redisClient
		memo = redisClient
	}

	completer, err := llm.New(llm.Config{
		Provider:    cfg.LLM.Provider,
		APIKey:      cfg.LLM.APIKey,
		Model:       cfg.LLM.Model,
		Temperature: cfg.LLM.Temperature,
		MaxTokens:   cfg.LLM.MaxTokens,
		Timeout:     time.Duration(cfg.LLM.TimeoutSec) * time.Second,
	})
	if err != nil {
		appLogger.Fatal("Failed to create LLM client", zap.Error(err))
	}

	benchmarks := locality.Benchmarks{
		Premium: cfg.Valuation.PremiumRate,
		TechHub: cfg.Valuation.TechHubRate,
		CityAvg: cfg.Valuation.CityAvgRate,
		Suburb:  cfg.Valuation.SuburbRate,
	}

	baselineStore := baseline.NewStore(st)
	rateCache := ratecache.New(cachePort, baselineStore, ratecache.WithLogger(appLogger.GetLogger()))
	aggregator := baseline.NewAggregator(st, baseline.AggregatorConfig{
		Window: cfg.Baseline.Window,
		Band:   baseline.BandFor(benchmarks, cfg.Valuation.SaneLowMultiple, cfg.Valuation.SaneHighMultiple),
		Logger: appLogger.GetLogger(),
	})

	opts := []valuation.Option{valuation.WithRefresher(aggregator)}
	if cfg.Search.Enabled {
		searchOpts := []web.Option{}
		if memo != nil {
			searchOpts = append(searchOpts, web.WithMemo(memo, searchMemoTTL))
		}
		searcher := web.NewClient(cfg.Search.SerpAPIKey, time.Duration(cfg.Search.TimeoutSec)*time.Second, searchOpts...)
		opts = append(opts, valuation.WithSearcher(searcher))
	}

	engine := valuation.NewEngine(valuation.Config{
		Benchmarks:           benchmarks,
		GuardDeviation:       cfg.Valuation.GuardDeviation,
		ConstructionStandard: cfg.Valuation.ConstructionStandard,
		ConstructionPremium:  cfg.Valuation.ConstructionPremium,
		PersistTimeout:       time.Duration(cfg.Valuation.PersistTimeoutSec) * time.Second,
		MaxSearchResults:     cfg.Search.MaxResults,
		Logger:               appLogger.GetLogger(),
	}, valuation.NewLLMOracle(completer), baselineStore, rateCache, opts...)

	if cfg.Baseline.AggregateIntervalMin > 0 {
		interval := time.Duration(cfg.Baseline.AggregateIntervalMin) * time.Minute
		go aggregator.Run(ctx, interval, func(sum baseline.RefreshSummary) {
			metrics.BaselinesRefreshed.WithLabelValues("refreshed").Add(float64(sum.Refreshed))
			metrics.BaselinesRefreshed.WithLabelValues("skipped").Add(float64(sum.Skipped))
			metrics.BaselinesRefreshed.WithLabelValues("failed").Add(float64(sum.Failed))
		})
	}

	app := fiber.New(fiber.Config{
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		BodyLimit:    cfg.Server.BodyLimit,
	})

	limiter := ratelimit.New(ratelimit.Config{
		MaxRequestsPerMinute: cfg.Server.RateLimitPerMinute,
		Logger:               appLogger.GetLogger(),
	})
	defer limiter.Stop()

	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: joinOrigins(cfg.Server.AllowedOrigins),
		AllowHeaders: "Origin, Content-Type, Accept, X-Request-ID",
		AllowMethods: "GET, POST, OPTIONS",
	}))
	app.Use(security.HeadersMiddleware(security.HeadersConfig{
		AllowedOrigins: cfg.Server.AllowedOrigins,
		IsDevelopment:  cfg.Server.Development,
	}))

	estimateHandler := handlers.NewEstimateHandler(engine)
	localityHandler := handlers.NewLocalityHandler()
	baselineHandler := handlers.NewBaselineHandler(baselineStore, aggregator)
	listingHandler := handlers.NewListingHandler()

	app.Get("/metrics", metrics.MetricsHandler())

	api := app.Group("/api/v1")
	api.Use(limiter.Middleware())
	api.Use(validation.Middleware(validation.Config{Logger: appLogger.GetLogger()}))

	api.Post("/estimate", estimateHandler.HandleEstimate)

	api.Get("/localities", localityHandler.List)
	api.Get("/localities/:name", localityHandler.Get)

	api.Get("/baselines/:locality", baselineHandler.Get)
	api.Post("/baselines/:locality/refresh", baselineHandler.Refresh)

	api.Post("/listings/parse", listingHandler.Parse)

	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Unix(),
		})
	})

	api.Get("/ready", func(c *fiber.Ctx) error {
		if p, ok := st.(pinger); ok {
			if err := p.Ping(c.UserContext()); err != nil {
				appLogger.Warn("Readiness check failed", zap.Error(err))
				return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
					"status": "unavailable",
				})
			}
		}
		return c.JSON(fiber.Map{
			"status": "ready",
		})
	})

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	appLogger.Info("Server starting", zap.String("address", addr), zap.String("store", cfg.Store.Driver))

	go func() {
		if err := app.Listen(addr); err != nil {
			appLogger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	appLogger.Info("Server shutting down gracefully...")
	if err := app.ShutdownWithTimeout(15 * time.Second); err != nil {
		appLogger.Error("Server shutdown failed", zap.Error(err))
	}
	cancel()
	engine.Wait()
	appLogger.Info("Server stopped")
}

func openStore(ctx context.Context, cfg config.StoreConfig) (store, error) {
	switch cfg.Driver {
	case "postgres":
		pg, err := postgres.New(ctx, cfg.PostgresURL, postgres.PoolConfig{
			MaxConns: cfg.MaxConns,
			MinConns: cfg.MinConns,
		})
		if err != nil {
			return nil, err
		}
		if err := pg.Migrate(ctx); err != nil {
			pg.Close()
			return nil, err
		}
		return pg, nil
	case "memory":
		return memory.NewStore(), nil
	default:
		client, err := sqlite.NewClient(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		if err := client.InitSchema(); err != nil {
			client.Close()
			return nil, err
		}
		return client, nil
	}
}

// rateFingerprint digests the settings a cached rate was resolved against.
func rateFingerprint(v config.ValuationConfig) string {
	return utils.HashString(fmt.Sprintf("%g|%g|%g|%g|%g",
		v.PremiumRate, v.TechHubRate, v.CityAvgRate, v.SuburbRate, v.GuardDeviation))
}

func joinOrigins(origins []string) string {
	if len(origins) == 0 {
		return "*"
	}
	return strings.Join(origins, ", ")
}
