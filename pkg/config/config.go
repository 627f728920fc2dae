package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// ErrConfiguration marks missing or contradictory settings. It is fatal at
// startup and never retried.
var ErrConfiguration = errors.New("configuration error")

type Config struct {
	Server    ServerConfig
	Store     StoreConfig
	Redis     RedisConfig
	LLM       LLMConfig
	Search    SearchConfig
	Valuation ValuationConfig
	Baseline  BaselineConfig
	Logging   LoggingConfig
}

type ServerConfig struct {
	Host               string
	Port               int
	ReadTimeout        int
	WriteTimeout       int
	BodyLimit          int
	AllowedOrigins     []string
	RateLimitPerMinute int
	Development        bool
}

type StoreConfig struct {
	Driver      string
	SQLitePath  string
	PostgresURL string
	MaxConns    int32
	MinConns    int32
}

type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     int
	Password string
	DB       int
}

type LLMConfig struct {
	Provider    string
	Model       string
	APIKey      string
	Temperature float32
	MaxTokens   int
	TimeoutSec  int
}

type SearchConfig struct {
	Enabled    bool
	SerpAPIKey string
	MaxResults int
	TimeoutSec int
}

// ValuationConfig holds the reference constants fed to the oracle prompt and
// the deterministic pricing model. Rates are lakhs per cent, construction
// costs are rupees per sqft.
type ValuationConfig struct {
	PremiumRate          float64
	TechHubRate          float64
	CityAvgRate          float64
	SuburbRate           float64
	GuardDeviation       float64
	ConstructionStandard float64
	ConstructionPremium  float64
	SaneLowMultiple      float64
	SaneHighMultiple     float64
	PersistTimeoutSec    int
}

type BaselineConfig struct {
	AggregateIntervalMin int
	Window               int
}

type LoggingConfig struct {
	Level      string
	Format     string
	OutputPath string
}

func Load() (*Config, error) {
	// A missing .env is the normal case in deployed environments.
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/tvm-realty")

	v.SetEnvPrefix("TVM_REALTY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &config, nil
}

// Validate reports settings the service cannot start without.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.LLM.APIKey) == "" {
		return fmt.Errorf("%w: llm.apiKey is required", ErrConfiguration)
	}

	switch c.LLM.Provider {
	case "openai", "anthropic":
	default:
		return fmt.Errorf("%w: unknown llm.provider %q", ErrConfiguration, c.LLM.Provider)
	}

	switch c.Store.Driver {
	case "sqlite":
		if c.Store.SQLitePath == "" {
			return fmt.Errorf("%w: store.sqlitePath is required", ErrConfiguration)
		}
	case "postgres":
		if c.Store.PostgresURL == "" {
			return fmt.Errorf("%w: store.postgresURL is required", ErrConfiguration)
		}
	case "memory":
	default:
		return fmt.Errorf("%w: unknown store.driver %q", ErrConfiguration, c.Store.Driver)
	}

	if c.Valuation.SuburbRate <= 0 || c.Valuation.PremiumRate < c.Valuation.SuburbRate {
		return fmt.Errorf("%w: benchmark rates must be positive and ordered", ErrConfiguration)
	}

	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.readTimeout", 30)
	v.SetDefault("server.writeTimeout", 60)
	v.SetDefault("server.bodyLimit", 1048576)
	v.SetDefault("server.allowedOrigins", []string{"*"})
	v.SetDefault("server.rateLimitPerMinute", 30)
	v.SetDefault("server.development", false)

	v.SetDefault("store.driver", "sqlite")
	v.SetDefault("store.sqlitePath", "./data/tvm-realty.db")
	v.SetDefault("store.postgresURL", "")
	v.SetDefault("store.maxConns", 10)
	v.SetDefault("store.minConns", 2)

	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("llm.provider", "openai")
	v.SetDefault("llm.model", "gpt-4o-mini")
	v.SetDefault("llm.apiKey", "")
	v.SetDefault("llm.temperature", 0.1)
	v.SetDefault("llm.maxTokens", 1500)
	v.SetDefault("llm.timeoutSec", 30)

	v.SetDefault("search.enabled", true)
	v.SetDefault("search.serpApiKey", "")
	v.SetDefault("search.maxResults", 10)
	v.SetDefault("search.timeoutSec", 10)

	v.SetDefault("valuation.premiumRate", 28.0)
	v.SetDefault("valuation.techHubRate", 15.0)
	v.SetDefault("valuation.cityAvgRate", 10.0)
	v.SetDefault("valuation.suburbRate", 6.0)
	v.SetDefault("valuation.guardDeviation", 0.30)
	v.SetDefault("valuation.constructionStandard", 2800.0)
	v.SetDefault("valuation.constructionPremium", 3500.0)
	v.SetDefault("valuation.saneLowMultiple", 0.25)
	v.SetDefault("valuation.saneHighMultiple", 3.0)
	v.SetDefault("valuation.persistTimeoutSec", 10)

	v.SetDefault("baseline.aggregateIntervalMin", 60)
	v.SetDefault("baseline.window", 30)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("logging.outputPath", "stdout")
}
