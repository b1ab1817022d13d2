package config

import (
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	Log       LogConfig
	Assistant AssistantConfig
	Ticker    TickerConfig
	Fixtures  FixturesConfig
	Cache     CacheConfig
	Charts    ChartsConfig
}

type ServerConfig struct {
	Port      string
	Mode      string
	Transport string
	BasePath  string
}

type LogConfig struct {
	Level string
}

type AssistantConfig struct {
	APIKey          string
	Model           string
	Temperature     float32
	OfflineLatency  time.Duration
	Timeout         time.Duration
	BreakerFailures uint32
	BreakerCooldown time.Duration
}

type TickerConfig struct {
	Interval           time.Duration
	ProductionSeed     int64
	RevenueSeed        float64
	MaxProductionStep  int
	MaxRevenueStep     float64
	RevenueProbability float64
}

type FixturesConfig struct {
	Path   string
	URL    string
	APIKey string
}

type CacheConfig struct {
	Enabled         bool
	RedisURL        string
	RedisHost       string
	RedisPort       string
	RedisPassword   string
	RedisDB         int
	ChartTTLSeconds int
}

type ChartsConfig struct {
	AssetsHost string
}

// Load reads .env (when present) and the process environment.
func Load(envFiles ...string) (*Config, error) {
	_ = godotenv.Load(envFiles...)
	v := viper.New()
	v.AutomaticEnv()
	return FromViper(v)
}

// FromViper builds the configuration from an existing viper instance.
func FromViper(v *viper.Viper) (*Config, error) {
	setDefaults(v)

	apiKey := v.GetString("API_KEY")
	if strings.TrimSpace(apiKey) == "" {
		apiKey = v.GetString("GEMINI_API_KEY")
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:      v.GetString("SERVER_PORT"),
			Mode:      v.GetString("SERVER_MODE"),
			Transport: strings.ToLower(v.GetString("SERVER_TRANSPORT")),
			BasePath:  v.GetString("SERVER_BASE_PATH"),
		},
		Log: LogConfig{
			Level: v.GetString("LOG_LEVEL"),
		},
		Assistant: AssistantConfig{
			APIKey:          apiKey,
			Model:           v.GetString("ASSISTANT_MODEL"),
			Temperature:     float32(v.GetFloat64("ASSISTANT_TEMPERATURE")),
			OfflineLatency:  time.Duration(v.GetInt("ASSISTANT_OFFLINE_LATENCY_MS")) * time.Millisecond,
			Timeout:         time.Duration(v.GetInt("ASSISTANT_TIMEOUT_SECONDS")) * time.Second,
			BreakerFailures: v.GetUint32("ASSISTANT_BREAKER_FAILURES"),
			BreakerCooldown: time.Duration(v.GetInt("ASSISTANT_BREAKER_COOLDOWN_SECONDS")) * time.Second,
		},
		Ticker: TickerConfig{
			Interval:           time.Duration(v.GetInt("TICKER_INTERVAL_MS")) * time.Millisecond,
			ProductionSeed:     v.GetInt64("TICKER_PRODUCTION_SEED"),
			RevenueSeed:        v.GetFloat64("TICKER_REVENUE_SEED"),
			MaxProductionStep:  v.GetInt("TICKER_MAX_PRODUCTION_STEP"),
			MaxRevenueStep:     v.GetFloat64("TICKER_MAX_REVENUE_STEP"),
			RevenueProbability: v.GetFloat64("TICKER_REVENUE_PROBABILITY"),
		},
		Fixtures: FixturesConfig{
			Path:   v.GetString("FIXTURES_PATH"),
			URL:    v.GetString("FIXTURES_URL"),
			APIKey: v.GetString("FIXTURES_API_KEY"),
		},
		Cache: CacheConfig{
			Enabled:         v.GetBool("CACHE_ENABLED"),
			RedisURL:        v.GetString("REDIS_URL"),
			RedisHost:       v.GetString("REDIS_HOST"),
			RedisPort:       v.GetString("REDIS_PORT"),
			RedisPassword:   v.GetString("REDIS_PASSWORD"),
			RedisDB:         v.GetInt("REDIS_DB"),
			ChartTTLSeconds: v.GetInt("CACHE_CHART_TTL_SECONDS"),
		},
		Charts: ChartsConfig{
			AssetsHost: v.GetString("ECHARTS_ASSETS_HOST"),
		},
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("SERVER_MODE", "debug")
	v.SetDefault("SERVER_TRANSPORT", "fiber")
	v.SetDefault("SERVER_BASE_PATH", "/admin")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("API_KEY", "")
	v.SetDefault("GEMINI_API_KEY", "")
	v.SetDefault("ASSISTANT_MODEL", "gemini-3-flash-preview")
	v.SetDefault("ASSISTANT_TEMPERATURE", 0.7)
	v.SetDefault("ASSISTANT_OFFLINE_LATENCY_MS", 800)
	v.SetDefault("ASSISTANT_TIMEOUT_SECONDS", 30)
	v.SetDefault("ASSISTANT_BREAKER_FAILURES", 5)
	v.SetDefault("ASSISTANT_BREAKER_COOLDOWN_SECONDS", 30)
	v.SetDefault("TICKER_INTERVAL_MS", 2000)
	v.SetDefault("TICKER_PRODUCTION_SEED", 1204520)
	v.SetDefault("TICKER_REVENUE_SEED", 450000.0)
	v.SetDefault("TICKER_MAX_PRODUCTION_STEP", 4)
	v.SetDefault("TICKER_MAX_REVENUE_STEP", 50.0)
	v.SetDefault("TICKER_REVENUE_PROBABILITY", 0.3)
	v.SetDefault("FIXTURES_PATH", "")
	v.SetDefault("FIXTURES_URL", "")
	v.SetDefault("FIXTURES_API_KEY", "")
	v.SetDefault("CACHE_ENABLED", false)
	v.SetDefault("REDIS_URL", "")
	v.SetDefault("REDIS_HOST", "127.0.0.1")
	v.SetDefault("REDIS_PORT", "6379")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("CACHE_CHART_TTL_SECONDS", 60)
	v.SetDefault("ECHARTS_ASSETS_HOST", "")
}

// Validate rejects values the services cannot run with.
func (c *Config) Validate() error {
	switch c.Server.Transport {
	case "fiber", "http":
	default:
		return fmt.Errorf("config: unsupported SERVER_TRANSPORT %q", c.Server.Transport)
	}
	if c.Ticker.Interval <= 0 {
		return fmt.Errorf("config: TICKER_INTERVAL_MS must be positive")
	}
	if c.Ticker.RevenueProbability < 0 || c.Ticker.RevenueProbability > 1 {
		return fmt.Errorf("config: TICKER_REVENUE_PROBABILITY must be within 0-1")
	}
	if c.Assistant.Temperature < 0 || c.Assistant.Temperature > 2 {
		return fmt.Errorf("config: ASSISTANT_TEMPERATURE must be within 0-2")
	}
	return nil
}

// Addr is the listen address for the HTTP server.
func (s ServerConfig) Addr() string {
	return ":" + s.Port
}

// ChartTTL is the chart render cache lifetime.
func (c CacheConfig) ChartTTL() time.Duration {
	ttl := time.Duration(c.ChartTTLSeconds) * time.Second
	if ttl <= 0 {
		ttl = time.Minute
	}
	return ttl
}

// RedisOptions prefers REDIS_URL and falls back to host/port settings.
func (c CacheConfig) RedisOptions() (*redis.Options, error) {
	if c.RedisURL != "" {
		opt, err := redis.ParseURL(c.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("config: invalid redis url: %w", err)
		}
		return opt, nil
	}
	host := c.RedisHost
	if host == "" {
		host = "127.0.0.1"
	}
	port := c.RedisPort
	if port == "" {
		port = "6379"
	}
	return &redis.Options{
		Addr:     net.JoinHostPort(host, port),
		Password: c.RedisPassword,
		DB:       c.RedisDB,
	}, nil
}
