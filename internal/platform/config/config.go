package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/joho/godotenv"
	"go-simpler.org/env"
)

type Config struct {
	AppEnv    string `env:"APP_ENV" default:"development"`
	Port      string `env:"PORT" default:"8000"`
	LogLevel  string `env:"LOG_LEVEL" default:"info"`
	LogFormat string `env:"LOG_FORMAT" default:"text"`

	// OracleURL selects the remote model server. Empty uses the built-in lexicon oracle.
	OracleURL     string        `env:"ORACLE_URL"`
	OracleTimeout time.Duration `env:"ORACLE_TIMEOUT" default:"10s"`

	// RedisURL enables the prediction cache. Empty disables it.
	RedisURL           string        `env:"REDIS_URL"`
	PredictionCacheTTL time.Duration `env:"PREDICTION_CACHE_TTL" default:"24h"`

	RateLimitPerSecond float64 `env:"RATE_LIMIT_PER_SECOND" default:"20"`
	RateLimitBurst     int     `env:"RATE_LIMIT_BURST" default:"40"`

	MaxComments    int `env:"MAX_COMMENTS" default:"5000"`
	MaxTrendMonths int `env:"MAX_TREND_MONTHS" default:"1200"`
	TermChartTopN  int `env:"TERM_CHART_TOP_N" default:"20"`
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found, using environment variables")
	}

	var cfg Config
	if err := env.Load(&cfg, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func validate(cfg *Config) error {
	if cfg.OracleURL != "" {
		if err := validateURL("ORACLE_URL", cfg.OracleURL, "http", "https"); err != nil {
			return err
		}
	}
	if cfg.RedisURL != "" {
		if err := validateURL("REDIS_URL", cfg.RedisURL, "redis", "rediss"); err != nil {
			return err
		}
	}

	positive := map[string]bool{
		"ORACLE_TIMEOUT":        cfg.OracleTimeout > 0,
		"PREDICTION_CACHE_TTL":  cfg.PredictionCacheTTL > 0,
		"RATE_LIMIT_PER_SECOND": cfg.RateLimitPerSecond > 0,
		"RATE_LIMIT_BURST":      cfg.RateLimitBurst > 0,
		"MAX_COMMENTS":          cfg.MaxComments > 0,
		"MAX_TREND_MONTHS":      cfg.MaxTrendMonths > 0,
		"TERM_CHART_TOP_N":      cfg.TermChartTopN > 0,
	}
	for name, ok := range positive {
		if !ok {
			return fmt.Errorf("%s must be positive", name)
		}
	}

	switch cfg.LogFormat {
	case "text", "json":
	default:
		return errors.New("LOG_FORMAT must be text or json")
	}

	return nil
}

func validateURL(name, raw string, schemes ...string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%s must be a valid URL: %w", name, err)
	}
	for _, s := range schemes {
		if u.Scheme == s && u.Host != "" {
			return nil
		}
	}
	return fmt.Errorf("%s must use scheme %v and name a host, got %q", name, schemes, raw)
}
