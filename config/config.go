// Package config loads service configuration from file and environment.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"

	"loan-eligibility/logging"
	"loan-eligibility/service"
)

const EnvPrefix = "LOANELIG"

type Config struct {
	Server    ServerConfig      `mapstructure:"server"`
	Redis     RedisConfig       `mapstructure:"redis"`
	Postgres  PostgresConfig    `mapstructure:"postgres"`
	Valuation ValuationConfig   `mapstructure:"valuation"`
	Rates     RatesConfig       `mapstructure:"rates"`
	Log       logging.LogConfig `mapstructure:"log"`
}

type ServerConfig struct {
	Addr            string        `mapstructure:"addr"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	RateLimit       int           `mapstructure:"rate_limit"`
	RateWindow      time.Duration `mapstructure:"rate_window"`
}

// RedisConfig: an empty Addr selects the in-process cache.
type RedisConfig struct {
	Addr   string `mapstructure:"addr"`
	Prefix string `mapstructure:"prefix"`
}

// PostgresConfig: an empty DSN selects the seeded in-memory policy table.
type PostgresConfig struct {
	DSN      string `mapstructure:"dsn"`
	MaxConns int32  `mapstructure:"max_conns"`
}

type ValuationConfig struct {
	OpenAIAPIKey string        `mapstructure:"openai_api_key"`
	OpenAIModel  string        `mapstructure:"openai_model"`
	OpenAIURL    string        `mapstructure:"openai_url"`
	Timeout      time.Duration `mapstructure:"timeout"`
	CacheTTL     time.Duration `mapstructure:"cache_ttl"`
}

type RatesConfig struct {
	FallbackRatePercent  float64 `mapstructure:"fallback_rate_percent"`
	FallbackTenureMonths int     `mapstructure:"fallback_tenure_months"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.read_timeout", 15*time.Second)
	v.SetDefault("server.write_timeout", 45*time.Second)
	v.SetDefault("server.idle_timeout", 60*time.Second)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)
	v.SetDefault("server.rate_limit", 30)
	v.SetDefault("server.rate_window", time.Minute)

	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.prefix", "loanelig:")

	v.SetDefault("postgres.dsn", "")
	v.SetDefault("postgres.max_conns", 10)

	v.SetDefault("valuation.openai_api_key", "")
	v.SetDefault("valuation.openai_model", "gpt-4o-mini")
	v.SetDefault("valuation.openai_url", "")
	v.SetDefault("valuation.timeout", 15*time.Second)
	v.SetDefault("valuation.cache_ttl", 24*time.Hour)

	v.SetDefault("rates.fallback_rate_percent", 12.0)
	v.SetDefault("rates.fallback_tenure_months", 60)

	logDefaults := logging.DefaultLogConfig()
	v.SetDefault("log.level", logDefaults.Level)
	v.SetDefault("log.console", logDefaults.Console)
	v.SetDefault("log.json", logDefaults.JSON)
	v.SetDefault("log.file_path", logDefaults.FilePath)
	v.SetDefault("log.max_size", logDefaults.MaxSize)
	v.SetDefault("log.max_backups", logDefaults.MaxBackups)
	v.SetDefault("log.max_age", logDefaults.MaxAge)
}

// Load reads path, or ./config.yaml when path is empty, then applies
// LOANELIG_* environment overrides (LOANELIG_SERVER_ADDR, ...). A missing
// default config file is not an error.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Valuation.Timeout <= 0 || c.Valuation.Timeout > service.MaxEstimateTimeout {
		return fmt.Errorf("valuation.timeout must be in (0, %s]", service.MaxEstimateTimeout)
	}
	if c.Rates.FallbackTenureMonths <= 0 {
		return errors.New("rates.fallback_tenure_months must be positive")
	}
	if c.Rates.FallbackRatePercent < 0 {
		return errors.New("rates.fallback_rate_percent must not be negative")
	}
	if c.Server.RateLimit <= 0 || c.Server.RateWindow <= 0 {
		return errors.New("server.rate_limit and server.rate_window must be positive")
	}
	return nil
}

func (c *Config) RateCard() service.RateCard {
	return service.RateCard{
		FallbackAnnualRatePercent: decimal.NewFromFloat(c.Rates.FallbackRatePercent),
		FallbackTenureMonths:      c.Rates.FallbackTenureMonths,
	}
}

func (c *Config) ValuationConfig() service.ValuationConfig {
	vc := service.DefaultValuationConfig()
	vc.EstimateTimeout = c.Valuation.Timeout
	vc.CacheTTL = c.Valuation.CacheTTL
	return vc
}
