package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Store    StoreConfig    `yaml:"store" mapstructure:"store"`
	Log      LogConfig      `yaml:"log" mapstructure:"log"`
	Scoring  ScoringConfig  `yaml:"scoring" mapstructure:"scoring"`
	Research ResearchConfig `yaml:"research" mapstructure:"research"`
	Batch    BatchConfig    `yaml:"batch" mapstructure:"batch"`
	Retry    RetryConfig    `yaml:"retry" mapstructure:"retry"`
	Breaker  BreakerConfig  `yaml:"breaker" mapstructure:"breaker"`
}

// StoreConfig configures the database backend.
type StoreConfig struct {
	Driver      string `yaml:"driver" mapstructure:"driver"`
	DatabaseURL string `yaml:"database_url" mapstructure:"database_url"`
	MaxConns    int32  `yaml:"max_conns" mapstructure:"max_conns"`
	MinConns    int32  `yaml:"min_conns" mapstructure:"min_conns"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// ScoringConfig overrides category weights and revenue thresholds. Weight
// keys are category keys ("owner_dependence") or labels. A zero threshold
// leaves the research-data value in place.
type ScoringConfig struct {
	Weights                map[string]float64 `yaml:"weights" mapstructure:"weights"`
	ConcentrationThreshold float64            `yaml:"concentration_threshold" mapstructure:"concentration_threshold"`
	RecurringThreshold     float64            `yaml:"recurring_threshold" mapstructure:"recurring_threshold"`
}

// ResearchConfig points at the benchmark data file.
type ResearchConfig struct {
	Path string `yaml:"path" mapstructure:"path"`
}

// BatchConfig configures batch scoring.
type BatchConfig struct {
	MaxConcurrency int     `yaml:"max_concurrency" mapstructure:"max_concurrency"`
	SaveRatePerSec float64 `yaml:"save_rate_per_sec" mapstructure:"save_rate_per_sec"`
}

// RetryConfig configures retries of store writes.
type RetryConfig struct {
	MaxAttempts      int     `yaml:"max_attempts" mapstructure:"max_attempts"`
	InitialBackoffMs int     `yaml:"initial_backoff_ms" mapstructure:"initial_backoff_ms"`
	MaxBackoffMs     int     `yaml:"max_backoff_ms" mapstructure:"max_backoff_ms"`
	Multiplier       float64 `yaml:"multiplier" mapstructure:"multiplier"`
	JitterFraction   float64 `yaml:"jitter_fraction" mapstructure:"jitter_fraction"`
}

// BreakerConfig configures the store circuit breaker used by batch runs.
type BreakerConfig struct {
	FailureThreshold int `yaml:"failure_threshold" mapstructure:"failure_threshold"`
	ResetTimeoutSecs int `yaml:"reset_timeout_secs" mapstructure:"reset_timeout_secs"`
}

// Load reads configuration from file and environment. A .env file in the
// working directory is loaded first; it never overrides variables already set.
func Load() (*Config, error) {
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(".env"); err != nil {
			return nil, eris.Wrap(err, "config: load .env")
		}
	}

	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("EXIT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("store.driver", "sqlite")
	v.SetDefault("store.database_url", "assessments.db")
	v.SetDefault("store.max_conns", 10)
	v.SetDefault("store.min_conns", 2)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("scoring.concentration_threshold", 0)
	v.SetDefault("scoring.recurring_threshold", 0)
	v.SetDefault("research.path", "")
	v.SetDefault("batch.max_concurrency", 8)
	v.SetDefault("batch.save_rate_per_sec", 50)
	v.SetDefault("retry.max_attempts", 3)
	v.SetDefault("retry.initial_backoff_ms", 200)
	v.SetDefault("retry.max_backoff_ms", 5000)
	v.SetDefault("retry.multiplier", 2.0)
	v.SetDefault("retry.jitter_fraction", 0.25)
	v.SetDefault("breaker.failure_threshold", 5)
	v.SetDefault("breaker.reset_timeout_secs", 30)

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// Validate checks the fields a command mode needs. Modes: "score" and
// "personalize" need nothing beyond logging; "store" needs a usable store;
// "batch" needs a store and positive batch limits.
func (c *Config) Validate(mode string) error {
	var errs []string

	switch mode {
	case "score", "personalize":
	case "store":
		errs = append(errs, c.storeErrors()...)
	case "batch":
		errs = append(errs, c.storeErrors()...)
		if c.Batch.MaxConcurrency <= 0 {
			errs = append(errs, "batch.max_concurrency must be > 0")
		}
		if c.Batch.SaveRatePerSec < 0 {
			errs = append(errs, "batch.save_rate_per_sec must be >= 0")
		}
	default:
		return eris.Errorf("config: unknown mode %q", mode)
	}

	if len(errs) > 0 {
		return eris.Errorf("config: %s", strings.Join(errs, "; "))
	}
	return nil
}

func (c *Config) storeErrors() []string {
	var errs []string
	switch c.Store.Driver {
	case "sqlite":
	case "postgres":
		if c.Store.DatabaseURL == "" {
			errs = append(errs, "store.database_url is required for postgres")
		}
	case "":
		errs = append(errs, "store.driver is required")
	default:
		errs = append(errs, "store.driver must be sqlite or postgres")
	}
	return errs
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
