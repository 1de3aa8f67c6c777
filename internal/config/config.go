package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config aggregates application configuration values.
type Config struct {
	Storage StorageConfig `yaml:"storage"`
	Rewards RewardsConfig `yaml:"rewards"`
	Logging LoggingConfig `yaml:"logging"`
}

// StorageConfig names the data files and governs audit-log rotation.
type StorageConfig struct {
	CustomersPath    string `yaml:"customers_path"`
	ProductsPath     string `yaml:"products_path"`
	TransactionsPath string `yaml:"transactions_path"`
	AuditLogPath     string `yaml:"audit_log_path"`
	AuditMaxSizeMB   int    `yaml:"audit_max_size_mb"`
	AuditMaxBackups  int    `yaml:"audit_max_backups"`
}

// RewardsConfig controls point accrual.
type RewardsConfig struct {
	PointsPerDollar float64 `yaml:"points_per_dollar"`
}

// LoggingConfig controls structured logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // text|json
}

const (
	defaultCustomersPath    = "customers.txt"
	defaultProductsPath     = "products.txt"
	defaultTransactionsPath = "transactions.dat"
	defaultAuditLogPath     = "transactions.log"
	defaultAuditMaxSizeMB   = 10
	defaultAuditMaxBackups  = 3
	defaultPointsPerDollar  = 10
	defaultLoggingLevel     = "info"
	defaultLoggingFormat    = "text"
)

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Storage: StorageConfig{
			CustomersPath:    defaultCustomersPath,
			ProductsPath:     defaultProductsPath,
			TransactionsPath: defaultTransactionsPath,
			AuditLogPath:     defaultAuditLogPath,
			AuditMaxSizeMB:   defaultAuditMaxSizeMB,
			AuditMaxBackups:  defaultAuditMaxBackups,
		},
		Rewards: RewardsConfig{
			PointsPerDollar: defaultPointsPerDollar,
		},
		Logging: LoggingConfig{
			Level:  defaultLoggingLevel,
			Format: defaultLoggingFormat,
		},
	}
}

// Load builds the configuration by layering an optional yaml file over the
// defaults, then environment variables over both. An empty path skips the
// file layer.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	cfg.Storage.CustomersPath = valueOrDefault("REWARDSYS_CUSTOMERS_PATH", cfg.Storage.CustomersPath)
	cfg.Storage.ProductsPath = valueOrDefault("REWARDSYS_PRODUCTS_PATH", cfg.Storage.ProductsPath)
	cfg.Storage.TransactionsPath = valueOrDefault("REWARDSYS_TRANSACTIONS_PATH", cfg.Storage.TransactionsPath)
	cfg.Storage.AuditLogPath = valueOrDefault("REWARDSYS_AUDIT_LOG_PATH", cfg.Storage.AuditLogPath)
	cfg.Logging.Level = valueOrDefault("REWARDSYS_LOG_LEVEL", cfg.Logging.Level)
	cfg.Logging.Format = valueOrDefault("REWARDSYS_LOG_FORMAT", cfg.Logging.Format)

	if v := os.Getenv("REWARDSYS_POINTS_PER_DOLLAR"); v != "" {
		ppd, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return Config{}, fmt.Errorf("invalid REWARDSYS_POINTS_PER_DOLLAR value %q: %w", v, err)
		}
		cfg.Rewards.PointsPerDollar = ppd
	}

	if cfg.Rewards.PointsPerDollar < 0 {
		return Config{}, fmt.Errorf("points per dollar %v must not be negative", cfg.Rewards.PointsPerDollar)
	}

	return cfg, nil
}

func valueOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
