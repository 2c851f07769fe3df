package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const ServiceName = "auto-parts-inventory"

type Config struct {
	Env         string
	Port        string
	LogLevel    string
	DatabaseURL string

	// Empty address disables caching
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	CacheTTL      time.Duration

	// Empty secret leaves the API open with no operator identity
	JWTSecret string

	// Empty broker list disables event publishing
	KafkaBrokers []string

	LowStockSweepInterval time.Duration
	LedgerAuditInterval   time.Duration
}

// Load reads configuration from the environment, loading .env first when present
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Env:                   getEnv("APP_ENV", "development"),
		Port:                  getEnv("PORT", "8080"),
		LogLevel:              getEnv("LOG_LEVEL", "info"),
		DatabaseURL:           os.Getenv("DATABASE_URL"),
		RedisAddr:             os.Getenv("REDIS_ADDR"),
		RedisPassword:         os.Getenv("REDIS_PASSWORD"),
		RedisDB:               getEnvInt("REDIS_DB", 0),
		CacheTTL:              getEnvDuration("CACHE_TTL", 10*time.Minute),
		JWTSecret:             os.Getenv("JWT_SECRET"),
		KafkaBrokers:          splitList(os.Getenv("KAFKA_BROKERS")),
		LowStockSweepInterval: getEnvDuration("LOW_STOCK_SWEEP_INTERVAL", 30*time.Minute),
		LedgerAuditInterval:   getEnvDuration("LEDGER_AUDIT_INTERVAL", 6*time.Hour),
	}

	if cfg.DatabaseURL == "" {
		return nil, errors.New("DATABASE_URL environment variable is required")
	}

	return cfg, nil
}

func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil && parsed > 0 {
			return parsed
		}
	}
	return fallback
}

func splitList(value string) []string {
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
