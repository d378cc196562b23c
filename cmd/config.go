package cmd

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
)

// Storage backends.
const (
	StoreBackendPostgres = "postgres"
	StoreBackendAPI      = "api"
)

// Coordination backends.
const (
	CoordinationMemory = "memory"
	CoordinationRedis  = "redis"
)

type Config struct {
	HTTPPort string
	Env      string
	LogLevel string

	StoreBackend string
	DBHost       string
	DBPort       string
	DBUser       string
	DBPassword   string
	DBName       string
	DBSslMode    string

	OrderAPIBaseURL string
	OrderAPITimeout time.Duration

	CoordinationBackend string
	RedisAddr           string
	InFlightTTL         time.Duration
	PendingRejectionTTL time.Duration

	KafkaBrokers []string
	KafkaTopic   string

	JanitorSchedule string
	RateLimitRPS    float64
	BulkConcurrency int
}

// LoadConfig reads CONFIG_FILE, or .env when it is unset, into the process
// environment and builds the Config from it. A missing .env is not an error;
// a CONFIG_FILE that cannot be read is.
func LoadConfig() (Config, error) {
	if configFile := os.Getenv("CONFIG_FILE"); configFile != "" {
		if err := godotenv.Load(configFile); err != nil {
			return Config{}, fmt.Errorf("load config file %q: %w", configFile, err)
		}
	} else {
		_ = godotenv.Load()
	}

	return Config{
		HTTPPort: getEnv("HTTP_PORT", "8080"),
		Env:      getEnv("ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		StoreBackend: strings.ToLower(getEnv("STORE_BACKEND", StoreBackendPostgres)),
		DBHost:       getEnv("DB_HOST", "localhost"),
		DBPort:       getEnv("DB_PORT", "5432"),
		DBUser:       getEnv("DB_USER", ""),
		DBPassword:   getEnv("DB_PASSWORD", ""),
		DBName:       getEnv("DB_NAME", ""),
		DBSslMode:    getEnv("DB_SSLMODE", "disable"),

		OrderAPIBaseURL: getEnv("ORDER_API_BASE_URL", ""),
		OrderAPITimeout: getDurationEnv("ORDER_API_TIMEOUT", 10*time.Second),

		CoordinationBackend: strings.ToLower(getEnv("COORDINATION_BACKEND", CoordinationMemory)),
		RedisAddr:           getEnv("REDIS_ADDR", ""),
		InFlightTTL:         getDurationEnv("IN_FLIGHT_TTL", 30*time.Second),
		PendingRejectionTTL: getDurationEnv("PENDING_REJECTION_TTL", 30*time.Minute),

		KafkaBrokers: getListEnv("KAFKA_BROKERS"),
		KafkaTopic:   getEnv("KAFKA_TOPIC", "fulfillment.order-events"),

		JanitorSchedule: getEnv("JANITOR_SCHEDULE", "@every 1m"),
		RateLimitRPS:    getFloatEnv("RATE_LIMIT_RPS", 20),
		BulkConcurrency: getIntEnv("BULK_CONCURRENCY", 8),
	}, nil
}

// Validate returns every problem found, joined.
func (c Config) Validate() error {
	var problems []error

	if port, err := strconv.Atoi(c.HTTPPort); err != nil || port <= 0 || port > 65535 {
		problems = append(problems, fmt.Errorf("HTTP_PORT %q is not a valid port", c.HTTPPort))
	}

	switch c.StoreBackend {
	case StoreBackendPostgres:
		if c.DBUser == "" {
			problems = append(problems, errors.New("DB_USER is required for the postgres backend"))
		}
		if c.DBName == "" {
			problems = append(problems, errors.New("DB_NAME is required for the postgres backend"))
		}
	case StoreBackendAPI:
		if u, err := url.Parse(c.OrderAPIBaseURL); err != nil || u.Scheme == "" || u.Host == "" {
			problems = append(problems, fmt.Errorf("ORDER_API_BASE_URL %q must be an absolute URL", c.OrderAPIBaseURL))
		}
		if c.OrderAPITimeout <= 0 {
			problems = append(problems, errors.New("ORDER_API_TIMEOUT must be positive"))
		}
	default:
		problems = append(problems, fmt.Errorf("STORE_BACKEND %q is not one of postgres, api", c.StoreBackend))
	}

	switch c.CoordinationBackend {
	case CoordinationMemory:
		if _, err := cron.ParseStandard(c.JanitorSchedule); err != nil {
			problems = append(problems, fmt.Errorf("JANITOR_SCHEDULE %q: %w", c.JanitorSchedule, err))
		}
	case CoordinationRedis:
		if c.RedisAddr == "" {
			problems = append(problems, errors.New("REDIS_ADDR is required for the redis coordination backend"))
		}
	default:
		problems = append(problems, fmt.Errorf("COORDINATION_BACKEND %q is not one of memory, redis", c.CoordinationBackend))
	}

	if c.InFlightTTL <= 0 {
		problems = append(problems, errors.New("IN_FLIGHT_TTL must be positive"))
	}
	if c.PendingRejectionTTL <= 0 {
		problems = append(problems, errors.New("PENDING_REJECTION_TTL must be positive"))
	}
	if len(c.KafkaBrokers) > 0 && c.KafkaTopic == "" {
		problems = append(problems, errors.New("KAFKA_TOPIC is required when KAFKA_BROKERS is set"))
	}
	if c.BulkConcurrency <= 0 {
		problems = append(problems, errors.New("BULK_CONCURRENCY must be positive"))
	}

	return errors.Join(problems...)
}

// DSN builds the postgres connection string.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getIntEnv(key string, fallback int) int {
	if value, err := strconv.Atoi(getEnv(key, "")); err == nil {
		return value
	}
	return fallback
}

func getFloatEnv(key string, fallback float64) float64 {
	if value, err := strconv.ParseFloat(getEnv(key, ""), 64); err == nil {
		return value
	}
	return fallback
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	if value, err := time.ParseDuration(getEnv(key, "")); err == nil {
		return value
	}
	return fallback
}

func getListEnv(key string) []string {
	var list []string
	for _, part := range strings.Split(getEnv(key, ""), ",") {
		if part = strings.TrimSpace(part); part != "" {
			list = append(list, part)
		}
	}
	return list
}
