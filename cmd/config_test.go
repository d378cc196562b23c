package cmd_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"fulfillment/cmd"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() cmd.Config {
	return cmd.Config{
		HTTPPort:            "8080",
		StoreBackend:        cmd.StoreBackendPostgres,
		DBUser:              "fulfillment",
		DBName:              "fulfillment",
		CoordinationBackend: cmd.CoordinationMemory,
		InFlightTTL:         30 * time.Second,
		PendingRejectionTTL: 30 * time.Minute,
		JanitorSchedule:     "@every 1m",
		BulkConcurrency:     8,
	}
}

func TestLoadConfig(t *testing.T) {
	t.Run("should read the config file and apply fallbacks", func(t *testing.T) {
		file := filepath.Join(t.TempDir(), "test.env")
		content := "HTTP_PORT=9090\nSTORE_BACKEND=API\nORDER_API_BASE_URL=http://orders.local\n" +
			"ORDER_API_TIMEOUT=3s\nKAFKA_BROKERS= k1:9092, k2:9092 ,\nRATE_LIMIT_RPS=2.5\nBULK_CONCURRENCY=5\n"
		require.NoError(t, os.WriteFile(file, []byte(content), 0o600))

		for _, key := range []string{"HTTP_PORT", "STORE_BACKEND", "ORDER_API_BASE_URL", "ORDER_API_TIMEOUT", "KAFKA_BROKERS", "RATE_LIMIT_RPS", "IN_FLIGHT_TTL", "BULK_CONCURRENCY"} {
			t.Setenv(key, "")
			require.NoError(t, os.Unsetenv(key))
		}
		t.Setenv("CONFIG_FILE", file)
		t.Setenv("BULK_CONCURRENCY", "3")

		cfg, err := cmd.LoadConfig()

		require.NoError(t, err)
		assert.Equal(t, "9090", cfg.HTTPPort)
		assert.Equal(t, cmd.StoreBackendAPI, cfg.StoreBackend)
		assert.Equal(t, 3*time.Second, cfg.OrderAPITimeout)
		assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.KafkaBrokers)
		assert.InDelta(t, 2.5, cfg.RateLimitRPS, 0.001)
		assert.Equal(t, 3, cfg.BulkConcurrency, "the environment wins over the file")
		assert.Equal(t, 30*time.Second, cfg.InFlightTTL)
		assert.NoError(t, cfg.Validate())
	})

	t.Run("should fail on an unreadable config file", func(t *testing.T) {
		t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "missing.env"))

		_, err := cmd.LoadConfig()

		require.Error(t, err)
	})
}

func TestConfig_Validate(t *testing.T) {
	t.Run("should accept a complete postgres config", func(t *testing.T) {
		require.NoError(t, validConfig().Validate())
	})

	t.Run("should report every problem at once", func(t *testing.T) {
		cfg := validConfig()
		cfg.HTTPPort = "http"
		cfg.DBName = ""
		cfg.InFlightTTL = 0

		err := cfg.Validate()

		require.Error(t, err)
		assert.Contains(t, err.Error(), "HTTP_PORT")
		assert.Contains(t, err.Error(), "DB_NAME")
		assert.Contains(t, err.Error(), "IN_FLIGHT_TTL")
	})

	t.Run("should require the order api url for the api backend", func(t *testing.T) {
		cfg := validConfig()
		cfg.StoreBackend = cmd.StoreBackendAPI
		cfg.OrderAPITimeout = time.Second
		cfg.OrderAPIBaseURL = "orders.local"

		require.ErrorContains(t, cfg.Validate(), "ORDER_API_BASE_URL")
	})

	t.Run("should require a redis address for the redis backend", func(t *testing.T) {
		cfg := validConfig()
		cfg.CoordinationBackend = cmd.CoordinationRedis

		require.ErrorContains(t, cfg.Validate(), "REDIS_ADDR")
	})

	t.Run("should refuse unknown backends and schedules", func(t *testing.T) {
		cfg := validConfig()
		cfg.StoreBackend = "sqlite"
		cfg.JanitorSchedule = "sometimes"

		err := cfg.Validate()

		require.ErrorContains(t, err, "STORE_BACKEND")
		require.ErrorContains(t, err, "JANITOR_SCHEDULE")
	})

	t.Run("should build the postgres dsn", func(t *testing.T) {
		cfg := validConfig()
		cfg.DBHost, cfg.DBPort, cfg.DBPassword, cfg.DBSslMode = "db", "5432", "secret", "disable"

		assert.Equal(t, "host=db port=5432 user=fulfillment password=secret dbname=fulfillment sslmode=disable", cfg.DSN())
	})
}
