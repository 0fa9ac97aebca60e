package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	cfg := Load()

	assert.Equal(t, "fueltrack-api", cfg.App.Name)
	assert.Equal(t, "8080", cfg.App.Port)
	assert.Equal(t, 24*time.Hour, cfg.JWT.ExpiryHours)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, 5, cfg.Queue.Concurrency)
	assert.Equal(t, "@every 15m", cfg.Queue.ReminderSweepSpec)
	assert.Equal(t, 5*time.Minute, cfg.Analytics.CacheTTL)
	assert.Equal(t, 10*time.Second, cfg.Geocoding.Timeout)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoadReadsEnvironment(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	t.Setenv("APP_PORT", "9090")
	t.Setenv("ANALYTICS_CACHE_TTL_SECONDS", "60")
	t.Setenv("QUEUE_CONCURRENCY", "12")
	t.Setenv("LOG_LEVEL", "debug")

	cfg := Load()

	assert.Equal(t, "9090", cfg.App.Port)
	assert.Equal(t, time.Minute, cfg.Analytics.CacheTTL)
	assert.Equal(t, 12, cfg.Queue.Concurrency)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestDSN(t *testing.T) {
	db := DatabaseConfig{Host: "db", Port: "5432", Name: "fuel", User: "u", Password: "p", SSLMode: "disable", Timezone: "UTC"}
	assert.Equal(t, "host=db user=u password=p dbname=fuel port=5432 sslmode=disable TimeZone=UTC", db.DSN())
}
