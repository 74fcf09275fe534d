package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	// Viper ignora variables vacías: equivalen a no definidas.
	for _, k := range []string{"APP_ENV", "HTTP_PORT", "ALERT_COOLDOWN", "ALERT_THRESHOLD", "BILLING_TAX_RATE", "STORAGE_DRIVER"} {
		t.Setenv(k, "")
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, 8080, cfg.HTTP.Port)
	assert.Equal(t, 90*time.Minute, cfg.Alerts.Cooldown)
	assert.Equal(t, 5, cfg.Alerts.Threshold)
	assert.True(t, cfg.Billing.TaxRate.IsZero())
	assert.Equal(t, "postgres", cfg.Storage.Driver)
}

func TestLoad_CooldownInvalido(t *testing.T) {
	t.Setenv("ALERT_COOLDOWN", "noventa")

	cfg, err := Load()
	require.Error(t, err)
	assert.Nil(t, cfg)
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("ALERT_COOLDOWN", "45m")
	t.Setenv("ALERT_THRESHOLD", "3")
	t.Setenv("BILLING_TAX_RATE", "0.19")
	t.Setenv("STORAGE_DRIVER", "memory")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.App.Env)
	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.Equal(t, "0.0.0.0:9090", cfg.HTTP.Addr())
	assert.Equal(t, 45*time.Minute, cfg.Alerts.Cooldown)
	assert.Equal(t, 3, cfg.Alerts.Threshold)
	assert.Equal(t, "0.19", cfg.Billing.TaxRate.String())
	assert.Equal(t, "memory", cfg.Storage.Driver)
}

func TestDBConfig_ConnectionString(t *testing.T) {
	c := DBConfig{Host: "db", Port: 5432, User: "app", Password: "p@ss:word", DBName: "tienda", SSLMode: "disable"}
	assert.Equal(t, "postgres://app:p%40ss%3Aword@db:5432/tienda?sslmode=disable", c.ConnectionString())

	c.DatabaseURL = "postgres://other"
	assert.Equal(t, "postgres://other", c.ConnectionString())
}
