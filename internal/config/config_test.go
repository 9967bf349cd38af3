package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Environment)
	assert.Equal(t, 14, cfg.Lending.LoanPeriodDays)
	assert.Equal(t, 15, cfg.Lending.RecentActivityLimit)
	assert.Equal(t, "0 * * * *", cfg.Lending.OverdueSweepCron)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("LOAN_PERIOD_DAYS", "21")
	t.Setenv("APP_PORT", "9090")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 21, cfg.Lending.LoanPeriodDays)
	assert.Equal(t, "9090", cfg.App.Port)
}

func TestValidateProduction(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("DB_PASSWORD", "s3cret")

	// Default JWT secret is rejected in production.
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")

	t.Setenv("JWT_SECRET", "real-secret")
	_, err = Load()
	assert.NoError(t, err)
}

func TestValidateLendingValues(t *testing.T) {
	t.Setenv("LOAN_PERIOD_DAYS", "0")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "LOAN_PERIOD_DAYS")
}
