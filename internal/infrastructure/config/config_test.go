package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 300*time.Second, cfg.PlannerInterval)
	assert.Equal(t, 30*time.Second, cfg.ReplanInterval)
	assert.Equal(t, 14, cfg.SlotIntervalDays)
	assert.Equal(t, 3, cfg.DispatchWindowDays)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9100")
	t.Setenv("SLOT_INTERVAL_DAYS", "7")
	t.Setenv("DISPATCH_WINDOW_DAYS", "5")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "9100", cfg.Port)
	assert.Equal(t, 7, cfg.SlotIntervalDays)
	assert.Equal(t, 5, cfg.DispatchWindowDays)
}

func TestGetEnvAsInt_IgnoresMalformedValues(t *testing.T) {
	t.Setenv("SLOT_INTERVAL_DAYS", "not-a-number")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 14, cfg.SlotIntervalDays)
}
