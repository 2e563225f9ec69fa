package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marktivo/growth-os/internal/rng"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, int64(42), cfg.Generation.Seed)
	assert.Equal(t, 30, cfg.Generation.WindowDays)
	assert.Equal(t, "memory", cfg.Store.Type)
	assert.Len(t, cfg.Traffic.Sources, 6)
	assert.Equal(t, "Social Organic", cfg.Traffic.RemainderSource)
	assert.Len(t, cfg.Funnel.Devices, 3)
	assert.Len(t, cfg.Funnel.Sources, 7)
	assert.Len(t, cfg.Organic.Platforms, 4)
	assert.Equal(t, 30, cfg.Content.NumPosts)
	assert.Len(t, cfg.Campaign.Stages, 4)
	assert.Equal(t, 5, cfg.Campaign.Uncategorized.Rows)
	assert.Equal(t, 6, cfg.Cohort.Months)
	assert.Len(t, cfg.Cohort.Checkpoints, 4)
	assert.Equal(t, 180, cfg.Cohort.RetentionHorizonDays)
	assert.Equal(t, rng.IntRange{Min: 50, Max: 150}, cfg.RevOps.Leads)
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  port: 9090
generation:
  seed: 7
  window_days: 14
traffic:
  total_sessions: {min: 100, max: 200}
`), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, int64(7), cfg.Generation.Seed)
	assert.Equal(t, 14, cfg.Generation.WindowDays)
	assert.Equal(t, rng.IntRange{Min: 100, Max: 200}, cfg.Traffic.TotalSessions)

	// Untouched sections keep their defaults.
	assert.Equal(t, "localhost", cfg.Server.Host)
	assert.Equal(t, 1.25, cfg.Traffic.WeekendBoostFactor)
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server: [not a map"), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadFromEnvOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "7070")
	t.Setenv("GENERATION_SEED", "123")
	t.Setenv("GENERATION_WINDOW_DAYS", "7")
	t.Setenv("REDIS_ADDR", "localhost:6379")

	cfg, err := LoadFromEnv(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	assert.Equal(t, 7070, cfg.Server.Port)
	assert.Equal(t, int64(123), cfg.Generation.Seed)
	assert.Equal(t, 7, cfg.Generation.WindowDays)
	assert.Equal(t, "redis", cfg.Store.Type)
	assert.Equal(t, "localhost:6379", cfg.Store.RedisAddr)
}

func TestValidateRejectsInvertedRange(t *testing.T) {
	cfg := Default()
	cfg.Traffic.BotShare = rng.Range{Min: 0.5, Max: 0.1}

	err := cfg.Validate()
	require.Error(t, err)
	inputErr, ok := err.(*rng.InputError)
	require.True(t, ok)
	assert.Equal(t, "traffic.bot_share", inputErr.Field)
}

func TestValidateRejectsNegativeShare(t *testing.T) {
	cfg := Default()
	cfg.Traffic.MobileShare = rng.Range{Min: -0.2, Max: 0.3}

	err := cfg.Validate()
	require.Error(t, err)
	inputErr, ok := err.(*rng.InputError)
	require.True(t, ok)
	assert.Equal(t, "traffic.mobile_share", inputErr.Field)
	assert.Contains(t, inputErr.Error(), "outside [0, 1]")
}

func TestValidateRejectsShareAboveOne(t *testing.T) {
	cfg := Default()
	cfg.Funnel.Overall.Cart = rng.Range{Min: 0.3, Max: 1.2}

	err := cfg.Validate()
	require.Error(t, err)
	inputErr, ok := err.(*rng.InputError)
	require.True(t, ok)
	assert.Equal(t, "funnel.overall.cart", inputErr.Field)
}

func TestValidateReportsFirstViolationInDeclaredOrder(t *testing.T) {
	cfg := Default()
	// Both broken; bot_share is declared before desktop_share, so it is the
	// one reported on every run.
	cfg.Traffic.BotShare = rng.Range{Min: 0.5, Max: 0.1}
	cfg.Traffic.DesktopShare = rng.Range{Min: 0.9, Max: 0.2}

	for i := 0; i < 5; i++ {
		err := cfg.Validate()
		require.Error(t, err)
		assert.Equal(t, "traffic.bot_share", err.(*rng.InputError).Field)
	}
}

func TestValidateRejectsBadCampaignStage(t *testing.T) {
	cfg := Default()
	cfg.Campaign.Stages[1].BaseSpend = -1

	err := cfg.Validate()
	require.Error(t, err)
	assert.Equal(t, "campaign.stages.MOF.base_spend", err.(*rng.InputError).Field)
}

func TestValidateRejectsUnorderedCheckpoints(t *testing.T) {
	cfg := Default()
	cfg.Cohort.Checkpoints[2].Day = 10

	err := cfg.Validate()
	require.Error(t, err)
	assert.Equal(t, "cohort.checkpoints", err.(*rng.InputError).Field)
}

func TestValidateRejectsBadProbability(t *testing.T) {
	cfg := Default()
	cfg.PageSpeed.SpikeProbability = 1.5
	assert.Error(t, cfg.Validate())
}

func TestValidateRejectsBadWindow(t *testing.T) {
	cfg := Default()
	cfg.Generation.WindowDays = 0
	assert.Error(t, cfg.Validate())
}

func TestValidateRejectsEmptyPlatforms(t *testing.T) {
	cfg := Default()
	cfg.Organic.Platforms = nil
	assert.Error(t, cfg.Validate())
}

func TestValidateRejectsMissingRemainderSource(t *testing.T) {
	cfg := Default()
	cfg.Traffic.RemainderSource = ""
	assert.Error(t, cfg.Validate())
}
