package dataset

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marktivo/growth-os/internal/config"
	"github.com/marktivo/growth-os/internal/rng"
)

var testEnd = time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)

func TestGenerateFromProducesValidBatch(t *testing.T) {
	cfg := config.Default()
	b, err := GenerateFrom(testEnd, 42, cfg)
	require.NoError(t, err)

	assert.NotEmpty(t, b.ID)
	_, err = uuid.Parse(b.ID)
	assert.NoError(t, err)

	assert.Equal(t, int64(42), b.Seed)
	assert.Equal(t, 30, b.WindowDays)
	assert.Len(t, b.Traffic, 30)
	assert.Len(t, b.Funnel, 30)
	assert.Len(t, b.DeviceFunnels, 30*len(cfg.Funnel.Devices))
	assert.Len(t, b.SourceFunnels, 30*len(cfg.Funnel.Sources))
	assert.Len(t, b.PageSpeed, 30)
	assert.Len(t, b.Organic, 30*len(cfg.Organic.Platforms))
	assert.Len(t, b.Content, cfg.Content.NumPosts)
	assert.Len(t, b.Campaigns, 30*len(cfg.Campaign.Stages)+cfg.Campaign.Uncategorized.Rows)
	assert.Len(t, b.Cohorts, cfg.Cohort.Months*len(cfg.Cohort.Checkpoints))
	assert.Len(t, b.RevOps, 30)

	assert.NoError(t, b.Validate())
}

// tables strips the per-run envelope so two batches can be compared on the
// deterministic parts alone.
func tables(t *testing.T, b *Batch) []byte {
	t.Helper()
	data, err := json.Marshal(map[string]interface{}{
		"traffic":        b.Traffic,
		"funnel":         b.Funnel,
		"device_funnels": b.DeviceFunnels,
		"source_funnels": b.SourceFunnels,
		"page_speed":     b.PageSpeed,
		"organic":        b.Organic,
		"content":        b.Content,
		"campaigns":      b.Campaigns,
		"cohorts":        b.Cohorts,
		"revops":         b.RevOps,
	})
	require.NoError(t, err)
	return data
}

func TestGenerateFromDeterministic(t *testing.T) {
	cfg := config.Default()

	a, err := GenerateFrom(testEnd, 42, cfg)
	require.NoError(t, err)
	b, err := GenerateFrom(testEnd, 42, cfg)
	require.NoError(t, err)

	assert.Equal(t, tables(t, a), tables(t, b))
	assert.NotEqual(t, a.ID, b.ID)
}

func TestGenerateFromSeedChangesEveryTable(t *testing.T) {
	cfg := config.Default()

	a, err := GenerateFrom(testEnd, 1, cfg)
	require.NoError(t, err)
	b, err := GenerateFrom(testEnd, 2, cfg)
	require.NoError(t, err)

	assert.NotEqual(t, a.Traffic, b.Traffic)
	assert.NotEqual(t, a.Funnel, b.Funnel)
	assert.NotEqual(t, a.PageSpeed, b.PageSpeed)
	assert.NotEqual(t, a.Organic, b.Organic)
	assert.NotEqual(t, a.Content, b.Content)
	assert.NotEqual(t, a.Campaigns, b.Campaigns)
	assert.NotEqual(t, a.Cohorts, b.Cohorts)
	assert.NotEqual(t, a.RevOps, b.RevOps)
}

func TestGenerateFromRejectsInvalidConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Traffic.BotShare = rng.Range{Min: 0.9, Max: 0.1}

	_, err := GenerateFrom(testEnd, 1, cfg)
	require.Error(t, err)
	inputErr, ok := err.(*rng.InputError)
	require.True(t, ok)
	assert.Equal(t, "traffic.bot_share", inputErr.Field)
}

func TestGenerateFromRejectsBadWindow(t *testing.T) {
	cfg := config.Default()
	cfg.Generation.WindowDays = -1

	_, err := GenerateFrom(testEnd, 1, cfg)
	assert.Error(t, err)
}

func TestBatchJSONRoundTrip(t *testing.T) {
	cfg := config.Default()
	b, err := GenerateFrom(testEnd, 42, cfg)
	require.NoError(t, err)

	data, err := json.Marshal(b)
	require.NoError(t, err)

	var decoded Batch
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, b.ID, decoded.ID)
	assert.Equal(t, b.Traffic, decoded.Traffic)
	assert.NoError(t, decoded.Validate())
}
