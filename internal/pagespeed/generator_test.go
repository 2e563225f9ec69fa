package pagespeed

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marktivo/growth-os/internal/config"
	"github.com/marktivo/growth-os/internal/rng"
)

var testEnd = time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)

func TestGenerateWindow(t *testing.T) {
	rows, err := GenerateFrom(testEnd, 30, 42, config.Default().PageSpeed)
	require.NoError(t, err)
	require.Len(t, rows, 30)

	assert.Equal(t, "2025-06-01", rows[0].Date)
	assert.Equal(t, "2025-06-30", rows[29].Date)
}

func TestGenerateBounds(t *testing.T) {
	cfg := config.Default().PageSpeed
	rows, err := GenerateFrom(testEnd, 90, 5, cfg)
	require.NoError(t, err)

	for _, r := range rows {
		// Mobile LCP and FID may exceed the base range on spike days, but
		// never the spike ceiling.
		assert.GreaterOrEqual(t, r.LCPMobile, cfg.LCPMobile.Min)
		assert.LessOrEqual(t, r.LCPMobile, cfg.SpikeLCPMobile.Max)
		assert.GreaterOrEqual(t, r.FIDMobile, cfg.FIDMobile.Min)
		assert.LessOrEqual(t, r.FIDMobile, cfg.SpikeFIDMobile.Max)

		assert.GreaterOrEqual(t, r.LCPDesktop, cfg.LCPDesktop.Min)
		assert.LessOrEqual(t, r.LCPDesktop, cfg.LCPDesktop.Max)
		assert.GreaterOrEqual(t, r.FIDDesktop, cfg.FIDDesktop.Min)
		assert.LessOrEqual(t, r.FIDDesktop, cfg.FIDDesktop.Max)
		assert.GreaterOrEqual(t, r.CLSMobile, cfg.CLSMobile.Min)
		assert.LessOrEqual(t, r.CLSMobile, cfg.CLSMobile.Max)
		assert.GreaterOrEqual(t, r.CLSDesktop, cfg.CLSDesktop.Min)
		assert.LessOrEqual(t, r.CLSDesktop, cfg.CLSDesktop.Max)
	}
}

func TestGenerateSpikesOccur(t *testing.T) {
	cfg := config.Default().PageSpeed
	rows, err := GenerateFrom(testEnd, 365, 5, cfg)
	require.NoError(t, err)

	// With p=0.07 over a year, at least one spike day lands above the base
	// mobile LCP ceiling.
	spikes := 0
	for _, r := range rows {
		if r.LCPMobile > cfg.LCPMobile.Max {
			spikes++
		}
	}
	assert.Greater(t, spikes, 0)
}

func TestGenerateDeterministic(t *testing.T) {
	cfg := config.Default().PageSpeed

	a, err := GenerateFrom(testEnd, 30, 42, cfg)
	require.NoError(t, err)
	b, err := GenerateFrom(testEnd, 30, 42, cfg)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestGenerateRejectsBadConfig(t *testing.T) {
	cfg := config.Default().PageSpeed
	cfg.CLSMobile = rng.Range{Min: 0.3, Max: 0.1}

	_, err := GenerateFrom(testEnd, 30, 1, cfg)
	require.Error(t, err)
	inputErr, ok := err.(*rng.InputError)
	require.True(t, ok)
	assert.Equal(t, "page_speed.cls_mobile", inputErr.Field)
}
