package traffic

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marktivo/growth-os/internal/config"
	"github.com/marktivo/growth-os/internal/rng"
)

var testEnd = time.Date(2025, 6, 30, 12, 34, 56, 0, time.UTC)

func TestGenerateWindow(t *testing.T) {
	rows, err := GenerateFrom(testEnd, 30, 42, config.Default().Traffic)
	require.NoError(t, err)
	require.Len(t, rows, 30)

	assert.Equal(t, "2025-06-01", rows[0].Date)
	assert.Equal(t, "2025-06-30", rows[29].Date)
	for i := 1; i < len(rows); i++ {
		assert.Greater(t, rows[i].Date, rows[i-1].Date)
	}
}

func TestGenerateSumsReconcile(t *testing.T) {
	cfg := config.Default().Traffic
	rows, err := GenerateFrom(testEnd, 60, 7, cfg)
	require.NoError(t, err)

	for _, r := range rows {
		assert.Equal(t, r.TotalSessions, r.BotSessions+r.HumanSessions, r.Date)
		assert.Equal(t, r.BotSessions, r.BotSub1s+r.BotKnownIPs+r.BotNoJS, r.Date)
		assert.Equal(t, r.HumanSessions, r.MobileSessions+r.DesktopSessions+r.TabletSessions, r.Date)

		sourceSum := 0
		for _, n := range r.SourceSessions {
			assert.GreaterOrEqual(t, n, 0)
			sourceSum += n
		}
		assert.Equal(t, r.HumanSessions, sourceSum, r.Date)
		assert.Len(t, r.SourceSessions, len(cfg.Sources)+1)
	}
}

func TestGenerateSessionBounds(t *testing.T) {
	cfg := config.Default().Traffic
	rows, err := GenerateFrom(testEnd, 60, 11, cfg)
	require.NoError(t, err)

	for _, r := range rows {
		date, err := time.Parse(DateFormat, r.Date)
		require.NoError(t, err)

		max := float64(cfg.TotalSessions.Max)
		if rng.IsWeekend(date) {
			max *= cfg.WeekendBoostFactor
		}
		assert.GreaterOrEqual(t, r.TotalSessions, cfg.TotalSessions.Min)
		assert.LessOrEqual(t, float64(r.TotalSessions), max)

		// Bot share stays inside the configured band (allowing for the
		// integer floor).
		assert.GreaterOrEqual(t, r.BotPct, cfg.BotShare.Min*100-1)
		assert.LessOrEqual(t, r.BotPct, cfg.BotShare.Max*100)
	}
}

func TestGenerateDeterministic(t *testing.T) {
	cfg := config.Default().Traffic

	a, err := GenerateFrom(testEnd, 30, 42, cfg)
	require.NoError(t, err)
	b, err := GenerateFrom(testEnd, 30, 42, cfg)
	require.NoError(t, err)

	ja, err := json.Marshal(a)
	require.NoError(t, err)
	jb, err := json.Marshal(b)
	require.NoError(t, err)
	assert.Equal(t, ja, jb)
}

func TestGenerateSeedChangesOutput(t *testing.T) {
	cfg := config.Default().Traffic

	a, err := GenerateFrom(testEnd, 30, 1, cfg)
	require.NoError(t, err)
	b, err := GenerateFrom(testEnd, 30, 2, cfg)
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}

func TestGenerateDegenerateRanges(t *testing.T) {
	// Collapse every range to a point: generation still succeeds and the
	// drawn values are the fixed points.
	cfg := config.Default().Traffic
	cfg.TotalSessions = rng.IntRange{Min: 4000, Max: 4000}
	cfg.BotShare = rng.Range{Min: 0.25, Max: 0.25}

	// A Tuesday, so no weekend boost applies.
	end := time.Date(2025, 6, 24, 0, 0, 0, 0, time.UTC)
	rows, err := GenerateFrom(end, 1, 1, cfg)
	require.NoError(t, err)
	require.Len(t, rows, 1)

	assert.Equal(t, 4000, rows[0].TotalSessions)
	assert.Equal(t, 1000, rows[0].BotSessions)
	assert.Equal(t, 3000, rows[0].HumanSessions)
	assert.Equal(t, 25.0, rows[0].BotPct)
}

func TestGenerateTabletAbsorbsZeroRemainder(t *testing.T) {
	// When mobile and desktop shares consume the whole human count exactly,
	// the tablet remainder is zero and the device sum still reconciles.
	cfg := config.Default().Traffic
	cfg.TotalSessions = rng.IntRange{Min: 4000, Max: 4000}
	cfg.BotShare = rng.Range{Min: 0.25, Max: 0.25}
	cfg.MobileShare = rng.Range{Min: 0.75, Max: 0.75}
	cfg.DesktopShare = rng.Range{Min: 0.25, Max: 0.25}

	end := time.Date(2025, 6, 24, 0, 0, 0, 0, time.UTC)
	rows, err := GenerateFrom(end, 1, 1, cfg)
	require.NoError(t, err)
	require.Len(t, rows, 1)

	r := rows[0]
	assert.Equal(t, 3000, r.HumanSessions)
	assert.Equal(t, 2250, r.MobileSessions)
	assert.Equal(t, 750, r.DesktopSessions)
	assert.Zero(t, r.TabletSessions)
}

func TestGenerateRejectsBadWindow(t *testing.T) {
	_, err := GenerateFrom(testEnd, 0, 1, config.Default().Traffic)
	require.Error(t, err)
	_, ok := err.(*rng.InputError)
	assert.True(t, ok)
}

func TestGenerateRejectsBadConfig(t *testing.T) {
	cfg := config.Default().Traffic
	cfg.LCPMobile = rng.Range{Min: 5, Max: 2}

	_, err := GenerateFrom(testEnd, 30, 1, cfg)
	require.Error(t, err)
	inputErr, ok := err.(*rng.InputError)
	require.True(t, ok)
	assert.Equal(t, "traffic.lcp_mobile", inputErr.Field)
}

func TestSourceNames(t *testing.T) {
	names := SourceNames(config.Default().Traffic)
	require.Len(t, names, 7)
	assert.Equal(t, "Google Ads", names[0])
	assert.Equal(t, "Social Organic", names[6])
}

func TestWindow(t *testing.T) {
	dates := Window(testEnd, 7)
	require.Len(t, dates, 7)
	assert.Equal(t, time.Date(2025, 6, 24, 0, 0, 0, 0, time.UTC), dates[0])
	assert.Equal(t, time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC), dates[6])
}
