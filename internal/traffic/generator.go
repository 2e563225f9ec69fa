// Package traffic generates the daily storefront traffic table: raw
// sessions, bot filtering, device and source splits, and page-load samples.
// Every split uses the shared partition primitive so the breakdowns always
// reconcile exactly with their totals.
package traffic

import (
	"math"
	"time"

	"github.com/marktivo/growth-os/internal/config"
	"github.com/marktivo/growth-os/internal/metrics"
	"github.com/marktivo/growth-os/internal/rng"
)

// DateFormat is the wire format for every date key in the generated tables.
const DateFormat = "2006-01-02"

// DailyTraffic is one day of storefront traffic, bots included.
type DailyTraffic struct {
	Date          string `json:"date"`
	TotalSessions int    `json:"total_sessions"`
	BotSessions   int    `json:"bot_sessions"`
	HumanSessions int    `json:"human_sessions"`

	BotSub1s    int     `json:"bot_sub_1s"`
	BotKnownIPs int     `json:"bot_known_ips"`
	BotNoJS     int     `json:"bot_no_js"`
	BotPct      float64 `json:"bot_pct"`

	MobileSessions  int `json:"mobile_sessions"`
	DesktopSessions int `json:"desktop_sessions"`
	TabletSessions  int `json:"tablet_sessions"`

	LCPMobile  float64 `json:"lcp_mobile"`
	LCPDesktop float64 `json:"lcp_desktop"`

	// SourceSessions is keyed by channel name. SourceNames gives the
	// configured channel order when a stable ordering is needed.
	SourceSessions map[string]int `json:"source_sessions"`
}

// SourceNames returns the configured channel names in draw order, the
// remainder channel last.
func SourceNames(cfg config.TrafficConfig) []string {
	names := make([]string, 0, len(cfg.Sources)+1)
	for _, s := range cfg.Sources {
		names = append(names, s.Name)
	}
	return append(names, cfg.RemainderSource)
}

// Generate produces one DailyTraffic row per day for a trailing window
// ending today (UTC). Rows are ordered by ascending date.
func Generate(windowDays int, seed int64, cfg config.TrafficConfig) ([]DailyTraffic, error) {
	return GenerateFrom(time.Now().UTC(), windowDays, seed, cfg)
}

// GenerateFrom is Generate with an explicit window end date; the server uses
// today, tests inject a fixed date so runs are byte-identical.
func GenerateFrom(end time.Time, windowDays int, seed int64, cfg config.TrafficConfig) ([]DailyTraffic, error) {
	if err := rng.ValidateWindow(windowDays); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	eng := rng.New(seed)
	rows := make([]DailyTraffic, 0, windowDays)

	for _, date := range Window(end, windowDays) {
		rows = append(rows, generateDay(eng, date, cfg))
	}
	return rows, nil
}

func generateDay(eng *rng.Engine, date time.Time, cfg config.TrafficConfig) DailyTraffic {
	base := eng.DrawInt(cfg.TotalSessions)
	total := int(eng.WeekendBoost(float64(base), date, cfg.WeekendBoostFactor))

	// Bot filtering: the drawn share sets the bot count, but the stored
	// percentage is recomputed from the final integers so it always matches
	// the counts exactly.
	botShare := eng.Draw(cfg.BotShare)
	bot := int(float64(total) * botShare)
	human := total - bot

	botParts := rng.Partition(bot, []float64{eng.Draw(cfg.BotSub1s), eng.Draw(cfg.BotKnownIPs)})
	deviceParts := rng.Partition(human, []float64{eng.Draw(cfg.MobileShare), eng.Draw(cfg.DesktopShare)})

	shares := make([]float64, len(cfg.Sources))
	for i, src := range cfg.Sources {
		shares[i] = eng.Draw(src.Share)
	}
	sourceParts := rng.Partition(human, rng.Normalize(shares, cfg.SourceShareTotal))

	sources := make(map[string]int, len(sourceParts))
	for i, name := range SourceNames(cfg) {
		sources[name] = sourceParts[i]
	}

	lcpMobile := round1(eng.Draw(cfg.LCPMobile))
	lcpDesktop := round1(eng.Draw(cfg.LCPDesktop))
	if eng.Bool(cfg.LCPSpikeProbability) {
		lcpMobile = round1(eng.Draw(cfg.LCPSpikeMobile))
	}

	return DailyTraffic{
		Date:            date.Format(DateFormat),
		TotalSessions:   total,
		BotSessions:     bot,
		HumanSessions:   human,
		BotSub1s:        botParts[0],
		BotKnownIPs:     botParts[1],
		BotNoJS:         botParts[2],
		BotPct:          metrics.BotShare(bot, total),
		MobileSessions:  deviceParts[0],
		DesktopSessions: deviceParts[1],
		TabletSessions:  deviceParts[2],
		LCPMobile:       lcpMobile,
		LCPDesktop:      lcpDesktop,
		SourceSessions:  sources,
	}
}

// Window returns windowDays consecutive dates ending at end, ascending,
// truncated to midnight UTC.
func Window(end time.Time, windowDays int) []time.Time {
	end = time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, time.UTC)
	dates := make([]time.Time, windowDays)
	for i := 0; i < windowDays; i++ {
		dates[i] = end.AddDate(0, 0, i-windowDays+1)
	}
	return dates
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
