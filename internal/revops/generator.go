// Package revops generates the daily lead-pipeline table: leads qualified
// by the AI assistant, handed to humans, and closed. Each stage is a drawn
// share of the previous one, so counts narrow monotonically down the chain,
// and the leads dropped between AI qualification and human contact surface
// as the fumble rate.
package revops

import (
	"math"
	"time"

	"github.com/marktivo/growth-os/internal/config"
	"github.com/marktivo/growth-os/internal/metrics"
	"github.com/marktivo/growth-os/internal/rng"
	"github.com/marktivo/growth-os/internal/traffic"
)

// DailyPipeline is one day of lead flow. Response times are in seconds; the
// human figure is drawn in hours and converted.
type DailyPipeline struct {
	Date string `json:"date"`

	Leads                int     `json:"leads"`
	AIQualified          int     `json:"ai_qualified"`
	AIResponseSeconds    float64 `json:"ai_response_seconds"`
	HumanContacted       int     `json:"human_contacted"`
	HumanResponseSeconds float64 `json:"human_response_seconds"`
	DealsWon             int     `json:"deals_won"`

	AvgDealSize float64 `json:"avg_deal_size"`
	Revenue     float64 `json:"revenue"`

	FumbledLeads         int     `json:"fumbled_leads"`
	FumbleRate           float64 `json:"fumble_rate"`
	PipelineVelocityDays float64 `json:"pipeline_velocity_days"`
}

// Generate produces one row per day for a trailing window ending today (UTC).
func Generate(windowDays int, seed int64, cfg config.RevOpsConfig) ([]DailyPipeline, error) {
	return GenerateFrom(time.Now().UTC(), windowDays, seed, cfg)
}

// GenerateFrom is Generate with an explicit window end date.
func GenerateFrom(end time.Time, windowDays int, seed int64, cfg config.RevOpsConfig) ([]DailyPipeline, error) {
	if err := rng.ValidateWindow(windowDays); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	eng := rng.New(seed)
	rows := make([]DailyPipeline, 0, windowDays)

	for _, date := range traffic.Window(end, windowDays) {
		leads := eng.DrawInt(cfg.Leads)
		qualified := int(float64(leads) * eng.Draw(cfg.AIQualifiedShare))
		contacted := int(float64(qualified) * eng.Draw(cfg.HumanContactShare))
		deals := int(float64(contacted) * eng.Draw(cfg.WinShare))
		fumbled := qualified - contacted
		dealSize := round2(eng.Draw(cfg.DealSize))

		rows = append(rows, DailyPipeline{
			Date:                 date.Format(traffic.DateFormat),
			Leads:                leads,
			AIQualified:          qualified,
			AIResponseSeconds:    round1(eng.Draw(cfg.AIResponseSeconds)),
			HumanContacted:       contacted,
			HumanResponseSeconds: round1(eng.Draw(cfg.HumanResponseHours) * 3600),
			DealsWon:             deals,
			AvgDealSize:          dealSize,
			Revenue:              round2(float64(deals) * dealSize),
			FumbledLeads:         fumbled,
			FumbleRate:           metrics.FumbleRate(fumbled, qualified),
			PipelineVelocityDays: round1(eng.Draw(cfg.PipelineVelocityDays)),
		})
	}
	return rows, nil
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }
func round2(v float64) float64 { return math.Round(v*100) / 100 }
