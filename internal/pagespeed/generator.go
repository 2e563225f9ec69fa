// Package pagespeed generates daily Core Web Vitals samples for the
// storefront, mobile and desktop. Mobile ranges sit above desktop ranges on
// average, and a low-probability spike widens the mobile LCP/FID draws to
// simulate a degradation event (theme change, heavy app install).
package pagespeed

import (
	"math"
	"time"

	"github.com/marktivo/growth-os/internal/config"
	"github.com/marktivo/growth-os/internal/rng"
	"github.com/marktivo/growth-os/internal/traffic"
)

// DailyPageSpeed is one day of Core Web Vitals samples.
type DailyPageSpeed struct {
	Date       string  `json:"date"`
	LCPMobile  float64 `json:"lcp_mobile"`
	LCPDesktop float64 `json:"lcp_desktop"`
	FIDMobile  float64 `json:"fid_mobile"`
	FIDDesktop float64 `json:"fid_desktop"`
	CLSMobile  float64 `json:"cls_mobile"`
	CLSDesktop float64 `json:"cls_desktop"`
}

// Generate produces one row per day for a trailing window ending today (UTC).
func Generate(windowDays int, seed int64, cfg config.PageSpeedConfig) ([]DailyPageSpeed, error) {
	return GenerateFrom(time.Now().UTC(), windowDays, seed, cfg)
}

// GenerateFrom is Generate with an explicit window end date.
func GenerateFrom(end time.Time, windowDays int, seed int64, cfg config.PageSpeedConfig) ([]DailyPageSpeed, error) {
	if err := rng.ValidateWindow(windowDays); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	eng := rng.New(seed)
	rows := make([]DailyPageSpeed, 0, windowDays)

	for _, date := range traffic.Window(end, windowDays) {
		row := DailyPageSpeed{
			Date:       date.Format(traffic.DateFormat),
			LCPMobile:  round1(eng.Draw(cfg.LCPMobile)),
			LCPDesktop: round1(eng.Draw(cfg.LCPDesktop)),
			FIDMobile:  math.Round(eng.Draw(cfg.FIDMobile)),
			FIDDesktop: math.Round(eng.Draw(cfg.FIDDesktop)),
			CLSMobile:  round2(eng.Draw(cfg.CLSMobile)),
			CLSDesktop: round2(eng.Draw(cfg.CLSDesktop)),
		}

		if eng.Bool(cfg.SpikeProbability) {
			row.LCPMobile = round1(eng.Draw(cfg.SpikeLCPMobile))
			row.FIDMobile = math.Round(eng.Draw(cfg.SpikeFIDMobile))
		}

		rows = append(rows, row)
	}
	return rows, nil
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }
func round2(v float64) float64 { return math.Round(v*100) / 100 }
