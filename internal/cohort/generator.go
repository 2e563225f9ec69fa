// Package cohort generates monthly customer cohorts with lifetime value
// measured at fixed post-acquisition checkpoints. Retention starts at 1.0
// on day zero and decays linearly toward the configured horizon, scaled by
// a drawn base rate.
package cohort

import (
	"math"
	"time"

	"github.com/marktivo/growth-os/internal/config"
	"github.com/marktivo/growth-os/internal/rng"
)

// Row is one cohort-checkpoint measurement. Customers repeats on every row
// of a cohort; LTV, retention, and second-order rate vary per checkpoint.
type Row struct {
	Cohort          string  `json:"cohort"`
	Customers       int     `json:"customers"`
	Day             int     `json:"day"`
	LTV             float64 `json:"ltv"`
	Retention       float64 `json:"retention"`
	SecondOrderRate float64 `json:"second_order_rate"`
}

// Generate produces the trailing cohorts ending in the current month (UTC),
// ordered by cohort month then ascending checkpoint day.
func Generate(seed int64, cfg config.CohortConfig) ([]Row, error) {
	return GenerateFrom(time.Now().UTC(), seed, cfg)
}

// GenerateFrom is Generate with an explicit end date; the latest cohort is
// the month containing end.
func GenerateFrom(end time.Time, seed int64, cfg config.CohortConfig) ([]Row, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	eng := rng.New(seed)
	rows := make([]Row, 0, cfg.Months*len(cfg.Checkpoints))

	first := time.Date(end.Year(), end.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -(cfg.Months - 1), 0)
	for m := 0; m < cfg.Months; m++ {
		month := first.AddDate(0, m, 0)
		customers := eng.DrawInt(cfg.Customers)

		for _, cp := range cfg.Checkpoints {
			retention := 1.0
			secondOrder := 0.0
			if cp.Day > 0 {
				decay := 1 - float64(cp.Day)/float64(cfg.RetentionHorizonDays)
				retention = round3(eng.Draw(cfg.Retention) * decay)
				secondOrder = round3(eng.Draw(cfg.SecondOrderRate))
			}

			rows = append(rows, Row{
				Cohort:          month.Format("2006-01"),
				Customers:       customers,
				Day:             cp.Day,
				LTV:             round2(eng.Draw(cp.LTV)),
				Retention:       retention,
				SecondOrderRate: secondOrder,
			})
		}
	}
	return rows, nil
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }
func round3(v float64) float64 { return math.Round(v*1000) / 1000 }
