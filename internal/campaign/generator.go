// Package campaign generates the paid-acquisition table: daily spend and
// order volume per funnel stage (TOF, MOF, BOF, RET) with the full set of
// derived ad metrics. Spend trends upward across the window and pulls back
// on weekends, when budgets pace down. A handful of unattributed rows is
// mixed in with zeroed ratios, mirroring the attribution gaps a real ads
// account shows.
package campaign

import (
	"math"
	"sort"
	"time"

	"github.com/marktivo/growth-os/internal/config"
	"github.com/marktivo/growth-os/internal/metrics"
	"github.com/marktivo/growth-os/internal/rng"
	"github.com/marktivo/growth-os/internal/traffic"
)

// StageUncategorized labels spend rows that could not be attributed to a
// funnel stage. Their derived ratios are always zero.
const StageUncategorized = "UNCATEGORIZED"

// DailyCampaign is one stage-day of paid acquisition.
type DailyCampaign struct {
	Date  string `json:"date"`
	Stage string `json:"stage"`

	Spend       float64 `json:"spend"`
	Impressions int     `json:"impressions"`
	Clicks      int     `json:"clicks"`
	Orders      int     `json:"orders"`
	AOV         float64 `json:"aov"`
	Revenue     float64 `json:"revenue"`

	CTR            float64 `json:"ctr"`
	CPM            float64 `json:"cpm"`
	CPC            float64 `json:"cpc"`
	CPA            float64 `json:"cpa"`
	ROAS           float64 `json:"roas"`
	Contribution   float64 `json:"contribution"`
	ConversionRate float64 `json:"conversion_rate"`
}

// Generate produces one row per stage per day for a trailing window ending
// today (UTC), followed by the unattributed rows.
func Generate(windowDays int, seed int64, cfg config.CampaignConfig) ([]DailyCampaign, error) {
	return GenerateFrom(time.Now().UTC(), windowDays, seed, cfg)
}

// GenerateFrom is Generate with an explicit window end date.
func GenerateFrom(end time.Time, windowDays int, seed int64, cfg config.CampaignConfig) ([]DailyCampaign, error) {
	if err := rng.ValidateWindow(windowDays); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	eng := rng.New(seed)
	dates := traffic.Window(end, windowDays)
	rows := make([]DailyCampaign, 0, windowDays*len(cfg.Stages)+cfg.Uncategorized.Rows)

	for i, date := range dates {
		trend := 1 + float64(i)/float64(windowDays)*cfg.TrendLift
		pacing := 1.0
		if rng.IsWeekend(date) {
			pacing = cfg.WeekendDampFactor
		}

		for _, stage := range cfg.Stages {
			spend := round2(stage.BaseSpend * trend * pacing * eng.Draw(cfg.SpendJitter))
			impressions := int(float64(stage.BaseImpressions) * trend * pacing * eng.Draw(cfg.VolumeJitter))
			clicks := int(float64(impressions) * stage.BaseCTR / 100 * eng.Draw(cfg.VolumeJitter))
			orders := int(float64(stage.BaseOrders) * trend * pacing * eng.Draw(cfg.SpendJitter))
			aov := round2(eng.Draw(stage.AOV))
			revenue := round2(float64(orders) * aov)

			rows = append(rows, DailyCampaign{
				Date:           date.Format(traffic.DateFormat),
				Stage:          stage.Name,
				Spend:          spend,
				Impressions:    impressions,
				Clicks:         clicks,
				Orders:         orders,
				AOV:            aov,
				Revenue:        revenue,
				CTR:            metrics.CTR(clicks, impressions),
				CPM:            metrics.CPM(spend, impressions),
				CPC:            metrics.CPC(spend, clicks),
				CPA:            metrics.CPA(spend, orders),
				ROAS:           metrics.ROAS(revenue, spend),
				Contribution:   round2(revenue - spend),
				ConversionRate: metrics.OrderConversionRate(orders, clicks),
			})
		}
	}

	for _, di := range pickDates(eng, len(dates), cfg.Uncategorized.Rows) {
		rows = append(rows, DailyCampaign{
			Date:        dates[di].Format(traffic.DateFormat),
			Stage:       StageUncategorized,
			Spend:       round2(eng.Draw(cfg.Uncategorized.Spend)),
			Impressions: eng.DrawInt(cfg.Uncategorized.Impressions),
			Clicks:      eng.DrawInt(cfg.Uncategorized.Clicks),
			Orders:      eng.DrawInt(cfg.Uncategorized.Orders),
			Revenue:     round2(eng.Draw(cfg.Uncategorized.Revenue)),
		})
	}

	return rows, nil
}

// pickDates selects up to count distinct date indices via a partial shuffle
// and returns them ascending.
func pickDates(eng *rng.Engine, total, count int) []int {
	if count > total {
		count = total
	}
	idx := make([]int, total)
	for i := range idx {
		idx[i] = i
	}
	for i := 0; i < count; i++ {
		j := eng.UniformInt(i, total-1)
		idx[i], idx[j] = idx[j], idx[i]
	}
	picked := idx[:count]
	sort.Ints(picked)
	return picked
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }
