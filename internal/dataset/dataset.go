// Package dataset composes the individual generators into one coherent batch
// and validates it before handing it to callers.
package dataset

import (
	"time"

	"github.com/google/uuid"

	"github.com/marktivo/growth-os/internal/campaign"
	"github.com/marktivo/growth-os/internal/cohort"
	"github.com/marktivo/growth-os/internal/config"
	"github.com/marktivo/growth-os/internal/funnel"
	"github.com/marktivo/growth-os/internal/organic"
	"github.com/marktivo/growth-os/internal/pagespeed"
	"github.com/marktivo/growth-os/internal/revops"
	"github.com/marktivo/growth-os/internal/traffic"
	"github.com/marktivo/growth-os/internal/validate"
)

// Per-table seed offsets. Each table gets its own rand stream so adding a
// draw to one generator never shifts the output of another.
const (
	seedOffsetTraffic = iota
	seedOffsetFunnel
	seedOffsetDeviceFunnel
	seedOffsetSourceFunnel
	seedOffsetPageSpeed
	seedOffsetOrganic
	seedOffsetContent
	seedOffsetCampaign
	seedOffsetCohort
	seedOffsetRevOps
)

// Batch is one full generation run. The table slices are fully deterministic
// for a given seed, window, and config; ID and GeneratedAt describe the run
// itself and differ between runs.
type Batch struct {
	ID          string    `json:"id"`
	Seed        int64     `json:"seed"`
	WindowDays  int       `json:"window_days"`
	GeneratedAt time.Time `json:"generated_at"`

	Traffic       []traffic.DailyTraffic     `json:"traffic"`
	Funnel        []funnel.DailyFunnel       `json:"funnel"`
	DeviceFunnels []funnel.DimensionFunnel   `json:"device_funnels"`
	SourceFunnels []funnel.DimensionFunnel   `json:"source_funnels"`
	PageSpeed     []pagespeed.DailyPageSpeed `json:"page_speed"`
	Organic       []organic.DailyMetric      `json:"organic"`
	Content       []organic.ContentItem      `json:"content"`
	Campaigns     []campaign.DailyCampaign   `json:"campaigns"`
	Cohorts       []cohort.Row               `json:"cohorts"`
	RevOps        []revops.DailyPipeline     `json:"revops"`
}

// Generate builds a batch for the window ending today (UTC).
func Generate(seed int64, cfg *config.Config) (*Batch, error) {
	return GenerateFrom(time.Now().UTC(), seed, cfg)
}

// GenerateFrom builds a batch for the window ending on the given date, runs
// every generator in dependency order, and validates the result. A non-nil
// error is either a *rng.InputError from config validation or a
// *validate.IntegrityError describing the first violated invariant.
func GenerateFrom(end time.Time, seed int64, cfg *config.Config) (*Batch, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	days := cfg.Generation.WindowDays

	trafficRows, err := traffic.GenerateFrom(end, days, seed+seedOffsetTraffic, cfg.Traffic)
	if err != nil {
		return nil, err
	}
	funnelRows, err := funnel.Generate(trafficRows, seed+seedOffsetFunnel, cfg.Funnel)
	if err != nil {
		return nil, err
	}
	deviceRows, err := funnel.GenerateByDevice(trafficRows, seed+seedOffsetDeviceFunnel, cfg.Funnel)
	if err != nil {
		return nil, err
	}
	sourceRows, err := funnel.GenerateBySource(trafficRows, seed+seedOffsetSourceFunnel, cfg.Funnel)
	if err != nil {
		return nil, err
	}
	speedRows, err := pagespeed.GenerateFrom(end, days, seed+seedOffsetPageSpeed, cfg.PageSpeed)
	if err != nil {
		return nil, err
	}
	organicRows, err := organic.GenerateFrom(end, days, seed+seedOffsetOrganic, cfg.Organic)
	if err != nil {
		return nil, err
	}
	contentItems, err := organic.GenerateContentFrom(end, days, seed+seedOffsetContent, cfg.Content, cfg.Organic.Platforms)
	if err != nil {
		return nil, err
	}
	campaignRows, err := campaign.GenerateFrom(end, days, seed+seedOffsetCampaign, cfg.Campaign)
	if err != nil {
		return nil, err
	}
	cohortRows, err := cohort.GenerateFrom(end, seed+seedOffsetCohort, cfg.Cohort)
	if err != nil {
		return nil, err
	}
	revopsRows, err := revops.GenerateFrom(end, days, seed+seedOffsetRevOps, cfg.RevOps)
	if err != nil {
		return nil, err
	}

	b := &Batch{
		ID:            uuid.New().String(),
		Seed:          seed,
		WindowDays:    days,
		GeneratedAt:   time.Now().UTC(),
		Traffic:       trafficRows,
		Funnel:        funnelRows,
		DeviceFunnels: deviceRows,
		SourceFunnels: sourceRows,
		PageSpeed:     speedRows,
		Organic:       organicRows,
		Content:       contentItems,
		Campaigns:     campaignRows,
		Cohorts:       cohortRows,
		RevOps:        revopsRows,
	}
	if err := b.Validate(); err != nil {
		return nil, err
	}
	return b, nil
}

// Validate re-checks every cross-table invariant over the batch.
func (b *Batch) Validate() error {
	if err := validate.Traffic(b.Traffic); err != nil {
		return err
	}
	if err := validate.Funnel(b.Funnel, b.Traffic); err != nil {
		return err
	}
	if err := validate.DimensionFunnels("DeviceFunnel", b.DeviceFunnels, b.Traffic); err != nil {
		return err
	}
	if err := validate.DimensionFunnels("SourceFunnel", b.SourceFunnels, b.Traffic); err != nil {
		return err
	}
	if err := validate.Organic(b.Organic); err != nil {
		return err
	}
	first, last := b.windowBounds()
	if err := validate.Content(b.Content, first, last); err != nil {
		return err
	}
	if err := validate.Campaigns(b.Campaigns); err != nil {
		return err
	}
	if err := validate.Cohorts(b.Cohorts); err != nil {
		return err
	}
	return validate.Pipeline(b.RevOps)
}

func (b *Batch) windowBounds() (first, last string) {
	if len(b.Traffic) == 0 {
		return "", ""
	}
	return b.Traffic[0].Date, b.Traffic[len(b.Traffic)-1].Date
}
