// Package validate re-checks every cross-table invariant over a fully
// generated batch. It never repairs data: a violation is reported with the
// offending entity, date, dimension, and invariant name so the caller can
// regenerate with a different seed or raise to the operator.
package validate

import (
	"fmt"
	"math"

	"github.com/marktivo/growth-os/internal/campaign"
	"github.com/marktivo/growth-os/internal/cohort"
	"github.com/marktivo/growth-os/internal/funnel"
	"github.com/marktivo/growth-os/internal/metrics"
	"github.com/marktivo/growth-os/internal/organic"
	"github.com/marktivo/growth-os/internal/revops"
	"github.com/marktivo/growth-os/internal/traffic"
)

// IntegrityError reports a generated batch that violates an invariant.
type IntegrityError struct {
	Entity    string
	Date      string
	Dimension string
	Invariant string
	Detail    string
}

func (e *IntegrityError) Error() string {
	msg := fmt.Sprintf("integrity violation: %s", e.Invariant)
	if e.Entity != "" {
		msg += " entity=" + e.Entity
	}
	if e.Date != "" {
		msg += " date=" + e.Date
	}
	if e.Dimension != "" {
		msg += " dimension=" + e.Dimension
	}
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	return msg
}

// ratio tolerance: derived percentages are stored at two decimals.
const epsilon = 0.005 + 1e-9

// Traffic checks the daily traffic table invariants.
func Traffic(rows []traffic.DailyTraffic) error {
	for _, r := range rows {
		if r.TotalSessions < 0 || r.BotSessions < 0 || r.HumanSessions < 0 ||
			r.BotSub1s < 0 || r.BotKnownIPs < 0 || r.BotNoJS < 0 ||
			r.MobileSessions < 0 || r.DesktopSessions < 0 || r.TabletSessions < 0 {
			return &IntegrityError{Entity: "DailyTraffic", Date: r.Date, Invariant: "non_negative_counts"}
		}
		if r.BotSessions+r.HumanSessions != r.TotalSessions {
			return &IntegrityError{
				Entity: "DailyTraffic", Date: r.Date, Invariant: "bot_plus_human_equals_total",
				Detail: fmt.Sprintf("%d + %d != %d", r.BotSessions, r.HumanSessions, r.TotalSessions),
			}
		}
		if r.BotSub1s+r.BotKnownIPs+r.BotNoJS != r.BotSessions {
			return &IntegrityError{
				Entity: "DailyTraffic", Date: r.Date, Invariant: "bot_subcategories_sum",
				Detail: fmt.Sprintf("%d + %d + %d != %d", r.BotSub1s, r.BotKnownIPs, r.BotNoJS, r.BotSessions),
			}
		}
		if r.MobileSessions+r.DesktopSessions+r.TabletSessions != r.HumanSessions {
			return &IntegrityError{
				Entity: "DailyTraffic", Date: r.Date, Invariant: "device_split_sum",
				Detail: fmt.Sprintf("%d + %d + %d != %d", r.MobileSessions, r.DesktopSessions, r.TabletSessions, r.HumanSessions),
			}
		}
		var sourceSum int
		for name, n := range r.SourceSessions {
			if n < 0 {
				return &IntegrityError{Entity: "DailyTraffic", Date: r.Date, Dimension: name, Invariant: "non_negative_counts"}
			}
			sourceSum += n
		}
		if sourceSum != r.HumanSessions {
			return &IntegrityError{
				Entity: "DailyTraffic", Date: r.Date, Invariant: "source_split_sum",
				Detail: fmt.Sprintf("%d != %d", sourceSum, r.HumanSessions),
			}
		}
		if math.Abs(r.BotPct-metrics.BotShare(r.BotSessions, r.TotalSessions)) > epsilon {
			return &IntegrityError{Entity: "DailyTraffic", Date: r.Date, Invariant: "bot_pct_formula"}
		}
	}
	return nil
}

// Funnel checks the overall funnel: stage monotonicity, derived ratios, and
// entry reconciliation against the traffic table.
func Funnel(rows []funnel.DailyFunnel, trafficRows []traffic.DailyTraffic) error {
	human := humanByDate(trafficRows)
	for _, r := range rows {
		if err := checkStages("DailyFunnel", r.Date, "", r.EntrySessions, r.ProductPage, r.AddToCart, r.Checkout, r.Purchase); err != nil {
			return err
		}
		if h, ok := human[r.Date]; ok && r.EntrySessions != h {
			return &IntegrityError{
				Entity: "DailyFunnel", Date: r.Date, Invariant: "entry_equals_human_sessions",
				Detail: fmt.Sprintf("%d != %d", r.EntrySessions, h),
			}
		}
		if err := checkRatios("DailyFunnel", r.Date, "", r.EntrySessions, r.ProductPage, r.AddToCart, r.Purchase, r.BounceRate, r.CartAbandon, r.CVR); err != nil {
			return err
		}
		if r.AOV < 0 || math.Abs(r.Revenue-float64(r.Purchase)*r.AOV) > epsilon {
			return &IntegrityError{
				Entity: "DailyFunnel", Date: r.Date, Invariant: "revenue_equals_purchases_times_aov",
				Detail: fmt.Sprintf("%.2f != %d * %.2f", r.Revenue, r.Purchase, r.AOV),
			}
		}
	}
	return nil
}

// DimensionFunnels checks a per-device or per-source funnel table: stage
// monotonicity, ratios, and that each day's entries sum to the traffic
// table's human sessions.
func DimensionFunnels(entity string, rows []funnel.DimensionFunnel, trafficRows []traffic.DailyTraffic) error {
	human := humanByDate(trafficRows)
	entrySums := make(map[string]int, len(human))

	for _, r := range rows {
		if err := checkStages(entity, r.Date, r.Dimension, r.EntrySessions, r.ProductPage, r.AddToCart, r.Checkout, r.Purchase); err != nil {
			return err
		}
		if err := checkRatios(entity, r.Date, r.Dimension, r.EntrySessions, r.ProductPage, r.AddToCart, r.Purchase, r.BounceRate, r.CartAbandon, r.CVR); err != nil {
			return err
		}
		entrySums[r.Date] += r.EntrySessions
	}

	for date, h := range human {
		if entrySums[date] != h {
			return &IntegrityError{
				Entity: entity, Date: date, Invariant: "dimension_entries_sum_to_human_sessions",
				Detail: fmt.Sprintf("%d != %d", entrySums[date], h),
			}
		}
	}
	return nil
}

// Organic checks the per-platform daily table: follower accumulation in date
// order and non-negative raw counts.
func Organic(rows []organic.DailyMetric) error {
	prev := make(map[string]*organic.DailyMetric)

	for i := range rows {
		r := &rows[i]
		if r.Impressions < 0 || r.Likes < 0 || r.Comments < 0 || r.Shares < 0 ||
			r.Saves < 0 || r.Views < 0 || r.ProfileVisits < 0 || r.LinkClicks < 0 {
			return &IntegrityError{Entity: "OrganicDailyMetric", Date: r.Date, Dimension: r.Platform, Invariant: "non_negative_counts"}
		}
		if p, ok := prev[r.Platform]; ok {
			if r.Date <= p.Date {
				return &IntegrityError{Entity: "OrganicDailyMetric", Date: r.Date, Dimension: r.Platform, Invariant: "dates_ascending_per_platform"}
			}
			if r.Followers != p.Followers+r.FollowerGrowth {
				return &IntegrityError{
					Entity: "OrganicDailyMetric", Date: r.Date, Dimension: r.Platform, Invariant: "follower_accumulation",
					Detail: fmt.Sprintf("%d != %d + %d", r.Followers, p.Followers, r.FollowerGrowth),
				}
			}
		}
		if math.Abs(r.EngagementRate-metrics.EngagementRate(r.Likes, r.Comments, r.Shares, r.Impressions)) > epsilon {
			return &IntegrityError{Entity: "OrganicDailyMetric", Date: r.Date, Dimension: r.Platform, Invariant: "engagement_rate_formula"}
		}
		if math.Abs(r.ShareOfVoice-metrics.ShareOfVoice(r.Saves, r.Shares, r.Impressions)) > epsilon {
			return &IntegrityError{Entity: "OrganicDailyMetric", Date: r.Date, Dimension: r.Platform, Invariant: "share_of_voice_formula"}
		}
		if math.Abs(r.ProfileConversionRate-metrics.ProfileConversionRate(r.LinkClicks, r.ProfileVisits)) > epsilon {
			return &IntegrityError{Entity: "OrganicDailyMetric", Date: r.Date, Dimension: r.Platform, Invariant: "profile_conversion_formula"}
		}
		prev[r.Platform] = r
	}
	return nil
}

// Content checks the content library: unique post IDs, publish dates inside
// the window, and non-negative counts.
func Content(items []organic.ContentItem, firstDate, lastDate string) error {
	seen := make(map[string]bool, len(items))

	for _, it := range items {
		if seen[it.PostID] {
			return &IntegrityError{Entity: "ContentItem", Dimension: it.PostID, Invariant: "post_id_unique"}
		}
		seen[it.PostID] = true

		if it.PublishDate < firstDate || it.PublishDate > lastDate {
			return &IntegrityError{
				Entity: "ContentItem", Date: it.PublishDate, Dimension: it.PostID, Invariant: "publish_date_in_window",
				Detail: fmt.Sprintf("outside [%s, %s]", firstDate, lastDate),
			}
		}
		if it.Views < 0 || it.Likes < 0 || it.Comments < 0 || it.Shares < 0 || it.Saves < 0 || it.LinkClicks < 0 {
			return &IntegrityError{Entity: "ContentItem", Dimension: it.PostID, Invariant: "non_negative_counts"}
		}
		if math.Abs(it.ViralityScore-metrics.ViralityScore(it.Shares, it.Saves, it.Views)) > epsilon {
			return &IntegrityError{Entity: "ContentItem", Dimension: it.PostID, Invariant: "virality_score_formula"}
		}
		if math.Abs(it.ConversionScore-metrics.ConversionScore(it.LinkClicks, it.Views)) > epsilon {
			return &IntegrityError{Entity: "ContentItem", Dimension: it.PostID, Invariant: "conversion_score_formula"}
		}
	}
	return nil
}

// Campaigns checks the paid-acquisition table: non-negative volumes, the
// derived ad ratios on attributed rows, and zeroed ratios on unattributed
// rows.
func Campaigns(rows []campaign.DailyCampaign) error {
	for _, r := range rows {
		if r.Spend < 0 || r.Impressions < 0 || r.Clicks < 0 || r.Orders < 0 || r.Revenue < 0 {
			return &IntegrityError{Entity: "DailyCampaign", Date: r.Date, Dimension: r.Stage, Invariant: "non_negative_counts"}
		}
		if r.Stage == campaign.StageUncategorized {
			if r.CTR != 0 || r.CPM != 0 || r.CPC != 0 || r.CPA != 0 || r.ROAS != 0 ||
				r.AOV != 0 || r.Contribution != 0 || r.ConversionRate != 0 {
				return &IntegrityError{Entity: "DailyCampaign", Date: r.Date, Dimension: r.Stage, Invariant: "uncategorized_ratios_zero"}
			}
			continue
		}
		if math.Abs(r.CTR-metrics.CTR(r.Clicks, r.Impressions)) > epsilon {
			return &IntegrityError{Entity: "DailyCampaign", Date: r.Date, Dimension: r.Stage, Invariant: "ctr_formula"}
		}
		if math.Abs(r.CPM-metrics.CPM(r.Spend, r.Impressions)) > epsilon {
			return &IntegrityError{Entity: "DailyCampaign", Date: r.Date, Dimension: r.Stage, Invariant: "cpm_formula"}
		}
		if math.Abs(r.CPC-metrics.CPC(r.Spend, r.Clicks)) > epsilon {
			return &IntegrityError{Entity: "DailyCampaign", Date: r.Date, Dimension: r.Stage, Invariant: "cpc_formula"}
		}
		if math.Abs(r.CPA-metrics.CPA(r.Spend, r.Orders)) > epsilon {
			return &IntegrityError{Entity: "DailyCampaign", Date: r.Date, Dimension: r.Stage, Invariant: "cpa_formula"}
		}
		if math.Abs(r.ROAS-metrics.ROAS(r.Revenue, r.Spend)) > epsilon {
			return &IntegrityError{Entity: "DailyCampaign", Date: r.Date, Dimension: r.Stage, Invariant: "roas_formula"}
		}
		if math.Abs(r.ConversionRate-metrics.OrderConversionRate(r.Orders, r.Clicks)) > epsilon {
			return &IntegrityError{Entity: "DailyCampaign", Date: r.Date, Dimension: r.Stage, Invariant: "conversion_rate_formula"}
		}
		if r.AOV < 0 || math.Abs(r.Revenue-float64(r.Orders)*r.AOV) > epsilon {
			return &IntegrityError{
				Entity: "DailyCampaign", Date: r.Date, Dimension: r.Stage, Invariant: "revenue_equals_orders_times_aov",
				Detail: fmt.Sprintf("%.2f != %d * %.2f", r.Revenue, r.Orders, r.AOV),
			}
		}
		if math.Abs(r.Contribution-(r.Revenue-r.Spend)) > epsilon {
			return &IntegrityError{
				Entity: "DailyCampaign", Date: r.Date, Dimension: r.Stage, Invariant: "contribution_equals_revenue_minus_spend",
				Detail: fmt.Sprintf("%.2f != %.2f - %.2f", r.Contribution, r.Revenue, r.Spend),
			}
		}
	}
	return nil
}

// Cohorts checks the cohort LTV table: constant customer counts within a
// cohort, ascending checkpoint days, and day-zero baselines.
func Cohorts(rows []cohort.Row) error {
	customers := make(map[string]int)
	lastDay := make(map[string]int)

	for _, r := range rows {
		if r.Customers < 0 || r.LTV < 0 {
			return &IntegrityError{Entity: "CohortRow", Dimension: r.Cohort, Invariant: "non_negative_counts"}
		}
		if r.Retention < 0 || r.Retention > 1 {
			return &IntegrityError{Entity: "CohortRow", Dimension: r.Cohort, Invariant: "retention_in_unit_interval"}
		}
		if r.SecondOrderRate < 0 || r.SecondOrderRate > 1 {
			return &IntegrityError{Entity: "CohortRow", Dimension: r.Cohort, Invariant: "second_order_rate_in_unit_interval"}
		}
		if r.Day == 0 && (r.Retention != 1 || r.SecondOrderRate != 0) {
			return &IntegrityError{Entity: "CohortRow", Dimension: r.Cohort, Invariant: "day_zero_baseline"}
		}
		if n, ok := customers[r.Cohort]; ok {
			if r.Customers != n {
				return &IntegrityError{
					Entity: "CohortRow", Dimension: r.Cohort, Invariant: "customers_constant_per_cohort",
					Detail: fmt.Sprintf("%d != %d", r.Customers, n),
				}
			}
			if r.Day <= lastDay[r.Cohort] {
				return &IntegrityError{Entity: "CohortRow", Dimension: r.Cohort, Invariant: "checkpoint_days_ascending"}
			}
		}
		customers[r.Cohort] = r.Customers
		lastDay[r.Cohort] = r.Day
	}
	return nil
}

// Pipeline checks the lead-pipeline table: the stage chain narrows at every
// handoff, fumbled leads reconcile, and the derived figures recompute.
func Pipeline(rows []revops.DailyPipeline) error {
	for _, r := range rows {
		if r.Leads < 0 || r.AIQualified < 0 || r.HumanContacted < 0 || r.DealsWon < 0 ||
			r.AIResponseSeconds < 0 || r.HumanResponseSeconds < 0 ||
			r.AvgDealSize < 0 || r.Revenue < 0 || r.PipelineVelocityDays < 0 {
			return &IntegrityError{Entity: "DailyPipeline", Date: r.Date, Invariant: "non_negative_counts"}
		}
		if r.AIQualified > r.Leads || r.HumanContacted > r.AIQualified || r.DealsWon > r.HumanContacted {
			return &IntegrityError{
				Entity: "DailyPipeline", Date: r.Date, Invariant: "pipeline_stages_non_increasing",
				Detail: fmt.Sprintf("%d >= %d >= %d >= %d violated", r.Leads, r.AIQualified, r.HumanContacted, r.DealsWon),
			}
		}
		if r.FumbledLeads != r.AIQualified-r.HumanContacted {
			return &IntegrityError{
				Entity: "DailyPipeline", Date: r.Date, Invariant: "fumbled_equals_qualified_minus_contacted",
				Detail: fmt.Sprintf("%d != %d - %d", r.FumbledLeads, r.AIQualified, r.HumanContacted),
			}
		}
		if math.Abs(r.FumbleRate-metrics.FumbleRate(r.FumbledLeads, r.AIQualified)) > epsilon {
			return &IntegrityError{Entity: "DailyPipeline", Date: r.Date, Invariant: "fumble_rate_formula"}
		}
		if math.Abs(r.Revenue-float64(r.DealsWon)*r.AvgDealSize) > epsilon {
			return &IntegrityError{
				Entity: "DailyPipeline", Date: r.Date, Invariant: "revenue_equals_deals_times_deal_size",
				Detail: fmt.Sprintf("%.2f != %d * %.2f", r.Revenue, r.DealsWon, r.AvgDealSize),
			}
		}
	}
	return nil
}

func checkStages(entity, date, dimension string, entry, product, cart, checkout, purchase int) error {
	counts := []int{entry, product, cart, checkout, purchase}
	if counts[0] < 0 {
		return &IntegrityError{Entity: entity, Date: date, Dimension: dimension, Invariant: "non_negative_counts"}
	}
	for i := 1; i < len(counts); i++ {
		if counts[i] < 0 {
			return &IntegrityError{Entity: entity, Date: date, Dimension: dimension, Invariant: "non_negative_counts"}
		}
		if counts[i] > counts[i-1] {
			return &IntegrityError{
				Entity: entity, Date: date, Dimension: dimension, Invariant: "funnel_stages_non_increasing",
				Detail: fmt.Sprintf("stage %d (%d) exceeds stage %d (%d)", i, counts[i], i-1, counts[i-1]),
			}
		}
	}
	return nil
}

func checkRatios(entity, date, dimension string, entry, product, cart, purchase int, bounce, abandon, cvr float64) error {
	if math.Abs(bounce-metrics.BounceRate(entry, product)) > epsilon {
		return &IntegrityError{Entity: entity, Date: date, Dimension: dimension, Invariant: "bounce_rate_formula"}
	}
	if math.Abs(abandon-metrics.CartAbandonment(cart, purchase)) > epsilon {
		return &IntegrityError{Entity: entity, Date: date, Dimension: dimension, Invariant: "cart_abandonment_formula"}
	}
	if math.Abs(cvr-metrics.CVR(purchase, entry)) > epsilon {
		return &IntegrityError{Entity: entity, Date: date, Dimension: dimension, Invariant: "cvr_formula"}
	}
	return nil
}

func humanByDate(rows []traffic.DailyTraffic) map[string]int {
	m := make(map[string]int, len(rows))
	for _, r := range rows {
		m[r.Date] = r.HumanSessions
	}
	return m
}
