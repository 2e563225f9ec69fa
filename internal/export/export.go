// Package export writes a generated batch to disk as JSON or as a set of
// CSV files, one per table.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/marktivo/growth-os/internal/dataset"
	"github.com/marktivo/growth-os/internal/funnel"
	"github.com/marktivo/growth-os/internal/traffic"
)

// JSON writes the whole batch as one indented JSON file.
func JSON(b *dataset.Batch, path string) error {
	data, err := json.MarshalIndent(b, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal batch: %w", err)
	}
	return os.WriteFile(path, append(data, '\n'), 0644)
}

// CSV writes one CSV file per table into dir, creating it if needed.
func CSV(b *dataset.Batch, dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create output dir: %w", err)
	}

	writers := []struct {
		name  string
		write func(*csv.Writer) error
	}{
		{"traffic.csv", func(w *csv.Writer) error { return writeTraffic(w, b.Traffic) }},
		{"funnel.csv", func(w *csv.Writer) error { return writeFunnel(w, b) }},
		{"funnel_devices.csv", func(w *csv.Writer) error { return writeDimensionFunnel(w, "device", b.DeviceFunnels) }},
		{"funnel_sources.csv", func(w *csv.Writer) error { return writeDimensionFunnel(w, "source", b.SourceFunnels) }},
		{"pagespeed.csv", func(w *csv.Writer) error { return writePageSpeed(w, b) }},
		{"organic.csv", func(w *csv.Writer) error { return writeOrganic(w, b) }},
		{"content.csv", func(w *csv.Writer) error { return writeContent(w, b) }},
		{"campaigns.csv", func(w *csv.Writer) error { return writeCampaigns(w, b) }},
		{"cohorts.csv", func(w *csv.Writer) error { return writeCohorts(w, b) }},
		{"revops.csv", func(w *csv.Writer) error { return writeRevOps(w, b) }},
	}

	for _, t := range writers {
		if err := writeFile(filepath.Join(dir, t.name), t.write); err != nil {
			return fmt.Errorf("failed to write %s: %w", t.name, err)
		}
	}
	return nil
}

func writeFile(path string, write func(*csv.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := write(w); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}

func writeTraffic(w *csv.Writer, rows []traffic.DailyTraffic) error {
	sources := sourceColumns(rows)
	header := []string{
		"date", "total_sessions", "bot_sessions", "human_sessions",
		"bot_sub_1s", "bot_known_ips", "bot_no_js", "bot_pct",
		"mobile_sessions", "desktop_sessions", "tablet_sessions",
		"lcp_mobile", "lcp_desktop",
	}
	header = append(header, sources...)
	if err := w.Write(header); err != nil {
		return err
	}
	for _, r := range rows {
		rec := []string{
			r.Date,
			itoa(r.TotalSessions), itoa(r.BotSessions), itoa(r.HumanSessions),
			itoa(r.BotSub1s), itoa(r.BotKnownIPs), itoa(r.BotNoJS), ftoa(r.BotPct),
			itoa(r.MobileSessions), itoa(r.DesktopSessions), itoa(r.TabletSessions),
			ftoa(r.LCPMobile), ftoa(r.LCPDesktop),
		}
		for _, s := range sources {
			rec = append(rec, itoa(r.SourceSessions[s]))
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	return nil
}

// sourceColumns returns the union of source names across rows, sorted so the
// column order is stable regardless of map iteration.
func sourceColumns(rows []traffic.DailyTraffic) []string {
	seen := map[string]bool{}
	for _, r := range rows {
		for name := range r.SourceSessions {
			seen[name] = true
		}
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func writeFunnel(w *csv.Writer, b *dataset.Batch) error {
	if err := w.Write([]string{
		"date", "entry_sessions", "product_page", "add_to_cart", "checkout", "purchase",
		"bounce_rate", "cart_abandonment", "cvr", "aov", "revenue",
	}); err != nil {
		return err
	}
	for _, r := range b.Funnel {
		if err := w.Write([]string{
			r.Date, itoa(r.EntrySessions), itoa(r.ProductPage), itoa(r.AddToCart),
			itoa(r.Checkout), itoa(r.Purchase),
			ftoa(r.BounceRate), ftoa(r.CartAbandon), ftoa(r.CVR), ftoa(r.AOV), ftoa(r.Revenue),
		}); err != nil {
			return err
		}
	}
	return nil
}

func writeDimensionFunnel(w *csv.Writer, dimension string, rows []funnel.DimensionFunnel) error {
	if err := w.Write([]string{
		"date", dimension, "entry_sessions", "product_page", "add_to_cart", "checkout", "purchase",
		"bounce_rate", "cart_abandonment", "cvr",
	}); err != nil {
		return err
	}
	for _, r := range rows {
		if err := w.Write([]string{
			r.Date, r.Dimension, itoa(r.EntrySessions), itoa(r.ProductPage), itoa(r.AddToCart),
			itoa(r.Checkout), itoa(r.Purchase),
			ftoa(r.BounceRate), ftoa(r.CartAbandon), ftoa(r.CVR),
		}); err != nil {
			return err
		}
	}
	return nil
}

func writePageSpeed(w *csv.Writer, b *dataset.Batch) error {
	if err := w.Write([]string{
		"date", "lcp_mobile", "lcp_desktop", "fid_mobile", "fid_desktop", "cls_mobile", "cls_desktop",
	}); err != nil {
		return err
	}
	for _, r := range b.PageSpeed {
		if err := w.Write([]string{
			r.Date, ftoa(r.LCPMobile), ftoa(r.LCPDesktop),
			ftoa(r.FIDMobile), ftoa(r.FIDDesktop), ftoa(r.CLSMobile), ftoa(r.CLSDesktop),
		}); err != nil {
			return err
		}
	}
	return nil
}

func writeOrganic(w *csv.Writer, b *dataset.Batch) error {
	if err := w.Write([]string{
		"date", "platform", "followers", "follower_growth", "impressions",
		"likes", "comments", "shares", "saves", "views",
		"profile_visits", "link_clicks", "posts_published", "posts_goal_weekly",
		"engagement_rate", "share_of_voice", "profile_conversion_rate",
	}); err != nil {
		return err
	}
	for _, r := range b.Organic {
		if err := w.Write([]string{
			r.Date, r.Platform, itoa(r.Followers), itoa(r.FollowerGrowth), itoa(r.Impressions),
			itoa(r.Likes), itoa(r.Comments), itoa(r.Shares), itoa(r.Saves), itoa(r.Views),
			itoa(r.ProfileVisits), itoa(r.LinkClicks), itoa(r.PostsPublished), itoa(r.PostsGoalWeekly),
			ftoa(r.EngagementRate), ftoa(r.ShareOfVoice), ftoa(r.ProfileConversionRate),
		}); err != nil {
			return err
		}
	}
	return nil
}

func writeContent(w *csv.Writer, b *dataset.Batch) error {
	if err := w.Write([]string{
		"post_id", "title", "platform", "content_type", "publish_date",
		"views", "likes", "comments", "shares", "saves", "link_clicks",
		"virality_score", "conversion_score",
	}); err != nil {
		return err
	}
	for _, it := range b.Content {
		if err := w.Write([]string{
			it.PostID, it.Title, it.Platform, it.ContentType, it.PublishDate,
			itoa(it.Views), itoa(it.Likes), itoa(it.Comments), itoa(it.Shares),
			itoa(it.Saves), itoa(it.LinkClicks),
			ftoa(it.ViralityScore), ftoa(it.ConversionScore),
		}); err != nil {
			return err
		}
	}
	return nil
}

func writeCampaigns(w *csv.Writer, b *dataset.Batch) error {
	if err := w.Write([]string{
		"date", "stage", "spend", "impressions", "clicks", "orders", "aov", "revenue",
		"ctr", "cpm", "cpc", "cpa", "roas", "contribution", "conversion_rate",
	}); err != nil {
		return err
	}
	for _, r := range b.Campaigns {
		if err := w.Write([]string{
			r.Date, r.Stage, ftoa(r.Spend), itoa(r.Impressions), itoa(r.Clicks),
			itoa(r.Orders), ftoa(r.AOV), ftoa(r.Revenue),
			ftoa(r.CTR), ftoa(r.CPM), ftoa(r.CPC), ftoa(r.CPA),
			ftoa(r.ROAS), ftoa(r.Contribution), ftoa(r.ConversionRate),
		}); err != nil {
			return err
		}
	}
	return nil
}

func writeCohorts(w *csv.Writer, b *dataset.Batch) error {
	if err := w.Write([]string{
		"cohort", "customers", "day", "ltv", "retention", "second_order_rate",
	}); err != nil {
		return err
	}
	for _, r := range b.Cohorts {
		if err := w.Write([]string{
			r.Cohort, itoa(r.Customers), itoa(r.Day),
			ftoa(r.LTV), ftoa(r.Retention), ftoa(r.SecondOrderRate),
		}); err != nil {
			return err
		}
	}
	return nil
}

func writeRevOps(w *csv.Writer, b *dataset.Batch) error {
	if err := w.Write([]string{
		"date", "leads", "ai_qualified", "ai_response_seconds",
		"human_contacted", "human_response_seconds", "deals_won",
		"avg_deal_size", "revenue", "fumbled_leads", "fumble_rate", "pipeline_velocity_days",
	}); err != nil {
		return err
	}
	for _, r := range b.RevOps {
		if err := w.Write([]string{
			r.Date, itoa(r.Leads), itoa(r.AIQualified), ftoa(r.AIResponseSeconds),
			itoa(r.HumanContacted), ftoa(r.HumanResponseSeconds), itoa(r.DealsWon),
			ftoa(r.AvgDealSize), ftoa(r.Revenue), itoa(r.FumbledLeads),
			ftoa(r.FumbleRate), ftoa(r.PipelineVelocityDays),
		}); err != nil {
			return err
		}
	}
	return nil
}

func itoa(n int) string { return strconv.Itoa(n) }

func ftoa(f float64) string { return strconv.FormatFloat(f, 'f', -1, 64) }
