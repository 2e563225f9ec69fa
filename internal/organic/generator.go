// Package organic generates the social-media side of the dashboard: the
// per-platform daily metrics table and the per-post content library. The two
// are independent views of the same channel: per-post totals are not
// reconciled against the daily aggregates.
package organic

import (
	"time"

	"github.com/marktivo/growth-os/internal/config"
	"github.com/marktivo/growth-os/internal/metrics"
	"github.com/marktivo/growth-os/internal/rng"
	"github.com/marktivo/growth-os/internal/traffic"
)

// DailyMetric is one platform-day of organic social metrics. Followers are
// cumulative: followers[t] = followers[t-1] + follower_growth[t], seeded
// from the platform's configured base on the first day.
type DailyMetric struct {
	Date     string `json:"date"`
	Platform string `json:"platform"`

	Followers      int `json:"followers"`
	FollowerGrowth int `json:"follower_growth"`

	Impressions   int `json:"impressions"`
	Likes         int `json:"likes"`
	Comments      int `json:"comments"`
	Shares        int `json:"shares"`
	Saves         int `json:"saves"`
	Views         int `json:"views"`
	ProfileVisits int `json:"profile_visits"`
	LinkClicks    int `json:"link_clicks"`

	PostsPublished  int `json:"posts_published"`
	PostsGoalWeekly int `json:"posts_goal_weekly"`

	EngagementRate        float64 `json:"engagement_rate"`
	ShareOfVoice          float64 `json:"share_of_voice"`
	ProfileConversionRate float64 `json:"profile_conversion_rate"`
}

// Generate produces windowDays rows per configured platform, ordered by
// platform then ascending date. Dates must ascend within a platform because
// follower counts accumulate day over day.
func Generate(windowDays int, seed int64, cfg config.OrganicConfig) ([]DailyMetric, error) {
	return GenerateFrom(time.Now().UTC(), windowDays, seed, cfg)
}

// GenerateFrom is Generate with an explicit window end date.
func GenerateFrom(end time.Time, windowDays int, seed int64, cfg config.OrganicConfig) ([]DailyMetric, error) {
	if err := rng.ValidateWindow(windowDays); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	eng := rng.New(seed)
	dates := traffic.Window(end, windowDays)
	rows := make([]DailyMetric, 0, windowDays*len(cfg.Platforms))

	for _, platform := range cfg.Platforms {
		followers := platform.BaseFollowers

		for _, date := range dates {
			growth := eng.DrawInt(platform.DailyGrowth)
			if eng.Bool(cfg.DipProbability) {
				growth = -eng.DrawInt(cfg.DipRange)
			}
			followers += growth

			impressions := int(eng.WeekendBoost(float64(eng.DrawInt(platform.Impressions)), date, cfg.WeekendBoostFactor))

			likes := int(float64(impressions) * platform.EngagementMultiplier * eng.Draw(cfg.NoiseFactor))
			comments := int(float64(likes) * eng.Draw(cfg.CommentsShare))
			shares := int(float64(likes) * eng.Draw(cfg.SharesShare))
			saves := int(float64(likes) * eng.Draw(cfg.SavesShare))

			profileVisits := int(float64(impressions) * eng.Draw(cfg.ProfileVisitShare))
			linkClicks := int(float64(profileVisits) * eng.Draw(cfg.LinkClickShare))

			views := eng.DrawInt(platform.Views)

			// Posting cadence: a weekly goal spread over the days of the week.
			published := 0
			if eng.Bool(float64(platform.PostsPerWeek) / 7) {
				published = 1
			}

			rows = append(rows, DailyMetric{
				Date:                  date.Format(traffic.DateFormat),
				Platform:              platform.Name,
				Followers:             followers,
				FollowerGrowth:        growth,
				Impressions:           impressions,
				Likes:                 likes,
				Comments:              comments,
				Shares:                shares,
				Saves:                 saves,
				Views:                 views,
				ProfileVisits:         profileVisits,
				LinkClicks:            linkClicks,
				PostsPublished:        published,
				PostsGoalWeekly:       platform.PostsPerWeek,
				EngagementRate:        metrics.EngagementRate(likes, comments, shares, impressions),
				ShareOfVoice:          metrics.ShareOfVoice(saves, shares, impressions),
				ProfileConversionRate: metrics.ProfileConversionRate(linkClicks, profileVisits),
			})
		}
	}
	return rows, nil
}
