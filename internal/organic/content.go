package organic

import (
	"fmt"
	"time"

	"github.com/marktivo/growth-os/internal/config"
	"github.com/marktivo/growth-os/internal/metrics"
	"github.com/marktivo/growth-os/internal/rng"
	"github.com/marktivo/growth-os/internal/traffic"
)

// ContentItem is one post in the content library. Post metrics are drawn
// independently of the per-platform daily aggregates.
type ContentItem struct {
	PostID      string `json:"post_id"`
	Title       string `json:"title"`
	Platform    string `json:"platform"`
	ContentType string `json:"content_type"`
	PublishDate string `json:"publish_date"`

	Views      int `json:"views"`
	Likes      int `json:"likes"`
	Comments   int `json:"comments"`
	Shares     int `json:"shares"`
	Saves      int `json:"saves"`
	LinkClicks int `json:"link_clicks"`

	ViralityScore   float64 `json:"virality_score"`
	ConversionScore float64 `json:"conversion_score"`
}

// contentTypes is the per-platform content vocabulary.
var contentTypes = map[string][]string{
	"Instagram": {"Reel", "Story", "Carousel", "Feed Post"},
	"TikTok":    {"Short Video", "Duet", "Stitch"},
	"YouTube":   {"Short", "Long Video", "Live"},
	"LinkedIn":  {"Article", "Post", "Document"},
}

var postTitles = []string{
	"Behind the Scenes: How We Build Products",
	"5 Tips for Better Engagement",
	"Customer Success Story: Brand X",
	"Weekly Motivation Monday",
	"Product Launch Teaser",
	"Q&A Session with the Team",
	"Industry Trend Breakdown",
	"Day in the Life at Office",
	"Tutorial: Getting Started Guide",
	"Community Spotlight Feature",
	"New Feature Announcement",
	"Weekend Vibes & Culture",
	"Expert Interview Series Ep.1",
	"Before vs After Transformation",
	"Myth Busters: Common Mistakes",
	"Flash Sale Announcement",
	"User Generated Content Reshare",
	"Infographic: Key Statistics",
	"Team Celebration Moment",
	"Throwback Thursday Classic",
	"How-to: Advanced Tips & Tricks",
	"Live Q&A Recap Highlights",
	"Partner Collaboration Post",
	"Seasonal Campaign Launch",
	"Data Report: Monthly Insights",
	"Sneak Peek: Upcoming Release",
	"Challenge: Join the Trend",
	"Thank You 10K Followers!",
	"Case Study: ROI Results",
	"Friday Fun: Memes & Laughs",
}

// GenerateContent produces the content-item pool: cfg.NumPosts posts spread
// across the configured platforms with publish dates inside the window.
// Post IDs are sequential and unique within the batch.
func GenerateContent(windowDays int, seed int64, cfg config.ContentConfig, platforms []config.PlatformConfig) ([]ContentItem, error) {
	return GenerateContentFrom(time.Now().UTC(), windowDays, seed, cfg, platforms)
}

// GenerateContentFrom is GenerateContent with an explicit window end date.
func GenerateContentFrom(end time.Time, windowDays int, seed int64, cfg config.ContentConfig, platforms []config.PlatformConfig) ([]ContentItem, error) {
	if err := rng.ValidateWindow(windowDays); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if len(platforms) == 0 {
		return nil, &rng.InputError{Field: "organic.platforms", Reason: "at least one platform is required"}
	}

	eng := rng.New(seed)
	dates := traffic.Window(end, windowDays)
	items := make([]ContentItem, 0, cfg.NumPosts)

	for i := 0; i < cfg.NumPosts; i++ {
		platform := platforms[eng.UniformInt(0, len(platforms)-1)].Name

		types := contentTypes[platform]
		if len(types) == 0 {
			types = []string{"Post"}
		}
		contentType := types[eng.UniformInt(0, len(types)-1)]

		publishDate := dates[eng.UniformInt(0, len(dates)-1)]

		views := eng.DrawInt(cfg.Views)
		likes := int(float64(views) * eng.Draw(cfg.LikesShare))
		comments := int(float64(likes) * eng.Draw(cfg.CommentsShare))
		shares := int(float64(likes) * eng.Draw(cfg.SharesShare))
		saves := int(float64(likes) * eng.Draw(cfg.SavesShare))
		linkClicks := int(float64(views) * eng.Draw(cfg.LinkClickShare))

		items = append(items, ContentItem{
			PostID:          fmt.Sprintf("POST-%03d", i+1),
			Title:           postTitles[i%len(postTitles)],
			Platform:        platform,
			ContentType:     contentType,
			PublishDate:     publishDate.Format(traffic.DateFormat),
			Views:           views,
			Likes:           likes,
			Comments:        comments,
			Shares:          shares,
			Saves:           saves,
			LinkClicks:      linkClicks,
			ViralityScore:   metrics.ViralityScore(shares, saves, views),
			ConversionScore: metrics.ConversionScore(linkClicks, views),
		})
	}
	return items, nil
}
