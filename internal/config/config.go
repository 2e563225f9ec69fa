package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/marktivo/growth-os/internal/rng"
)

// Config holds all configuration for the application.
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Store      StoreConfig      `yaml:"store"`
	Generation GenerationConfig `yaml:"generation"`
	Traffic    TrafficConfig    `yaml:"traffic"`
	Funnel     FunnelConfig     `yaml:"funnel"`
	PageSpeed  PageSpeedConfig  `yaml:"page_speed"`
	Organic    OrganicConfig    `yaml:"organic"`
	Content    ContentConfig    `yaml:"content"`
	Campaign   CampaignConfig   `yaml:"campaign"`
	Cohort     CohortConfig     `yaml:"cohort"`
	RevOps     RevOpsConfig     `yaml:"revops"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port int    `yaml:"port"`
	Host string `yaml:"host"`
}

// StoreConfig holds batch store configuration. Type "memory" keeps the
// accepted batch in process; "redis" shares it across dashboard instances.
type StoreConfig struct {
	Type          string `yaml:"type"`
	RedisAddr     string `yaml:"redis_addr"`
	RedisPassword string `yaml:"redis_password"`
	RedisDB       int    `yaml:"redis_db"`
	KeyPrefix     string `yaml:"key_prefix"`
}

// GenerationConfig holds the run-level generation parameters.
type GenerationConfig struct {
	Seed       int64 `yaml:"seed"`
	WindowDays int   `yaml:"window_days"`
}

// TrafficConfig holds the tunable ranges for daily traffic generation.
type TrafficConfig struct {
	TotalSessions      rng.IntRange `yaml:"total_sessions"`
	WeekendBoostFactor float64      `yaml:"weekend_boost_factor"`

	BotShare    rng.Range `yaml:"bot_share"`
	BotSub1s    rng.Range `yaml:"bot_sub_1s_share"`
	BotKnownIPs rng.Range `yaml:"bot_known_ips_share"`

	MobileShare  rng.Range `yaml:"mobile_share"`
	DesktopShare rng.Range `yaml:"desktop_share"`

	// Six channels drawn independently, rescaled to SourceShareTotal of
	// human traffic; RemainderSource absorbs the rest.
	Sources          []SourceShareConfig `yaml:"sources"`
	SourceShareTotal float64             `yaml:"source_share_total"`
	RemainderSource  string              `yaml:"remainder_source"`

	LCPMobile           rng.Range `yaml:"lcp_mobile"`
	LCPDesktop          rng.Range `yaml:"lcp_desktop"`
	LCPSpikeProbability float64   `yaml:"lcp_spike_probability"`
	LCPSpikeMobile      rng.Range `yaml:"lcp_spike_mobile"`
}

// SourceShareConfig is one traffic channel's share range.
type SourceShareConfig struct {
	Name  string    `yaml:"name"`
	Share rng.Range `yaml:"share"`
}

// StageRates holds the four stage-to-stage retention ranges of a funnel.
type StageRates struct {
	Product  rng.Range `yaml:"product"`
	Cart     rng.Range `yaml:"cart"`
	Checkout rng.Range `yaml:"checkout"`
	Purchase rng.Range `yaml:"purchase"`
}

// FunnelConfig holds the overall funnel plus the per-device and per-source
// retention tables.
type FunnelConfig struct {
	Overall StageRates              `yaml:"overall"`
	AOV     rng.Range               `yaml:"aov"`
	Devices []DimensionFunnelConfig `yaml:"devices"`
	Sources []DimensionFunnelConfig `yaml:"sources"`
}

// DimensionFunnelConfig is a funnel retention table keyed to one dimension
// value (a device type or a traffic source).
type DimensionFunnelConfig struct {
	Name   string     `yaml:"name"`
	Stages StageRates `yaml:"stages"`
}

// PageSpeedConfig holds the Core Web Vitals sampling ranges.
type PageSpeedConfig struct {
	LCPMobile  rng.Range `yaml:"lcp_mobile"`
	LCPDesktop rng.Range `yaml:"lcp_desktop"`
	FIDMobile  rng.Range `yaml:"fid_mobile"`
	FIDDesktop rng.Range `yaml:"fid_desktop"`
	CLSMobile  rng.Range `yaml:"cls_mobile"`
	CLSDesktop rng.Range `yaml:"cls_desktop"`

	SpikeProbability float64   `yaml:"spike_probability"`
	SpikeLCPMobile   rng.Range `yaml:"spike_lcp_mobile"`
	SpikeFIDMobile   rng.Range `yaml:"spike_fid_mobile"`
}

// OrganicConfig holds the per-platform social generation parameters.
type OrganicConfig struct {
	WeekendBoostFactor float64      `yaml:"weekend_boost_factor"`
	DipProbability     float64      `yaml:"dip_probability"`
	DipRange           rng.IntRange `yaml:"dip_range"`
	NoiseFactor        rng.Range    `yaml:"noise_factor"`

	CommentsShare     rng.Range `yaml:"comments_share"`
	SharesShare       rng.Range `yaml:"shares_share"`
	SavesShare        rng.Range `yaml:"saves_share"`
	ProfileVisitShare rng.Range `yaml:"profile_visit_share"`
	LinkClickShare    rng.Range `yaml:"link_click_share"`

	Platforms []PlatformConfig `yaml:"platforms"`
}

// PlatformConfig holds one social platform's base parameters.
type PlatformConfig struct {
	Name                 string       `yaml:"name"`
	BaseFollowers        int          `yaml:"base_followers"`
	DailyGrowth          rng.IntRange `yaml:"daily_growth"`
	Impressions          rng.IntRange `yaml:"impressions"`
	EngagementMultiplier float64      `yaml:"engagement_multiplier"`
	PostsPerWeek         int          `yaml:"posts_per_week"`
	Views                rng.IntRange `yaml:"views"`
}

// ContentConfig holds the content-item pool parameters.
type ContentConfig struct {
	NumPosts       int          `yaml:"num_posts"`
	Views          rng.IntRange `yaml:"views"`
	LikesShare     rng.Range    `yaml:"likes_share"`
	CommentsShare  rng.Range    `yaml:"comments_share"`
	SharesShare    rng.Range    `yaml:"shares_share"`
	SavesShare     rng.Range    `yaml:"saves_share"`
	LinkClickShare rng.Range    `yaml:"link_click_share"`
}

// CampaignConfig holds the paid-acquisition table parameters. Each funnel
// stage carries its own spend and volume baseline. Weekends dampen delivery
// instead of boosting it, because campaign budgets pace down off-peak.
type CampaignConfig struct {
	TrendLift         float64 `yaml:"trend_lift"`
	WeekendDampFactor float64 `yaml:"weekend_damp_factor"`

	SpendJitter  rng.Range `yaml:"spend_jitter"`
	VolumeJitter rng.Range `yaml:"volume_jitter"`

	Stages        []CampaignStageConfig `yaml:"stages"`
	Uncategorized UncategorizedConfig   `yaml:"uncategorized"`
}

// CampaignStageConfig is one funnel stage's daily baseline.
type CampaignStageConfig struct {
	Name            string    `yaml:"name"`
	BaseSpend       float64   `yaml:"base_spend"`
	BaseImpressions int       `yaml:"base_impressions"`
	BaseCTR         float64   `yaml:"base_ctr"`
	BaseOrders      int       `yaml:"base_orders"`
	AOV             rng.Range `yaml:"aov"`
}

// UncategorizedConfig sizes the unattributed spend rows mixed into the
// campaign table. Their derived ratios are deliberately left at zero so
// attribution-gap dashboards have something to surface.
type UncategorizedConfig struct {
	Rows        int          `yaml:"rows"`
	Spend       rng.Range    `yaml:"spend"`
	Impressions rng.IntRange `yaml:"impressions"`
	Clicks      rng.IntRange `yaml:"clicks"`
	Orders      rng.IntRange `yaml:"orders"`
	Revenue     rng.Range    `yaml:"revenue"`
}

// CohortConfig holds the monthly customer-cohort LTV parameters.
type CohortConfig struct {
	Months               int                      `yaml:"months"`
	Customers            rng.IntRange             `yaml:"customers"`
	Checkpoints          []CohortCheckpointConfig `yaml:"checkpoints"`
	Retention            rng.Range                `yaml:"retention"`
	RetentionHorizonDays int                      `yaml:"retention_horizon_days"`
	SecondOrderRate      rng.Range                `yaml:"second_order_rate"`
}

// CohortCheckpointConfig is one post-acquisition measurement point.
type CohortCheckpointConfig struct {
	Day int       `yaml:"day"`
	LTV rng.Range `yaml:"ltv"`
}

// RevOpsConfig holds the daily lead-pipeline parameters. The share ranges
// chain each stage off the previous one, so the pipeline narrows at every
// handoff.
type RevOpsConfig struct {
	Leads                rng.IntRange `yaml:"leads"`
	AIQualifiedShare     rng.Range    `yaml:"ai_qualified_share"`
	HumanContactShare    rng.Range    `yaml:"human_contact_share"`
	WinShare             rng.Range    `yaml:"win_share"`
	AIResponseSeconds    rng.Range    `yaml:"ai_response_seconds"`
	HumanResponseHours   rng.Range    `yaml:"human_response_hours"`
	DealSize             rng.Range    `yaml:"deal_size"`
	PipelineVelocityDays rng.Range    `yaml:"pipeline_velocity_days"`
}

// Default returns the full default configuration. The numeric ranges mirror
// the documented storefront profile: 3.5k-6.5k daily sessions with a 25%
// weekend boost, 15-30% bot traffic, mobile-dominant device mix, and the
// four-platform social program.
func Default() *Config {
	return &Config{
		Server: ServerConfig{Port: 8080, Host: "localhost"},
		Store:  StoreConfig{Type: "memory", KeyPrefix: "growthos"},
		Generation: GenerationConfig{
			Seed:       42,
			WindowDays: 30,
		},
		Traffic: TrafficConfig{
			TotalSessions:      rng.IntRange{Min: 3500, Max: 6500},
			WeekendBoostFactor: 1.25,
			BotShare:           rng.Range{Min: 0.15, Max: 0.30},
			BotSub1s:           rng.Range{Min: 0.40, Max: 0.60},
			BotKnownIPs:        rng.Range{Min: 0.20, Max: 0.35},
			MobileShare:        rng.Range{Min: 0.62, Max: 0.72},
			DesktopShare:       rng.Range{Min: 0.22, Max: 0.30},
			Sources: []SourceShareConfig{
				{Name: "Google Ads", Share: rng.Range{Min: 0.20, Max: 0.28}},
				{Name: "Meta Ads", Share: rng.Range{Min: 0.18, Max: 0.25}},
				{Name: "TikTok Ads", Share: rng.Range{Min: 0.08, Max: 0.15}},
				{Name: "Organic Search", Share: rng.Range{Min: 0.12, Max: 0.18}},
				{Name: "Direct", Share: rng.Range{Min: 0.10, Max: 0.15}},
				{Name: "Email", Share: rng.Range{Min: 0.05, Max: 0.10}},
			},
			SourceShareTotal:    0.92,
			RemainderSource:     "Social Organic",
			LCPMobile:           rng.Range{Min: 2.0, Max: 4.5},
			LCPDesktop:          rng.Range{Min: 1.2, Max: 2.8},
			LCPSpikeProbability: 0.08,
			LCPSpikeMobile:      rng.Range{Min: 4.0, Max: 6.5},
		},
		Funnel: FunnelConfig{
			Overall: StageRates{
				Product:  rng.Range{Min: 0.55, Max: 0.70},
				Cart:     rng.Range{Min: 0.25, Max: 0.40},
				Checkout: rng.Range{Min: 0.50, Max: 0.70},
				Purchase: rng.Range{Min: 0.45, Max: 0.65},
			},
			AOV: rng.Range{Min: 45, Max: 95},
			Devices: []DimensionFunnelConfig{
				{Name: "Mobile", Stages: StageRates{
					Product:  rng.Range{Min: 0.45, Max: 0.60},
					Cart:     rng.Range{Min: 0.20, Max: 0.32},
					Checkout: rng.Range{Min: 0.45, Max: 0.60},
					Purchase: rng.Range{Min: 0.35, Max: 0.55},
				}},
				{Name: "Desktop", Stages: StageRates{
					Product:  rng.Range{Min: 0.60, Max: 0.78},
					Cart:     rng.Range{Min: 0.30, Max: 0.45},
					Checkout: rng.Range{Min: 0.55, Max: 0.72},
					Purchase: rng.Range{Min: 0.50, Max: 0.70},
				}},
				{Name: "Tablet", Stages: StageRates{
					Product:  rng.Range{Min: 0.50, Max: 0.68},
					Cart:     rng.Range{Min: 0.25, Max: 0.38},
					Checkout: rng.Range{Min: 0.48, Max: 0.65},
					Purchase: rng.Range{Min: 0.42, Max: 0.60},
				}},
			},
			Sources: []DimensionFunnelConfig{
				{Name: "Google Ads", Stages: StageRates{
					Product:  rng.Range{Min: 0.50, Max: 0.65},
					Cart:     rng.Range{Min: 0.25, Max: 0.38},
					Checkout: rng.Range{Min: 0.50, Max: 0.65},
					Purchase: rng.Range{Min: 0.45, Max: 0.62},
				}},
				{Name: "Meta Ads", Stages: StageRates{
					Product:  rng.Range{Min: 0.40, Max: 0.55},
					Cart:     rng.Range{Min: 0.22, Max: 0.35},
					Checkout: rng.Range{Min: 0.45, Max: 0.60},
					Purchase: rng.Range{Min: 0.40, Max: 0.58},
				}},
				{Name: "TikTok Ads", Stages: StageRates{
					Product:  rng.Range{Min: 0.35, Max: 0.50},
					Cart:     rng.Range{Min: 0.18, Max: 0.30},
					Checkout: rng.Range{Min: 0.40, Max: 0.58},
					Purchase: rng.Range{Min: 0.35, Max: 0.55},
				}},
				{Name: "Organic Search", Stages: StageRates{
					Product:  rng.Range{Min: 0.65, Max: 0.80},
					Cart:     rng.Range{Min: 0.35, Max: 0.48},
					Checkout: rng.Range{Min: 0.58, Max: 0.72},
					Purchase: rng.Range{Min: 0.55, Max: 0.70},
				}},
				{Name: "Direct", Stages: StageRates{
					Product:  rng.Range{Min: 0.60, Max: 0.75},
					Cart:     rng.Range{Min: 0.32, Max: 0.45},
					Checkout: rng.Range{Min: 0.55, Max: 0.70},
					Purchase: rng.Range{Min: 0.50, Max: 0.68},
				}},
				{Name: "Email", Stages: StageRates{
					Product:  rng.Range{Min: 0.55, Max: 0.72},
					Cart:     rng.Range{Min: 0.30, Max: 0.42},
					Checkout: rng.Range{Min: 0.52, Max: 0.68},
					Purchase: rng.Range{Min: 0.48, Max: 0.65},
				}},
				{Name: "Social Organic", Stages: StageRates{
					Product:  rng.Range{Min: 0.38, Max: 0.55},
					Cart:     rng.Range{Min: 0.20, Max: 0.32},
					Checkout: rng.Range{Min: 0.42, Max: 0.60},
					Purchase: rng.Range{Min: 0.38, Max: 0.55},
				}},
			},
		},
		PageSpeed: PageSpeedConfig{
			LCPMobile:        rng.Range{Min: 2.2, Max: 4.2},
			LCPDesktop:       rng.Range{Min: 1.0, Max: 2.5},
			FIDMobile:        rng.Range{Min: 80, Max: 250},
			FIDDesktop:       rng.Range{Min: 30, Max: 120},
			CLSMobile:        rng.Range{Min: 0.05, Max: 0.25},
			CLSDesktop:       rng.Range{Min: 0.02, Max: 0.12},
			SpikeProbability: 0.07,
			SpikeLCPMobile:   rng.Range{Min: 4.5, Max: 7.0},
			SpikeFIDMobile:   rng.Range{Min: 300, Max: 500},
		},
		Organic: OrganicConfig{
			WeekendBoostFactor: 1.2,
			DipProbability:     0.15,
			DipRange:           rng.IntRange{Min: 10, Max: 50},
			NoiseFactor:        rng.Range{Min: 0.6, Max: 1.4},
			CommentsShare:      rng.Range{Min: 0.05, Max: 0.15},
			SharesShare:        rng.Range{Min: 0.03, Max: 0.10},
			SavesShare:         rng.Range{Min: 0.08, Max: 0.20},
			ProfileVisitShare:  rng.Range{Min: 0.02, Max: 0.06},
			LinkClickShare:     rng.Range{Min: 0.10, Max: 0.30},
			Platforms: []PlatformConfig{
				{
					Name:                 "Instagram",
					BaseFollowers:        45200,
					DailyGrowth:          rng.IntRange{Min: 50, Max: 250},
					Impressions:          rng.IntRange{Min: 15000, Max: 35000},
					EngagementMultiplier: 0.065,
					PostsPerWeek:         5,
					Views:                rng.IntRange{Min: 8000, Max: 25000},
				},
				{
					Name:                 "TikTok",
					BaseFollowers:        28500,
					DailyGrowth:          rng.IntRange{Min: 80, Max: 400},
					Impressions:          rng.IntRange{Min: 25000, Max: 80000},
					EngagementMultiplier: 0.08,
					PostsPerWeek:         4,
					Views:                rng.IntRange{Min: 20000, Max: 100000},
				},
				{
					Name:                 "YouTube",
					BaseFollowers:        12800,
					DailyGrowth:          rng.IntRange{Min: 10, Max: 80},
					Impressions:          rng.IntRange{Min: 5000, Max: 20000},
					EngagementMultiplier: 0.045,
					PostsPerWeek:         2,
					Views:                rng.IntRange{Min: 3000, Max: 15000},
				},
				{
					Name:                 "LinkedIn",
					BaseFollowers:        8900,
					DailyGrowth:          rng.IntRange{Min: 5, Max: 40},
					Impressions:          rng.IntRange{Min: 3000, Max: 12000},
					EngagementMultiplier: 0.055,
					PostsPerWeek:         3,
					Views:                rng.IntRange{Min: 2000, Max: 8000},
				},
			},
		},
		Content: ContentConfig{
			NumPosts:       30,
			Views:          rng.IntRange{Min: 500, Max: 150000},
			LikesShare:     rng.Range{Min: 0.03, Max: 0.12},
			CommentsShare:  rng.Range{Min: 0.05, Max: 0.20},
			SharesShare:    rng.Range{Min: 0.02, Max: 0.15},
			SavesShare:     rng.Range{Min: 0.05, Max: 0.25},
			LinkClickShare: rng.Range{Min: 0.005, Max: 0.03},
		},
		Campaign: CampaignConfig{
			TrendLift:         0.3,
			WeekendDampFactor: 0.7,
			SpendJitter:       rng.Range{Min: 0.85, Max: 1.15},
			VolumeJitter:      rng.Range{Min: 0.90, Max: 1.10},
			Stages: []CampaignStageConfig{
				{Name: "TOF", BaseSpend: 5000, BaseImpressions: 500000, BaseCTR: 2.5, BaseOrders: 150, AOV: rng.Range{Min: 80, Max: 150}},
				{Name: "MOF", BaseSpend: 3000, BaseImpressions: 200000, BaseCTR: 3.5, BaseOrders: 120, AOV: rng.Range{Min: 80, Max: 150}},
				{Name: "BOF", BaseSpend: 2000, BaseImpressions: 100000, BaseCTR: 5.0, BaseOrders: 100, AOV: rng.Range{Min: 80, Max: 150}},
				{Name: "RET", BaseSpend: 1000, BaseImpressions: 50000, BaseCTR: 6.0, BaseOrders: 80, AOV: rng.Range{Min: 100, Max: 200}},
			},
			Uncategorized: UncategorizedConfig{
				Rows:        5,
				Spend:       rng.Range{Min: 500, Max: 2000},
				Impressions: rng.IntRange{Min: 10000, Max: 50000},
				Clicks:      rng.IntRange{Min: 200, Max: 1000},
				Orders:      rng.IntRange{Min: 10, Max: 50},
				Revenue:     rng.Range{Min: 1000, Max: 5000},
			},
		},
		Cohort: CohortConfig{
			Months:    6,
			Customers: rng.IntRange{Min: 800, Max: 1500},
			Checkpoints: []CohortCheckpointConfig{
				{Day: 0, LTV: rng.Range{Min: 80, Max: 120}},
				{Day: 30, LTV: rng.Range{Min: 100, Max: 180}},
				{Day: 60, LTV: rng.Range{Min: 130, Max: 250}},
				{Day: 90, LTV: rng.Range{Min: 150, Max: 300}},
			},
			Retention:            rng.Range{Min: 0.40, Max: 0.70},
			RetentionHorizonDays: 180,
			SecondOrderRate:      rng.Range{Min: 0.15, Max: 0.35},
		},
		RevOps: RevOpsConfig{
			Leads:                rng.IntRange{Min: 50, Max: 150},
			AIQualifiedShare:     rng.Range{Min: 0.60, Max: 0.80},
			HumanContactShare:    rng.Range{Min: 0.50, Max: 0.80},
			WinShare:             rng.Range{Min: 0.20, Max: 0.40},
			AIResponseSeconds:    rng.Range{Min: 10, Max: 20},
			HumanResponseHours:   rng.Range{Min: 2, Max: 8},
			DealSize:             rng.Range{Min: 1000, Max: 5000},
			PipelineVelocityDays: rng.Range{Min: 3, Max: 14},
		},
	}
}

// Load reads and parses the configuration file over the defaults. Fields
// absent from the file keep their default values; a missing file yields the
// defaults unchanged.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFromEnv loads configuration with environment variable overrides.
// It loads a .env file (if present) before reading env vars, so local
// overrides can live in .env and real env vars win in deployment.
func LoadFromEnv(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}

	if host := os.Getenv("SERVER_HOST"); host != "" {
		cfg.Server.Host = host
	}
	if port := os.Getenv("SERVER_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			cfg.Server.Port = p
		}
	}
	if seed := os.Getenv("GENERATION_SEED"); seed != "" {
		if s, err := strconv.ParseInt(seed, 10, 64); err == nil {
			cfg.Generation.Seed = s
		}
	}
	if days := os.Getenv("GENERATION_WINDOW_DAYS"); days != "" {
		if d, err := strconv.Atoi(days); err == nil {
			cfg.Generation.WindowDays = d
		}
	}
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		cfg.Store.Type = "redis"
		cfg.Store.RedisAddr = addr
	}
	if pass := os.Getenv("REDIS_PASSWORD"); pass != "" {
		cfg.Store.RedisPassword = pass
	}

	return cfg, nil
}

// Validate checks every tunable against the generator preconditions:
// well-formed ranges, probabilities inside [0,1], a positive window, and
// non-empty dimension tables. The first violation is returned as an
// *rng.InputError.
func (c *Config) Validate() error {
	if err := rng.ValidateWindow(c.Generation.WindowDays); err != nil {
		return err
	}

	if err := c.Traffic.Validate(); err != nil {
		return err
	}
	if err := c.Funnel.Validate(); err != nil {
		return err
	}
	if err := c.PageSpeed.Validate(); err != nil {
		return err
	}
	if err := c.Organic.Validate(); err != nil {
		return err
	}
	if err := c.Content.Validate(); err != nil {
		return err
	}
	if err := c.Campaign.Validate(); err != nil {
		return err
	}
	if err := c.Cohort.Validate(); err != nil {
		return err
	}
	return c.RevOps.Validate()
}

// fieldRange pairs a config path with its range. Validation walks these in
// declaration order so the first reported violation is deterministic.
type fieldRange struct {
	field string
	r     rng.Range
}

func validateRanges(pairs []fieldRange) error {
	for _, p := range pairs {
		if err := p.r.Validate(p.field); err != nil {
			return err
		}
	}
	return nil
}

func validateProportions(pairs []fieldRange) error {
	for _, p := range pairs {
		if err := p.r.ValidateProportion(p.field); err != nil {
			return err
		}
	}
	return nil
}

func (c *TrafficConfig) Validate() error {
	if err := c.TotalSessions.Validate("traffic.total_sessions"); err != nil {
		return err
	}
	if c.WeekendBoostFactor <= 0 {
		return &rng.InputError{Field: "traffic.weekend_boost_factor", Reason: "must be positive"}
	}
	if err := validateProportions([]fieldRange{
		{"traffic.bot_share", c.BotShare},
		{"traffic.bot_sub_1s_share", c.BotSub1s},
		{"traffic.bot_known_ips_share", c.BotKnownIPs},
		{"traffic.mobile_share", c.MobileShare},
		{"traffic.desktop_share", c.DesktopShare},
	}); err != nil {
		return err
	}
	if err := validateRanges([]fieldRange{
		{"traffic.lcp_mobile", c.LCPMobile},
		{"traffic.lcp_desktop", c.LCPDesktop},
		{"traffic.lcp_spike_mobile", c.LCPSpikeMobile},
	}); err != nil {
		return err
	}
	if len(c.Sources) == 0 {
		return &rng.InputError{Field: "traffic.sources", Reason: "at least one source channel is required"}
	}
	for _, src := range c.Sources {
		if err := src.Share.ValidateProportion(fmt.Sprintf("traffic.sources[%s]", src.Name)); err != nil {
			return err
		}
	}
	if c.RemainderSource == "" {
		return &rng.InputError{Field: "traffic.remainder_source", Reason: "must name the channel absorbing the split remainder"}
	}
	if c.SourceShareTotal <= 0 || c.SourceShareTotal > 1 {
		return &rng.InputError{Field: "traffic.source_share_total", Reason: "must be in (0, 1]"}
	}
	return rng.ValidateProbability("traffic.lcp_spike_probability", c.LCPSpikeProbability)
}

func (s StageRates) validate(prefix string) error {
	return validateProportions([]fieldRange{
		{prefix + ".product", s.Product},
		{prefix + ".cart", s.Cart},
		{prefix + ".checkout", s.Checkout},
		{prefix + ".purchase", s.Purchase},
	})
}

func (c *FunnelConfig) Validate() error {
	if err := c.Overall.validate("funnel.overall"); err != nil {
		return err
	}
	if err := c.AOV.Validate("funnel.aov"); err != nil {
		return err
	}
	if len(c.Devices) == 0 {
		return &rng.InputError{Field: "funnel.devices", Reason: "at least one device is required"}
	}
	for _, d := range c.Devices {
		if err := d.Stages.validate("funnel.devices." + d.Name); err != nil {
			return err
		}
	}
	if len(c.Sources) == 0 {
		return &rng.InputError{Field: "funnel.sources", Reason: "at least one source is required"}
	}
	for _, s := range c.Sources {
		if err := s.Stages.validate("funnel.sources." + s.Name); err != nil {
			return err
		}
	}
	return nil
}

func (c *PageSpeedConfig) Validate() error {
	if err := validateRanges([]fieldRange{
		{"page_speed.lcp_mobile", c.LCPMobile},
		{"page_speed.lcp_desktop", c.LCPDesktop},
		{"page_speed.fid_mobile", c.FIDMobile},
		{"page_speed.fid_desktop", c.FIDDesktop},
		{"page_speed.cls_mobile", c.CLSMobile},
		{"page_speed.cls_desktop", c.CLSDesktop},
		{"page_speed.spike_lcp_mobile", c.SpikeLCPMobile},
		{"page_speed.spike_fid_mobile", c.SpikeFIDMobile},
	}); err != nil {
		return err
	}
	return rng.ValidateProbability("page_speed.spike_probability", c.SpikeProbability)
}

func (c *OrganicConfig) Validate() error {
	if c.WeekendBoostFactor <= 0 {
		return &rng.InputError{Field: "organic.weekend_boost_factor", Reason: "must be positive"}
	}
	if err := rng.ValidateProbability("organic.dip_probability", c.DipProbability); err != nil {
		return err
	}
	if err := c.DipRange.Validate("organic.dip_range"); err != nil {
		return err
	}
	if err := c.NoiseFactor.Validate("organic.noise_factor"); err != nil {
		return err
	}
	if err := validateProportions([]fieldRange{
		{"organic.comments_share", c.CommentsShare},
		{"organic.shares_share", c.SharesShare},
		{"organic.saves_share", c.SavesShare},
		{"organic.profile_visit_share", c.ProfileVisitShare},
		{"organic.link_click_share", c.LinkClickShare},
	}); err != nil {
		return err
	}
	if len(c.Platforms) == 0 {
		return &rng.InputError{Field: "organic.platforms", Reason: "at least one platform is required"}
	}
	for _, p := range c.Platforms {
		if p.Name == "" {
			return &rng.InputError{Field: "organic.platforms", Reason: "platform name must not be empty"}
		}
		if err := p.DailyGrowth.Validate("organic.platforms." + p.Name + ".daily_growth"); err != nil {
			return err
		}
		if err := p.Impressions.Validate("organic.platforms." + p.Name + ".impressions"); err != nil {
			return err
		}
		if err := p.Views.Validate("organic.platforms." + p.Name + ".views"); err != nil {
			return err
		}
		if p.PostsPerWeek < 0 || p.PostsPerWeek > 7 {
			return &rng.InputError{Field: "organic.platforms." + p.Name + ".posts_per_week", Reason: "must be in [0, 7]"}
		}
	}
	return nil
}

func (c *ContentConfig) Validate() error {
	if c.NumPosts < 0 {
		return &rng.InputError{Field: "content.num_posts", Reason: "must be non-negative"}
	}
	if err := c.Views.Validate("content.views"); err != nil {
		return err
	}
	return validateProportions([]fieldRange{
		{"content.likes_share", c.LikesShare},
		{"content.comments_share", c.CommentsShare},
		{"content.shares_share", c.SharesShare},
		{"content.saves_share", c.SavesShare},
		{"content.link_click_share", c.LinkClickShare},
	})
}

func (c *CampaignConfig) Validate() error {
	if c.TrendLift < 0 {
		return &rng.InputError{Field: "campaign.trend_lift", Reason: "must be non-negative"}
	}
	if c.WeekendDampFactor <= 0 {
		return &rng.InputError{Field: "campaign.weekend_damp_factor", Reason: "must be positive"}
	}
	if err := validateRanges([]fieldRange{
		{"campaign.spend_jitter", c.SpendJitter},
		{"campaign.volume_jitter", c.VolumeJitter},
	}); err != nil {
		return err
	}
	if len(c.Stages) == 0 {
		return &rng.InputError{Field: "campaign.stages", Reason: "at least one stage is required"}
	}
	for _, s := range c.Stages {
		if s.Name == "" {
			return &rng.InputError{Field: "campaign.stages", Reason: "stage name must not be empty"}
		}
		prefix := "campaign.stages." + s.Name
		if s.BaseSpend < 0 {
			return &rng.InputError{Field: prefix + ".base_spend", Reason: "must be non-negative"}
		}
		if s.BaseImpressions < 0 {
			return &rng.InputError{Field: prefix + ".base_impressions", Reason: "must be non-negative"}
		}
		if s.BaseCTR < 0 || s.BaseCTR > 100 {
			return &rng.InputError{Field: prefix + ".base_ctr", Reason: "must be a percentage in [0, 100]"}
		}
		if s.BaseOrders < 0 {
			return &rng.InputError{Field: prefix + ".base_orders", Reason: "must be non-negative"}
		}
		if err := s.AOV.Validate(prefix + ".aov"); err != nil {
			return err
		}
	}
	u := c.Uncategorized
	if u.Rows < 0 {
		return &rng.InputError{Field: "campaign.uncategorized.rows", Reason: "must be non-negative"}
	}
	if err := u.Spend.Validate("campaign.uncategorized.spend"); err != nil {
		return err
	}
	if err := u.Impressions.Validate("campaign.uncategorized.impressions"); err != nil {
		return err
	}
	if err := u.Clicks.Validate("campaign.uncategorized.clicks"); err != nil {
		return err
	}
	if err := u.Orders.Validate("campaign.uncategorized.orders"); err != nil {
		return err
	}
	return u.Revenue.Validate("campaign.uncategorized.revenue")
}

func (c *CohortConfig) Validate() error {
	if c.Months <= 0 {
		return &rng.InputError{Field: "cohort.months", Reason: "must be positive"}
	}
	if err := c.Customers.Validate("cohort.customers"); err != nil {
		return err
	}
	if len(c.Checkpoints) == 0 {
		return &rng.InputError{Field: "cohort.checkpoints", Reason: "at least one checkpoint is required"}
	}
	prev := -1
	for _, cp := range c.Checkpoints {
		if cp.Day <= prev {
			return &rng.InputError{Field: "cohort.checkpoints", Reason: "days must be ascending and non-negative"}
		}
		prev = cp.Day
		if err := cp.LTV.Validate(fmt.Sprintf("cohort.checkpoints[%d].ltv", cp.Day)); err != nil {
			return err
		}
	}
	if c.RetentionHorizonDays <= c.Checkpoints[len(c.Checkpoints)-1].Day {
		return &rng.InputError{Field: "cohort.retention_horizon_days", Reason: "must exceed the last checkpoint day"}
	}
	return validateProportions([]fieldRange{
		{"cohort.retention", c.Retention},
		{"cohort.second_order_rate", c.SecondOrderRate},
	})
}

func (c *RevOpsConfig) Validate() error {
	if err := c.Leads.Validate("revops.leads"); err != nil {
		return err
	}
	if err := validateProportions([]fieldRange{
		{"revops.ai_qualified_share", c.AIQualifiedShare},
		{"revops.human_contact_share", c.HumanContactShare},
		{"revops.win_share", c.WinShare},
	}); err != nil {
		return err
	}
	return validateRanges([]fieldRange{
		{"revops.ai_response_seconds", c.AIResponseSeconds},
		{"revops.human_response_hours", c.HumanResponseHours},
		{"revops.deal_size", c.DealSize},
		{"revops.pipeline_velocity_days", c.PipelineVelocityDays},
	})
}
