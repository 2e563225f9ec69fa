// Package funnel generates the conversion-funnel tables. The overall funnel
// consumes per-day human sessions from the traffic table; the device and
// source variants replay the same stage logic over the corresponding split
// counts with dimension-specific retention ranges. Stage counts are built by
// floored multiplicative draws, so the landing, product, cart, checkout, and
// purchase sequence is non-increasing by construction.
package funnel

import (
	"math"

	"github.com/marktivo/growth-os/internal/config"
	"github.com/marktivo/growth-os/internal/metrics"
	"github.com/marktivo/growth-os/internal/rng"
	"github.com/marktivo/growth-os/internal/traffic"
)

// DailyFunnel is one day of the overall storefront funnel.
type DailyFunnel struct {
	Date          string  `json:"date"`
	EntrySessions int     `json:"entry_sessions"`
	ProductPage   int     `json:"product_page"`
	AddToCart     int     `json:"add_to_cart"`
	Checkout      int     `json:"checkout"`
	Purchase      int     `json:"purchase"`
	BounceRate    float64 `json:"bounce_rate"`
	CartAbandon   float64 `json:"cart_abandonment"`
	CVR           float64 `json:"cvr"`
	AOV           float64 `json:"aov"`
	Revenue       float64 `json:"revenue"`
}

// DimensionFunnel is one day of the funnel for a single device or source.
type DimensionFunnel struct {
	Date          string  `json:"date"`
	Dimension     string  `json:"dimension"`
	EntrySessions int     `json:"entry_sessions"`
	ProductPage   int     `json:"product_page"`
	AddToCart     int     `json:"add_to_cart"`
	Checkout      int     `json:"checkout"`
	Purchase      int     `json:"purchase"`
	BounceRate    float64 `json:"bounce_rate"`
	CartAbandon   float64 `json:"cart_abandonment"`
	CVR           float64 `json:"cvr"`
}

// stages applies the four retention draws to an entry count.
func stages(eng *rng.Engine, entry int, rates config.StageRates) (product, cart, checkout, purchase int) {
	product = int(float64(entry) * eng.Draw(rates.Product))
	cart = int(float64(product) * eng.Draw(rates.Cart))
	checkout = int(float64(cart) * eng.Draw(rates.Checkout))
	purchase = int(float64(checkout) * eng.Draw(rates.Purchase))
	return
}

// Generate produces the overall daily funnel from the traffic rows. The
// entry count of each day is that day's human sessions, passed explicitly
// so the tables reconcile without shared state.
func Generate(trafficRows []traffic.DailyTraffic, seed int64, cfg config.FunnelConfig) ([]DailyFunnel, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	eng := rng.New(seed)
	rows := make([]DailyFunnel, 0, len(trafficRows))

	for _, t := range trafficRows {
		product, cart, checkout, purchase := stages(eng, t.HumanSessions, cfg.Overall)
		aov := round2(eng.Draw(cfg.AOV))

		rows = append(rows, DailyFunnel{
			Date:          t.Date,
			EntrySessions: t.HumanSessions,
			ProductPage:   product,
			AddToCart:     cart,
			Checkout:      checkout,
			Purchase:      purchase,
			BounceRate:    metrics.BounceRate(t.HumanSessions, product),
			CartAbandon:   metrics.CartAbandonment(cart, purchase),
			CVR:           metrics.CVR(purchase, t.HumanSessions),
			AOV:           aov,
			Revenue:       round2(float64(purchase) * aov),
		})
	}
	return rows, nil
}

// GenerateByDevice replays the funnel per device type. Rows are emitted even
// for zero-session days so dimension sums cover a complete row set.
func GenerateByDevice(trafficRows []traffic.DailyTraffic, seed int64, cfg config.FunnelConfig) ([]DimensionFunnel, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	eng := rng.New(seed)
	rows := make([]DimensionFunnel, 0, len(trafficRows)*len(cfg.Devices))

	for _, t := range trafficRows {
		sessions := map[string]int{
			"Mobile":  t.MobileSessions,
			"Desktop": t.DesktopSessions,
			"Tablet":  t.TabletSessions,
		}
		for _, dev := range cfg.Devices {
			rows = append(rows, dimensionRow(eng, t.Date, dev.Name, sessions[dev.Name], dev.Stages))
		}
	}
	return rows, nil
}

// GenerateBySource replays the funnel per traffic source.
func GenerateBySource(trafficRows []traffic.DailyTraffic, seed int64, cfg config.FunnelConfig) ([]DimensionFunnel, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	eng := rng.New(seed)
	rows := make([]DimensionFunnel, 0, len(trafficRows)*len(cfg.Sources))

	for _, t := range trafficRows {
		for _, src := range cfg.Sources {
			rows = append(rows, dimensionRow(eng, t.Date, src.Name, t.SourceSessions[src.Name], src.Stages))
		}
	}
	return rows, nil
}

func dimensionRow(eng *rng.Engine, date, name string, entry int, rates config.StageRates) DimensionFunnel {
	product, cart, checkout, purchase := stages(eng, entry, rates)
	return DimensionFunnel{
		Date:          date,
		Dimension:     name,
		EntrySessions: entry,
		ProductPage:   product,
		AddToCart:     cart,
		Checkout:      checkout,
		Purchase:      purchase,
		BounceRate:    metrics.BounceRate(entry, product),
		CartAbandon:   metrics.CartAbandonment(cart, purchase),
		CVR:           metrics.CVR(purchase, entry),
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
