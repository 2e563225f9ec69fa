// Package metrics holds the derived-ratio formulas applied uniformly across
// every generated table. All functions are pure and guard division by zero:
// a zero denominator yields 0, never NaN or an error.
package metrics

import "math"

// Ratio returns num/den*100, or 0 when den is 0.
func Ratio(num, den float64) float64 {
	if den == 0 {
		return 0
	}
	return num / den * 100
}

// Round2 rounds to two decimal places, the precision stored on every
// derived ratio.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// CVR is the conversion rate: purchases over entry sessions.
func CVR(purchases, entrySessions int) float64 {
	return Round2(Ratio(float64(purchases), float64(entrySessions)))
}

// BounceRate is the share of entry sessions that never reached a product page.
func BounceRate(entrySessions, productPage int) float64 {
	return Round2(Ratio(float64(entrySessions-productPage), float64(entrySessions)))
}

// CartAbandonment is the share of carts that never converted to a purchase.
func CartAbandonment(addToCart, purchases int) float64 {
	return Round2(Ratio(float64(addToCart-purchases), float64(addToCart)))
}

// BotShare is the bot percentage of total sessions.
func BotShare(botSessions, totalSessions int) float64 {
	return Round2(Ratio(float64(botSessions), float64(totalSessions)))
}

// EngagementRate is (likes+comments+shares) over impressions.
func EngagementRate(likes, comments, shares, impressions int) float64 {
	return Round2(Ratio(float64(likes+comments+shares), float64(impressions)))
}

// ShareOfVoice is (saves+shares) over impressions.
func ShareOfVoice(saves, shares, impressions int) float64 {
	return Round2(Ratio(float64(saves+shares), float64(impressions)))
}

// ProfileConversionRate is link clicks over profile visits.
func ProfileConversionRate(linkClicks, profileVisits int) float64 {
	return Round2(Ratio(float64(linkClicks), float64(profileVisits)))
}

// ViralityScore is (shares+saves) over views.
func ViralityScore(shares, saves, views int) float64 {
	return Round2(Ratio(float64(shares+saves), float64(views)))
}

// ConversionScore is link clicks over views.
func ConversionScore(linkClicks, views int) float64 {
	return Round2(Ratio(float64(linkClicks), float64(views)))
}

// CTR is the click-through rate: clicks over impressions.
func CTR(clicks, impressions int) float64 {
	return Round2(Ratio(float64(clicks), float64(impressions)))
}

// CPM is ad spend per thousand impressions.
func CPM(spend float64, impressions int) float64 {
	if impressions == 0 {
		return 0
	}
	return Round2(spend / float64(impressions) * 1000)
}

// CPC is ad spend per click.
func CPC(spend float64, clicks int) float64 {
	if clicks == 0 {
		return 0
	}
	return Round2(spend / float64(clicks))
}

// CPA is ad spend per order.
func CPA(spend float64, orders int) float64 {
	if orders == 0 {
		return 0
	}
	return Round2(spend / float64(orders))
}

// ROAS is return on ad spend: revenue over spend, as a multiple rather than
// a percentage.
func ROAS(revenue, spend float64) float64 {
	if spend == 0 {
		return 0
	}
	return Round2(revenue / spend)
}

// OrderConversionRate is orders over clicks.
func OrderConversionRate(orders, clicks int) float64 {
	return Round2(Ratio(float64(orders), float64(clicks)))
}

// FumbleRate is the share of qualified leads never contacted by a human.
func FumbleRate(fumbled, qualified int) float64 {
	return Round2(Ratio(float64(fumbled), float64(qualified)))
}
