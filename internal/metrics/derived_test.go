package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRatio(t *testing.T) {
	assert.Equal(t, 50.0, Ratio(1, 2))
	assert.Equal(t, 0.0, Ratio(5, 0))
	assert.Equal(t, 0.0, Ratio(0, 0))
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 33.33, Round2(33.333333))
	assert.Equal(t, 33.34, Round2(33.336))
	assert.Equal(t, 0.0, Round2(0))
	assert.Equal(t, -2.5, Round2(-2.504))
}

func TestCVR(t *testing.T) {
	assert.Equal(t, 2.5, CVR(100, 4000))
	assert.Equal(t, 0.0, CVR(100, 0))
}

func TestBounceRate(t *testing.T) {
	// 4000 entries, 2500 reached a product page: 37.5% bounced.
	assert.Equal(t, 37.5, BounceRate(4000, 2500))
	assert.Equal(t, 0.0, BounceRate(0, 0))
}

func TestCartAbandonment(t *testing.T) {
	assert.Equal(t, 70.0, CartAbandonment(1000, 300))
	assert.Equal(t, 0.0, CartAbandonment(0, 0))
}

func TestBotShare(t *testing.T) {
	assert.Equal(t, 25.0, BotShare(1000, 4000))
	assert.Equal(t, 0.0, BotShare(10, 0))
}

func TestEngagementRate(t *testing.T) {
	// (650 + 80 + 70) / 10000 = 8%.
	assert.Equal(t, 8.0, EngagementRate(650, 80, 70, 10000))
	assert.Equal(t, 0.0, EngagementRate(10, 10, 10, 0))
}

func TestShareOfVoice(t *testing.T) {
	assert.Equal(t, 1.5, ShareOfVoice(100, 50, 10000))
	assert.Equal(t, 0.0, ShareOfVoice(1, 1, 0))
}

func TestProfileConversionRate(t *testing.T) {
	assert.Equal(t, 20.0, ProfileConversionRate(40, 200))
	assert.Equal(t, 0.0, ProfileConversionRate(40, 0))
}

func TestViralityScore(t *testing.T) {
	assert.Equal(t, 3.0, ViralityScore(200, 100, 10000))
	assert.Equal(t, 0.0, ViralityScore(1, 1, 0))
}

func TestConversionScore(t *testing.T) {
	assert.Equal(t, 0.5, ConversionScore(50, 10000))
	assert.Equal(t, 0.0, ConversionScore(50, 0))
}

func TestCTR(t *testing.T) {
	assert.Equal(t, 2.5, CTR(12500, 500000))
	assert.Equal(t, 0.0, CTR(100, 0))
}

func TestCPM(t *testing.T) {
	assert.Equal(t, 10.0, CPM(5000, 500000))
	assert.Equal(t, 0.0, CPM(5000, 0))
}

func TestCPC(t *testing.T) {
	assert.Equal(t, 0.4, CPC(5000, 12500))
	assert.Equal(t, 0.0, CPC(5000, 0))
}

func TestCPA(t *testing.T) {
	assert.Equal(t, 33.33, CPA(5000, 150))
	assert.Equal(t, 0.0, CPA(5000, 0))
}

func TestROAS(t *testing.T) {
	assert.Equal(t, 3.5, ROAS(17500, 5000))
	assert.Equal(t, 0.0, ROAS(17500, 0))
}

func TestOrderConversionRate(t *testing.T) {
	assert.Equal(t, 1.2, OrderConversionRate(150, 12500))
	assert.Equal(t, 0.0, OrderConversionRate(150, 0))
}

func TestFumbleRate(t *testing.T) {
	assert.Equal(t, 25.0, FumbleRate(20, 80))
	assert.Equal(t, 0.0, FumbleRate(0, 0))
}

func TestPurity(t *testing.T) {
	// Same inputs always give the same output.
	for i := 0; i < 10; i++ {
		assert.Equal(t, CVR(123, 4567), CVR(123, 4567))
		assert.Equal(t, EngagementRate(1, 2, 3, 4), EngagementRate(1, 2, 3, 4))
	}
}
