package rng

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUniformBounds(t *testing.T) {
	eng := New(1)
	for i := 0; i < 1000; i++ {
		v := eng.Uniform(2.0, 4.5)
		assert.GreaterOrEqual(t, v, 2.0)
		assert.Less(t, v, 4.5)
	}
}

func TestUniformDegenerateRange(t *testing.T) {
	eng := New(1)
	for i := 0; i < 100; i++ {
		assert.Equal(t, 3.0, eng.Uniform(3.0, 3.0))
	}
}

func TestUniformIntBounds(t *testing.T) {
	eng := New(7)
	seen := map[int]bool{}
	for i := 0; i < 1000; i++ {
		v := eng.UniformInt(3500, 6500)
		require.GreaterOrEqual(t, v, 3500)
		require.LessOrEqual(t, v, 6500)
		seen[v] = true
	}
	// A thousand draws over a 3000-wide range should not collapse to a point.
	assert.Greater(t, len(seen), 100)
}

func TestUniformIntDegenerateRange(t *testing.T) {
	eng := New(7)
	for i := 0; i < 100; i++ {
		assert.Equal(t, 42, eng.UniformInt(42, 42))
	}
}

func TestSameSeedSameSequence(t *testing.T) {
	a := New(99)
	b := New(99)
	for i := 0; i < 500; i++ {
		assert.Equal(t, a.Uniform(0, 1), b.Uniform(0, 1))
		assert.Equal(t, a.UniformInt(0, 1000), b.UniformInt(0, 1000))
		assert.Equal(t, a.Bool(0.5), b.Bool(0.5))
	}
}

func TestDifferentSeedsDiverge(t *testing.T) {
	a := New(1)
	b := New(2)
	same := 0
	for i := 0; i < 100; i++ {
		if a.Uniform(0, 1) == b.Uniform(0, 1) {
			same++
		}
	}
	assert.Less(t, same, 5)
}

func TestUniformPanicsOnInvertedRange(t *testing.T) {
	eng := New(1)
	assert.Panics(t, func() { eng.Uniform(5, 1) })
	assert.Panics(t, func() { eng.UniformInt(5, 1) })
}

func TestBoolExtremes(t *testing.T) {
	eng := New(3)
	for i := 0; i < 100; i++ {
		assert.False(t, eng.Bool(0))
		assert.True(t, eng.Bool(1))
	}
}

func TestWeekendBoost(t *testing.T) {
	eng := New(1)
	saturday := time.Date(2025, 6, 7, 0, 0, 0, 0, time.UTC)
	monday := time.Date(2025, 6, 9, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, 125.0, eng.WeekendBoost(100, saturday, 1.25))
	assert.Equal(t, 100.0, eng.WeekendBoost(100, monday, 1.25))

	assert.True(t, IsWeekend(saturday))
	assert.True(t, IsWeekend(saturday.AddDate(0, 0, 1)))
	assert.False(t, IsWeekend(monday))
}

func TestPartitionSumsExactly(t *testing.T) {
	parts := Partition(1000, []float64{0.5, 0.3})
	require.Len(t, parts, 3)
	assert.Equal(t, 500, parts[0])
	assert.Equal(t, 300, parts[1])
	assert.Equal(t, 200, parts[2])
}

func TestPartitionFlooringRemainder(t *testing.T) {
	// 0.25 of 10 is 2.5, which floors to 2; the last part absorbs the rest.
	parts := Partition(10, []float64{0.25, 0.25})
	assert.Equal(t, []int{2, 2, 6}, parts)

	sum := 0
	for _, p := range parts {
		sum += p
	}
	assert.Equal(t, 10, sum)
}

func TestPartitionZeroTotal(t *testing.T) {
	parts := Partition(0, []float64{0.5, 0.3})
	assert.Equal(t, []int{0, 0, 0}, parts)
}

func TestPartitionSharesAtFullTotal(t *testing.T) {
	// Shares that consume everything leave the remainder part at zero.
	parts := Partition(10, []float64{1.0})
	assert.Equal(t, []int{10, 0}, parts)
}

func TestNormalize(t *testing.T) {
	out := Normalize([]float64{1, 1, 2}, 0.92)

	var sum float64
	for _, v := range out {
		sum += v
	}
	assert.InDelta(t, 0.92, sum, 1e-12)
	assert.InDelta(t, 0.23, out[0], 1e-12)
	assert.InDelta(t, 0.46, out[2], 1e-12)
}

func TestNormalizeZeroShares(t *testing.T) {
	out := Normalize([]float64{0, 0}, 0.92)
	assert.Equal(t, []float64{0, 0}, out)
}

func TestRangeValidate(t *testing.T) {
	assert.NoError(t, Range{Min: 1, Max: 2}.Validate("f"))
	assert.NoError(t, Range{Min: 2, Max: 2}.Validate("f"))

	err := Range{Min: 3, Max: 2}.Validate("traffic.bot_share")
	require.Error(t, err)
	inputErr, ok := err.(*InputError)
	require.True(t, ok)
	assert.Equal(t, "traffic.bot_share", inputErr.Field)
	assert.Contains(t, inputErr.Error(), "greater than max")
}

func TestRangeValidateProportion(t *testing.T) {
	assert.NoError(t, Range{Min: 0, Max: 1}.ValidateProportion("f"))
	assert.NoError(t, Range{Min: 0.2, Max: 0.8}.ValidateProportion("f"))

	err := Range{Min: -0.2, Max: 0.3}.ValidateProportion("traffic.mobile_share")
	require.Error(t, err)
	inputErr, ok := err.(*InputError)
	require.True(t, ok)
	assert.Equal(t, "traffic.mobile_share", inputErr.Field)
	assert.Contains(t, inputErr.Error(), "outside [0, 1]")

	assert.Error(t, Range{Min: 0.5, Max: 1.2}.ValidateProportion("f"))
	// An inverted range is still the first violation reported.
	assert.Contains(t, Range{Min: 0.9, Max: 0.1}.ValidateProportion("f").Error(), "greater than max")
}

func TestIntRangeValidate(t *testing.T) {
	assert.NoError(t, IntRange{Min: 5, Max: 5}.Validate("f"))
	assert.Error(t, IntRange{Min: 6, Max: 5}.Validate("f"))
}

func TestValidateProbability(t *testing.T) {
	assert.NoError(t, ValidateProbability("p", 0))
	assert.NoError(t, ValidateProbability("p", 1))
	assert.Error(t, ValidateProbability("p", -0.1))
	assert.Error(t, ValidateProbability("p", 1.1))
}

func TestValidateWindow(t *testing.T) {
	assert.NoError(t, ValidateWindow(1))
	assert.Error(t, ValidateWindow(0))
	assert.Error(t, ValidateWindow(-3))
}
