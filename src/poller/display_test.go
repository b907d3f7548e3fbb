package poller

import (
	"math"
	"testing"
	"time"

	"stock-watch/src/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestColorClassBoundaries(t *testing.T) {
	cases := []struct {
		pct  float64
		want string
	}{
		{-10, ColorDarkRed},
		{-2, ColorDarkRed},
		{math.Nextafter(-2, 0), ColorRed},
		{-0.01, ColorRed},
		{0, ColorGray},
		{math.Copysign(0, -1), ColorGray},
		{0.01, ColorGreen},
		{2, ColorGreen},
		{math.Nextafter(2, 3), ColorDarkGreen},
		{15, ColorDarkGreen},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, ColorClass(tc.pct), "pct=%v", tc.pct)
	}
}

func TestFlashClassAntisymmetric(t *testing.T) {
	prices := []float64{0.5, 50, 55, 100, 100.01}
	for _, a := range prices {
		for _, b := range prices {
			forward := FlashClass(a, true, b)
			backward := FlashClass(b, true, a)
			switch {
			case a == b:
				assert.Equal(t, FlashGray, forward)
				assert.Equal(t, FlashGray, backward)
			case forward == FlashRed:
				assert.Equal(t, FlashGreen, backward)
			default:
				assert.Equal(t, FlashGreen, forward)
				assert.Equal(t, FlashRed, backward)
			}
		}
	}
}

func TestFlashClassUnknownIsGray(t *testing.T) {
	assert.Equal(t, FlashGray, FlashClass(0, false, 50))
}

func TestChangePercentScenarios(t *testing.T) {
	pct, ok := ChangePercent(models.MQuote{CurrentPrice: 98, OpenPrice: 100})
	require.True(t, ok)
	assert.Equal(t, -2.0, pct)
	assert.Equal(t, ColorDarkRed, ColorClass(pct))

	pct, ok = ChangePercent(models.MQuote{CurrentPrice: 101, OpenPrice: 100})
	require.True(t, ok)
	assert.Equal(t, 1.0, pct)
	assert.Equal(t, ColorGreen, ColorClass(pct))
}

func TestChangePercentRejectsBadOpen(t *testing.T) {
	for _, q := range []models.MQuote{
		{CurrentPrice: 10, OpenPrice: 0},
		{CurrentPrice: 10, OpenPrice: -1},
		{CurrentPrice: 10, OpenPrice: math.NaN()},
		{CurrentPrice: math.Inf(1), OpenPrice: 10},
	} {
		_, ok := ChangePercent(q)
		assert.False(t, ok, "%+v", q)
	}
}

func TestFormatting(t *testing.T) {
	assert.Equal(t, "$98.00", FormatPrice(98))
	assert.Equal(t, "$189.46", FormatPrice(189.4567))
	assert.Equal(t, "-2.00%", FormatPercent(-2))
	assert.Equal(t, "1.00%", FormatPercent(1))
	assert.Equal(t, "0.00%", FormatPercent(0))
}

func TestFormattingMatchesBrowserToFixed(t *testing.T) {
	// 1.005 and 2.675 are stored just below the tie
	assert.Equal(t, "$1.00", FormatPrice(1.005))
	assert.Equal(t, "$2.67", FormatPrice(2.675))

	// exact ties round away from zero
	assert.Equal(t, "$0.13", FormatPrice(0.125))
	assert.Equal(t, "-0.13%", FormatPercent(-0.125))

	// sign survives on tiny losses, not on negative zero
	assert.Equal(t, "-0.00%", FormatPercent(-0.0001))
	assert.Equal(t, "0.00%", FormatPercent(math.Copysign(0, -1)))
}

func TestBuildRenderUpdate(t *testing.T) {
	u, ok := BuildRenderUpdate(models.MQuote{Symbol: "AAPL", CurrentPrice: 55, OpenPrice: 50}, 50, true, time.Second)
	require.True(t, ok)

	assert.Equal(t, models.MRenderUpdate{
		Symbol:          "AAPL",
		PriceText:       "$55.00",
		PercentText:     "10.00%",
		CurrentPrice:    55,
		OpenPrice:       50,
		ChangePercent:   10,
		ColorClass:      ColorDarkGreen,
		FlashClass:      FlashGreen,
		FlashDurationMs: 1000,
	}, u)

	_, ok = BuildRenderUpdate(models.MQuote{Symbol: "AAPL", CurrentPrice: 55}, 0, false, time.Second)
	assert.False(t, ok)
}
