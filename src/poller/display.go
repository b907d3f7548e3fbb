package poller

import (
	"math"
	"strconv"
	"time"

	"stock-watch/src/models"

	"github.com/shopspring/decimal"
)

// Color classes, by intraday percent change.
const (
	ColorDarkRed   = "dark-red"
	ColorRed       = "red"
	ColorGray      = "gray"
	ColorGreen     = "green"
	ColorDarkGreen = "dark-green"
)

// Flash classes, by direction since the previous poll.
const (
	FlashRed   = "red-flash"
	FlashGreen = "green-flash"
	FlashGray  = "gray-flash"
)

// -----------------------------------------------------------------------------

// ChangePercent is the move from today's open, in percent. ok is false when the
// quote cannot be displayed (open <= 0 or non-finite prices).
func ChangePercent(q models.MQuote) (pct float64, ok bool) {
	if !(q.OpenPrice > 0) || math.IsInf(q.OpenPrice, 0) || math.IsNaN(q.CurrentPrice) || math.IsInf(q.CurrentPrice, 0) {
		return 0, false
	}
	pct = (q.CurrentPrice - q.OpenPrice) / q.OpenPrice * 100
	if math.IsNaN(pct) || math.IsInf(pct, 0) {
		return 0, false
	}
	return pct, true
}

// ColorClass buckets a percent change: (-inf,-2] dark-red, (-2,0) red, 0 gray,
// (0,2] green, (2,inf) dark-green.
func ColorClass(pct float64) string {
	switch {
	case pct <= -2:
		return ColorDarkRed
	case pct < 0:
		return ColorRed
	case pct == 0:
		return ColorGray
	case pct <= 2:
		return ColorGreen
	default:
		return ColorDarkGreen
	}
}

// FlashClass compares the previous poll's price with the current one. An
// unknown previous price flashes gray.
func FlashClass(last float64, known bool, current float64) string {
	switch {
	case !known:
		return FlashGray
	case last > current:
		return FlashRed
	case last < current:
		return FlashGreen
	default:
		return FlashGray
	}
}

// -----------------------------------------------------------------------------

// FormatPrice renders "$123.45".
func FormatPrice(price float64) string {
	return "$" + toFixed2(price)
}

// FormatPercent renders "-1.23%".
func FormatPercent(pct float64) string {
	return toFixed2(pct) + "%"
}

// toFixed2 rounds the exact binary value to two places, ties away from zero,
// and keeps the sign of any negative non-zero input ("-0.00"). Negative zero
// prints as "0.00". Same output as Number.prototype.toFixed(2).
func toFixed2(x float64) string {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return strconv.FormatFloat(x, 'f', 2, 64)
	}

	// 40 digits is far below the spacing of any float64 that can sit on a
	// third-decimal tie, so the expansion decides ties exactly.
	exact := decimal.RequireFromString(strconv.FormatFloat(math.Abs(x), 'f', 40, 64))
	out := exact.StringFixed(2)
	if x < 0 {
		out = "-" + out
	}
	return out
}

// -----------------------------------------------------------------------------

// BuildRenderUpdate derives the display state of one successful quote.
func BuildRenderUpdate(q models.MQuote, last float64, known bool, flash time.Duration) (models.MRenderUpdate, bool) {
	pct, ok := ChangePercent(q)
	if !ok {
		return models.MRenderUpdate{}, false
	}

	return models.MRenderUpdate{
		Symbol:          q.Symbol,
		PriceText:       FormatPrice(q.CurrentPrice),
		PercentText:     FormatPercent(pct),
		CurrentPrice:    q.CurrentPrice,
		OpenPrice:       q.OpenPrice,
		ChangePercent:   pct,
		ColorClass:      ColorClass(pct),
		FlashClass:      FlashClass(last, known, q.CurrentPrice),
		FlashDurationMs: int(flash / time.Millisecond),
	}, true
}
