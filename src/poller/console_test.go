package poller

import (
	"bytes"
	"testing"

	"stock-watch/src/models"

	"github.com/stretchr/testify/assert"
)

func TestConsoleRendererPlain(t *testing.T) {
	var buf bytes.Buffer
	r := NewConsoleRenderer(&buf, false)

	r.RenderQuote(models.MRenderUpdate{Symbol: "AAPL", PriceText: "$189.46", PercentText: "1.25%", ColorClass: ColorGreen, FlashClass: FlashGreen})
	r.RenderCountdown(3)
	r.ClearFlash("AAPL", FlashGreen)

	out := buf.String()
	assert.Contains(t, out, "AAPL")
	assert.Contains(t, out, "$189.46")
	assert.Contains(t, out, "1.25%")
	assert.Contains(t, out, "^")
	assert.NotContains(t, out, "\033[")
	assert.NotContains(t, out, "Refreshing")
}

func TestConsoleRendererColorAndVerbose(t *testing.T) {
	var buf bytes.Buffer
	r := NewConsoleRenderer(&buf, true)
	r.Verbose = true

	r.RenderQuote(models.MRenderUpdate{Symbol: "TSLA", PriceText: "$98.00", PercentText: "-2.00%", ColorClass: ColorDarkRed, FlashClass: FlashRed})
	r.RenderCountdown(7)
	r.ClearFlash("TSLA", FlashRed)

	out := buf.String()
	assert.Contains(t, out, ansiColors[ColorDarkRed])
	assert.Contains(t, out, ansiReset)
	assert.Contains(t, out, "Refreshing in 7 seconds")
	assert.Contains(t, out, "TSLA     flash red-flash cleared")
}
