package poller

import (
	"fmt"
	"io"
	"sync"

	"stock-watch/src/models"
)

var ansiColors = map[string]string{
	ColorDarkRed:   "\033[31;1m",
	ColorRed:       "\033[31m",
	ColorGray:      "\033[90m",
	ColorGreen:     "\033[32m",
	ColorDarkGreen: "\033[32;1m",
}

var flashMarks = map[string]string{
	FlashRed:   "v",
	FlashGreen: "^",
	FlashGray:  "=",
}

const ansiReset = "\033[0m"

// -----------------------------------------------------------------------------

// ConsoleRenderer prints one line per quote update to a terminal. Flash and
// countdown events are printed only when Verbose is set.
type ConsoleRenderer struct {
	Out     io.Writer
	Color   bool
	Verbose bool

	mu sync.Mutex
}

func NewConsoleRenderer(out io.Writer, color bool) *ConsoleRenderer {
	return &ConsoleRenderer{Out: out, Color: color}
}

func (c *ConsoleRenderer) RenderQuote(u models.MRenderUpdate) {
	c.mu.Lock()
	defer c.mu.Unlock()

	line := fmt.Sprintf("%-8s %12s %9s %s", u.Symbol, u.PriceText, u.PercentText, flashMarks[u.FlashClass])
	if c.Color {
		line = ansiColors[u.ColorClass] + line + ansiReset
	}
	fmt.Fprintln(c.Out, line)
}

func (c *ConsoleRenderer) ClearFlash(symbol, flashClass string) {
	if !c.Verbose {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintf(c.Out, "%-8s flash %s cleared\n", symbol, flashClass)
}

func (c *ConsoleRenderer) RenderCountdown(seconds int) {
	if !c.Verbose {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintf(c.Out, "Refreshing in %d seconds\n", seconds)
}
