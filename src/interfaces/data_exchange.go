package interfaces

import "stock-watch/src/models"

// -----------------------------------------------------------------------------
// IRenderer receives display output from the poller. Calls come from the
// poller's control goroutine only.
// -----------------------------------------------------------------------------

type IRenderer interface {
	// RenderQuote applies a new price, percent text, color class and flash class.
	RenderQuote(update models.MRenderUpdate)

	// -----------------------------------------------------------------------------
	// ClearFlash removes a flash class once its duration has elapsed.
	ClearFlash(symbol, flashClass string)

	// -----------------------------------------------------------------------------
	// RenderCountdown shows the seconds left until the next poll cycle.
	RenderCountdown(seconds int)
}

// -----------------------------------------------------------------------------
// IWatchList is the read side of the watch-list used by the poller.
// -----------------------------------------------------------------------------

type IWatchList interface {
	Symbols() []string
	Contains(symbol string) bool
}
