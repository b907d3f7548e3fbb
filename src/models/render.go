package models

// Message types pushed to the page over the websocket.
const (
	MessageWatchList  = "WATCHLIST"
	MessageRender     = "RENDER"
	MessageClearFlash = "CLEAR_FLASH"
	MessageCountdown  = "COUNTDOWN"
)

// MRenderUpdate is the derived display state for one symbol after a successful poll.
type MRenderUpdate struct {
	Symbol          string  `json:"symbol"`
	PriceText       string  `json:"priceText"`
	PercentText     string  `json:"percentText"`
	CurrentPrice    float64 `json:"currentPrice"`
	OpenPrice       float64 `json:"openPrice"`
	ChangePercent   float64 `json:"changePercent"`
	ColorClass      string  `json:"colorClass"`
	FlashClass      string  `json:"flashClass"`
	FlashDurationMs int     `json:"flashDurationMs"`
}

// MMessage is the websocket envelope. Only the fields relevant to Type are set.
type MMessage struct {
	Type       string         `json:"type"`
	Symbols    []string       `json:"symbols,omitempty"`
	Render     *MRenderUpdate `json:"render,omitempty"`
	Symbol     string         `json:"symbol,omitempty"`
	FlashClass string         `json:"flashClass,omitempty"`
	Seconds    int            `json:"seconds"`
}

// MWatchListResponse is returned by the watch-list HTTP API.
type MWatchListResponse struct {
	Symbols []string `json:"symbols"`
}
