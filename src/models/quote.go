package models

// MQuote is a snapshot of one symbol's open and current price at fetch time.
type MQuote struct {
	Symbol       string  `json:"symbol"`
	CurrentPrice float64 `json:"currentPrice"`
	OpenPrice    float64 `json:"openPrice"`
}

// -----------------------------------------------------------------------------
// Gateway wire types (POST /get_stock_data)
// -----------------------------------------------------------------------------

type MQuoteRequest struct {
	Ticker string `json:"ticker"`
}

type MQuoteResponse struct {
	CurrentPrice float64 `json:"currentPrice"`
	OpenPrice    float64 `json:"openPrice"`
}

type MErrorResponse struct {
	Error string `json:"error"`
}
