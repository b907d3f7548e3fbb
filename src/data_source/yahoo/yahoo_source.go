package yahoo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"stock-watch/src/helpers"
	"stock-watch/src/interfaces"
	"stock-watch/src/logger"
	"stock-watch/src/models"
)

// YahooFinanceSource resolves the latest trading-day open and close for a symbol
// through the Yahoo chart API.
type YahooFinanceSource struct {
	Config  *models.MConfig
	Network interfaces.INetworkManager
	Logger  *logger.Logger
	BaseURL string
}

// -----------------------------------------------------------------------------

func NewYahooFinanceSource(cfg *models.MConfig, netMgr interfaces.INetworkManager, log *logger.Logger) *YahooFinanceSource {
	return &YahooFinanceSource{
		Config:  cfg,
		Network: netMgr,
		Logger:  log,
		BaseURL: strings.TrimRight(cfg.DataSource.BaseURL, "/"),
	}
}

// -----------------------------------------------------------------------------

func (s *YahooFinanceSource) Name() string {
	return "yahoo"
}

// -----------------------------------------------------------------------------

// FetchQuote returns the open and current price of the most recent daily bar.
// Every failure is reported as a *helpers.LookupError.
func (s *YahooFinanceSource) FetchQuote(ctx context.Context, symbol string) (models.MQuote, error) {
	if symbol == "" {
		return models.MQuote{}, helpers.NewLookupError(symbol, helpers.ErrNotFound)
	}

	params := map[string]string{
		"interval":       "1d",
		"range":          "1d",
		"includePrePost": "false",
	}

	endpoint := fmt.Sprintf("%s/v8/finance/chart/%s", s.BaseURL, url.PathEscape(symbol))

	respBytes, err := s.Network.Get(ctx, endpoint, params)
	if err != nil {
		if errors.Is(err, helpers.ErrNotFound) {
			return models.MQuote{}, helpers.NewLookupError(symbol, helpers.ErrNotFound)
		}
		return models.MQuote{}, helpers.NewLookupError(symbol, fmt.Errorf("network error: %w", err))
	}

	quote, err := s.parseChartResponse(symbol, respBytes)
	if err != nil {
		return models.MQuote{}, helpers.NewLookupError(symbol, err)
	}
	return quote, nil
}

// -----------------------------------------------------------------------------

type YahooChartResponse struct {
	Chart struct {
		Result []struct {
			Meta struct {
				Currency           string  `json:"currency"`
				Symbol             string  `json:"symbol"`
				ExchangeName       string  `json:"exchangeName"`
				RegularMarketTime  int64   `json:"regularMarketTime"`
				RegularMarketPrice float64 `json:"regularMarketPrice"`
				ChartPreviousClose float64 `json:"chartPreviousClose"`
				DataGranularity    string  `json:"dataGranularity"`
				Range              string  `json:"range"`
			} `json:"meta"`
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open  []*float64 `json:"open"`  // Use pointers to handle null
					Close []*float64 `json:"close"` // Use pointers to handle null
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// -----------------------------------------------------------------------------

func (s *YahooFinanceSource) parseChartResponse(symbol string, data []byte) (models.MQuote, error) {
	var resp YahooChartResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return models.MQuote{}, fmt.Errorf("json unmarshal failed: %w", err)
	}

	if resp.Chart.Error != nil {
		return models.MQuote{}, fmt.Errorf("yahoo api error: %s - %s: %w", resp.Chart.Error.Code, resp.Chart.Error.Description, helpers.ErrNotFound)
	}

	if len(resp.Chart.Result) == 0 {
		return models.MQuote{}, fmt.Errorf("no result in response for %s: %w", symbol, helpers.ErrNotFound)
	}

	result := resp.Chart.Result[0]
	if len(result.Timestamp) == 0 || len(result.Indicators.Quote) == 0 {
		return models.MQuote{}, fmt.Errorf("no bars in response for %s: %w", symbol, helpers.ErrNotFound)
	}

	quote := result.Indicators.Quote[0]

	// Walk back to the latest bar that carries an open. A missing close on that
	// bar falls back to the live regular-market price.
	for i := len(result.Timestamp) - 1; i >= 0; i-- {
		if i >= len(quote.Open) || quote.Open[i] == nil {
			continue
		}

		current := result.Meta.RegularMarketPrice
		if i < len(quote.Close) && quote.Close[i] != nil {
			current = *quote.Close[i]
		}
		if current <= 0 {
			continue
		}

		s.Logger.Debug("Fetched %s: open=%f current=%f", symbol, *quote.Open[i], current)
		return models.MQuote{
			Symbol:       symbol,
			CurrentPrice: current,
			OpenPrice:    *quote.Open[i],
		}, nil
	}

	return models.MQuote{}, fmt.Errorf("no valid bar for %s: %w", symbol, helpers.ErrNotFound)
}
