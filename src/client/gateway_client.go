// Package client talks to a running stock-watch gateway over HTTP.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"stock-watch/src/helpers"
	"stock-watch/src/logger"
	"stock-watch/src/models"
)

const maxBodyBytes = 1 << 20

// -----------------------------------------------------------------------------

// GatewayClient is an IQuoteSource backed by POST /get_stock_data.
type GatewayClient struct {
	BaseURL   string
	HTTP      *http.Client
	UserAgent string
	Logger    *logger.Logger
}

// -----------------------------------------------------------------------------

func NewGatewayClient(baseURL string, timeout time.Duration, log *logger.Logger) *GatewayClient {
	transport := &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		DialContext:           (&net.Dialer{Timeout: 3 * time.Second, KeepAlive: 30 * time.Second}).DialContext,
		MaxIdleConns:          32,
		MaxIdleConnsPerHost:   16,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   3 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}

	return &GatewayClient{
		BaseURL:   strings.TrimRight(baseURL, "/"),
		HTTP:      &http.Client{Timeout: timeout, Transport: transport},
		UserAgent: "stock-watch/1.0",
		Logger:    log,
	}
}

func (c *GatewayClient) Name() string {
	return "gateway"
}

// -----------------------------------------------------------------------------

// FetchQuote posts {"ticker": symbol}. A non-200 reply is a LookupError carrying
// the gateway's error text; transport problems are NetworkErrors.
func (c *GatewayClient) FetchQuote(ctx context.Context, symbol string) (models.MQuote, error) {
	body, err := json.Marshal(models.MQuoteRequest{Ticker: symbol})
	if err != nil {
		return models.MQuote{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/get_stock_data", bytes.NewReader(body))
	if err != nil {
		return models.MQuote{}, helpers.NewNetworkError("build request", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.UserAgent != "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return models.MQuote{}, helpers.NewNetworkError("get_stock_data "+symbol, err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return models.MQuote{}, helpers.NewNetworkError("read response", err)
	}

	if resp.StatusCode != http.StatusOK {
		var e models.MErrorResponse
		if json.Unmarshal(payload, &e) == nil && e.Error != "" {
			if e.Error == helpers.ErrNotFound.Error() {
				return models.MQuote{}, helpers.NewLookupError(symbol, helpers.ErrNotFound)
			}
			return models.MQuote{}, helpers.NewLookupError(symbol, errors.New(e.Error))
		}
		return models.MQuote{}, helpers.NewLookupError(symbol, fmt.Errorf("gateway returned HTTP %d", resp.StatusCode))
	}

	var out models.MQuoteResponse
	if err := json.Unmarshal(payload, &out); err != nil {
		return models.MQuote{}, helpers.NewLookupError(symbol, fmt.Errorf("decode response: %w", err))
	}

	if c.Logger != nil {
		c.Logger.Debug("%s: current=%v open=%v", symbol, out.CurrentPrice, out.OpenPrice)
	}

	return models.MQuote{Symbol: symbol, CurrentPrice: out.CurrentPrice, OpenPrice: out.OpenPrice}, nil
}
