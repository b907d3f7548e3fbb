package client

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"stock-watch/src/helpers"
	"stock-watch/src/logger"
	"stock-watch/src/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(url string) *GatewayClient {
	return NewGatewayClient(url, 2*time.Second, logger.NewLoggerWithWriter(nil, "client", io.Discard))
}

func TestFetchQuoteSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/get_stock_data", r.URL.Path)

		var req models.MQuoteRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "AAPL", req.Ticker)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"currentPrice": 189.5, "openPrice": 187.25}`))
	}))
	defer srv.Close()

	q, err := newTestClient(srv.URL+"/").FetchQuote(context.Background(), "AAPL")
	require.NoError(t, err)
	assert.Equal(t, models.MQuote{Symbol: "AAPL", CurrentPrice: 189.5, OpenPrice: 187.25}, q)
}

func TestFetchQuoteNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error": "Ticker not found"}`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).FetchQuote(context.Background(), "ZZZZ")
	require.Error(t, err)
	assert.True(t, helpers.IsLookupError(err))
	assert.ErrorIs(t, err, helpers.ErrNotFound)
}

func TestFetchQuoteUnexpectedStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).FetchQuote(context.Background(), "AAPL")
	require.Error(t, err)
	assert.True(t, helpers.IsLookupError(err))
	assert.Contains(t, err.Error(), "502")
}

func TestFetchQuoteTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := newTestClient(url).FetchQuote(context.Background(), "AAPL")
	require.Error(t, err)

	var netErr *helpers.NetworkError
	assert.True(t, errors.As(err, &netErr))
}
