package helpers

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTypedErrorsUnwrap(t *testing.T) {
	err := fmt.Errorf("add: %w", NewInputError("aapl", ErrDuplicateSymbol))

	assert.True(t, IsInputError(err))
	assert.False(t, IsLookupError(err))
	assert.ErrorIs(t, err, ErrDuplicateSymbol)

	lookup := NewLookupError("ZZZZINVALID", ErrNotFound)
	assert.True(t, IsLookupError(lookup))
	assert.ErrorIs(t, lookup, ErrNotFound)
	assert.Equal(t, "lookup failed for ZZZZINVALID: Ticker not found", lookup.Error())
}

func TestRetryWithBackoffSucceedsEventually(t *testing.T) {
	calls := 0
	got, err := RetryWithBackoff(context.Background(), nil, "ping", 3, time.Millisecond, func() (int, error) {
		calls++
		if calls < 3 {
			return 0, errors.New("not yet")
		}
		return 42, nil
	})

	require.NoError(t, err)
	assert.Equal(t, 42, got)
	assert.Equal(t, 3, calls)
}

func TestRetryWithBackoffGivesUp(t *testing.T) {
	boom := errors.New("boom")
	_, err := RetryWithBackoff(context.Background(), nil, "ping", 2, time.Millisecond, func() (string, error) {
		return "", boom
	})

	assert.ErrorIs(t, err, boom)
}

func TestRetryWithBackoffHonoursContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := RetryWithBackoff(ctx, nil, "ping", 5, time.Hour, func() (int, error) {
		return 0, errors.New("down")
	})

	assert.ErrorIs(t, err, context.Canceled)
}

func TestProxyManager(t *testing.T) {
	pm := NewProxyManager([]string{"10.0.0.1:8080", "", "socks5://10.0.0.2:1080"}, "stock-watch/1.0", nil)

	require.True(t, pm.HasProxies())
	first, _ := pm.GetCurrentProxy()
	assert.Equal(t, "http://10.0.0.1:8080", first)

	pm.RotateProxy()
	second, _ := pm.GetCurrentProxy()
	assert.Equal(t, "socks5://10.0.0.2:1080", second)

	assert.Equal(t, "stock-watch/1.0", pm.GetUserAgent())
}
