package helpers

import (
	"context"
	"errors"
	"fmt"
	"time"

	"stock-watch/src/logger"
)

// -----------------------------------------------------------------------------
// Custom Error Types
// -----------------------------------------------------------------------------

type StockWatchError struct {
	Message string
	Cause   error
}

func (e *StockWatchError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *StockWatchError) Unwrap() error {
	return e.Cause
}

// Distinct error types for errors.As checks
type ConfigurationError struct{ StockWatchError }
type NetworkError struct{ StockWatchError }
type LookupError struct{ StockWatchError }
type DatabaseError struct{ StockWatchError }
type InputError struct{ StockWatchError }

// Sentinels wrapped by the typed errors above.
var (
	ErrEmptySymbol     = errors.New("symbol is empty")
	ErrDuplicateSymbol = errors.New("symbol already tracked")
	ErrNotFound        = errors.New("Ticker not found")
)

// -----------------------------------------------------------------------------

func NewConfigurationError(cause error) *ConfigurationError {
	return &ConfigurationError{StockWatchError{Message: "invalid configuration", Cause: cause}}
}

func NewInputError(symbol string, cause error) *InputError {
	return &InputError{StockWatchError{Message: fmt.Sprintf("rejected input %q", symbol), Cause: cause}}
}

func NewLookupError(symbol string, cause error) *LookupError {
	return &LookupError{StockWatchError{Message: fmt.Sprintf("lookup failed for %s", symbol), Cause: cause}}
}

func NewNetworkError(operation string, cause error) *NetworkError {
	return &NetworkError{StockWatchError{Message: fmt.Sprintf("%s failed", operation), Cause: cause}}
}

func NewDatabaseError(operation string, cause error) *DatabaseError {
	return &DatabaseError{StockWatchError{Message: fmt.Sprintf("%s failed", operation), Cause: cause}}
}

// -----------------------------------------------------------------------------

// IsInputError reports whether err is (or wraps) an InputError.
func IsInputError(err error) bool {
	var target *InputError
	return errors.As(err, &target)
}

// IsConfigurationError reports whether err is (or wraps) a ConfigurationError.
func IsConfigurationError(err error) bool {
	var target *ConfigurationError
	return errors.As(err, &target)
}

// IsLookupError reports whether err is (or wraps) a LookupError.
func IsLookupError(err error) bool {
	var target *LookupError
	return errors.As(err, &target)
}

// -----------------------------------------------------------------------------
// Retry Logic
// -----------------------------------------------------------------------------

// RetryWithBackoff attempts to execute the operation up to maxRetries times with exponential backoff.
func RetryWithBackoff[T any](ctx context.Context, log *logger.Logger, operation string, maxRetries int, baseDelay time.Duration, fn func() (T, error)) (T, error) {
	var zero T
	var lastErr error

	if maxRetries < 1 {
		maxRetries = 1
	}

	for attempt := 0; attempt < maxRetries; attempt++ {
		res, err := fn()
		if err == nil {
			return res, nil
		}

		lastErr = err
		if attempt == maxRetries-1 {
			break
		}

		delay := baseDelay * (1 << attempt)
		if log != nil {
			log.Warning("Attempt %d/%d failed for %s: %v. Retrying in %v", attempt+1, maxRetries, operation, err, delay)
		}

		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return zero, ctx.Err()
		}
	}

	return zero, fmt.Errorf("%s failed after %d attempts: %w", operation, maxRetries, lastErr)
}
