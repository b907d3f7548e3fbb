package interfaces

import (
	"context"

	"stock-watch/src/models"
)

// -----------------------------------------------------------------------------
// IQuoteSource returns the latest open and current price for one symbol.
// Implemented by the upstream provider and by the remote gateway client.
// -----------------------------------------------------------------------------

//go:generate mockgen -destination=../mocks/mock_quote_source.go -package=mocks stock-watch/src/interfaces IQuoteSource

type IQuoteSource interface {

	// Name returns the unique identifier of the source
	Name() string

	// -----------------------------------------------------------------------------

	// FetchQuote looks up a single symbol. Any failure, including an unknown
	// symbol, is returned as an error.
	FetchQuote(ctx context.Context, symbol string) (models.MQuote, error)
}
