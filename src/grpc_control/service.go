// Package grpc_control exposes watch-list management and single quote lookups
// over gRPC. Messages are protobuf well-known types, so no generated code is
// needed on either side.
package grpc_control

import (
	"context"
	"errors"
	"fmt"

	"stock-watch/src/helpers"
	"stock-watch/src/interfaces"
	"stock-watch/src/logger"
	"stock-watch/src/watchlist"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// ListPublisher is notified with the new list after every successful change.
type ListPublisher interface {
	BroadcastWatchList(symbols []string)
}

// Refresher is asked for an immediate poll after add and remove.
type Refresher interface {
	Refresh()
}

// -----------------------------------------------------------------------------

// ControlService implements WatchlistControlServer
type ControlService struct {
	WatchList *watchlist.Store
	Source    interfaces.IQuoteSource
	Publisher ListPublisher
	Refresher Refresher
	Logger    *logger.Logger
}

var _ WatchlistControlServer = (*ControlService)(nil)

// NewControlService creates a new instance of ControlService. publisher and
// refresher may be nil.
func NewControlService(
	list *watchlist.Store,
	source interfaces.IQuoteSource,
	publisher ListPublisher,
	refresher Refresher,
	log *logger.Logger,
) *ControlService {
	return &ControlService{
		WatchList: list,
		Source:    source,
		Publisher: publisher,
		Refresher: refresher,
		Logger:    log,
	}
}

// -----------------------------------------------------------------------------

func (s *ControlService) ListSymbols(ctx context.Context, _ *emptypb.Empty) (*structpb.ListValue, error) {
	return symbolsToList(s.WatchList.Symbols()), nil
}

// -----------------------------------------------------------------------------

// AddSymbol rejects an empty ticker. A duplicate is not an error: the current
// list comes back and a refresh is still requested.
func (s *ControlService) AddSymbol(ctx context.Context, req *wrapperspb.StringValue) (*structpb.ListValue, error) {
	symbols, err := s.WatchList.Add(ctx, req.GetValue())
	switch {
	case err == nil:
		s.publish(symbols)
		s.refresh()
	case errors.Is(err, helpers.ErrDuplicateSymbol):
		s.refresh()
	case errors.Is(err, helpers.ErrEmptySymbol):
		return nil, status.Error(codes.InvalidArgument, "ticker is required")
	default:
		s.Logger.Error("gRPC: AddSymbol failed: %v", err)
		return nil, status.Errorf(codes.Internal, "add symbol: %v", err)
	}

	s.Logger.Info("gRPC: AddSymbol %q, list now %d symbols", req.GetValue(), len(symbols))
	return symbolsToList(symbols), nil
}

// -----------------------------------------------------------------------------

func (s *ControlService) RemoveSymbol(ctx context.Context, req *wrapperspb.StringValue) (*structpb.ListValue, error) {
	symbols, err := s.WatchList.Remove(ctx, req.GetValue())
	if err != nil {
		s.Logger.Error("gRPC: RemoveSymbol failed: %v", err)
		return nil, status.Errorf(codes.Internal, "remove symbol: %v", err)
	}

	s.publish(symbols)
	s.refresh()
	return symbolsToList(symbols), nil
}

// -----------------------------------------------------------------------------

// GetQuote returns {symbol, currentPrice, openPrice}. Every lookup failure is
// NotFound.
func (s *ControlService) GetQuote(ctx context.Context, req *wrapperspb.StringValue) (_ *structpb.Struct, err error) {
	symbol := watchlist.Normalize(req.GetValue())
	if symbol == "" {
		return nil, status.Error(codes.InvalidArgument, "ticker is required")
	}

	defer func() {
		if r := recover(); r != nil {
			s.Logger.Error("gRPC: quote source panicked for %s: %v", symbol, r)
			err = status.Error(codes.NotFound, helpers.ErrNotFound.Error())
		}
	}()

	q, err := s.Source.FetchQuote(ctx, symbol)
	if err != nil {
		s.Logger.Info("gRPC: GetQuote %s failed: %v", symbol, err)
		return nil, status.Error(codes.NotFound, helpers.ErrNotFound.Error())
	}

	out, err := structpb.NewStruct(map[string]interface{}{
		"symbol":       symbol,
		"currentPrice": q.CurrentPrice,
		"openPrice":    q.OpenPrice,
	})
	if err != nil {
		return nil, status.Errorf(codes.Internal, "encode quote: %v", err)
	}
	return out, nil
}

// -----------------------------------------------------------------------------

func (s *ControlService) publish(symbols []string) {
	if s.Publisher != nil {
		s.Publisher.BroadcastWatchList(symbols)
	}
}

func (s *ControlService) refresh() {
	if s.Refresher != nil {
		s.Refresher.Refresh()
	}
}

// -----------------------------------------------------------------------------

func symbolsToList(symbols []string) *structpb.ListValue {
	values := make([]*structpb.Value, 0, len(symbols))
	for _, sym := range symbols {
		values = append(values, structpb.NewStringValue(sym))
	}
	return &structpb.ListValue{Values: values}
}

func listToSymbols(list *structpb.ListValue) ([]string, error) {
	out := make([]string, 0, len(list.GetValues()))
	for i, v := range list.GetValues() {
		s, ok := v.GetKind().(*structpb.Value_StringValue)
		if !ok {
			return nil, fmt.Errorf("element %d is not a string", i)
		}
		out = append(out, s.StringValue)
	}
	return out, nil
}
