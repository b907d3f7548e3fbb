package grpc_control

import (
	"context"

	"stock-watch/src/models"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

const ServiceName = "stockwatch.WatchlistControl"

const (
	methodListSymbols  = "/" + ServiceName + "/ListSymbols"
	methodAddSymbol    = "/" + ServiceName + "/AddSymbol"
	methodRemoveSymbol = "/" + ServiceName + "/RemoveSymbol"
	methodGetQuote     = "/" + ServiceName + "/GetQuote"
)

// -----------------------------------------------------------------------------
// Server side
// -----------------------------------------------------------------------------

type WatchlistControlServer interface {
	ListSymbols(context.Context, *emptypb.Empty) (*structpb.ListValue, error)
	AddSymbol(context.Context, *wrapperspb.StringValue) (*structpb.ListValue, error)
	RemoveSymbol(context.Context, *wrapperspb.StringValue) (*structpb.ListValue, error)
	GetQuote(context.Context, *wrapperspb.StringValue) (*structpb.Struct, error)
}

func RegisterWatchlistControlServer(s grpc.ServiceRegistrar, srv WatchlistControlServer) {
	s.RegisterService(&WatchlistControl_ServiceDesc, srv)
}

var WatchlistControl_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*WatchlistControlServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "ListSymbols", Handler: listSymbolsHandler},
		{MethodName: "AddSymbol", Handler: addSymbolHandler},
		{MethodName: "RemoveSymbol", Handler: removeSymbolHandler},
		{MethodName: "GetQuote", Handler: getQuoteHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "stockwatch/control.proto",
}

// -----------------------------------------------------------------------------

func listSymbolsHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(WatchlistControlServer).ListSymbols(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: methodListSymbols}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(WatchlistControlServer).ListSymbols(ctx, req.(*emptypb.Empty))
	}
	return interceptor(ctx, in, info, handler)
}

func addSymbolHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(wrapperspb.StringValue)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(WatchlistControlServer).AddSymbol(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: methodAddSymbol}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(WatchlistControlServer).AddSymbol(ctx, req.(*wrapperspb.StringValue))
	}
	return interceptor(ctx, in, info, handler)
}

func removeSymbolHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(wrapperspb.StringValue)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(WatchlistControlServer).RemoveSymbol(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: methodRemoveSymbol}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(WatchlistControlServer).RemoveSymbol(ctx, req.(*wrapperspb.StringValue))
	}
	return interceptor(ctx, in, info, handler)
}

func getQuoteHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(wrapperspb.StringValue)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(WatchlistControlServer).GetQuote(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: methodGetQuote}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(WatchlistControlServer).GetQuote(ctx, req.(*wrapperspb.StringValue))
	}
	return interceptor(ctx, in, info, handler)
}

// -----------------------------------------------------------------------------
// Client side
// -----------------------------------------------------------------------------

type ControlClient struct {
	cc grpc.ClientConnInterface
}

func NewControlClient(cc grpc.ClientConnInterface) *ControlClient {
	return &ControlClient{cc: cc}
}

func (c *ControlClient) ListSymbols(ctx context.Context, opts ...grpc.CallOption) ([]string, error) {
	out := new(structpb.ListValue)
	if err := c.cc.Invoke(ctx, methodListSymbols, &emptypb.Empty{}, out, opts...); err != nil {
		return nil, err
	}
	return listToSymbols(out)
}

func (c *ControlClient) AddSymbol(ctx context.Context, ticker string, opts ...grpc.CallOption) ([]string, error) {
	out := new(structpb.ListValue)
	if err := c.cc.Invoke(ctx, methodAddSymbol, wrapperspb.String(ticker), out, opts...); err != nil {
		return nil, err
	}
	return listToSymbols(out)
}

func (c *ControlClient) RemoveSymbol(ctx context.Context, ticker string, opts ...grpc.CallOption) ([]string, error) {
	out := new(structpb.ListValue)
	if err := c.cc.Invoke(ctx, methodRemoveSymbol, wrapperspb.String(ticker), out, opts...); err != nil {
		return nil, err
	}
	return listToSymbols(out)
}

func (c *ControlClient) GetQuote(ctx context.Context, ticker string, opts ...grpc.CallOption) (models.MQuote, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, methodGetQuote, wrapperspb.String(ticker), out, opts...); err != nil {
		return models.MQuote{}, err
	}

	fields := out.GetFields()
	return models.MQuote{
		Symbol:       fields["symbol"].GetStringValue(),
		CurrentPrice: fields["currentPrice"].GetNumberValue(),
		OpenPrice:    fields["openPrice"].GetNumberValue(),
	}, nil
}
