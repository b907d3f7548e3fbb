package grpc_control

import (
	"context"
	"errors"
	"io"
	"net"
	"sync"
	"testing"

	"stock-watch/src/helpers"
	"stock-watch/src/logger"
	"stock-watch/src/mocks"
	"stock-watch/src/models"
	"stock-watch/src/watchlist"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
)

type memoryKV struct {
	mu   sync.Mutex
	data map[string]string
}

func (m *memoryKV) Initialize() error { return nil }
func (m *memoryKV) Close() error      { return nil }

func (m *memoryKV) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *memoryKV) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

type recorder struct {
	mu        sync.Mutex
	lists     [][]string
	refreshes int
}

func (r *recorder) BroadcastWatchList(symbols []string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lists = append(r.lists, symbols)
}

func (r *recorder) Refresh() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.refreshes++
}

func startControl(t *testing.T) (*ControlClient, *mocks.MockIQuoteSource, *recorder) {
	t.Helper()

	log := logger.NewLoggerWithWriter(nil, "control", io.Discard)
	list := watchlist.NewStore(&memoryKV{data: map[string]string{}}, "tickers", log)
	list.Load(context.Background())

	source := mocks.NewMockIQuoteSource(gomock.NewController(t))
	rec := &recorder{}

	lis := bufconn.Listen(1 << 20)
	srv := grpc.NewServer()
	RegisterWatchlistControlServer(srv, NewControlService(list, source, rec, rec, log))
	go srv.Serve(lis)
	t.Cleanup(srv.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	return NewControlClient(conn), source, rec
}

// -----------------------------------------------------------------------------

func TestAddListRemove(t *testing.T) {
	client, _, rec := startControl(t)
	ctx := context.Background()

	symbols, err := client.ListSymbols(ctx)
	require.NoError(t, err)
	assert.Empty(t, symbols)

	symbols, err = client.AddSymbol(ctx, " aapl")
	require.NoError(t, err)
	assert.Equal(t, []string{"AAPL"}, symbols)

	symbols, err = client.AddSymbol(ctx, "MSFT")
	require.NoError(t, err)
	assert.Equal(t, []string{"AAPL", "MSFT"}, symbols)

	symbols, err = client.AddSymbol(ctx, "AAPL")
	require.NoError(t, err)
	assert.Equal(t, []string{"AAPL", "MSFT"}, symbols)

	symbols, err = client.RemoveSymbol(ctx, "aapl")
	require.NoError(t, err)
	assert.Equal(t, []string{"MSFT"}, symbols)

	rec.mu.Lock()
	defer rec.mu.Unlock()
	assert.Equal(t, 4, rec.refreshes)
	assert.Len(t, rec.lists, 3)
}

func TestAddEmptyIsInvalidArgument(t *testing.T) {
	client, _, rec := startControl(t)

	_, err := client.AddSymbol(context.Background(), "   ")
	assert.Equal(t, codes.InvalidArgument, status.Code(err))

	rec.mu.Lock()
	defer rec.mu.Unlock()
	assert.Zero(t, rec.refreshes)
}

func TestGetQuote(t *testing.T) {
	client, source, _ := startControl(t)
	source.EXPECT().FetchQuote(gomock.Any(), "AAPL").Return(models.MQuote{Symbol: "AAPL", CurrentPrice: 101, OpenPrice: 100}, nil)

	q, err := client.GetQuote(context.Background(), "aapl")
	require.NoError(t, err)
	assert.Equal(t, models.MQuote{Symbol: "AAPL", CurrentPrice: 101, OpenPrice: 100}, q)
}

func TestGetQuoteNotFound(t *testing.T) {
	client, source, _ := startControl(t)
	source.EXPECT().FetchQuote(gomock.Any(), "ZZZZINVALID").Return(models.MQuote{}, helpers.NewLookupError("ZZZZINVALID", helpers.ErrNotFound))
	source.EXPECT().FetchQuote(gomock.Any(), "FLAKY").Return(models.MQuote{}, helpers.NewNetworkError("fetch", errors.New("reset")))

	_, err := client.GetQuote(context.Background(), "ZZZZINVALID")
	st, _ := status.FromError(err)
	assert.Equal(t, codes.NotFound, st.Code())
	assert.Equal(t, "Ticker not found", st.Message())

	_, err = client.GetQuote(context.Background(), "FLAKY")
	assert.Equal(t, codes.NotFound, status.Code(err))

	_, err = client.GetQuote(context.Background(), "")
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}
