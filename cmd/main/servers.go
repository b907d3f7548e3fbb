package main

import (
	"context"
	"fmt"
	"net"
	"time"

	"stock-watch/src/config"
	pb "stock-watch/src/grpc_control"
	"stock-watch/src/interfaces"
	"stock-watch/src/logger"
	"stock-watch/src/poller"
	"stock-watch/src/server"
	"stock-watch/src/watchlist"

	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"
)

const shutdownTimeout = 5 * time.Second

// -----------------------------------------------------------------------------

// runServers serves the page/gateway and the gRPC control service until ctx
// is cancelled or one of them fails, then shuts both down.
func runServers(
	ctx context.Context,
	conf *config.Config,
	srv *server.WatchServer,
	list *watchlist.Store,
	source interfaces.IQuoteSource,
	hub *server.Hub,
	p *poller.Poller,
	appLogger *logger.Logger,
) error {
	port := conf.GrpcPort
	if port == 0 {
		port = 50051
	}
	lis, err := net.Listen("tcp", fmt.Sprintf("%s:%d", conf.GrpcHost, port))
	if err != nil {
		return fmt.Errorf("listen for gRPC: %w", err)
	}

	grpcServer := grpc.NewServer()
	controlService := pb.NewControlService(list, source, hub, p, logger.NewLogger(conf.MConfig, "ControlService"))
	pb.RegisterWatchlistControlServer(grpcServer, controlService)

	g, gctx := errgroup.WithContext(ctx)

	// 1. Page, gateway and watch-list API
	g.Go(srv.Start)

	// 2. gRPC Control Server
	g.Go(func() error {
		appLogger.Info("Starting gRPC Control Server on %s", lis.Addr())
		return grpcServer.Serve(lis)
	})

	// 3. Shutdown on signal or first failure
	g.Go(func() error {
		<-gctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		grpcServer.GracefulStop()
		return srv.Stop(shutdownCtx)
	})

	return g.Wait()
}
