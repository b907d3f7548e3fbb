package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"stock-watch/src/config"
	"stock-watch/src/logger"
	"stock-watch/src/poller"
	"stock-watch/src/server"
	"stock-watch/src/watchlist"
)

// -----------------------------------------------------------------------------

func main() {
	// 1. Parse command line flags
	configPath := flag.String("config", "../../config/default.yaml", "path to config file")
	flag.Parse()

	// 2. Load config
	conf, err := config.NewConfig(*configPath)
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}

	// 3. Setup Logger
	appLogger := logger.NewLogger(conf.MConfig, conf.Name)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 4. Watch-list persistence
	store, err := setupStorage(ctx, conf.MConfig, appLogger)
	if err != nil {
		appLogger.Critical("Failed to init storage: %v", err)
	}
	defer store.Close()

	list := watchlist.NewStore(store, conf.Storage.Key, appLogger.Named("WatchList"))
	symbols := list.Load(ctx)
	appLogger.Info("Loaded %d tracked symbols", len(symbols))

	// 5. Quote source
	source := setupQuoteSource(conf.MConfig, appLogger)

	// 6. Render hub, page server and poller
	hubCtx, cancelHub := context.WithCancel(context.Background())
	defer cancelHub()

	hub := server.NewHub(appLogger.Named("Hub"))
	go hub.Run(hubCtx)
	hub.BroadcastWatchList(symbols)

	srv, err := server.NewWatchServer(conf.MConfig, list, source, hub, appLogger.Named("WatchServer"))
	if err != nil {
		appLogger.Critical("Failed to build server: %v", err)
	}

	p := poller.NewPoller(conf.MConfig, list, source, hub, appLogger.Named("Poller"))
	srv.SetRefresher(p)

	if err := p.Start(ctx); err != nil {
		appLogger.Critical("Failed to start poller: %v", err)
	}

	// 7. Serve until a signal arrives
	if err := runServers(ctx, conf, srv, list, source, hub, p, appLogger); err != nil {
		appLogger.Error("Server failed: %v", err)
	}

	appLogger.Info("Shutting down...")
	if err := p.Stop(); err != nil {
		appLogger.Warning("Poller stop: %v", err)
	}
	cancelHub()
	appLogger.Info("Shutdown complete.")
}
