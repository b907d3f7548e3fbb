// Command watch tracks a local watch-list in the terminal, fetching quotes from
// a running stock-watch gateway.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"stock-watch/src/client"
	"stock-watch/src/config"
	"stock-watch/src/helpers"
	"stock-watch/src/logger"
	"stock-watch/src/poller"
	"stock-watch/src/storage"
	"stock-watch/src/watchlist"
)

const usage = `usage: watch [flags] <command> [ticker...]

commands:
  list              print the tracked symbols
  add TICKER...     track one or more symbols
  remove TICKER...  stop tracking symbols
  run               poll the gateway and print updates (default)

flags:
`

// -----------------------------------------------------------------------------

func main() {
	configPath := flag.String("config", "../../config/default.yaml", "path to config file")
	gatewayURL := flag.String("gateway", "", "gateway base URL (overrides poller.gateway_url)")
	color := flag.Bool("color", true, "colorize output")
	verbose := flag.Bool("v", false, "also print countdown and flash events")
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, usage)
		flag.PrintDefaults()
	}
	flag.Parse()

	conf, err := config.NewConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if *gatewayURL != "" {
		conf.Poller.GatewayURL = *gatewayURL
	}

	appLogger := logger.NewLoggerWithWriter(conf.MConfig, "watch", os.Stderr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := storage.NewKeyValueStore(ctx, conf.MConfig, appLogger)
	if err != nil {
		appLogger.Critical("Failed to open storage: %v", err)
	}
	defer store.Close()

	list := watchlist.NewStore(store, conf.Storage.Key, appLogger.Named("WatchList"))
	list.Load(ctx)

	cmd, args := "run", []string(nil)
	if flag.NArg() > 0 {
		cmd, args = flag.Arg(0), flag.Args()[1:]
	}

	switch cmd {
	case "list":
		printSymbols(list.Symbols())

	case "add":
		for _, t := range args {
			if _, err := list.Add(ctx, t); err != nil && !helpers.IsInputError(err) {
				appLogger.Error("Add %s: %v", t, err)
				os.Exit(1)
			}
		}
		printSymbols(list.Symbols())

	case "remove":
		for _, t := range args {
			if _, err := list.Remove(ctx, t); err != nil {
				appLogger.Error("Remove %s: %v", t, err)
				os.Exit(1)
			}
		}
		printSymbols(list.Symbols())

	case "run":
		run(ctx, conf, list, appLogger, *color, *verbose)

	default:
		flag.Usage()
		os.Exit(2)
	}
}

// -----------------------------------------------------------------------------

func run(ctx context.Context, conf *config.Config, list *watchlist.Store, appLogger *logger.Logger, color, verbose bool) {
	if len(list.Symbols()) == 0 {
		appLogger.Warning("Watch-list is empty; add symbols with `watch add TICKER`")
	}

	timeout := time.Duration(conf.Network.RequestTimeout) * time.Second
	source := client.NewGatewayClient(conf.Poller.GatewayURL, timeout, appLogger.Named("Gateway"))

	renderer := poller.NewConsoleRenderer(os.Stdout, color)
	renderer.Verbose = verbose

	p := poller.NewPoller(conf.MConfig, list, source, renderer, appLogger.Named("Poller"))
	if err := p.Start(ctx); err != nil {
		appLogger.Critical("Failed to start poller: %v", err)
	}
	appLogger.Info("Watching %d symbols via %s at %s", len(list.Symbols()), source.Name(), conf.Poller.GatewayURL)

	<-ctx.Done()
	p.Stop()
}

func printSymbols(symbols []string) {
	if len(symbols) == 0 {
		fmt.Println("(empty)")
		return
	}
	fmt.Println(strings.Join(symbols, " "))
}
