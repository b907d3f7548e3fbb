package main

import (
	"context"

	"stock-watch/src/data_source/yahoo"
	"stock-watch/src/interfaces"
	"stock-watch/src/logger"
	"stock-watch/src/models"
	"stock-watch/src/network"
	"stock-watch/src/storage"
)

// -----------------------------------------------------------------------------

// setupStorage opens the key-value backend named in the config
func setupStorage(ctx context.Context, config *models.MConfig, appLogger *logger.Logger) (interfaces.IKeyValueStore, error) {
	appLogger.Info("Opening %s storage...", config.Storage.DBType)
	return storage.NewKeyValueStore(ctx, config, appLogger)
}

// -----------------------------------------------------------------------------

// setupQuoteSource wires the upstream provider behind the network manager
func setupQuoteSource(config *models.MConfig, appLogger *logger.Logger) interfaces.IQuoteSource {
	networkManager := network.NewAsyncNetworkManager(config, logger.NewLogger(config, "NetworkManager"))
	source := yahoo.NewYahooFinanceSource(config, networkManager, logger.NewLogger(config, "YahooFinance"))
	appLogger.Info("Using quote source %s (%s)", source.Name(), config.DataSource.BaseURL)
	return source
}
