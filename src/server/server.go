package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"stock-watch/src/helpers"
	"stock-watch/src/interfaces"
	"stock-watch/src/logger"
	"stock-watch/src/models"
	"stock-watch/src/watchlist"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// Refresher is told to poll the whole list after it changes.
type Refresher interface {
	Refresh()
}

// -----------------------------------------------------------------------------
// WatchServer
// -----------------------------------------------------------------------------

type WatchServer struct {
	Config *models.MConfig
	Logger *logger.Logger

	engine     *gin.Engine
	httpServer *http.Server
	page       []byte

	hub          *Hub
	watchList    *watchlist.Store
	source       interfaces.IQuoteSource
	refresher    Refresher
	fetchTimeout time.Duration
}

// -----------------------------------------------------------------------------
// Constructor
// -----------------------------------------------------------------------------

func NewWatchServer(cfg *models.MConfig, list *watchlist.Store, source interfaces.IQuoteSource, hub *Hub, log *logger.Logger) (*WatchServer, error) {
	if cfg.LogLevel != "DEBUG" {
		gin.SetMode(gin.ReleaseMode)
	}

	page, err := renderPage(cfg)
	if err != nil {
		return nil, fmt.Errorf("render page: %w", err)
	}

	s := &WatchServer{
		Config:       cfg,
		Logger:       log,
		engine:       gin.New(),
		page:         page,
		hub:          hub,
		watchList:    list,
		source:       source,
		fetchTimeout: time.Duration(cfg.Network.RequestTimeout) * time.Second,
	}

	s.httpServer = &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	s.engine.Use(gin.Recovery())

	// CORS for local tools on another loopback port
	s.engine.Use(func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if strings.HasPrefix(origin, "http://127.0.0.1:") || strings.HasPrefix(origin, "http://localhost:") {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		}
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, DELETE")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	s.setupRoutes()
	return s, nil
}

// SetRefresher wires the poller in after construction.
func (s *WatchServer) SetRefresher(r Refresher) {
	s.refresher = r
}

// Handler exposes the router, mainly for tests.
func (s *WatchServer) Handler() http.Handler {
	return s.engine
}

// -----------------------------------------------------------------------------
// Route Setup
// -----------------------------------------------------------------------------

func (s *WatchServer) setupRoutes() {
	s.engine.GET("/", s.getIndex)
	s.engine.POST("/get_stock_data", s.getStockData)

	s.engine.GET("/api/watchlist", s.listSymbols)
	s.engine.POST("/api/watchlist", s.addSymbol)
	s.engine.DELETE("/api/watchlist/:ticker", s.removeSymbol)
	s.engine.GET("/api/config", s.getConfig)
	s.engine.GET("/api/health", s.getHealth)

	s.engine.GET("/ws", s.handleWebSocket)
}

// -----------------------------------------------------------------------------
// Server Lifecycle
// -----------------------------------------------------------------------------

// Start blocks serving HTTP until Stop is called.
func (s *WatchServer) Start() error {
	s.Logger.Info("Starting server on %s", s.httpServer.Addr)

	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// -----------------------------------------------------------------------------

func (s *WatchServer) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// -----------------------------------------------------------------------------
// Route Handlers
// -----------------------------------------------------------------------------

func (s *WatchServer) getIndex(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", s.page)
}

// -----------------------------------------------------------------------------

// getStockData never answers with a 5xx: every failure, including a panicking
// source, is a 404 with the not-found body.
func (s *WatchServer) getStockData(c *gin.Context) {
	ticker, err := readTicker(c)
	if err != nil {
		s.Logger.Debug("Bad get_stock_data body: %v", err)
		s.notFound(c)
		return
	}

	symbol := watchlist.Normalize(ticker)
	if symbol == "" {
		s.notFound(c)
		return
	}

	quote, err := s.lookup(c.Request.Context(), symbol)
	if err != nil {
		s.Logger.Info("Error fetching data for ticker %s: %v", symbol, err)
		s.notFound(c)
		return
	}

	c.JSON(http.StatusOK, models.MQuoteResponse{
		CurrentPrice: quote.CurrentPrice,
		OpenPrice:    quote.OpenPrice,
	})
}

func (s *WatchServer) lookup(ctx context.Context, symbol string) (q models.MQuote, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("quote source panicked: %v", r)
		}
	}()

	if s.fetchTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.fetchTimeout)
		defer cancel()
	}
	return s.source.FetchQuote(ctx, symbol)
}

func (s *WatchServer) notFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, models.MErrorResponse{Error: helpers.ErrNotFound.Error()})
}

// -----------------------------------------------------------------------------

func (s *WatchServer) listSymbols(c *gin.Context) {
	c.JSON(http.StatusOK, models.MWatchListResponse{Symbols: s.watchList.Symbols()})
}

// -----------------------------------------------------------------------------

// addSymbol answers 200 with the current list even when the add is a no-op.
// A duplicate still triggers a refresh, an empty ticker does not.
func (s *WatchServer) addSymbol(c *gin.Context) {
	ticker, err := readTicker(c)
	if err != nil {
		s.Logger.Debug("Bad watch-list body: %v", err)
		ticker = ""
	}

	symbols, err := s.watchList.Add(c.Request.Context(), ticker)
	switch {
	case err == nil:
		s.hub.BroadcastWatchList(symbols)
		s.refresh()
	case errors.Is(err, helpers.ErrDuplicateSymbol):
		s.refresh()
	case helpers.IsInputError(err):
	default:
		c.JSON(http.StatusInternalServerError, models.MErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, models.MWatchListResponse{Symbols: symbols})
}

// -----------------------------------------------------------------------------

func (s *WatchServer) removeSymbol(c *gin.Context) {
	symbols, err := s.watchList.Remove(c.Request.Context(), c.Param("ticker"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.MErrorResponse{Error: err.Error()})
		return
	}

	s.hub.BroadcastWatchList(symbols)
	s.refresh()
	c.JSON(http.StatusOK, models.MWatchListResponse{Symbols: symbols})
}

// -----------------------------------------------------------------------------

func (s *WatchServer) getConfig(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"pollIntervalSeconds": s.Config.Poller.PollIntervalSeconds,
		"flashDurationMs":     s.Config.Poller.FlashDurationMs,
	})
}

// -----------------------------------------------------------------------------

func (s *WatchServer) getHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":      "ok",
		"connections": s.hub.ConnectionCount(),
		"symbols":     len(s.watchList.Symbols()),
	})
}

func (s *WatchServer) refresh() {
	if s.refresher != nil {
		s.refresher.Refresh()
	}
}

// -----------------------------------------------------------------------------
// WebSocket
// -----------------------------------------------------------------------------

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

func (s *WatchServer) handleWebSocket(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		s.Logger.Info("Failed to upgrade websocket: %v", err)
		return
	}

	client := newClient(s.hub, conn)
	select {
	case s.hub.register <- client:
	case <-s.hub.done:
		conn.Close()
		return
	}
	s.Logger.Debug("Client %s connected from %s", client.id, c.ClientIP())

	go client.writePump()
	go client.readPump()
}
