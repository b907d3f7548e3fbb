// Package poller refreshes quotes for every tracked symbol on a countdown and
// turns each result into render output.
package poller

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"stock-watch/src/interfaces"
	"stock-watch/src/logger"
	"stock-watch/src/models"

	"golang.org/x/sync/errgroup"
)

type fetchResult struct {
	symbol string
	quote  models.MQuote
	err    error
}

type flashClear struct {
	symbol     string
	flashClass string
}

// -----------------------------------------------------------------------------

// Poller owns the countdown timer, the last-seen price per symbol and all
// render emission. Everything except the fetches themselves runs on a single
// control goroutine, so lastPrices needs no lock.
type Poller struct {
	WatchList interfaces.IWatchList
	Source    interfaces.IQuoteSource
	Renderer  interfaces.IRenderer
	Logger    *logger.Logger

	intervalSeconds int
	tick            time.Duration
	flashDuration   time.Duration
	fetchTimeout    time.Duration
	concurrency     int

	lastPrices map[string]float64
	countdown  int

	results chan fetchResult
	refresh chan struct{}
	clears  chan flashClear

	mu         sync.Mutex
	cancelFunc context.CancelFunc
	done       chan struct{}
	isRunning  atomic.Bool
}

// -----------------------------------------------------------------------------

func NewPoller(cfg *models.MConfig, list interfaces.IWatchList, source interfaces.IQuoteSource, renderer interfaces.IRenderer, log *logger.Logger) *Poller {
	concurrency := cfg.Poller.ConcurrentRequests
	if concurrency <= 0 {
		concurrency = 1
	}

	return &Poller{
		WatchList:       list,
		Source:          source,
		Renderer:        renderer,
		Logger:          log,
		intervalSeconds: cfg.Poller.PollIntervalSeconds,
		tick:            time.Second,
		flashDuration:   time.Duration(cfg.Poller.FlashDurationMs) * time.Millisecond,
		fetchTimeout:    time.Duration(cfg.Network.RequestTimeout) * time.Second,
		concurrency:     concurrency,
		lastPrices:      make(map[string]float64),
		results:         make(chan fetchResult, 64),
		refresh:         make(chan struct{}, 1),
		clears:          make(chan flashClear, 64),
	}
}

// -----------------------------------------------------------------------------

// Start polls once immediately and then every interval until ctx is cancelled
// or Stop is called.
func (p *Poller) Start(parentCtx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.isRunning.Load() {
		return fmt.Errorf("poller is already running")
	}

	ctx, cancel := context.WithCancel(parentCtx)
	p.cancelFunc = cancel
	p.done = make(chan struct{})
	p.isRunning.Store(true)

	go p.runLoop(ctx, p.done)
	p.Logger.Info("Poller started (interval %ds, flash %v)", p.intervalSeconds, p.flashDuration)
	return nil
}

// -----------------------------------------------------------------------------

// Stop cancels the loop and waits for it to exit. In-flight fetches are
// abandoned; their results are discarded.
func (p *Poller) Stop() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.isRunning.Load() {
		return fmt.Errorf("poller is not running")
	}

	p.cancelFunc()
	<-p.done
	p.isRunning.Store(false)
	p.Logger.Info("Poller stopped")
	return nil
}

// -----------------------------------------------------------------------------

// Refresh requests an out-of-band poll of the whole list without touching the
// countdown. Requests arriving while one is pending are merged.
func (p *Poller) Refresh() {
	select {
	case p.refresh <- struct{}{}:
	default:
	}
}

// -----------------------------------------------------------------------------

func (p *Poller) runLoop(ctx context.Context, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(p.tick)
	defer ticker.Stop()

	p.countdown = p.intervalSeconds
	p.Renderer.RenderCountdown(p.countdown)
	p.pollAll(ctx)

	for {
		select {
		case <-ctx.Done():
			return

		case <-ticker.C:
			p.countdown--
			p.Renderer.RenderCountdown(p.countdown)
			if p.countdown <= 0 {
				p.pollAll(ctx)
				p.countdown = p.intervalSeconds
			}

		case <-p.refresh:
			p.pollAll(ctx)

		case r := <-p.results:
			p.handleResult(ctx, r)

		case c := <-p.clears:
			p.Renderer.ClearFlash(c.symbol, c.flashClass)
		}
	}
}

// -----------------------------------------------------------------------------

// pollAll dispatches one fetch per tracked symbol without waiting for them.
func (p *Poller) pollAll(ctx context.Context) {
	symbols := p.WatchList.Symbols()

	tracked := make(map[string]struct{}, len(symbols))
	for _, s := range symbols {
		tracked[s] = struct{}{}
	}
	for s := range p.lastPrices {
		if _, ok := tracked[s]; !ok {
			delete(p.lastPrices, s)
		}
	}

	if len(symbols) == 0 {
		return
	}

	p.Logger.Debug("Polling %d symbols", len(symbols))
	go p.dispatch(ctx, symbols)
}

// -----------------------------------------------------------------------------

func (p *Poller) dispatch(ctx context.Context, symbols []string) {
	var g errgroup.Group
	g.SetLimit(p.concurrency)

	for _, sym := range symbols {
		sym := sym
		g.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}
			q, err := p.fetch(ctx, sym)
			select {
			case p.results <- fetchResult{symbol: sym, quote: q, err: err}:
			case <-ctx.Done():
			}
			return nil
		})
	}

	g.Wait()
}

// -----------------------------------------------------------------------------

func (p *Poller) fetch(ctx context.Context, symbol string) (q models.MQuote, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("quote source panicked: %v", r)
		}
	}()

	if p.fetchTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.fetchTimeout)
		defer cancel()
	}

	q, err = p.Source.FetchQuote(ctx, symbol)
	if err == nil && q.Symbol == "" {
		q.Symbol = symbol
	}
	return q, err
}

// -----------------------------------------------------------------------------

// handleResult applies one fetch outcome. Failures, stale results for removed
// symbols and undisplayable quotes leave lastPrices and the display untouched.
func (p *Poller) handleResult(ctx context.Context, r fetchResult) {
	if r.err != nil {
		p.Logger.Warning("Error fetching data for ticker %s: %v", r.symbol, r.err)
		return
	}

	if !p.WatchList.Contains(r.symbol) {
		p.Logger.Debug("Dropping result for removed ticker %s", r.symbol)
		return
	}

	last, known := p.lastPrices[r.symbol]
	update, ok := BuildRenderUpdate(r.quote, last, known, p.flashDuration)
	if !ok {
		p.Logger.Warning("Unusable quote for ticker %s: open=%v current=%v", r.symbol, r.quote.OpenPrice, r.quote.CurrentPrice)
		return
	}
	update.Symbol = r.symbol

	p.lastPrices[r.symbol] = r.quote.CurrentPrice
	p.Renderer.RenderQuote(update)
	p.scheduleClear(ctx, r.symbol, update.FlashClass)
}

// -----------------------------------------------------------------------------

func (p *Poller) scheduleClear(ctx context.Context, symbol, flashClass string) {
	time.AfterFunc(p.flashDuration, func() {
		select {
		case p.clears <- flashClear{symbol: symbol, flashClass: flashClass}:
		case <-ctx.Done():
		}
	})
}
