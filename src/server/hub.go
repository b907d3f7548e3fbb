package server

import (
	"context"
	"sync"

	"stock-watch/src/interfaces"
	"stock-watch/src/logger"
	"stock-watch/src/models"
)

// -----------------------------------------------------------------------------
// Hub
// -----------------------------------------------------------------------------

// Hub fans render events out to every connected page and remembers the latest
// state so a page that connects mid-session sees the current board at once.
type Hub struct {
	Logger *logger.Logger

	clients    map[*Client]struct{}
	broadcast  chan *models.MMessage
	register   chan *Client
	unregister chan *Client
	done       chan struct{}

	stateMutex sync.RWMutex
	symbols    []string
	latest     map[string]models.MRenderUpdate
	countdown  int
	clientsN   int
}

var _ interfaces.IRenderer = (*Hub)(nil)

// -----------------------------------------------------------------------------

func NewHub(log *logger.Logger) *Hub {
	return &Hub{
		Logger:  log,
		clients: make(map[*Client]struct{}),
		// Buffered so the poller never waits on slow pages
		broadcast:  make(chan *models.MMessage, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		symbols:    []string{},
		latest:     make(map[string]models.MRenderUpdate),
	}
}

// -----------------------------------------------------------------------------

// Run is the hub loop. It returns when ctx is cancelled, closing every client.
func (h *Hub) Run(ctx context.Context) {
	defer func() {
		for client := range h.clients {
			close(client.send)
		}
		h.clients = make(map[*Client]struct{})
		h.setClientCount(0)
		close(h.done)
	}()

	for {
		select {
		case <-ctx.Done():
			return

		case client := <-h.register:
			h.clients[client] = struct{}{}
			h.setClientCount(len(h.clients))
			for _, msg := range h.snapshot() {
				select {
				case client.send <- msg:
				default:
				}
			}

		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
				h.setClientCount(len(h.clients))
			}

		case message := <-h.broadcast:
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					// Slow consumer, drop it rather than stall the hub
					h.Logger.Warning("Dropping slow client %s", client.id)
					delete(h.clients, client)
					close(client.send)
				}
			}
			h.setClientCount(len(h.clients))
		}
	}
}

// -----------------------------------------------------------------------------
// IRenderer
// -----------------------------------------------------------------------------

func (h *Hub) RenderQuote(update models.MRenderUpdate) {
	h.stateMutex.Lock()
	h.latest[update.Symbol] = update
	h.stateMutex.Unlock()

	u := update
	h.publish(&models.MMessage{Type: models.MessageRender, Render: &u})
}

func (h *Hub) ClearFlash(symbol, flashClass string) {
	h.stateMutex.Lock()
	if u, ok := h.latest[symbol]; ok && u.FlashClass == flashClass {
		u.FlashClass = ""
		h.latest[symbol] = u
	}
	h.stateMutex.Unlock()

	h.publish(&models.MMessage{Type: models.MessageClearFlash, Symbol: symbol, FlashClass: flashClass})
}

func (h *Hub) RenderCountdown(seconds int) {
	h.stateMutex.Lock()
	h.countdown = seconds
	h.stateMutex.Unlock()

	h.publish(&models.MMessage{Type: models.MessageCountdown, Seconds: seconds})
}

// -----------------------------------------------------------------------------

// BroadcastWatchList publishes the current list and forgets renders of symbols
// that are no longer tracked.
func (h *Hub) BroadcastWatchList(symbols []string) {
	list := append([]string{}, symbols...)

	h.stateMutex.Lock()
	h.symbols = list
	keep := make(map[string]struct{}, len(list))
	for _, s := range list {
		keep[s] = struct{}{}
	}
	for s := range h.latest {
		if _, ok := keep[s]; !ok {
			delete(h.latest, s)
		}
	}
	h.stateMutex.Unlock()

	h.publish(&models.MMessage{Type: models.MessageWatchList, Symbols: list})
}

// ConnectionCount returns the number of connected pages.
func (h *Hub) ConnectionCount() int {
	h.stateMutex.RLock()
	defer h.stateMutex.RUnlock()
	return h.clientsN
}

// -----------------------------------------------------------------------------

func (h *Hub) publish(msg *models.MMessage) {
	select {
	case h.broadcast <- msg:
	case <-h.done:
	default:
		h.Logger.Warning("Broadcast queue full, dropping %s event", msg.Type)
	}
}

// snapshot is what a newly connected page receives: the list, the latest
// render of each tracked symbol, then the countdown.
func (h *Hub) snapshot() []*models.MMessage {
	h.stateMutex.RLock()
	defer h.stateMutex.RUnlock()

	msgs := []*models.MMessage{{Type: models.MessageWatchList, Symbols: append([]string{}, h.symbols...)}}
	for _, s := range h.symbols {
		if u, ok := h.latest[s]; ok {
			u := u
			msgs = append(msgs, &models.MMessage{Type: models.MessageRender, Render: &u})
		}
	}
	msgs = append(msgs, &models.MMessage{Type: models.MessageCountdown, Seconds: h.countdown})
	return msgs
}

func (h *Hub) setClientCount(n int) {
	h.stateMutex.Lock()
	h.clientsN = n
	h.stateMutex.Unlock()
}
