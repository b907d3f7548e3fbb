// Package watchlist owns the ordered, de-duplicated list of tracked symbols and
// persists it as a JSON array under a single key.
package watchlist

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"stock-watch/src/helpers"
	"stock-watch/src/interfaces"
	"stock-watch/src/logger"
)

// Store is safe for concurrent use.
type Store struct {
	kv     interfaces.IKeyValueStore
	key    string
	logger *logger.Logger

	mu      sync.RWMutex
	symbols []string
}

var _ interfaces.IWatchList = (*Store)(nil)

// -----------------------------------------------------------------------------

// NewStore creates a store bound to one persistence key. Call Load before use.
func NewStore(kv interfaces.IKeyValueStore, key string, log *logger.Logger) *Store {
	return &Store{
		kv:      kv,
		key:     key,
		logger:  log,
		symbols: []string{},
	}
}

// -----------------------------------------------------------------------------

// Normalize trims and upper-cases user input.
func Normalize(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}

// -----------------------------------------------------------------------------

// Load reads the persisted list. A missing key, a read error or undecodable
// JSON all yield an empty list. Entries are normalized and de-duplicated,
// keeping the first occurrence; the cleaned list is written on the next change.
func (s *Store) Load(ctx context.Context) []string {
	loaded := []string{}

	raw, found, err := s.kv.Get(ctx, s.key)
	switch {
	case err != nil:
		s.logger.Warning("Failed to read watch-list %q, starting empty: %v", s.key, err)
	case !found:
		s.logger.Info("No persisted watch-list under %q, starting empty", s.key)
	default:
		var decoded []string
		if err := json.Unmarshal([]byte(raw), &decoded); err != nil {
			s.logger.Warning("Corrupt watch-list %q, starting empty: %v", s.key, err)
		} else {
			loaded = sanitize(decoded)
			if len(loaded) != len(decoded) {
				s.logger.Warning("Dropped %d empty or duplicate entries from watch-list %q", len(decoded)-len(loaded), s.key)
			}
		}
	}

	s.mu.Lock()
	s.symbols = loaded
	s.mu.Unlock()

	return clone(loaded)
}

// -----------------------------------------------------------------------------

// Add appends the normalized symbol and persists the full list. Empty and
// duplicate input is a no-op reported as *helpers.InputError; the returned list
// is always the current one.
func (s *Store) Add(ctx context.Context, symbol string) ([]string, error) {
	sym := Normalize(symbol)

	s.mu.Lock()
	defer s.mu.Unlock()

	if sym == "" {
		s.logger.Info("Ticker input is empty")
		return clone(s.symbols), helpers.NewInputError(symbol, helpers.ErrEmptySymbol)
	}
	if indexOf(s.symbols, sym) >= 0 {
		s.logger.Info("Ticker already exists: %s", sym)
		return clone(s.symbols), helpers.NewInputError(symbol, helpers.ErrDuplicateSymbol)
	}

	next := append(clone(s.symbols), sym)
	if err := s.persist(ctx, next); err != nil {
		return clone(s.symbols), err
	}
	s.symbols = next

	s.logger.Info("Ticker added: %s", sym)
	return clone(next), nil
}

// -----------------------------------------------------------------------------

// Remove deletes every occurrence of the normalized symbol and persists the
// full list. Removing an absent symbol is not an error.
func (s *Store) Remove(ctx context.Context, symbol string) ([]string, error) {
	sym := Normalize(symbol)

	s.mu.Lock()
	defer s.mu.Unlock()

	next := make([]string, 0, len(s.symbols))
	for _, existing := range s.symbols {
		if existing != sym {
			next = append(next, existing)
		}
	}

	if err := s.persist(ctx, next); err != nil {
		return clone(s.symbols), err
	}
	s.symbols = next

	s.logger.Info("Ticker removed: %s", sym)
	return clone(next), nil
}

// -----------------------------------------------------------------------------

// Symbols returns a snapshot of the list in insertion order.
func (s *Store) Symbols() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return clone(s.symbols)
}

// Contains reports whether the normalized symbol is tracked.
func (s *Store) Contains(symbol string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return indexOf(s.symbols, Normalize(symbol)) >= 0
}

// -----------------------------------------------------------------------------

func (s *Store) persist(ctx context.Context, symbols []string) error {
	data, err := json.Marshal(symbols)
	if err != nil {
		return helpers.NewDatabaseError("encode watch-list", err)
	}
	if err := s.kv.Set(ctx, s.key, string(data)); err != nil {
		s.logger.Error("Failed to persist watch-list %q: %v", s.key, err)
		return helpers.NewDatabaseError(fmt.Sprintf("persist watch-list %q", s.key), err)
	}
	return nil
}

func indexOf(symbols []string, sym string) int {
	for i, s := range symbols {
		if s == sym {
			return i
		}
	}
	return -1
}

func sanitize(symbols []string) []string {
	out := make([]string, 0, len(symbols))
	for _, raw := range symbols {
		sym := Normalize(raw)
		if sym == "" || indexOf(out, sym) >= 0 {
			continue
		}
		out = append(out, sym)
	}
	return out
}

func clone(symbols []string) []string {
	out := make([]string, len(symbols))
	copy(out, symbols)
	return out
}
