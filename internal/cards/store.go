package cards

import (
	"sync"

	"github.com/sandevgo/sidenote/internal/core"
)

// Store is the ordered, append-only card list. No deduplication here; topic
// dedup happens upstream in the processed-topic set. Every mutation is
// broadcast.
type Store struct {
	mu          sync.RWMutex
	cards       []core.Card
	broadcaster core.Broadcaster
}

func NewStore(b core.Broadcaster) *Store {
	if b == nil {
		b = core.NopBroadcaster{}
	}
	return &Store{broadcaster: b}
}

func (s *Store) Append(card core.Card) {
	s.mu.Lock()
	s.cards = append(s.cards, card)
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	s.broadcaster.CardsUpdated(snapshot)
}

// List returns cards in insertion order.
func (s *Store) List() []core.Card {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.cards)
}

func (s *Store) Clear() {
	s.mu.Lock()
	s.cards = nil
	s.mu.Unlock()

	s.broadcaster.CardsUpdated(nil)
}

func (s *Store) snapshotLocked() []core.Card {
	out := make([]core.Card, len(s.cards))
	copy(out, s.cards)
	return out
}
