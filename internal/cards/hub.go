package cards

import (
	"sync"

	"github.com/sandevgo/sidenote/internal/core"
)

// Hub fans broadcast events out to every attached transport and replays the
// current state to late subscribers, so a transport attaching mid-session
// immediately sees the card list and recording flag.
type Hub struct {
	mu          sync.RWMutex
	subscribers []core.Broadcaster
	cards       []core.Card
	recording   bool
}

func NewHub() *Hub {
	return &Hub{}
}

var _ core.Broadcaster = (*Hub)(nil)

func (h *Hub) Subscribe(b core.Broadcaster) {
	h.mu.Lock()
	h.subscribers = append(h.subscribers, b)
	cards := h.cards
	recording := h.recording
	h.mu.Unlock()

	b.RecordingStateChanged(recording)
	b.CardsUpdated(cards)
}

func (h *Hub) CardsUpdated(cards []core.Card) {
	h.mu.Lock()
	h.cards = cards
	subs := append([]core.Broadcaster(nil), h.subscribers...)
	h.mu.Unlock()

	for _, s := range subs {
		s.CardsUpdated(cards)
	}
}

func (h *Hub) RecordingStateChanged(recording bool) {
	h.mu.Lock()
	h.recording = recording
	subs := append([]core.Broadcaster(nil), h.subscribers...)
	h.mu.Unlock()

	for _, s := range subs {
		s.RecordingStateChanged(recording)
	}
}
