package core

// Broadcaster is the outbound UI boundary. The card store notifies after
// every append and clear; the session manager notifies on start and stop.
// Transports implement it to render state.
type Broadcaster interface {
	CardsUpdated(cards []Card)
	RecordingStateChanged(recording bool)
}

// NopBroadcaster is used where no transport is attached (tests, wiring).
type NopBroadcaster struct{}

func (NopBroadcaster) CardsUpdated([]Card)        {}
func (NopBroadcaster) RecordingStateChanged(bool) {}
