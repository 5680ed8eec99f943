package core

import "context"

// Coordinator is the inbound command boundary: everything a transport or
// command handler may ask of the running process. Implemented by the session
// manager.
type Coordinator interface {
	// StartSession begins capture and the flush scheduler. Returns an error
	// if a session is already recording.
	StartSession(ctx context.Context) error
	// StopSession cancels the scheduler and capture observers and discards
	// the session buffers. In-flight enrichment handling depends on the
	// abandon-on-stop policy.
	StopSession(ctx context.Context) error
	Recording() bool

	// Ingest feeds one capture event into the running session; dropped when
	// nothing is recording.
	Ingest(ev CaptionEvent)

	// Ask answers a direct user question against the session transcript.
	// Always returns a card; on failure the card embeds the error text.
	Ask(ctx context.Context, question string) Card

	Cards() []Card
	ClearCards()
}
