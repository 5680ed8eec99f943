package session

import (
	"strings"
	"sync"
	"time"
	"unicode/utf8"
)

const DefaultHistoryLimit = 8000

// Accumulator owns the pending batch buffer and the capped full-session
// transcript. Append and Flush are synchronous and mutex-guarded so a flush
// can never interleave with a partial append.
type Accumulator struct {
	mu          sync.Mutex
	pending     string
	history     string
	limit       int
	lastFlushAt time.Time
}

func NewAccumulator(limit int) *Accumulator {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	return &Accumulator{limit: limit}
}

// Append adds text to both the pending buffer and the full history. History
// keeps only its trailing limit bytes; pure suffix retention, mid-word cuts
// are accepted.
func (a *Accumulator) Append(text string) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.pending += text + " "
	a.history += text + " "

	if len(a.history) > a.limit {
		cut := len(a.history) - a.limit
		// don't start mid-rune
		for cut < len(a.history) && !utf8.RuneStart(a.history[cut]) {
			cut++
		}
		a.history = a.history[cut:]
	}
}

// Flush drains the pending buffer. Returns the trimmed batch text; empty
// string means the caller must skip enrichment.
func (a *Accumulator) Flush() string {
	a.mu.Lock()
	defer a.mu.Unlock()

	batch := strings.TrimSpace(a.pending)
	a.pending = ""
	a.lastFlushAt = time.Now()
	return batch
}

// SnapshotHistory returns the capped full-session transcript without
// touching the pending buffer. Used as context for the chat/Q&A path.
func (a *Accumulator) SnapshotHistory() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.history
}

func (a *Accumulator) LastFlushAt() time.Time {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.lastFlushAt
}
