package session

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sandevgo/sidenote/internal/capture"
	"github.com/sandevgo/sidenote/internal/config"
	"github.com/sandevgo/sidenote/internal/core"
)

// Session scopes all mutable recording state: buffers, dedup state and the
// processed-topic set. One instance per recording; discarded on stop, which
// is what resets everything.
type Session struct {
	ID        string
	StartedAt time.Time

	acc    *Accumulator
	filter *capture.Filter

	// mu serializes ingest (the deduplicator is stateful) and guards the
	// processed-topic set.
	mu        sync.Mutex
	dedup     *capture.Deduplicator
	processed map[string]struct{}

	ctx    context.Context
	cancel context.CancelFunc
}

func New(parent context.Context, cfg *config.AppConfig) *Session {
	ctx, cancel := context.WithCancel(parent)
	return &Session{
		ID:        uuid.NewString(),
		StartedAt: time.Now(),
		acc:       NewAccumulator(cfg.HistoryLimit),
		filter:    capture.NewFilter(cfg.MinFragmentLen),
		dedup:     capture.NewDeduplicator(cfg.DedupWindow),
		processed: make(map[string]struct{}),
		ctx:       ctx,
		cancel:    cancel,
	}
}

// Ingest runs one capture event through the pipeline front: final-only,
// noise filter, deduplicator, accumulator. Reports whether the text was
// buffered. Capture sources and transports ingest from their own
// goroutines, so the filter/dedup/append sequence runs under the session
// mutex as one atomic step.
func (s *Session) Ingest(ev core.CaptionEvent) bool {
	if !ev.IsFinal {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	frag := core.Fragment{
		Text:       strings.TrimSpace(ev.Text),
		Source:     ev.Source,
		CapturedAt: time.Now(),
	}
	if s.filter.Classify(frag.Text) == capture.ClassNoise {
		return false
	}
	if !s.dedup.ShouldEmit(frag.Text, frag.CapturedAt) {
		return false
	}
	s.acc.Append(frag.Text)
	return true
}

func (s *Session) Flush() string {
	return s.acc.Flush()
}

func (s *Session) History() string {
	return s.acc.SnapshotHistory()
}

// TopicSeen reports whether topic was already enriched this session.
// Case-insensitive.
func (s *Session) TopicSeen(topic string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.processed[strings.ToLower(topic)]
	return ok
}

// MarkProcessed records a successfully enriched topic. Only called after the
// card is created, so transient failures leave the topic retryable.
func (s *Session) MarkProcessed(topic string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.processed[strings.ToLower(topic)] = struct{}{}
}

// Context is cancelled when the session stops.
func (s *Session) Context() context.Context {
	return s.ctx
}

func (s *Session) Active() bool {
	return s.ctx.Err() == nil
}

func (s *Session) Stop() {
	s.cancel()
}
