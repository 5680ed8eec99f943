package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sandevgo/sidenote/internal/cards"
	"github.com/sandevgo/sidenote/internal/config"
	"github.com/sandevgo/sidenote/internal/core"
	"github.com/sandevgo/sidenote/internal/enrich"
	"github.com/sandevgo/sidenote/pkg/log"
)

// Manager owns the session lifecycle: it starts/stops sessions, drives the
// capture source, and runs the flush scheduler. Implements core.Coordinator
// and srv.Service.
type Manager struct {
	cfg         *config.AppConfig
	router      *enrich.Router
	store       *cards.Store
	broadcaster core.Broadcaster
	source      core.CaptureSource // nil: transport-fed fragments only

	mu      sync.Mutex
	current *Session
	rootCtx context.Context
}

func NewManager(
	cfg *config.AppConfig,
	router *enrich.Router,
	store *cards.Store,
	broadcaster core.Broadcaster,
	source core.CaptureSource,
) *Manager {
	if broadcaster == nil {
		broadcaster = core.NopBroadcaster{}
	}
	return &Manager{
		cfg:         cfg,
		router:      router,
		store:       store,
		broadcaster: broadcaster,
		source:      source,
	}
}

var _ core.Coordinator = (*Manager)(nil)

// Start parks until shutdown; sessions are started on command, not on boot.
func (m *Manager) Start(ctx context.Context) error {
	m.mu.Lock()
	m.rootCtx = ctx
	m.mu.Unlock()

	<-ctx.Done()
	return nil
}

func (m *Manager) Shutdown(ctx context.Context) error {
	return m.StopSession(ctx)
}

func (m *Manager) StartSession(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.current != nil {
		return fmt.Errorf("already recording")
	}

	parent := m.rootCtx
	if parent == nil {
		parent = context.Background()
	}

	sess := New(parent, m.cfg)
	m.current = sess

	logger := log.FromCtx(ctx)
	logger.Info().Str("session", sess.ID).Dur("flush_interval", m.cfg.FlushInterval).Msg("session started")

	if m.source != nil {
		go func() {
			if err := m.source.Listen(sess.Context(), m.ingestFunc(sess)); err != nil {
				// Capture loss is non-fatal: the session keeps running on
				// whatever sources remain.
				logger.Warn().Err(err).Str("source", m.source.Name()).Msg("capture source unavailable")
			}
		}()
	}
	go m.runScheduler(sess)

	m.broadcaster.RecordingStateChanged(true)
	return nil
}

func (m *Manager) StopSession(ctx context.Context) error {
	m.mu.Lock()
	sess := m.current
	m.current = nil
	m.mu.Unlock()

	if sess == nil {
		return nil
	}

	// Cancels the scheduler and capture observers. Pending buffer is
	// discarded with the session; there is no flush-on-stop.
	sess.Stop()
	log.FromCtx(ctx).Info().Str("session", sess.ID).Msg("session stopped")

	m.broadcaster.RecordingStateChanged(false)
	return nil
}

func (m *Manager) Recording() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current != nil
}

// Ingest feeds a capture event from a transport (typed lines, embedded
// agents). Dropped when no session is recording.
func (m *Manager) Ingest(ev core.CaptionEvent) {
	m.mu.Lock()
	sess := m.current
	m.mu.Unlock()

	if sess != nil {
		sess.Ingest(ev)
	}
}

// Ask answers a direct question against the current transcript. Works with
// or without an active session; without one the question is answered with
// empty context.
func (m *Manager) Ask(ctx context.Context, question string) core.Card {
	m.mu.Lock()
	sess := m.current
	m.mu.Unlock()

	transcript := ""
	if sess != nil {
		transcript = sess.History()
	}
	return m.router.AnswerQuestion(ctx, question, transcript)
}

func (m *Manager) Cards() []core.Card {
	return m.store.List()
}

func (m *Manager) ClearCards() {
	m.store.Clear()
}

func (m *Manager) ingestFunc(sess *Session) func(core.CaptionEvent) {
	return func(ev core.CaptionEvent) {
		sess.Ingest(ev)
	}
}

// runScheduler fires the fixed-interval flush. Ticks never wait for a
// previous batch: each non-empty flush starts an independent enrichment
// call and results land in completion order.
func (m *Manager) runScheduler(sess *Session) {
	ticker := time.NewTicker(m.cfg.FlushInterval)
	defer ticker.Stop()

	for {
		select {
		case <-sess.Context().Done():
			return
		case <-ticker.C:
			batch := sess.Flush()
			if batch == "" {
				continue
			}
			go m.router.ProcessBatch(m.enrichContext(sess), sess, batch)
		}
	}
}

// enrichContext picks the context enrichment runs under: the session context
// when stop should abandon in-flight calls, the process context otherwise.
func (m *Manager) enrichContext(sess *Session) context.Context {
	if m.cfg.AbandonOnStop {
		return sess.Context()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.rootCtx != nil {
		return m.rootCtx
	}
	return context.Background()
}
