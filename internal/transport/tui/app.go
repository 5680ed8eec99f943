package tui

import (
	"context"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandevgo/sidenote/internal/core"
	"github.com/sandevgo/sidenote/pkg/log"
)

// App runs the card sidebar as a full-screen terminal program. It implements
// srv.Service and core.Broadcaster; hub events are forwarded into the
// bubbletea loop as messages.
type App struct {
	coord core.Coordinator

	mu      sync.Mutex
	program *tea.Program
}

func NewApp(coord core.Coordinator) *App {
	return &App{coord: coord}
}

func (a *App) Start(ctx context.Context) error {
	p := tea.NewProgram(newModel(a.coord), tea.WithAltScreen(), tea.WithContext(ctx))

	a.mu.Lock()
	a.program = p
	a.mu.Unlock()

	if _, err := p.Run(); err != nil && ctx.Err() == nil {
		return err
	}
	log.FromCtx(ctx).Info().Msg("tui closed")
	return nil
}

func (a *App) Shutdown(ctx context.Context) error {
	a.mu.Lock()
	p := a.program
	a.mu.Unlock()

	if p != nil {
		p.Quit()
	}
	return nil
}

var _ core.Broadcaster = (*App)(nil)

func (a *App) CardsUpdated(cards []core.Card) {
	a.send(cardsMsg(cards))
}

func (a *App) RecordingStateChanged(recording bool) {
	a.send(recordingMsg(recording))
}

func (a *App) send(msg tea.Msg) {
	a.mu.Lock()
	p := a.program
	a.mu.Unlock()

	if p != nil {
		p.Send(msg)
	}
}
