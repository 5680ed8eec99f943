package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandevgo/sidenote/internal/core"
)

type cardsMsg []core.Card

type recordingMsg bool

type model struct {
	coord core.Coordinator

	vp        viewport.Model
	input     textinput.Model
	cards     []core.Card
	recording bool
	asking    bool
	width     int
	height    int
	ready     bool
}

func newModel(coord core.Coordinator) model {
	ti := textinput.New()
	ti.Placeholder = "ask a question (enter to submit, esc to cancel)"
	ti.CharLimit = 500

	return model{
		coord: coord,
		input: ti,
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if !m.ready {
			m.vp = viewport.New(msg.Width, msg.Height-4)
			m.ready = true
		} else {
			m.vp.Width = msg.Width
			m.vp.Height = msg.Height - 4
		}
		m.vp.SetContent(m.renderCards())
		return m, nil

	case cardsMsg:
		m.cards = msg
		m.vp.SetContent(m.renderCards())
		m.vp.GotoBottom()
		return m, nil

	case recordingMsg:
		m.recording = bool(msg)
		return m, nil

	case tea.KeyMsg:
		if m.asking {
			return m.updateAsking(msg)
		}
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "s":
			_ = m.coord.StartSession(context.Background())
			return m, nil
		case "x":
			_ = m.coord.StopSession(context.Background())
			return m, nil
		case "c":
			m.coord.ClearCards()
			return m, nil
		case "a", "/":
			m.asking = true
			m.input.Focus()
			return m, textinput.Blink
		}
	}

	var cmd tea.Cmd
	m.vp, cmd = m.vp.Update(msg)
	return m, cmd
}

func (m model) updateAsking(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.asking = false
		m.input.Reset()
		return m, nil
	case "enter":
		question := strings.TrimSpace(m.input.Value())
		m.asking = false
		m.input.Reset()
		if question == "" {
			return m, nil
		}
		coord := m.coord
		// The answer arrives through the store broadcast as a chat card.
		return m, func() tea.Msg {
			coord.Ask(context.Background(), question)
			return nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m model) View() string {
	if !m.ready {
		return "loading..."
	}

	status := statusIdleStyle.Render("● standby")
	if m.recording {
		status = statusRecStyle.Render("● recording")
	}
	header := fmt.Sprintf("%s  %s", titleStyle.Render("Sidenote"), status)

	footer := helpStyle.Render("s start · x stop · a ask · c clear · q quit")
	if m.asking {
		footer = m.input.View()
	}

	return fmt.Sprintf("%s\n%s\n%s", header, m.vp.View(), footer)
}

func (m model) renderCards() string {
	if len(m.cards) == 0 {
		return cardMetaStyle.Render("\n  Cards will appear here once recording starts.")
	}

	var b strings.Builder
	for i, card := range m.cards {
		b.WriteString(fmt.Sprintf("%s %s  %s\n",
			cardKindStyle.Render(fmt.Sprintf("[%s]", card.Kind)),
			cardTopicStyle.Render(card.Topic),
			cardMetaStyle.Render(card.CreatedAt.Format("15:04:05")),
		))
		b.WriteString(cardBodyStyle.Render(wrap(card.Summary, m.width-2)))
		b.WriteString("\n")
		for _, p := range card.KeyPoints {
			b.WriteString(cardBodyStyle.Render("  • " + p))
			b.WriteString("\n")
		}
		if card.UseCase != "" {
			b.WriteString(cardMetaStyle.Render("  use case: " + card.UseCase))
			b.WriteString("\n")
		}
		for _, r := range card.Resources {
			b.WriteString(cardMetaStyle.Render("  ↗ " + r))
			b.WriteString("\n")
		}
		if card.Assignee != "" || card.Deadline != "" {
			b.WriteString(cardMetaStyle.Render(fmt.Sprintf("  assignee: %s  priority: %s  deadline: %s",
				card.Assignee, card.Priority, card.Deadline)))
			b.WriteString("\n")
		}
		if i < len(m.cards)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func wrap(s string, width int) string {
	if width <= 0 {
		return s
	}
	words := strings.Fields(s)
	var b strings.Builder
	line := 0
	for i, w := range words {
		if line+len(w)+1 > width && line > 0 {
			b.WriteString("\n")
			line = 0
		} else if i > 0 {
			b.WriteString(" ")
			line++
		}
		b.WriteString(w)
		line += len(w)
	}
	return b.String()
}
