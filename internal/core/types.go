package core

import (
	"strings"
	"time"
)

const (
	AppName          = "Sidenote"
	AppUserAgent     = "Sidenote-Agent/0.1"
	AppRepositoryURL = "https://github.com/sandevgo/sidenote"
	AppVersion       = "0.1.0"
)

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// SourceTag identifies which capture producer emitted a fragment.
type SourceTag string

const (
	SourceCaption    SourceTag = "caption"
	SourceMicrophone SourceTag = "microphone"
)

// CaptionEvent is the raw capture-boundary event. Only final events are
// turned into fragments; interim speech-recognition results are dropped.
type CaptionEvent struct {
	Text    string
	IsFinal bool
	Source  SourceTag
}

// Fragment is one finalized unit of captured speech or caption text.
// Immutable once created.
type Fragment struct {
	Text       string
	Source     SourceTag
	CapturedAt time.Time
}

type CardKind string

const (
	CardTopic      CardKind = "topic-card"
	CardChatAnswer CardKind = "chat-answer"
	CardActionItem CardKind = "action-item"
)

// Card is a structured enrichment result. Append-only except for the
// Expanded display flag, which belongs to the UI layer.
type Card struct {
	ID        string    `json:"id"`
	Kind      CardKind  `json:"kind"`
	Topic     string    `json:"topic"`
	CreatedAt time.Time `json:"created_at"`
	Summary   string    `json:"summary"`
	KeyPoints []string  `json:"key_points,omitempty"`
	UseCase   string    `json:"use_case,omitempty"`
	Resources []string  `json:"resources,omitempty"`

	// Action-item fields, empty for other kinds.
	Assignee string `json:"assignee,omitempty"`
	Priority string `json:"priority,omitempty"`
	Deadline string `json:"deadline,omitempty"`

	Expanded bool `json:"expanded"`
}

// Markdown renders the card for text transports (CLI, Telegram).
func (c Card) Markdown() string {
	var b strings.Builder
	b.WriteString("**")
	b.WriteString(c.Topic)
	b.WriteString("**\n\n")
	b.WriteString(c.Summary)
	b.WriteString("\n")

	for _, p := range c.KeyPoints {
		b.WriteString("- ")
		b.WriteString(p)
		b.WriteString("\n")
	}
	if c.UseCase != "" {
		b.WriteString("\n_Use case:_ ")
		b.WriteString(c.UseCase)
		b.WriteString("\n")
	}
	if len(c.Resources) > 0 {
		b.WriteString("\n_Resources:_\n")
		for _, r := range c.Resources {
			b.WriteString("- ")
			b.WriteString(r)
			b.WriteString("\n")
		}
	}
	if c.Kind == CardActionItem {
		if c.Assignee != "" {
			b.WriteString("\n_Assignee:_ " + c.Assignee)
		}
		if c.Priority != "" {
			b.WriteString("\n_Priority:_ " + c.Priority)
		}
		if c.Deadline != "" {
			b.WriteString("\n_Deadline:_ " + c.Deadline)
		}
		b.WriteString("\n")
	}
	return b.String()
}
