package telegram

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sandevgo/sidenote/internal/config"
	"github.com/sandevgo/sidenote/internal/core"
	"github.com/sandevgo/sidenote/pkg/log"
	tele "gopkg.in/telebot.v3"
)

const baseContextKey = "base_context"

// Bot is the Telegram transport: owner-only commands in, cards out.
type Bot struct {
	bot     *tele.Bot
	cfg     *config.TelegramConfig
	coord   core.Coordinator
	router  core.CmdRouter
	sender  *sender
	ownerID int64

	mu         sync.Mutex
	lastCount  int
	stateKnown bool
	recording  bool
}

func NewBot(
	ctx context.Context,
	cfg *config.TelegramConfig,
	coord core.Coordinator,
	router core.CmdRouter,
) (*Bot, error) {
	pref := tele.Settings{
		Token:  cfg.Token,
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
	}

	b, err := tele.NewBot(pref)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}

	bot := &Bot{
		bot:     b,
		cfg:     cfg,
		coord:   coord,
		router:  router,
		sender:  newSender(b),
		ownerID: cfg.OwnerID,
	}

	// Carry the signal/logger context into handlers
	b.Use(func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			c.Set(baseContextKey, ctx)
			return next(c)
		}
	})

	// Middleware: Only allow the owner
	b.Use(func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			if c.Sender().ID != bot.ownerID {
				return nil // Ignore unauthorized users
			}
			return next(c)
		}
	})

	b.Handle(tele.OnText, bot.handleMessage)

	return bot, nil
}

func (b *Bot) Start(ctx context.Context) error {
	log.FromCtx(ctx).Info().Msg("starting telegram bot")
	b.bot.Start()
	return nil
}

func (b *Bot) Shutdown(ctx context.Context) error {
	b.bot.Stop()
	return nil
}

func (b *Bot) handleMessage(c tele.Context) error {
	ctx := c.Get(baseContextKey).(context.Context)
	logger := log.FromCtx(ctx)
	sessionID := fmt.Sprintf("telegram-%d", c.Chat().ID)

	_ = c.Notify(tele.Typing)

	if reply, handled := b.router.Execute(ctx, sessionID, c.Text()); handled {
		return c.Send(reply)
	}

	// Any non-command text is a direct question against the transcript.
	card := b.coord.Ask(ctx, c.Text())
	if err := b.sender.sendMarkdown(ctx, c.Chat(), card.Markdown(), false); err != nil {
		logger.Error().Err(err).Msg("failed to send answer card")
	}
	return nil
}

var _ core.Broadcaster = (*Bot)(nil)

// CardsUpdated pushes cards that appeared since the last broadcast to the
// owner chat. Chat answers are skipped: they were already delivered as the
// direct reply.
func (b *Bot) CardsUpdated(cards []core.Card) {
	b.mu.Lock()
	from := b.lastCount
	b.lastCount = len(cards)
	b.mu.Unlock()

	if len(cards) < from {
		from = 0
	}

	ctx := context.Background()
	for _, card := range cards[from:] {
		if card.Kind == core.CardChatAnswer {
			continue
		}
		owner := &tele.User{ID: b.ownerID}
		if err := b.sender.sendMarkdown(ctx, owner, card.Markdown(), true); err != nil {
			log.FromCtx(ctx).Error().Err(err).Str("topic", card.Topic).Msg("failed to push card")
		}
	}
}

func (b *Bot) RecordingStateChanged(recording bool) {
	if !b.noteRecordingState(recording) {
		return
	}

	owner := &tele.User{ID: b.ownerID}
	text := "Recording stopped."
	if recording {
		text = "Recording started."
	}
	_, _ = b.bot.Send(owner, text)
}

// noteRecordingState reports whether the state is worth announcing. The hub
// replays the current state on subscribe; the owner is only messaged on real
// transitions, and the idle state at boot is not one.
func (b *Bot) noteRecordingState(recording bool) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.stateKnown && b.recording == recording {
		return false
	}
	first := !b.stateKnown
	b.stateKnown = true
	b.recording = recording

	return !(first && !recording)
}
