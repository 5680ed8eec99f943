package enrich

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sandevgo/sidenote/internal/cards"
	"github.com/sandevgo/sidenote/internal/core"
	"github.com/sandevgo/sidenote/pkg/log"
)

// Mode selects what each batch is mined for.
type Mode string

const (
	ModeTopics  Mode = "topics"
	ModeActions Mode = "actions"
	ModeBoth    Mode = "both"
)

// Tracker is the slice of session state the router needs: the per-session
// processed-topic set.
type Tracker interface {
	TopicSeen(topic string) bool
	MarkProcessed(topic string)
}

const (
	defaultCallTimeout = 30 * time.Second
	extractTemperature = 0.1
	extractMaxTokens   = 500
	answerTemperature  = 0.3
	answerMaxTokens    = 700
)

// Router turns flushed batches into cards. Every failure is contained here:
// nothing propagates back to the scheduler, a failed batch simply yields no
// cards (or a fallback card on the question path).
type Router struct {
	provider    core.AIProvider // nil means no API key: demo generator only
	store       *cards.Store
	mode        Mode
	callTimeout time.Duration
	tokenBudget int
}

func NewRouter(provider core.AIProvider, store *cards.Store, mode Mode, callTimeout time.Duration, tokenBudget int) *Router {
	if callTimeout <= 0 {
		callTimeout = defaultCallTimeout
	}
	switch mode {
	case ModeTopics, ModeActions, ModeBoth:
	default:
		mode = ModeTopics
	}
	return &Router{
		provider:    provider,
		store:       store,
		mode:        mode,
		callTimeout: callTimeout,
		tokenBudget: tokenBudget,
	}
}

// ProcessBatch runs one batch through the enrichment pipeline. Safe to call
// concurrently; batches are independent and results land in completion
// order.
func (r *Router) ProcessBatch(ctx context.Context, tracker Tracker, batch string) {
	if batch == "" {
		return
	}

	batch = clipTokens(batch, r.tokenBudget)

	if r.provider == nil {
		for _, card := range demoCards(batch) {
			r.emit(ctx, card)
		}
		return
	}

	if r.mode == ModeTopics || r.mode == ModeBoth {
		r.processTopics(ctx, tracker, batch)
	}
	if r.mode == ModeActions || r.mode == ModeBoth {
		r.processActions(ctx, batch)
	}
}

func (r *Router) processTopics(ctx context.Context, tracker Tracker, batch string) {
	logger := log.FromCtx(ctx)

	topics, err := r.extractTopics(ctx, batch)
	if err != nil {
		logger.Warn().Err(err).Msg("topic extraction failed, batch dropped")
		return
	}

	for _, topic := range topics {
		if tracker.TopicSeen(topic) {
			logger.Debug().Str("topic", topic).Msg("topic already enriched this session")
			continue
		}

		card, err := r.explain(ctx, topic)
		if err != nil {
			// Not marked processed: a later batch may retry this topic.
			logger.Warn().Err(err).Str("topic", topic).Msg("explanation failed")
			continue
		}

		if r.emit(ctx, card) {
			tracker.MarkProcessed(topic)
		}
	}
}

func (r *Router) processActions(ctx context.Context, batch string) {
	logger := log.FromCtx(ctx)

	callCtx, cancel := context.WithTimeout(ctx, r.callTimeout)
	defer cancel()

	content, err := r.provider.Chat(callCtx, []core.Message{
		{Role: core.RoleSystem, Content: topicSystemPrompt},
		{Role: core.RoleUser, Content: buildActionsPrompt(batch)},
	}, core.ChatOptions{Temperature: extractTemperature, MaxTokens: extractMaxTokens})
	if err != nil {
		logger.Warn().Err(err).Msg("action extraction failed, batch dropped")
		return
	}

	items, err := parseActionItems(content)
	if err != nil {
		logger.Warn().Err(err).Msg("action extraction returned malformed JSON")
		return
	}

	for _, item := range items {
		r.emit(ctx, core.Card{
			ID:        uuid.NewString(),
			Kind:      core.CardActionItem,
			Topic:     item.Action,
			CreatedAt: time.Now(),
			Summary:   item.Action,
			Assignee:  nullToEmpty(item.Assignee),
			Priority:  item.Priority,
			Deadline:  nullToEmpty(item.Deadline),
		})
	}
}

func (r *Router) extractTopics(ctx context.Context, batch string) ([]string, error) {
	callCtx, cancel := context.WithTimeout(ctx, r.callTimeout)
	defer cancel()

	content, err := r.provider.Chat(callCtx, []core.Message{
		{Role: core.RoleSystem, Content: topicSystemPrompt},
		{Role: core.RoleUser, Content: buildTopicsPrompt(batch)},
	}, core.ChatOptions{Temperature: extractTemperature, MaxTokens: extractMaxTokens})
	if err != nil {
		return nil, fmt.Errorf("llm chat: %w", err)
	}

	return parseTopics(content)
}

func (r *Router) explain(ctx context.Context, topic string) (core.Card, error) {
	callCtx, cancel := context.WithTimeout(ctx, r.callTimeout)
	defer cancel()

	content, err := r.provider.Chat(callCtx, []core.Message{
		{Role: core.RoleSystem, Content: topicSystemPrompt},
		{Role: core.RoleUser, Content: buildExplainPrompt(topic)},
	}, core.ChatOptions{Temperature: extractTemperature, MaxTokens: extractMaxTokens})
	if err != nil {
		return core.Card{}, fmt.Errorf("llm chat: %w", err)
	}

	exp, err := parseExplanation(content)
	if err != nil {
		return core.Card{}, err
	}

	return core.Card{
		ID:        uuid.NewString(),
		Kind:      core.CardTopic,
		Topic:     topic,
		CreatedAt: time.Now(),
		Summary:   exp.Summary,
		KeyPoints: exp.KeyPoints,
		UseCase:   exp.UseCase,
		Resources: exp.Resources,
	}, nil
}

// AnswerQuestion serves the direct chat path. Always produces a card: on any
// failure the card's summary carries the error text instead of the answer,
// so user-facing errors are never swallowed.
func (r *Router) AnswerQuestion(ctx context.Context, question, transcript string) core.Card {
	logger := log.FromCtx(ctx)

	card := core.Card{
		ID:        uuid.NewString(),
		Kind:      core.CardChatAnswer,
		Topic:     question,
		CreatedAt: time.Now(),
		Expanded:  true,
	}

	if r.provider == nil {
		card.Summary = "No API key configured: set OPENAI_API_KEY (or pick another LLM_PROVIDER) to enable answers."
		r.store.Append(card)
		return card
	}

	callCtx, cancel := context.WithTimeout(ctx, r.callTimeout)
	defer cancel()

	content, err := r.provider.Chat(callCtx, []core.Message{
		{Role: core.RoleSystem, Content: "You are a concise meeting assistant."},
		{Role: core.RoleUser, Content: buildAnswerPrompt(question, transcript)},
	}, core.ChatOptions{Temperature: answerTemperature, MaxTokens: answerMaxTokens})
	if err != nil {
		logger.Warn().Err(err).Msg("question answering failed")
		card.Summary = fmt.Sprintf("Could not answer: %v", err)
	} else {
		card.Summary = content
	}

	r.store.Append(card)
	return card
}

// emit appends a card unless the batch's context was cancelled while it was
// in flight. Under the abandon-on-stop policy that context is the session's,
// so stopping also drops late results; otherwise late results still land,
// matching the fire-and-forget arrival of the non-abandoning policy.
func (r *Router) emit(ctx context.Context, card core.Card) bool {
	if ctx.Err() != nil {
		return false
	}
	r.store.Append(card)
	return true
}

func nullToEmpty(s string) string {
	if s == "null" {
		return ""
	}
	return s
}
