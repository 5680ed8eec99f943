package telegram

import (
	"context"
	"strings"

	"github.com/sandevgo/sidenote/pkg/conv"
	"github.com/sandevgo/sidenote/pkg/log"
	"github.com/sandevgo/sidenote/pkg/retry"
	tele "gopkg.in/telebot.v3"
)

const maxTelegramMsgLen = 4000 // Safety margin below 4096

type sender struct {
	bot     *tele.Bot
	retrier *retry.Retrier
}

func newSender(bot *tele.Bot) *sender {
	return &sender{
		bot:     bot,
		retrier: retry.NewDefaultRetrier(),
	}
}

// sendMarkdown converts card markdown to Telegram HTML and sends it in
// chunks if needed.
func (s *sender) sendMarkdown(ctx context.Context, to tele.Recipient, md string, silent bool) error {
	logger := log.FromCtx(ctx)
	html := strings.TrimSpace(conv.MarkdownToTelegramHTML([]byte(md)))

	chunks := splitHTML(html, maxTelegramMsgLen)
	for i, chunk := range chunks {
		opts := []interface{}{tele.ModeHTML}
		if silent && i == 0 {
			opts = append(opts, tele.Silent)
		}

		err := s.retrier.Do(ctx, func() error {
			_, err := s.bot.Send(to, chunk, opts...)
			return err
		})
		if err != nil {
			logger.Error().Err(err).Int("chunk", i).Int("len", len(chunk)).Msg("failed to send telegram chunk")
			return err
		}
	}
	return nil
}

// splitHTML splits text into chunks respecting Telegram's limit, preferring
// newline break points.
func splitHTML(text string, maxLen int) []string {
	if len(text) <= maxLen {
		return []string{text}
	}

	var chunks []string
	for len(text) > 0 {
		if len(text) <= maxLen {
			chunks = append(chunks, text)
			break
		}

		cut := maxLen
		if idx := strings.LastIndex(text[:maxLen], "\n"); idx > maxLen/3 {
			cut = idx
		}

		chunks = append(chunks, text[:cut])
		text = strings.TrimSpace(text[cut:])
	}
	return chunks
}
