package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/chzyer/readline"
	"github.com/sandevgo/sidenote/internal/config"
	"github.com/sandevgo/sidenote/internal/core"
	"github.com/sandevgo/sidenote/pkg/log"
)

const defaultSessionID = "cli-local"

// ReadLine is the interactive transport: typed lines are ingested as
// microphone fragments, "/" lines go to the command router, and cards are
// printed as they arrive.
type ReadLine struct {
	cfg    *config.AppConfig
	coord  core.Coordinator
	router core.CmdRouter
	rl     *readline.Instance

	mu        sync.Mutex
	lastCount int
}

func NewReadLine(coord core.Coordinator, router core.CmdRouter, cfg *config.AppConfig) (*ReadLine, error) {
	if err := os.MkdirAll(cfg.RuntimePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create runtime directory: %w", err)
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          ">>> ",
		HistoryFile:     cfg.GetHistoryPath(),
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return nil, err
	}

	return &ReadLine{
		cfg:    cfg,
		coord:  coord,
		router: router,
		rl:     rl,
	}, nil
}

func (r *ReadLine) Start(ctx context.Context) error {
	logger := log.FromCtx(ctx)
	logger.Info().Msg("interactive capture started. /start to record, /ask <q> to ask, 'exit' to quit.")

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		line, err := r.rl.Readline()
		if err != nil {
			if err == readline.ErrInterrupt {
				if len(line) == 0 {
					return nil
				}
				continue
			} else if err == io.EOF {
				return nil
			}
			return err
		}

		line = strings.TrimSpace(line)
		if line == "exit" {
			return nil
		}
		if line == "" {
			continue
		}

		if reply, handled := r.router.Execute(ctx, defaultSessionID, line); handled {
			fmt.Fprintf(r.rl.Stdout(), "%s\n", reply)
			continue
		}

		// Plain text is a finalized microphone fragment.
		r.coord.Ingest(core.CaptionEvent{
			Text:    line,
			IsFinal: true,
			Source:  core.SourceMicrophone,
		})
	}
}

func (r *ReadLine) Shutdown(ctx context.Context) error {
	if r.rl != nil {
		return r.rl.Close()
	}
	return nil
}

var _ core.Broadcaster = (*ReadLine)(nil)

// CardsUpdated prints cards that appeared since the last broadcast.
func (r *ReadLine) CardsUpdated(cards []core.Card) {
	r.mu.Lock()
	from := r.lastCount
	r.lastCount = len(cards)
	r.mu.Unlock()

	if len(cards) < from {
		from = 0 // store was cleared
	}
	for _, card := range cards[from:] {
		fmt.Fprintf(r.rl.Stdout(), "\n--- [%s] %s\n%s\n", card.Kind, card.Topic, plainText(card))
	}
}

func (r *ReadLine) RecordingStateChanged(recording bool) {
	state := "standby"
	if recording {
		state = "recording"
	}
	fmt.Fprintf(r.rl.Stdout(), "[%s]\n", state)
}

func plainText(card core.Card) string {
	md := card.Markdown()
	// strip emphasis markers for terminal output
	md = strings.ReplaceAll(md, "**", "")
	return strings.ReplaceAll(md, "_", "")
}
