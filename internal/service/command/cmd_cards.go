package command

import (
	"context"
	"fmt"
	"strings"

	"github.com/sandevgo/sidenote/internal/core"
)

type clearCommand struct {
	coord core.Coordinator
}

func NewClearCommand(coord core.Coordinator) core.Command {
	return &clearCommand{coord: coord}
}

func (c *clearCommand) Name() string        { return "clear" }
func (c *clearCommand) Description() string { return "Clear all cards" }

func (c *clearCommand) Execute(ctx context.Context, sessionID string, args []string) (string, error) {
	c.coord.ClearCards()
	return "Cards cleared.", nil
}

type askCommand struct {
	coord core.Coordinator
}

func NewAskCommand(coord core.Coordinator) core.Command {
	return &askCommand{coord: coord}
}

func (c *askCommand) Name() string        { return "ask" }
func (c *askCommand) Description() string { return "Ask a question against the meeting transcript" }

func (c *askCommand) Execute(ctx context.Context, sessionID string, args []string) (string, error) {
	question := strings.TrimSpace(strings.Join(args, " "))
	if question == "" {
		return "", fmt.Errorf("usage: /ask <question>")
	}

	card := c.coord.Ask(ctx, question)
	return card.Summary, nil
}
