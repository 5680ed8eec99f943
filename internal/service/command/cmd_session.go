package command

import (
	"context"
	"fmt"

	"github.com/sandevgo/sidenote/internal/core"
)

type startCommand struct {
	coord core.Coordinator
}

func NewStartCommand(coord core.Coordinator) core.Command {
	return &startCommand{coord: coord}
}

func (c *startCommand) Name() string        { return "start" }
func (c *startCommand) Description() string { return "Start capturing and enriching the meeting" }

func (c *startCommand) Execute(ctx context.Context, sessionID string, args []string) (string, error) {
	if err := c.coord.StartSession(ctx); err != nil {
		return "", err
	}
	return "Recording started.", nil
}

type stopCommand struct {
	coord core.Coordinator
}

func NewStopCommand(coord core.Coordinator) core.Command {
	return &stopCommand{coord: coord}
}

func (c *stopCommand) Name() string        { return "stop" }
func (c *stopCommand) Description() string { return "Stop the current capture session" }

func (c *stopCommand) Execute(ctx context.Context, sessionID string, args []string) (string, error) {
	if !c.coord.Recording() {
		return "Not currently recording.", nil
	}
	if err := c.coord.StopSession(ctx); err != nil {
		return "", err
	}
	return "Recording stopped.", nil
}

type statusCommand struct {
	coord core.Coordinator
}

func NewStatusCommand(coord core.Coordinator) core.Command {
	return &statusCommand{coord: coord}
}

func (c *statusCommand) Name() string        { return "status" }
func (c *statusCommand) Description() string { return "Show recording state and card count" }

func (c *statusCommand) Execute(ctx context.Context, sessionID string, args []string) (string, error) {
	state := "standby"
	if c.coord.Recording() {
		state = "recording"
	}
	return fmt.Sprintf("State: %s, cards: %d", state, len(c.coord.Cards())), nil
}
