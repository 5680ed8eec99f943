package command

import (
	"github.com/sandevgo/sidenote/internal/core"
)

func NewCommands(coord core.Coordinator) []core.Command {
	return []core.Command{
		NewStartCommand(coord),
		NewStopCommand(coord),
		NewStatusCommand(coord),
		NewClearCommand(coord),
		NewAskCommand(coord),
	}
}
