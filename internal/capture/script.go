package capture

import (
	"context"
	"time"

	"github.com/sandevgo/sidenote/internal/core"
	"github.com/sandevgo/sidenote/pkg/log"
)

// Realistic meeting turns for demo sessions when no live caption source is
// wired up.
var meetingScript = []string{
	"Alright everyone, let's start with the sprint review. Sarah, can you walk us through the user interface changes you completed this week?",
	"The client feedback on the new dashboard is really positive. However, they want us to add export functionality by the end of next week. Mike, can you take ownership of that feature?",
	"We're seeing some performance issues with the search function. The response time is too slow when users have large datasets. This needs to be our top priority for the next sprint.",
	"Lisa, please schedule a meeting with the QA team to discuss the testing strategy for the mobile app release. We need to make sure all edge cases are covered before we ship.",
	"The marketing team is asking for API documentation to be updated. David, since you worked on the new endpoints, can you coordinate with the technical writing team this week?",
	"We've identified three critical bugs that need to be fixed before the demo next Friday. Tom, can you assign these to the appropriate team members and track the progress daily?",
	"The integration with the payment gateway is almost complete. We just need to implement error handling for failed transactions. This should be done by Wednesday at the latest.",
	"Let's not forget about the security audit that's happening next month. Jennifer, please make sure all the security requirements are documented and shared with the dev team.",
}

// ScriptSource replays scripted meeting turns on a fixed interval. Wraps
// around when the script runs out.
type ScriptSource struct {
	lines    []string
	interval time.Duration
}

func NewScriptSource(interval time.Duration) *ScriptSource {
	return &ScriptSource{
		lines:    meetingScript,
		interval: interval,
	}
}

func (s *ScriptSource) Name() string { return "demo-script" }

func (s *ScriptSource) Listen(ctx context.Context, emit func(core.CaptionEvent)) error {
	log.FromCtx(ctx).Info().Dur("interval", s.interval).Msg("starting demo caption script")

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	index := 0
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			emit(core.CaptionEvent{
				Text:    s.lines[index],
				IsFinal: true,
				Source:  core.SourceCaption,
			})
			index = (index + 1) % len(s.lines)
		}
	}
}
