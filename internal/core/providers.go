package core

import "context"

// ChatOptions carries per-call sampling parameters for the enrichment backend.
type ChatOptions struct {
	Temperature float64
	MaxTokens   int
}

// AIProvider is the enrichment backend boundary: an OpenAI-compatible
// chat-completion endpoint returning the assistant message content.
type AIProvider interface {
	Chat(ctx context.Context, messages []Message, opts ChatOptions) (string, error)
}

// CaptureSource produces caption events until ctx is cancelled. Listen blocks;
// emit is called from the source's own goroutine.
type CaptureSource interface {
	Name() string
	Listen(ctx context.Context, emit func(CaptionEvent)) error
}
