package enrich

import (
	"sync"

	"github.com/pkoukk/tiktoken-go"
)

var (
	tk     *tiktoken.Tiktoken
	tkErr  error
	tkOnce sync.Once
)

func encoder() (*tiktoken.Tiktoken, error) {
	tkOnce.Do(func() {
		tk, tkErr = tiktoken.GetEncoding("cl100k_base")
	})
	return tk, tkErr
}

// clipTokens keeps the trailing maxTokens of text, mirroring the history
// buffer's suffix retention: the newest speech is the most relevant part of
// an oversized batch. Falls back to a rune cut (~4 chars/token) when the
// encoding is unavailable.
func clipTokens(text string, maxTokens int) string {
	if maxTokens <= 0 {
		return text
	}

	enc, err := encoder()
	if err != nil {
		runes := []rune(text)
		if limit := maxTokens * 4; len(runes) > limit {
			return string(runes[len(runes)-limit:])
		}
		return text
	}

	ids := enc.Encode(text, nil, nil)
	if len(ids) <= maxTokens {
		return text
	}
	return enc.Decode(ids[len(ids)-maxTokens:])
}
