package capture

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/inbucket/html2text"
	"github.com/microcosm-cc/bluemonday"
	"github.com/sandevgo/sidenote/internal/core"
	"github.com/sandevgo/sidenote/pkg/log"
	"github.com/sandevgo/sidenote/pkg/retry"
)

const (
	maxFeedResponseSize = 1 << 20 // 1MB limit
	feedFetchTimeout    = 15 * time.Second
)

// HTMLFeedSource polls an HTML transcript page and emits newly appeared text
// as finalized caption events. This is the DOM-scraping collaborator adapter:
// the page is owned by someone else, we only diff its rendered text.
type HTMLFeedSource struct {
	url      string
	interval time.Duration
	client   *http.Client
	retrier  *retry.Retrier
	policy   *bluemonday.Policy

	lastText string
}

func NewHTMLFeedSource(url string, interval time.Duration) *HTMLFeedSource {
	return &HTMLFeedSource{
		url:      url,
		interval: interval,
		client: &http.Client{
			Timeout: feedFetchTimeout,
		},
		retrier: retry.NewDefaultRetrier(),
		policy:  bluemonday.UGCPolicy(),
	}
}

func (h *HTMLFeedSource) Name() string { return "htmlfeed" }

func (h *HTMLFeedSource) Listen(ctx context.Context, emit func(core.CaptionEvent)) error {
	logger := log.FromCtx(ctx)
	logger.Info().Str("url", h.url).Dur("interval", h.interval).Msg("starting html transcript feed")

	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			text, err := h.fetch(ctx)
			if err != nil {
				logger.Warn().Err(err).Msg("transcript feed fetch failed")
				continue
			}
			for _, line := range h.diff(text) {
				emit(core.CaptionEvent{
					Text:    line,
					IsFinal: true,
					Source:  core.SourceCaption,
				})
			}
		}
	}
}

func (h *HTMLFeedSource) fetch(ctx context.Context) (string, error) {
	var body string
	err := h.retrier.Do(ctx, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.url, nil)
		if err != nil {
			return fmt.Errorf("create request: %w", err)
		}
		req.Header.Set("User-Agent", core.AppUserAgent)

		resp, err := h.client.Do(req)
		if err != nil {
			return fmt.Errorf("fetch feed: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode >= 400 {
			return fmt.Errorf("HTTP %d: %s", resp.StatusCode, resp.Status)
		}

		raw, err := io.ReadAll(io.LimitReader(resp.Body, maxFeedResponseSize))
		if err != nil {
			return fmt.Errorf("read body: %w", err)
		}

		sanitized := h.policy.SanitizeBytes(raw)
		body, err = html2text.FromString(string(sanitized), html2text.Options{
			OmitLinks: true,
		})
		if err != nil {
			return fmt.Errorf("render text: %w", err)
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return body, nil
}

// diff returns the lines that appeared since the previous poll. The page is
// assumed append-only; on any other change the whole text is treated as new.
func (h *HTMLFeedSource) diff(current string) []string {
	previous := h.lastText
	h.lastText = current

	if current == previous {
		return nil
	}

	fresh := current
	if previous != "" && strings.HasPrefix(current, previous) {
		fresh = current[len(previous):]
	}

	var lines []string
	for _, line := range strings.Split(fresh, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
