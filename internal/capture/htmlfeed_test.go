package capture

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/sandevgo/sidenote/internal/core"
)

func TestHTMLFeedDiff(t *testing.T) {
	src := NewHTMLFeedSource("http://unused", time.Second)

	first := src.diff("line one\nline two\n")
	if len(first) != 2 || first[0] != "line one" || first[1] != "line two" {
		t.Fatalf("initial text must be all new, got %v", first)
	}

	if again := src.diff("line one\nline two\n"); again != nil {
		t.Fatalf("unchanged text must yield nothing, got %v", again)
	}

	appended := src.diff("line one\nline two\nline three\n")
	if len(appended) != 1 || appended[0] != "line three" {
		t.Fatalf("append-only growth must yield only the new line, got %v", appended)
	}

	// Rewritten page: no common prefix, treat everything as new.
	rewritten := src.diff("completely different\n")
	if len(rewritten) != 1 || rewritten[0] != "completely different" {
		t.Fatalf("rewritten text must be re-emitted, got %v", rewritten)
	}
}

func TestHTMLFeedListenEmitsNewText(t *testing.T) {
	var mu sync.Mutex
	page := "<html><body><p>first speaker line</p></body></html>"

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		defer mu.Unlock()
		fmt.Fprint(w, page)
	}))
	defer server.Close()

	src := NewHTMLFeedSource(server.URL, 20*time.Millisecond)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var evMu sync.Mutex
	var events []core.CaptionEvent
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = src.Listen(ctx, func(ev core.CaptionEvent) {
			evMu.Lock()
			events = append(events, ev)
			evMu.Unlock()
		})
	}()

	waitForEvents := func(n int) {
		deadline := time.Now().Add(3 * time.Second)
		for time.Now().Before(deadline) {
			evMu.Lock()
			count := len(events)
			evMu.Unlock()
			if count >= n {
				return
			}
			time.Sleep(10 * time.Millisecond)
		}
		t.Fatalf("did not reach %d events in time", n)
	}

	waitForEvents(1)
	mu.Lock()
	page = "<html><body><p>first speaker line</p><p>second speaker line</p></body></html>"
	mu.Unlock()
	waitForEvents(2)

	cancel()
	<-done

	evMu.Lock()
	defer evMu.Unlock()
	if !events[0].IsFinal || events[0].Source != core.SourceCaption {
		t.Errorf("feed events must be final caption events: %+v", events[0])
	}
}

func TestHTMLFeedSanitizesMarkup(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><body><script>alert("x")</script><p>actual speech</p></body></html>`)
	}))
	defer server.Close()

	src := NewHTMLFeedSource(server.URL, time.Second)
	text, err := src.fetch(context.Background())
	if err != nil {
		t.Fatalf("fetch failed: %v", err)
	}
	if !strings.Contains(text, "actual speech") {
		t.Errorf("speech lost in sanitization: %q", text)
	}
	if strings.Contains(text, "alert") {
		t.Errorf("script content must be stripped: %q", text)
	}
}

func TestScriptSourceEmitsAndWraps(t *testing.T) {
	src := NewScriptSource(5 * time.Millisecond)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var mu sync.Mutex
	var texts []string
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = src.Listen(ctx, func(ev core.CaptionEvent) {
			mu.Lock()
			texts = append(texts, ev.Text)
			if len(texts) == len(meetingScript)+1 {
				cancel()
			}
			mu.Unlock()
		})
	}()

	select {
	case <-done:
	case <-time.After(3 * time.Second):
		t.Fatal("script source did not emit enough lines in time")
	}

	mu.Lock()
	defer mu.Unlock()
	if texts[0] != meetingScript[0] {
		t.Errorf("script must start at the first line")
	}
	if texts[len(meetingScript)] != meetingScript[0] {
		t.Errorf("script must wrap around to the first line")
	}
}
