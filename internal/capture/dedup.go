package capture

import "time"

const DefaultDedupWindow = 2 * time.Second

// Deduplicator collapses rapid-fire duplicate caption mutations into one
// emission. Identical text reappearing after the window counts as new
// content. Near-identical text (incremental caption growth) is not
// deduplicated here. Not safe for concurrent use; the session serializes
// calls.
type Deduplicator struct {
	window   time.Duration
	lastText string
	lastTime time.Time
}

func NewDeduplicator(window time.Duration) *Deduplicator {
	if window <= 0 {
		window = DefaultDedupWindow
	}
	return &Deduplicator{window: window}
}

// ShouldEmit reports whether text should pass through. State is updated only
// on an allowed emit, so a suppressed duplicate does not extend the window.
func (d *Deduplicator) ShouldEmit(text string, now time.Time) bool {
	if text == d.lastText && now.Sub(d.lastTime) < d.window {
		return false
	}
	d.lastText = text
	d.lastTime = now
	return true
}
