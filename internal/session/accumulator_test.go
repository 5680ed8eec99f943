package session

import (
	"strings"
	"testing"
)

func TestAccumulatorFlushDrainsPendingOnly(t *testing.T) {
	a := NewAccumulator(DefaultHistoryLimit)

	a.Append("first fragment")
	a.Append("second fragment")

	batch := a.Flush()
	if batch != "first fragment second fragment" {
		t.Fatalf("unexpected batch: %q", batch)
	}

	if got := a.Flush(); got != "" {
		t.Fatalf("second flush must be empty, got %q", got)
	}

	// History survives the flush.
	if got := a.SnapshotHistory(); !strings.Contains(got, "first fragment") {
		t.Fatalf("history lost after flush: %q", got)
	}
}

func TestAccumulatorAppendAfterFlush(t *testing.T) {
	a := NewAccumulator(DefaultHistoryLimit)

	a.Append("before")
	a.Flush()
	a.Append("after")

	if got := a.Flush(); got != "after" {
		t.Fatalf("expected only post-flush text, got %q", got)
	}
	if got := a.SnapshotHistory(); got != "before after " {
		t.Fatalf("history must span both batches, got %q", got)
	}
}

func TestAccumulatorHistorySuffixRetention(t *testing.T) {
	a := NewAccumulator(100)

	a.Append(strings.Repeat("a", 80))
	a.Append(strings.Repeat("b", 80))

	history := a.SnapshotHistory()
	if len(history) > 100 {
		t.Fatalf("history exceeds limit: %d bytes", len(history))
	}
	if !strings.HasSuffix(history, strings.Repeat("b", 80)+" ") {
		t.Fatalf("newest text must survive truncation, got %q", history)
	}
	if strings.HasPrefix(history, strings.Repeat("a", 80)) {
		t.Fatal("oldest text must be dropped first")
	}

	// Pending batch is never truncated.
	batch := a.Flush()
	if !strings.Contains(batch, strings.Repeat("a", 80)) {
		t.Fatal("truncation must not leak into the pending batch")
	}
}

func TestAccumulatorTruncationKeepsRuneBoundary(t *testing.T) {
	a := NewAccumulator(20)

	a.Append("привет как дела сегодня")

	history := a.SnapshotHistory()
	if len(history) > 23 {
		t.Fatalf("history way over limit: %d bytes", len(history))
	}
	for i, r := range history {
		if r == '�' {
			t.Fatalf("broken rune at byte %d in %q", i, history)
		}
	}
}
