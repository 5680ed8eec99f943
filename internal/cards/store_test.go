package cards

import (
	"testing"

	"github.com/sandevgo/sidenote/internal/core"
)

type recordingBroadcaster struct {
	snapshots  [][]core.Card
	recordings []bool
}

func (r *recordingBroadcaster) CardsUpdated(cards []core.Card) {
	r.snapshots = append(r.snapshots, cards)
}

func (r *recordingBroadcaster) RecordingStateChanged(recording bool) {
	r.recordings = append(r.recordings, recording)
}

func TestStoreInsertionOrder(t *testing.T) {
	store := NewStore(nil)
	store.Append(core.Card{ID: "a", Topic: "first"})
	store.Append(core.Card{ID: "b", Topic: "second"})
	store.Append(core.Card{ID: "c", Topic: "third"})

	list := store.List()
	if len(list) != 3 {
		t.Fatalf("expected 3 cards, got %d", len(list))
	}
	for i, want := range []string{"first", "second", "third"} {
		if list[i].Topic != want {
			t.Errorf("position %d: got %q, want %q", i, list[i].Topic, want)
		}
	}
}

func TestStoreListReturnsSnapshot(t *testing.T) {
	store := NewStore(nil)
	store.Append(core.Card{ID: "a"})

	list := store.List()
	list[0].ID = "mutated"

	if store.List()[0].ID != "a" {
		t.Fatal("List must return a copy, not the backing slice")
	}
}

func TestStoreBroadcastsEveryMutation(t *testing.T) {
	b := &recordingBroadcaster{}
	store := NewStore(b)

	store.Append(core.Card{ID: "a"})
	store.Append(core.Card{ID: "b"})
	store.Clear()

	if len(b.snapshots) != 3 {
		t.Fatalf("expected 3 broadcasts, got %d", len(b.snapshots))
	}
	if len(b.snapshots[1]) != 2 {
		t.Errorf("second broadcast must carry both cards, got %d", len(b.snapshots[1]))
	}
	if len(b.snapshots[2]) != 0 {
		t.Errorf("clear broadcasts an empty list, got %d", len(b.snapshots[2]))
	}
	if store.Len() != 0 {
		t.Errorf("store must be empty after clear, got %d", store.Len())
	}
}

func TestHubReplaysStateToLateSubscriber(t *testing.T) {
	hub := NewHub()
	store := NewStore(hub)

	hub.RecordingStateChanged(true)
	store.Append(core.Card{ID: "a"})
	store.Append(core.Card{ID: "b"})

	late := &recordingBroadcaster{}
	hub.Subscribe(late)

	if len(late.recordings) != 1 || !late.recordings[0] {
		t.Fatalf("late subscriber must immediately see the recording flag: %v", late.recordings)
	}
	if len(late.snapshots) != 1 || len(late.snapshots[0]) != 2 {
		t.Fatalf("late subscriber must immediately see the card list: %v", late.snapshots)
	}
}

func TestHubFansOut(t *testing.T) {
	hub := NewHub()
	first := &recordingBroadcaster{}
	second := &recordingBroadcaster{}
	hub.Subscribe(first)
	hub.Subscribe(second)

	hub.CardsUpdated([]core.Card{{ID: "a"}})
	hub.RecordingStateChanged(true)

	for i, b := range []*recordingBroadcaster{first, second} {
		// Subscribe delivers one replay of each kind up front.
		if len(b.snapshots) != 2 {
			t.Errorf("subscriber %d: expected 2 card updates, got %d", i, len(b.snapshots))
		}
		if len(b.recordings) != 2 {
			t.Errorf("subscriber %d: expected 2 recording updates, got %d", i, len(b.recordings))
		}
	}
}
