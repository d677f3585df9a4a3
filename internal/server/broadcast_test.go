package server

import (
	"sync"
	"testing"
)

// recordingSubscriber captures delivered payloads in order, the in-memory
// counterpart to the websocket subscriber.
type recordingSubscriber struct {
	mu     sync.Mutex
	events []any
}

func (r *recordingSubscriber) Deliver(payload any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, payload)
}

func (r *recordingSubscriber) Events() []any {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]any(nil), r.events...)
}

type panickingSubscriber struct{}

func (panickingSubscriber) Deliver(payload any) {
	panic("subscriber exploded")
}

func eventTypes(events []any) []string {
	types := make([]string, 0, len(events))
	for _, event := range events {
		payload, ok := event.(map[string]any)
		if !ok {
			types = append(types, "unknown")
			continue
		}
		name, _ := payload["type"].(string)
		types = append(types, name)
	}
	return types
}

func TestSubscribeDeliversSnapshotSynchronously(t *testing.T) {
	room := newTestRoom(t, "Ada")
	sub := &recordingSubscriber{}
	unsubscribe := room.Subscribe(sub)
	defer unsubscribe()

	events := sub.Events()
	if len(events) != 1 {
		t.Fatalf("expected exactly one snapshot on subscribe, got %d events", len(events))
	}
	snapshot, ok := events[0].(map[string]any)
	if !ok || snapshot["type"] != eventState {
		t.Fatalf("expected state snapshot, got %#v", events[0])
	}
	if snapshot["phase"] != phaseLobby {
		t.Fatalf("expected lobby snapshot, got %v", snapshot["phase"])
	}
}

func TestBroadcastFanOut(t *testing.T) {
	room := newTestRoom(t)
	const n = 5
	subs := make([]*recordingSubscriber, 0, n)
	for i := 0; i < n; i++ {
		sub := &recordingSubscriber{}
		room.Subscribe(sub)
		subs = append(subs, sub)
	}

	if _, err := room.Join("Ada", 0); err != nil {
		t.Fatalf("join: %v", err)
	}

	for i, sub := range subs {
		events := sub.Events()
		// One snapshot on subscribe plus exactly one for the join.
		if len(events) != 2 {
			t.Fatalf("subscriber %d: expected 2 events, got %d", i, len(events))
		}
	}
}

func TestBroadcastIsolatesFailingSubscriber(t *testing.T) {
	room := newTestRoom(t)
	healthy := &recordingSubscriber{}
	room.Subscribe(healthy)
	room.Subscribe(panickingSubscriber{})

	if _, err := room.Join("Ada", 0); err != nil {
		t.Fatalf("join must survive a panicking subscriber: %v", err)
	}
	if len(room.Players) != 1 {
		t.Fatalf("mutation must not be lost, got %d players", len(room.Players))
	}
	if events := healthy.Events(); len(events) != 2 {
		t.Fatalf("healthy subscriber must still receive the join, got %d events", len(events))
	}
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	room := newTestRoom(t)
	sub := &recordingSubscriber{}
	unsubscribe := room.Subscribe(sub)
	unsubscribe()
	unsubscribe() // safe to call twice

	if _, err := room.Join("Ada", 0); err != nil {
		t.Fatalf("join: %v", err)
	}
	if events := sub.Events(); len(events) != 1 {
		t.Fatalf("expected only the initial snapshot, got %d events", len(events))
	}
}

func TestBroadcastOrderMatchesMutations(t *testing.T) {
	room := newTestRoom(t, "Ada", "Ben")
	sub := &recordingSubscriber{}
	room.Subscribe(sub)

	if err := room.StartGame(); err != nil {
		t.Fatalf("start: %v", err)
	}
	if _, _, err := room.PickItem("Electronics", "TV"); err != nil {
		t.Fatalf("pick: %v", err)
	}
	room.SubmitGuess(room.Players[0].ID, 900)
	if _, err := room.CloseRound(); err != nil {
		t.Fatalf("close: %v", err)
	}

	want := []string{
		eventState,    // subscribe snapshot
		eventState,    // start
		eventQuestion, // pick
		eventState,
		eventGuess, // guess
		eventState,
		eventResult, // close
		eventState,
	}
	got := eventTypes(sub.Events())
	if len(got) != len(want) {
		t.Fatalf("expected %d events %v, got %d %v", len(want), want, len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("event %d: expected %s, got %s (full sequence %v)", i, want[i], got[i], got)
		}
	}
}
