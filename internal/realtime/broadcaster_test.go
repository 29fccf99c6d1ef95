package realtime

import (
	"encoding/json"
	"testing"
	"time"
)

// fakeSub records delivered frames; optionally rejects sends to simulate a
// full buffer.
type fakeSub struct {
	frames [][]byte
	full   bool
}

func (f *fakeSub) TrySend(data []byte) error {
	if f.full {
		return ErrBackpressure
	}
	f.frames = append(f.frames, data)
	return nil
}

func (f *fakeSub) lastEnvelope(t *testing.T) Envelope {
	t.Helper()
	if len(f.frames) == 0 {
		t.Fatal("no frames delivered")
	}
	var env Envelope
	if err := json.Unmarshal(f.frames[len(f.frames)-1], &env); err != nil {
		t.Fatalf("bad frame: %v", err)
	}
	return env
}

func TestPublishFanOutCompleteness(t *testing.T) {
	b := NewBroadcaster()
	subs := []*fakeSub{{}, {}, {}}
	b.Subscribe("c1", "g1", subs[0])
	b.Subscribe("c2", "g1", subs[1])
	b.Subscribe("c3", "g1", subs[2])

	res := b.Publish("g1", chatMessage("g1", "hi", "Alice", time.Now()))

	if res.SentTo != 3 {
		t.Fatalf("expected 3 deliveries, got %d", res.SentTo)
	}
	for i, s := range subs {
		if len(s.frames) != 1 {
			t.Fatalf("subscriber %d got %d copies, want exactly 1", i, len(s.frames))
		}
	}
}

func TestRoomIsolation(t *testing.T) {
	b := NewBroadcaster()
	a := &fakeSub{}
	other := &fakeSub{}
	b.Subscribe("c1", "roomA", a)
	b.Subscribe("c2", "roomB", other)

	b.Publish("roomA", chatMessage("roomA", "hello", "Alice", time.Now()))

	if len(a.frames) != 1 {
		t.Fatalf("roomA subscriber got %d frames, want 1", len(a.frames))
	}
	if len(other.frames) != 0 {
		t.Fatalf("roomB subscriber got %d frames, want 0", len(other.frames))
	}
}

func TestSubscribeIdempotent(t *testing.T) {
	b := NewBroadcaster()
	s := &fakeSub{}
	b.Subscribe("c1", "g1", s)
	b.Subscribe("c1", "g1", s)

	if got := b.SubscriberCount("g1"); got != 1 {
		t.Fatalf("expected 1 subscriber, got %d", got)
	}
	res := b.Publish("g1", chatMessage("g1", "x", "u", time.Now()))
	if res.SentTo != 1 || len(s.frames) != 1 {
		t.Fatalf("expected single delivery, got sent=%d frames=%d", res.SentTo, len(s.frames))
	}
}

func TestUnsubscribeIdempotent(t *testing.T) {
	b := NewBroadcaster()
	s := &fakeSub{}
	b.Subscribe("c1", "g1", s)
	b.Unsubscribe("c1", "g1")
	b.Unsubscribe("c1", "g1")
	b.Unsubscribe("never-subscribed", "g1")

	if got := b.SubscriberCount("g1"); got != 0 {
		t.Fatalf("expected empty room, got %d", got)
	}
}

func TestDisconnectCleanup(t *testing.T) {
	b := NewBroadcaster()
	s := &fakeSub{}
	b.Subscribe("c1", "g1", s)
	b.Subscribe("c1", "g2", s)
	b.Subscribe("c2", "g1", &fakeSub{})

	b.Disconnect("c1")

	if got := b.SubscriberCount("g1"); got != 1 {
		t.Fatalf("g1 should only count c2, got %d", got)
	}
	if got := b.SubscriberCount("g2"); got != 0 {
		t.Fatalf("g2 should be empty, got %d", got)
	}

	b.Publish("g1", chatMessage("g1", "after", "u", time.Now()))
	b.Publish("g2", chatMessage("g2", "after", "u", time.Now()))
	if len(s.frames) != 0 {
		t.Fatalf("disconnected session received %d frames", len(s.frames))
	}
}

func TestPublishReportsBackpressure(t *testing.T) {
	b := NewBroadcaster()
	ok := &fakeSub{}
	slow := &fakeSub{full: true}
	b.Subscribe("fast", "g1", ok)
	b.Subscribe("slow", "g1", slow)

	res := b.Publish("g1", chatMessage("g1", "x", "u", time.Now()))

	if res.SentTo != 1 {
		t.Fatalf("expected 1 delivery, got %d", res.SentTo)
	}
	if len(res.Dropped) != 1 || res.Dropped[0] != "slow" {
		t.Fatalf("expected slow to be dropped, got %v", res.Dropped)
	}
}

func TestPublishToEmptyRoom(t *testing.T) {
	b := NewBroadcaster()
	res := b.Publish("nobody-here", chatMessage("nobody-here", "x", "u", time.Now()))
	if res.SentTo != 0 || len(res.Dropped) != 0 {
		t.Fatalf("expected empty result, got %+v", res)
	}
}
