package realtime

import (
	"errors"
	"testing"
	"time"

	"github.com/DevanshiArora1/learnlink/internal/domain"
)

func TestSessionBindAndSubmit(t *testing.T) {
	b := NewBroadcaster()
	c1 := &fakeSub{}
	c2 := &fakeSub{}
	s1 := NewSession("c1", c1, b)
	s2 := NewSession("c2", c2, b)

	if err := s1.Bind("g1"); err != nil {
		t.Fatal(err)
	}
	if err := s2.Bind("g1"); err != nil {
		t.Fatal(err)
	}

	res, err := s1.Submit("g1", "hi", "Alice")
	if err != nil {
		t.Fatal(err)
	}
	if res.SentTo != 2 {
		t.Fatalf("both subscribers should receive, got %d", res.SentTo)
	}

	for _, c := range []*fakeSub{c1, c2} {
		env := c.lastEnvelope(t)
		if env.Type != EventReceiveMessage {
			t.Fatalf("expected receive_message, got %s", env.Type)
		}
		if env.GroupID != "g1" || env.Message != "hi" || env.User != "Alice" {
			t.Fatalf("unexpected payload: %+v", env)
		}
		if _, err := time.Parse(time.RFC3339, env.CreatedAt); err != nil {
			t.Fatalf("createdAt not server-stamped RFC3339: %q", env.CreatedAt)
		}
	}
}

func TestSubmitWhileUnbound(t *testing.T) {
	b := NewBroadcaster()
	s := NewSession("c1", &fakeSub{}, b)

	if _, err := s.Submit("g1", "hi", "Alice"); !errors.Is(err, domain.ErrInvalidState) {
		t.Fatalf("expected invalid state error, got %v", err)
	}
}

func TestSubmitToRoomNotBound(t *testing.T) {
	b := NewBroadcaster()
	c := &fakeSub{}
	s := NewSession("c1", c, b)
	if err := s.Bind("g1"); err != nil {
		t.Fatal(err)
	}

	if _, err := s.Submit("g2", "hi", "Alice"); !errors.Is(err, domain.ErrInvalidState) {
		t.Fatalf("expected invalid state for mismatched room, got %v", err)
	}
	if len(c.frames) != 0 {
		t.Fatal("nothing should be published on a mismatched submit")
	}
}

func TestLeaveOnlyUnbindsNamedRoom(t *testing.T) {
	b := NewBroadcaster()
	s := NewSession("c1", &fakeSub{}, b)
	if err := s.Bind("g1"); err != nil {
		t.Fatal(err)
	}

	s.Leave("g2") // not the bound room
	if group, bound := s.Group(); !bound || group != "g1" {
		t.Fatalf("session should stay in g1, got bound=%v group=%q", bound, group)
	}
	if got := b.SubscriberCount("g1"); got != 1 {
		t.Fatalf("g1 should still have 1 subscriber, got %d", got)
	}

	s.Leave("g1")
	if _, bound := s.Group(); bound {
		t.Fatal("session should be unbound after leaving its room")
	}
	if got := b.SubscriberCount("g1"); got != 0 {
		t.Fatalf("g1 should be empty, got %d", got)
	}

	s.Leave("g1") // already gone, no-op
}

func TestRebindLeavesPreviousRoom(t *testing.T) {
	b := NewBroadcaster()
	c := &fakeSub{}
	s := NewSession("c1", c, b)

	if err := s.Bind("old"); err != nil {
		t.Fatal(err)
	}
	if err := s.Bind("new"); err != nil {
		t.Fatal(err)
	}

	if got := b.SubscriberCount("old"); got != 0 {
		t.Fatalf("old room still has %d subscribers", got)
	}
	b.Publish("old", chatMessage("old", "stale", "u", time.Now()))
	if len(c.frames) != 0 {
		t.Fatal("session still receives messages from the room it left")
	}

	b.Publish("new", chatMessage("new", "fresh", "u", time.Now()))
	if len(c.frames) != 1 {
		t.Fatalf("session should receive from new room, got %d frames", len(c.frames))
	}
}

func TestBindSameRoomTwice(t *testing.T) {
	b := NewBroadcaster()
	c := &fakeSub{}
	s := NewSession("c1", c, b)

	if err := s.Bind("g1"); err != nil {
		t.Fatal(err)
	}
	if err := s.Bind("g1"); err != nil {
		t.Fatal(err)
	}
	if got := b.SubscriberCount("g1"); got != 1 {
		t.Fatalf("expected 1 subscriber, got %d", got)
	}
}

func TestBindEmptyGroup(t *testing.T) {
	b := NewBroadcaster()
	s := NewSession("c1", &fakeSub{}, b)
	if err := s.Bind(""); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestUnbindThenSubmit(t *testing.T) {
	b := NewBroadcaster()
	s := NewSession("c1", &fakeSub{}, b)
	if err := s.Bind("g1"); err != nil {
		t.Fatal(err)
	}
	s.Unbind()
	s.Unbind() // no-op

	if _, err := s.Submit("g1", "hi", "u"); !errors.Is(err, domain.ErrInvalidState) {
		t.Fatalf("expected invalid state after unbind, got %v", err)
	}
	if got := b.SubscriberCount("g1"); got != 0 {
		t.Fatalf("room should be empty, got %d", got)
	}
}

func TestCloseCleansEverything(t *testing.T) {
	b := NewBroadcaster()
	c := &fakeSub{}
	s := NewSession("c1", c, b)
	if err := s.Bind("g1"); err != nil {
		t.Fatal(err)
	}

	s.Close()
	s.Close() // safe to repeat

	if got := b.SubscriberCount("g1"); got != 0 {
		t.Fatalf("room should be empty after close, got %d", got)
	}
	if _, bound := s.Group(); bound {
		t.Fatal("session should be unbound after close")
	}
}
