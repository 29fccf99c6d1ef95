package domain

import (
	"errors"
	"testing"
)

func TestNewGroupRequiresName(t *testing.T) {
	_, err := NewGroup("", "desc", nil, "u1")
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	_, err = NewGroup("   ", "desc", nil, "u1")
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation error for blank name, got %v", err)
	}
}

func TestNewGroupCreatorNotAutoJoined(t *testing.T) {
	g, err := NewGroup("DSA Study", "", []string{"dsa"}, "u1")
	if err != nil {
		t.Fatal(err)
	}
	if len(g.JoinedUsers) != 0 {
		t.Fatalf("expected empty joinedUsers, got %v", g.JoinedUsers)
	}
	if g.CreatedBy != "u1" {
		t.Fatalf("expected createdBy u1, got %s", g.CreatedBy)
	}
}

func TestAddMemberNoDuplicates(t *testing.T) {
	g, _ := NewGroup("g", "", nil, "u1")

	if !g.AddMember("u2") {
		t.Fatal("first add should report true")
	}
	if g.AddMember("u2") {
		t.Fatal("second add should report false")
	}
	if len(g.JoinedUsers) != 1 {
		t.Fatalf("expected 1 member, got %d", len(g.JoinedUsers))
	}
	if !g.HasMember("u2") {
		t.Fatal("u2 should be a member")
	}
}

func TestRemoveMemberIdempotent(t *testing.T) {
	g, _ := NewGroup("g", "", nil, "u1")
	g.AddMember("u2")
	g.AddMember("u3")

	if !g.RemoveMember("u2") {
		t.Fatal("removing a member should report true")
	}
	if g.RemoveMember("u2") {
		t.Fatal("removing an absent member should report false")
	}
	if g.HasMember("u2") {
		t.Fatal("u2 should be gone")
	}
	if !g.HasMember("u3") {
		t.Fatal("u3 should remain")
	}
}
