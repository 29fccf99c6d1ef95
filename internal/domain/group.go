package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

type (
	GroupID string
	UserID  string
)

// Group is a durable study group. JoinedUsers is the persisted membership
// list; it never contains duplicates and is mutated only through join/leave.
type Group struct {
	ID          GroupID   `bson:"_id" json:"id"`
	Name        string    `bson:"name" json:"name"`
	Description string    `bson:"description" json:"description"`
	Tags        []string  `bson:"tags" json:"tags"`
	CreatedBy   UserID    `bson:"createdBy" json:"createdBy"`
	JoinedUsers []UserID  `bson:"joinedUsers" json:"joinedUsers"`
	CreatedAt   time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time `bson:"updatedAt" json:"updatedAt"`
}

// NewGroup validates and builds a group. The creator is not added to
// JoinedUsers; membership is always an explicit join.
func NewGroup(name, description string, tags []string, createdBy UserID) (*Group, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: group name is required", ErrValidation)
	}
	if createdBy == "" {
		return nil, fmt.Errorf("%w: group creator is required", ErrValidation)
	}
	if tags == nil {
		tags = []string{}
	}
	now := time.Now().UTC()
	return &Group{
		ID:          GroupID(uuid.NewString()),
		Name:        name,
		Description: description,
		Tags:        tags,
		CreatedBy:   createdBy,
		JoinedUsers: []UserID{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// HasMember reports whether uid is in the persisted membership list.
func (g *Group) HasMember(uid UserID) bool {
	for _, u := range g.JoinedUsers {
		if u == uid {
			return true
		}
	}
	return false
}

// AddMember appends uid preserving the no-duplicates invariant.
// Returns false if uid was already present.
func (g *Group) AddMember(uid UserID) bool {
	if g.HasMember(uid) {
		return false
	}
	g.JoinedUsers = append(g.JoinedUsers, uid)
	return true
}

// RemoveMember deletes uid; removing an absent member is a no-op.
func (g *Group) RemoveMember(uid UserID) bool {
	for i, u := range g.JoinedUsers {
		if u == uid {
			g.JoinedUsers = append(g.JoinedUsers[:i], g.JoinedUsers[i+1:]...)
			return true
		}
	}
	return false
}
