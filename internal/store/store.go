// Package store persists domain entities in MongoDB. Services depend on the
// interfaces here; tests use the memstore implementations.
package store

import (
	"context"

	"github.com/DevanshiArora1/learnlink/internal/domain"
)

// Groups is the membership store. AddMember and RemoveMember must be atomic
// so the no-duplicates invariant on joinedUsers holds under concurrent calls.
type Groups interface {
	Insert(ctx context.Context, g *domain.Group) error
	FindByID(ctx context.Context, id domain.GroupID) (*domain.Group, error)
	FindAll(ctx context.Context) ([]*domain.Group, error)
	// AddMember adds uid to joinedUsers if absent and returns the updated
	// group. Adding a present member is a no-op.
	AddMember(ctx context.Context, id domain.GroupID, uid domain.UserID) (*domain.Group, error)
	// RemoveMember removes uid from joinedUsers and returns the updated
	// group. Removing an absent member is a no-op.
	RemoveMember(ctx context.Context, id domain.GroupID, uid domain.UserID) (*domain.Group, error)
	Delete(ctx context.Context, id domain.GroupID) error
}

type Resources interface {
	Insert(ctx context.Context, r *domain.Resource) error
	FindByID(ctx context.Context, id domain.ResourceID) (*domain.Resource, error)
	FindAll(ctx context.Context) ([]*domain.Resource, error)
	// Like atomically increments the like counter and returns the updated
	// resource.
	Like(ctx context.Context, id domain.ResourceID) (*domain.Resource, error)
	Delete(ctx context.Context, id domain.ResourceID) error
}

type Users interface {
	Insert(ctx context.Context, u *domain.User) error
	FindByID(ctx context.Context, id domain.UserID) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
}
