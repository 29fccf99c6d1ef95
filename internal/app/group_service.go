// Package app holds the application services. They enforce the business
// rules and delegate persistence to the store interfaces.
package app

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/DevanshiArora1/learnlink/internal/domain"
	"github.com/DevanshiArora1/learnlink/internal/store"
)

type GroupService struct {
	groups store.Groups
}

func NewGroupService(groups store.Groups) *GroupService {
	return &GroupService{groups: groups}
}

// Create builds and persists a group. The creator is recorded as owner but
// not added to joinedUsers; joining stays an explicit operation.
func (s *GroupService) Create(ctx context.Context, name, description string, tags []string, creator domain.UserID) (*domain.Group, error) {
	g, err := domain.NewGroup(name, description, tags, creator)
	if err != nil {
		return nil, err
	}
	if err := s.groups.Insert(ctx, g); err != nil {
		return nil, err
	}
	log.Info().Str("module", "app.groups").Str("group", string(g.ID)).Str("creator", string(creator)).Msg("group created")
	return g, nil
}

func (s *GroupService) Get(ctx context.Context, id domain.GroupID) (*domain.Group, error) {
	return s.groups.FindByID(ctx, id)
}

func (s *GroupService) List(ctx context.Context) ([]*domain.Group, error) {
	return s.groups.FindAll(ctx)
}

// Join adds uid to the group's membership. Joining twice is a no-op and
// returns the unchanged membership list.
func (s *GroupService) Join(ctx context.Context, id domain.GroupID, uid domain.UserID) (*domain.Group, error) {
	g, err := s.groups.AddMember(ctx, id, uid)
	if err != nil {
		return nil, err
	}
	log.Info().Str("module", "app.groups").Str("group", string(id)).Str("user", string(uid)).Msg("user joined group")
	return g, nil
}

// Leave removes uid from the group's membership. Leaving a group the user
// never joined is a no-op, not an error.
func (s *GroupService) Leave(ctx context.Context, id domain.GroupID, uid domain.UserID) (*domain.Group, error) {
	g, err := s.groups.RemoveMember(ctx, id, uid)
	if err != nil {
		return nil, err
	}
	log.Info().Str("module", "app.groups").Str("group", string(id)).Str("user", string(uid)).Msg("user left group")
	return g, nil
}

// Delete removes a group. Only the creator may delete it.
func (s *GroupService) Delete(ctx context.Context, id domain.GroupID, requester domain.UserID) error {
	g, err := s.groups.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if g.CreatedBy != requester {
		return fmt.Errorf("only the creator can delete a group: %w", domain.ErrPermission)
	}
	if err := s.groups.Delete(ctx, id); err != nil {
		return err
	}
	log.Info().Str("module", "app.groups").Str("group", string(id)).Msg("group deleted")
	return nil
}
