package app

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/DevanshiArora1/learnlink/internal/domain"
	"github.com/DevanshiArora1/learnlink/internal/store"
)

type ResourceService struct {
	resources store.Resources
}

func NewResourceService(resources store.Resources) *ResourceService {
	return &ResourceService{resources: resources}
}

func (s *ResourceService) List(ctx context.Context) ([]*domain.Resource, error) {
	return s.resources.FindAll(ctx)
}

func (s *ResourceService) Create(ctx context.Context, title, link, description string, tags []string, uid domain.UserID) (*domain.Resource, error) {
	r, err := domain.NewResource(title, link, description, tags, uid)
	if err != nil {
		return nil, err
	}
	if err := s.resources.Insert(ctx, r); err != nil {
		return nil, err
	}
	log.Info().Str("module", "app.resources").Str("resource", string(r.ID)).Msg("resource created")
	return r, nil
}

func (s *ResourceService) Like(ctx context.Context, id domain.ResourceID) (*domain.Resource, error) {
	return s.resources.Like(ctx, id)
}

func (s *ResourceService) Delete(ctx context.Context, id domain.ResourceID, requester domain.UserID) error {
	r, err := s.resources.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if r.UserID != requester {
		return fmt.Errorf("only the owner can delete a resource: %w", domain.ErrPermission)
	}
	return s.resources.Delete(ctx, id)
}
