// Package memstore provides in-memory store implementations matching the
// semantics of the MongoDB ones. Used by tests and local development.
package memstore

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/DevanshiArora1/learnlink/internal/domain"
)

type Groups struct {
	mu     sync.RWMutex
	groups map[domain.GroupID]*domain.Group
}

func NewGroups() *Groups {
	return &Groups{groups: make(map[domain.GroupID]*domain.Group)}
}

func (s *Groups) Insert(_ context.Context, g *domain.Group) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *g
	s.groups[g.ID] = &cp
	return nil
}

func (s *Groups) FindByID(_ context.Context, id domain.GroupID) (*domain.Group, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	g, ok := s.groups[id]
	if !ok {
		return nil, fmt.Errorf("group %s: %w", id, domain.ErrNotFound)
	}
	cp := *g
	cp.JoinedUsers = append([]domain.UserID{}, g.JoinedUsers...)
	return &cp, nil
}

func (s *Groups) FindAll(_ context.Context) ([]*domain.Group, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*domain.Group, 0, len(s.groups))
	for _, g := range s.groups {
		cp := *g
		cp.JoinedUsers = append([]domain.UserID{}, g.JoinedUsers...)
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *Groups) AddMember(_ context.Context, id domain.GroupID, uid domain.UserID) (*domain.Group, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	g, ok := s.groups[id]
	if !ok {
		return nil, fmt.Errorf("group %s: %w", id, domain.ErrNotFound)
	}
	g.AddMember(uid)
	cp := *g
	cp.JoinedUsers = append([]domain.UserID{}, g.JoinedUsers...)
	return &cp, nil
}

func (s *Groups) RemoveMember(_ context.Context, id domain.GroupID, uid domain.UserID) (*domain.Group, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	g, ok := s.groups[id]
	if !ok {
		return nil, fmt.Errorf("group %s: %w", id, domain.ErrNotFound)
	}
	g.RemoveMember(uid)
	cp := *g
	cp.JoinedUsers = append([]domain.UserID{}, g.JoinedUsers...)
	return &cp, nil
}

func (s *Groups) Delete(_ context.Context, id domain.GroupID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.groups[id]; !ok {
		return fmt.Errorf("group %s: %w", id, domain.ErrNotFound)
	}
	delete(s.groups, id)
	return nil
}

type Resources struct {
	mu        sync.RWMutex
	resources map[domain.ResourceID]*domain.Resource
}

func NewResources() *Resources {
	return &Resources{resources: make(map[domain.ResourceID]*domain.Resource)}
}

func (s *Resources) Insert(_ context.Context, r *domain.Resource) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *r
	s.resources[r.ID] = &cp
	return nil
}

func (s *Resources) FindByID(_ context.Context, id domain.ResourceID) (*domain.Resource, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.resources[id]
	if !ok {
		return nil, fmt.Errorf("resource %s: %w", id, domain.ErrNotFound)
	}
	cp := *r
	return &cp, nil
}

func (s *Resources) FindAll(_ context.Context) ([]*domain.Resource, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*domain.Resource, 0, len(s.resources))
	for _, r := range s.resources {
		cp := *r
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *Resources) Like(_ context.Context, id domain.ResourceID) (*domain.Resource, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.resources[id]
	if !ok {
		return nil, fmt.Errorf("resource %s: %w", id, domain.ErrNotFound)
	}
	r.Likes++
	cp := *r
	return &cp, nil
}

func (s *Resources) Delete(_ context.Context, id domain.ResourceID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.resources[id]; !ok {
		return fmt.Errorf("resource %s: %w", id, domain.ErrNotFound)
	}
	delete(s.resources, id)
	return nil
}

type Users struct {
	mu      sync.RWMutex
	users   map[domain.UserID]*domain.User
	byEmail map[string]domain.UserID
}

func NewUsers() *Users {
	return &Users{
		users:   make(map[domain.UserID]*domain.User),
		byEmail: make(map[string]domain.UserID),
	}
}

func (s *Users) Insert(_ context.Context, u *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byEmail[u.Email]; ok {
		return fmt.Errorf("email %s: %w", u.Email, domain.ErrConflict)
	}
	cp := *u
	s.users[u.ID] = &cp
	s.byEmail[u.Email] = u.ID
	return nil
}

func (s *Users) FindByID(_ context.Context, id domain.UserID) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	if !ok {
		return nil, fmt.Errorf("user %s: %w", id, domain.ErrNotFound)
	}
	cp := *u
	return &cp, nil
}

func (s *Users) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.byEmail[email]
	if !ok {
		return nil, fmt.Errorf("user %s: %w", email, domain.ErrNotFound)
	}
	cp := *s.users[id]
	return &cp, nil
}
