// Package memory is an in-memory ledger backend used by tests and the
// zero-dependency dev setup.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"changia/internal/core"
)

type Store struct {
	mu     sync.Mutex
	groups []core.Group
	items  []core.Contribution
	nextID int64
}

func New() *Store {
	return &Store{nextID: 1}
}

// Append stores the record and returns a synthetic reference.
func (s *Store) Append(_ context.Context, c core.Contribution) (string, error) {
	if err := c.Validate(); err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	c.ID = s.nextID
	s.nextID++
	s.items = append(s.items, c)
	return fmt.Sprintf("mem:%d", c.ID), nil
}

// ListContributions returns the group's records, RecordedAt descending.
func (s *Store) ListContributions(_ context.Context, groupName string) ([]core.Contribution, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []core.Contribution
	for _, c := range s.items {
		if c.GroupName == groupName {
			out = append(out, c)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].RecordedAt.After(out[j].RecordedAt)
	})
	return out, nil
}

func (s *Store) CreateGroup(_ context.Context, g core.Group) (int64, error) {
	if err := g.Validate(); err != nil {
		return 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	g.ID = s.nextID
	s.nextID++
	s.groups = append(s.groups, g)
	return g.ID, nil
}

func (s *Store) GetGroup(_ context.Context, name string) (core.Group, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, g := range s.groups {
		if g.Name == name {
			return g, nil
		}
	}
	return core.Group{}, fmt.Errorf("group %q not found", name)
}

func (s *Store) ListGroups(_ context.Context) ([]core.Group, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := append([]core.Group(nil), s.groups...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}
