package memory

import (
	"context"
	"sync"
)

// Store holds the governance-action projection. It is the analytics
// service's only owned state; everything else is read from the other
// services' sources.
type Store struct {
	mu         sync.RWMutex
	actions    map[string]int
	seenEvents map[string]struct{}
}

func NewStore() *Store {
	return &Store{
		actions:    make(map[string]int),
		seenEvents: make(map[string]struct{}),
	}
}

func (s *Store) RecordGovernanceAction(ctx context.Context, eventID string, reviewerID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, seen := s.seenEvents[eventID]; seen {
		return false, nil
	}
	s.seenEvents[eventID] = struct{}{}
	s.actions[reviewerID]++
	return true, nil
}

func (s *Store) GovernanceActionCount(ctx context.Context, userID string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.actions[userID], nil
}
