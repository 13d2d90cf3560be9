package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"knowledgenet/contexts/knowledge-governance/workspace-service/domain/entities"
	domainerrors "knowledgenet/contexts/knowledge-governance/workspace-service/domain/errors"
)

type membershipKey struct {
	workspaceID string
	userID      string
}

type Store struct {
	mu          sync.RWMutex
	workspaces  map[string]entities.Workspace
	memberships map[membershipKey]entities.Membership
}

func NewStore() *Store {
	store := &Store{
		workspaces:  make(map[string]entities.Workspace),
		memberships: make(map[membershipKey]entities.Membership),
	}

	seededAt := time.Date(2026, time.January, 15, 9, 0, 0, 0, time.UTC)
	store.workspaces["ws_atlas"] = entities.Workspace{
		WorkspaceID: "ws_atlas",
		Name:        "Atlas Migration Room",
		Type:        entities.TypeProjectDelivery,
		ProjectID:   "proj_atlas",
		CreatedAt:   seededAt,
	}
	store.workspaces["ws_cloud_guild"] = entities.Workspace{
		WorkspaceID: "ws_cloud_guild",
		Name:        "Cloud Guild",
		Type:        entities.TypeCommunityOfPractice,
		CreatedAt:   seededAt,
	}

	store.memberships[membershipKey{"ws_atlas", "user_amara"}] = entities.Membership{
		WorkspaceID: "ws_atlas", UserID: "user_amara", JoinedOn: seededAt,
	}
	store.memberships[membershipKey{"ws_cloud_guild", "user_jonas"}] = entities.Membership{
		WorkspaceID: "ws_cloud_guild", UserID: "user_jonas", JoinedOn: seededAt,
	}

	return store
}

func (s *Store) GetWorkspace(ctx context.Context, workspaceID string) (entities.Workspace, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	workspace, ok := s.workspaces[workspaceID]
	if !ok {
		return entities.Workspace{}, domainerrors.ErrWorkspaceNotFound
	}
	return workspace, nil
}

func (s *Store) ListWorkspaces(ctx context.Context) ([]entities.Workspace, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]entities.Workspace, 0, len(s.workspaces))
	for _, workspace := range s.workspaces {
		items = append(items, workspace)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Name < items[j].Name })
	return items, nil
}

// PutWorkspace registers a workspace. Used by composition roots and tests.
func (s *Store) PutWorkspace(workspace entities.Workspace) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.workspaces[workspace.WorkspaceID] = workspace
}

func (s *Store) AddMember(ctx context.Context, membership entities.Membership) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := membershipKey{membership.WorkspaceID, membership.UserID}
	if _, exists := s.memberships[key]; exists {
		return false, nil
	}
	s.memberships[key] = membership
	return true, nil
}

func (s *Store) CountMembers(ctx context.Context, workspaceID string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for key := range s.memberships {
		if key.workspaceID == workspaceID {
			count++
		}
	}
	return count, nil
}

func (s *Store) CountMemberships(ctx context.Context, userID string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for key := range s.memberships {
		if key.userID == userID {
			count++
		}
	}
	return count, nil
}

func (s *Store) ListMemberWorkspaceIDs(ctx context.Context, userID string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0)
	for key := range s.memberships {
		if key.userID == userID {
			ids = append(ids, key.workspaceID)
		}
	}
	sort.Strings(ids)
	return ids, nil
}

// Now lets the store double as the runtime clock for in-memory wiring.
func (s *Store) Now() time.Time {
	return time.Now().UTC()
}
