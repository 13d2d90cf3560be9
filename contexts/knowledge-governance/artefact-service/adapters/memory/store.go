package memory

import (
	"context"
	"encoding/json"
	"sort"
	"sync"
	"time"

	"knowledgenet/contexts/knowledge-governance/artefact-service/domain/entities"
	domainerrors "knowledgenet/contexts/knowledge-governance/artefact-service/domain/errors"
	"knowledgenet/contexts/knowledge-governance/artefact-service/ports"

	"github.com/google/uuid"
)

type outboxRow struct {
	message   ports.OutboxMessage
	published bool
}

type Store struct {
	mu        sync.RWMutex
	artefacts map[string]entities.Artefact
	reviews   map[string][]entities.ReviewRecord
	outbox    []*outboxRow

	projects map[string]ports.Project
	tags     map[string]ports.Tag
	users    map[string]ports.UserRecord
}

func NewStore() *Store {
	store := &Store{
		artefacts: make(map[string]entities.Artefact),
		reviews:   make(map[string][]entities.ReviewRecord),
		projects:  make(map[string]ports.Project),
		tags:      make(map[string]ports.Tag),
		users:     make(map[string]ports.UserRecord),
	}

	store.projects["proj_atlas"] = ports.Project{
		ProjectID:  "proj_atlas",
		Name:       "Atlas Migration",
		ClientName: "Nordwind Logistics",
		OwnerID:    "user_amara",
	}
	store.projects["proj_beacon"] = ports.Project{
		ProjectID:  "proj_beacon",
		Name:       "Beacon Rollout",
		ClientName: "Helios Energy",
		OwnerID:    "user_jonas",
	}

	store.tags["tag_cloud"] = ports.Tag{TagID: "tag_cloud", Name: "cloud"}
	store.tags["tag_lessons"] = ports.Tag{TagID: "tag_lessons", Name: "lessons-learned"}
	store.tags["tag_security"] = ports.Tag{TagID: "tag_security", Name: "security"}

	store.users["user_amara"] = ports.UserRecord{
		UserID: "user_amara", Name: "Amara Osei", Role: "Consultant",
		OfficeID: "office_ber", OfficeName: "Berlin", RegionID: "region_emea",
	}
	store.users["user_jonas"] = ports.UserRecord{
		UserID: "user_jonas", Name: "Jonas Keller", Role: "KnowledgeChampion",
		OfficeID: "office_muc", OfficeName: "Munich", RegionID: "region_emea",
	}
	store.users["user_mei"] = ports.UserRecord{
		UserID: "user_mei", Name: "Mei Tanaka", Role: "GovCouncil",
		OfficeID: "office_tyo", OfficeName: "Tokyo", RegionID: "region_apac",
	}

	return store
}

func (s *Store) CreateArtefact(ctx context.Context, artefact entities.Artefact) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.artefacts[artefact.ArtefactID] = cloneArtefact(artefact)
	return nil
}

func (s *Store) GetArtefact(ctx context.Context, artefactID string) (entities.Artefact, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	artefact, ok := s.artefacts[artefactID]
	if !ok {
		return entities.Artefact{}, domainerrors.ErrArtefactNotFound
	}
	artefact = cloneArtefact(artefact)
	artefact.ReviewHistory = cloneReviews(s.reviews[artefactID])
	return artefact, nil
}

func (s *Store) UpdateArtefactVersioned(ctx context.Context, artefact entities.Artefact, expectedVersion int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.artefacts[artefact.ArtefactID]
	if !ok {
		return domainerrors.ErrArtefactNotFound
	}
	if current.Version != expectedVersion {
		return domainerrors.ErrVersionConflict
	}
	s.artefacts[artefact.ArtefactID] = cloneArtefact(artefact)
	return nil
}

func (s *Store) ListArtefacts(ctx context.Context, filter ports.ArtefactFilter) ([]entities.Artefact, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]entities.Artefact, 0, len(s.artefacts))
	for _, artefact := range s.artefacts {
		if filter.Status != "" && artefact.Status != filter.Status {
			continue
		}
		if filter.ProjectID != "" && artefact.ProjectID != filter.ProjectID {
			continue
		}
		if filter.TagID != "" && !hasTag(artefact, filter.TagID) {
			continue
		}
		cloned := cloneArtefact(artefact)
		cloned.ReviewHistory = cloneReviews(s.reviews[artefact.ArtefactID])
		items = append(items, cloned)
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].ArtefactID > items[j].ArtefactID
		}
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
	return items, nil
}

func (s *Store) AppendReview(ctx context.Context, record entities.ReviewRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reviews[record.ArtefactID] = append(s.reviews[record.ArtefactID], record)
	return nil
}

func (s *Store) AppendOutbox(ctx context.Context, envelope ports.EventEnvelope) error {
	payload, err := json.Marshal(envelope)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.outbox = append(s.outbox, &outboxRow{
		message: ports.OutboxMessage{
			OutboxID:     envelope.EventID,
			EventType:    envelope.EventType,
			PartitionKey: envelope.EntityID,
			Payload:      payload,
			CreatedAt:    envelope.OccurredAtUTC,
		},
	})
	return nil
}

func (s *Store) ListPendingOutbox(ctx context.Context, limit int) ([]ports.OutboxMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]ports.OutboxMessage, 0, limit)
	for _, row := range s.outbox {
		if row.published {
			continue
		}
		items = append(items, row.message)
		if limit > 0 && len(items) >= limit {
			break
		}
	}
	return items, nil
}

func (s *Store) MarkOutboxPublished(ctx context.Context, outboxID string, publishedAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, row := range s.outbox {
		if row.message.OutboxID == outboxID {
			row.published = true
			return nil
		}
	}
	return nil
}

func (s *Store) ListProjects(ctx context.Context, ownerID string) ([]ports.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]ports.Project, 0, len(s.projects))
	for _, project := range s.projects {
		if ownerID != "" && project.OwnerID != ownerID {
			continue
		}
		items = append(items, project)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Name < items[j].Name })
	return items, nil
}

func (s *Store) ListTags(ctx context.Context) ([]ports.Tag, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]ports.Tag, 0, len(s.tags))
	for _, tag := range s.tags {
		items = append(items, tag)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Name < items[j].Name })
	return items, nil
}

func (s *Store) GetUser(ctx context.Context, userID string) (ports.UserRecord, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[userID]
	return user, ok, nil
}

func (s *Store) ListUsers(ctx context.Context) ([]ports.UserRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]ports.UserRecord, 0, len(s.users))
	for _, user := range s.users {
		items = append(items, user)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].UserID < items[j].UserID })
	return items, nil
}

// PutUser registers a directory user. Used by composition roots and tests.
func (s *Store) PutUser(user ports.UserRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[user.UserID] = user
}

// Now lets the store double as the runtime clock for in-memory wiring.
func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}

func hasTag(artefact entities.Artefact, tagID string) bool {
	for _, id := range artefact.TagIDs {
		if id == tagID {
			return true
		}
	}
	return false
}

func cloneArtefact(artefact entities.Artefact) entities.Artefact {
	cloned := artefact
	cloned.TagIDs = append([]string(nil), artefact.TagIDs...)
	cloned.ReviewHistory = cloneReviews(artefact.ReviewHistory)
	return cloned
}

func cloneReviews(records []entities.ReviewRecord) []entities.ReviewRecord {
	if len(records) == 0 {
		return nil
	}
	return append([]entities.ReviewRecord(nil), records...)
}
