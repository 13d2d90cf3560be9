package ports

import (
	"context"
	"time"

	"knowledgenet/contexts/knowledge-governance/artefact-service/domain/entities"
	ruleentities "knowledgenet/contexts/knowledge-governance/rule-catalog-service/domain/entities"
	"knowledgenet/internal/shared/events"
)

type ArtefactFilter struct {
	ProjectID string
	TagID     string
	Status    entities.ArtefactStatus
}

type ArtefactRepository interface {
	CreateArtefact(ctx context.Context, artefact entities.Artefact) error
	GetArtefact(ctx context.Context, artefactID string) (entities.Artefact, error)
	// UpdateArtefactVersioned applies the update only when the stored
	// version still matches expectedVersion; otherwise it returns
	// ErrVersionConflict so the caller can re-read and re-validate.
	UpdateArtefactVersioned(ctx context.Context, artefact entities.Artefact, expectedVersion int64) error
	ListArtefacts(ctx context.Context, filter ArtefactFilter) ([]entities.Artefact, error)
}

type HistoryRepository interface {
	AppendReview(ctx context.Context, record entities.ReviewRecord) error
}

// RuleFinder is the rule-catalog read contract this service depends on.
// A lookup miss must surface as the catalog's not-found error, never a
// default rule.
type RuleFinder interface {
	RuleFor(ctx context.Context, category string) (ruleentities.GovernanceRule, error)
}

type Project struct {
	ProjectID  string
	Name       string
	ClientName string
	OwnerID    string
}

type Tag struct {
	TagID string
	Name  string
}

type UserRecord struct {
	UserID     string
	Name       string
	Role       string
	OfficeID   string
	OfficeName string
	RegionID   string
}

// DirectoryRepository serves the lookup surface (projects, tags, user
// names) used to enrich artefact views and back the lookup routes.
type DirectoryRepository interface {
	ListProjects(ctx context.Context, ownerID string) ([]Project, error)
	ListTags(ctx context.Context) ([]Tag, error)
	GetUser(ctx context.Context, userID string) (UserRecord, bool, error)
	ListUsers(ctx context.Context) ([]UserRecord, error)
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}

type EventEnvelope = events.Envelope

type OutboxMessage struct {
	OutboxID     string
	EventType    string
	PartitionKey string
	Payload      []byte
	CreatedAt    time.Time
}

type OutboxWriter interface {
	AppendOutbox(ctx context.Context, envelope EventEnvelope) error
}

type OutboxRepository interface {
	ListPendingOutbox(ctx context.Context, limit int) ([]OutboxMessage, error)
	MarkOutboxPublished(ctx context.Context, outboxID string, publishedAt time.Time) error
}

type EventPublisher interface {
	Publish(ctx context.Context, topic string, event EventEnvelope) error
}
