package postgresadapter

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"time"

	"knowledgenet/contexts/knowledge-governance/artefact-service/domain/entities"
	domainerrors "knowledgenet/contexts/knowledge-governance/artefact-service/domain/errors"
	"knowledgenet/contexts/knowledge-governance/artefact-service/ports"

	"gorm.io/gorm"
)

const (
	outboxStatusPending   = "pending"
	outboxStatusPublished = "published"
)

type Repository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewRepository(db *gorm.DB, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{db: db, logger: logger}
}

func (r *Repository) CreateArtefact(ctx context.Context, artefact entities.Artefact) error {
	row := toArtefactModel(artefact)
	return r.db.WithContext(ctx).Create(&row).Error
}

func (r *Repository) GetArtefact(ctx context.Context, artefactID string) (entities.Artefact, error) {
	var row artefactModel
	err := r.db.WithContext(ctx).
		Where("artefact_id = ?", artefactID).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Artefact{}, domainerrors.ErrArtefactNotFound
		}
		return entities.Artefact{}, err
	}

	artefact := row.toEntity()
	var reviews []reviewRecordModel
	if err := r.db.WithContext(ctx).
		Where("artefact_id = ?", artefactID).
		Order("recorded_at ASC").
		Find(&reviews).
		Error; err != nil {
		return entities.Artefact{}, err
	}
	for _, review := range reviews {
		artefact.ReviewHistory = append(artefact.ReviewHistory, review.toEntity())
	}
	return artefact, nil
}

// UpdateArtefactVersioned guards against lost updates: the UPDATE only
// matches when the stored version equals expectedVersion.
func (r *Repository) UpdateArtefactVersioned(ctx context.Context, artefact entities.Artefact, expectedVersion int64) error {
	row := toArtefactModel(artefact)
	result := r.db.WithContext(ctx).
		Model(&artefactModel{}).
		Where("artefact_id = ? AND version = ?", artefact.ArtefactID, expectedVersion).
		Updates(map[string]any{
			"status":        row.Status,
			"review_due_on": row.ReviewDueOn,
			"updated_at":    row.UpdatedAt,
			"version":       row.Version,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		var exists int64
		if err := r.db.WithContext(ctx).
			Model(&artefactModel{}).
			Where("artefact_id = ?", artefact.ArtefactID).
			Count(&exists).
			Error; err != nil {
			return err
		}
		if exists == 0 {
			return domainerrors.ErrArtefactNotFound
		}
		return domainerrors.ErrVersionConflict
	}
	return nil
}

func (r *Repository) ListArtefacts(ctx context.Context, filter ports.ArtefactFilter) ([]entities.Artefact, error) {
	tx := r.db.WithContext(ctx).Model(&artefactModel{})
	if filter.Status != "" {
		tx = tx.Where("status = ?", string(filter.Status))
	}
	if filter.ProjectID != "" {
		tx = tx.Where("project_id = ?", filter.ProjectID)
	}
	if filter.TagID != "" {
		tx = tx.Where("tag_ids LIKE ?", "%"+filter.TagID+"%")
	}

	var rows []artefactModel
	if err := tx.Order("created_at DESC, artefact_id DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	items := make([]entities.Artefact, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

func (r *Repository) AppendReview(ctx context.Context, record entities.ReviewRecord) error {
	row := reviewRecordModel{
		RecordID:   record.RecordID,
		ArtefactID: record.ArtefactID,
		ReviewerID: record.ReviewerID,
		Decision:   string(record.Decision),
		Comment:    record.Comment,
		RecordedAt: record.RecordedAt,
	}
	return r.db.WithContext(ctx).Create(&row).Error
}

func (r *Repository) AppendOutbox(ctx context.Context, envelope ports.EventEnvelope) error {
	payload, err := json.Marshal(envelope)
	if err != nil {
		return err
	}
	row := outboxModel{
		OutboxID:     envelope.EventID,
		EventType:    envelope.EventType,
		PartitionKey: envelope.EntityID,
		Payload:      string(payload),
		Status:       outboxStatusPending,
		CreatedAt:    envelope.OccurredAtUTC,
	}
	return r.db.WithContext(ctx).Create(&row).Error
}

func (r *Repository) ListPendingOutbox(ctx context.Context, limit int) ([]ports.OutboxMessage, error) {
	if limit <= 0 {
		limit = 50
	}
	var rows []outboxModel
	if err := r.db.WithContext(ctx).
		Where("status = ?", outboxStatusPending).
		Order("created_at ASC").
		Limit(limit).
		Find(&rows).
		Error; err != nil {
		return nil, err
	}
	items := make([]ports.OutboxMessage, 0, len(rows))
	for _, row := range rows {
		items = append(items, ports.OutboxMessage{
			OutboxID:     row.OutboxID,
			EventType:    row.EventType,
			PartitionKey: row.PartitionKey,
			Payload:      []byte(row.Payload),
			CreatedAt:    row.CreatedAt,
		})
	}
	return items, nil
}

func (r *Repository) MarkOutboxPublished(ctx context.Context, outboxID string, publishedAt time.Time) error {
	return r.db.WithContext(ctx).
		Model(&outboxModel{}).
		Where("outbox_id = ?", outboxID).
		Updates(map[string]any{
			"status":       outboxStatusPublished,
			"published_at": publishedAt,
		}).
		Error
}

func (r *Repository) ListProjects(ctx context.Context, ownerID string) ([]ports.Project, error) {
	tx := r.db.WithContext(ctx).Model(&projectModel{})
	if ownerID != "" {
		tx = tx.Where("owner_id = ?", ownerID)
	}
	var rows []projectModel
	if err := tx.Order("name ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	items := make([]ports.Project, 0, len(rows))
	for _, row := range rows {
		items = append(items, ports.Project{
			ProjectID:  row.ProjectID,
			Name:       row.Name,
			ClientName: row.ClientName,
			OwnerID:    row.OwnerID,
		})
	}
	return items, nil
}

func (r *Repository) ListTags(ctx context.Context) ([]ports.Tag, error) {
	var rows []tagModel
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	items := make([]ports.Tag, 0, len(rows))
	for _, row := range rows {
		items = append(items, ports.Tag{TagID: row.TagID, Name: row.Name})
	}
	return items, nil
}

func (r *Repository) GetUser(ctx context.Context, userID string) (ports.UserRecord, bool, error) {
	var row userModel
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.UserRecord{}, false, nil
		}
		return ports.UserRecord{}, false, err
	}
	return row.toRecord(), true, nil
}

func (r *Repository) ListUsers(ctx context.Context) ([]ports.UserRecord, error) {
	var rows []userModel
	if err := r.db.WithContext(ctx).Order("user_id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	items := make([]ports.UserRecord, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toRecord())
	}
	return items, nil
}

type artefactModel struct {
	ArtefactID      string    `gorm:"column:artefact_id;primaryKey"`
	Title           string    `gorm:"column:title"`
	Description     string    `gorm:"column:description"`
	OwnerID         string    `gorm:"column:owner_id;index"`
	ProjectID       string    `gorm:"column:project_id;index"`
	WorkspaceID     string    `gorm:"column:workspace_id"`
	Category        string    `gorm:"column:category;index"`
	Confidentiality string    `gorm:"column:confidentiality"`
	Status          string    `gorm:"column:status;index"`
	TagIDs          string    `gorm:"column:tag_ids"`
	ReviewDueOn     time.Time `gorm:"column:review_due_on"`
	SubmittedOn     time.Time `gorm:"column:submitted_on"`
	CreatedAt       time.Time `gorm:"column:created_at"`
	UpdatedAt       time.Time `gorm:"column:updated_at"`
	Version         int64     `gorm:"column:version"`
}

func (artefactModel) TableName() string {
	return "artefacts"
}

func (m artefactModel) toEntity() entities.Artefact {
	return entities.Artefact{
		ArtefactID:      m.ArtefactID,
		Title:           m.Title,
		Description:     m.Description,
		OwnerID:         m.OwnerID,
		ProjectID:       m.ProjectID,
		WorkspaceID:     m.WorkspaceID,
		Category:        m.Category,
		Confidentiality: entities.Confidentiality(m.Confidentiality),
		Status:          entities.ArtefactStatus(m.Status),
		TagIDs:          splitIDs(m.TagIDs),
		ReviewDueOn:     m.ReviewDueOn,
		SubmittedOn:     m.SubmittedOn,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
		Version:         m.Version,
	}
}

func toArtefactModel(artefact entities.Artefact) artefactModel {
	return artefactModel{
		ArtefactID:      artefact.ArtefactID,
		Title:           artefact.Title,
		Description:     artefact.Description,
		OwnerID:         artefact.OwnerID,
		ProjectID:       artefact.ProjectID,
		WorkspaceID:     artefact.WorkspaceID,
		Category:        artefact.Category,
		Confidentiality: string(artefact.Confidentiality),
		Status:          string(artefact.Status),
		TagIDs:          strings.Join(artefact.TagIDs, ","),
		ReviewDueOn:     artefact.ReviewDueOn,
		SubmittedOn:     artefact.SubmittedOn,
		CreatedAt:       artefact.CreatedAt,
		UpdatedAt:       artefact.UpdatedAt,
		Version:         artefact.Version,
	}
}

type reviewRecordModel struct {
	RecordID   string    `gorm:"column:record_id;primaryKey"`
	ArtefactID string    `gorm:"column:artefact_id;index"`
	ReviewerID string    `gorm:"column:reviewer_id;index"`
	Decision   string    `gorm:"column:decision"`
	Comment    string    `gorm:"column:comment"`
	RecordedAt time.Time `gorm:"column:recorded_at"`
}

func (reviewRecordModel) TableName() string {
	return "artefact_review_records"
}

func (m reviewRecordModel) toEntity() entities.ReviewRecord {
	return entities.ReviewRecord{
		RecordID:   m.RecordID,
		ArtefactID: m.ArtefactID,
		ReviewerID: m.ReviewerID,
		Decision:   entities.ReviewDecision(m.Decision),
		Comment:    m.Comment,
		RecordedAt: m.RecordedAt,
	}
}

type outboxModel struct {
	OutboxID     string     `gorm:"column:outbox_id;primaryKey"`
	EventType    string     `gorm:"column:event_type"`
	PartitionKey string     `gorm:"column:partition_key"`
	Payload      string     `gorm:"column:payload"`
	Status       string     `gorm:"column:status;index"`
	CreatedAt    time.Time  `gorm:"column:created_at"`
	PublishedAt  *time.Time `gorm:"column:published_at"`
}

func (outboxModel) TableName() string {
	return "artefact_outbox"
}

type projectModel struct {
	ProjectID  string `gorm:"column:project_id;primaryKey"`
	Name       string `gorm:"column:name"`
	ClientName string `gorm:"column:client_name"`
	OwnerID    string `gorm:"column:owner_id;index"`
}

func (projectModel) TableName() string {
	return "projects"
}

type tagModel struct {
	TagID string `gorm:"column:tag_id;primaryKey"`
	Name  string `gorm:"column:name"`
}

func (tagModel) TableName() string {
	return "tags"
}

type userModel struct {
	UserID     string `gorm:"column:user_id;primaryKey"`
	Name       string `gorm:"column:name"`
	Role       string `gorm:"column:role"`
	OfficeID   string `gorm:"column:office_id"`
	OfficeName string `gorm:"column:office_name"`
	RegionID   string `gorm:"column:region_id;index"`
}

func (userModel) TableName() string {
	return "users"
}

func (m userModel) toRecord() ports.UserRecord {
	return ports.UserRecord{
		UserID:     m.UserID,
		Name:       m.Name,
		Role:       m.Role,
		OfficeID:   m.OfficeID,
		OfficeName: m.OfficeName,
		RegionID:   m.RegionID,
	}
}

// Models exposes the gorm models for migration wiring.
func Models() []any {
	return []any{
		&artefactModel{},
		&reviewRecordModel{},
		&outboxModel{},
		&projectModel{},
		&tagModel{},
		&userModel{},
	}
}

func splitIDs(raw string) []string {
	var ids []string
	for _, id := range strings.Split(raw, ",") {
		id = strings.TrimSpace(id)
		if id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}
