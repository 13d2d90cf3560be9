package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"knowledgenet/contexts/knowledge-governance/workspace-service/domain/entities"
	domainerrors "knowledgenet/contexts/knowledge-governance/workspace-service/domain/errors"
	"knowledgenet/contexts/knowledge-governance/workspace-service/ports"
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

type workspaceModel struct {
	WorkspaceID string    `gorm:"column:workspace_id;primaryKey"`
	Name        string    `gorm:"column:name;not null"`
	Type        string    `gorm:"column:workspace_type;not null"`
	ProjectID   string    `gorm:"column:project_id"`
	CreatedAt   time.Time `gorm:"column:created_at;not null"`
}

func (workspaceModel) TableName() string { return "workspaces" }

func (m workspaceModel) toEntity() entities.Workspace {
	return entities.Workspace{
		WorkspaceID: m.WorkspaceID,
		Name:        m.Name,
		Type:        m.Type,
		ProjectID:   m.ProjectID,
		CreatedAt:   m.CreatedAt.UTC(),
	}
}

type membershipModel struct {
	WorkspaceID string    `gorm:"column:workspace_id;primaryKey"`
	UserID      string    `gorm:"column:user_id;primaryKey"`
	JoinedOn    time.Time `gorm:"column:joined_on;not null"`
}

func (membershipModel) TableName() string { return "workspace_memberships" }

// Models lists the tables this repository owns, for migration wiring.
func Models() []any {
	return []any{&workspaceModel{}, &membershipModel{}}
}

func (r *Repository) GetWorkspace(ctx context.Context, workspaceID string) (entities.Workspace, error) {
	var row workspaceModel
	err := r.db.WithContext(ctx).
		Where("workspace_id = ?", strings.TrimSpace(workspaceID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Workspace{}, domainerrors.ErrWorkspaceNotFound
		}
		return entities.Workspace{}, r.logError("workspace_repo_get_failed", err, "workspace_id", workspaceID)
	}
	return row.toEntity(), nil
}

func (r *Repository) ListWorkspaces(ctx context.Context) ([]entities.Workspace, error) {
	var rows []workspaceModel
	err := r.db.WithContext(ctx).
		Order("name ASC").
		Find(&rows).
		Error
	if err != nil {
		return nil, r.logError("workspace_repo_list_failed", err)
	}
	items := make([]entities.Workspace, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

// AddMember inserts the membership if it does not exist yet. Conflicts
// on the composite key mean the user already joined, which is not an
// error for idempotent joins.
func (r *Repository) AddMember(ctx context.Context, membership entities.Membership) (bool, error) {
	row := membershipModel{
		WorkspaceID: membership.WorkspaceID,
		UserID:      membership.UserID,
		JoinedOn:    membership.JoinedOn.UTC(),
	}
	create := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "workspace_id"}, {Name: "user_id"}},
		DoNothing: true,
	}).Create(&row)
	if create.Error != nil {
		if isUniqueViolation(create.Error) {
			return false, nil
		}
		return false, r.logError("workspace_repo_add_member_failed", create.Error,
			"workspace_id", membership.WorkspaceID,
			"user_id", membership.UserID,
		)
	}
	return create.RowsAffected > 0, nil
}

func (r *Repository) CountMembers(ctx context.Context, workspaceID string) (int, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&membershipModel{}).
		Where("workspace_id = ?", strings.TrimSpace(workspaceID)).
		Count(&count).
		Error
	if err != nil {
		return 0, r.logError("workspace_repo_count_members_failed", err, "workspace_id", workspaceID)
	}
	return int(count), nil
}

func (r *Repository) CountMemberships(ctx context.Context, userID string) (int, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&membershipModel{}).
		Where("user_id = ?", strings.TrimSpace(userID)).
		Count(&count).
		Error
	if err != nil {
		return 0, r.logError("workspace_repo_count_memberships_failed", err, "user_id", userID)
	}
	return int(count), nil
}

func (r *Repository) ListMemberWorkspaceIDs(ctx context.Context, userID string) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).
		Model(&membershipModel{}).
		Where("user_id = ?", strings.TrimSpace(userID)).
		Order("workspace_id ASC").
		Pluck("workspace_id", &ids).
		Error
	if err != nil {
		return nil, r.logError("workspace_repo_list_member_workspaces_failed", err, "user_id", userID)
	}
	return ids, nil
}

func (r *Repository) logError(event string, err error, args ...any) error {
	fields := append([]any{
		"event", event,
		"module", "knowledge-governance/workspace-service",
		"layer", "adapter.postgres",
		"error", err.Error(),
	}, args...)
	r.logger.Error("workspace repository operation failed", fields...)
	return err
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

var _ ports.WorkspaceRepository = (*Repository)(nil)
var _ ports.MembershipRepository = (*Repository)(nil)
