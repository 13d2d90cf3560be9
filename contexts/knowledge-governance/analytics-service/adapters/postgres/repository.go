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

	"knowledgenet/contexts/knowledge-governance/analytics-service/ports"
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

// One row per consumed review event; the reviewer's governance-action
// count is the number of rows carrying their id.
type governanceActionModel struct {
	EventID    string    `gorm:"column:event_id;primaryKey"`
	ReviewerID string    `gorm:"column:reviewer_id;index"`
	ConsumedAt time.Time `gorm:"column:consumed_at;not null"`
}

func (governanceActionModel) TableName() string { return "analytics_governance_actions" }

// Models lists the tables this repository owns, for migration wiring.
func Models() []any {
	return []any{&governanceActionModel{}}
}

func (r *Repository) RecordGovernanceAction(ctx context.Context, eventID string, reviewerID string) (bool, error) {
	row := governanceActionModel{
		EventID:    strings.TrimSpace(eventID),
		ReviewerID: strings.TrimSpace(reviewerID),
		ConsumedAt: time.Now().UTC(),
	}
	create := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "event_id"}},
		DoNothing: true,
	}).Create(&row)
	if create.Error != nil {
		if isUniqueViolation(create.Error) {
			return false, nil
		}
		r.logger.Error("governance action insert failed",
			"event", "analytics_repo_record_action_failed",
			"module", "knowledge-governance/analytics-service",
			"layer", "adapter.postgres",
			"event_id", eventID,
			"error", create.Error.Error(),
		)
		return false, create.Error
	}
	return create.RowsAffected > 0, nil
}

func (r *Repository) GovernanceActionCount(ctx context.Context, userID string) (int, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&governanceActionModel{}).
		Where("reviewer_id = ?", strings.TrimSpace(userID)).
		Count(&count).
		Error
	if err != nil {
		return 0, err
	}
	return int(count), nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

var _ ports.ActivityProjection = (*Repository)(nil)
