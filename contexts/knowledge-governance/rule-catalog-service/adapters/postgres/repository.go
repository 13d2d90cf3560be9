package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"knowledgenet/contexts/knowledge-governance/rule-catalog-service/domain/entities"
	domainerrors "knowledgenet/contexts/knowledge-governance/rule-catalog-service/domain/errors"

	"gorm.io/gorm"
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

func (r *Repository) RuleByCategory(ctx context.Context, category string) (entities.GovernanceRule, error) {
	var row ruleModel
	err := r.db.WithContext(ctx).
		Where("artefact_category = ?", category).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.GovernanceRule{}, domainerrors.ErrRuleNotFound
		}
		return entities.GovernanceRule{}, err
	}
	return row.toEntity(), nil
}

func (r *Repository) ListRules(ctx context.Context) ([]entities.GovernanceRule, error) {
	var rows []ruleModel
	if err := r.db.WithContext(ctx).
		Order("artefact_category ASC").
		Find(&rows).
		Error; err != nil {
		return nil, err
	}
	items := make([]entities.GovernanceRule, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

type ruleModel struct {
	RuleID                  string `gorm:"column:rule_id;primaryKey"`
	ArtefactCategory        string `gorm:"column:artefact_category;uniqueIndex"`
	Name                    string `gorm:"column:name"`
	MaxReviewIntervalMonths int    `gorm:"column:max_review_interval_months"`
	RetentionYears          int    `gorm:"column:retention_years"`
	MandatoryMetadata       string `gorm:"column:mandatory_metadata"`
}

func (ruleModel) TableName() string {
	return "governance_rules"
}

func (m ruleModel) toEntity() entities.GovernanceRule {
	return entities.GovernanceRule{
		RuleID:                  m.RuleID,
		Category:                m.ArtefactCategory,
		Name:                    m.Name,
		MaxReviewIntervalMonths: m.MaxReviewIntervalMonths,
		RetentionYears:          m.RetentionYears,
		MandatoryMetadata:       splitMetadata(m.MandatoryMetadata),
	}
}

// Model exposes the gorm model for migration wiring.
func Model() any {
	return &ruleModel{}
}

func splitMetadata(raw string) []string {
	var fields []string
	for _, field := range strings.Split(raw, ",") {
		field = strings.TrimSpace(field)
		if field != "" {
			fields = append(fields, field)
		}
	}
	return fields
}
