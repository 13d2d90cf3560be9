package ports

import (
	"context"

	"knowledgenet/contexts/knowledge-governance/rule-catalog-service/domain/entities"
)

// RuleRepository resolves governance rules by exact category key.
// Lookups are case-sensitive and there is no default rule.
type RuleRepository interface {
	RuleByCategory(ctx context.Context, category string) (entities.GovernanceRule, error)
	ListRules(ctx context.Context) ([]entities.GovernanceRule, error)
}
