package application

import (
	"context"
	"log/slog"
	"strings"

	"knowledgenet/contexts/knowledge-governance/rule-catalog-service/domain/entities"
	domainerrors "knowledgenet/contexts/knowledge-governance/rule-catalog-service/domain/errors"
	"knowledgenet/contexts/knowledge-governance/rule-catalog-service/ports"
)

type Service struct {
	Repo   ports.RuleRepository
	Logger *slog.Logger
}

// RuleFor resolves the rule for an exact category key. A miss surfaces as
// ErrRuleNotFound so callers treat it as a validation failure, never a
// silent pass.
func (s Service) RuleFor(ctx context.Context, category string) (entities.GovernanceRule, error) {
	if strings.TrimSpace(category) == "" {
		return entities.GovernanceRule{}, domainerrors.ErrInvalidRequest
	}
	return s.Repo.RuleByCategory(ctx, category)
}

func (s Service) ListRules(ctx context.Context) ([]entities.GovernanceRule, error) {
	rules, err := s.Repo.ListRules(ctx)
	if err != nil {
		return nil, err
	}
	resolveLogger(s.Logger).Debug("governance rules listed",
		"event", "governance_rules_listed",
		"module", "knowledge-governance/rule-catalog-service",
		"layer", "application",
		"rule_count", len(rules),
	)
	return rules, nil
}
