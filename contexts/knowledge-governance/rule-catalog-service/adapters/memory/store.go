package memory

import (
	"context"
	"sort"
	"sync"

	"knowledgenet/contexts/knowledge-governance/rule-catalog-service/domain/entities"
	domainerrors "knowledgenet/contexts/knowledge-governance/rule-catalog-service/domain/errors"
)

type Store struct {
	mu    sync.RWMutex
	rules map[string]entities.GovernanceRule
}

func NewStore() *Store {
	store := &Store{rules: make(map[string]entities.GovernanceRule)}
	for _, rule := range seedRules() {
		store.rules[rule.Category] = rule
	}
	return store
}

func seedRules() []entities.GovernanceRule {
	return []entities.GovernanceRule{
		{
			RuleID:                  "rule_cloud",
			Category:                "Cloud",
			Name:                    "Cloud delivery knowledge",
			MaxReviewIntervalMonths: 12,
			RetentionYears:          5,
			MandatoryMetadata:       []string{"title", "description", "confidentiality"},
		},
		{
			RuleID:                  "rule_case_study",
			Category:                "CaseStudy",
			Name:                    "Client case study",
			MaxReviewIntervalMonths: 24,
			RetentionYears:          7,
			MandatoryMetadata:       []string{"title", "description", "project", "confidentiality"},
		},
		{
			RuleID:                  "rule_how_to",
			Category:                "HowTo",
			Name:                    "How-to and playbook",
			MaxReviewIntervalMonths: 6,
			RetentionYears:          3,
			MandatoryMetadata:       []string{"title", "description"},
		},
	}
}

// PutRule replaces the rule for a category. Used by tests and seeds; the
// catalog is reference data, not a user-facing write surface.
func (s *Store) PutRule(rule entities.GovernanceRule) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rules[rule.Category] = rule
}

func (s *Store) RuleByCategory(ctx context.Context, category string) (entities.GovernanceRule, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rule, ok := s.rules[category]
	if !ok {
		return entities.GovernanceRule{}, domainerrors.ErrRuleNotFound
	}
	return cloneRule(rule), nil
}

func (s *Store) ListRules(ctx context.Context) ([]entities.GovernanceRule, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]entities.GovernanceRule, 0, len(s.rules))
	for _, rule := range s.rules {
		items = append(items, cloneRule(rule))
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].Category < items[j].Category
	})
	return items, nil
}

func cloneRule(rule entities.GovernanceRule) entities.GovernanceRule {
	cloned := rule
	cloned.MandatoryMetadata = append([]string(nil), rule.MandatoryMetadata...)
	return cloned
}
