package httpadapter

import (
	"context"
	"log/slog"
	"strings"

	"knowledgenet/contexts/knowledge-governance/rule-catalog-service/application"
	httptransport "knowledgenet/contexts/knowledge-governance/rule-catalog-service/transport/http"
)

type Handler struct {
	Service application.Service
	Logger  *slog.Logger
}

func (h Handler) ListRulesHandler(ctx context.Context) ([]httptransport.GovernanceRuleView, error) {
	rules, err := h.Service.ListRules(ctx)
	if err != nil {
		return nil, err
	}
	views := make([]httptransport.GovernanceRuleView, 0, len(rules))
	for _, rule := range rules {
		views = append(views, httptransport.GovernanceRuleView{
			ID:                      rule.RuleID,
			ArtefactCategory:        rule.Category,
			Name:                    rule.Name,
			MaxReviewIntervalMonths: rule.MaxReviewIntervalMonths,
			RetentionYears:          rule.RetentionYears,
			MandatoryMetadata:       strings.Join(rule.MandatoryMetadata, ", "),
		})
	}
	return views, nil
}
