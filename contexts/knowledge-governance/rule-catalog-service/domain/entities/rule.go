package entities

import "strings"

// GovernanceRule is immutable reference data constraining one artefact
// category: review cadence, retention and required metadata fields.
type GovernanceRule struct {
	RuleID                  string
	Category                string
	Name                    string
	MaxReviewIntervalMonths int
	RetentionYears          int
	MandatoryMetadata       []string
}

func (r GovernanceRule) Valid() bool {
	return strings.TrimSpace(r.Category) != "" &&
		strings.TrimSpace(r.Name) != "" &&
		r.MaxReviewIntervalMonths > 0 &&
		r.RetentionYears > 0
}
