package http

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type GovernanceRuleView struct {
	ID                      string `json:"id"`
	ArtefactCategory        string `json:"artefact_category"`
	Name                    string `json:"name"`
	MaxReviewIntervalMonths int    `json:"max_review_interval_months"`
	RetentionYears          int    `json:"retention_years"`
	MandatoryMetadata       string `json:"mandatory_metadata"`
}
