package entities

import (
	"strings"
	"time"
)

type ArtefactStatus string
type Confidentiality string
type ReviewDecision string

const (
	StatusDraft         ArtefactStatus = "Draft"
	StatusPendingReview ArtefactStatus = "PendingReview"
	StatusTrusted       ArtefactStatus = "Trusted"
	StatusRejected      ArtefactStatus = "Rejected"
	StatusRetired       ArtefactStatus = "Retired"
	StatusOutdated      ArtefactStatus = "Outdated"

	ConfidentialityInternal           Confidentiality = "Internal"
	ConfidentialityClientConfidential Confidentiality = "ClientConfidential"
	ConfidentialityRestricted         Confidentiality = "Restricted"

	DecisionApprove  ReviewDecision = "approve"
	DecisionReject   ReviewDecision = "reject"
	DecisionRetire   ReviewDecision = "retire"
	DecisionOutdated ReviewDecision = "outdated"
)

// Artefact is a governed knowledge document. Mutated only through the
// review workflow; ReviewHistory is append-only.
type Artefact struct {
	ArtefactID      string
	Title           string
	Description     string
	OwnerID         string
	ProjectID       string
	WorkspaceID     string
	Category        string
	Confidentiality Confidentiality
	Status          ArtefactStatus
	TagIDs          []string
	ReviewDueOn     time.Time
	SubmittedOn     time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
	Version         int64
	ReviewHistory   []ReviewRecord
}

type ReviewRecord struct {
	RecordID   string
	ArtefactID string
	ReviewerID string
	Decision   ReviewDecision
	Comment    string
	RecordedAt time.Time
}

// NextStatus returns the status a decision moves the artefact to, and
// whether the transition is valid from the current status. Trusted,
// Rejected, Retired and Outdated are terminal for approve/reject;
// Retired and Outdated accept no further decisions at all.
func (a Artefact) NextStatus(decision ReviewDecision) (ArtefactStatus, bool) {
	switch decision {
	case DecisionApprove:
		if a.Status == StatusPendingReview {
			return StatusTrusted, true
		}
	case DecisionReject:
		if a.Status == StatusPendingReview {
			return StatusRejected, true
		}
	case DecisionRetire:
		if a.Status == StatusTrusted {
			return StatusRetired, true
		}
	case DecisionOutdated:
		if a.Status == StatusTrusted {
			return StatusOutdated, true
		}
	}
	return a.Status, false
}

// IsOverdue reports whether a Trusted artefact has passed its review due
// date. Pure predicate: an overdue artefact stays Trusted until a human
// decision changes it.
func (a Artefact) IsOverdue(asOf time.Time) bool {
	return a.Status == StatusTrusted && asOf.After(a.ReviewDueOn)
}

// WithinReviewWindow reports whether the review due date is at most
// maxMonths after the submission date.
func WithinReviewWindow(reviewDueOn, submittedOn time.Time, maxMonths int) bool {
	return !reviewDueOn.After(submittedOn.AddDate(0, maxMonths, 0))
}

// MissingMetadataFields returns the required field names that are absent
// or empty on the artefact. Unrecognized field names count as missing so
// a rule can never be satisfied by accident.
func (a Artefact) MissingMetadataFields(required []string) []string {
	var missing []string
	for _, field := range required {
		if !a.hasMetadataField(field) {
			missing = append(missing, field)
		}
	}
	return missing
}

func (a Artefact) hasMetadataField(field string) bool {
	switch strings.ToLower(strings.TrimSpace(field)) {
	case "title":
		return strings.TrimSpace(a.Title) != ""
	case "description":
		return strings.TrimSpace(a.Description) != ""
	case "owner":
		return strings.TrimSpace(a.OwnerID) != ""
	case "project":
		return strings.TrimSpace(a.ProjectID) != ""
	case "workspace":
		return strings.TrimSpace(a.WorkspaceID) != ""
	case "confidentiality":
		return IsSupportedConfidentiality(a.Confidentiality)
	case "tags":
		return len(a.TagIDs) > 0
	default:
		return false
	}
}

func IsSupportedConfidentiality(value Confidentiality) bool {
	switch value {
	case ConfidentialityInternal, ConfidentialityClientConfidential, ConfidentialityRestricted:
		return true
	default:
		return false
	}
}

func IsSupportedDecision(value ReviewDecision) bool {
	switch value {
	case DecisionApprove, DecisionReject, DecisionRetire, DecisionOutdated:
		return true
	default:
		return false
	}
}

func ParseDecision(raw string) (ReviewDecision, bool) {
	decision := ReviewDecision(strings.ToLower(strings.TrimSpace(raw)))
	if !IsSupportedDecision(decision) {
		return "", false
	}
	return decision, true
}
