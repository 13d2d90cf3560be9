package identity

import "strings"

// Identity is the request-scoped caller context supplied by the
// authentication collaborator. Core services trust it as already
// authenticated and never read global session state.
type Identity struct {
	UserID   string
	Role     string
	RegionID string
}

const (
	RoleConsultant        = "Consultant"
	RoleKnowledgeChampion = "KnowledgeChampion"
	RoleGovCouncil        = "GovCouncil"
)

func (id Identity) IsAnonymous() bool {
	return strings.TrimSpace(id.UserID) == ""
}

// CanGovern is the single authorization predicate for governance
// operations (review decisions, pending queue, rules catalog).
func CanGovern(role string) bool {
	switch strings.TrimSpace(role) {
	case RoleKnowledgeChampion, RoleGovCouncil:
		return true
	default:
		return false
	}
}
