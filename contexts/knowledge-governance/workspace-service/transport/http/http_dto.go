package httptransport

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// WorkspaceView is the wire shape for workspace listings.
type WorkspaceView struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Type        string `json:"type"`
	ProjectID   string `json:"projectId,omitempty"`
	MemberCount int    `json:"memberCount"`
}

type JoinWorkspaceResponse struct {
	MemberCount int `json:"memberCount"`
}
