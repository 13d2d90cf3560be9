package http

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type CreateArtefactRequest struct {
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	ProjectID       string   `json:"projectId"`
	WorkspaceID     string   `json:"workspaceId"`
	Confidentiality string   `json:"confidentiality"`
	Category        string   `json:"category"`
	TagIDs          []string `json:"tagIds"`
	ReviewDueOn     string   `json:"reviewDueOn"`
}

type CreateArtefactResponse struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}

type ArtefactView struct {
	ID              string `json:"id"`
	Title           string `json:"title"`
	Description     string `json:"description"`
	Owner           string `json:"owner"`
	OwnerName       string `json:"ownerName"`
	ProjectName     string `json:"projectName,omitempty"`
	Category        string `json:"category"`
	Confidentiality string `json:"confidentiality"`
	Status          string `json:"status"`
	Tags            string `json:"tags"`
	ReviewDueOn     string `json:"review_due_on"`
	CreatedOn       string `json:"created_on"`
}

type ListArtefactsRequest struct {
	ProjectID string
	TagID     string
	Status    string
}

type ReviewArtefactRequest struct {
	Decision string `json:"decision"`
	Comments string `json:"comments"`
}

type ReviewArtefactResponse struct {
	Message string `json:"message"`
}

type ProjectView struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	ClientName string `json:"clientName"`
}

type TagView struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
