package dto

import (
	"encoding/json"
	"time"

	"github.com/yigit/atcampus/internal/domain"
)

// CreateResearchRequest carries the editor document of a new research
type CreateResearchRequest struct {
	Description json.RawMessage `json:"description" binding:"required" swaggertype:"object"`
}

// ResolveRequestRequest accepts or declines a collaboration request
type ResolveRequestRequest struct {
	Decision string `json:"decision" binding:"required" example:"ACCEPT" enums:"ACCEPT,DECLINE"`
}

// AttachmentResponse is a file linked to a research
type AttachmentResponse struct {
	ID        string    `json:"id"`
	URL       string    `json:"url" example:"http://localhost:8080/uploads/research/1/paper.pdf"`
	Type      string    `json:"type" example:"application/pdf"`
	CreatedAt time.Time `json:"createdAt"`
}

// NewAttachmentResponses maps attachments, never returning nil
func NewAttachmentResponses(atts []domain.Attachment) []AttachmentResponse {
	out := make([]AttachmentResponse, 0, len(atts))
	for _, a := range atts {
		out = append(out, AttachmentResponse{ID: a.ID, URL: a.URL, Type: a.Type, CreatedAt: a.CreatedAt})
	}
	return out
}

// CollaborationRequestResponse is one request to join a research
type CollaborationRequestResponse struct {
	ID         string      `json:"id"`
	ResearchID string      `json:"researchId"`
	Requester  UserSummary `json:"requester"`
	Status     string      `json:"status" example:"PENDING" enums:"PENDING,ACCEPTED,DECLINED"`
	CreatedAt  time.Time   `json:"createdAt"`
	ResolvedAt *time.Time  `json:"resolvedAt,omitempty"`
}

// NewCollaborationRequestResponse maps a domain request
func NewCollaborationRequestResponse(r *domain.CollaborationRequest) CollaborationRequestResponse {
	return CollaborationRequestResponse{
		ID:         r.ID,
		ResearchID: r.ResearchID,
		Requester:  NewUserSummary(r.Requester),
		Status:     string(r.Status),
		CreatedAt:  r.CreatedAt,
		ResolvedAt: r.ResolvedAt,
	}
}

// ResolutionResponse is returned after a request is accepted or declined
type ResolutionResponse struct {
	Request       CollaborationRequestResponse `json:"request"`
	Collaborators []UserSummary                `json:"collaborators,omitempty"`
}

// NewResolutionResponse maps a domain resolution
func NewResolutionResponse(res *domain.Resolution) *ResolutionResponse {
	out := &ResolutionResponse{Request: NewCollaborationRequestResponse(&res.Request)}
	if res.Collaborators != nil {
		out.Collaborators = NewUserSummaries(res.Collaborators)
	}
	return out
}

// ResearchViewResponse is everything the research page needs for one viewer.
// PendingRequests is null unless CanViewRequests is true.
type ResearchViewResponse struct {
	ID                string                         `json:"id"`
	Owner             UserSummary                    `json:"owner"`
	Description       json.RawMessage                `json:"description" swaggertype:"object"`
	DescriptionHTML   string                         `json:"descriptionHtml" example:"<p>Graph neural networks for campus data</p>"`
	Attachments       []AttachmentResponse           `json:"attachments"`
	Collaborators     []UserSummary                  `json:"collaborators"`
	CanViewRequests   bool                           `json:"canViewRequests"`
	PendingRequests   []CollaborationRequestResponse `json:"pendingRequests"`
	IsCollaborator    bool                           `json:"isCollaborator"`
	HasPendingRequest bool                           `json:"hasPendingRequest"`
	MetadataTitle     string                         `json:"metadataTitle" example:"Ada: Graph neural networks for campus data..."`
	CreatedAt         time.Time                      `json:"createdAt"`
}

// ResearchSummary is one row of a research list
type ResearchSummary struct {
	ID                string    `json:"id"`
	Excerpt           string    `json:"excerpt"`
	CollaboratorCount int       `json:"collaboratorCount"`
	PendingCount      int       `json:"pendingCount"`
	CreatedAt         time.Time `json:"createdAt"`
}

// ResearchListResponse is a page of researches
type ResearchListResponse struct {
	Researches []ResearchSummary `json:"researches"`
	PaginationInfo
}
