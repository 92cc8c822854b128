// Package domain holds the research collaboration rules shared by the service
// and persistence layers. Nothing in here touches the database or HTTP.
package domain

import (
	"slices"
	"time"
)

// User is the read-only identity shown on research pages
type User struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Username        string `json:"username"`
	Image           string `json:"image,omitempty"`
	DisplayUsername string `json:"displayUsername"`
}

// Attachment is a file linked to a research, usually a PDF
type Attachment struct {
	ID        string    `json:"id"`
	URL       string    `json:"url"`
	Type      string    `json:"type"`
	CreatedAt time.Time `json:"createdAt"`
}

// Research is a user-authored project that can accept collaborators.
// Description holds the editor's serialized rich-text document.
type Research struct {
	ID                    string                  `json:"id"`
	User                  User                    `json:"user"`
	Description           string                  `json:"description"`
	Attachments           []Attachment            `json:"attachments"`
	Collaborators         []User                  `json:"collaborators"`
	CollaborationRequests []*CollaborationRequest `json:"collaborationRequests"`
	CreatedAt             time.Time               `json:"createdAt"`
}

// Viewer is the authenticated actor evaluating permissions.
// It is always passed explicitly, never looked up from ambient state.
type Viewer struct {
	UserID string
	Role   string
}

// IsZero reports whether the viewer carries no identity
func (v Viewer) IsZero() bool {
	return v.UserID == ""
}

// OwnerID returns the ID of the research owner
func (r *Research) OwnerID() string {
	return r.User.ID
}

// HasCollaborator reports whether userID already joined the research
func (r *Research) HasCollaborator(userID string) bool {
	return slices.ContainsFunc(r.Collaborators, func(u User) bool {
		return u.ID == userID
	})
}

func (r *Research) findRequest(requestID string) *CollaborationRequest {
	for _, req := range r.CollaborationRequests {
		if req.ID == requestID {
			return req
		}
	}
	return nil
}

// addCollaborator appends u unless already present
func (r *Research) addCollaborator(u User) {
	if r.HasCollaborator(u.ID) {
		return
	}
	r.Collaborators = append(r.Collaborators, u)
}
