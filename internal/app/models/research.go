package models

import (
	"time"

	"github.com/yigit/atcampus/internal/domain"
)

// Research is a row of the 'researches' table
type Research struct {
	ID          string    `json:"id" db:"id"`
	UserID      string    `json:"userId" db:"user_id"`
	Description string    `json:"description" db:"description"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`
}

// ResearchAttachment is a row of the 'research_attachments' table
type ResearchAttachment struct {
	ID         string    `json:"id" db:"id"`
	ResearchID string    `json:"researchId" db:"research_id"`
	URL        string    `json:"url" db:"url"`
	FilePath   string    `json:"-" db:"file_path"`
	MimeType   string    `json:"type" db:"mime_type"`
	FileSize   int64     `json:"fileSize" db:"file_size"`
	UploadedBy string    `json:"uploadedBy" db:"uploaded_by"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`
}

// ToDomain projects the row onto the attachment shown on research pages
func (a *ResearchAttachment) ToDomain() domain.Attachment {
	return domain.Attachment{
		ID:        a.ID,
		URL:       a.URL,
		Type:      a.MimeType,
		CreatedAt: a.CreatedAt,
	}
}

// ResearchSummary is a research row with its collaboration counters
type ResearchSummary struct {
	Research
	CollaboratorCount int `json:"collaboratorCount" db:"collaborator_count"`
	PendingCount      int `json:"pendingCount" db:"pending_count"`
}
