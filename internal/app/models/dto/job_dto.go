package dto

import "time"

// CreateJobRequest posts a job to the board
type CreateJobRequest struct {
	Title       string `json:"title" binding:"required,max=200" example:"Research Assistant, NLP Lab"`
	Company     string `json:"company" binding:"required,max=200" example:"Campus NLP Lab"`
	Location    string `json:"location" binding:"max=200" example:"Istanbul"`
	Type        string `json:"type" binding:"required,oneof=FULL_TIME PART_TIME INTERNSHIP RESEARCH_ASSISTANT" example:"RESEARCH_ASSISTANT"`
	Description string `json:"description" example:"Annotate corpora and run experiments."`
}

// JobResponse is a job as shown to a viewer
type JobResponse struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Company     string       `json:"company"`
	Location    string       `json:"location"`
	Type        string       `json:"type"`
	Description string       `json:"description"`
	PostedBy    *UserSummary `json:"postedBy,omitempty"`
	IsSaved     bool         `json:"isSaved"`
	CreatedAt   time.Time    `json:"createdAt"`
}

// SavedJobResponse is one bookmark
type SavedJobResponse struct {
	Job     JobResponse `json:"job"`
	SavedAt time.Time   `json:"savedAt"`
}

// SavedJobListResponse is a page of bookmarks, newest first
type SavedJobListResponse struct {
	SavedJobs []SavedJobResponse `json:"savedJobs"`
	PaginationInfo
}
