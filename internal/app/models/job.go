package models

import "time"

// JobType is the kind of position advertised
type JobType string

const (
	JobFullTime   JobType = "FULL_TIME"
	JobPartTime   JobType = "PART_TIME"
	JobInternship JobType = "INTERNSHIP"
	JobResearch   JobType = "RESEARCH_ASSISTANT"
)

// Job is a position posted on the campus board
type Job struct {
	ID          string    `json:"id" db:"id"`
	Title       string    `json:"title" db:"title"`
	Company     string    `json:"company" db:"company"`
	Location    string    `json:"location" db:"location"`
	Type        JobType   `json:"type" db:"type"`
	Description string    `json:"description" db:"description"`
	PostedByID  string    `json:"postedById" db:"posted_by"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`

	// Related entities
	PostedBy *User `json:"postedBy,omitempty"`
}

// SavedJob is a bookmark of a job by a user
type SavedJob struct {
	UserID  string    `json:"userId" db:"user_id"`
	JobID   string    `json:"jobId" db:"job_id"`
	SavedAt time.Time `json:"savedAt" db:"saved_at"`

	Job *Job `json:"job,omitempty"`
}
