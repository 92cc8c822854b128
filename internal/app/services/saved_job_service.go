package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/yigit/atcampus/internal/app/models"
	"github.com/yigit/atcampus/internal/app/models/dto"
	"github.com/yigit/atcampus/internal/domain"
	"github.com/yigit/atcampus/internal/pkg/apperrors"
	"github.com/yigit/atcampus/internal/pkg/helpers"
)

// JobStore is the persistence behind the job board and bookmarks
type JobStore interface {
	CreateJob(ctx context.Context, job *models.Job) error
	GetJob(ctx context.Context, id string) (*models.Job, error)
	SaveJob(ctx context.Context, userID, jobID string) (time.Time, error)
	UnsaveJob(ctx context.Context, userID, jobID string) error
	IsSaved(ctx context.Context, userID, jobID string) (bool, error)
	ListSavedJobs(ctx context.Context, userID string, offset uint64, limit int) ([]models.SavedJob, int64, error)
}

// SavedJobService defines the interface for job board operations
type SavedJobService interface {
	CreateJob(ctx context.Context, viewer domain.Viewer, req *dto.CreateJobRequest) (*dto.JobResponse, error)
	GetJob(ctx context.Context, jobID string, viewer domain.Viewer) (*dto.JobResponse, error)
	SaveJob(ctx context.Context, jobID string, viewer domain.Viewer) (*dto.SavedJobResponse, error)
	UnsaveJob(ctx context.Context, jobID string, viewer domain.Viewer) error
	ListSavedJobs(ctx context.Context, viewer domain.Viewer, page, size int) (*dto.SavedJobListResponse, error)
}

// savedJobServiceImpl implements SavedJobService
type savedJobServiceImpl struct {
	jobRepo  JobStore
	userRepo UserReader
	logger   zerolog.Logger
}

// NewSavedJobService creates a new SavedJobService
func NewSavedJobService(jobRepo JobStore, userRepo UserReader, logger zerolog.Logger) SavedJobService {
	return &savedJobServiceImpl{
		jobRepo:  jobRepo,
		userRepo: userRepo,
		logger:   logger,
	}
}

func newJobResponse(job *models.Job, poster *models.User, saved bool) dto.JobResponse {
	resp := dto.JobResponse{
		ID:          job.ID,
		Title:       job.Title,
		Company:     job.Company,
		Location:    job.Location,
		Type:        string(job.Type),
		Description: job.Description,
		IsSaved:     saved,
		CreatedAt:   job.CreatedAt,
	}
	if poster != nil {
		summary := dto.NewUserSummary(poster.ToDomain())
		resp.PostedBy = &summary
	}
	return resp
}

// CreateJob posts a job on the board
func (s *savedJobServiceImpl) CreateJob(ctx context.Context, viewer domain.Viewer, req *dto.CreateJobRequest) (*dto.JobResponse, error) {
	job := &models.Job{
		ID:          uuid.NewString(),
		Title:       strings.TrimSpace(req.Title),
		Company:     strings.TrimSpace(req.Company),
		Location:    strings.TrimSpace(req.Location),
		Type:        models.JobType(req.Type),
		Description: strings.TrimSpace(req.Description),
		PostedByID:  viewer.UserID,
	}
	if job.Title == "" || job.Company == "" {
		return nil, apperrors.NewBadRequestError("title and company are required")
	}

	if err := s.jobRepo.CreateJob(ctx, job); err != nil {
		return nil, err
	}

	s.logger.Info().Str("jobID", job.ID).Str("userID", viewer.UserID).Msg("Job posted")
	return s.GetJob(ctx, job.ID, viewer)
}

// GetJob returns a job with the viewer's bookmark state
func (s *savedJobServiceImpl) GetJob(ctx context.Context, jobID string, viewer domain.Viewer) (*dto.JobResponse, error) {
	job, err := s.jobRepo.GetJob(ctx, jobID)
	if err != nil {
		return nil, err
	}

	var poster *models.User
	if job.PostedByID != "" {
		poster, err = s.userRepo.GetByID(ctx, job.PostedByID)
		if err != nil && !errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, err
		}
	}

	saved := false
	if !viewer.IsZero() {
		if saved, err = s.jobRepo.IsSaved(ctx, viewer.UserID, jobID); err != nil {
			return nil, err
		}
	}

	resp := newJobResponse(job, poster, saved)
	return &resp, nil
}

// SaveJob bookmarks a job; saving an already saved job keeps the first save time
func (s *savedJobServiceImpl) SaveJob(ctx context.Context, jobID string, viewer domain.Viewer) (*dto.SavedJobResponse, error) {
	job, err := s.jobRepo.GetJob(ctx, jobID)
	if err != nil {
		return nil, err
	}

	savedAt, err := s.jobRepo.SaveJob(ctx, viewer.UserID, jobID)
	if err != nil {
		return nil, err
	}

	s.logger.Debug().Str("jobID", jobID).Str("userID", viewer.UserID).Msg("Job saved")
	return &dto.SavedJobResponse{
		Job:     newJobResponse(job, nil, true),
		SavedAt: savedAt,
	}, nil
}

// UnsaveJob removes a bookmark
func (s *savedJobServiceImpl) UnsaveJob(ctx context.Context, jobID string, viewer domain.Viewer) error {
	return s.jobRepo.UnsaveJob(ctx, viewer.UserID, jobID)
}

// ListSavedJobs returns the viewer's bookmarks, most recently saved first
func (s *savedJobServiceImpl) ListSavedJobs(ctx context.Context, viewer domain.Viewer, page, size int) (*dto.SavedJobListResponse, error) {
	offset, limit := helpers.CalculateOffsetLimit(page, size)

	rows, total, err := s.jobRepo.ListSavedJobs(ctx, viewer.UserID, offset, limit)
	if err != nil {
		return nil, err
	}

	saved := make([]dto.SavedJobResponse, 0, len(rows))
	for _, row := range rows {
		saved = append(saved, dto.SavedJobResponse{
			Job:     newJobResponse(row.Job, nil, true),
			SavedAt: row.SavedAt,
		})
	}

	return &dto.SavedJobListResponse{
		SavedJobs:      saved,
		PaginationInfo: helpers.NewPaginationInfo(total, page, limit),
	}, nil
}
