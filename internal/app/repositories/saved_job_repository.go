package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/atcampus/internal/app/models"
	"github.com/yigit/atcampus/internal/pkg/apperrors"
	"github.com/yigit/atcampus/internal/pkg/dberrors"
	"github.com/yigit/atcampus/internal/pkg/logger"
)

var jobColumns = []string{
	"j.id", "j.title", "j.company", "j.location", "j.type", "j.description", "COALESCE(j.posted_by, '')", "j.created_at",
}

// SavedJobRepository handles the job board and user bookmarks
type SavedJobRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewSavedJobRepository creates a new SavedJobRepository
func NewSavedJobRepository(db *pgxpool.Pool) *SavedJobRepository {
	return &SavedJobRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func jobDest(j *models.Job) []any {
	return []any{&j.ID, &j.Title, &j.Company, &j.Location, &j.Type, &j.Description, &j.PostedByID, &j.CreatedAt}
}

// CreateJob inserts a job posting
func (r *SavedJobRepository) CreateJob(ctx context.Context, job *models.Job) error {
	job.CreatedAt = time.Now().UTC()

	var postedBy *string
	if job.PostedByID != "" {
		postedBy = &job.PostedByID
	}

	sql, args, err := r.sb.Insert("jobs").
		Columns("id", "title", "company", "location", "type", "description", "posted_by", "created_at").
		Values(job.ID, job.Title, job.Company, job.Location, job.Type, job.Description, postedBy, job.CreatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create job query: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		if dberrors.IsDuplicateConstraintError(err, "jobs_title_company_key") {
			return apperrors.NewConflictError("a job with this title is already posted for this company")
		}
		logger.Error().Err(err).Str("title", job.Title).Msg("Error creating job")
		return fmt.Errorf("error creating job: %w", err)
	}
	return nil
}

// GetJob retrieves a job with its poster
func (r *SavedJobRepository) GetJob(ctx context.Context, id string) (*models.Job, error) {
	sql, args, err := r.sb.Select(jobColumns...).From("jobs j").Where(squirrel.Eq{"j.id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get job query: %w", err)
	}

	job := &models.Job{}
	if err := r.db.QueryRow(ctx, sql, args...).Scan(jobDest(job)...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrJobNotFound
		}
		return nil, fmt.Errorf("error retrieving job: %w", err)
	}
	return job, nil
}

// SaveJob bookmarks a job. Saving twice keeps the original save time.
func (r *SavedJobRepository) SaveJob(ctx context.Context, userID, jobID string) (time.Time, error) {
	sql, args, err := r.sb.Insert("saved_jobs").
		Columns("user_id", "job_id", "saved_at").
		Values(userID, jobID, time.Now().UTC()).
		Suffix("ON CONFLICT (user_id, job_id) DO UPDATE SET saved_at = saved_jobs.saved_at RETURNING saved_at").
		ToSql()
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to build save job query: %w", err)
	}

	var savedAt time.Time
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&savedAt); err != nil {
		if dberrors.IsForeignKeyError(err, "saved_jobs_job_id_fkey") {
			return time.Time{}, apperrors.ErrJobNotFound
		}
		logger.Error().Err(err).Str("userID", userID).Str("jobID", jobID).Msg("Error saving job")
		return time.Time{}, fmt.Errorf("error saving job: %w", err)
	}
	return savedAt, nil
}

// UnsaveJob removes a bookmark; removing a missing bookmark is not an error
func (r *SavedJobRepository) UnsaveJob(ctx context.Context, userID, jobID string) error {
	sql, args, err := r.sb.Delete("saved_jobs").Where(squirrel.Eq{"user_id": userID, "job_id": jobID}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build unsave job query: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("error removing saved job: %w", err)
	}
	return nil
}

// IsSaved reports whether the user bookmarked the job
func (r *SavedJobRepository) IsSaved(ctx context.Context, userID, jobID string) (bool, error) {
	sub, args, err := r.sb.Select("1").From("saved_jobs").Where(squirrel.Eq{"user_id": userID, "job_id": jobID}).ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build is saved query: %w", err)
	}

	var saved bool
	if err := r.db.QueryRow(ctx, "SELECT EXISTS("+sub+")", args...).Scan(&saved); err != nil {
		return false, fmt.Errorf("error checking saved job: %w", err)
	}
	return saved, nil
}

// ListSavedJobs pages through a user's bookmarks, most recently saved first
func (r *SavedJobRepository) ListSavedJobs(ctx context.Context, userID string, offset uint64, limit int) ([]models.SavedJob, int64, error) {
	countSQL, countArgs, err := r.sb.Select("COUNT(*)").From("saved_jobs").Where(squirrel.Eq{"user_id": userID}).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build count saved jobs query: %w", err)
	}
	var total int64
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting saved jobs: %w", err)
	}

	sql, args, err := r.sb.Select(append([]string{"s.user_id", "s.saved_at"}, jobColumns...)...).
		From("saved_jobs s").
		Join("jobs j ON j.id = s.job_id").
		Where(squirrel.Eq{"s.user_id": userID}).
		OrderBy("s.saved_at DESC", "j.id ASC").
		Offset(offset).
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build list saved jobs query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing saved jobs: %w", err)
	}
	defer rows.Close()

	saved := make([]models.SavedJob, 0, limit)
	for rows.Next() {
		s := models.SavedJob{Job: &models.Job{}}
		if err := rows.Scan(append([]any{&s.UserID, &s.SavedAt}, jobDest(s.Job)...)...); err != nil {
			return nil, 0, fmt.Errorf("error scanning saved job: %w", err)
		}
		s.JobID = s.Job.ID
		saved = append(saved, s)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating saved jobs: %w", err)
	}

	return saved, total, nil
}
