package seed

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	appModels "github.com/yigit/atcampus/internal/app/models"
	"github.com/yigit/atcampus/internal/pkg/apperrors"
	"golang.org/x/crypto/bcrypt"
)

// UserSeeder is the part of the user repository the seed needs
type UserSeeder interface {
	GetByEmail(ctx context.Context, email string) (*appModels.User, error)
	Create(ctx context.Context, user *appModels.User) error
}

// JobSeeder is the part of the job repository the seed needs
type JobSeeder interface {
	CreateJob(ctx context.Context, job *appModels.Job) error
}

// Options selects what default data is created
type Options struct {
	AdminEmail    string
	AdminPassword string
	DemoJobs      bool
}

var demoJobs = []appModels.Job{
	{Title: "Research Assistant, NLP Lab", Company: "Campus NLP Lab", Location: "Istanbul", Type: appModels.JobResearch,
		Description: "Annotate corpora, run experiments and co-author workshop papers."},
	{Title: "Teaching Assistant, Algorithms", Company: "Computer Engineering", Location: "On campus", Type: appModels.JobPartTime,
		Description: "Hold weekly recitations and grade problem sets."},
	{Title: "Summer Intern, Data Platform", Company: "AtCampus", Location: "Remote", Type: appModels.JobInternship,
		Description: "Build ingestion pipelines for research datasets."},
}

// CreateDefaultData creates the admin account and demo jobs if they don't exist.
// Every step runs; failures are joined into the returned error.
func CreateDefaultData(ctx context.Context, users UserSeeder, jobs JobSeeder, opts Options, lgr zerolog.Logger) error {
	lgr.Info().Msg("Checking/Creating default data (admin account, demo jobs)...")
	var finalErr error

	adminID, err := ensureAdmin(ctx, users, opts, lgr)
	if err != nil {
		lgr.Error().Err(err).Msg("Error creating admin account")
		finalErr = errors.Join(finalErr, err)
	}

	if opts.DemoJobs {
		for _, tmpl := range demoJobs {
			job := tmpl
			job.ID = uuid.NewString()
			job.PostedByID = adminID

			err := jobs.CreateJob(ctx, &job)
			switch {
			case err == nil:
				lgr.Debug().Str("title", job.Title).Msg("Demo job created")
			case errors.Is(err, apperrors.ErrConflict):
				// already seeded
			default:
				lgr.Error().Err(err).Str("title", job.Title).Msg("Error creating demo job")
				finalErr = errors.Join(finalErr, err)
			}
		}
	}

	lgr.Info().Msg("Default data check complete.")
	return finalErr
}

func ensureAdmin(ctx context.Context, users UserSeeder, opts Options, lgr zerolog.Logger) (string, error) {
	email := strings.ToLower(strings.TrimSpace(opts.AdminEmail))
	if email == "" || opts.AdminPassword == "" {
		lgr.Warn().Msg("No admin credentials configured, skipping admin account")
		return "", nil
	}

	existing, err := users.GetByEmail(ctx, email)
	if err == nil {
		return existing.ID, nil
	}
	if !errors.Is(err, apperrors.ErrUserNotFound) {
		return "", fmt.Errorf("failed to look up admin account: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(opts.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash admin password: %w", err)
	}

	admin := &appModels.User{
		Email:           email,
		Password:        string(hash),
		Name:            "AtCampus Admin",
		Username:        "admin",
		DisplayUsername: "admin",
		RoleType:        appModels.RoleAdmin,
		AccountStatus:   appModels.AccountApproved,
	}
	if err := users.Create(ctx, admin); err != nil {
		return "", fmt.Errorf("failed to create admin account: %w", err)
	}

	lgr.Info().Str("email", email).Msg("Admin account created")
	return admin.ID, nil
}
