package seed

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	appModels "github.com/yigit/atcampus/internal/app/models"
	"github.com/yigit/atcampus/internal/pkg/apperrors"
	"golang.org/x/crypto/bcrypt"
)

type memUsers struct {
	byEmail map[string]*appModels.User
	failGet error
}

func (m *memUsers) GetByEmail(_ context.Context, email string) (*appModels.User, error) {
	if m.failGet != nil {
		return nil, m.failGet
	}
	u, ok := m.byEmail[email]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	return u, nil
}

func (m *memUsers) Create(_ context.Context, user *appModels.User) error {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	m.byEmail[user.Email] = user
	return nil
}

type memJobs struct {
	titles map[string]bool
}

func (m *memJobs) CreateJob(_ context.Context, job *appModels.Job) error {
	key := job.Title + "|" + job.Company
	if m.titles[key] {
		return apperrors.NewConflictError("duplicate")
	}
	m.titles[key] = true
	return nil
}

func TestCreateDefaultDataIsIdempotent(t *testing.T) {
	users := &memUsers{byEmail: map[string]*appModels.User{}}
	jobs := &memJobs{titles: map[string]bool{}}
	opts := Options{AdminEmail: " Admin@AtCampus.app ", AdminPassword: "ChangeMe123", DemoJobs: true}
	ctx := context.Background()

	require.NoError(t, CreateDefaultData(ctx, users, jobs, opts, zerolog.Nop()))
	require.NoError(t, CreateDefaultData(ctx, users, jobs, opts, zerolog.Nop()))

	require.Len(t, users.byEmail, 1)
	admin := users.byEmail["admin@atcampus.app"]
	require.NotNil(t, admin)
	assert.Equal(t, appModels.RoleAdmin, admin.RoleType)
	assert.Equal(t, appModels.AccountApproved, admin.AccountStatus)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte("ChangeMe123")))
	assert.Len(t, jobs.titles, len(demoJobs))
}

func TestCreateDefaultDataSkipsAdminWithoutCredentials(t *testing.T) {
	users := &memUsers{byEmail: map[string]*appModels.User{}}
	jobs := &memJobs{titles: map[string]bool{}}

	require.NoError(t, CreateDefaultData(context.Background(), users, jobs, Options{}, zerolog.Nop()))
	assert.Empty(t, users.byEmail)
	assert.Empty(t, jobs.titles)
}

func TestCreateDefaultDataJoinsErrors(t *testing.T) {
	boom := errors.New("connection refused")
	users := &memUsers{byEmail: map[string]*appModels.User{}, failGet: boom}
	jobs := &memJobs{titles: map[string]bool{}}
	opts := Options{AdminEmail: "admin@atcampus.app", AdminPassword: "pw", DemoJobs: true}

	err := CreateDefaultData(context.Background(), users, jobs, opts, zerolog.Nop())
	assert.ErrorIs(t, err, boom)
	assert.Len(t, jobs.titles, len(demoJobs), "demo jobs are still created")
}
