package service

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/maplorix/jobboard-service/internal/domain"
	"github.com/maplorix/jobboard-service/internal/events"
	"github.com/maplorix/jobboard-service/internal/repository"
	"github.com/maplorix/jobboard-service/internal/storage"
	apperrors "github.com/maplorix/jobboard-service/pkg/util"
)

type fakeApplicationRepo struct {
	apps       map[string]*domain.Application
	emails     []domain.ApplicationEmail
	createErr  error
	jobCounter map[string]int
}

func newFakeApplicationRepo() *fakeApplicationRepo {
	return &fakeApplicationRepo{
		apps:       map[string]*domain.Application{},
		jobCounter: map[string]int{},
	}
}

func (r *fakeApplicationRepo) Create(_ context.Context, app *domain.Application) error {
	if r.createErr != nil {
		return r.createErr
	}
	app.ID = uuid.NewString()
	app.CreatedAt = time.Now()
	app.UpdatedAt = app.CreatedAt
	clone := *app
	r.apps[app.ID] = &clone
	if app.JobID != nil {
		r.jobCounter[*app.JobID]++
	}
	return nil
}

func (r *fakeApplicationRepo) Update(_ context.Context, app *domain.Application) error {
	if _, ok := r.apps[app.ID]; !ok {
		return pgx.ErrNoRows
	}
	clone := *app
	r.apps[app.ID] = &clone
	return nil
}

func (r *fakeApplicationRepo) Delete(_ context.Context, id string) (*domain.Application, error) {
	app, ok := r.apps[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	delete(r.apps, id)
	if app.JobID != nil {
		r.jobCounter[*app.JobID]--
	}
	return app, nil
}

func (r *fakeApplicationRepo) GetByID(_ context.Context, id string) (*domain.Application, error) {
	app, ok := r.apps[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *app
	return &clone, nil
}

func (r *fakeApplicationRepo) ListWithFilter(_ context.Context, _ repository.ApplicationFilter) ([]domain.Application, int64, error) {
	var out []domain.Application
	for _, app := range r.apps {
		out = append(out, *app)
	}
	return out, int64(len(out)), nil
}

func (r *fakeApplicationRepo) Stats(_ context.Context) (*repository.ApplicationStats, error) {
	return &repository.ApplicationStats{
		TotalApplications: int64(len(r.apps)),
		JobRoleStats:      map[string]int64{},
		ExperienceStats:   map[string]int64{},
	}, nil
}

func (r *fakeApplicationRepo) AddEmail(_ context.Context, email *domain.ApplicationEmail) error {
	email.ID = uuid.NewString()
	email.SentAt = time.Now()
	r.emails = append(r.emails, *email)
	return nil
}

func (r *fakeApplicationRepo) ListEmails(_ context.Context, applicationID string) ([]domain.ApplicationEmail, error) {
	var out []domain.ApplicationEmail
	for _, email := range r.emails {
		if email.ApplicationID == applicationID {
			out = append(out, email)
		}
	}
	return out, nil
}

func newApplicationFixture(t *testing.T) (*ApplicationService, *fakeApplicationRepo, *fakeJobRepo) {
	t.Helper()
	appRepo := newFakeApplicationRepo()
	jobRepo := newFakeJobRepo()
	resumes, err := storage.NewResumeStore(t.TempDir(), 5*1024*1024, zap.NewNop())
	require.NoError(t, err)
	svc := NewApplicationService(appRepo, jobRepo, resumes, events.NewInMemoryDispatcher(), zap.NewNop())
	return svc, appRepo, jobRepo
}

func validSubmission() SubmitInput {
	return SubmitInput{
		FullName:   "Asha Verma",
		Email:      "asha@example.com",
		Phone:      "+91-9000000000",
		JobRole:    "Backend Engineer",
		Experience: domain.CandidateThreeFive,
	}
}

func TestSubmit_DefaultsAndConfirmationEmail(t *testing.T) {
	svc, appRepo, _ := newApplicationFixture(t)

	app, err := svc.Submit(context.Background(), validSubmission())
	require.NoError(t, err)

	assert.Equal(t, domain.StatusSubmitted, app.Status)
	assert.Equal(t, domain.PriorityMedium, app.Priority)
	require.Len(t, appRepo.emails, 1)
	assert.Equal(t, domain.EmailConfirmation, appRepo.emails[0].Type)
}

func TestSubmit_RejectsUnknownExperience(t *testing.T) {
	svc, _, _ := newApplicationFixture(t)

	input := validSubmission()
	input.Experience = "25+"
	_, err := svc.Submit(context.Background(), input)
	require.Error(t, err)
	assert.Equal(t, apperrors.KindValidation, apperrors.ToDomainError(err).Kind)
}

func TestSubmit_InactiveJobRejected(t *testing.T) {
	svc, _, jobRepo := newApplicationFixture(t)

	job := &domain.Job{
		Title:               "Closed Role",
		IsActive:            false,
		ApplicationDeadline: time.Now().Add(24 * time.Hour),
	}
	require.NoError(t, jobRepo.Create(context.Background(), job))

	input := validSubmission()
	input.JobID = &job.ID
	_, err := svc.Submit(context.Background(), input)
	require.Error(t, err)
	assert.Equal(t, apperrors.KindValidation, apperrors.ToDomainError(err).Kind)
}

func TestSubmit_ExpiredDeadlineRejected(t *testing.T) {
	svc, _, jobRepo := newApplicationFixture(t)

	job := &domain.Job{
		Title:               "Expired Role",
		IsActive:            true,
		ApplicationDeadline: time.Now().Add(-time.Hour),
	}
	require.NoError(t, jobRepo.Create(context.Background(), job))

	input := validSubmission()
	input.JobID = &job.ID
	_, err := svc.Submit(context.Background(), input)
	assert.Error(t, err)
}

func TestSubmit_ResumeCleanedUpOnInsertFailure(t *testing.T) {
	svc, appRepo, _ := newApplicationFixture(t)
	appRepo.createErr = errors.New("insert failed")

	input := validSubmission()
	input.Resume = &ResumeUpload{
		OriginalName: "resume.pdf",
		MimeType:     "application/pdf",
		Content:      []byte("%PDF-1.4"),
	}
	_, err := svc.Submit(context.Background(), input)
	require.Error(t, err)

	// repo failure must not leave the staged file behind
	dir := svcUploadsDir(t, svc)
	entries, readErr := os.ReadDir(dir)
	require.NoError(t, readErr)
	assert.Empty(t, entries)
}

// svcUploadsDir saves a resume through the service's store to discover its
// directory, then removes the scratch file.
func svcUploadsDir(t *testing.T, svc *ApplicationService) string {
	t.Helper()
	info, err := svc.resumes.Save("scratch.pdf", "application/pdf", []byte("x"))
	require.NoError(t, err)
	svc.resumes.Remove(info)
	return dirOf(info.Path)
}

func dirOf(path string) string {
	for i := len(path) - 1; i >= 0; i-- {
		if path[i] == '/' {
			return path[:i]
		}
	}
	return "."
}

func TestUpdateStatus_ValidTransitionStampsReviewer(t *testing.T) {
	svc, appRepo, _ := newApplicationFixture(t)
	reviewer := &domain.User{ID: uuid.NewString(), Role: domain.RoleHR}

	app, err := svc.Submit(context.Background(), validSubmission())
	require.NoError(t, err)

	updated, err := svc.UpdateStatus(context.Background(), reviewer, app.ID, StatusUpdateInput{
		Status:      domain.StatusUnderReview,
		ReviewNotes: "promising profile",
	})
	require.NoError(t, err)

	assert.Equal(t, domain.StatusUnderReview, updated.Status)
	require.NotNil(t, updated.ReviewedBy)
	assert.Equal(t, reviewer.ID, *updated.ReviewedBy)
	assert.NotNil(t, updated.ReviewedAt)

	// confirmation + review-update entries
	require.Len(t, appRepo.emails, 2)
	assert.Equal(t, domain.EmailReviewUpdate, appRepo.emails[1].Type)
}

func TestUpdateStatus_IllegalTransitionRejected(t *testing.T) {
	svc, _, _ := newApplicationFixture(t)
	reviewer := &domain.User{ID: uuid.NewString(), Role: domain.RoleHR}

	app, err := svc.Submit(context.Background(), validSubmission())
	require.NoError(t, err)

	_, err = svc.UpdateStatus(context.Background(), reviewer, app.ID, StatusUpdateInput{
		Status: domain.StatusSelected,
	})
	require.Error(t, err)
	assert.Equal(t, apperrors.KindValidation, apperrors.ToDomainError(err).Kind)
}

func TestUpdateStatus_TerminalStateLocked(t *testing.T) {
	svc, _, _ := newApplicationFixture(t)
	reviewer := &domain.User{ID: uuid.NewString(), Role: domain.RoleHR}

	app, err := svc.Submit(context.Background(), validSubmission())
	require.NoError(t, err)

	_, err = svc.UpdateStatus(context.Background(), reviewer, app.ID, StatusUpdateInput{Status: domain.StatusRejected})
	require.NoError(t, err)

	_, err = svc.UpdateStatus(context.Background(), reviewer, app.ID, StatusUpdateInput{Status: domain.StatusUnderReview})
	assert.Error(t, err)
}

func TestUpdateStatus_RequiresPermission(t *testing.T) {
	svc, _, _ := newApplicationFixture(t)

	app, err := svc.Submit(context.Background(), validSubmission())
	require.NoError(t, err)

	_, err = svc.UpdateStatus(context.Background(), nil, app.ID, StatusUpdateInput{Status: domain.StatusUnderReview})
	require.Error(t, err)
	assert.Equal(t, apperrors.KindAuth, apperrors.ToDomainError(err).Kind)
}

func TestDelete_RemovesResumeFile(t *testing.T) {
	svc, _, _ := newApplicationFixture(t)
	admin := &domain.User{ID: uuid.NewString(), Role: domain.RoleAdmin}

	input := validSubmission()
	input.Resume = &ResumeUpload{
		OriginalName: "resume.pdf",
		MimeType:     "application/pdf",
		Content:      []byte("%PDF-1.4"),
	}
	app, err := svc.Submit(context.Background(), input)
	require.NoError(t, err)
	require.NotNil(t, app.Resume)

	_, statErr := os.Stat(app.Resume.Path)
	require.NoError(t, statErr)

	require.NoError(t, svc.Delete(context.Background(), admin, app.ID))

	_, statErr = os.Stat(app.Resume.Path)
	assert.True(t, os.IsNotExist(statErr))
}

func TestDelete_NonAdminForbidden(t *testing.T) {
	svc, _, _ := newApplicationFixture(t)
	hr := &domain.User{ID: uuid.NewString(), Role: domain.RoleHR}

	app, err := svc.Submit(context.Background(), validSubmission())
	require.NoError(t, err)

	err = svc.Delete(context.Background(), hr, app.ID)
	require.Error(t, err)
	assert.Equal(t, apperrors.KindForbidden, apperrors.ToDomainError(err).Kind)
}
