package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/maplorix/jobboard-service/internal/auth"
	"github.com/maplorix/jobboard-service/internal/domain"
	"github.com/maplorix/jobboard-service/internal/events"
	"github.com/maplorix/jobboard-service/internal/repository"
	"github.com/maplorix/jobboard-service/internal/service"
)

type stubJobRepo struct {
	jobs []domain.Job
}

func (r *stubJobRepo) Create(_ context.Context, job *domain.Job) error {
	job.ID = uuid.NewString()
	r.jobs = append(r.jobs, *job)
	return nil
}

func (r *stubJobRepo) Update(_ context.Context, job *domain.Job) error {
	for i := range r.jobs {
		if r.jobs[i].ID == job.ID {
			r.jobs[i] = *job
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (r *stubJobRepo) Delete(_ context.Context, id string) error { return pgx.ErrNoRows }

func (r *stubJobRepo) GetByID(_ context.Context, id string) (*domain.Job, error) {
	for i := range r.jobs {
		if r.jobs[i].ID == id {
			clone := r.jobs[i]
			return &clone, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *stubJobRepo) ListWithFilter(_ context.Context, filter repository.JobFilter) ([]domain.Job, int64, error) {
	var out []domain.Job
	for _, job := range r.jobs {
		if filter.IsActive != nil && job.IsActive != *filter.IsActive {
			continue
		}
		out = append(out, job)
	}
	return out, int64(len(out)), nil
}

func (r *stubJobRepo) Stats(_ context.Context) (*repository.JobStats, error) {
	return &repository.JobStats{TotalJobs: int64(len(r.jobs))}, nil
}

func newJobsTestApp(repo repository.JobRepository, user *domain.User) *fiber.App {
	app := fiber.New()
	if user != nil {
		app.Use(func(c *fiber.Ctx) error {
			auth.StoreUser(c, user)
			return c.Next()
		})
	}
	handler := NewJobsHandler(service.NewJobService(repo, nil, events.NewInMemoryDispatcher(), zap.NewNop()))
	app.Get("/api/jobs", handler.List)
	return app
}

func listedJobs(t *testing.T, app *fiber.App, target string) []map[string]any {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest("GET", target, nil))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var body struct {
		Data struct {
			Items []map[string]any `json:"items"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(raw, &body))
	return body.Data.Items
}

func postingFixture(title string, active bool) domain.Job {
	return domain.Job{
		ID:                  uuid.NewString(),
		Title:               title,
		Company:             "Maplorix",
		Location:            "Remote",
		Type:                domain.JobTypeFullTime,
		Category:            domain.CategoryTechnology,
		Experience:          domain.ExperienceMid,
		IsActive:            active,
		PostedBy:            uuid.NewString(),
		ApplicationDeadline: time.Now().AddDate(0, 0, 14),
	}
}

func TestJobsList_AnonymousOnlySeesActive(t *testing.T) {
	repo := &stubJobRepo{jobs: []domain.Job{
		postingFixture("Open Role", true),
		postingFixture("Closed Role", false),
	}}
	app := newJobsTestApp(repo, nil)

	items := listedJobs(t, app, "/api/jobs")
	require.Len(t, items, 1)
	assert.Equal(t, "Open Role", items[0]["title"])

	// explicit isActive=false must not expose closed postings to anonymous callers
	items = listedJobs(t, app, "/api/jobs?isActive=false")
	require.Len(t, items, 1)
	assert.Equal(t, "Open Role", items[0]["title"])
}

func TestJobsList_AuthenticatedMayFilterInactive(t *testing.T) {
	repo := &stubJobRepo{jobs: []domain.Job{
		postingFixture("Open Role", true),
		postingFixture("Closed Role", false),
	}}
	hr := &domain.User{ID: uuid.NewString(), Role: domain.RoleHR, IsActive: true}
	app := newJobsTestApp(repo, hr)

	items := listedJobs(t, app, "/api/jobs?isActive=false")
	require.Len(t, items, 1)
	assert.Equal(t, "Closed Role", items[0]["title"])

	items = listedJobs(t, app, "/api/jobs")
	require.Len(t, items, 2)
}
