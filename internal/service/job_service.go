package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/maplorix/jobboard-service/internal/auth"
	"github.com/maplorix/jobboard-service/internal/domain"
	"github.com/maplorix/jobboard-service/internal/events"
	"github.com/maplorix/jobboard-service/internal/repository"
	apperrors "github.com/maplorix/jobboard-service/pkg/util"
)

const (
	jobStatsCacheKey = "stats:jobs"
	jobStatsCacheTTL = 5 * time.Minute
)

// JobService owns posting lifecycle rules.
type JobService struct {
	jobs       repository.JobRepository
	cache      *redis.Client
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewJobService builds the service. cache may be nil when Redis is disabled.
func NewJobService(jobs repository.JobRepository, cache *redis.Client, dispatcher events.Dispatcher, logger *zap.Logger) *JobService {
	return &JobService{jobs: jobs, cache: cache, dispatcher: dispatcher, logger: logger}
}

// JobInput carries posting fields for create and update.
type JobInput struct {
	Title               string
	Company             string
	Location            string
	Type                domain.JobType
	Category            domain.JobCategory
	Experience          domain.ExperienceLevel
	Description         string
	Requirements        string
	SalaryMin           *int64
	SalaryMax           *int64
	SalaryCurrency      string
	Featured            bool
	IsActive            *bool
	ApplicationDeadline *time.Time
	Tags                []string
}

// Create stores a new posting attributed to the acting user. Postings whose
// deadline already passed are stored inactive regardless of the request.
func (s *JobService) Create(ctx context.Context, actor *domain.User, input JobInput) (*domain.Job, error) {
	if err := auth.Authorize(actor, auth.PermJobCreate); err != nil {
		return nil, err
	}
	if input.SalaryMin != nil && input.SalaryMax != nil && *input.SalaryMin > *input.SalaryMax {
		return nil, apperrors.NewValidationError("salary minimum cannot exceed maximum", nil)
	}

	now := time.Now()
	deadline := now.AddDate(0, 0, domain.DefaultDeadlineDays)
	if input.ApplicationDeadline != nil {
		deadline = *input.ApplicationDeadline
	}
	active := true
	if input.IsActive != nil {
		active = *input.IsActive
	}
	if deadline.Before(now) {
		active = false
	}

	currency := input.SalaryCurrency
	if currency == "" {
		currency = "INR"
	}

	job := &domain.Job{
		Title:        input.Title,
		Company:      input.Company,
		Location:     input.Location,
		Type:         input.Type,
		Category:     input.Category,
		Experience:   input.Experience,
		Description:  input.Description,
		Requirements: input.Requirements,
		Salary: domain.SalaryRange{
			Min:      input.SalaryMin,
			Max:      input.SalaryMax,
			Currency: currency,
		},
		IsActive:            active,
		Featured:            input.Featured,
		PostedBy:            actor.ID,
		ApplicationDeadline: deadline,
		Tags:                input.Tags,
	}
	if err := s.jobs.Create(ctx, job); err != nil {
		return nil, apperrors.ToDomainError(err)
	}

	s.invalidateStats(ctx)
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventJobCreated,
		ActorID:   &actor.ID,
		Timestamp: time.Now(),
		Payload: events.JobCreatedPayload{
			JobID:    job.ID,
			Title:    job.Title,
			Company:  job.Company,
			Category: job.Category,
			Featured: job.Featured,
		},
	})
	return job, nil
}

// Update applies a partial edit. Only the posting owner or a user holding both
// update and delete permissions may modify someone else's posting.
func (s *JobService) Update(ctx context.Context, actor *domain.User, id string, input JobInput) (*domain.Job, error) {
	if err := auth.Authorize(actor, auth.PermJobUpdate); err != nil {
		return nil, err
	}
	job, err := s.jobs.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.ToDomainError(err)
	}
	if !auth.CanModifyJob(actor, job) {
		return nil, apperrors.NewForbidden("you can only modify your own job postings")
	}
	if input.SalaryMin != nil && input.SalaryMax != nil && *input.SalaryMin > *input.SalaryMax {
		return nil, apperrors.NewValidationError("salary minimum cannot exceed maximum", nil)
	}

	if input.Title != "" {
		job.Title = input.Title
	}
	if input.Company != "" {
		job.Company = input.Company
	}
	if input.Location != "" {
		job.Location = input.Location
	}
	if input.Type != "" {
		job.Type = input.Type
	}
	if input.Category != "" {
		job.Category = input.Category
	}
	if input.Experience != "" {
		job.Experience = input.Experience
	}
	if input.Description != "" {
		job.Description = input.Description
	}
	if input.Requirements != "" {
		job.Requirements = input.Requirements
	}
	if input.SalaryMin != nil {
		job.Salary.Min = input.SalaryMin
	}
	if input.SalaryMax != nil {
		job.Salary.Max = input.SalaryMax
	}
	if input.SalaryCurrency != "" {
		job.Salary.Currency = input.SalaryCurrency
	}
	if input.Tags != nil {
		job.Tags = input.Tags
	}
	if input.ApplicationDeadline != nil {
		job.ApplicationDeadline = *input.ApplicationDeadline
	}
	if input.IsActive != nil {
		job.IsActive = *input.IsActive
	}
	enforceDeadline(job)

	if err := s.jobs.Update(ctx, job); err != nil {
		return nil, apperrors.ToDomainError(err)
	}
	s.invalidateStats(ctx)
	return job, nil
}

// Delete removes a posting. Existing applications keep their rows; the FK
// clears job_id so candidate data and resumes survive the posting.
func (s *JobService) Delete(ctx context.Context, actor *domain.User, id string) error {
	if err := auth.Authorize(actor, auth.PermJobDelete); err != nil {
		return err
	}
	job, err := s.jobs.GetByID(ctx, id)
	if err != nil {
		return apperrors.ToDomainError(err)
	}
	if !auth.CanModifyJob(actor, job) {
		return apperrors.NewForbidden("you can only delete your own job postings")
	}
	if err := s.jobs.Delete(ctx, id); err != nil {
		return apperrors.ToDomainError(err)
	}
	s.invalidateStats(ctx)
	return nil
}

// Get fetches a single posting.
func (s *JobService) Get(ctx context.Context, id string) (*domain.Job, error) {
	job, err := s.jobs.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.ToDomainError(err)
	}
	return job, nil
}

// List returns postings by filter plus the total for pagination.
func (s *JobService) List(ctx context.Context, filter repository.JobFilter) ([]domain.Job, int64, error) {
	jobs, total, err := s.jobs.ListWithFilter(ctx, filter)
	if err != nil {
		return nil, 0, apperrors.ToDomainError(err)
	}
	return jobs, total, nil
}

// ListFeatured returns only postings that are featured and currently active.
func (s *JobService) ListFeatured(ctx context.Context, limit, offset int) ([]domain.Job, int64, error) {
	featured, active := true, true
	return s.List(ctx, repository.JobFilter{
		Featured: &featured,
		IsActive: &active,
		SortBy:   "createdAt",
		SortDesc: true,
		Limit:    limit,
		Offset:   offset,
	})
}

// enforceDeadline runs before every save so a posting whose deadline already
// passed can never be persisted active, whatever the caller asked for.
func enforceDeadline(job *domain.Job) {
	if job.Expired(time.Now()) {
		job.IsActive = false
	}
}

// SetFeatured toggles the featured flag, admin surface.
func (s *JobService) SetFeatured(ctx context.Context, id string, featured bool) (*domain.Job, error) {
	job, err := s.jobs.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.ToDomainError(err)
	}
	job.Featured = featured
	enforceDeadline(job)
	if err := s.jobs.Update(ctx, job); err != nil {
		return nil, apperrors.ToDomainError(err)
	}
	s.invalidateStats(ctx)
	return job, nil
}

// SetActive toggles the is_active flag, admin surface.
func (s *JobService) SetActive(ctx context.Context, id string, active bool) (*domain.Job, error) {
	job, err := s.jobs.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.ToDomainError(err)
	}
	job.IsActive = active
	enforceDeadline(job)
	if err := s.jobs.Update(ctx, job); err != nil {
		return nil, apperrors.ToDomainError(err)
	}
	s.invalidateStats(ctx)
	return job, nil
}

// Stats returns posting counters, served from a short-lived Redis cache when
// available.
func (s *JobService) Stats(ctx context.Context) (*repository.JobStats, error) {
	if s.cache != nil {
		if raw, err := s.cache.Get(ctx, jobStatsCacheKey).Bytes(); err == nil {
			var cached repository.JobStats
			if err := json.Unmarshal(raw, &cached); err == nil {
				return &cached, nil
			}
		}
	}

	stats, err := s.jobs.Stats(ctx)
	if err != nil {
		return nil, apperrors.ToDomainError(err)
	}

	if s.cache != nil {
		if raw, err := json.Marshal(stats); err == nil {
			if err := s.cache.Set(ctx, jobStatsCacheKey, raw, jobStatsCacheTTL).Err(); err != nil {
				s.logger.Warn("failed to cache job stats", zap.Error(err))
			}
		}
	}
	return stats, nil
}

func (s *JobService) invalidateStats(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, jobStatsCacheKey).Err(); err != nil {
		s.logger.Warn("failed to invalidate job stats cache", zap.Error(err))
	}
}
