package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/maplorix/jobboard-service/internal/api/dto"
	"github.com/maplorix/jobboard-service/internal/auth"
	"github.com/maplorix/jobboard-service/internal/domain"
	"github.com/maplorix/jobboard-service/internal/repository"
	"github.com/maplorix/jobboard-service/internal/service"
	apperrors "github.com/maplorix/jobboard-service/pkg/util"
)

// JobsHandler manages posting endpoints.
type JobsHandler struct {
	service *service.JobService
}

// NewJobsHandler constructs handler.
func NewJobsHandler(jobService *service.JobService) *JobsHandler {
	return &JobsHandler{service: jobService}
}

// List GET /api/jobs. Anonymous callers only ever see active postings; the
// isActive filter is honored for authenticated users.
func (h *JobsHandler) List(c *fiber.Ctx) error {
	filter := parseJobQuery(c)
	if _, ok := auth.UserFromContext(c); !ok {
		active := true
		filter.IsActive = &active
	}
	jobs, total, err := h.service.List(c.Context(), filter)
	if err != nil {
		return err
	}
	return respondList(c, dto.NewJobListResponse(jobs), total, filter.Limit, filter.Offset)
}

// Featured GET /api/jobs/featured.
func (h *JobsHandler) Featured(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	jobs, total, err := h.service.ListFeatured(c.Context(), limit, offset)
	if err != nil {
		return err
	}
	return respondList(c, dto.NewJobListResponse(jobs), total, limit, offset)
}

// Get GET /api/jobs/:id.
func (h *JobsHandler) Get(c *fiber.Ctx) error {
	id, err := requireUUIDParam(c, "id")
	if err != nil {
		return err
	}
	job, err := h.service.Get(c.Context(), id)
	if err != nil {
		return err
	}
	return respondData(c, fiber.StatusOK, dto.NewJobResponse(job))
}

// Create POST /api/jobs.
func (h *JobsHandler) Create(c *fiber.Ctx) error {
	user, ok := auth.UserFromContext(c)
	if !ok {
		return apperrors.NewAuthError("authentication required")
	}
	var req dto.CreateJobRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	job, err := h.service.Create(c.Context(), user, req.ToInput())
	if err != nil {
		return err
	}
	return respondMessage(c, fiber.StatusCreated, "job created", dto.NewJobResponse(job))
}

// Update PUT /api/jobs/:id.
func (h *JobsHandler) Update(c *fiber.Ctx) error {
	user, ok := auth.UserFromContext(c)
	if !ok {
		return apperrors.NewAuthError("authentication required")
	}
	id, err := requireUUIDParam(c, "id")
	if err != nil {
		return err
	}
	var req dto.UpdateJobRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	job, err := h.service.Update(c.Context(), user, id, req.ToInput())
	if err != nil {
		return err
	}
	return respondMessage(c, fiber.StatusOK, "job updated", dto.NewJobResponse(job))
}

// Delete DELETE /api/jobs/:id.
func (h *JobsHandler) Delete(c *fiber.Ctx) error {
	user, ok := auth.UserFromContext(c)
	if !ok {
		return apperrors.NewAuthError("authentication required")
	}
	id, err := requireUUIDParam(c, "id")
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.Context(), user, id); err != nil {
		return err
	}
	return respondMessage(c, fiber.StatusOK, "job deleted", nil)
}

// Stats GET /api/jobs/stats.
func (h *JobsHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.service.Stats(c.Context())
	if err != nil {
		return err
	}
	return respondData(c, fiber.StatusOK, stats)
}

func parseJobQuery(c *fiber.Ctx) repository.JobFilter {
	filter := repository.JobFilter{}
	if v := c.Query("category"); v != "" {
		category := domain.JobCategory(v)
		filter.Category = &category
	}
	if v := c.Query("type"); v != "" {
		jobType := domain.JobType(v)
		filter.Type = &jobType
	}
	if v := c.Query("experience"); v != "" {
		experience := domain.ExperienceLevel(v)
		filter.Experience = &experience
	}
	filter.Location = stringQuery(c, "location")
	filter.Featured = parseBoolQuery(c, "featured")
	filter.IsActive = parseBoolQuery(c, "isActive")
	filter.SearchTerm = stringQuery(c, "search")
	filter.SortBy, filter.SortDesc = sortParams(c)
	filter.Limit, filter.Offset = pageParams(c)
	return filter
}
