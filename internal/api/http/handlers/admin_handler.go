package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/maplorix/jobboard-service/internal/api/dto"
	"github.com/maplorix/jobboard-service/internal/auth"
	"github.com/maplorix/jobboard-service/internal/service"
	apperrors "github.com/maplorix/jobboard-service/pkg/util"
)

// AdminHandler manages the admin-only surface. Routes are registered behind
// RequireAdmin, so handlers assume an admin actor.
type AdminHandler struct {
	jobs         *service.JobService
	applications *service.ApplicationService
}

// NewAdminHandler constructs handler.
func NewAdminHandler(jobService *service.JobService, applicationService *service.ApplicationService) *AdminHandler {
	return &AdminHandler{jobs: jobService, applications: applicationService}
}

// ListJobs GET /api/admin/jobs. Unlike the public listing, inactive postings
// are included by default.
func (h *AdminHandler) ListJobs(c *fiber.Ctx) error {
	filter := parseJobQuery(c)
	jobs, total, err := h.jobs.List(c.Context(), filter)
	if err != nil {
		return err
	}
	return respondList(c, dto.NewJobListResponse(jobs), total, filter.Limit, filter.Offset)
}

// UpdateJob PUT /api/admin/jobs/:id.
func (h *AdminHandler) UpdateJob(c *fiber.Ctx) error {
	user, _ := auth.UserFromContext(c)
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
	job, err := h.jobs.Update(c.Context(), user, id, req.ToInput())
	if err != nil {
		return err
	}
	return respondMessage(c, fiber.StatusOK, "job updated", dto.NewJobResponse(job))
}

// DeleteJob DELETE /api/admin/jobs/:id.
func (h *AdminHandler) DeleteJob(c *fiber.Ctx) error {
	user, _ := auth.UserFromContext(c)
	id, err := requireUUIDParam(c, "id")
	if err != nil {
		return err
	}
	if err := h.jobs.Delete(c.Context(), user, id); err != nil {
		return err
	}
	return respondMessage(c, fiber.StatusOK, "job deleted", nil)
}

// ToggleFeatured POST /api/admin/jobs/:id/toggle-featured.
func (h *AdminHandler) ToggleFeatured(c *fiber.Ctx) error {
	id, err := requireUUIDParam(c, "id")
	if err != nil {
		return err
	}
	job, err := h.jobs.Get(c.Context(), id)
	if err != nil {
		return err
	}
	updated, err := h.jobs.SetFeatured(c.Context(), id, !job.Featured)
	if err != nil {
		return err
	}
	return respondMessage(c, fiber.StatusOK, "featured flag toggled", dto.NewJobResponse(updated))
}

// ToggleActive POST /api/admin/jobs/:id/toggle-active.
func (h *AdminHandler) ToggleActive(c *fiber.Ctx) error {
	id, err := requireUUIDParam(c, "id")
	if err != nil {
		return err
	}
	job, err := h.jobs.Get(c.Context(), id)
	if err != nil {
		return err
	}
	updated, err := h.jobs.SetActive(c.Context(), id, !job.IsActive)
	if err != nil {
		return err
	}
	return respondMessage(c, fiber.StatusOK, "active flag toggled", dto.NewJobResponse(updated))
}

// JobStatistics GET /api/admin/jobs/statistics.
func (h *AdminHandler) JobStatistics(c *fiber.Ctx) error {
	stats, err := h.jobs.Stats(c.Context())
	if err != nil {
		return err
	}
	return respondData(c, fiber.StatusOK, stats)
}

// BulkJobRequest names the operation applied to a set of posting ids.
type BulkJobRequest struct {
	Operation string   `json:"operation" validate:"required,oneof=delete activate deactivate feature unfeature"`
	JobIDs    []string `json:"jobIds" validate:"required,min=1,max=100,dive,uuid4"`
}

// BulkJobs POST /api/admin/jobs/bulk. Each id is processed independently;
// failures are reported per id rather than aborting the batch.
func (h *AdminHandler) BulkJobs(c *fiber.Ctx) error {
	user, _ := auth.UserFromContext(c)
	var req BulkJobRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	succeeded := make([]string, 0, len(req.JobIDs))
	failed := map[string]string{}
	for _, id := range req.JobIDs {
		var err error
		switch req.Operation {
		case "delete":
			err = h.jobs.Delete(c.Context(), user, id)
		case "activate":
			_, err = h.jobs.SetActive(c.Context(), id, true)
		case "deactivate":
			_, err = h.jobs.SetActive(c.Context(), id, false)
		case "feature":
			_, err = h.jobs.SetFeatured(c.Context(), id, true)
		case "unfeature":
			_, err = h.jobs.SetFeatured(c.Context(), id, false)
		}
		if err != nil {
			failed[id] = apperrors.ToDomainError(err).Message
			continue
		}
		succeeded = append(succeeded, id)
	}
	return respondData(c, fiber.StatusOK, fiber.Map{
		"operation": req.Operation,
		"succeeded": succeeded,
		"failed":    failed,
	})
}

// ListApplications GET /api/admin/applications.
func (h *AdminHandler) ListApplications(c *fiber.Ctx) error {
	user, _ := auth.UserFromContext(c)
	filter := parseApplicationQuery(c)
	apps, total, err := h.applications.List(c.Context(), user, filter)
	if err != nil {
		return err
	}
	return respondList(c, dto.NewApplicationListResponse(apps), total, filter.Limit, filter.Offset)
}

// UpdateApplicationStatus PUT /api/admin/applications/:id/status.
func (h *AdminHandler) UpdateApplicationStatus(c *fiber.Ctx) error {
	user, _ := auth.UserFromContext(c)
	id, err := requireUUIDParam(c, "id")
	if err != nil {
		return err
	}
	var req dto.UpdateApplicationStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}
	app, err := h.applications.UpdateStatus(c.Context(), user, id, req.ToInput())
	if err != nil {
		return err
	}
	return respondMessage(c, fiber.StatusOK, "application status updated", dto.NewApplicationResponse(app))
}

// DeleteApplication DELETE /api/admin/applications/:id.
func (h *AdminHandler) DeleteApplication(c *fiber.Ctx) error {
	user, _ := auth.UserFromContext(c)
	id, err := requireUUIDParam(c, "id")
	if err != nil {
		return err
	}
	if err := h.applications.Delete(c.Context(), user, id); err != nil {
		return err
	}
	return respondMessage(c, fiber.StatusOK, "application deleted", nil)
}

// BulkStatusRequest applies one status change to a set of applications.
type BulkStatusRequest struct {
	ApplicationIDs []string `json:"applicationIds" validate:"required,min=1,max=100,dive,uuid4"`
	Status         string   `json:"status" validate:"required,oneof=submitted under-review shortlisted interview-scheduled interviewed rejected selected withdrawn"`
	ReviewNotes    string   `json:"reviewNotes" validate:"omitempty,max=5000"`
}

// BulkApplicationStatus POST /api/admin/applications/bulk-status. Workflow
// rules still apply per application; invalid transitions fail individually.
func (h *AdminHandler) BulkApplicationStatus(c *fiber.Ctx) error {
	user, _ := auth.UserFromContext(c)
	var req BulkStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	statusReq := dto.UpdateApplicationStatusRequest{Status: req.Status, ReviewNotes: req.ReviewNotes}
	succeeded := make([]string, 0, len(req.ApplicationIDs))
	failed := map[string]string{}
	for _, id := range req.ApplicationIDs {
		if _, err := uuid.Parse(id); err != nil {
			failed[id] = "invalid id"
			continue
		}
		if _, err := h.applications.UpdateStatus(c.Context(), user, id, statusReq.ToInput()); err != nil {
			failed[id] = apperrors.ToDomainError(err).Message
			continue
		}
		succeeded = append(succeeded, id)
	}
	return respondData(c, fiber.StatusOK, fiber.Map{
		"status":    req.Status,
		"succeeded": succeeded,
		"failed":    failed,
	})
}
