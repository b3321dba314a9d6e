package handlers

import (
	"io"
	"path/filepath"

	"github.com/gofiber/fiber/v2"

	"github.com/maplorix/jobboard-service/internal/api/dto"
	"github.com/maplorix/jobboard-service/internal/auth"
	"github.com/maplorix/jobboard-service/internal/domain"
	"github.com/maplorix/jobboard-service/internal/repository"
	"github.com/maplorix/jobboard-service/internal/service"
	"github.com/maplorix/jobboard-service/internal/storage"
	apperrors "github.com/maplorix/jobboard-service/pkg/util"
)

// ApplicationsHandler manages candidate application endpoints.
type ApplicationsHandler struct {
	service *service.ApplicationService
	resumes *storage.ResumeStore
}

// NewApplicationsHandler constructs handler.
func NewApplicationsHandler(applicationService *service.ApplicationService, resumes *storage.ResumeStore) *ApplicationsHandler {
	return &ApplicationsHandler{service: applicationService, resumes: resumes}
}

// Submit POST /api/applications. Public multipart endpoint: form fields plus
// an optional resume file.
func (h *ApplicationsHandler) Submit(c *fiber.Ctx) error {
	var req dto.SubmitApplicationRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	input := req.ToInput()
	input.IPAddress = c.IP()
	input.UserAgent = c.Get("User-Agent")

	fileHeader, err := c.FormFile("resume")
	if err == nil && fileHeader != nil {
		mimetype := fileHeader.Header.Get("Content-Type")
		if err := h.resumes.ValidateUpload(mimetype, fileHeader.Size); err != nil {
			return err
		}
		file, err := fileHeader.Open()
		if err != nil {
			return apperrors.NewFileUploadError("unable to read uploaded file")
		}
		defer file.Close()
		content, err := io.ReadAll(file)
		if err != nil {
			return apperrors.NewFileUploadError("unable to read uploaded file")
		}
		input.Resume = &service.ResumeUpload{
			OriginalName: filepath.Base(fileHeader.Filename),
			MimeType:     mimetype,
			Content:      content,
		}
	}

	app, err := h.service.Submit(c.Context(), input)
	if err != nil {
		return err
	}
	return respondMessage(c, fiber.StatusCreated, "application submitted", dto.NewApplicationResponse(app))
}

// List GET /api/applications.
func (h *ApplicationsHandler) List(c *fiber.Ctx) error {
	user, ok := auth.UserFromContext(c)
	if !ok {
		return apperrors.NewAuthError("authentication required")
	}
	filter := parseApplicationQuery(c)
	apps, total, err := h.service.List(c.Context(), user, filter)
	if err != nil {
		return err
	}
	return respondList(c, dto.NewApplicationListResponse(apps), total, filter.Limit, filter.Offset)
}

// Get GET /api/applications/:id.
func (h *ApplicationsHandler) Get(c *fiber.Ctx) error {
	user, ok := auth.UserFromContext(c)
	if !ok {
		return apperrors.NewAuthError("authentication required")
	}
	id, err := requireUUIDParam(c, "id")
	if err != nil {
		return err
	}
	app, err := h.service.Get(c.Context(), user, id)
	if err != nil {
		return err
	}
	return respondData(c, fiber.StatusOK, dto.NewApplicationResponse(app))
}

// UpdateStatus PATCH /api/applications/:id/status.
func (h *ApplicationsHandler) UpdateStatus(c *fiber.Ctx) error {
	user, ok := auth.UserFromContext(c)
	if !ok {
		return apperrors.NewAuthError("authentication required")
	}
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

	app, err := h.service.UpdateStatus(c.Context(), user, id, req.ToInput())
	if err != nil {
		return err
	}
	return respondMessage(c, fiber.StatusOK, "application status updated", dto.NewApplicationResponse(app))
}

// Delete DELETE /api/applications/:id.
func (h *ApplicationsHandler) Delete(c *fiber.Ctx) error {
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
	return respondMessage(c, fiber.StatusOK, "application deleted", nil)
}

// DownloadResume GET /api/applications/:id/resume.
func (h *ApplicationsHandler) DownloadResume(c *fiber.Ctx) error {
	user, ok := auth.UserFromContext(c)
	if !ok {
		return apperrors.NewAuthError("authentication required")
	}
	id, err := requireUUIDParam(c, "id")
	if err != nil {
		return err
	}
	path, info, err := h.service.ResumePath(c.Context(), user, id)
	if err != nil {
		return err
	}
	c.Set("Content-Type", info.MimeType)
	return c.Download(path, info.OriginalName)
}

// Emails GET /api/applications/:id/emails.
func (h *ApplicationsHandler) Emails(c *fiber.Ctx) error {
	user, ok := auth.UserFromContext(c)
	if !ok {
		return apperrors.NewAuthError("authentication required")
	}
	id, err := requireUUIDParam(c, "id")
	if err != nil {
		return err
	}
	emails, err := h.service.Emails(c.Context(), user, id)
	if err != nil {
		return err
	}
	return respondData(c, fiber.StatusOK, dto.NewApplicationEmailListResponse(emails))
}

// Stats GET /api/applications/stats.
func (h *ApplicationsHandler) Stats(c *fiber.Ctx) error {
	user, ok := auth.UserFromContext(c)
	if !ok {
		return apperrors.NewAuthError("authentication required")
	}
	stats, err := h.service.Stats(c.Context(), user)
	if err != nil {
		return err
	}
	return respondData(c, fiber.StatusOK, stats)
}

func parseApplicationQuery(c *fiber.Ctx) repository.ApplicationFilter {
	filter := repository.ApplicationFilter{}
	if v := c.Query("status"); v != "" {
		status := domain.ApplicationStatus(v)
		filter.Status = &status
	}
	if v := c.Query("priority"); v != "" {
		priority := domain.ApplicationPriority(v)
		filter.Priority = &priority
	}
	if v := c.Query("experience"); v != "" {
		experience := domain.CandidateExperience(v)
		filter.Experience = &experience
	}
	filter.JobID = stringQuery(c, "jobId")
	filter.JobRole = stringQuery(c, "jobRole")
	filter.Location = stringQuery(c, "location")
	filter.MinSalary = parseInt64Query(c, "minSalary")
	filter.MaxSalary = parseInt64Query(c, "maxSalary")
	filter.CreatedFrom = parseTimeQuery(c, "createdFrom")
	filter.CreatedTo = parseTimeQuery(c, "createdTo")
	filter.SearchTerm = stringQuery(c, "search")
	filter.SortBy, filter.SortDesc = sortParams(c)
	filter.Limit, filter.Offset = pageParams(c)
	return filter
}
