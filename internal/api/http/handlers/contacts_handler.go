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

// ContactsHandler manages inquiry endpoints.
type ContactsHandler struct {
	service *service.ContactService
}

// NewContactsHandler constructs handler.
func NewContactsHandler(contactService *service.ContactService) *ContactsHandler {
	return &ContactsHandler{service: contactService}
}

// Submit POST /api/contacts. Public contact form endpoint.
func (h *ContactsHandler) Submit(c *fiber.Ctx) error {
	var req dto.SubmitContactRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	input := req.ToInput()
	input.IPAddress = c.IP()
	input.UserAgent = c.Get("User-Agent")

	contact, err := h.service.Submit(c.Context(), input)
	if err != nil {
		return err
	}
	return respondMessage(c, fiber.StatusCreated, "message received", dto.NewContactResponse(contact))
}

// List GET /api/contacts.
func (h *ContactsHandler) List(c *fiber.Ctx) error {
	user, ok := auth.UserFromContext(c)
	if !ok {
		return apperrors.NewAuthError("authentication required")
	}
	filter := parseContactQuery(c)
	contacts, total, err := h.service.List(c.Context(), user, filter)
	if err != nil {
		return err
	}
	return respondList(c, dto.NewContactListResponse(contacts), total, filter.Limit, filter.Offset)
}

// Get GET /api/contacts/:id.
func (h *ContactsHandler) Get(c *fiber.Ctx) error {
	user, ok := auth.UserFromContext(c)
	if !ok {
		return apperrors.NewAuthError("authentication required")
	}
	id, err := requireUUIDParam(c, "id")
	if err != nil {
		return err
	}
	contact, err := h.service.Get(c.Context(), user, id)
	if err != nil {
		return err
	}
	return respondData(c, fiber.StatusOK, dto.NewContactResponse(contact))
}

// Update PATCH /api/contacts/:id.
func (h *ContactsHandler) Update(c *fiber.Ctx) error {
	user, ok := auth.UserFromContext(c)
	if !ok {
		return apperrors.NewAuthError("authentication required")
	}
	id, err := requireUUIDParam(c, "id")
	if err != nil {
		return err
	}
	var req dto.UpdateContactRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	contact, err := h.service.Update(c.Context(), user, id, req.ToInput())
	if err != nil {
		return err
	}
	return respondMessage(c, fiber.StatusOK, "contact updated", dto.NewContactResponse(contact))
}

// Delete DELETE /api/contacts/:id.
func (h *ContactsHandler) Delete(c *fiber.Ctx) error {
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
	return respondMessage(c, fiber.StatusOK, "contact deleted", nil)
}

// AddNote POST /api/contacts/:id/notes.
func (h *ContactsHandler) AddNote(c *fiber.Ctx) error {
	user, ok := auth.UserFromContext(c)
	if !ok {
		return apperrors.NewAuthError("authentication required")
	}
	id, err := requireUUIDParam(c, "id")
	if err != nil {
		return err
	}
	var req dto.AddContactNoteRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	note, err := h.service.AddNote(c.Context(), user, id, req.Content)
	if err != nil {
		return err
	}
	return respondMessage(c, fiber.StatusCreated, "note added", dto.NewContactNoteResponse(note))
}

// Notes GET /api/contacts/:id/notes.
func (h *ContactsHandler) Notes(c *fiber.Ctx) error {
	user, ok := auth.UserFromContext(c)
	if !ok {
		return apperrors.NewAuthError("authentication required")
	}
	id, err := requireUUIDParam(c, "id")
	if err != nil {
		return err
	}
	notes, err := h.service.Notes(c.Context(), user, id)
	if err != nil {
		return err
	}
	return respondData(c, fiber.StatusOK, dto.NewContactNoteListResponse(notes))
}

// Stats GET /api/contacts/stats.
func (h *ContactsHandler) Stats(c *fiber.Ctx) error {
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

func parseContactQuery(c *fiber.Ctx) repository.ContactFilter {
	filter := repository.ContactFilter{}
	if v := c.Query("status"); v != "" {
		status := domain.ContactStatus(v)
		filter.Status = &status
	}
	if v := c.Query("priority"); v != "" {
		priority := domain.ContactPriority(v)
		filter.Priority = &priority
	}
	if v := c.Query("category"); v != "" {
		category := domain.ContactCategory(v)
		filter.Category = &category
	}
	filter.SearchTerm = stringQuery(c, "search")
	filter.SortBy, filter.SortDesc = sortParams(c)
	filter.Limit, filter.Offset = pageParams(c)
	return filter
}
