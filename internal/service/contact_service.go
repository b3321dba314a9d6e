package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/maplorix/jobboard-service/internal/auth"
	"github.com/maplorix/jobboard-service/internal/domain"
	"github.com/maplorix/jobboard-service/internal/events"
	"github.com/maplorix/jobboard-service/internal/repository"
	apperrors "github.com/maplorix/jobboard-service/pkg/util"
)

// ContactService owns the inbound inquiry workflow.
type ContactService struct {
	contacts   repository.ContactRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewContactService builds the service.
func NewContactService(contacts repository.ContactRepository, dispatcher events.Dispatcher, logger *zap.Logger) *ContactService {
	return &ContactService{contacts: contacts, dispatcher: dispatcher, logger: logger}
}

// ContactInput carries the public contact form fields.
type ContactInput struct {
	Name      string
	Email     string
	Phone     string
	Subject   string
	Message   string
	Category  domain.ContactCategory
	IPAddress string
	UserAgent string
}

// Submit stores a public contact form submission.
func (s *ContactService) Submit(ctx context.Context, input ContactInput) (*domain.Contact, error) {
	category := input.Category
	if category == "" {
		category = domain.ContactGeneral
	}

	contact := &domain.Contact{
		Name:      input.Name,
		Email:     input.Email,
		Phone:     input.Phone,
		Subject:   input.Subject,
		Message:   input.Message,
		Status:    domain.ContactPending,
		Priority:  domain.ContactPriorityMedium,
		Category:  category,
		IPAddress: input.IPAddress,
		UserAgent: input.UserAgent,
	}
	if err := s.contacts.Create(ctx, contact); err != nil {
		return nil, apperrors.ToDomainError(err)
	}

	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventContactSubmitted,
		Timestamp: time.Now(),
		Payload: events.ContactSubmittedPayload{
			ContactID: contact.ID,
			Name:      contact.Name,
			Email:     contact.Email,
			Subject:   contact.Subject,
			Category:  contact.Category,
		},
	})
	return contact, nil
}

// ContactUpdateInput carries reviewer edits to an inquiry.
type ContactUpdateInput struct {
	Status       *domain.ContactStatus
	Priority     *domain.ContactPriority
	Category     *domain.ContactCategory
	AssignedTo   *string
	ResponseSent *bool
}

// Update applies a partial update to an inquiry.
func (s *ContactService) Update(ctx context.Context, actor *domain.User, id string, input ContactUpdateInput) (*domain.Contact, error) {
	if err := auth.Authorize(actor, auth.PermContactUpdate); err != nil {
		return nil, err
	}
	contact, err := s.contacts.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.ToDomainError(err)
	}

	if input.Status != nil {
		contact.Status = *input.Status
	}
	if input.Priority != nil {
		contact.Priority = *input.Priority
	}
	if input.Category != nil {
		contact.Category = *input.Category
	}
	if input.AssignedTo != nil {
		contact.AssignedTo = input.AssignedTo
	}
	if input.ResponseSent != nil && *input.ResponseSent && !contact.ResponseSent {
		now := time.Now()
		contact.ResponseSent = true
		contact.ResponseSentAt = &now
	}

	if err := s.contacts.Update(ctx, contact); err != nil {
		return nil, apperrors.ToDomainError(err)
	}
	return contact, nil
}

// Get fetches one inquiry.
func (s *ContactService) Get(ctx context.Context, actor *domain.User, id string) (*domain.Contact, error) {
	if err := auth.Authorize(actor, auth.PermContactRead); err != nil {
		return nil, err
	}
	contact, err := s.contacts.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.ToDomainError(err)
	}
	return contact, nil
}

// List returns inquiries by filter plus the total for pagination.
func (s *ContactService) List(ctx context.Context, actor *domain.User, filter repository.ContactFilter) ([]domain.Contact, int64, error) {
	if err := auth.Authorize(actor, auth.PermContactRead); err != nil {
		return nil, 0, err
	}
	contacts, total, err := s.contacts.ListWithFilter(ctx, filter)
	if err != nil {
		return nil, 0, apperrors.ToDomainError(err)
	}
	return contacts, total, nil
}

// Delete removes an inquiry and its notes via FK cascade.
func (s *ContactService) Delete(ctx context.Context, actor *domain.User, id string) error {
	if err := auth.Authorize(actor, auth.PermContactDelete); err != nil {
		return err
	}
	if err := s.contacts.Delete(ctx, id); err != nil {
		return apperrors.ToDomainError(err)
	}
	return nil
}

// AddNote appends an internal note tagged with the acting user.
func (s *ContactService) AddNote(ctx context.Context, actor *domain.User, contactID, content string) (*domain.ContactNote, error) {
	if err := auth.Authorize(actor, auth.PermContactUpdate); err != nil {
		return nil, err
	}
	if _, err := s.contacts.GetByID(ctx, contactID); err != nil {
		return nil, apperrors.ToDomainError(err)
	}
	note := &domain.ContactNote{
		ContactID: contactID,
		Content:   content,
		AddedBy:   actor.ID,
	}
	if err := s.contacts.AddNote(ctx, note); err != nil {
		return nil, apperrors.ToDomainError(err)
	}
	return note, nil
}

// Notes returns the internal notes for one inquiry.
func (s *ContactService) Notes(ctx context.Context, actor *domain.User, contactID string) ([]domain.ContactNote, error) {
	if err := auth.Authorize(actor, auth.PermContactRead); err != nil {
		return nil, err
	}
	if _, err := s.contacts.GetByID(ctx, contactID); err != nil {
		return nil, apperrors.ToDomainError(err)
	}
	notes, err := s.contacts.ListNotes(ctx, contactID)
	if err != nil {
		return nil, apperrors.ToDomainError(err)
	}
	return notes, nil
}

// Stats returns inquiry counters.
func (s *ContactService) Stats(ctx context.Context, actor *domain.User) (*repository.ContactStats, error) {
	if err := auth.Authorize(actor, auth.PermAnalyticsView); err != nil {
		return nil, err
	}
	stats, err := s.contacts.Stats(ctx)
	if err != nil {
		return nil, apperrors.ToDomainError(err)
	}
	return stats, nil
}
