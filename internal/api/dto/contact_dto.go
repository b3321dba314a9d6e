package dto

import (
	"time"

	"github.com/maplorix/jobboard-service/internal/domain"
	"github.com/maplorix/jobboard-service/internal/service"
)

// SubmitContactRequest is the public contact form payload.
type SubmitContactRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=200"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Phone    string `json:"phone" validate:"omitempty,max=30"`
	Subject  string `json:"subject" validate:"required,min=2,max=300"`
	Message  string `json:"message" validate:"required,min=5,max=5000"`
	Category string `json:"category" validate:"omitempty,oneof=general job-inquiry complaint feedback partnership technical"`
}

// ToInput maps the request to the service input. Client metadata is attached
// by the handler.
func (r SubmitContactRequest) ToInput() service.ContactInput {
	return service.ContactInput{
		Name:     r.Name,
		Email:    r.Email,
		Phone:    r.Phone,
		Subject:  r.Subject,
		Message:  r.Message,
		Category: domain.ContactCategory(r.Category),
	}
}

// UpdateContactRequest carries reviewer edits to an inquiry.
type UpdateContactRequest struct {
	Status       *string `json:"status" validate:"omitempty,oneof=pending in-progress resolved closed"`
	Priority     *string `json:"priority" validate:"omitempty,oneof=low medium high urgent"`
	Category     *string `json:"category" validate:"omitempty,oneof=general job-inquiry complaint feedback partnership technical"`
	AssignedTo   *string `json:"assignedTo" validate:"omitempty,uuid4"`
	ResponseSent *bool   `json:"responseSent"`
}

// ToInput maps the request to the service input.
func (r UpdateContactRequest) ToInput() service.ContactUpdateInput {
	input := service.ContactUpdateInput{
		AssignedTo:   r.AssignedTo,
		ResponseSent: r.ResponseSent,
	}
	if r.Status != nil {
		s := domain.ContactStatus(*r.Status)
		input.Status = &s
	}
	if r.Priority != nil {
		p := domain.ContactPriority(*r.Priority)
		input.Priority = &p
	}
	if r.Category != nil {
		c := domain.ContactCategory(*r.Category)
		input.Category = &c
	}
	return input
}

// AddContactNoteRequest appends an internal note.
type AddContactNoteRequest struct {
	Content string `json:"content" validate:"required,min=1,max=5000"`
}

// ContactResponse is the reviewer-facing representation of an inquiry.
type ContactResponse struct {
	ID             string     `json:"id"`
	Name           string     `json:"name"`
	Email          string     `json:"email"`
	Phone          string     `json:"phone,omitempty"`
	Subject        string     `json:"subject"`
	Message        string     `json:"message"`
	Status         string     `json:"status"`
	Priority       string     `json:"priority"`
	Category       string     `json:"category"`
	AssignedTo     *string    `json:"assignedTo,omitempty"`
	ResponseSent   bool       `json:"responseSent"`
	ResponseSentAt *time.Time `json:"responseSentAt,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}

// NewContactResponse maps an inquiry.
func NewContactResponse(contact *domain.Contact) ContactResponse {
	return ContactResponse{
		ID:             contact.ID,
		Name:           contact.Name,
		Email:          contact.Email,
		Phone:          contact.Phone,
		Subject:        contact.Subject,
		Message:        contact.Message,
		Status:         string(contact.Status),
		Priority:       string(contact.Priority),
		Category:       string(contact.Category),
		AssignedTo:     contact.AssignedTo,
		ResponseSent:   contact.ResponseSent,
		ResponseSentAt: contact.ResponseSentAt,
		CreatedAt:      contact.CreatedAt,
		UpdatedAt:      contact.UpdatedAt,
	}
}

// NewContactListResponse maps a page of inquiries.
func NewContactListResponse(contacts []domain.Contact) []ContactResponse {
	out := make([]ContactResponse, len(contacts))
	for i := range contacts {
		out[i] = NewContactResponse(&contacts[i])
	}
	return out
}

// ContactNoteResponse is one internal note.
type ContactNoteResponse struct {
	ID      string    `json:"id"`
	Content string    `json:"content"`
	AddedBy string    `json:"addedBy"`
	AddedAt time.Time `json:"addedAt"`
}

// NewContactNoteResponse maps one note.
func NewContactNoteResponse(note *domain.ContactNote) ContactNoteResponse {
	return ContactNoteResponse{
		ID:      note.ID,
		Content: note.Content,
		AddedBy: note.AddedBy,
		AddedAt: note.AddedAt,
	}
}

// NewContactNoteListResponse maps the notes for one inquiry.
func NewContactNoteListResponse(notes []domain.ContactNote) []ContactNoteResponse {
	out := make([]ContactNoteResponse, len(notes))
	for i := range notes {
		out[i] = NewContactNoteResponse(&notes[i])
	}
	return out
}
