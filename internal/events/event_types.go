package events

import (
	"time"

	"github.com/maplorix/jobboard-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventJobCreated               EventType = "job_created"
	EventApplicationSubmitted     EventType = "application_submitted"
	EventApplicationStatusChanged EventType = "application_status_changed"
	EventContactSubmitted         EventType = "contact_submitted"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	ActorID   *string     `json:"actor_id,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// JobCreatedPayload payload.
type JobCreatedPayload struct {
	JobID    string             `json:"job_id"`
	Title    string             `json:"title"`
	Company  string             `json:"company"`
	Category domain.JobCategory `json:"category"`
	Featured bool               `json:"featured"`
}

// ApplicationSubmittedPayload payload.
type ApplicationSubmittedPayload struct {
	ApplicationID string  `json:"application_id"`
	FullName      string  `json:"full_name"`
	Email         string  `json:"email"`
	JobRole       string  `json:"job_role"`
	JobID         *string `json:"job_id,omitempty"`
}

// ApplicationStatusChangedPayload payload.
type ApplicationStatusChangedPayload struct {
	ApplicationID string                   `json:"application_id"`
	Email         string                   `json:"email"`
	FullName      string                   `json:"full_name"`
	OldStatus     domain.ApplicationStatus `json:"old_status"`
	NewStatus     domain.ApplicationStatus `json:"new_status"`
	ReviewNotes   string                   `json:"review_notes,omitempty"`
}

// ContactSubmittedPayload payload.
type ContactSubmittedPayload struct {
	ContactID string                 `json:"contact_id"`
	Name      string                 `json:"name"`
	Email     string                 `json:"email"`
	Subject   string                 `json:"subject"`
	Category  domain.ContactCategory `json:"category"`
}
