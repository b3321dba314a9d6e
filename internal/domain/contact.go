package domain

import "time"

// ContactStatus enumerates inquiry handling states.
type ContactStatus string

const (
	ContactPending    ContactStatus = "pending"
	ContactInProgress ContactStatus = "in-progress"
	ContactResolved   ContactStatus = "resolved"
	ContactClosed     ContactStatus = "closed"
)

// ContactPriority enumerates inquiry urgency.
type ContactPriority string

const (
	ContactPriorityLow    ContactPriority = "low"
	ContactPriorityMedium ContactPriority = "medium"
	ContactPriorityHigh   ContactPriority = "high"
	ContactPriorityUrgent ContactPriority = "urgent"
)

// ContactCategory enumerates inquiry categories.
type ContactCategory string

const (
	ContactGeneral     ContactCategory = "general"
	ContactJobInquiry  ContactCategory = "job-inquiry"
	ContactComplaint   ContactCategory = "complaint"
	ContactFeedback    ContactCategory = "feedback"
	ContactPartnership ContactCategory = "partnership"
	ContactTechnical   ContactCategory = "technical"
)

// ContactNote is an append-only note tagged with the adding user.
type ContactNote struct {
	ID        string
	ContactID string
	Content   string
	AddedBy   string
	AddedAt   time.Time
}

// Contact is an inbound inquiry from the public contact form.
type Contact struct {
	ID             string
	Name           string
	Email          string
	Phone          string
	Subject        string
	Message        string
	Status         ContactStatus
	Priority       ContactPriority
	Category       ContactCategory
	AssignedTo     *string
	ResponseSent   bool
	ResponseSentAt *time.Time
	IPAddress      string
	UserAgent      string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
