package domain

import "time"

// ApplicationStatus enumerates workflow states for a candidate application.
type ApplicationStatus string

const (
	StatusSubmitted          ApplicationStatus = "submitted"
	StatusUnderReview        ApplicationStatus = "under-review"
	StatusShortlisted        ApplicationStatus = "shortlisted"
	StatusInterviewScheduled ApplicationStatus = "interview-scheduled"
	StatusInterviewed        ApplicationStatus = "interviewed"
	StatusRejected           ApplicationStatus = "rejected"
	StatusSelected           ApplicationStatus = "selected"
	StatusWithdrawn          ApplicationStatus = "withdrawn"
)

// allowedStatusTransitions is the workflow transition table. Terminal states
// map to an empty set.
var allowedStatusTransitions = map[ApplicationStatus][]ApplicationStatus{
	StatusSubmitted:          {StatusUnderReview, StatusRejected, StatusWithdrawn},
	StatusUnderReview:        {StatusShortlisted, StatusRejected, StatusWithdrawn},
	StatusShortlisted:        {StatusInterviewScheduled, StatusRejected, StatusWithdrawn},
	StatusInterviewScheduled: {StatusInterviewed, StatusRejected, StatusWithdrawn},
	StatusInterviewed:        {StatusSelected, StatusRejected, StatusWithdrawn},
	StatusRejected:           {},
	StatusSelected:           {},
	StatusWithdrawn:          {},
}

// ValidStatus reports whether the value is a known workflow state.
func ValidStatus(s ApplicationStatus) bool {
	_, ok := allowedStatusTransitions[s]
	return ok
}

// CanTransition reports whether moving current → next is allowed by the
// workflow table.
func CanTransition(current, next ApplicationStatus) bool {
	for _, candidate := range allowedStatusTransitions[current] {
		if candidate == next {
			return true
		}
	}
	return false
}

// CandidateExperience enumerates self-reported experience bands.
type CandidateExperience string

const (
	CandidateFresher   CandidateExperience = "fresher"
	CandidateOneThree  CandidateExperience = "1-3"
	CandidateThreeFive CandidateExperience = "3-5"
	CandidateFivePlus  CandidateExperience = "5+"
	CandidateTenPlus   CandidateExperience = "10+"
)

// ValidCandidateExperience accepts the band values and the posting-level
// labels candidates sometimes submit through older forms.
func ValidCandidateExperience(e CandidateExperience) bool {
	switch e {
	case CandidateFresher, CandidateOneThree, CandidateThreeFive, CandidateFivePlus, CandidateTenPlus:
		return true
	case CandidateExperience(ExperienceEntry), CandidateExperience(ExperienceMid),
		CandidateExperience(ExperienceSenior), CandidateExperience(ExperienceExecutive):
		return true
	}
	return false
}

// ApplicationPriority is a triage hint set by reviewers.
type ApplicationPriority string

const (
	PriorityLow    ApplicationPriority = "low"
	PriorityMedium ApplicationPriority = "medium"
	PriorityHigh   ApplicationPriority = "high"
)

// ResumeInfo holds metadata for an uploaded resume; the file itself lives on
// disk under the uploads directory.
type ResumeInfo struct {
	Filename     string
	OriginalName string
	MimeType     string
	SizeBytes    int64
	Path         string
}

// EmailType classifies entries in the application communications log.
type EmailType string

const (
	EmailConfirmation      EmailType = "confirmation"
	EmailReviewUpdate      EmailType = "review-update"
	EmailInterviewSchedule EmailType = "interview-schedule"
	EmailRejection         EmailType = "rejection"
	EmailOffer             EmailType = "offer"
	EmailOther             EmailType = "other"
)

// ApplicationEmail is one append-only communications log entry.
type ApplicationEmail struct {
	ID            string
	ApplicationID string
	Type          EmailType
	Subject       string
	Body          string
	SentAt        time.Time
}

// Application is a candidate submission, optionally tied to a Job.
type Application struct {
	ID                 string
	JobID              *string
	FullName           string
	Email              string
	Phone              string
	Location           string
	JobRole            string
	Experience         CandidateExperience
	Skills             string
	CurrentCompany     string
	CurrentDesignation string
	ExpectedSalary     SalaryRange
	NoticePeriod       string
	CoverLetter        string
	LinkedinProfile    string
	Portfolio          string
	Github             string
	Website            string
	Source             string
	Status             ApplicationStatus
	Priority           ApplicationPriority
	Resume             *ResumeInfo
	ReviewedBy         *string
	ReviewedAt         *time.Time
	ReviewNotes        string
	IPAddress          string
	UserAgent          string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}
