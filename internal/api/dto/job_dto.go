package dto

import (
	"time"

	"github.com/maplorix/jobboard-service/internal/domain"
	"github.com/maplorix/jobboard-service/internal/service"
)

// CreateJobRequest is the posting creation payload.
type CreateJobRequest struct {
	Title               string     `json:"title" validate:"required,min=3,max=200"`
	Company             string     `json:"company" validate:"required,min=1,max=200"`
	Location            string     `json:"location" validate:"required,min=1,max=200"`
	Type                string     `json:"type" validate:"required,oneof=Full-time Part-time Contract Internship Remote Hybrid"`
	Category            string     `json:"category" validate:"required,oneof=Technology Healthcare Finance Marketing Sales Education Engineering Design 'Customer Service' 'Human Resources' Operations Legal Other"`
	Experience          string     `json:"experience" validate:"required,oneof='Entry Level' 'Mid Level' 'Senior Level' Executive Fresher"`
	Description         string     `json:"description" validate:"required,min=10"`
	Requirements        string     `json:"requirements" validate:"omitempty"`
	SalaryMin           *int64     `json:"salaryMin" validate:"omitempty,gte=0"`
	SalaryMax           *int64     `json:"salaryMax" validate:"omitempty,gte=0"`
	SalaryCurrency      string     `json:"salaryCurrency" validate:"omitempty,len=3"`
	Featured            bool       `json:"featured"`
	IsActive            *bool      `json:"isActive"`
	ApplicationDeadline *time.Time `json:"applicationDeadline"`
	Tags                []string   `json:"tags" validate:"omitempty,dive,max=50"`
}

// UpdateJobRequest is the posting edit payload. Empty strings mean unchanged.
type UpdateJobRequest struct {
	Title               string     `json:"title" validate:"omitempty,min=3,max=200"`
	Company             string     `json:"company" validate:"omitempty,min=1,max=200"`
	Location            string     `json:"location" validate:"omitempty,min=1,max=200"`
	Type                string     `json:"type" validate:"omitempty,oneof=Full-time Part-time Contract Internship Remote Hybrid"`
	Category            string     `json:"category" validate:"omitempty,oneof=Technology Healthcare Finance Marketing Sales Education Engineering Design 'Customer Service' 'Human Resources' Operations Legal Other"`
	Experience          string     `json:"experience" validate:"omitempty,oneof='Entry Level' 'Mid Level' 'Senior Level' Executive Fresher"`
	Description         string     `json:"description" validate:"omitempty,min=10"`
	Requirements        string     `json:"requirements" validate:"omitempty"`
	SalaryMin           *int64     `json:"salaryMin" validate:"omitempty,gte=0"`
	SalaryMax           *int64     `json:"salaryMax" validate:"omitempty,gte=0"`
	SalaryCurrency      string     `json:"salaryCurrency" validate:"omitempty,len=3"`
	IsActive            *bool      `json:"isActive"`
	ApplicationDeadline *time.Time `json:"applicationDeadline"`
	Tags                []string   `json:"tags" validate:"omitempty,dive,max=50"`
}

// ToInput maps the create request to the service input.
func (r CreateJobRequest) ToInput() service.JobInput {
	return service.JobInput{
		Title:               r.Title,
		Company:             r.Company,
		Location:            r.Location,
		Type:                domain.JobType(r.Type),
		Category:            domain.JobCategory(r.Category),
		Experience:          domain.ExperienceLevel(r.Experience),
		Description:         r.Description,
		Requirements:        r.Requirements,
		SalaryMin:           r.SalaryMin,
		SalaryMax:           r.SalaryMax,
		SalaryCurrency:      r.SalaryCurrency,
		Featured:            r.Featured,
		IsActive:            r.IsActive,
		ApplicationDeadline: r.ApplicationDeadline,
		Tags:                r.Tags,
	}
}

// ToInput maps the update request to the service input.
func (r UpdateJobRequest) ToInput() service.JobInput {
	return service.JobInput{
		Title:               r.Title,
		Company:             r.Company,
		Location:            r.Location,
		Type:                domain.JobType(r.Type),
		Category:            domain.JobCategory(r.Category),
		Experience:          domain.ExperienceLevel(r.Experience),
		Description:         r.Description,
		Requirements:        r.Requirements,
		SalaryMin:           r.SalaryMin,
		SalaryMax:           r.SalaryMax,
		SalaryCurrency:      r.SalaryCurrency,
		IsActive:            r.IsActive,
		ApplicationDeadline: r.ApplicationDeadline,
		Tags:                r.Tags,
	}
}

// SalaryResponse renders an optional salary range.
type SalaryResponse struct {
	Min      *int64 `json:"min,omitempty"`
	Max      *int64 `json:"max,omitempty"`
	Currency string `json:"currency"`
}

// JobResponse is the public representation of a posting.
type JobResponse struct {
	ID                  string         `json:"id"`
	Title               string         `json:"title"`
	Company             string         `json:"company"`
	Location            string         `json:"location"`
	Type                string         `json:"type"`
	Category            string         `json:"category"`
	Experience          string         `json:"experience"`
	Description         string         `json:"description"`
	Requirements        string         `json:"requirements,omitempty"`
	Salary              SalaryResponse `json:"salary"`
	IsActive            bool           `json:"isActive"`
	Featured            bool           `json:"featured"`
	PostedBy            string         `json:"postedBy"`
	ApplicationCount    int            `json:"applicationCount"`
	ApplicationDeadline time.Time      `json:"applicationDeadline"`
	Expired             bool           `json:"expired"`
	Tags                []string       `json:"tags,omitempty"`
	CreatedAt           time.Time      `json:"createdAt"`
	UpdatedAt           time.Time      `json:"updatedAt"`
}

// NewJobResponse maps a posting.
func NewJobResponse(job *domain.Job) JobResponse {
	return JobResponse{
		ID:           job.ID,
		Title:        job.Title,
		Company:      job.Company,
		Location:     job.Location,
		Type:         string(job.Type),
		Category:     string(job.Category),
		Experience:   string(job.Experience),
		Description:  job.Description,
		Requirements: job.Requirements,
		Salary: SalaryResponse{
			Min:      job.Salary.Min,
			Max:      job.Salary.Max,
			Currency: job.Salary.Currency,
		},
		IsActive:            job.IsActive,
		Featured:            job.Featured,
		PostedBy:            job.PostedBy,
		ApplicationCount:    job.ApplicationCount,
		ApplicationDeadline: job.ApplicationDeadline,
		Expired:             job.Expired(time.Now()),
		Tags:                job.Tags,
		CreatedAt:           job.CreatedAt,
		UpdatedAt:           job.UpdatedAt,
	}
}

// NewJobListResponse maps a page of postings.
func NewJobListResponse(jobs []domain.Job) []JobResponse {
	out := make([]JobResponse, len(jobs))
	for i := range jobs {
		out[i] = NewJobResponse(&jobs[i])
	}
	return out
}

// Pagination is the envelope echoed next to list payloads.
type Pagination struct {
	Total  int64 `json:"total"`
	Limit  int   `json:"limit"`
	Offset int   `json:"offset"`
}

// ListEnvelope pairs page items with their pagination metadata.
type ListEnvelope struct {
	Items      any        `json:"items"`
	Pagination Pagination `json:"pagination"`
}
