package dto

import (
	"time"

	"github.com/maplorix/jobboard-service/internal/domain"
	"github.com/maplorix/jobboard-service/internal/service"
)

// SubmitApplicationRequest is the public application form payload. It arrives
// as multipart form fields next to the resume file.
type SubmitApplicationRequest struct {
	JobID              *string `form:"jobId" validate:"omitempty,uuid4"`
	FullName           string  `form:"fullName" validate:"required,min=2,max=200"`
	Email              string  `form:"email" validate:"required,email,max=255"`
	Phone              string  `form:"phone" validate:"required,max=30"`
	Location           string  `form:"location" validate:"omitempty,max=200"`
	JobRole            string  `form:"jobRole" validate:"required,min=2,max=200"`
	Experience         string  `form:"experience" validate:"required"`
	Skills             string  `form:"skills" validate:"omitempty,max=2000"`
	CurrentCompany     string  `form:"currentCompany" validate:"omitempty,max=200"`
	CurrentDesignation string  `form:"currentDesignation" validate:"omitempty,max=200"`
	ExpectedSalaryMin  *int64  `form:"expectedSalaryMin" validate:"omitempty,gte=0"`
	ExpectedSalaryMax  *int64  `form:"expectedSalaryMax" validate:"omitempty,gte=0"`
	SalaryCurrency     string  `form:"salaryCurrency" validate:"omitempty,len=3"`
	NoticePeriod       string  `form:"noticePeriod" validate:"omitempty,max=100"`
	CoverLetter        string  `form:"coverLetter" validate:"omitempty,max=5000"`
	LinkedinProfile    string  `form:"linkedinProfile" validate:"omitempty,url,max=500"`
	Portfolio          string  `form:"portfolio" validate:"omitempty,url,max=500"`
	Github             string  `form:"github" validate:"omitempty,url,max=500"`
	Website            string  `form:"website" validate:"omitempty,url,max=500"`
	Source             string  `form:"source" validate:"omitempty,max=100"`
}

// ToInput maps the request to the service input. The resume and client
// metadata are attached by the handler.
func (r SubmitApplicationRequest) ToInput() service.SubmitInput {
	return service.SubmitInput{
		JobID:              r.JobID,
		FullName:           r.FullName,
		Email:              r.Email,
		Phone:              r.Phone,
		Location:           r.Location,
		JobRole:            r.JobRole,
		Experience:         domain.CandidateExperience(r.Experience),
		Skills:             r.Skills,
		CurrentCompany:     r.CurrentCompany,
		CurrentDesignation: r.CurrentDesignation,
		ExpectedSalaryMin:  r.ExpectedSalaryMin,
		ExpectedSalaryMax:  r.ExpectedSalaryMax,
		SalaryCurrency:     r.SalaryCurrency,
		NoticePeriod:       r.NoticePeriod,
		CoverLetter:        r.CoverLetter,
		LinkedinProfile:    r.LinkedinProfile,
		Portfolio:          r.Portfolio,
		Github:             r.Github,
		Website:            r.Website,
		Source:             r.Source,
	}
}

// UpdateApplicationStatusRequest carries a reviewer decision.
type UpdateApplicationStatusRequest struct {
	Status      string  `json:"status" validate:"required,oneof=submitted under-review shortlisted interview-scheduled interviewed rejected selected withdrawn"`
	Priority    *string `json:"priority" validate:"omitempty,oneof=low medium high"`
	ReviewNotes string  `json:"reviewNotes" validate:"omitempty,max=5000"`
}

// ToInput maps the request to the service input.
func (r UpdateApplicationStatusRequest) ToInput() service.StatusUpdateInput {
	input := service.StatusUpdateInput{
		Status:      domain.ApplicationStatus(r.Status),
		ReviewNotes: r.ReviewNotes,
	}
	if r.Priority != nil {
		p := domain.ApplicationPriority(*r.Priority)
		input.Priority = &p
	}
	return input
}

// ResumeResponse renders resume metadata without the storage path.
type ResumeResponse struct {
	Filename     string `json:"filename"`
	OriginalName string `json:"originalName"`
	MimeType     string `json:"mimeType"`
	SizeBytes    int64  `json:"sizeBytes"`
}

// ApplicationResponse is the reviewer-facing representation of an application.
type ApplicationResponse struct {
	ID                 string          `json:"id"`
	JobID              *string         `json:"jobId,omitempty"`
	FullName           string          `json:"fullName"`
	Email              string          `json:"email"`
	Phone              string          `json:"phone"`
	Location           string          `json:"location,omitempty"`
	JobRole            string          `json:"jobRole"`
	Experience         string          `json:"experience"`
	Skills             string          `json:"skills,omitempty"`
	CurrentCompany     string          `json:"currentCompany,omitempty"`
	CurrentDesignation string          `json:"currentDesignation,omitempty"`
	ExpectedSalary     SalaryResponse  `json:"expectedSalary"`
	NoticePeriod       string          `json:"noticePeriod,omitempty"`
	CoverLetter        string          `json:"coverLetter,omitempty"`
	LinkedinProfile    string          `json:"linkedinProfile,omitempty"`
	Portfolio          string          `json:"portfolio,omitempty"`
	Github             string          `json:"github,omitempty"`
	Website            string          `json:"website,omitempty"`
	Source             string          `json:"source,omitempty"`
	Status             string          `json:"status"`
	Priority           string          `json:"priority"`
	Resume             *ResumeResponse `json:"resume,omitempty"`
	ReviewedBy         *string         `json:"reviewedBy,omitempty"`
	ReviewedAt         *time.Time      `json:"reviewedAt,omitempty"`
	ReviewNotes        string          `json:"reviewNotes,omitempty"`
	CreatedAt          time.Time       `json:"createdAt"`
	UpdatedAt          time.Time       `json:"updatedAt"`
}

// NewApplicationResponse maps an application.
func NewApplicationResponse(app *domain.Application) ApplicationResponse {
	resp := ApplicationResponse{
		ID:                 app.ID,
		JobID:              app.JobID,
		FullName:           app.FullName,
		Email:              app.Email,
		Phone:              app.Phone,
		Location:           app.Location,
		JobRole:            app.JobRole,
		Experience:         string(app.Experience),
		Skills:             app.Skills,
		CurrentCompany:     app.CurrentCompany,
		CurrentDesignation: app.CurrentDesignation,
		ExpectedSalary: SalaryResponse{
			Min:      app.ExpectedSalary.Min,
			Max:      app.ExpectedSalary.Max,
			Currency: app.ExpectedSalary.Currency,
		},
		NoticePeriod:    app.NoticePeriod,
		CoverLetter:     app.CoverLetter,
		LinkedinProfile: app.LinkedinProfile,
		Portfolio:       app.Portfolio,
		Github:          app.Github,
		Website:         app.Website,
		Source:          app.Source,
		Status:          string(app.Status),
		Priority:        string(app.Priority),
		ReviewedBy:      app.ReviewedBy,
		ReviewedAt:      app.ReviewedAt,
		ReviewNotes:     app.ReviewNotes,
		CreatedAt:       app.CreatedAt,
		UpdatedAt:       app.UpdatedAt,
	}
	if app.Resume != nil {
		resp.Resume = &ResumeResponse{
			Filename:     app.Resume.Filename,
			OriginalName: app.Resume.OriginalName,
			MimeType:     app.Resume.MimeType,
			SizeBytes:    app.Resume.SizeBytes,
		}
	}
	return resp
}

// NewApplicationListResponse maps a page of applications.
func NewApplicationListResponse(apps []domain.Application) []ApplicationResponse {
	out := make([]ApplicationResponse, len(apps))
	for i := range apps {
		out[i] = NewApplicationResponse(&apps[i])
	}
	return out
}

// ApplicationEmailResponse is one communications log entry.
type ApplicationEmailResponse struct {
	ID      string    `json:"id"`
	Type    string    `json:"type"`
	Subject string    `json:"subject"`
	Body    string    `json:"body"`
	SentAt  time.Time `json:"sentAt"`
}

// NewApplicationEmailListResponse maps the communications log.
func NewApplicationEmailListResponse(emails []domain.ApplicationEmail) []ApplicationEmailResponse {
	out := make([]ApplicationEmailResponse, len(emails))
	for i, email := range emails {
		out[i] = ApplicationEmailResponse{
			ID:      email.ID,
			Type:    string(email.Type),
			Subject: email.Subject,
			Body:    email.Body,
			SentAt:  email.SentAt,
		}
	}
	return out
}
