package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/maplorix/jobboard-service/internal/auth"
	"github.com/maplorix/jobboard-service/internal/domain"
	"github.com/maplorix/jobboard-service/internal/events"
	"github.com/maplorix/jobboard-service/internal/repository"
	"github.com/maplorix/jobboard-service/internal/storage"
	apperrors "github.com/maplorix/jobboard-service/pkg/util"
)

// ApplicationService owns the candidate application workflow.
type ApplicationService struct {
	applications repository.ApplicationRepository
	jobs         repository.JobRepository
	resumes      *storage.ResumeStore
	dispatcher   events.Dispatcher
	logger       *zap.Logger
}

// NewApplicationService builds the service.
func NewApplicationService(
	applications repository.ApplicationRepository,
	jobs repository.JobRepository,
	resumes *storage.ResumeStore,
	dispatcher events.Dispatcher,
	logger *zap.Logger,
) *ApplicationService {
	return &ApplicationService{
		applications: applications,
		jobs:         jobs,
		resumes:      resumes,
		dispatcher:   dispatcher,
		logger:       logger,
	}
}

// ResumeUpload carries an in-memory resume file from the handler.
type ResumeUpload struct {
	OriginalName string
	MimeType     string
	Content      []byte
}

// SubmitInput carries the public application form fields.
type SubmitInput struct {
	JobID              *string
	FullName           string
	Email              string
	Phone              string
	Location           string
	JobRole            string
	Experience         domain.CandidateExperience
	Skills             string
	CurrentCompany     string
	CurrentDesignation string
	ExpectedSalaryMin  *int64
	ExpectedSalaryMax  *int64
	SalaryCurrency     string
	NoticePeriod       string
	CoverLetter        string
	LinkedinProfile    string
	Portfolio          string
	Github             string
	Website            string
	Source             string
	Resume             *ResumeUpload
	IPAddress          string
	UserAgent          string
}

// Submit stores a candidate application. When the submission targets a
// posting, the posting must exist, be active and not past its deadline. The
// resume file is written first and removed again if the insert fails.
func (s *ApplicationService) Submit(ctx context.Context, input SubmitInput) (*domain.Application, error) {
	if !domain.ValidCandidateExperience(input.Experience) {
		return nil, apperrors.NewValidationError("invalid experience value", map[string]any{"experience": string(input.Experience)})
	}

	var jobTitle string
	if input.JobID != nil {
		job, err := s.jobs.GetByID(ctx, *input.JobID)
		if err != nil {
			return nil, apperrors.ToDomainError(err)
		}
		if !job.IsActive {
			return nil, apperrors.NewValidationError("this job posting is no longer accepting applications", nil)
		}
		if job.Expired(time.Now()) {
			return nil, apperrors.NewValidationError("the application deadline for this job has passed", nil)
		}
		jobTitle = job.Title
	}

	var resumeInfo *domain.ResumeInfo
	if input.Resume != nil {
		var err error
		resumeInfo, err = s.resumes.Save(input.Resume.OriginalName, input.Resume.MimeType, input.Resume.Content)
		if err != nil {
			return nil, err
		}
	}

	currency := input.SalaryCurrency
	if currency == "" {
		currency = "INR"
	}

	app := &domain.Application{
		JobID:              input.JobID,
		FullName:           input.FullName,
		Email:              input.Email,
		Phone:              input.Phone,
		Location:           input.Location,
		JobRole:            input.JobRole,
		Experience:         input.Experience,
		Skills:             input.Skills,
		CurrentCompany:     input.CurrentCompany,
		CurrentDesignation: input.CurrentDesignation,
		ExpectedSalary: domain.SalaryRange{
			Min:      input.ExpectedSalaryMin,
			Max:      input.ExpectedSalaryMax,
			Currency: currency,
		},
		NoticePeriod:    input.NoticePeriod,
		CoverLetter:     input.CoverLetter,
		LinkedinProfile: input.LinkedinProfile,
		Portfolio:       input.Portfolio,
		Github:          input.Github,
		Website:         input.Website,
		Source:          input.Source,
		Status:          domain.StatusSubmitted,
		Priority:        domain.PriorityMedium,
		Resume:          resumeInfo,
		IPAddress:       input.IPAddress,
		UserAgent:       input.UserAgent,
	}
	if err := s.applications.Create(ctx, app); err != nil {
		if resumeInfo != nil {
			s.resumes.Remove(resumeInfo)
		}
		return nil, apperrors.ToDomainError(err)
	}

	if jobTitle == "" {
		jobTitle = app.JobRole
	}
	s.logEmail(ctx, app, domain.EmailConfirmation,
		"Application Received: "+jobTitle,
		fmt.Sprintf("Dear %s, we have received your application for %s and will review it shortly.", app.FullName, jobTitle))

	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventApplicationSubmitted,
		Timestamp: time.Now(),
		Payload: events.ApplicationSubmittedPayload{
			ApplicationID: app.ID,
			FullName:      app.FullName,
			Email:         app.Email,
			JobRole:       app.JobRole,
			JobID:         app.JobID,
		},
	})
	return app, nil
}

// StatusUpdateInput carries a reviewer's status change.
type StatusUpdateInput struct {
	Status      domain.ApplicationStatus
	Priority    *domain.ApplicationPriority
	ReviewNotes string
}

// UpdateStatus moves an application along the workflow. Transitions outside
// the workflow table are rejected, and the acting reviewer is stamped onto
// the record.
func (s *ApplicationService) UpdateStatus(ctx context.Context, actor *domain.User, id string, input StatusUpdateInput) (*domain.Application, error) {
	if err := auth.Authorize(actor, auth.PermApplicationUpdate); err != nil {
		return nil, err
	}
	if !domain.ValidStatus(input.Status) {
		return nil, apperrors.NewValidationError("invalid application status", map[string]any{"status": string(input.Status)})
	}

	app, err := s.applications.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.ToDomainError(err)
	}

	oldStatus := app.Status
	if input.Status != oldStatus {
		if !domain.CanTransition(oldStatus, input.Status) {
			return nil, apperrors.NewValidationError(
				fmt.Sprintf("cannot change status from %s to %s", oldStatus, input.Status), nil)
		}
		app.Status = input.Status
	}
	if input.Priority != nil {
		app.Priority = *input.Priority
	}
	if input.ReviewNotes != "" {
		app.ReviewNotes = input.ReviewNotes
	}
	now := time.Now()
	app.ReviewedBy = &actor.ID
	app.ReviewedAt = &now

	if err := s.applications.Update(ctx, app); err != nil {
		return nil, apperrors.ToDomainError(err)
	}

	if input.Status != oldStatus {
		emailType, subject, body := statusEmail(app, input.Status)
		s.logEmail(ctx, app, emailType, subject, body)

		_ = s.dispatcher.Publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventApplicationStatusChanged,
			ActorID:   &actor.ID,
			Timestamp: now,
			Payload: events.ApplicationStatusChangedPayload{
				ApplicationID: app.ID,
				Email:         app.Email,
				FullName:      app.FullName,
				OldStatus:     oldStatus,
				NewStatus:     input.Status,
				ReviewNotes:   input.ReviewNotes,
			},
		})
	}
	return app, nil
}

// Get fetches one application.
func (s *ApplicationService) Get(ctx context.Context, actor *domain.User, id string) (*domain.Application, error) {
	if err := auth.Authorize(actor, auth.PermApplicationRead); err != nil {
		return nil, err
	}
	app, err := s.applications.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.ToDomainError(err)
	}
	return app, nil
}

// List returns applications by filter plus the total for pagination.
func (s *ApplicationService) List(ctx context.Context, actor *domain.User, filter repository.ApplicationFilter) ([]domain.Application, int64, error) {
	if err := auth.Authorize(actor, auth.PermApplicationRead); err != nil {
		return nil, 0, err
	}
	apps, total, err := s.applications.ListWithFilter(ctx, filter)
	if err != nil {
		return nil, 0, apperrors.ToDomainError(err)
	}
	return apps, total, nil
}

// Delete removes an application and its resume file.
func (s *ApplicationService) Delete(ctx context.Context, actor *domain.User, id string) error {
	if err := auth.Authorize(actor, auth.PermApplicationDelete); err != nil {
		return err
	}
	app, err := s.applications.Delete(ctx, id)
	if err != nil {
		return apperrors.ToDomainError(err)
	}
	if app.Resume != nil {
		s.resumes.Remove(app.Resume)
	}
	return nil
}

// ResumePath resolves the on-disk path of an application's resume.
func (s *ApplicationService) ResumePath(ctx context.Context, actor *domain.User, id string) (string, *domain.ResumeInfo, error) {
	if err := auth.Authorize(actor, auth.PermApplicationRead); err != nil {
		return "", nil, err
	}
	app, err := s.applications.GetByID(ctx, id)
	if err != nil {
		return "", nil, apperrors.ToDomainError(err)
	}
	if app.Resume == nil {
		return "", nil, apperrors.NewNotFound("resume")
	}
	path, err := s.resumes.Open(app.Resume)
	if err != nil {
		return "", nil, err
	}
	return path, app.Resume, nil
}

// Stats returns application counters.
func (s *ApplicationService) Stats(ctx context.Context, actor *domain.User) (*repository.ApplicationStats, error) {
	if err := auth.Authorize(actor, auth.PermAnalyticsView); err != nil {
		return nil, err
	}
	stats, err := s.applications.Stats(ctx)
	if err != nil {
		return nil, apperrors.ToDomainError(err)
	}
	return stats, nil
}

// Emails returns the communications log for one application.
func (s *ApplicationService) Emails(ctx context.Context, actor *domain.User, id string) ([]domain.ApplicationEmail, error) {
	if err := auth.Authorize(actor, auth.PermApplicationRead); err != nil {
		return nil, err
	}
	if _, err := s.applications.GetByID(ctx, id); err != nil {
		return nil, apperrors.ToDomainError(err)
	}
	emails, err := s.applications.ListEmails(ctx, id)
	if err != nil {
		return nil, apperrors.ToDomainError(err)
	}
	return emails, nil
}

func (s *ApplicationService) logEmail(ctx context.Context, app *domain.Application, emailType domain.EmailType, subject, body string) {
	email := &domain.ApplicationEmail{
		ApplicationID: app.ID,
		Type:          emailType,
		Subject:       subject,
		Body:          body,
	}
	if err := s.applications.AddEmail(ctx, email); err != nil {
		s.logger.Warn("failed to record application email",
			zap.String("application_id", app.ID),
			zap.Error(err))
	}
}

func statusEmail(app *domain.Application, status domain.ApplicationStatus) (domain.EmailType, string, string) {
	switch status {
	case domain.StatusInterviewScheduled:
		return domain.EmailInterviewSchedule,
			"Interview Scheduled: " + app.JobRole,
			fmt.Sprintf("Dear %s, your interview for %s has been scheduled. Our team will share the details shortly.", app.FullName, app.JobRole)
	case domain.StatusRejected:
		return domain.EmailRejection,
			"Application Update: " + app.JobRole,
			fmt.Sprintf("Dear %s, thank you for applying for %s. We have decided not to move forward with your application.", app.FullName, app.JobRole)
	case domain.StatusSelected:
		return domain.EmailOffer,
			"Congratulations: " + app.JobRole,
			fmt.Sprintf("Dear %s, congratulations! You have been selected for %s. Our team will reach out with next steps.", app.FullName, app.JobRole)
	default:
		return domain.EmailReviewUpdate,
			"Application Status Update: " + app.JobRole,
			fmt.Sprintf("Dear %s, your application for %s is now %s.", app.FullName, app.JobRole, status)
	}
}
