package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/maplorix/jobboard-service/internal/domain"
)

// ApplicationFilter captures listing/search parameters for applications.
type ApplicationFilter struct {
	Status      *domain.ApplicationStatus
	Priority    *domain.ApplicationPriority
	JobID       *string
	JobRole     *string
	Experience  *domain.CandidateExperience
	Location    *string
	MinSalary   *int64
	MaxSalary   *int64
	CreatedFrom *time.Time
	CreatedTo   *time.Time
	SearchTerm  *string
	SortBy      string
	SortDesc    bool
	Limit       int
	Offset      int
}

// ApplicationStats aggregates counters for the stats endpoint.
type ApplicationStats struct {
	TotalApplications       int64            `json:"totalApplications"`
	SubmittedApplications   int64            `json:"submittedApplications"`
	UnderReviewApplications int64            `json:"underReviewApplications"`
	ShortlistedApplications int64            `json:"shortlistedApplications"`
	RejectedApplications    int64            `json:"rejectedApplications"`
	SelectedApplications    int64            `json:"selectedApplications"`
	JobRoleStats            map[string]int64 `json:"jobRoleStats"`
	ExperienceStats         map[string]int64 `json:"experienceStats"`
}

// ApplicationRepository encapsulates application persistence. Create and
// Delete run inside a transaction that keeps the referenced job's
// application_count in step with the row.
type ApplicationRepository interface {
	Create(ctx context.Context, app *domain.Application) error
	Update(ctx context.Context, app *domain.Application) error
	Delete(ctx context.Context, id string) (*domain.Application, error)
	GetByID(ctx context.Context, id string) (*domain.Application, error)
	ListWithFilter(ctx context.Context, filter ApplicationFilter) ([]domain.Application, int64, error)
	Stats(ctx context.Context) (*ApplicationStats, error)
	AddEmail(ctx context.Context, email *domain.ApplicationEmail) error
	ListEmails(ctx context.Context, applicationID string) ([]domain.ApplicationEmail, error)
}

type applicationRepository struct {
	pool *pgxpool.Pool
}

// NewApplicationRepository instantiates repository.
func NewApplicationRepository(pool *pgxpool.Pool) ApplicationRepository {
	return &applicationRepository{pool: pool}
}

const applicationColumns = `id, job_id, full_name, email, phone, location, job_role, experience,
        skills, current_company, current_designation, expected_salary_min, expected_salary_max,
        expected_salary_currency, notice_period, cover_letter, linkedin_profile, portfolio,
        github, website, source, status, priority, resume_filename, resume_original_name,
        resume_mimetype, resume_size_bytes, resume_path, reviewed_by, reviewed_at, review_notes,
        ip_address, user_agent, created_at, updated_at`

var applicationSortColumns = map[string]string{
	"createdAt": "created_at",
	"updatedAt": "updated_at",
	"fullName":  "full_name",
	"status":    "status",
	"priority":  "priority",
	"jobRole":   "job_role",
}

func (r *applicationRepository) Create(ctx context.Context, app *domain.Application) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	var resume resumeColumns
	resume.from(app.Resume)

	const query = `
        INSERT INTO applications (job_id, full_name, email, phone, location, job_role, experience,
            skills, current_company, current_designation, expected_salary_min, expected_salary_max,
            expected_salary_currency, notice_period, cover_letter, linkedin_profile, portfolio,
            github, website, source, status, priority, resume_filename, resume_original_name,
            resume_mimetype, resume_size_bytes, resume_path, ip_address, user_agent)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21,$22,
                $23,$24,$25,$26,$27,$28,$29)
        RETURNING id, created_at, updated_at`
	if err := tx.QueryRow(ctx, query,
		app.JobID,
		app.FullName,
		app.Email,
		app.Phone,
		app.Location,
		app.JobRole,
		app.Experience,
		app.Skills,
		app.CurrentCompany,
		app.CurrentDesignation,
		app.ExpectedSalary.Min,
		app.ExpectedSalary.Max,
		app.ExpectedSalary.Currency,
		app.NoticePeriod,
		app.CoverLetter,
		app.LinkedinProfile,
		app.Portfolio,
		app.Github,
		app.Website,
		app.Source,
		app.Status,
		app.Priority,
		resume.filename,
		resume.originalName,
		resume.mimetype,
		resume.sizeBytes,
		resume.path,
		app.IPAddress,
		app.UserAgent,
	).Scan(&app.ID, &app.CreatedAt, &app.UpdatedAt); err != nil {
		return err
	}

	if app.JobID != nil {
		if _, err := tx.Exec(ctx,
			`UPDATE jobs SET application_count=application_count+1 WHERE id=$1`, *app.JobID); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *applicationRepository) Update(ctx context.Context, app *domain.Application) error {
	const query = `
        UPDATE applications SET status=$1, priority=$2, reviewed_by=$3, reviewed_at=$4,
            review_notes=$5, updated_at=NOW()
        WHERE id=$6`
	cmd, err := r.pool.Exec(ctx, query,
		app.Status,
		app.Priority,
		app.ReviewedBy,
		app.ReviewedAt,
		app.ReviewNotes,
		app.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// Delete removes the row and decrements the referenced job's counter in the
// same transaction. The deleted record is returned so callers can clean up
// the resume file afterwards.
func (r *applicationRepository) Delete(ctx context.Context, id string) (*domain.Application, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	app, err := fetchApplication(ctx, tx, `SELECT `+applicationColumns+` FROM applications WHERE id=$1`, id)
	if err != nil {
		return nil, err
	}

	if _, err := tx.Exec(ctx, `DELETE FROM applications WHERE id=$1`, id); err != nil {
		return nil, err
	}
	if app.JobID != nil {
		if _, err := tx.Exec(ctx,
			`UPDATE jobs SET application_count=GREATEST(application_count-1, 0) WHERE id=$1`, *app.JobID); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return app, nil
}

func (r *applicationRepository) GetByID(ctx context.Context, id string) (*domain.Application, error) {
	return fetchApplication(ctx, r.pool, `SELECT `+applicationColumns+` FROM applications WHERE id=$1`, id)
}

// BuildApplicationWhere renders the filter into a WHERE clause and args.
func BuildApplicationWhere(filter ApplicationFilter) (string, []any) {
	clauses := []string{"1=1"}
	args := []any{}

	if filter.Status != nil {
		args = append(args, *filter.Status)
		clauses = append(clauses, fmt.Sprintf("status=$%d", len(args)))
	}
	if filter.Priority != nil {
		args = append(args, *filter.Priority)
		clauses = append(clauses, fmt.Sprintf("priority=$%d", len(args)))
	}
	if filter.JobID != nil {
		args = append(args, *filter.JobID)
		clauses = append(clauses, fmt.Sprintf("job_id=$%d", len(args)))
	}
	if filter.JobRole != nil && strings.TrimSpace(*filter.JobRole) != "" {
		args = append(args, "%"+strings.TrimSpace(*filter.JobRole)+"%")
		clauses = append(clauses, fmt.Sprintf("job_role ILIKE $%d", len(args)))
	}
	if filter.Experience != nil {
		args = append(args, *filter.Experience)
		clauses = append(clauses, fmt.Sprintf("experience=$%d", len(args)))
	}
	if filter.Location != nil && strings.TrimSpace(*filter.Location) != "" {
		args = append(args, "%"+strings.TrimSpace(*filter.Location)+"%")
		clauses = append(clauses, fmt.Sprintf("location ILIKE $%d", len(args)))
	}
	if filter.MinSalary != nil {
		args = append(args, *filter.MinSalary)
		clauses = append(clauses, fmt.Sprintf("expected_salary_min >= $%d", len(args)))
	}
	if filter.MaxSalary != nil {
		args = append(args, *filter.MaxSalary)
		clauses = append(clauses, fmt.Sprintf("expected_salary_max <= $%d", len(args)))
	}
	if filter.CreatedFrom != nil {
		args = append(args, *filter.CreatedFrom)
		clauses = append(clauses, fmt.Sprintf("created_at >= $%d", len(args)))
	}
	if filter.CreatedTo != nil {
		args = append(args, *filter.CreatedTo)
		clauses = append(clauses, fmt.Sprintf("created_at <= $%d", len(args)))
	}
	if filter.SearchTerm != nil && strings.TrimSpace(*filter.SearchTerm) != "" {
		args = append(args, "%"+strings.TrimSpace(*filter.SearchTerm)+"%")
		placeholder := fmt.Sprintf("$%d", len(args))
		clauses = append(clauses, fmt.Sprintf(
			"(full_name ILIKE %s OR email ILIKE %s OR phone ILIKE %s OR job_role ILIKE %s OR skills ILIKE %s)",
			placeholder, placeholder, placeholder, placeholder, placeholder))
	}

	return strings.Join(clauses, " AND "), args
}

func (r *applicationRepository) ListWithFilter(ctx context.Context, filter ApplicationFilter) ([]domain.Application, int64, error) {
	where, args := BuildApplicationWhere(filter)

	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM applications WHERE `+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 10
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	column, ok := applicationSortColumns[filter.SortBy]
	desc := filter.SortDesc
	if !ok {
		column = "created_at"
		desc = true
	}
	direction := "ASC"
	if desc {
		direction = "DESC"
	}

	query := fmt.Sprintf(`SELECT %s FROM applications WHERE %s ORDER BY %s %s, id ASC LIMIT %d OFFSET %d`,
		applicationColumns, where, column, direction, limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var result []domain.Application
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, 0, err
		}
		result = append(result, *app)
	}
	return result, total, rows.Err()
}

func (r *applicationRepository) Stats(ctx context.Context) (*ApplicationStats, error) {
	stats := &ApplicationStats{
		JobRoleStats:    map[string]int64{},
		ExperienceStats: map[string]int64{},
	}

	const totals = `
        SELECT COUNT(*),
               COUNT(*) FILTER (WHERE status='submitted'),
               COUNT(*) FILTER (WHERE status='under-review'),
               COUNT(*) FILTER (WHERE status='shortlisted'),
               COUNT(*) FILTER (WHERE status='rejected'),
               COUNT(*) FILTER (WHERE status='selected')
        FROM applications`
	if err := r.pool.QueryRow(ctx, totals).Scan(
		&stats.TotalApplications,
		&stats.SubmittedApplications,
		&stats.UnderReviewApplications,
		&stats.ShortlistedApplications,
		&stats.RejectedApplications,
		&stats.SelectedApplications,
	); err != nil {
		return nil, err
	}

	if err := groupCount(ctx, r.pool, `SELECT job_role, COUNT(*) FROM applications GROUP BY job_role`, stats.JobRoleStats); err != nil {
		return nil, err
	}
	if err := groupCount(ctx, r.pool, `SELECT experience, COUNT(*) FROM applications GROUP BY experience`, stats.ExperienceStats); err != nil {
		return nil, err
	}
	return stats, nil
}

func (r *applicationRepository) AddEmail(ctx context.Context, email *domain.ApplicationEmail) error {
	const query = `
        INSERT INTO application_emails (application_id, type, subject, body)
        VALUES ($1,$2,$3,$4)
        RETURNING id, sent_at`
	return r.pool.QueryRow(ctx, query,
		email.ApplicationID,
		email.Type,
		email.Subject,
		email.Body,
	).Scan(&email.ID, &email.SentAt)
}

func (r *applicationRepository) ListEmails(ctx context.Context, applicationID string) ([]domain.ApplicationEmail, error) {
	const query = `
        SELECT id, application_id, type, subject, body, sent_at
        FROM application_emails WHERE application_id=$1 ORDER BY sent_at ASC`
	rows, err := r.pool.Query(ctx, query, applicationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.ApplicationEmail
	for rows.Next() {
		var email domain.ApplicationEmail
		if err := rows.Scan(
			&email.ID,
			&email.ApplicationID,
			&email.Type,
			&email.Subject,
			&email.Body,
			&email.SentAt,
		); err != nil {
			return nil, err
		}
		result = append(result, email)
	}
	return result, rows.Err()
}

// resumeColumns flattens optional resume metadata into nullable columns.
type resumeColumns struct {
	filename     *string
	originalName *string
	mimetype     *string
	sizeBytes    *int64
	path         *string
}

func (rc *resumeColumns) from(info *domain.ResumeInfo) {
	if info == nil {
		return
	}
	rc.filename = &info.Filename
	rc.originalName = &info.OriginalName
	rc.mimetype = &info.MimeType
	rc.sizeBytes = &info.SizeBytes
	rc.path = &info.Path
}

func (rc resumeColumns) toInfo() *domain.ResumeInfo {
	if rc.filename == nil {
		return nil
	}
	info := &domain.ResumeInfo{Filename: *rc.filename}
	if rc.originalName != nil {
		info.OriginalName = *rc.originalName
	}
	if rc.mimetype != nil {
		info.MimeType = *rc.mimetype
	}
	if rc.sizeBytes != nil {
		info.SizeBytes = *rc.sizeBytes
	}
	if rc.path != nil {
		info.Path = *rc.path
	}
	return info
}

type rowQuerier interface {
	QueryRow(ctx context.Context, query string, args ...any) pgx.Row
}

func fetchApplication(ctx context.Context, q rowQuerier, query string, arg any) (*domain.Application, error) {
	return scanApplication(q.QueryRow(ctx, query, arg))
}

func scanApplication(row pgx.Row) (*domain.Application, error) {
	var app domain.Application
	var resume resumeColumns
	if err := row.Scan(
		&app.ID,
		&app.JobID,
		&app.FullName,
		&app.Email,
		&app.Phone,
		&app.Location,
		&app.JobRole,
		&app.Experience,
		&app.Skills,
		&app.CurrentCompany,
		&app.CurrentDesignation,
		&app.ExpectedSalary.Min,
		&app.ExpectedSalary.Max,
		&app.ExpectedSalary.Currency,
		&app.NoticePeriod,
		&app.CoverLetter,
		&app.LinkedinProfile,
		&app.Portfolio,
		&app.Github,
		&app.Website,
		&app.Source,
		&app.Status,
		&app.Priority,
		&resume.filename,
		&resume.originalName,
		&resume.mimetype,
		&resume.sizeBytes,
		&resume.path,
		&app.ReviewedBy,
		&app.ReviewedAt,
		&app.ReviewNotes,
		&app.IPAddress,
		&app.UserAgent,
		&app.CreatedAt,
		&app.UpdatedAt,
	); err != nil {
		return nil, err
	}
	app.Resume = resume.toInfo()
	return &app, nil
}

func groupCount(ctx context.Context, pool *pgxpool.Pool, query string, dest map[string]int64) error {
	rows, err := pool.Query(ctx, query)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var key string
		var count int64
		if err := rows.Scan(&key, &count); err != nil {
			return err
		}
		dest[key] = count
	}
	return rows.Err()
}
