package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/maplorix/jobboard-service/internal/domain"
)

// JobFilter captures listing parameters for postings.
type JobFilter struct {
	Category   *domain.JobCategory
	Type       *domain.JobType
	Experience *domain.ExperienceLevel
	Location   *string
	Featured   *bool
	IsActive   *bool
	PostedBy   *string
	SearchTerm *string
	SortBy     string
	SortDesc   bool
	Limit      int
	Offset     int
}

// JobStats aggregates posting counters for the stats endpoint.
type JobStats struct {
	TotalJobs     int64            `json:"totalJobs"`
	ActiveJobs    int64            `json:"activeJobs"`
	FeaturedJobs  int64            `json:"featuredJobs"`
	ExpiredJobs   int64            `json:"expiredJobs"`
	CategoryStats map[string]int64 `json:"categoryStats"`
	TypeStats     map[string]int64 `json:"typeStats"`
}

// JobRepository encapsulates posting persistence.
type JobRepository interface {
	Create(ctx context.Context, job *domain.Job) error
	Update(ctx context.Context, job *domain.Job) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.Job, error)
	ListWithFilter(ctx context.Context, filter JobFilter) ([]domain.Job, int64, error)
	Stats(ctx context.Context) (*JobStats, error)
}

type jobRepository struct {
	pool *pgxpool.Pool
}

// NewJobRepository instantiates repository.
func NewJobRepository(pool *pgxpool.Pool) JobRepository {
	return &jobRepository{pool: pool}
}

const jobColumns = `id, title, company, location, type, category, experience, description,
        requirements, salary_min, salary_max, salary_currency, is_active, featured,
        posted_by, application_count, application_deadline, tags, created_at, updated_at`

// jobSortColumns whitelists sortable fields against injection.
var jobSortColumns = map[string]string{
	"createdAt":           "created_at",
	"updatedAt":           "updated_at",
	"title":               "title",
	"company":             "company",
	"applicationDeadline": "application_deadline",
	"applicationCount":    "application_count",
}

func (r *jobRepository) Create(ctx context.Context, job *domain.Job) error {
	const query = `
        INSERT INTO jobs (title, company, location, type, category, experience, description,
            requirements, salary_min, salary_max, salary_currency, is_active, featured,
            posted_by, application_deadline, tags)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16)
        RETURNING id, application_count, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		job.Title,
		job.Company,
		job.Location,
		job.Type,
		job.Category,
		job.Experience,
		job.Description,
		job.Requirements,
		job.Salary.Min,
		job.Salary.Max,
		job.Salary.Currency,
		job.IsActive,
		job.Featured,
		job.PostedBy,
		job.ApplicationDeadline,
		job.Tags,
	).Scan(&job.ID, &job.ApplicationCount, &job.CreatedAt, &job.UpdatedAt)
}

func (r *jobRepository) Update(ctx context.Context, job *domain.Job) error {
	const query = `
        UPDATE jobs SET title=$1, company=$2, location=$3, type=$4, category=$5, experience=$6,
            description=$7, requirements=$8, salary_min=$9, salary_max=$10, salary_currency=$11,
            is_active=$12, featured=$13, application_deadline=$14, tags=$15, updated_at=NOW()
        WHERE id=$16`
	cmd, err := r.pool.Exec(ctx, query,
		job.Title,
		job.Company,
		job.Location,
		job.Type,
		job.Category,
		job.Experience,
		job.Description,
		job.Requirements,
		job.Salary.Min,
		job.Salary.Max,
		job.Salary.Currency,
		job.IsActive,
		job.Featured,
		job.ApplicationDeadline,
		job.Tags,
		job.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *jobRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM jobs WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *jobRepository) GetByID(ctx context.Context, id string) (*domain.Job, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+jobColumns+` FROM jobs WHERE id=$1`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	jobs, err := scanJobs(rows)
	if err != nil {
		return nil, err
	}
	if len(jobs) == 0 {
		return nil, pgx.ErrNoRows
	}
	return &jobs[0], nil
}

// BuildJobWhere renders the filter into a WHERE clause and args. Exported for
// reuse by the count query and tests.
func BuildJobWhere(filter JobFilter) (string, []any) {
	clauses := []string{"1=1"}
	args := []any{}

	if filter.Category != nil {
		args = append(args, *filter.Category)
		clauses = append(clauses, fmt.Sprintf("category=$%d", len(args)))
	}
	if filter.Type != nil {
		args = append(args, *filter.Type)
		clauses = append(clauses, fmt.Sprintf("type=$%d", len(args)))
	}
	if filter.Experience != nil {
		args = append(args, *filter.Experience)
		clauses = append(clauses, fmt.Sprintf("experience=$%d", len(args)))
	}
	if filter.Location != nil && strings.TrimSpace(*filter.Location) != "" {
		args = append(args, "%"+strings.TrimSpace(*filter.Location)+"%")
		clauses = append(clauses, fmt.Sprintf("location ILIKE $%d", len(args)))
	}
	if filter.Featured != nil {
		args = append(args, *filter.Featured)
		clauses = append(clauses, fmt.Sprintf("featured=$%d", len(args)))
	}
	if filter.IsActive != nil {
		args = append(args, *filter.IsActive)
		clauses = append(clauses, fmt.Sprintf("is_active=$%d", len(args)))
	}
	if filter.PostedBy != nil {
		args = append(args, *filter.PostedBy)
		clauses = append(clauses, fmt.Sprintf("posted_by=$%d", len(args)))
	}
	if filter.SearchTerm != nil && strings.TrimSpace(*filter.SearchTerm) != "" {
		args = append(args, "%"+strings.TrimSpace(*filter.SearchTerm)+"%")
		placeholder := fmt.Sprintf("$%d", len(args))
		clauses = append(clauses, fmt.Sprintf(
			"(title ILIKE %s OR company ILIKE %s OR description ILIKE %s OR requirements ILIKE %s)",
			placeholder, placeholder, placeholder, placeholder))
	}

	return strings.Join(clauses, " AND "), args
}

// JobOrderBy renders the validated sort expression with a stable id tie-break.
func JobOrderBy(sortBy string, desc bool) string {
	column, ok := jobSortColumns[sortBy]
	if !ok {
		column = "created_at"
		desc = true
	}
	direction := "ASC"
	if desc {
		direction = "DESC"
	}
	return fmt.Sprintf("ORDER BY %s %s, id ASC", column, direction)
}

func (r *jobRepository) ListWithFilter(ctx context.Context, filter JobFilter) ([]domain.Job, int64, error) {
	where, args := BuildJobWhere(filter)

	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM jobs WHERE `+where, args...).Scan(&total); err != nil {
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

	query := fmt.Sprintf(`SELECT %s FROM jobs WHERE %s %s LIMIT %d OFFSET %d`,
		jobColumns, where, JobOrderBy(filter.SortBy, filter.SortDesc), limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	jobs, err := scanJobs(rows)
	if err != nil {
		return nil, 0, err
	}
	return jobs, total, nil
}

func (r *jobRepository) Stats(ctx context.Context) (*JobStats, error) {
	stats := &JobStats{
		CategoryStats: map[string]int64{},
		TypeStats:     map[string]int64{},
	}

	const totals = `
        SELECT COUNT(*),
               COUNT(*) FILTER (WHERE is_active),
               COUNT(*) FILTER (WHERE featured),
               COUNT(*) FILTER (WHERE application_deadline < NOW())
        FROM jobs`
	if err := r.pool.QueryRow(ctx, totals).Scan(
		&stats.TotalJobs, &stats.ActiveJobs, &stats.FeaturedJobs, &stats.ExpiredJobs,
	); err != nil {
		return nil, err
	}

	if err := groupCount(ctx, r.pool, `SELECT category, COUNT(*) FROM jobs GROUP BY category`, stats.CategoryStats); err != nil {
		return nil, err
	}
	if err := groupCount(ctx, r.pool, `SELECT type, COUNT(*) FROM jobs GROUP BY type`, stats.TypeStats); err != nil {
		return nil, err
	}
	return stats, nil
}

func scanJobs(rows pgx.Rows) ([]domain.Job, error) {
	var result []domain.Job
	for rows.Next() {
		var job domain.Job
		if err := rows.Scan(
			&job.ID,
			&job.Title,
			&job.Company,
			&job.Location,
			&job.Type,
			&job.Category,
			&job.Experience,
			&job.Description,
			&job.Requirements,
			&job.Salary.Min,
			&job.Salary.Max,
			&job.Salary.Currency,
			&job.IsActive,
			&job.Featured,
			&job.PostedBy,
			&job.ApplicationCount,
			&job.ApplicationDeadline,
			&job.Tags,
			&job.CreatedAt,
			&job.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, job)
	}
	return result, rows.Err()
}
