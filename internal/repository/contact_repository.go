package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/maplorix/jobboard-service/internal/domain"
)

// ContactFilter captures listing parameters for inquiries.
type ContactFilter struct {
	Status     *domain.ContactStatus
	Priority   *domain.ContactPriority
	Category   *domain.ContactCategory
	SearchTerm *string
	SortBy     string
	SortDesc   bool
	Limit      int
	Offset     int
}

// ContactStats aggregates counters for the stats endpoint.
type ContactStats struct {
	TotalContacts      int64            `json:"totalContacts"`
	PendingContacts    int64            `json:"pendingContacts"`
	InProgressContacts int64            `json:"inProgressContacts"`
	ResolvedContacts   int64            `json:"resolvedContacts"`
	PriorityStats      map[string]int64 `json:"priorityStats"`
	CategoryStats      map[string]int64 `json:"categoryStats"`
}

// ContactRepository encapsulates inquiry persistence.
type ContactRepository interface {
	Create(ctx context.Context, contact *domain.Contact) error
	Update(ctx context.Context, contact *domain.Contact) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.Contact, error)
	ListWithFilter(ctx context.Context, filter ContactFilter) ([]domain.Contact, int64, error)
	Stats(ctx context.Context) (*ContactStats, error)
	AddNote(ctx context.Context, note *domain.ContactNote) error
	ListNotes(ctx context.Context, contactID string) ([]domain.ContactNote, error)
}

type contactRepository struct {
	pool *pgxpool.Pool
}

// NewContactRepository instantiates repository.
func NewContactRepository(pool *pgxpool.Pool) ContactRepository {
	return &contactRepository{pool: pool}
}

const contactColumns = `id, name, email, phone, subject, message, status, priority, category,
        assigned_to, response_sent, response_sent_at, ip_address, user_agent, created_at, updated_at`

var contactSortColumns = map[string]string{
	"createdAt": "created_at",
	"updatedAt": "updated_at",
	"name":      "name",
	"status":    "status",
	"priority":  "priority",
}

func (r *contactRepository) Create(ctx context.Context, contact *domain.Contact) error {
	const query = `
        INSERT INTO contacts (name, email, phone, subject, message, status, priority, category,
            ip_address, user_agent)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		contact.Name,
		contact.Email,
		contact.Phone,
		contact.Subject,
		contact.Message,
		contact.Status,
		contact.Priority,
		contact.Category,
		contact.IPAddress,
		contact.UserAgent,
	).Scan(&contact.ID, &contact.CreatedAt, &contact.UpdatedAt)
}

func (r *contactRepository) Update(ctx context.Context, contact *domain.Contact) error {
	const query = `
        UPDATE contacts SET status=$1, priority=$2, category=$3, assigned_to=$4,
            response_sent=$5, response_sent_at=$6, updated_at=NOW()
        WHERE id=$7`
	cmd, err := r.pool.Exec(ctx, query,
		contact.Status,
		contact.Priority,
		contact.Category,
		contact.AssignedTo,
		contact.ResponseSent,
		contact.ResponseSentAt,
		contact.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *contactRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM contacts WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *contactRepository) GetByID(ctx context.Context, id string) (*domain.Contact, error) {
	var contact domain.Contact
	if err := r.pool.QueryRow(ctx, `SELECT `+contactColumns+` FROM contacts WHERE id=$1`, id).Scan(
		&contact.ID,
		&contact.Name,
		&contact.Email,
		&contact.Phone,
		&contact.Subject,
		&contact.Message,
		&contact.Status,
		&contact.Priority,
		&contact.Category,
		&contact.AssignedTo,
		&contact.ResponseSent,
		&contact.ResponseSentAt,
		&contact.IPAddress,
		&contact.UserAgent,
		&contact.CreatedAt,
		&contact.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &contact, nil
}

// BuildContactWhere renders the filter into a WHERE clause and args.
func BuildContactWhere(filter ContactFilter) (string, []any) {
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
	if filter.Category != nil {
		args = append(args, *filter.Category)
		clauses = append(clauses, fmt.Sprintf("category=$%d", len(args)))
	}
	if filter.SearchTerm != nil && strings.TrimSpace(*filter.SearchTerm) != "" {
		args = append(args, "%"+strings.TrimSpace(*filter.SearchTerm)+"%")
		placeholder := fmt.Sprintf("$%d", len(args))
		clauses = append(clauses, fmt.Sprintf(
			"(name ILIKE %s OR email ILIKE %s OR subject ILIKE %s OR message ILIKE %s)",
			placeholder, placeholder, placeholder, placeholder))
	}

	return strings.Join(clauses, " AND "), args
}

func (r *contactRepository) ListWithFilter(ctx context.Context, filter ContactFilter) ([]domain.Contact, int64, error) {
	where, args := BuildContactWhere(filter)

	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM contacts WHERE `+where, args...).Scan(&total); err != nil {
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

	column, ok := contactSortColumns[filter.SortBy]
	desc := filter.SortDesc
	if !ok {
		column = "created_at"
		desc = true
	}
	direction := "ASC"
	if desc {
		direction = "DESC"
	}

	query := fmt.Sprintf(`SELECT %s FROM contacts WHERE %s ORDER BY %s %s, id ASC LIMIT %d OFFSET %d`,
		contactColumns, where, column, direction, limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var result []domain.Contact
	for rows.Next() {
		var contact domain.Contact
		if err := rows.Scan(
			&contact.ID,
			&contact.Name,
			&contact.Email,
			&contact.Phone,
			&contact.Subject,
			&contact.Message,
			&contact.Status,
			&contact.Priority,
			&contact.Category,
			&contact.AssignedTo,
			&contact.ResponseSent,
			&contact.ResponseSentAt,
			&contact.IPAddress,
			&contact.UserAgent,
			&contact.CreatedAt,
			&contact.UpdatedAt,
		); err != nil {
			return nil, 0, err
		}
		result = append(result, contact)
	}
	return result, total, rows.Err()
}

func (r *contactRepository) Stats(ctx context.Context) (*ContactStats, error) {
	stats := &ContactStats{
		PriorityStats: map[string]int64{},
		CategoryStats: map[string]int64{},
	}

	const totals = `
        SELECT COUNT(*),
               COUNT(*) FILTER (WHERE status='pending'),
               COUNT(*) FILTER (WHERE status='in-progress'),
               COUNT(*) FILTER (WHERE status='resolved')
        FROM contacts`
	if err := r.pool.QueryRow(ctx, totals).Scan(
		&stats.TotalContacts,
		&stats.PendingContacts,
		&stats.InProgressContacts,
		&stats.ResolvedContacts,
	); err != nil {
		return nil, err
	}

	if err := groupCount(ctx, r.pool, `SELECT priority, COUNT(*) FROM contacts GROUP BY priority`, stats.PriorityStats); err != nil {
		return nil, err
	}
	if err := groupCount(ctx, r.pool, `SELECT category, COUNT(*) FROM contacts GROUP BY category`, stats.CategoryStats); err != nil {
		return nil, err
	}
	return stats, nil
}

func (r *contactRepository) AddNote(ctx context.Context, note *domain.ContactNote) error {
	const query = `
        INSERT INTO contact_notes (contact_id, content, added_by)
        VALUES ($1,$2,$3)
        RETURNING id, added_at`
	return r.pool.QueryRow(ctx, query,
		note.ContactID,
		note.Content,
		note.AddedBy,
	).Scan(&note.ID, &note.AddedAt)
}

func (r *contactRepository) ListNotes(ctx context.Context, contactID string) ([]domain.ContactNote, error) {
	const query = `
        SELECT id, contact_id, content, added_by, added_at
        FROM contact_notes WHERE contact_id=$1 ORDER BY added_at ASC`
	rows, err := r.pool.Query(ctx, query, contactID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.ContactNote
	for rows.Next() {
		var note domain.ContactNote
		if err := rows.Scan(&note.ID, &note.ContactID, &note.Content, &note.AddedBy, &note.AddedAt); err != nil {
			return nil, err
		}
		result = append(result, note)
	}
	return result, rows.Err()
}
