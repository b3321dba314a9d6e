package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/maplorix/jobboard-service/internal/domain"
)

func TestBuildApplicationWhere_Empty(t *testing.T) {
	where, args := BuildApplicationWhere(ApplicationFilter{})
	assert.Equal(t, "1=1", where)
	assert.Empty(t, args)
}

func TestBuildApplicationWhere_StatusAndJob(t *testing.T) {
	status := domain.StatusShortlisted
	jobID := "0f6a6e1e-9dbb-4d5e-9a40-5ce55b5d1111"

	where, args := BuildApplicationWhere(ApplicationFilter{
		Status: &status,
		JobID:  &jobID,
	})

	assert.Contains(t, where, "status=$1")
	assert.Contains(t, where, "job_id=$2")
	assert.Equal(t, []any{status, jobID}, args)
}

func TestBuildApplicationWhere_SalaryRange(t *testing.T) {
	min := int64(500000)
	max := int64(1200000)

	where, args := BuildApplicationWhere(ApplicationFilter{
		MinSalary: &min,
		MaxSalary: &max,
	})

	assert.Contains(t, where, "expected_salary_min >= $1")
	assert.Contains(t, where, "expected_salary_max <= $2")
	assert.Len(t, args, 2)
}

func TestBuildApplicationWhere_DateRange(t *testing.T) {
	from := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 6, 30, 23, 59, 59, 0, time.UTC)

	where, args := BuildApplicationWhere(ApplicationFilter{
		CreatedFrom: &from,
		CreatedTo:   &to,
	})

	assert.Contains(t, where, "created_at >= $1")
	assert.Contains(t, where, "created_at <= $2")
	assert.Equal(t, from, args[0])
	assert.Equal(t, to, args[1])
}

func TestBuildApplicationWhere_SearchCoversCandidateFields(t *testing.T) {
	search := "golang"
	where, args := BuildApplicationWhere(ApplicationFilter{SearchTerm: &search})

	for _, field := range []string{"full_name", "email", "phone", "job_role", "skills"} {
		assert.Contains(t, where, field+" ILIKE $1")
	}
	assert.Equal(t, []any{"%golang%"}, args)
}

func TestBuildContactWhere(t *testing.T) {
	status := domain.ContactPending
	priority := domain.ContactPriorityUrgent
	search := "partnership"

	where, args := BuildContactWhere(ContactFilter{
		Status:     &status,
		Priority:   &priority,
		SearchTerm: &search,
	})

	assert.Contains(t, where, "status=$1")
	assert.Contains(t, where, "priority=$2")
	assert.Len(t, args, 3)
	assert.Equal(t, "%partnership%", args[2])
}
