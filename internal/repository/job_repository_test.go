package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/maplorix/jobboard-service/internal/domain"
)

func TestBuildJobWhere_Empty(t *testing.T) {
	where, args := BuildJobWhere(JobFilter{})
	assert.Equal(t, "1=1", where)
	assert.Empty(t, args)
}

func TestBuildJobWhere_Filters(t *testing.T) {
	category := domain.CategoryTechnology
	featured := true
	active := true
	location := "Bengaluru"

	where, args := BuildJobWhere(JobFilter{
		Category: &category,
		Featured: &featured,
		IsActive: &active,
		Location: &location,
	})

	assert.Contains(t, where, "category=$1")
	assert.Contains(t, where, "location ILIKE $2")
	assert.Contains(t, where, "featured=$3")
	assert.Contains(t, where, "is_active=$4")
	assert.Len(t, args, 4)
	assert.Equal(t, "%Bengaluru%", args[1])
}

func TestBuildJobWhere_SearchSharesPlaceholder(t *testing.T) {
	search := "engineer"
	where, args := BuildJobWhere(JobFilter{SearchTerm: &search})

	assert.Contains(t, where, "title ILIKE $1")
	assert.Contains(t, where, "company ILIKE $1")
	assert.Len(t, args, 1)
	assert.Equal(t, "%engineer%", args[0])
}

func TestBuildJobWhere_BlankSearchIgnored(t *testing.T) {
	search := "   "
	where, args := BuildJobWhere(JobFilter{SearchTerm: &search})
	assert.Equal(t, "1=1", where)
	assert.Empty(t, args)
}

func TestJobOrderBy(t *testing.T) {
	assert.Equal(t, "ORDER BY created_at DESC, id ASC", JobOrderBy("createdAt", true))
	assert.Equal(t, "ORDER BY title ASC, id ASC", JobOrderBy("title", false))
	assert.Equal(t, "ORDER BY application_deadline ASC, id ASC", JobOrderBy("applicationDeadline", false))
}

func TestJobOrderBy_UnknownColumnFallsBack(t *testing.T) {
	// unknown sort keys never reach the query verbatim
	assert.Equal(t, "ORDER BY created_at DESC, id ASC", JobOrderBy("id; DROP TABLE jobs", false))
	assert.Equal(t, "ORDER BY created_at DESC, id ASC", JobOrderBy("", true))
}
