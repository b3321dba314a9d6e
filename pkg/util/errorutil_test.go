package util

import (
	"errors"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToDomainError_PassThrough(t *testing.T) {
	original := NewForbidden("no access")
	mapped := ToDomainError(original)
	assert.Equal(t, KindForbidden, mapped.Kind)
	assert.Equal(t, http.StatusForbidden, mapped.HTTPStatus)
}

func TestToDomainError_NoRows(t *testing.T) {
	mapped := ToDomainError(pgx.ErrNoRows)
	assert.Equal(t, KindNotFound, mapped.Kind)
	assert.Equal(t, http.StatusNotFound, mapped.HTTPStatus)
}

func TestToDomainError_UniqueViolation(t *testing.T) {
	mapped := ToDomainError(&pgconn.PgError{Code: "23505"})
	assert.Equal(t, KindDuplicate, mapped.Kind)
	assert.Equal(t, http.StatusConflict, mapped.HTTPStatus)
}

func TestToDomainError_OtherPgErrorIsServer(t *testing.T) {
	mapped := ToDomainError(&pgconn.PgError{Code: "23503"})
	assert.Equal(t, KindServer, mapped.Kind)
	assert.Equal(t, http.StatusInternalServerError, mapped.HTTPStatus)
}

func TestToDomainError_GenericError(t *testing.T) {
	mapped := ToDomainError(errors.New("boom"))
	assert.Equal(t, KindServer, mapped.Kind)
	assert.Equal(t, "internal server error", mapped.Message)
}

func TestToDomainError_Nil(t *testing.T) {
	assert.Nil(t, ToDomainError(nil))
}

func TestDomainError_Unwrap(t *testing.T) {
	inner := errors.New("disk full")
	err := NewInternalError(inner)

	var domainErr *DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.True(t, errors.Is(err, inner))
}

func TestValidationErrorCarriesDetails(t *testing.T) {
	err := NewValidationError("request validation failed", map[string]any{"email": "must be a valid email address"})
	mapped := ToDomainError(err)
	assert.Equal(t, http.StatusBadRequest, mapped.HTTPStatus)
	assert.Equal(t, "must be a valid email address", mapped.Details["email"])
}
