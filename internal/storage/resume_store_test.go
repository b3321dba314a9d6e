package storage

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	apperrors "github.com/maplorix/jobboard-service/pkg/util"
)

func newTestStore(t *testing.T) *ResumeStore {
	t.Helper()
	store, err := NewResumeStore(t.TempDir(), 5*1024*1024, zap.NewNop())
	require.NoError(t, err)
	return store
}

func TestValidateUpload(t *testing.T) {
	store := newTestStore(t)

	t.Run("pdf accepted", func(t *testing.T) {
		assert.NoError(t, store.ValidateUpload("application/pdf", 1024))
	})

	t.Run("docx accepted", func(t *testing.T) {
		assert.NoError(t, store.ValidateUpload(
			"application/vnd.openxmlformats-officedocument.wordprocessingml.document", 1024))
	})

	t.Run("image rejected", func(t *testing.T) {
		err := store.ValidateUpload("image/png", 1024)
		require.Error(t, err)
		assert.Equal(t, apperrors.KindFileUpload, apperrors.ToDomainError(err).Kind)
	})

	t.Run("empty rejected", func(t *testing.T) {
		assert.Error(t, store.ValidateUpload("application/pdf", 0))
	})

	t.Run("oversize rejected", func(t *testing.T) {
		assert.Error(t, store.ValidateUpload("application/pdf", 6*1024*1024))
	})
}

func TestSaveAndRemove(t *testing.T) {
	store := newTestStore(t)

	info, err := store.Save("My Resume.pdf", "application/pdf", []byte("%PDF-1.4 content"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(info.Filename, "resume-"))
	assert.True(t, strings.HasSuffix(info.Filename, ".pdf"))
	assert.Equal(t, "My Resume.pdf", info.OriginalName)
	assert.Equal(t, int64(len("%PDF-1.4 content")), info.SizeBytes)

	written, err := os.ReadFile(info.Path)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4 content", string(written))

	path, err := store.Open(info)
	require.NoError(t, err)
	assert.NotEmpty(t, path)

	store.Remove(info)
	_, err = os.Stat(info.Path)
	assert.True(t, os.IsNotExist(err))

	// second remove of the same file is a no-op
	store.Remove(info)

	_, err = store.Open(info)
	require.Error(t, err)
	assert.Equal(t, apperrors.KindNotFound, apperrors.ToDomainError(err).Kind)
}

func TestSave_RejectsBadMimetype(t *testing.T) {
	store := newTestStore(t)
	_, err := store.Save("shell.sh", "application/x-sh", []byte("#!/bin/sh"))
	assert.Error(t, err)
}

func TestSave_UniqueFilenames(t *testing.T) {
	store := newTestStore(t)

	first, err := store.Save("resume.pdf", "application/pdf", []byte("a"))
	require.NoError(t, err)
	second, err := store.Save("resume.pdf", "application/pdf", []byte("b"))
	require.NoError(t, err)

	assert.NotEqual(t, first.Filename, second.Filename)
}
