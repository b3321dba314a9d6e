package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/maplorix/jobboard-service/internal/domain"
	apperrors "github.com/maplorix/jobboard-service/pkg/util"
)

// allowedResumeTypes maps accepted mimetypes to canonical extensions.
var allowedResumeTypes = map[string]string{
	"application/pdf":    ".pdf",
	"application/msword": ".doc",
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": ".docx",
}

// ResumeStore stages uploaded resume files under the uploads directory with
// random filenames. The database keeps metadata only.
type ResumeStore struct {
	dir      string
	maxBytes int64
	logger   *zap.Logger
}

// NewResumeStore creates the uploads directory if needed.
func NewResumeStore(dir string, maxBytes int64, logger *zap.Logger) (*ResumeStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create uploads dir: %w", err)
	}
	return &ResumeStore{dir: dir, maxBytes: maxBytes, logger: logger}, nil
}

// ValidateUpload checks mimetype and size before any bytes touch disk.
func (s *ResumeStore) ValidateUpload(mimetype string, size int64) error {
	if _, ok := allowedResumeTypes[mimetype]; !ok {
		return apperrors.NewFileUploadError("only PDF, DOC and DOCX files are allowed")
	}
	if size <= 0 {
		return apperrors.NewFileUploadError("uploaded file is empty")
	}
	if size > s.maxBytes {
		return apperrors.NewFileUploadError(fmt.Sprintf("file exceeds the %dMB limit", s.maxBytes/(1024*1024)))
	}
	return nil
}

// Save writes the file content and returns its metadata.
func (s *ResumeStore) Save(originalName, mimetype string, content []byte) (*domain.ResumeInfo, error) {
	if err := s.ValidateUpload(mimetype, int64(len(content))); err != nil {
		return nil, err
	}

	ext := allowedResumeTypes[mimetype]
	if fromName := strings.ToLower(filepath.Ext(originalName)); fromName != "" {
		ext = fromName
	}
	filename := "resume-" + uuid.NewString() + ext
	path := filepath.Join(s.dir, filename)

	if err := os.WriteFile(path, content, 0o644); err != nil {
		return nil, apperrors.NewInternalError(fmt.Errorf("write resume: %w", err))
	}

	return &domain.ResumeInfo{
		Filename:     filename,
		OriginalName: originalName,
		MimeType:     mimetype,
		SizeBytes:    int64(len(content)),
		Path:         path,
	}, nil
}

// Remove deletes a stored resume file. Missing files are logged, not fatal.
func (s *ResumeStore) Remove(info *domain.ResumeInfo) {
	if info == nil || info.Path == "" {
		return
	}
	if err := os.Remove(info.Path); err != nil && !os.IsNotExist(err) {
		s.logger.Warn("failed to remove resume file", zap.String("path", info.Path), zap.Error(err))
	}
}

// Open returns the absolute path after verifying the file exists.
func (s *ResumeStore) Open(info *domain.ResumeInfo) (string, error) {
	if info == nil || info.Path == "" {
		return "", apperrors.NewNotFound("resume file")
	}
	if _, err := os.Stat(info.Path); err != nil {
		if os.IsNotExist(err) {
			return "", apperrors.NewNotFound("resume file")
		}
		return "", apperrors.NewInternalError(err)
	}
	abs, err := filepath.Abs(info.Path)
	if err != nil {
		return "", apperrors.NewInternalError(err)
	}
	return abs, nil
}
