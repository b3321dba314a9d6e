package persistence

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMigrations_LexicalOrder(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "002_second.sql"), []byte("SELECT 2;"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "001_first.sql"), []byte("SELECT 1;"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o644))

	migrations, err := loadMigrations(dir)
	require.NoError(t, err)
	require.Len(t, migrations, 2)
	assert.Equal(t, "001_first.sql", migrations[0].Name)
	assert.Equal(t, "002_second.sql", migrations[1].Name)
	assert.Equal(t, "SELECT 1;", migrations[0].SQL)
}

func TestLoadMigrations_MissingDir(t *testing.T) {
	_, err := loadMigrations(filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
}

// Deleting a job must not delete or block on its applications; the FK clears
// job_id instead so candidate records and resumes survive.
func TestApplicationsSchema_JobReferenceSetNull(t *testing.T) {
	migrations, err := loadMigrations(filepath.Join("..", "..", "migrations"))
	require.NoError(t, err)

	var applicationsDDL string
	for _, m := range migrations {
		if m.Name == "003_applications.sql" {
			applicationsDDL = m.SQL
		}
	}
	require.NotEmpty(t, applicationsDDL)
	assert.Contains(t, applicationsDDL, "job_id UUID REFERENCES jobs (id) ON DELETE SET NULL")
}
