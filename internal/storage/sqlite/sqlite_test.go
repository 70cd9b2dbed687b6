package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aanand-mishra/student-records/internal/storage"
	"github.com/aanand-mishra/student-records/internal/storage/storagetest"
	"github.com/aanand-mishra/student-records/internal/types"
)

func newTestStore(t *testing.T) *SQLite {
	t.Helper()
	s, err := New(filepath.Join(t.TempDir(), "students.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSQLite(t *testing.T) {
	storagetest.Run(t, func(t *testing.T) storage.Storage {
		return newTestStore(t)
	})
}

func TestSQLite_DeleteCascadesDetail(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	id, err := s.CreateStudent(ctx, types.StudentRequest{
		Name:          "Kim",
		StudentNumber: "S12345",
		DetailRequest: &types.Detail{Address: "Seoul City", PhoneNumber: "010", Email: "a@b.com"},
	})
	require.NoError(t, err)
	require.NoError(t, s.DeleteStudentByID(ctx, id))

	var n int
	require.NoError(t, s.Db.QueryRow("SELECT COUNT(*) FROM student_details").Scan(&n))
	assert.Zero(t, n)
}

func TestSQLite_ReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "students.db")
	ctx := context.Background()

	s, err := New(path)
	require.NoError(t, err)
	id, err := s.CreateStudent(ctx, types.StudentRequest{Name: "Kim", StudentNumber: "S12345"})
	require.NoError(t, err)
	require.NoError(t, s.Close())

	reopened, err := New(path)
	require.NoError(t, err)
	defer reopened.Close()

	got, err := reopened.GetStudentByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Kim", got.Name)
}
