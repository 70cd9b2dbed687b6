// Package storagetest holds the behaviour every storage.Storage backend
// must share. Backend packages call Run from their own tests.
package storagetest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aanand-mishra/student-records/internal/storage"
	"github.com/aanand-mishra/student-records/internal/types"
)

// Factory returns an empty store. The caller owns cleanup.
type Factory func(t *testing.T) storage.Storage

func ptr(s string) *string { return &s }

func kim() types.StudentRequest {
	return types.StudentRequest{
		Name:          "Kim",
		StudentNumber: "S12345",
		DetailRequest: &types.Detail{
			Address:     "Seoul City",
			PhoneNumber: "010-1234-5678",
			Email:       "kim@example.com",
			DateOfBirth: ptr("2001-03-09"),
		},
	}
}

// Run exercises a backend against the storage.Storage contract.
func Run(t *testing.T, newStore Factory) {
	ctx := context.Background()

	t.Run("empty list is not nil", func(t *testing.T) {
		s := newStore(t)
		students, err := s.GetStudents(ctx)
		require.NoError(t, err)
		assert.NotNil(t, students)
		assert.Empty(t, students)
	})

	t.Run("create and read back with detail", func(t *testing.T) {
		s := newStore(t)
		id, err := s.CreateStudent(ctx, kim())
		require.NoError(t, err)
		assert.Positive(t, id)

		got, err := s.GetStudentByID(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, id, got.ID)
		assert.Equal(t, "Kim", got.Name)
		assert.Equal(t, "S12345", got.StudentNumber)
		require.NotNil(t, got.Detail)
		assert.Equal(t, "Seoul City", got.Detail.Address)
		assert.Equal(t, "010-1234-5678", got.Detail.PhoneNumber)
		assert.Equal(t, "kim@example.com", got.Detail.Email)
		require.NotNil(t, got.Detail.DateOfBirth)
		assert.Equal(t, "2001-03-09", *got.Detail.DateOfBirth)
	})

	t.Run("create without detail", func(t *testing.T) {
		s := newStore(t)
		id, err := s.CreateStudent(ctx, types.StudentRequest{Name: "Lee", StudentNumber: "A98765"})
		require.NoError(t, err)

		got, err := s.GetStudentByID(ctx, id)
		require.NoError(t, err)
		assert.Nil(t, got.Detail)
	})

	t.Run("null date of birth", func(t *testing.T) {
		s := newStore(t)
		req := kim()
		req.DetailRequest.DateOfBirth = nil
		id, err := s.CreateStudent(ctx, req)
		require.NoError(t, err)

		got, err := s.GetStudentByID(ctx, id)
		require.NoError(t, err)
		require.NotNil(t, got.Detail)
		assert.Nil(t, got.Detail.DateOfBirth)
	})

	t.Run("list is ordered by id", func(t *testing.T) {
		s := newStore(t)
		first, err := s.CreateStudent(ctx, kim())
		require.NoError(t, err)
		second, err := s.CreateStudent(ctx, types.StudentRequest{Name: "Lee", StudentNumber: "A98765"})
		require.NoError(t, err)

		students, err := s.GetStudents(ctx)
		require.NoError(t, err)
		require.Len(t, students, 2)
		assert.Equal(t, first, students[0].ID)
		assert.Equal(t, second, students[1].ID)
		assert.NotNil(t, students[0].Detail)
		assert.Nil(t, students[1].Detail)
	})

	t.Run("update replaces fields and detail", func(t *testing.T) {
		s := newStore(t)
		id, err := s.CreateStudent(ctx, kim())
		require.NoError(t, err)

		updated, err := s.UpdateStudentByID(ctx, id, types.StudentRequest{
			Name:          "Kim Updated",
			StudentNumber: "S54321",
			DetailRequest: &types.Detail{Address: "Busan Port", PhoneNumber: "051 123 4567", Email: "k@b.kr"},
		})
		require.NoError(t, err)
		assert.Equal(t, id, updated.ID)
		assert.Equal(t, "Kim Updated", updated.Name)
		assert.Equal(t, "S54321", updated.StudentNumber)
		require.NotNil(t, updated.Detail)
		assert.Equal(t, "Busan Port", updated.Detail.Address)
		assert.Nil(t, updated.Detail.DateOfBirth)

		cleared, err := s.UpdateStudentByID(ctx, id, types.StudentRequest{Name: "Kim", StudentNumber: "S12345"})
		require.NoError(t, err)
		assert.Nil(t, cleared.Detail)
	})

	t.Run("delete", func(t *testing.T) {
		s := newStore(t)
		id, err := s.CreateStudent(ctx, kim())
		require.NoError(t, err)

		require.NoError(t, s.DeleteStudentByID(ctx, id))

		_, err = s.GetStudentByID(ctx, id)
		assert.ErrorIs(t, err, storage.ErrNotFound)

		students, err := s.GetStudents(ctx)
		require.NoError(t, err)
		assert.Empty(t, students)
	})

	t.Run("unknown id", func(t *testing.T) {
		s := newStore(t)

		_, err := s.GetStudentByID(ctx, 999)
		assert.ErrorIs(t, err, storage.ErrNotFound)

		_, err = s.UpdateStudentByID(ctx, 999, kim())
		assert.ErrorIs(t, err, storage.ErrNotFound)

		err = s.DeleteStudentByID(ctx, 999)
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("stored detail is not aliased", func(t *testing.T) {
		s := newStore(t)
		req := kim()
		id, err := s.CreateStudent(ctx, req)
		require.NoError(t, err)

		req.DetailRequest.Address = "changed after create"
		got, err := s.GetStudentByID(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, "Seoul City", got.Detail.Address)

		got.Detail.Address = "changed after read"
		again, err := s.GetStudentByID(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, "Seoul City", again.Detail.Address)
	})
}
