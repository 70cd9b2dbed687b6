// Package storage defines the Storage interface: a contract that any
// database backend must satisfy to serve the records API.
//
// Handlers (HTTP layer) should not know or care which database they are
// talking to. Three backends implement it: sqlite (the default), postgres
// and an in-process memory store used by tests and demos. main.go picks
// one from the config.
package storage

import (
	"context"
	"errors"

	"github.com/aanand-mishra/student-records/internal/types"
)

// ErrNotFound is returned when no student has the requested id.
// Backends wrap it, so check with errors.Is.
var ErrNotFound = errors.New("student not found")

// Storage is the database contract.
type Storage interface {
	// CreateStudent inserts a new student (and its detail block, if any)
	// and returns the auto-generated primary-key ID.
	CreateStudent(ctx context.Context, student types.StudentRequest) (int64, error)

	// GetStudentByID fetches a single student by their primary key.
	// Returns ErrNotFound if there is no such student.
	GetStudentByID(ctx context.Context, id int64) (types.Student, error)

	// GetStudents returns every student, ordered by id.
	// Returns an empty slice (not nil) if there are no students.
	GetStudents(ctx context.Context) ([]types.Student, error)

	// UpdateStudentByID replaces the fields of an existing student,
	// including its detail block: a request without one removes it.
	// Returns the stored record or ErrNotFound.
	UpdateStudentByID(ctx context.Context, id int64, student types.StudentRequest) (types.Student, error)

	// DeleteStudentByID removes a student record permanently.
	// Returns ErrNotFound if there is no such student.
	DeleteStudentByID(ctx context.Context, id int64) error

	// Close releases the backend's resources.
	Close() error
}
