// Package memory is an in-process storage.Storage. Data lives only as
// long as the process; it backs tests and throwaway demo runs.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/aanand-mishra/student-records/internal/storage"
	"github.com/aanand-mishra/student-records/internal/types"
)

// Memory is safe for concurrent use.
type Memory struct {
	mu       sync.RWMutex
	lastID   int64
	students map[int64]types.Student
}

// New returns an empty store.
func New() *Memory {
	return &Memory{students: make(map[int64]types.Student)}
}

func (m *Memory) Close() error { return nil }

func (m *Memory) CreateStudent(_ context.Context, student types.StudentRequest) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.lastID++
	m.students[m.lastID] = record(m.lastID, student)
	return m.lastID, nil
}

func (m *Memory) GetStudentByID(_ context.Context, id int64) (types.Student, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	student, ok := m.students[id]
	if !ok {
		return types.Student{}, notFound(id)
	}
	return clone(student), nil
}

func (m *Memory) GetStudents(_ context.Context) ([]types.Student, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	students := make([]types.Student, 0, len(m.students))
	for _, s := range m.students {
		students = append(students, clone(s))
	}
	sort.Slice(students, func(i, j int) bool { return students[i].ID < students[j].ID })
	return students, nil
}

func (m *Memory) UpdateStudentByID(_ context.Context, id int64, student types.StudentRequest) (types.Student, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.students[id]; !ok {
		return types.Student{}, notFound(id)
	}
	m.students[id] = record(id, student)
	return clone(m.students[id]), nil
}

func (m *Memory) DeleteStudentByID(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.students[id]; !ok {
		return notFound(id)
	}
	delete(m.students, id)
	return nil
}

func notFound(id int64) error {
	return fmt.Errorf("no student found with id %d: %w", id, storage.ErrNotFound)
}

func record(id int64, req types.StudentRequest) types.Student {
	return clone(types.Student{
		ID:            id,
		Name:          req.Name,
		StudentNumber: req.StudentNumber,
		Detail:        req.DetailRequest,
	})
}

// clone copies the detail block so callers never share memory with the
// stored record.
func clone(s types.Student) types.Student {
	if s.Detail == nil {
		return s
	}
	d := *s.Detail
	if d.DateOfBirth != nil {
		dob := *d.DateOfBirth
		d.DateOfBirth = &dob
	}
	s.Detail = &d
	return s
}
