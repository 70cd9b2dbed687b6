// Package sqlite provides a SQLite-backed implementation of the
// storage.Storage interface using Go's standard database/sql package.
//
// SQLite stores everything in a single file on disk. There is no
// network, no separate server process, and no installation beyond the
// driver.
//
// Students live in two tables: students holds the identity fields and
// student_details holds the optional contact block, one row per student
// at most. A student without a details row reads back with no detail.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/aanand-mishra/student-records/internal/storage"
	"github.com/aanand-mishra/student-records/internal/types"

	// Blank import: side-effect only (registers the "sqlite3" driver).
	_ "github.com/mattn/go-sqlite3"
)

const schema = `
	CREATE TABLE IF NOT EXISTS students (
		id             INTEGER PRIMARY KEY AUTOINCREMENT,
		name           TEXT    NOT NULL,
		student_number TEXT    NOT NULL
	);

	CREATE TABLE IF NOT EXISTS student_details (
		student_id    INTEGER PRIMARY KEY REFERENCES students(id) ON DELETE CASCADE,
		address       TEXT NOT NULL,
		phone_number  TEXT NOT NULL,
		email         TEXT NOT NULL,
		date_of_birth TEXT
	);
`

// selectStudents lists columns explicitly; Scan depends on their order.
const selectStudents = `
	SELECT s.id, s.name, s.student_number,
	       d.address, d.phone_number, d.email, d.date_of_birth
	FROM students s
	LEFT JOIN student_details d ON d.student_id = s.id`

// SQLite is the concrete implementation of storage.Storage.
// It holds a *sql.DB which is a connection pool managed by database/sql.
// A single *sql.DB is safe for concurrent use by multiple goroutines.
type SQLite struct {
	Db *sql.DB
}

// New opens the SQLite database at path, creates the tables if they do
// not already exist, and returns a ready-to-use *SQLite.
func New(path string) (*SQLite, error) {
	// _foreign_keys=on makes ON DELETE CASCADE effective on every
	// pooled connection.
	db, err := sql.Open("sqlite3", "file:"+path+"?_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("sqlite.New: open db: %w", err)
	}

	// CREATE TABLE IF NOT EXISTS is idempotent: safe to run on every
	// startup.
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite.New: create tables: %w", err)
	}

	return &SQLite{Db: db}, nil
}

// Close closes the underlying connection pool.
func (s *SQLite) Close() error {
	return s.Db.Close()
}

// CreateStudent inserts the student row and, when the request carries a
// detail block, its details row, in one transaction.
func (s *SQLite) CreateStudent(ctx context.Context, student types.StudentRequest) (int64, error) {
	tx, err := s.Db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("CreateStudent: begin: %w", err)
	}
	// Rollback after a successful Commit is a no-op.
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx,
		"INSERT INTO students (name, student_number) VALUES (?, ?)",
		student.Name, student.StudentNumber,
	)
	if err != nil {
		return 0, fmt.Errorf("CreateStudent: exec: %w", err)
	}

	lastID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("CreateStudent: last insert id: %w", err)
	}

	if err := putDetail(ctx, tx, lastID, student.DetailRequest); err != nil {
		return 0, fmt.Errorf("CreateStudent: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("CreateStudent: commit: %w", err)
	}

	return lastID, nil
}

// GetStudentByID fetches exactly one student matched by primary key.
func (s *SQLite) GetStudentByID(ctx context.Context, id int64) (types.Student, error) {
	row := s.Db.QueryRowContext(ctx, selectStudents+" WHERE s.id = ? LIMIT 1", id)

	student, err := scanStudent(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.Student{}, fmt.Errorf("no student found with id %d: %w", id, storage.ErrNotFound)
		}
		return types.Student{}, fmt.Errorf("GetStudentByID: scan: %w", err)
	}

	return student, nil
}

// GetStudents returns all students ordered by id.
func (s *SQLite) GetStudents(ctx context.Context) ([]types.Student, error) {
	rows, err := s.Db.QueryContext(ctx, selectStudents+" ORDER BY s.id")
	if err != nil {
		return nil, fmt.Errorf("GetStudents: query: %w", err)
	}
	defer rows.Close() // must close rows to free the DB connection

	// Returning [] instead of null in JSON is better API behaviour.
	students := make([]types.Student, 0)

	for rows.Next() {
		student, err := scanStudent(rows)
		if err != nil {
			return nil, fmt.Errorf("GetStudents: scan row: %w", err)
		}
		students = append(students, student)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("GetStudents: rows iteration: %w", err)
	}

	return students, nil
}

// UpdateStudentByID replaces a student's data with the provided values
// and returns the record as stored.
func (s *SQLite) UpdateStudentByID(ctx context.Context, id int64, student types.StudentRequest) (types.Student, error) {
	tx, err := s.Db.BeginTx(ctx, nil)
	if err != nil {
		return types.Student{}, fmt.Errorf("UpdateStudentByID: begin: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx,
		"UPDATE students SET name = ?, student_number = ? WHERE id = ?",
		student.Name, student.StudentNumber, id,
	)
	if err != nil {
		return types.Student{}, fmt.Errorf("UpdateStudentByID: exec: %w", err)
	}
	if err := requireRow(result, id); err != nil {
		return types.Student{}, err
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM student_details WHERE student_id = ?", id); err != nil {
		return types.Student{}, fmt.Errorf("UpdateStudentByID: clear detail: %w", err)
	}
	if err := putDetail(ctx, tx, id, student.DetailRequest); err != nil {
		return types.Student{}, fmt.Errorf("UpdateStudentByID: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return types.Student{}, fmt.Errorf("UpdateStudentByID: commit: %w", err)
	}

	// Re-fetch the record so we return exactly what is stored in the DB.
	return s.GetStudentByID(ctx, id)
}

// DeleteStudentByID removes a student row by primary key. The details
// row goes with it through the foreign key cascade.
func (s *SQLite) DeleteStudentByID(ctx context.Context, id int64) error {
	result, err := s.Db.ExecContext(ctx, "DELETE FROM students WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("DeleteStudentByID: exec: %w", err)
	}
	return requireRow(result, id)
}

func putDetail(ctx context.Context, tx *sql.Tx, id int64, d *types.Detail) error {
	if d == nil {
		return nil
	}
	_, err := tx.ExecContext(ctx,
		`INSERT INTO student_details (student_id, address, phone_number, email, date_of_birth)
		 VALUES (?, ?, ?, ?, ?)`,
		id, d.Address, d.PhoneNumber, d.Email, d.DateOfBirth,
	)
	if err != nil {
		return fmt.Errorf("insert detail: %w", err)
	}
	return nil
}

func requireRow(result sql.Result, id int64) error {
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("no student found with id %d: %w", id, storage.ErrNotFound)
	}
	return nil
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanStudent(row scanner) (types.Student, error) {
	var (
		student                      types.Student
		address, phone, email, birth sql.NullString
	)

	if err := row.Scan(
		&student.ID,
		&student.Name,
		&student.StudentNumber,
		&address,
		&phone,
		&email,
		&birth,
	); err != nil {
		return types.Student{}, err
	}

	// address is NOT NULL in student_details, so NULL here means the
	// LEFT JOIN found no details row.
	if address.Valid {
		student.Detail = &types.Detail{
			Address:     address.String,
			PhoneNumber: phone.String,
			Email:       email.String,
		}
		if birth.Valid {
			student.Detail.DateOfBirth = &birth.String
		}
	}

	return student, nil
}
