// Package postgres provides a PostgreSQL-backed storage.Storage using a
// pgx connection pool. The schema mirrors the sqlite backend: students
// plus an optional student_details row per student.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/aanand-mishra/student-records/internal/storage"
	"github.com/aanand-mishra/student-records/internal/types"
)

const schema = `
	CREATE TABLE IF NOT EXISTS students (
		id             BIGSERIAL PRIMARY KEY,
		name           TEXT NOT NULL,
		student_number TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS student_details (
		student_id    BIGINT PRIMARY KEY REFERENCES students(id) ON DELETE CASCADE,
		address       TEXT NOT NULL,
		phone_number  TEXT NOT NULL,
		email         TEXT NOT NULL,
		date_of_birth DATE
	);
`

// date_of_birth is a DATE column; it is rendered back as YYYY-MM-DD text.
const selectStudents = `
	SELECT s.id, s.name, s.student_number,
	       d.address, d.phone_number, d.email, to_char(d.date_of_birth, 'YYYY-MM-DD')
	FROM students s
	LEFT JOIN student_details d ON d.student_id = s.id`

// Postgres is the pgx implementation of storage.Storage.
type Postgres struct {
	pool *pgxpool.Pool
}

// New connects to url, verifies the connection and creates the tables.
func New(ctx context.Context, url string) (*Postgres, error) {
	pool, err := pgxpool.New(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("postgres.New: connect: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres.New: ping: %w", err)
	}

	if _, err := pool.Exec(ctx, schema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres.New: create tables: %w", err)
	}

	return &Postgres{pool: pool}, nil
}

// Close closes the pool.
func (p *Postgres) Close() error {
	p.pool.Close()
	return nil
}

func (p *Postgres) CreateStudent(ctx context.Context, student types.StudentRequest) (int64, error) {
	var id int64
	err := pgx.BeginFunc(ctx, p.pool, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx,
			"INSERT INTO students (name, student_number) VALUES ($1, $2) RETURNING id",
			student.Name, student.StudentNumber,
		).Scan(&id)
		if err != nil {
			return fmt.Errorf("insert student: %w", err)
		}
		return putDetail(ctx, tx, id, student.DetailRequest)
	})
	if err != nil {
		return 0, fmt.Errorf("CreateStudent: %w", err)
	}
	return id, nil
}

func (p *Postgres) GetStudentByID(ctx context.Context, id int64) (types.Student, error) {
	row := p.pool.QueryRow(ctx, selectStudents+" WHERE s.id = $1", id)

	student, err := scanStudent(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return types.Student{}, fmt.Errorf("no student found with id %d: %w", id, storage.ErrNotFound)
		}
		return types.Student{}, fmt.Errorf("GetStudentByID: scan: %w", err)
	}
	return student, nil
}

func (p *Postgres) GetStudents(ctx context.Context) ([]types.Student, error) {
	rows, err := p.pool.Query(ctx, selectStudents+" ORDER BY s.id")
	if err != nil {
		return nil, fmt.Errorf("GetStudents: query: %w", err)
	}
	defer rows.Close()

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

func (p *Postgres) UpdateStudentByID(ctx context.Context, id int64, student types.StudentRequest) (types.Student, error) {
	err := pgx.BeginFunc(ctx, p.pool, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx,
			"UPDATE students SET name = $1, student_number = $2 WHERE id = $3",
			student.Name, student.StudentNumber, id,
		)
		if err != nil {
			return fmt.Errorf("update student: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return fmt.Errorf("no student found with id %d: %w", id, storage.ErrNotFound)
		}

		if _, err := tx.Exec(ctx, "DELETE FROM student_details WHERE student_id = $1", id); err != nil {
			return fmt.Errorf("clear detail: %w", err)
		}
		return putDetail(ctx, tx, id, student.DetailRequest)
	})
	if err != nil {
		return types.Student{}, fmt.Errorf("UpdateStudentByID: %w", err)
	}

	return p.GetStudentByID(ctx, id)
}

func (p *Postgres) DeleteStudentByID(ctx context.Context, id int64) error {
	tag, err := p.pool.Exec(ctx, "DELETE FROM students WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("DeleteStudentByID: exec: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("no student found with id %d: %w", id, storage.ErrNotFound)
	}
	return nil
}

func putDetail(ctx context.Context, tx pgx.Tx, id int64, d *types.Detail) error {
	if d == nil {
		return nil
	}
	_, err := tx.Exec(ctx,
		`INSERT INTO student_details (student_id, address, phone_number, email, date_of_birth)
		 VALUES ($1, $2, $3, $4, $5::text::date)`,
		id, d.Address, d.PhoneNumber, d.Email, d.DateOfBirth,
	)
	if err != nil {
		return fmt.Errorf("insert detail: %w", err)
	}
	return nil
}

func scanStudent(row pgx.Row) (types.Student, error) {
	var (
		student               types.Student
		address, phone, email *string
		birth                 *string
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

	if address != nil {
		student.Detail = &types.Detail{
			Address:     *address,
			PhoneNumber: deref(phone),
			Email:       deref(email),
			DateOfBirth: birth,
		}
	}

	return student, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
