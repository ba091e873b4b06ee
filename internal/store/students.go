package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/shulebooks/shulebooks/internal/model"
)

// StudentStore holds the enrollment register.
type StudentStore struct {
	db *sql.DB
}

const studentColumns = `id, name, nemis, grade, guardian, contact, enrolled_at`

// Add enrolls a student and returns the stored row. NEMIS numbers are
// unique across the register.
func (s *StudentStore) Add(ctx context.Context, st model.Student) (model.Student, error) {
	if st.EnrolledAt.IsZero() {
		st.EnrolledAt = time.Now().UTC()
	}
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO students (name, nemis, grade, guardian, contact, enrolled_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		st.Name, st.NEMIS, st.Grade, st.Guardian, st.Contact, fmtStamp(st.EnrolledAt))
	if err != nil {
		return model.Student{}, fmt.Errorf("insert student %q: %w", st.NEMIS, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Student{}, fmt.Errorf("read student id: %w", err)
	}
	st.ID = id

	slog.InfoContext(ctx, "student enrolled",
		"id", st.ID, "nemis", st.NEMIS, "grade", st.Grade)
	return st, nil
}

// Student returns one student by id.
func (s *StudentStore) Student(ctx context.Context, id int64) (model.Student, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+studentColumns+` FROM students WHERE id = ?`, id)
	st, err := scanStudent(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Student{}, fmt.Errorf("student %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return model.Student{}, fmt.Errorf("get student %d: %w", id, err)
	}
	return st, nil
}

// ByNEMIS returns the student with the given NEMIS number.
func (s *StudentStore) ByNEMIS(ctx context.Context, nemis string) (model.Student, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+studentColumns+` FROM students WHERE nemis = ?`, nemis)
	st, err := scanStudent(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Student{}, fmt.Errorf("student %q: %w", nemis, ErrNotFound)
	}
	if err != nil {
		return model.Student{}, fmt.Errorf("get student %q: %w", nemis, err)
	}
	return st, nil
}

// List returns every enrolled student ordered by grade, then name.
func (s *StudentStore) List(ctx context.Context) ([]model.Student, error) {
	return s.query(ctx, `SELECT `+studentColumns+` FROM students ORDER BY grade, name`)
}

// ByGrade returns the students of one grade ordered by name.
func (s *StudentStore) ByGrade(ctx context.Context, grade string) ([]model.Student, error) {
	return s.query(ctx, `SELECT `+studentColumns+` FROM students
		WHERE grade = ? ORDER BY name`, grade)
}

func (s *StudentStore) query(ctx context.Context, q string, args ...any) ([]model.Student, error) {
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query students: %w", err)
	}
	defer rows.Close()

	var students []model.Student
	for rows.Next() {
		st, err := scanStudent(rows)
		if err != nil {
			return nil, fmt.Errorf("scan student: %w", err)
		}
		students = append(students, st)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate students: %w", err)
	}
	return students, nil
}

func scanStudent(row rowScanner) (model.Student, error) {
	var (
		st     model.Student
		joined string
	)
	err := row.Scan(&st.ID, &st.Name, &st.NEMIS, &st.Grade, &st.Guardian,
		&st.Contact, &joined)
	if err != nil {
		return model.Student{}, err
	}
	if st.EnrolledAt, err = parseStamp(joined); err != nil {
		return model.Student{}, err
	}
	return st, nil
}
