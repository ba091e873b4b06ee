// Package students manages the enrollment register.
package students

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shulebooks/shulebooks/internal/model"
	"github.com/shulebooks/shulebooks/internal/store"
)

// Store is the persistence the service needs from the student store.
type Store interface {
	Add(ctx context.Context, st model.Student) (model.Student, error)
	Student(ctx context.Context, id int64) (model.Student, error)
	ByNEMIS(ctx context.Context, nemis string) (model.Student, error)
	List(ctx context.Context) ([]model.Student, error)
	ByGrade(ctx context.Context, grade string) ([]model.Student, error)
}

type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

// Enroll validates and registers a new student. NEMIS numbers are unique;
// enrolling one twice fails.
func (s *Service) Enroll(ctx context.Context, st model.Student) (model.Student, error) {
	st.NEMIS = strings.TrimSpace(st.NEMIS)
	if st.Name == "" {
		return model.Student{}, fmt.Errorf("student name is required")
	}
	if st.NEMIS == "" {
		return model.Student{}, fmt.Errorf("NEMIS number is required")
	}
	if strings.ContainsAny(st.NEMIS, " \t") {
		return model.Student{}, fmt.Errorf("NEMIS number %q must not contain spaces", st.NEMIS)
	}
	if !model.KnownGrade(st.Grade) {
		return model.Student{}, fmt.Errorf("unknown grade %q", st.Grade)
	}

	if _, err := s.store.ByNEMIS(ctx, st.NEMIS); err == nil {
		return model.Student{}, fmt.Errorf("student with NEMIS %s is already enrolled", st.NEMIS)
	} else if !errors.Is(err, store.ErrNotFound) {
		return model.Student{}, err
	}

	return s.store.Add(ctx, st)
}

// Get returns one student by id.
func (s *Service) Get(ctx context.Context, id int64) (model.Student, error) {
	return s.store.Student(ctx, id)
}

// ByNEMIS returns the student with the given NEMIS number.
func (s *Service) ByNEMIS(ctx context.Context, nemis string) (model.Student, error) {
	return s.store.ByNEMIS(ctx, strings.TrimSpace(nemis))
}

// List returns every enrolled student.
func (s *Service) List(ctx context.Context) ([]model.Student, error) {
	return s.store.List(ctx)
}

// ByGrade returns the students of one grade.
func (s *Service) ByGrade(ctx context.Context, grade string) ([]model.Student, error) {
	return s.store.ByGrade(ctx, grade)
}
