// Package reminders finds receivables that are due for a chase.
package reminders

import (
	"context"
	"fmt"
	"time"

	"github.com/shulebooks/shulebooks/internal/model"
)

// Log is the slice of the transaction store the scanner needs.
type Log interface {
	PendingByCategory(ctx context.Context, category model.Category) ([]model.Transaction, error)
	SetReminded(ctx context.Context, id int64, on time.Time) error
}

// Directory resolves the student a receivable is tied to.
type Directory interface {
	Student(ctx context.Context, id int64) (model.Student, error)
}

// Reminder is one receivable worth chasing today.
type Reminder struct {
	Tx      model.Transaction
	Student model.Student // zero value unless tied to a student
	DaysDue int           // days until the due date; negative when overdue
}

type Service struct {
	log      Log
	students Directory
	leadDays int
}

// NewService builds a scanner that flags receivables due within leadDays.
func NewService(log Log, students Directory, leadDays int) *Service {
	return &Service{log: log, students: students, leadDays: leadDays}
}

// Due returns pending receivables whose due date falls within the lead
// window or has passed, skipping any already reminded today. Each
// receivable is flagged at most once per day.
func (s *Service) Due(ctx context.Context, today time.Time) ([]Reminder, error) {
	today = midnight(today)
	cutoff := today.AddDate(0, 0, s.leadDays)

	open, err := s.log.PendingByCategory(ctx, model.CategoryReceivable)
	if err != nil {
		return nil, fmt.Errorf("loading pending receivables: %w", err)
	}

	var due []Reminder
	for _, tx := range open {
		if tx.DueDate.IsZero() || tx.DueDate.After(cutoff) {
			continue
		}
		if tx.RemindedAt.Equal(today) {
			continue
		}
		r := Reminder{
			Tx:      tx,
			DaysDue: int(tx.DueDate.Sub(today).Hours() / 24),
		}
		if tx.StudentID != 0 {
			st, err := s.students.Student(ctx, tx.StudentID)
			if err != nil {
				return nil, fmt.Errorf("resolving student for transaction %d: %w", tx.ID, err)
			}
			r.Student = st
		}
		due = append(due, r)
	}
	return due, nil
}

// MarkReminded stamps today on a receivable so it stays quiet until
// tomorrow.
func (s *Service) MarkReminded(ctx context.Context, id int64, today time.Time) error {
	return s.log.SetReminded(ctx, id, midnight(today))
}

func midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
