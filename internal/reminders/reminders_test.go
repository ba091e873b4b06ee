package reminders

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shulebooks/shulebooks/internal/model"
	"github.com/shulebooks/shulebooks/internal/store"
)

func date(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

func testStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.Open(filepath.Join(t.TempDir(), "books.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func appendOpen(t *testing.T, s *store.Store, category model.Category, due, reminded time.Time, studentID int64) model.Transaction {
	t.Helper()
	tx, err := s.Transactions.Append(context.Background(), model.Transaction{
		Date:        date(2025, 1, 3),
		Category:    category,
		Description: "open item",
		Amount:      dec("5000.00"),
		Status:      model.StatusPending,
		BucketID:    5,
		CashID:      1,
		StudentID:   studentID,
		DueDate:     due,
		RemindedAt:  reminded,
	})
	require.NoError(t, err)
	return tx
}

func TestDue(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()
	svc := NewService(s.Transactions, s.Students, 3)
	today := date(2025, 1, 28)

	inWindow := appendOpen(t, s, model.CategoryReceivable, date(2025, 1, 29), time.Time{}, 0)
	overdue := appendOpen(t, s, model.CategoryReceivable, date(2025, 1, 25), time.Time{}, 0)
	appendOpen(t, s, model.CategoryReceivable, date(2025, 2, 5), time.Time{}, 0)  // outside window
	appendOpen(t, s, model.CategoryPayable, date(2025, 1, 29), time.Time{}, 0)   // wrong category
	appendOpen(t, s, model.CategoryReceivable, time.Time{}, time.Time{}, 0)      // no due date

	due, err := svc.Due(ctx, today)
	require.NoError(t, err)
	require.Len(t, due, 2)

	byID := make(map[int64]Reminder)
	for _, r := range due {
		byID[r.Tx.ID] = r
	}
	assert.Equal(t, 1, byID[inWindow.ID].DaysDue)
	assert.Equal(t, -3, byID[overdue.ID].DaysDue)
}

func TestDue_OncePerDay(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()
	svc := NewService(s.Transactions, s.Students, 3)
	today := date(2025, 1, 28)

	appendOpen(t, s, model.CategoryReceivable, date(2025, 1, 30), today, 0)
	remindedEarlier := appendOpen(t, s, model.CategoryReceivable, date(2025, 1, 30), date(2025, 1, 27), 0)

	due, err := svc.Due(ctx, today)
	require.NoError(t, err)
	require.Len(t, due, 1)
	assert.Equal(t, remindedEarlier.ID, due[0].Tx.ID)

	// Marking the remaining one quiets the scan for the rest of the day.
	require.NoError(t, svc.MarkReminded(ctx, remindedEarlier.ID, today))
	due, err = svc.Due(ctx, today)
	require.NoError(t, err)
	assert.Empty(t, due)

	// It comes back tomorrow.
	due, err = svc.Due(ctx, date(2025, 1, 29))
	require.NoError(t, err)
	require.Len(t, due, 2)
}

func TestDue_AttachesStudent(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()
	svc := NewService(s.Transactions, s.Students, 3)

	st, err := s.Students.Add(ctx, model.Student{Name: "Amina Wanjiru", NEMIS: "100200300", Grade: "Grade 4"})
	require.NoError(t, err)
	appendOpen(t, s, model.CategoryReceivable, date(2025, 1, 29), time.Time{}, st.ID)

	due, err := svc.Due(ctx, date(2025, 1, 28))
	require.NoError(t, err)
	require.Len(t, due, 1)
	assert.Equal(t, "Amina Wanjiru", due[0].Student.Name)
}
