package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shulebooks/shulebooks/internal/model"
)

func date(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "books.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpen_Reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "books.db")

	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.Close())

	// Second open must tolerate the already-applied schema.
	s, err = Open(path)
	require.NoError(t, err)
	require.NoError(t, s.Close())
}

func TestTransactions_AppendAndGet(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	tx, err := s.Transactions.Append(ctx, model.Transaction{
		Ref:         "RCT-2025-000001",
		Date:        date(2025, 1, 10),
		Category:    model.CategoryTuitionIncome,
		Description: "Term 1 fees",
		Amount:      dec("8500.00"),
		Status:      model.StatusSettled,
		BucketID:    5,
		CashID:      1,
		StudentID:   9,
		Term:        1,
		ResolvedAt:  date(2025, 1, 10),
	})
	require.NoError(t, err)
	require.Equal(t, int64(1), tx.ID)
	assert.False(t, tx.CreatedAt.IsZero())

	got, err := s.Transactions.Get(ctx, tx.ID)
	require.NoError(t, err)
	assert.Equal(t, "RCT-2025-000001", got.Ref)
	assert.Equal(t, model.CategoryTuitionIncome, got.Category)
	assert.True(t, got.Amount.Equal(dec("8500.00")))
	assert.True(t, got.Date.Equal(date(2025, 1, 10)))
	assert.True(t, got.ResolvedAt.Equal(date(2025, 1, 10)))
	assert.True(t, got.DueDate.IsZero())
	assert.True(t, got.RemindedAt.IsZero())
	assert.Equal(t, int64(9), got.StudentID)
	assert.Equal(t, 1, got.Term)
}

func TestTransactions_GetMissing(t *testing.T) {
	s := openTestStore(t)

	_, err := s.Transactions.Get(context.Background(), 42)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestTransactions_AllOrdered(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	for _, d := range []time.Time{date(2025, 2, 1), date(2025, 1, 5), date(2025, 1, 20)} {
		_, err := s.Transactions.Append(ctx, model.Transaction{
			Date:        d,
			Category:    model.CategoryOtherIncome,
			Description: "entry",
			Amount:      dec("10.00"),
			Status:      model.StatusSettled,
			BucketID:    6,
			CashID:      1,
			ResolvedAt:  d,
		})
		require.NoError(t, err)
	}

	txs, err := s.Transactions.All(ctx)
	require.NoError(t, err)
	require.Len(t, txs, 3)
	assert.True(t, txs[0].Date.Equal(date(2025, 1, 5)))
	assert.True(t, txs[1].Date.Equal(date(2025, 1, 20)))
	assert.True(t, txs[2].Date.Equal(date(2025, 2, 1)))
}

func TestTransactions_SetStatusGuard(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	tx, err := s.Transactions.Append(ctx, model.Transaction{
		Date:        date(2025, 1, 15),
		Category:    model.CategoryReceivable,
		Description: "invoice",
		Amount:      dec("5000.00"),
		Status:      model.StatusPending,
		BucketID:    5,
		CashID:      1,
		DueDate:     date(2025, 1, 31),
	})
	require.NoError(t, err)

	require.NoError(t, s.Transactions.SetStatus(ctx, tx.ID, model.StatusSettled, date(2025, 1, 20)))

	got, err := s.Transactions.Get(ctx, tx.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusSettled, got.Status)
	assert.True(t, got.ResolvedAt.Equal(date(2025, 1, 20)))

	// A settled row must never change again.
	err = s.Transactions.SetStatus(ctx, tx.ID, model.StatusWrittenOff, date(2025, 1, 21))
	require.Error(t, err)

	got, err = s.Transactions.Get(ctx, tx.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusSettled, got.Status)
}

func TestTransactions_PendingByCategory(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	appendPending := func(due time.Time, category model.Category) {
		t.Helper()
		_, err := s.Transactions.Append(ctx, model.Transaction{
			Date:        date(2025, 1, 10),
			Category:    category,
			Description: "open item",
			Amount:      dec("100.00"),
			Status:      model.StatusPending,
			BucketID:    5,
			CashID:      1,
			DueDate:     due,
		})
		require.NoError(t, err)
	}
	appendPending(date(2025, 3, 1), model.CategoryReceivable)
	appendPending(date(2025, 2, 1), model.CategoryReceivable)
	appendPending(date(2025, 2, 15), model.CategoryPayable)

	open, err := s.Transactions.PendingByCategory(ctx, model.CategoryReceivable)
	require.NoError(t, err)
	require.Len(t, open, 2)
	assert.True(t, open[0].DueDate.Equal(date(2025, 2, 1)), "earliest due date first")
	assert.True(t, open[1].DueDate.Equal(date(2025, 3, 1)))
}

func TestTransactions_RefExists(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	_, err := s.Transactions.Append(ctx, model.Transaction{
		Ref:         "TAE1XQ99PL",
		Date:        date(2025, 1, 10),
		Category:    model.CategoryTuitionIncome,
		Description: "mpesa payment",
		Amount:      dec("3000.00"),
		Status:      model.StatusSettled,
		BucketID:    5,
		CashID:      1,
		ResolvedAt:  date(2025, 1, 10),
	})
	require.NoError(t, err)

	ok, err := s.Transactions.RefExists(ctx, "TAE1XQ99PL")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = s.Transactions.RefExists(ctx, "TAE1XQ00ZZ")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestTransactions_SetReminded(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	tx, err := s.Transactions.Append(ctx, model.Transaction{
		Date:        date(2025, 1, 15),
		Category:    model.CategoryReceivable,
		Description: "invoice",
		Amount:      dec("5000.00"),
		Status:      model.StatusPending,
		BucketID:    5,
		CashID:      1,
		DueDate:     date(2025, 1, 31),
	})
	require.NoError(t, err)

	require.NoError(t, s.Transactions.SetReminded(ctx, tx.ID, date(2025, 1, 28)))
	got, err := s.Transactions.Get(ctx, tx.ID)
	require.NoError(t, err)
	assert.True(t, got.RemindedAt.Equal(date(2025, 1, 28)))

	err = s.Transactions.SetReminded(ctx, 42, date(2025, 1, 28))
	require.ErrorIs(t, err, ErrNotFound)
}

func TestAccounts_AddAndLookup(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	a, err := s.Accounts.Add(ctx, model.Account{
		Name:          "School Bank",
		Class:         model.ClassAsset,
		BankName:      "Equity Bank",
		AccountNumber: "0123456789",
	})
	require.NoError(t, err)
	require.NotZero(t, a.ID)

	byName, err := s.Accounts.ByName(ctx, "School Bank")
	require.NoError(t, err)
	assert.Equal(t, a.ID, byName.ID)
	assert.Equal(t, model.ClassAsset, byName.Class)
	assert.Equal(t, "Equity Bank", byName.BankName)

	byID, err := s.Accounts.ByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, "School Bank", byID.Name)

	n, err := s.Accounts.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestAccounts_UniqueName(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	_, err := s.Accounts.Add(ctx, model.Account{Name: "Cash on Hand", Class: model.ClassAsset})
	require.NoError(t, err)
	_, err = s.Accounts.Add(ctx, model.Account{Name: "Cash on Hand", Class: model.ClassAsset})
	require.Error(t, err)
}

func TestAccounts_ByNameMissing(t *testing.T) {
	s := openTestStore(t)

	_, err := s.Accounts.ByName(context.Background(), "No Such Account")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestStudents_AddAndLookup(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	st, err := s.Students.Add(ctx, model.Student{
		Name:     "Amina Wanjiru",
		NEMIS:    "100200300",
		Grade:    "Grade 4",
		Guardian: "Jane Wanjiru",
		Contact:  "+254700000001",
	})
	require.NoError(t, err)
	require.NotZero(t, st.ID)
	assert.False(t, st.EnrolledAt.IsZero())

	got, err := s.Students.Student(ctx, st.ID)
	require.NoError(t, err)
	assert.Equal(t, "100200300", got.NEMIS)

	byNEMIS, err := s.Students.ByNEMIS(ctx, "100200300")
	require.NoError(t, err)
	assert.Equal(t, st.ID, byNEMIS.ID)

	_, err = s.Students.ByNEMIS(ctx, "999999999")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestStudents_UniqueNEMIS(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	_, err := s.Students.Add(ctx, model.Student{Name: "Amina Wanjiru", NEMIS: "100200300", Grade: "Grade 4"})
	require.NoError(t, err)
	_, err = s.Students.Add(ctx, model.Student{Name: "Brian Otieno", NEMIS: "100200300", Grade: "Grade 5"})
	require.Error(t, err)
}

func TestStudents_ByGrade(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	for _, st := range []model.Student{
		{Name: "Brian Otieno", NEMIS: "1", Grade: "Grade 5"},
		{Name: "Amina Wanjiru", NEMIS: "2", Grade: "Grade 4"},
		{Name: "Wanja Kamau", NEMIS: "3", Grade: "Grade 4"},
	} {
		_, err := s.Students.Add(ctx, st)
		require.NoError(t, err)
	}

	grade4, err := s.Students.ByGrade(ctx, "Grade 4")
	require.NoError(t, err)
	require.Len(t, grade4, 2)
	assert.Equal(t, "Amina Wanjiru", grade4[0].Name)
	assert.Equal(t, "Wanja Kamau", grade4[1].Name)
}

func TestFees_PutUpsert(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	item := model.FeeItem{
		Year: 2025, Grade: "Grade 4", Term: 1,
		FeeType: model.FeeTypeTuition, Amount: dec("8500.00"),
	}
	require.NoError(t, s.Fees.Put(ctx, item))

	item.Amount = dec("9000.00")
	item.Description = "revised"
	require.NoError(t, s.Fees.Put(ctx, item))

	items, err := s.Fees.ByYear(ctx, 2025)
	require.NoError(t, err)
	require.Len(t, items, 1, "same key must replace, not duplicate")
	assert.True(t, items[0].Amount.Equal(dec("9000.00")))
	assert.Equal(t, "revised", items[0].Description)
}

func TestFees_For(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	for _, item := range []model.FeeItem{
		{Year: 2025, Grade: "Grade 4", Term: 1, FeeType: "Tuition", Amount: dec("8500.00")},
		{Year: 2025, Grade: "Grade 4", Term: 1, FeeType: "Lunch", Amount: dec("2000.00")},
		{Year: 2025, Grade: "Grade 4", Term: 2, FeeType: "Tuition", Amount: dec("8000.00")},
		{Year: 2025, Grade: "Grade 5", Term: 1, FeeType: "Tuition", Amount: dec("9500.00")},
	} {
		require.NoError(t, s.Fees.Put(ctx, item))
	}

	items, err := s.Fees.For(ctx, 2025, "Grade 4", 1)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Lunch", items[0].FeeType)
	assert.Equal(t, "Tuition", items[1].FeeType)
}

func TestFees_Delete(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	item := model.FeeItem{
		Year: 2025, Grade: "Grade 4", Term: 1,
		FeeType: model.FeeTypeTuition, Amount: dec("8500.00"),
	}
	require.NoError(t, s.Fees.Put(ctx, item))
	require.NoError(t, s.Fees.Delete(ctx, 2025, "Grade 4", 1, model.FeeTypeTuition))

	items, err := s.Fees.ByYear(ctx, 2025)
	require.NoError(t, err)
	assert.Empty(t, items)

	err = s.Fees.Delete(ctx, 2025, "Grade 4", 1, model.FeeTypeTuition)
	require.ErrorIs(t, err, ErrNotFound)
}
