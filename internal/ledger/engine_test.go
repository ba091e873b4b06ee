package ledger

import (
	"context"
	"errors"
	"fmt"
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

const (
	cashID     = 1
	arID       = 2
	apID       = 3
	fundID     = 4
	tuitionID  = 5
	otherIncID = 6
	salariesID = 7
)

func testAccounts() []model.Account {
	return []model.Account{
		{ID: cashID, Name: model.AccountCashOnHand, Class: model.ClassAsset},
		{ID: arID, Name: model.AccountAccountsReceivable, Class: model.ClassAsset},
		{ID: apID, Name: model.AccountAccountsPayable, Class: model.ClassLiability},
		{ID: fundID, Name: "General Fund", Class: model.ClassEquity},
		{ID: tuitionID, Name: model.AccountTuitionIncome, Class: model.ClassIncome},
		{ID: otherIncID, Name: model.AccountOtherIncome, Class: model.ClassIncome},
		{ID: salariesID, Name: "Salaries", Class: model.ClassExpense},
	}
}

// fakeLog implements TransactionLog in memory.
type fakeLog struct {
	txs    []model.Transaction
	nextID int64
}

func (l *fakeLog) Append(_ context.Context, tx model.Transaction) (model.Transaction, error) {
	l.nextID++
	tx.ID = l.nextID
	l.txs = append(l.txs, tx)
	return tx, nil
}

func (l *fakeLog) Get(_ context.Context, id int64) (model.Transaction, error) {
	for _, tx := range l.txs {
		if tx.ID == id {
			return tx, nil
		}
	}
	return model.Transaction{}, fmt.Errorf("transaction %d not found", id)
}

func (l *fakeLog) All(_ context.Context) ([]model.Transaction, error) {
	return append([]model.Transaction(nil), l.txs...), nil
}

func (l *fakeLog) SetStatus(_ context.Context, id int64, status model.Status, resolvedAt time.Time) error {
	for i := range l.txs {
		if l.txs[i].ID != id {
			continue
		}
		if l.txs[i].Status != model.StatusPending {
			return fmt.Errorf("transaction %d is not pending", id)
		}
		l.txs[i].Status = status
		l.txs[i].ResolvedAt = resolvedAt
		return nil
	}
	return fmt.Errorf("transaction %d not found", id)
}

// fakeChart implements ChartReader over a fixed slice.
type fakeChart struct {
	accounts []model.Account
}

func (c *fakeChart) Accounts(context.Context) ([]model.Account, error) {
	return c.accounts, nil
}

// fakeStudents implements StudentDirectory over a map.
type fakeStudents struct {
	byID map[int64]model.Student
}

func (s *fakeStudents) Student(_ context.Context, id int64) (model.Student, error) {
	st, ok := s.byID[id]
	if !ok {
		return model.Student{}, fmt.Errorf("student %d not found", id)
	}
	return st, nil
}

func testEngine() (*Engine, *fakeLog, *fakeChart) {
	log := &fakeLog{}
	chart := &fakeChart{accounts: testAccounts()}
	students := &fakeStudents{byID: map[int64]model.Student{
		9: {ID: 9, Name: "Amina Wanjiru", NEMIS: "100200300", Grade: "Grade 4"},
	}}
	return New(log, chart, students), log, chart
}

func tuitionDraft(amount string, status model.Status) model.Transaction {
	return model.Transaction{
		Date:        date(2025, 1, 10),
		Category:    model.CategoryTuitionIncome,
		Description: "Term 1 fees",
		Amount:      dec(amount),
		Status:      status,
		BucketID:    tuitionID,
		CashID:      cashID,
	}
}

func expenseDraft(amount string, status model.Status) model.Transaction {
	return model.Transaction{
		Date:        date(2025, 1, 12),
		Category:    model.CategoryExpense,
		Description: "January salaries",
		Amount:      dec(amount),
		Status:      status,
		BucketID:    salariesID,
		CashID:      cashID,
		Payee:       "Staff payroll",
	}
}

func TestRecord_Settled(t *testing.T) {
	eng, log, _ := testEngine()

	tx, err := eng.Record(context.Background(), tuitionDraft("8500.00", model.StatusSettled))
	require.NoError(t, err)
	assert.Equal(t, int64(1), tx.ID)
	assert.Equal(t, model.StatusSettled, tx.Status)
	assert.True(t, tx.ResolvedAt.Equal(tx.Date), "settled on record resolves on the transaction date")

	require.Len(t, log.txs, 1)
	assert.True(t, log.txs[0].Amount.Equal(dec("8500.00")))
}

func TestRecord_Pending(t *testing.T) {
	eng, log, _ := testEngine()

	draft := tuitionDraft("8500.00", model.StatusPending)
	draft.ResolvedAt = date(2025, 2, 1) // must be ignored while pending

	tx, err := eng.Record(context.Background(), draft)
	require.NoError(t, err)
	assert.True(t, tx.Open())
	assert.True(t, tx.ResolvedAt.IsZero())
	require.Len(t, log.txs, 1)
}

func TestRecord_SettledLater(t *testing.T) {
	eng, _, _ := testEngine()

	draft := tuitionDraft("8500.00", model.StatusSettled)
	draft.ResolvedAt = date(2025, 2, 1)

	tx, err := eng.Record(context.Background(), draft)
	require.NoError(t, err)
	assert.True(t, tx.ResolvedAt.Equal(date(2025, 2, 1)))
}

func TestRecord_WithStudent(t *testing.T) {
	eng, _, _ := testEngine()

	draft := tuitionDraft("8500.00", model.StatusSettled)
	draft.StudentID = 9

	_, err := eng.Record(context.Background(), draft)
	require.NoError(t, err)
}

func TestRecord_Validation(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*model.Transaction)
		wantField string
	}{
		{"zero date", func(tx *model.Transaction) { tx.Date = time.Time{} }, "date"},
		{"unknown category", func(tx *model.Transaction) { tx.Category = "donation" }, "category"},
		{"written-off on record", func(tx *model.Transaction) { tx.Status = model.StatusWrittenOff }, "status"},
		{"unknown status", func(tx *model.Transaction) { tx.Status = "paid" }, "status"},
		{"zero amount", func(tx *model.Transaction) { tx.Amount = dec("0") }, "amount"},
		{"negative amount", func(tx *model.Transaction) { tx.Amount = dec("-5.00") }, "amount"},
		{"three decimal places", func(tx *model.Transaction) { tx.Amount = dec("10.555") }, "amount"},
		{"missing description", func(tx *model.Transaction) { tx.Description = "" }, "description"},
		{"bad term", func(tx *model.Transaction) { tx.Term = 4 }, "term"},
		{"unknown bucket", func(tx *model.Transaction) { tx.BucketID = 999 }, "bucket"},
		{"bucket wrong class", func(tx *model.Transaction) { tx.BucketID = salariesID }, "bucket"},
		{"unknown cash account", func(tx *model.Transaction) { tx.CashID = 999 }, "cash"},
		{"cash not an asset", func(tx *model.Transaction) { tx.CashID = apID }, "cash"},
		{"unknown student", func(tx *model.Transaction) { tx.StudentID = 42 }, "student"},
		{"settled before dated", func(tx *model.Transaction) { tx.ResolvedAt = date(2025, 1, 1) }, "date"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			eng, log, _ := testEngine()
			draft := tuitionDraft("100.00", model.StatusSettled)
			tt.mutate(&draft)

			_, err := eng.Record(context.Background(), draft)
			require.Error(t, err)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.wantField, verr.Field)
			assert.Empty(t, log.txs, "rejected draft must not reach the log")
		})
	}
}

func TestRecord_ExpenseBucketClass(t *testing.T) {
	eng, _, _ := testEngine()

	draft := expenseDraft("3000.00", model.StatusSettled)
	draft.BucketID = tuitionID // income bucket on an expense entry

	_, err := eng.Record(context.Background(), draft)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "bucket", verr.Field)
}

func TestSettle(t *testing.T) {
	eng, log, _ := testEngine()

	rec, err := eng.Record(context.Background(), tuitionDraft("5000.00", model.StatusPending))
	require.NoError(t, err)

	tx, err := eng.Settle(context.Background(), rec.ID, date(2025, 1, 20))
	require.NoError(t, err)
	assert.Equal(t, model.StatusSettled, tx.Status)
	assert.True(t, tx.ResolvedAt.Equal(date(2025, 1, 20)))
	assert.Equal(t, model.StatusSettled, log.txs[0].Status)
}

func TestSettle_NotPending(t *testing.T) {
	eng, _, _ := testEngine()

	rec, err := eng.Record(context.Background(), tuitionDraft("5000.00", model.StatusSettled))
	require.NoError(t, err)

	_, err = eng.Settle(context.Background(), rec.ID, date(2025, 1, 20))
	require.ErrorIs(t, err, ErrNotPending)
}

func TestSettle_BeforeTransactionDate(t *testing.T) {
	eng, log, _ := testEngine()

	rec, err := eng.Record(context.Background(), tuitionDraft("5000.00", model.StatusPending))
	require.NoError(t, err)

	_, err = eng.Settle(context.Background(), rec.ID, date(2025, 1, 1))
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.True(t, log.txs[0].Open(), "failed settle must leave the transaction pending")
}

func TestSettle_ZeroDate(t *testing.T) {
	eng, _, _ := testEngine()

	rec, err := eng.Record(context.Background(), tuitionDraft("5000.00", model.StatusPending))
	require.NoError(t, err)

	_, err = eng.Settle(context.Background(), rec.ID, time.Time{})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
}

func TestWriteOff(t *testing.T) {
	eng, log, _ := testEngine()

	rec, err := eng.Record(context.Background(), tuitionDraft("5000.00", model.StatusPending))
	require.NoError(t, err)

	tx, err := eng.WriteOff(context.Background(), rec.ID, date(2025, 3, 31))
	require.NoError(t, err)
	assert.Equal(t, model.StatusWrittenOff, tx.Status)
	assert.Equal(t, model.StatusWrittenOff, log.txs[0].Status)
}

func TestWriteOff_AlreadyWrittenOff(t *testing.T) {
	eng, _, _ := testEngine()

	rec, err := eng.Record(context.Background(), tuitionDraft("5000.00", model.StatusPending))
	require.NoError(t, err)
	_, err = eng.WriteOff(context.Background(), rec.ID, date(2025, 3, 31))
	require.NoError(t, err)

	_, err = eng.WriteOff(context.Background(), rec.ID, date(2025, 4, 1))
	require.ErrorIs(t, err, ErrNotPending)
}

func TestRecord_ChartIncomplete(t *testing.T) {
	log := &fakeLog{}
	chart := &fakeChart{accounts: []model.Account{
		{ID: cashID, Name: model.AccountCashOnHand, Class: model.ClassAsset},
		{ID: tuitionID, Name: model.AccountTuitionIncome, Class: model.ClassIncome},
	}}
	eng := New(log, chart, &fakeStudents{})

	_, err := eng.Record(context.Background(), tuitionDraft("100.00", model.StatusSettled))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrChartIncomplete))
}
