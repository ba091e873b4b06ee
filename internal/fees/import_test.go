package fees

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shulebooks/shulebooks/internal/model"
)

func statementEntries() []model.StatementEntry {
	return []model.StatementEntry{
		{
			Date:      time.Date(2025, 2, 3, 9, 15, 23, 0, time.UTC),
			Reference: "TAB1CD5678",
			Details:   "Pay Bill from 254722000001 - MERCY WANJIRU Acc. 100200300",
			Amount:    dec("8500.00"),
		},
		{
			Date:      time.Date(2025, 2, 3, 11, 42, 7, 0, time.UTC),
			Reference: "TAB2EF9012",
			Details:   "Pay Bill from 254733000002 - PETER OTIENO Acc. 100200311",
			Amount:    dec("4000.00"),
		},
		{
			Date:      time.Date(2025, 2, 4, 8, 5, 51, 0, time.UTC),
			Reference: "TAB3GH3456",
			Details:   "Pay Bill from 254711000003 - JANE AKINYI Acc. 999888777",
			Amount:    dec("2500.00"),
		},
	}
}

func TestImportStatement(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.enroll(t, "Mercy Wanjiru", "100200300", "Grade 4")
	f.enroll(t, "Peter Otieno", "100200311", "Grade 6")
	cashID := f.chart[model.AccountCashOnHand].ID

	res, err := f.svc.ImportStatement(ctx, statementEntries(), 1, cashID)
	require.NoError(t, err)
	require.Len(t, res.Recorded, 2)
	require.Len(t, res.Unmatched, 1)
	assert.Empty(t, res.Skipped)
	assert.Equal(t, "TAB3GH3456", res.Unmatched[0].Reference)

	// The statement's time of day is dropped; the books keep dates.
	first := res.Recorded[0]
	assert.Equal(t, "Mercy Wanjiru", first.Student.Name)
	tx, err := f.store.Transactions.Get(ctx, first.TxID)
	require.NoError(t, err)
	assert.Equal(t, "TAB1CD5678", tx.Ref)
	assert.True(t, tx.Date.Equal(date(2025, 2, 3)))
	assert.Equal(t, model.StatusSettled, tx.Status)
	assert.Equal(t, model.CategoryTuitionIncome, tx.Category)
	assert.Equal(t, "8500.00", tx.Amount.StringFixed(2))
}

func TestImportStatement_Rerun(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.enroll(t, "Mercy Wanjiru", "100200300", "Grade 4")
	f.enroll(t, "Peter Otieno", "100200311", "Grade 6")
	cashID := f.chart[model.AccountCashOnHand].ID

	_, err := f.svc.ImportStatement(ctx, statementEntries(), 1, cashID)
	require.NoError(t, err)

	res, err := f.svc.ImportStatement(ctx, statementEntries(), 1, cashID)
	require.NoError(t, err)
	assert.Empty(t, res.Recorded)
	assert.Len(t, res.Skipped, 2)
	// Unmatched rows were never recorded, so they surface again.
	assert.Len(t, res.Unmatched, 1)
}

func TestImportStatement_MatchAfterEnrollment(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.enroll(t, "Mercy Wanjiru", "100200300", "Grade 4")
	f.enroll(t, "Peter Otieno", "100200311", "Grade 6")
	cashID := f.chart[model.AccountCashOnHand].ID

	_, err := f.svc.ImportStatement(ctx, statementEntries(), 1, cashID)
	require.NoError(t, err)

	// Enrolling the missing student picks the row up on the next pass.
	f.enroll(t, "Jane Akinyi", "999888777", "Grade 2")
	res, err := f.svc.ImportStatement(ctx, statementEntries(), 1, cashID)
	require.NoError(t, err)
	require.Len(t, res.Recorded, 1)
	assert.Equal(t, "Jane Akinyi", res.Recorded[0].Student.Name)
	assert.Empty(t, res.Unmatched)
}

func TestImportStatement_BadTerm(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.ImportStatement(context.Background(), statementEntries(), 4, 1)
	assert.Error(t, err)
}

func TestDigitRuns(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"Pay Bill from 254722000001 - MERCY Acc. 100200300", []string{"254722000001", "100200300"}},
		{"Acc 100200300", []string{"100200300"}},
		{"no digits here", nil},
		{"Term 1 fees", nil}, // short runs are not NEMIS candidates
		{"100200300", []string{"100200300"}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, digitRuns(tt.in), "input %q", tt.in)
	}
}
