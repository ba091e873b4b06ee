package accounts

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shulebooks/shulebooks/internal/model"
	"github.com/shulebooks/shulebooks/internal/store"
)

func testService(t *testing.T) *Service {
	t.Helper()
	s, err := store.Open(filepath.Join(t.TempDir(), "books.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return NewService(s.Accounts)
}

func TestSeed(t *testing.T) {
	svc := testService(t)
	ctx := context.Background()

	seeded, err := svc.Seed(ctx)
	require.NoError(t, err)
	assert.Len(t, seeded, len(DefaultChart()))

	// The structural accounts the posting rules depend on must exist.
	for _, name := range []string{
		model.AccountCashOnHand,
		model.AccountAccountsReceivable,
		model.AccountAccountsPayable,
		model.AccountTuitionIncome,
		model.AccountOtherIncome,
	} {
		_, err := svc.ByName(ctx, name)
		require.NoError(t, err, "default chart must include %q", name)
	}
}

func TestSeed_Twice(t *testing.T) {
	svc := testService(t)
	ctx := context.Background()

	_, err := svc.Seed(ctx)
	require.NoError(t, err)
	_, err = svc.Seed(ctx)
	require.Error(t, err)
}

func TestAdd(t *testing.T) {
	svc := testService(t)
	ctx := context.Background()

	a, err := svc.Add(ctx, model.Account{
		Name:          "School Bank",
		Class:         model.ClassAsset,
		BankName:      "Equity Bank",
		AccountNumber: "0123456789",
	})
	require.NoError(t, err)
	assert.NotZero(t, a.ID)

	got, err := svc.Get(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, "School Bank", got.Name)
}

func TestAdd_Validation(t *testing.T) {
	svc := testService(t)
	ctx := context.Background()

	_, err := svc.Add(ctx, model.Account{Name: "", Class: model.ClassAsset})
	require.Error(t, err)

	_, err = svc.Add(ctx, model.Account{Name: "Petty Cash", Class: "bank"})
	require.Error(t, err)
}

func TestByClass(t *testing.T) {
	svc := testService(t)
	ctx := context.Background()

	_, err := svc.Seed(ctx)
	require.NoError(t, err)

	assets, err := svc.ByClass(ctx, model.ClassAsset)
	require.NoError(t, err)
	require.Len(t, assets, 2)

	expenses, err := svc.ByClass(ctx, model.ClassExpense)
	require.NoError(t, err)
	assert.Len(t, expenses, 6)
}
