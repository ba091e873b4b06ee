package ledger

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/shulebooks/shulebooks/internal/model"
)

// Posting is one side of a double entry derived from a transaction.
// Postings are computed on demand and never persisted; the transaction log
// stays the only stored truth.
type Posting struct {
	TxID      int64
	Date      time.Time
	AccountID int64
	Debit     decimal.Decimal // zero if credit side
	Credit    decimal.Decimal // zero if debit side
}

// chart indexes the chart of accounts for posting expansion and validation.
type chart struct {
	byID         map[int64]model.Account
	byName       map[string]model.Account
	receivableID int64
	payableID    int64
}

func newChart(accounts []model.Account) (*chart, error) {
	c := &chart{
		byID:   make(map[int64]model.Account, len(accounts)),
		byName: make(map[string]model.Account, len(accounts)),
	}
	for _, a := range accounts {
		c.byID[a.ID] = a
		c.byName[a.Name] = a
	}

	ar, ok := c.byName[model.AccountAccountsReceivable]
	if !ok {
		return nil, fmt.Errorf("%w: missing %q", ErrChartIncomplete, model.AccountAccountsReceivable)
	}
	ap, ok := c.byName[model.AccountAccountsPayable]
	if !ok {
		return nil, fmt.Errorf("%w: missing %q", ErrChartIncomplete, model.AccountAccountsPayable)
	}
	c.receivableID = ar.ID
	c.payableID = ap.ID
	return c, nil
}

func (c *chart) account(id int64) (model.Account, bool) {
	a, ok := c.byID[id]
	return a, ok
}

// sorted returns the chart accounts ordered by name.
func (c *chart) sorted() []model.Account {
	accounts := make([]model.Account, 0, len(c.byID))
	for _, a := range c.byID {
		accounts = append(accounts, a)
	}
	sort.Slice(accounts, func(i, j int) bool { return accounts[i].Name < accounts[j].Name })
	return accounts
}

// expand derives the balanced postings for one transaction.
//
// Income-side categories credit the bucket and debit cash when settled on
// the transaction date, or Accounts Receivable while pending. Expense-side
// categories mirror that through Accounts Payable. Settling a pending
// transaction adds a clearing pair dated at the resolution date; a
// write-off reverses the accrual instead. Every expansion is balanced by
// construction.
func expand(tx model.Transaction, c *chart) []Posting {
	direct := tx.Status == model.StatusSettled && tx.ResolvedAt.Equal(tx.Date)

	var ps []Posting
	if tx.Category.IncomeSide() {
		debitID := c.receivableID
		if direct {
			debitID = tx.CashID
		}
		ps = append(ps,
			Posting{TxID: tx.ID, Date: tx.Date, AccountID: debitID, Debit: tx.Amount},
			Posting{TxID: tx.ID, Date: tx.Date, AccountID: tx.BucketID, Credit: tx.Amount},
		)
		switch {
		case tx.Status == model.StatusSettled && !direct:
			ps = append(ps,
				Posting{TxID: tx.ID, Date: tx.ResolvedAt, AccountID: tx.CashID, Debit: tx.Amount},
				Posting{TxID: tx.ID, Date: tx.ResolvedAt, AccountID: c.receivableID, Credit: tx.Amount},
			)
		case tx.Status == model.StatusWrittenOff:
			ps = append(ps,
				Posting{TxID: tx.ID, Date: tx.ResolvedAt, AccountID: tx.BucketID, Debit: tx.Amount},
				Posting{TxID: tx.ID, Date: tx.ResolvedAt, AccountID: c.receivableID, Credit: tx.Amount},
			)
		}
		return ps
	}

	creditID := c.payableID
	if direct {
		creditID = tx.CashID
	}
	ps = append(ps,
		Posting{TxID: tx.ID, Date: tx.Date, AccountID: tx.BucketID, Debit: tx.Amount},
		Posting{TxID: tx.ID, Date: tx.Date, AccountID: creditID, Credit: tx.Amount},
	)
	switch {
	case tx.Status == model.StatusSettled && !direct:
		ps = append(ps,
			Posting{TxID: tx.ID, Date: tx.ResolvedAt, AccountID: c.payableID, Debit: tx.Amount},
			Posting{TxID: tx.ID, Date: tx.ResolvedAt, AccountID: tx.CashID, Credit: tx.Amount},
		)
	case tx.Status == model.StatusWrittenOff:
		ps = append(ps,
			Posting{TxID: tx.ID, Date: tx.ResolvedAt, AccountID: c.payableID, Debit: tx.Amount},
			Posting{TxID: tx.ID, Date: tx.ResolvedAt, AccountID: tx.BucketID, Credit: tx.Amount},
		)
	}
	return ps
}
