package ledger

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/shulebooks/shulebooks/internal/model"
)

// TrialBalanceLine carries the gross debit and credit totals posted to one
// account.
type TrialBalanceLine struct {
	Account model.Account
	Debit   decimal.Decimal
	Credit  decimal.Decimal
}

type TrialBalance struct {
	AsOf        time.Time
	Lines       []TrialBalanceLine
	TotalDebit  decimal.Decimal
	TotalCredit decimal.Decimal
}

// CashFlowLine is one settled transaction inside the report period, with
// the running balance after it.
type CashFlowLine struct {
	TxID        int64
	Date        time.Time
	Category    model.Category
	Description string
	In          decimal.Decimal
	Out         decimal.Decimal
	Balance     decimal.Decimal
}

type CashFlow struct {
	From     time.Time
	To       time.Time
	Lines    []CashFlowLine
	TotalIn  decimal.Decimal
	TotalOut decimal.Decimal
	Net      decimal.Decimal
}

type BalanceSheetLine struct {
	Account string
	Amount  decimal.Decimal
}

type BalanceSheet struct {
	AsOf             time.Time
	Assets           []BalanceSheetLine
	Liabilities      []BalanceSheetLine
	Equity           []BalanceSheetLine
	TotalAssets      decimal.Decimal
	TotalLiabilities decimal.Decimal
	TotalEquity      decimal.Decimal
}

// AccountBalance is the derived balance of one chart account, signed by
// the account's normal side.
type AccountBalance struct {
	Account model.Account
	Balance decimal.Decimal
}

// Overview is the dashboard projection: activity to date, the cash
// position, and what is still owed in each direction.
type Overview struct {
	AsOf                   time.Time
	Transactions           int
	Cash                   decimal.Decimal
	PendingReceivables     int
	PendingReceivableTotal decimal.Decimal
	PendingPayables        int
	PendingPayableTotal    decimal.Decimal
}

type accountTotal struct {
	debit  decimal.Decimal
	credit decimal.Decimal
}

// postingTotals sums the expanded postings dated on or before asOf per
// account. A posting against an account missing from the chart means the
// stored books are corrupt, which is reported rather than repaired.
func postingTotals(txs []model.Transaction, c *chart, asOf time.Time, report string) (map[int64]accountTotal, error) {
	totals := make(map[int64]accountTotal)
	for _, tx := range txs {
		for _, p := range expand(tx, c) {
			if p.Date.After(asOf) {
				continue
			}
			if _, ok := c.account(p.AccountID); !ok {
				return nil, &IntegrityError{
					Report: report,
					Detail: fmt.Sprintf("transaction %d posts to unknown account %d", p.TxID, p.AccountID),
				}
			}
			t := totals[p.AccountID]
			t.debit = t.debit.Add(p.Debit)
			t.credit = t.credit.Add(p.Credit)
			totals[p.AccountID] = t
		}
	}
	return totals, nil
}

// TrialBalance lists gross debit and credit totals per account over all
// postings dated on or before asOf. Total debits must equal total credits.
func (e *Engine) TrialBalance(ctx context.Context, asOf time.Time) (TrialBalance, error) {
	c, txs, err := e.load(ctx)
	if err != nil {
		return TrialBalance{}, err
	}
	totals, err := postingTotals(txs, c, asOf, "trial balance")
	if err != nil {
		return TrialBalance{}, err
	}

	tb := TrialBalance{AsOf: asOf}
	for _, a := range c.sorted() {
		t, ok := totals[a.ID]
		if !ok {
			continue
		}
		tb.Lines = append(tb.Lines, TrialBalanceLine{Account: a, Debit: t.debit, Credit: t.credit})
		tb.TotalDebit = tb.TotalDebit.Add(t.debit)
		tb.TotalCredit = tb.TotalCredit.Add(t.credit)
	}
	if !tb.TotalDebit.Equal(tb.TotalCredit) {
		return TrialBalance{}, &IntegrityError{
			Report: "trial balance",
			Detail: fmt.Sprintf("total debits %s do not equal total credits %s", tb.TotalDebit, tb.TotalCredit),
		}
	}
	return tb, nil
}

// CashFlow lists settled transactions dated within [from, to] with a
// running balance. Pending and written-off transactions never appear;
// settling a pending transaction dated in the period brings it in.
func (e *Engine) CashFlow(ctx context.Context, from, to time.Time) (CashFlow, error) {
	txs, err := e.log.All(ctx)
	if err != nil {
		return CashFlow{}, fmt.Errorf("loading transactions: %w", err)
	}

	cf := CashFlow{From: from, To: to}
	for _, tx := range txs {
		if tx.Status != model.StatusSettled {
			continue
		}
		if tx.Date.Before(from) || tx.Date.After(to) {
			continue
		}
		line := CashFlowLine{TxID: tx.ID, Date: tx.Date, Category: tx.Category, Description: tx.Description}
		if tx.Category.IncomeSide() {
			line.In = tx.Amount
			cf.TotalIn = cf.TotalIn.Add(tx.Amount)
		} else {
			line.Out = tx.Amount
			cf.TotalOut = cf.TotalOut.Add(tx.Amount)
		}
		cf.Lines = append(cf.Lines, line)
	}
	sort.SliceStable(cf.Lines, func(i, j int) bool {
		if !cf.Lines[i].Date.Equal(cf.Lines[j].Date) {
			return cf.Lines[i].Date.Before(cf.Lines[j].Date)
		}
		return cf.Lines[i].TxID < cf.Lines[j].TxID
	})

	var running decimal.Decimal
	for i := range cf.Lines {
		running = running.Add(cf.Lines[i].In).Sub(cf.Lines[i].Out)
		cf.Lines[i].Balance = running
	}
	cf.Net = cf.TotalIn.Sub(cf.TotalOut)
	return cf, nil
}

// BalanceSheet states assets, liabilities, and equity as of a date, with
// retained earnings computed as income minus expenses to date. Assets must
// equal liabilities plus equity.
func (e *Engine) BalanceSheet(ctx context.Context, asOf time.Time) (BalanceSheet, error) {
	c, txs, err := e.load(ctx)
	if err != nil {
		return BalanceSheet{}, err
	}
	totals, err := postingTotals(txs, c, asOf, "balance sheet")
	if err != nil {
		return BalanceSheet{}, err
	}

	bs := BalanceSheet{AsOf: asOf}
	var income, expenses decimal.Decimal
	for _, a := range c.sorted() {
		t, ok := totals[a.ID]
		if !ok {
			continue
		}
		switch a.Class {
		case model.ClassAsset:
			bal := t.debit.Sub(t.credit)
			bs.Assets = append(bs.Assets, BalanceSheetLine{Account: a.Name, Amount: bal})
			bs.TotalAssets = bs.TotalAssets.Add(bal)
		case model.ClassLiability:
			bal := t.credit.Sub(t.debit)
			bs.Liabilities = append(bs.Liabilities, BalanceSheetLine{Account: a.Name, Amount: bal})
			bs.TotalLiabilities = bs.TotalLiabilities.Add(bal)
		case model.ClassEquity:
			bal := t.credit.Sub(t.debit)
			bs.Equity = append(bs.Equity, BalanceSheetLine{Account: a.Name, Amount: bal})
			bs.TotalEquity = bs.TotalEquity.Add(bal)
		case model.ClassIncome:
			income = income.Add(t.credit.Sub(t.debit))
		case model.ClassExpense:
			expenses = expenses.Add(t.debit.Sub(t.credit))
		}
	}
	retained := income.Sub(expenses)
	bs.Equity = append(bs.Equity, BalanceSheetLine{Account: "Retained Earnings", Amount: retained})
	bs.TotalEquity = bs.TotalEquity.Add(retained)

	if !bs.TotalAssets.Equal(bs.TotalLiabilities.Add(bs.TotalEquity)) {
		return BalanceSheet{}, &IntegrityError{
			Report: "balance sheet",
			Detail: fmt.Sprintf("assets %s do not equal liabilities %s plus equity %s",
				bs.TotalAssets, bs.TotalLiabilities, bs.TotalEquity),
		}
	}
	return bs, nil
}

// AccountBalances derives the balance of every chart account as of a
// date, signed by the account's normal side.
func (e *Engine) AccountBalances(ctx context.Context, asOf time.Time) ([]AccountBalance, error) {
	c, txs, err := e.load(ctx)
	if err != nil {
		return nil, err
	}
	totals, err := postingTotals(txs, c, asOf, "account balances")
	if err != nil {
		return nil, err
	}

	out := make([]AccountBalance, 0, len(c.byID))
	for _, a := range c.sorted() {
		t := totals[a.ID]
		bal := t.debit.Sub(t.credit)
		if !a.Class.DebitNormal() {
			bal = bal.Neg()
		}
		out = append(out, AccountBalance{Account: a, Balance: bal})
	}
	return out, nil
}

// Overview summarizes the books as of a date for the summary command.
func (e *Engine) Overview(ctx context.Context, asOf time.Time) (Overview, error) {
	c, txs, err := e.load(ctx)
	if err != nil {
		return Overview{}, err
	}
	totals, err := postingTotals(txs, c, asOf, "overview")
	if err != nil {
		return Overview{}, err
	}

	ov := Overview{AsOf: asOf}
	for _, a := range c.sorted() {
		if a.Class != model.ClassAsset || a.ID == c.receivableID {
			continue
		}
		t := totals[a.ID]
		ov.Cash = ov.Cash.Add(t.debit.Sub(t.credit))
	}
	for _, tx := range txs {
		if tx.Date.After(asOf) {
			continue
		}
		ov.Transactions++
		if !tx.Open() {
			continue
		}
		if tx.Category.IncomeSide() {
			ov.PendingReceivables++
			ov.PendingReceivableTotal = ov.PendingReceivableTotal.Add(tx.Amount)
		} else {
			ov.PendingPayables++
			ov.PendingPayableTotal = ov.PendingPayableTotal.Add(tx.Amount)
		}
	}
	return ov, nil
}

func (e *Engine) load(ctx context.Context) (*chart, []model.Transaction, error) {
	c, err := e.loadChart(ctx)
	if err != nil {
		return nil, nil, err
	}
	txs, err := e.log.All(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("loading transactions: %w", err)
	}
	return c, txs, nil
}
