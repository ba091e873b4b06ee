package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/shulebooks/shulebooks/internal/model"
)

// TransactionLog is the append-only record the engine reads and extends.
// Rows are never updated in place except for the status transition applied
// through SetStatus.
type TransactionLog interface {
	Append(ctx context.Context, tx model.Transaction) (model.Transaction, error)
	Get(ctx context.Context, id int64) (model.Transaction, error)
	All(ctx context.Context) ([]model.Transaction, error)
	SetStatus(ctx context.Context, id int64, status model.Status, resolvedAt time.Time) error
}

// ChartReader supplies the chart of accounts.
type ChartReader interface {
	Accounts(ctx context.Context) ([]model.Account, error)
}

// StudentDirectory resolves student references on transactions.
type StudentDirectory interface {
	Student(ctx context.Context, id int64) (model.Student, error)
}

// Engine records transactions and derives every report from the log. It
// holds no state of its own; balances and statements are recomputed from
// the stored transactions on each call.
type Engine struct {
	log      TransactionLog
	chart    ChartReader
	students StudentDirectory
}

func New(log TransactionLog, chart ChartReader, students StudentDirectory) *Engine {
	return &Engine{log: log, chart: chart, students: students}
}

// Record validates a draft transaction and appends it to the log. Drafts
// may arrive pending or already settled; a settled draft without a
// resolution date settles on its own transaction date. The returned
// transaction carries the assigned id.
func (e *Engine) Record(ctx context.Context, draft model.Transaction) (model.Transaction, error) {
	if err := e.validate(ctx, &draft); err != nil {
		return model.Transaction{}, err
	}
	tx, err := e.log.Append(ctx, draft)
	if err != nil {
		return model.Transaction{}, fmt.Errorf("appending transaction: %w", err)
	}
	return tx, nil
}

// Settle marks a pending transaction as paid on the given date.
func (e *Engine) Settle(ctx context.Context, id int64, on time.Time) (model.Transaction, error) {
	return e.resolve(ctx, id, model.StatusSettled, on)
}

// WriteOff abandons a pending transaction, reversing its accrual as of the
// given date.
func (e *Engine) WriteOff(ctx context.Context, id int64, on time.Time) (model.Transaction, error) {
	return e.resolve(ctx, id, model.StatusWrittenOff, on)
}

func (e *Engine) resolve(ctx context.Context, id int64, status model.Status, on time.Time) (model.Transaction, error) {
	if on.IsZero() {
		return model.Transaction{}, &ValidationError{Field: "date", Reason: "resolution date is required"}
	}
	tx, err := e.log.Get(ctx, id)
	if err != nil {
		return model.Transaction{}, fmt.Errorf("loading transaction %d: %w", id, err)
	}
	if !tx.Open() {
		return model.Transaction{}, fmt.Errorf("transaction %d is %s: %w", id, tx.Status, ErrNotPending)
	}
	if on.Before(tx.Date) {
		return model.Transaction{}, &ValidationError{Field: "date", Reason: "resolution date precedes transaction date"}
	}
	if err := e.log.SetStatus(ctx, id, status, on); err != nil {
		return model.Transaction{}, fmt.Errorf("updating transaction %d: %w", id, err)
	}
	tx.Status = status
	tx.ResolvedAt = on
	return tx, nil
}

func (e *Engine) validate(ctx context.Context, draft *model.Transaction) error {
	if draft.Date.IsZero() {
		return &ValidationError{Field: "date", Reason: "transaction date is required"}
	}
	if !draft.Category.Known() {
		return &ValidationError{Field: "category", Reason: fmt.Sprintf("unknown category %q", draft.Category)}
	}
	switch draft.Status {
	case model.StatusPending, model.StatusSettled:
	default:
		return &ValidationError{Field: "status", Reason: fmt.Sprintf("transactions are recorded pending or settled, not %q", draft.Status)}
	}
	if !draft.Amount.IsPositive() {
		return &ValidationError{Field: "amount", Reason: "amount must be positive"}
	}
	if !draft.Amount.Mul(decimal.NewFromInt(100)).Equal(draft.Amount.Mul(decimal.NewFromInt(100)).Floor()) {
		return &ValidationError{Field: "amount", Reason: "amount has more than two decimal places"}
	}
	if draft.Description == "" {
		return &ValidationError{Field: "description", Reason: "description is required"}
	}
	if draft.Term != 0 && !model.KnownTerm(draft.Term) {
		return &ValidationError{Field: "term", Reason: fmt.Sprintf("term %d is not between 1 and 3", draft.Term)}
	}

	c, err := e.loadChart(ctx)
	if err != nil {
		return err
	}
	bucket, ok := c.account(draft.BucketID)
	if !ok {
		return &ValidationError{Field: "bucket", Reason: fmt.Sprintf("account %d does not exist", draft.BucketID)}
	}
	wantClass := model.ClassIncome
	if !draft.Category.IncomeSide() {
		wantClass = model.ClassExpense
	}
	if bucket.Class != wantClass {
		return &ValidationError{Field: "bucket", Reason: fmt.Sprintf("account %q is %s, want %s", bucket.Name, bucket.Class, wantClass)}
	}
	cash, ok := c.account(draft.CashID)
	if !ok {
		return &ValidationError{Field: "cash", Reason: fmt.Sprintf("account %d does not exist", draft.CashID)}
	}
	if cash.Class != model.ClassAsset {
		return &ValidationError{Field: "cash", Reason: fmt.Sprintf("account %q is %s, want %s", cash.Name, cash.Class, model.ClassAsset)}
	}

	if draft.StudentID != 0 {
		if _, err := e.students.Student(ctx, draft.StudentID); err != nil {
			return &ValidationError{Field: "student", Reason: fmt.Sprintf("student %d: %v", draft.StudentID, err)}
		}
	}

	if draft.Status == model.StatusSettled {
		if draft.ResolvedAt.IsZero() {
			draft.ResolvedAt = draft.Date
		}
		if draft.ResolvedAt.Before(draft.Date) {
			return &ValidationError{Field: "date", Reason: "settlement date precedes transaction date"}
		}
	} else {
		draft.ResolvedAt = time.Time{}
	}
	return nil
}

func (e *Engine) loadChart(ctx context.Context) (*chart, error) {
	accounts, err := e.chart.Accounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading chart of accounts: %w", err)
	}
	return newChart(accounts)
}
