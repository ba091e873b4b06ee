package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Category classifies a transaction into one of the operating buckets the
// financial reports partition by.
type Category string

const (
	CategoryTuitionIncome Category = "tuition-income"
	CategoryOtherIncome   Category = "other-income"
	CategoryExpense       Category = "expense"
	CategoryReceivable    Category = "receivable"
	CategoryPayable       Category = "payable"
)

// Known reports whether c is a recognized category.
func (c Category) Known() bool {
	switch c {
	case CategoryTuitionIncome, CategoryOtherIncome, CategoryExpense,
		CategoryReceivable, CategoryPayable:
		return true
	}
	return false
}

// IncomeSide reports whether transactions in c credit an income bucket.
// The remaining categories debit an expense bucket.
func (c Category) IncomeSide() bool {
	switch c {
	case CategoryTuitionIncome, CategoryOtherIncome, CategoryReceivable:
		return true
	}
	return false
}

// Status is the lifecycle state of a transaction.
type Status string

const (
	StatusPending    Status = "pending"
	StatusSettled    Status = "settled"
	StatusWrittenOff Status = "written-off"
)

// Known reports whether s is a recognized status.
func (s Status) Known() bool {
	switch s {
	case StatusPending, StatusSettled, StatusWrittenOff:
		return true
	}
	return false
}

// Transaction is one row in the append-only transaction log. A transaction
// is immutable once recorded except for its status, which may move
// Pending -> Settled or Pending -> WrittenOff.
type Transaction struct {
	ID          int64
	Ref         string // receipt or invoice reference, empty for plain entries
	Date        time.Time
	Category    Category
	Description string
	Amount      decimal.Decimal // always positive
	Status      Status
	BucketID    int64 // income or expense account the amount classifies under
	CashID      int64 // asset account the cash side posts to
	StudentID   int64 // 0 unless tied to an enrolled student
	Payee       string
	Term        int       // 1..3 for term fees, else 0
	DueDate     time.Time // zero unless a due date applies
	ResolvedAt  time.Time // settlement or write-off date; zero while pending
	RemindedAt  time.Time // last reminder date; zero if never reminded
	CreatedAt   time.Time
}

// Open reports whether the transaction is still pending.
func (t Transaction) Open() bool {
	return t.Status == StatusPending
}
