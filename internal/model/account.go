package model

import "time"

// Class places an account on one side of the accounting equation.
type Class string

const (
	ClassAsset     Class = "asset"
	ClassLiability Class = "liability"
	ClassEquity    Class = "equity"
	ClassIncome    Class = "income"
	ClassExpense   Class = "expense"
)

// Known reports whether c is a recognized class.
func (c Class) Known() bool {
	switch c {
	case ClassAsset, ClassLiability, ClassEquity, ClassIncome, ClassExpense:
		return true
	}
	return false
}

// DebitNormal reports whether accounts of this class grow on the debit side.
func (c Class) DebitNormal() bool {
	return c == ClassAsset || c == ClassExpense
}

// Names of the structural accounts the posting rules rely on. DefaultChart
// seeds them; the ledger engine refuses to run without them.
const (
	AccountCashOnHand         = "Cash on Hand"
	AccountAccountsReceivable = "Accounts Receivable"
	AccountAccountsPayable    = "Accounts Payable"
	AccountTuitionIncome      = "Tuition Income"
	AccountOtherIncome        = "Other Income"
)

// Account is a named bucket in the chart of accounts. Its balance is always
// derived from the transaction log, never stored.
type Account struct {
	ID            int64
	Name          string
	Class         Class
	BankName      string // set on bank-held asset accounts
	AccountNumber string
	CreatedAt     time.Time
}
