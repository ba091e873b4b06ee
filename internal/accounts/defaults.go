package accounts

import "github.com/shulebooks/shulebooks/internal/model"

// DefaultChart returns the chart of accounts a new set of books starts
// with. The first six are structural; the reports and posting rules rely
// on them being present.
func DefaultChart() []model.Account {
	return []model.Account{
		{Name: model.AccountCashOnHand, Class: model.ClassAsset},
		{Name: model.AccountAccountsReceivable, Class: model.ClassAsset},
		{Name: model.AccountAccountsPayable, Class: model.ClassLiability},
		{Name: "General Fund", Class: model.ClassEquity},
		{Name: model.AccountTuitionIncome, Class: model.ClassIncome},
		{Name: model.AccountOtherIncome, Class: model.ClassIncome},
		{Name: "Salaries", Class: model.ClassExpense},
		{Name: "Utilities", Class: model.ClassExpense},
		{Name: "Supplies", Class: model.ClassExpense},
		{Name: "Transport", Class: model.ClassExpense},
		{Name: "Maintenance", Class: model.ClassExpense},
		{Name: "Other Expense", Class: model.ClassExpense},
	}
}
