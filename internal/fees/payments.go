package fees

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/shulebooks/shulebooks/internal/model"
)

// StudentPayment is one line of the per-student payments report: what a
// student was billed for a term against what has actually come in.
type StudentPayment struct {
	Student model.Student
	Billed  decimal.Decimal
	Paid    decimal.Decimal
	Balance decimal.Decimal
}

// StudentPayments reports billed, paid, and outstanding amounts for every
// student of a grade in one term. Billed comes from the fee structure;
// paid sums the student's settled income transactions for that term.
func (s *Service) StudentPayments(ctx context.Context, year int, grade string, term int) ([]StudentPayment, error) {
	if !model.KnownGrade(grade) {
		return nil, fmt.Errorf("unknown grade %q", grade)
	}
	if !model.KnownTerm(term) {
		return nil, fmt.Errorf("term %d is not between 1 and 3", term)
	}

	items, err := s.items.For(ctx, year, grade, term)
	if err != nil {
		return nil, fmt.Errorf("loading fee structure: %w", err)
	}
	var billed decimal.Decimal
	for _, item := range items {
		billed = billed.Add(item.Amount)
	}

	enrolled, err := s.students.ByGrade(ctx, grade)
	if err != nil {
		return nil, fmt.Errorf("listing students: %w", err)
	}

	report := make([]StudentPayment, 0, len(enrolled))
	for _, st := range enrolled {
		txs, err := s.log.ByStudent(ctx, st.ID)
		if err != nil {
			return nil, fmt.Errorf("loading payments for %s: %w", st.NEMIS, err)
		}
		var paid decimal.Decimal
		for _, tx := range txs {
			if tx.Status != model.StatusSettled || !tx.Category.IncomeSide() {
				continue
			}
			if tx.Term != term || tx.Date.Year() != year {
				continue
			}
			paid = paid.Add(tx.Amount)
		}
		report = append(report, StudentPayment{
			Student: st,
			Billed:  billed,
			Paid:    paid,
			Balance: billed.Sub(paid),
		})
	}
	return report, nil
}
