package fees

import (
	"context"
	"fmt"
	"time"

	"github.com/shulebooks/shulebooks/internal/id"
	"github.com/shulebooks/shulebooks/internal/model"
)

// InvoiceRun reports what one invoicing pass did.
type InvoiceRun struct {
	Year    int
	Term    int
	Created []model.Transaction
	Skipped []string // invoice references that already existed
}

// GenerateInvoices records a pending receivable for every enrolled student
// and every fee structure line matching their grade for (year, term).
// Invoice references are deterministic, so running the same term twice
// only creates what the first run missed.
func (s *Service) GenerateInvoices(ctx context.Context, year, term int, on, due time.Time) (InvoiceRun, error) {
	run := InvoiceRun{Year: year, Term: term}
	if !model.KnownTerm(term) {
		return run, fmt.Errorf("term %d is not between 1 and 3", term)
	}
	if on.IsZero() || due.IsZero() {
		return run, fmt.Errorf("invoice and due dates are required")
	}

	cash, err := s.chart.ByName(ctx, model.AccountCashOnHand)
	if err != nil {
		return run, fmt.Errorf("resolving cash account: %w", err)
	}
	enrolled, err := s.students.List(ctx)
	if err != nil {
		return run, fmt.Errorf("listing students: %w", err)
	}

	for _, st := range enrolled {
		items, err := s.items.For(ctx, year, st.Grade, term)
		if err != nil {
			return run, fmt.Errorf("loading fee structure for %s: %w", st.Grade, err)
		}
		for _, item := range items {
			ref := id.Invoice(year, term, item.FeeType, st.NEMIS)
			exists, err := s.log.RefExists(ctx, ref)
			if err != nil {
				return run, err
			}
			if exists {
				run.Skipped = append(run.Skipped, ref)
				continue
			}

			bucket, err := s.bucketFor(ctx, item.FeeType)
			if err != nil {
				return run, err
			}
			tx, err := s.ledger.Record(ctx, model.Transaction{
				Ref:         ref,
				Date:        on,
				Category:    model.CategoryReceivable,
				Description: fmt.Sprintf("Term %d %s fees %d - %s", term, item.FeeType, year, st.Name),
				Amount:      item.Amount,
				Status:      model.StatusPending,
				BucketID:    bucket.ID,
				CashID:      cash.ID,
				StudentID:   st.ID,
				Term:        term,
				DueDate:     due,
			})
			if err != nil {
				return run, fmt.Errorf("invoicing %s: %w", st.NEMIS, err)
			}
			run.Created = append(run.Created, tx)
		}
	}
	return run, nil
}
