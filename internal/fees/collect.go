package fees

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/shulebooks/shulebooks/internal/id"
	"github.com/shulebooks/shulebooks/internal/model"
	"github.com/shulebooks/shulebooks/internal/numwords"
)

// CollectParams describes one fee payment to record.
type CollectParams struct {
	NEMIS  string
	Amount decimal.Decimal
	Term   int
	CashID int64     // asset account the money landed in
	Date   time.Time // payment date
	Ref    string    // external payment reference, e.g. an M-Pesa code
	Note   string    // optional description override
}

// Receipt is the printable result of a collected payment. The receipt
// number is derived from the transaction id and never stored.
type Receipt struct {
	Number        string
	Date          time.Time
	Student       model.Student
	Amount        decimal.Decimal
	AmountInWords string
	Term          int
	TxID          int64
}

// Collect records a settled tuition payment for a student and returns the
// receipt. A payment whose external reference is already on the books is
// rejected.
func (s *Service) Collect(ctx context.Context, p CollectParams) (Receipt, error) {
	if !model.KnownTerm(p.Term) {
		return Receipt{}, fmt.Errorf("term %d is not between 1 and 3", p.Term)
	}
	if p.Date.IsZero() {
		return Receipt{}, fmt.Errorf("payment date is required")
	}
	if err := validAmount(p.Amount); err != nil {
		return Receipt{}, err
	}

	st, err := s.students.ByNEMIS(ctx, p.NEMIS)
	if err != nil {
		return Receipt{}, fmt.Errorf("looking up student %q: %w", p.NEMIS, err)
	}
	if p.Ref != "" {
		exists, err := s.log.RefExists(ctx, p.Ref)
		if err != nil {
			return Receipt{}, err
		}
		if exists {
			return Receipt{}, fmt.Errorf("payment %s is already on the books", p.Ref)
		}
	}

	bucket, err := s.bucketFor(ctx, model.FeeTypeTuition)
	if err != nil {
		return Receipt{}, err
	}
	desc := p.Note
	if desc == "" {
		desc = fmt.Sprintf("Term %d fee payment - %s", p.Term, st.Name)
	}
	tx, err := s.ledger.Record(ctx, model.Transaction{
		Ref:         p.Ref,
		Date:        p.Date,
		Category:    model.CategoryTuitionIncome,
		Description: desc,
		Amount:      p.Amount,
		Status:      model.StatusSettled,
		BucketID:    bucket.ID,
		CashID:      p.CashID,
		StudentID:   st.ID,
		Term:        p.Term,
	})
	if err != nil {
		return Receipt{}, fmt.Errorf("recording payment: %w", err)
	}

	return Receipt{
		Number:        id.Receipt(tx.Date.Year(), tx.ID),
		Date:          tx.Date,
		Student:       st,
		Amount:        tx.Amount,
		AmountInWords: numwords.Amount(tx.Amount) + " Only",
		Term:          p.Term,
		TxID:          tx.ID,
	}, nil
}
