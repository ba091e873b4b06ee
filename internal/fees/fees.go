// Package fees covers the fee structure, term invoicing, and payment
// collection.
package fees

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/shulebooks/shulebooks/internal/model"
)

// Ledger records validated transactions.
type Ledger interface {
	Record(ctx context.Context, draft model.Transaction) (model.Transaction, error)
}

// Directory resolves enrolled students.
type Directory interface {
	List(ctx context.Context) ([]model.Student, error)
	ByNEMIS(ctx context.Context, nemis string) (model.Student, error)
	ByGrade(ctx context.Context, grade string) ([]model.Student, error)
}

// Items is the stored fee structure.
type Items interface {
	Put(ctx context.Context, item model.FeeItem) error
	ByYear(ctx context.Context, year int) ([]model.FeeItem, error)
	For(ctx context.Context, year int, grade string, term int) ([]model.FeeItem, error)
	Delete(ctx context.Context, year int, grade string, term int, feeType string) error
}

// Log is the read side of the transaction log the service consults.
type Log interface {
	RefExists(ctx context.Context, ref string) (bool, error)
	ByStudent(ctx context.Context, studentID int64) ([]model.Transaction, error)
}

// Chart resolves chart accounts by name.
type Chart interface {
	ByName(ctx context.Context, name string) (model.Account, error)
}

type Service struct {
	ledger   Ledger
	students Directory
	items    Items
	log      Log
	chart    Chart
}

func NewService(ledger Ledger, students Directory, items Items, log Log, chart Chart) *Service {
	return &Service{
		ledger:   ledger,
		students: students,
		items:    items,
		log:      log,
		chart:    chart,
	}
}

// SetFee validates and stores one fee structure line, replacing any line
// with the same (year, grade, term, fee type) key.
func (s *Service) SetFee(ctx context.Context, item model.FeeItem) error {
	if item.Year < 2000 || item.Year > 2100 {
		return fmt.Errorf("implausible year %d", item.Year)
	}
	if !model.KnownGrade(item.Grade) {
		return fmt.Errorf("unknown grade %q", item.Grade)
	}
	if !model.KnownTerm(item.Term) {
		return fmt.Errorf("term %d is not between 1 and 3", item.Term)
	}
	if !model.KnownFeeType(item.FeeType) {
		return fmt.Errorf("unknown fee type %q", item.FeeType)
	}
	if err := validAmount(item.Amount); err != nil {
		return err
	}
	return s.items.Put(ctx, item)
}

// Fees returns the fee structure for a year.
func (s *Service) Fees(ctx context.Context, year int) ([]model.FeeItem, error) {
	return s.items.ByYear(ctx, year)
}

// RemoveFee deletes one fee structure line.
func (s *Service) RemoveFee(ctx context.Context, year int, grade string, term int, feeType string) error {
	return s.items.Delete(ctx, year, grade, term, feeType)
}

func validAmount(d decimal.Decimal) error {
	if !d.IsPositive() {
		return fmt.Errorf("amount must be positive")
	}
	if !d.Mul(decimal.NewFromInt(100)).Equal(d.Mul(decimal.NewFromInt(100)).Floor()) {
		return fmt.Errorf("amount has more than two decimal places")
	}
	return nil
}

// bucketFor maps a fee type to the income account it classifies under.
func (s *Service) bucketFor(ctx context.Context, feeType string) (model.Account, error) {
	name := model.AccountOtherIncome
	if feeType == model.FeeTypeTuition {
		name = model.AccountTuitionIncome
	}
	a, err := s.chart.ByName(ctx, name)
	if err != nil {
		return model.Account{}, fmt.Errorf("resolving income account %q: %w", name, err)
	}
	return a, nil
}
