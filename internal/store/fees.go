package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/shulebooks/shulebooks/internal/model"
)

// FeeStore holds the fee structure, keyed on (year, grade, term, fee type).
type FeeStore struct {
	db *sql.DB
}

const feeColumns = `year, grade, term, fee_type, amount, description`

// Put inserts or replaces one fee structure line.
func (s *FeeStore) Put(ctx context.Context, item model.FeeItem) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO fee_structure (year, grade, term, fee_type, amount, description)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (year, grade, term, fee_type) DO UPDATE SET
			amount = excluded.amount,
			description = excluded.description`,
		item.Year, item.Grade, item.Term, item.FeeType,
		item.Amount.String(), item.Description)
	if err != nil {
		return fmt.Errorf("put fee item: %w", err)
	}

	slog.InfoContext(ctx, "fee structure updated",
		"year", item.Year, "grade", item.Grade, "term", item.Term,
		"fee_type", item.FeeType, "amount", item.Amount)
	return nil
}

// ByYear returns the fee structure for one year ordered by grade, term,
// and fee type.
func (s *FeeStore) ByYear(ctx context.Context, year int) ([]model.FeeItem, error) {
	return s.query(ctx, `SELECT `+feeColumns+` FROM fee_structure
		WHERE year = ? ORDER BY grade, term, fee_type`, year)
}

// For returns the fee items one grade owes in one term.
func (s *FeeStore) For(ctx context.Context, year int, grade string, term int) ([]model.FeeItem, error) {
	return s.query(ctx, `SELECT `+feeColumns+` FROM fee_structure
		WHERE year = ? AND grade = ? AND term = ? ORDER BY fee_type`,
		year, grade, term)
}

// Delete removes one fee structure line.
func (s *FeeStore) Delete(ctx context.Context, year int, grade string, term int, feeType string) error {
	res, err := s.db.ExecContext(ctx, `
		DELETE FROM fee_structure
		WHERE year = ? AND grade = ? AND term = ? AND fee_type = ?`,
		year, grade, term, feeType)
	if err != nil {
		return fmt.Errorf("delete fee item: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("check fee item delete: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("fee item %d/%s/term %d/%s: %w",
			year, grade, term, feeType, ErrNotFound)
	}

	slog.InfoContext(ctx, "fee structure line removed",
		"year", year, "grade", grade, "term", term, "fee_type", feeType)
	return nil
}

func (s *FeeStore) query(ctx context.Context, q string, args ...any) ([]model.FeeItem, error) {
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query fee structure: %w", err)
	}
	defer rows.Close()

	var items []model.FeeItem
	for rows.Next() {
		var (
			item    model.FeeItem
			amountS string
		)
		err := rows.Scan(&item.Year, &item.Grade, &item.Term, &item.FeeType,
			&amountS, &item.Description)
		if err != nil {
			return nil, fmt.Errorf("scan fee item: %w", err)
		}
		if item.Amount, err = decimal.NewFromString(amountS); err != nil {
			return nil, fmt.Errorf("parse amount %q: %w", amountS, err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate fee structure: %w", err)
	}
	return items, nil
}
