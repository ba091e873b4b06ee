package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/shulebooks/shulebooks/internal/model"
)

// TransactionStore reads and extends the append-only transaction log.
type TransactionStore struct {
	db *sql.DB
}

const txColumns = `id, ref, date, category, description, amount, status,
	bucket_id, cash_id, student_id, payee, term, due_date, resolved_at,
	reminded_at, created_at`

// Append inserts a new transaction and returns it with the assigned id.
func (s *TransactionStore) Append(ctx context.Context, tx model.Transaction) (model.Transaction, error) {
	tx.CreatedAt = time.Now().UTC()
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO transactions (ref, date, category, description, amount,
			status, bucket_id, cash_id, student_id, payee, term, due_date,
			resolved_at, reminded_at, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		tx.Ref, fmtDate(tx.Date), string(tx.Category), tx.Description,
		tx.Amount.String(), string(tx.Status), tx.BucketID, tx.CashID,
		tx.StudentID, tx.Payee, tx.Term, fmtDate(tx.DueDate),
		fmtDate(tx.ResolvedAt), fmtDate(tx.RemindedAt), fmtStamp(tx.CreatedAt))
	if err != nil {
		return model.Transaction{}, fmt.Errorf("insert transaction: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Transaction{}, fmt.Errorf("read transaction id: %w", err)
	}
	tx.ID = id

	slog.InfoContext(ctx, "transaction recorded",
		"id", tx.ID,
		"category", tx.Category,
		"amount", tx.Amount,
		"status", tx.Status)
	return tx, nil
}

// Get returns the transaction with the given id.
func (s *TransactionStore) Get(ctx context.Context, id int64) (model.Transaction, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+txColumns+` FROM transactions WHERE id = ?`, id)
	tx, err := scanTransaction(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Transaction{}, fmt.Errorf("transaction %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return model.Transaction{}, fmt.Errorf("get transaction %d: %w", id, err)
	}
	return tx, nil
}

// All returns every transaction ordered by date, then id.
func (s *TransactionStore) All(ctx context.Context) ([]model.Transaction, error) {
	return s.query(ctx, `SELECT `+txColumns+` FROM transactions ORDER BY date, id`)
}

// PendingByCategory returns open transactions of one category ordered by
// due date, earliest first.
func (s *TransactionStore) PendingByCategory(ctx context.Context, category model.Category) ([]model.Transaction, error) {
	return s.query(ctx, `SELECT `+txColumns+` FROM transactions
		WHERE status = ? AND category = ?
		ORDER BY due_date, id`, string(model.StatusPending), string(category))
}

// ByStudent returns a student's transactions ordered by date.
func (s *TransactionStore) ByStudent(ctx context.Context, studentID int64) ([]model.Transaction, error) {
	return s.query(ctx, `SELECT `+txColumns+` FROM transactions
		WHERE student_id = ? ORDER BY date, id`, studentID)
}

// RefExists reports whether any transaction already carries ref.
func (s *TransactionStore) RefExists(ctx context.Context, ref string) (bool, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(1) FROM transactions WHERE ref = ?`, ref).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("count ref %q: %w", ref, err)
	}
	return n > 0, nil
}

// SetStatus resolves a pending transaction. The guard in the WHERE clause
// keeps settled and written-off rows immutable.
func (s *TransactionStore) SetStatus(ctx context.Context, id int64, status model.Status, resolvedAt time.Time) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE transactions SET status = ?, resolved_at = ?
		WHERE id = ? AND status = ?`,
		string(status), fmtDate(resolvedAt), id, string(model.StatusPending))
	if err != nil {
		return fmt.Errorf("update transaction %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("check update of transaction %d: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("transaction %d has no pending row to update", id)
	}

	slog.InfoContext(ctx, "transaction resolved",
		"id", id,
		"status", status,
		"resolved_at", fmtDate(resolvedAt))
	return nil
}

// SetReminded stamps the last reminder date on a transaction.
func (s *TransactionStore) SetReminded(ctx context.Context, id int64, on time.Time) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE transactions SET reminded_at = ? WHERE id = ?`, fmtDate(on), id)
	if err != nil {
		return fmt.Errorf("update transaction %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("check update of transaction %d: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("transaction %d: %w", id, ErrNotFound)
	}

	slog.InfoContext(ctx, "reminder stamped", "id", id, "on", fmtDate(on))
	return nil
}

func (s *TransactionStore) query(ctx context.Context, q string, args ...any) ([]model.Transaction, error) {
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query transactions: %w", err)
	}
	defer rows.Close()

	var txs []model.Transaction
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		txs = append(txs, tx)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transactions: %w", err)
	}
	return txs, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTransaction(row rowScanner) (model.Transaction, error) {
	var (
		tx                                 model.Transaction
		category, status                   string
		dateS, amountS                     string
		dueS, resolvedS, remindedS, madeAt string
	)
	err := row.Scan(&tx.ID, &tx.Ref, &dateS, &category, &tx.Description,
		&amountS, &status, &tx.BucketID, &tx.CashID, &tx.StudentID,
		&tx.Payee, &tx.Term, &dueS, &resolvedS, &remindedS, &madeAt)
	if err != nil {
		return model.Transaction{}, err
	}

	tx.Category = model.Category(category)
	tx.Status = model.Status(status)
	if tx.Amount, err = decimal.NewFromString(amountS); err != nil {
		return model.Transaction{}, fmt.Errorf("parse amount %q: %w", amountS, err)
	}
	if tx.Date, err = parseDate(dateS); err != nil {
		return model.Transaction{}, err
	}
	if tx.DueDate, err = parseDate(dueS); err != nil {
		return model.Transaction{}, err
	}
	if tx.ResolvedAt, err = parseDate(resolvedS); err != nil {
		return model.Transaction{}, err
	}
	if tx.RemindedAt, err = parseDate(remindedS); err != nil {
		return model.Transaction{}, err
	}
	if tx.CreatedAt, err = parseStamp(madeAt); err != nil {
		return model.Transaction{}, err
	}
	return tx, nil
}
