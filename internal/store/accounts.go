package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/shulebooks/shulebooks/internal/model"
)

// AccountStore holds the chart of accounts.
type AccountStore struct {
	db *sql.DB
}

const accountColumns = `id, name, class, bank_name, account_number, created_at`

// Add inserts an account and returns it with the assigned id. Names are
// unique across the chart.
func (s *AccountStore) Add(ctx context.Context, a model.Account) (model.Account, error) {
	a.CreatedAt = time.Now().UTC()
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO accounts (name, class, bank_name, account_number, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		a.Name, string(a.Class), a.BankName, a.AccountNumber, fmtStamp(a.CreatedAt))
	if err != nil {
		return model.Account{}, fmt.Errorf("insert account %q: %w", a.Name, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Account{}, fmt.Errorf("read account id: %w", err)
	}
	a.ID = id

	slog.InfoContext(ctx, "account added", "id", a.ID, "name", a.Name, "class", a.Class)
	return a, nil
}

// Accounts returns the full chart in insertion order.
func (s *AccountStore) Accounts(ctx context.Context) ([]model.Account, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+accountColumns+` FROM accounts ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query accounts: %w", err)
	}
	defer rows.Close()

	var accounts []model.Account
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("scan account: %w", err)
		}
		accounts = append(accounts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate accounts: %w", err)
	}
	return accounts, nil
}

// ByID returns one account.
func (s *AccountStore) ByID(ctx context.Context, id int64) (model.Account, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE id = ?`, id)
	a, err := scanAccount(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Account{}, fmt.Errorf("account %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return model.Account{}, fmt.Errorf("get account %d: %w", id, err)
	}
	return a, nil
}

// ByName returns the account with the given name.
func (s *AccountStore) ByName(ctx context.Context, name string) (model.Account, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE name = ?`, name)
	a, err := scanAccount(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Account{}, fmt.Errorf("account %q: %w", name, ErrNotFound)
	}
	if err != nil {
		return model.Account{}, fmt.Errorf("get account %q: %w", name, err)
	}
	return a, nil
}

// Count returns the number of chart accounts.
func (s *AccountStore) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM accounts`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count accounts: %w", err)
	}
	return n, nil
}

func scanAccount(row rowScanner) (model.Account, error) {
	var (
		a      model.Account
		class  string
		madeAt string
	)
	err := row.Scan(&a.ID, &a.Name, &class, &a.BankName, &a.AccountNumber, &madeAt)
	if err != nil {
		return model.Account{}, err
	}
	a.Class = model.Class(class)
	if a.CreatedAt, err = parseStamp(madeAt); err != nil {
		return model.Account{}, err
	}
	return a, nil
}
