package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/shopspring/decimal"

	"github.com/shulebooks/shulebooks/internal/accounts"
	"github.com/shulebooks/shulebooks/internal/auditlog"
	"github.com/shulebooks/shulebooks/internal/config"
	"github.com/shulebooks/shulebooks/internal/fees"
	"github.com/shulebooks/shulebooks/internal/ledger"
	"github.com/shulebooks/shulebooks/internal/reminders"
	"github.com/shulebooks/shulebooks/internal/store"
	"github.com/shulebooks/shulebooks/internal/students"
)

// books bundles the opened store and the services commands call.
type books struct {
	dir       string
	cfg       *config.Config
	store     *store.Store
	ledger    *ledger.Engine
	accounts  *accounts.Service
	students  *students.Service
	fees      *fees.Service
	reminders *reminders.Service
}

// openBooks loads shulebooks.yaml from dir and opens the database it
// points at. Callers must close the result.
func openBooks(dir string) (*books, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}

	cfg, err := config.Load(filepath.Join(absDir, "shulebooks.yaml"))
	if err != nil {
		return nil, fmt.Errorf("no books in %s, run init first: %w", absDir, err)
	}

	st, err := store.Open(filepath.Join(absDir, cfg.Database.Path))
	if err != nil {
		return nil, err
	}

	eng := ledger.New(st.Transactions, st.Accounts, st.Students)
	studentSvc := students.NewService(st.Students)
	return &books{
		dir:       absDir,
		cfg:       cfg,
		store:     st,
		ledger:    eng,
		accounts:  accounts.NewService(st.Accounts),
		students:  studentSvc,
		fees:      fees.NewService(eng, studentSvc, st.Fees, st.Transactions, st.Accounts),
		reminders: reminders.NewService(st.Transactions, st.Students, cfg.Reminders.LeadDays),
	}, nil
}

func (b *books) close() {
	if err := b.store.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "warning: closing database: %v\n", err)
	}
}

// audit appends one audit row. Failing to write the trail warns but never
// fails the command that already mutated the books.
func (b *books) audit(action, details string, txID int64, ref string) {
	entry := auditlog.Entry{
		Timestamp: time.Now().UTC(),
		Action:    action,
		Details:   details,
		TxID:      txID,
		Ref:       ref,
	}
	if err := auditlog.Append(b.dir, []auditlog.Entry{entry}); err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to write audit log: %v\n", err)
	}
}

// cashAccount resolves the asset account cash moves through.
func (b *books) cashAccount(ctx context.Context, name string) (int64, error) {
	a, err := b.accounts.ByName(ctx, name)
	if err != nil {
		return 0, fmt.Errorf("resolving cash account %q: %w", name, err)
	}
	return a.ID, nil
}

const dateLayout = "2006-01-02"

// parseDate parses a YYYY-MM-DD flag value.
func parseDate(s string) (time.Time, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("date %q is not YYYY-MM-DD", s)
	}
	return t, nil
}

// parseDateOr parses s, falling back when the flag was not given.
func parseDateOr(s string, fallback time.Time) (time.Time, error) {
	if s == "" {
		return fallback, nil
	}
	return parseDate(s)
}

// today is the current date at UTC midnight, the granularity the books keep.
func today() time.Time {
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

// parseAmount parses a positive decimal flag value.
func parseAmount(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("amount %q is not a number", s)
	}
	return d, nil
}
