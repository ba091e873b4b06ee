package ledger

import (
	"errors"
	"fmt"
)

var (
	// ErrNotPending means a status transition targeted a transaction that
	// has already been settled or written off.
	ErrNotPending = errors.New("transaction is not pending")

	// ErrChartIncomplete means the chart of accounts is missing one of the
	// structural accounts the posting rules rely on.
	ErrChartIncomplete = errors.New("chart of accounts incomplete")
)

// ValidationError rejects a transaction before it reaches the log.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid transaction: %s: %s", e.Field, e.Reason)
}

// IntegrityError reports a report post-condition violation: the books do
// not balance. It never arises from transactions recorded through the
// engine; it means stored data was corrupted and needs manual correction.
type IntegrityError struct {
	Report string
	Detail string
}

func (e *IntegrityError) Error() string {
	return fmt.Sprintf("%s integrity violation: %s", e.Report, e.Detail)
}
