package fees

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shulebooks/shulebooks/internal/model"
	"github.com/shulebooks/shulebooks/internal/store"
)

// minNEMISDigits is the shortest digit run in a statement detail line
// worth trying as a NEMIS number.
const minNEMISDigits = 5

// ImportResult summarizes one statement import pass.
type ImportResult struct {
	Recorded  []Receipt
	Unmatched []model.StatementEntry
	Skipped   []model.StatementEntry
}

// ImportStatement matches statement entries to enrolled students by the
// NEMIS number carried in the entry details and records each match as a
// settled tuition payment. Entries whose reference is already on the books
// are skipped, so re-importing a statement is safe. Entries with no
// matching student are reported, never recorded.
func (s *Service) ImportStatement(ctx context.Context, entries []model.StatementEntry, term int, cashID int64) (*ImportResult, error) {
	if !model.KnownTerm(term) {
		return nil, fmt.Errorf("term %d is not between 1 and 3", term)
	}

	res := &ImportResult{}
	for _, e := range entries {
		exists, err := s.log.RefExists(ctx, e.Reference)
		if err != nil {
			return nil, err
		}
		if exists {
			res.Skipped = append(res.Skipped, e)
			continue
		}

		st, ok, err := s.matchStudent(ctx, e.Details)
		if err != nil {
			return nil, err
		}
		if !ok {
			res.Unmatched = append(res.Unmatched, e)
			continue
		}

		day := time.Date(e.Date.Year(), e.Date.Month(), e.Date.Day(), 0, 0, 0, 0, time.UTC)
		rcpt, err := s.Collect(ctx, CollectParams{
			NEMIS:  st.NEMIS,
			Amount: e.Amount,
			Term:   term,
			CashID: cashID,
			Date:   day,
			Ref:    e.Reference,
			Note:   e.Details,
		})
		if err != nil {
			return nil, fmt.Errorf("recording %s: %w", e.Reference, err)
		}
		res.Recorded = append(res.Recorded, rcpt)
	}
	return res, nil
}

// matchStudent tries each digit run in a detail line as a NEMIS number.
// Phone numbers and other digit runs simply miss the lookup.
func (s *Service) matchStudent(ctx context.Context, details string) (model.Student, bool, error) {
	for _, run := range digitRuns(details) {
		st, err := s.students.ByNEMIS(ctx, run)
		if err == nil {
			return st, true, nil
		}
		if !errors.Is(err, store.ErrNotFound) {
			return model.Student{}, false, err
		}
	}
	return model.Student{}, false, nil
}

func digitRuns(s string) []string {
	var runs []string
	start := -1
	for i, r := range s {
		if r >= '0' && r <= '9' {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			if i-start >= minNEMISDigits {
				runs = append(runs, s[start:i])
			}
			start = -1
		}
	}
	if start >= 0 && len(s)-start >= minNEMISDigits {
		runs = append(runs, s[start:])
	}
	return runs
}
