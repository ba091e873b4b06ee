package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/shulebooks/shulebooks/internal/model"
)

// MpesaParser parses M-Pesa organization statement CSV exports. Only
// completed paid-in rows become entries; withdrawals and failed rows are
// skipped.
type MpesaParser struct{}

const (
	mpesaDateFormat = "02-01-2006 15:04:05"
	mpesaNumFields  = 7
	mpesaColReceipt = 0
	mpesaColTime    = 1
	mpesaColDetails = 2
	mpesaColStatus  = 3
	mpesaColPaidIn  = 4
)

// Format returns the parser name.
func (p *MpesaParser) Format() string { return "mpesa" }

// Parse reads an M-Pesa statement CSV and returns StatementEntries.
func (p *MpesaParser) Parse(r io.Reader) ([]model.StatementEntry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = mpesaNumFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading mpesa CSV: %w", err)
	}

	if len(records) <= 1 {
		return nil, nil
	}

	var entries []model.StatementEntry
	for i, rec := range records[1:] {
		if rec[mpesaColStatus] != "Completed" {
			continue
		}
		if strings.TrimSpace(rec[mpesaColPaidIn]) == "" {
			continue
		}
		e, err := parseMpesaRow(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}

func parseMpesaRow(rec []string) (model.StatementEntry, error) {
	date, err := time.Parse(mpesaDateFormat, rec[mpesaColTime])
	if err != nil {
		return model.StatementEntry{}, fmt.Errorf("parsing completion time %q: %w", rec[mpesaColTime], err)
	}

	// Statement amounts carry thousand separators, e.g. "8,500.00".
	raw := strings.ReplaceAll(rec[mpesaColPaidIn], ",", "")
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		return model.StatementEntry{}, fmt.Errorf("parsing paid in %q: %w", rec[mpesaColPaidIn], err)
	}

	return model.StatementEntry{
		Date:      date,
		Reference: rec[mpesaColReceipt],
		Details:   rec[mpesaColDetails],
		Amount:    amount,
	}, nil
}
