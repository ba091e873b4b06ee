package id

import (
	"fmt"
	"strconv"
	"strings"
)

// Receipt returns a receipt number like "RCT-2025-000042". Receipt numbers
// are derived from the transaction id, so they are never stored.
func Receipt(year int, txID int64) string {
	return fmt.Sprintf("RCT-%04d-%06d", year, txID)
}

// Invoice returns an invoice reference like "INV-2025-T1-TUITION-100200300".
// References are deterministic in their inputs; invoicing the same term
// twice produces the same reference.
func Invoice(year, term int, feeType, nemis string) string {
	ft := strings.ToUpper(strings.ReplaceAll(feeType, " ", ""))
	return fmt.Sprintf("INV-%04d-T%d-%s-%s", year, term, ft, nemis)
}

// ParseReceipt parses "RCT-2025-000042" into year and transaction id.
func ParseReceipt(ref string) (year int, txID int64, err error) {
	parts := strings.SplitN(ref, "-", 3)
	if len(parts) != 3 || parts[0] != "RCT" {
		return 0, 0, fmt.Errorf("invalid receipt number format: %q", ref)
	}
	year, err = strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid year in receipt number %q: %w", ref, err)
	}
	txID, err = strconv.ParseInt(parts[2], 10, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid transaction id in receipt number %q: %w", ref, err)
	}
	return year, txID, nil
}

// IsInvoice reports whether ref carries the invoice prefix.
func IsInvoice(ref string) bool {
	return strings.HasPrefix(ref, "INV-")
}
