package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// StatementEntry is one paid-in row parsed from a mobile money or bank
// statement export.
type StatementEntry struct {
	Date      time.Time
	Reference string // provider receipt code, e.g. TAB1CD5678
	Details   string // free text, usually carries the student's NEMIS number
	Amount    decimal.Decimal
}
