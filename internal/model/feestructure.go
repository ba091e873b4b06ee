package model

import "github.com/shopspring/decimal"

// FeeItem is one line of the fee structure: what a grade owes for one fee
// type in one term of an academic year.
type FeeItem struct {
	Year        int
	Grade       string
	Term        int
	FeeType     string
	Amount      decimal.Decimal
	Description string
}

// FeeTypes lists the fee types the structure accepts.
var FeeTypes = []string{
	"Tuition", "Lunch", "Transport", "Activity", "Library", "Uniform", "Other",
}

// FeeTypeTuition is the fee type term invoicing defaults to.
const FeeTypeTuition = "Tuition"

// KnownFeeType reports whether t is a recognized fee type.
func KnownFeeType(t string) bool {
	for _, known := range FeeTypes {
		if t == known {
			return true
		}
	}
	return false
}

// KnownTerm reports whether the school year contains term t.
func KnownTerm(t int) bool {
	return t >= 1 && t <= 3
}
