// Package numwords renders monetary amounts as English words for printed
// receipts.
package numwords

import (
	"strings"

	"github.com/shopspring/decimal"
)

var ones = []string{
	"Zero", "One", "Two", "Three", "Four", "Five", "Six", "Seven", "Eight",
	"Nine", "Ten", "Eleven", "Twelve", "Thirteen", "Fourteen", "Fifteen",
	"Sixteen", "Seventeen", "Eighteen", "Nineteen",
}

var tens = []string{
	"", "", "Twenty", "Thirty", "Forty", "Fifty", "Sixty", "Seventy",
	"Eighty", "Ninety",
}

var scales = []string{"", " Thousand", " Million", " Billion"}

// Amount renders an amount with shilling and cent phrasing, for example
// "Eight Thousand Five Hundred Shillings and Fifty Cents".
func Amount(d decimal.Decimal) string {
	neg := d.IsNegative()
	totalCents := d.Abs().Mul(decimal.NewFromInt(100)).Round(0).IntPart()
	shillings := totalCents / 100
	cents := totalCents % 100

	out := Int(shillings) + " Shillings"
	if shillings == 1 {
		out = "One Shilling"
	}
	if cents > 0 {
		unit := " Cents"
		if cents == 1 {
			unit = " Cent"
		}
		out += " and " + Int(cents) + unit
	}
	if neg {
		out = "Minus " + out
	}
	return out
}

// Int renders a whole number as words.
func Int(n int64) string {
	if n == 0 {
		return "Zero"
	}
	if n < 0 {
		return "Minus " + Int(-n)
	}

	var groups []int64
	for n > 0 {
		groups = append(groups, n%1000)
		n /= 1000
	}

	var parts []string
	for i := len(groups) - 1; i >= 0; i-- {
		if groups[i] == 0 {
			continue
		}
		parts = append(parts, group(groups[i])+scales[i])
	}
	return strings.Join(parts, " ")
}

// group renders 1..999.
func group(n int64) string {
	var words []string
	if n >= 100 {
		words = append(words, ones[n/100]+" Hundred")
		n %= 100
	}
	switch {
	case n >= 20:
		t := tens[n/10]
		if n%10 != 0 {
			t += "-" + ones[n%10]
		}
		words = append(words, t)
	case n > 0:
		words = append(words, ones[n])
	}
	return strings.Join(words, " ")
}
