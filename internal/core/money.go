// Package core provides the contribution domain model and the amount
// parsing, coercion and formatting rules shared by the import pipeline,
// the aggregator and the report formatter.
package core

import (
	"math"
	"strconv"
	"strings"
)

// ParseAmount converts a statement or form amount into a number. Thousands
// separators are stripped first ("1,000.00" -> 1000). The value must be a
// finite, non-negative decimal; anything else is rejected.
//
// Examples:
//
//	ParseAmount("1,000.00") -> 1000, nil
//	ParseAmount("250.5")    -> 250.5, nil
//	ParseAmount("N/A")      -> 0, ErrInvalidAmount
func ParseAmount(s string) (float64, error) {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", ""))
	if s == "" {
		return 0, ErrInvalidAmount
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, ErrInvalidAmount
	}
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0, ErrInvalidAmount
	}
	return v, nil
}

// Total sums the amounts of a record set. Summation is order-agnostic and
// never fails: corrupt values (NaN, Inf) contribute zero.
func Total(records []Contribution) float64 {
	var total float64
	for _, r := range records {
		if math.IsNaN(r.Amount) || math.IsInf(r.Amount, 0) {
			continue
		}
		total += r.Amount
	}
	return total
}

// FormatAmount renders an amount the way it was entered: no grouping, no
// forced decimals ("100", "250.5"). Used for the per-record report lines.
func FormatAmount(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "0"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// FormatGrouped renders an amount with thousands separators for the total
// lines ("12345.5" -> "12,345.5").
func FormatGrouped(v float64) string {
	s := FormatAmount(v)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	intPart, fracPart, hasFrac := strings.Cut(s, ".")
	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	out := b.String()
	if hasFrac {
		out += "." + fracPart
	}
	if neg {
		out = "-" + out
	}
	return out
}
