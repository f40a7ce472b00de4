// Package core holds the ledger domain types and the aggregation engine.
//
// This file contains amount parsing. Ledger sources routinely carry
// non-numeric amount cells; those coerce to an unknown Amount instead of
// failing the batch, and unknown amounts are excluded from every sum.
package core

import (
	"strconv"
	"strings"
	"unicode"
)

// Amount is a signed monetary quantity in cents. Known is false when the
// source value could not be parsed; such amounts contribute zero to sums and
// never satisfy threshold comparisons.
type Amount struct {
	Cents int64
	Known bool
}

// KnownAmount wraps cents in a known Amount.
func KnownAmount(cents int64) Amount {
	return Amount{Cents: cents, Known: true}
}

// UnknownAmount is the coercion target for unparseable source values.
func UnknownAmount() Amount {
	return Amount{}
}

// Units returns the value in whole currency units for display purposes.
// Use cents for calculations to avoid floating-point precision issues.
func (a Amount) Units() float64 {
	return float64(a.Cents) / 100.0
}

// ParseAmount converts a decimal string to an Amount with half-up rounding
// on the third decimal place. It accepts a dot separator, a leading sign,
// and a comma as decimal separator when it is the sole separator followed by
// one or two digits. Thousands-grouped values like "1,000" coerce to unknown
// rather than misparse. Anything it cannot parse becomes an unknown Amount;
// there is deliberately no error return.
//
// Examples:
//
//	ParseAmount("12.34")  -> 1234 cents, known
//	ParseAmount("-5,50")  -> -550 cents, known
//	ParseAmount("12.346") -> 1235 cents, known (rounds up)
//	ParseAmount("1,000")  -> unknown (grouping, not a decimal)
//	ParseAmount("n/a")    -> unknown
func ParseAmount(s string) Amount {
	s = strings.TrimSpace(s)
	if s == "" {
		return UnknownAmount()
	}
	// A comma is a decimal separator only when unambiguous: one comma, no
	// dot, one or two digits after it.
	if i := strings.IndexByte(s, ','); i >= 0 {
		frac := s[i+1:]
		if strings.Count(s, ",") > 1 || strings.ContainsRune(s, '.') ||
			len(frac) < 1 || len(frac) > 2 {
			return UnknownAmount()
		}
		s = s[:i] + "." + frac
	}

	negative := false
	switch {
	case strings.HasPrefix(s, "-"):
		negative = true
		s = s[1:]
	case strings.HasPrefix(s, "+"):
		s = s[1:]
	}

	parts := strings.Split(s, ".")
	if len(parts) > 2 {
		return UnknownAmount()
	}
	intPart := parts[0]
	fracPart := ""
	if len(parts) == 2 {
		fracPart = parts[1]
	}
	if intPart == "" && fracPart == "" {
		return UnknownAmount() // bare "." or lone sign
	}
	if intPart == "" {
		intPart = "0"
	}
	for _, r := range intPart {
		if !unicode.IsDigit(r) {
			return UnknownAmount()
		}
	}
	for _, r := range fracPart {
		if !unicode.IsDigit(r) {
			return UnknownAmount()
		}
	}

	iv, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return UnknownAmount()
	}
	// Prevent overflow when multiplying by 100
	const maxSafeInt64 = (1<<63 - 1) / 100
	if iv > maxSafeInt64 {
		return UnknownAmount()
	}

	// Take first two fractional digits; then half-up rounding on third
	var fracCents int64
	if len(fracPart) > 0 {
		fracCents = int64(fracPart[0]-'0') * 10
		if len(fracPart) > 1 {
			fracCents += int64(fracPart[1] - '0')
			if len(fracPart) > 2 && fracPart[2] >= '5' {
				fracCents++
			}
		}
	}

	cents := iv*100 + fracCents
	if negative {
		cents = -cents
	}
	return KnownAmount(cents)
}
