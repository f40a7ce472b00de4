package core

import "testing"

func TestParseAmount(t *testing.T) {
	cases := []struct {
		in    string
		cents int64
		known bool
	}{
		{"12.34", 1234, true},
		{"12,34", 1234, true},
		{"12.345", 1234, true}, // rounds down
		{"12.346", 1235, true}, // rounds up
		{"500", 50000, true},
		{"-5.50", -550, true},
		{"+7", 700, true},
		{"0", 0, true},
		{".5", 50, true},
		{"", 0, false},
		{"   ", 0, false},
		{"n/a", 0, false},
		{"1,000", 0, false},     // thousands grouping, not a decimal
		{"12,345", 0, false},    // three digits after comma
		{"1,234.56", 0, false},  // mixed separators
		{"1,234,567", 0, false}, // repeated grouping
		{"5,", 0, false},        // dangling comma
		{"1,2", 120, true},      // single fractional digit
		{"12.3.4", 0, false},
		{"12a", 0, false},
		{".", 0, false},
		{"-", 0, false},
		{"99999999999999999999", 0, false}, // overflow
	}
	for _, tc := range cases {
		got := ParseAmount(tc.in)
		if got.Known != tc.known {
			t.Fatalf("%q: expected known=%v, got %v", tc.in, tc.known, got.Known)
		}
		if got.Cents != tc.cents {
			t.Fatalf("%q: expected %d cents, got %d", tc.in, tc.cents, got.Cents)
		}
	}
}

func TestAmountUnits(t *testing.T) {
	if got := KnownAmount(1234).Units(); got != 12.34 {
		t.Fatalf("expected 12.34, got %v", got)
	}
	if got := UnknownAmount().Units(); got != 0 {
		t.Fatalf("expected 0 for unknown, got %v", got)
	}
}
