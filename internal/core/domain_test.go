package core

import (
	"testing"
	"time"
)

func TestDateValidate(t *testing.T) {
	cases := []struct {
		d  Date
		ok bool
	}{
		{NewDate(2025, time.January, 1), true},
		{NewDate(2025, time.December, 31), true},
		{Date{Time: time.Time{}}, false}, // zero time
	}
	for i, tc := range cases {
		err := tc.d.Validate()
		if tc.ok && err != nil {
			t.Fatalf("case %d expected ok, got %v", i, err)
		}
		if !tc.ok && err == nil {
			t.Fatalf("case %d expected error", i)
		}
	}
}

func TestYearMonthOrderingAndString(t *testing.T) {
	jan := YearMonth{Year: 2025, Month: time.January}
	feb := YearMonth{Year: 2025, Month: time.February}
	prevDec := YearMonth{Year: 2024, Month: time.December}

	if !jan.Before(feb) {
		t.Fatalf("expected %v before %v", jan, feb)
	}
	if !prevDec.Before(jan) {
		t.Fatalf("expected %v before %v", prevDec, jan)
	}
	if feb.Before(jan) {
		t.Fatalf("did not expect %v before %v", feb, jan)
	}
	if got := jan.String(); got != "2025-01" {
		t.Fatalf("expected 2025-01, got %s", got)
	}
}

func TestStatusIsProblem(t *testing.T) {
	if !StatusPending.IsProblem() || !StatusFailed.IsProblem() {
		t.Fatal("PENDING and FAILED should be flagged")
	}
	if StatusCompleted.IsProblem() {
		t.Fatal("COMPLETED should not be flagged")
	}
	if Status("REFUNDED").IsProblem() {
		t.Fatal("unknown statuses should not be flagged")
	}
}

func TestNewTransactionDerivedFields(t *testing.T) {
	// 2025-06-02 is a Monday.
	tx := NewTransaction(NewDate(2025, time.June, 2), 14, KnownAmount(1000), " Food ", " Coffee Shop ", "completed")

	if tx.Weekday != time.Monday {
		t.Fatalf("expected Monday, got %v", tx.Weekday)
	}
	if tx.Month != (YearMonth{Year: 2025, Month: time.June}) {
		t.Fatalf("unexpected month bucket %v", tx.Month)
	}
	if tx.Category != "Food" || tx.Receiver != "Coffee Shop" {
		t.Fatalf("expected trimmed fields, got %q %q", tx.Category, tx.Receiver)
	}
	if tx.Status != StatusCompleted {
		t.Fatalf("expected normalized status, got %q", tx.Status)
	}
	if err := tx.Validate(); err != nil {
		t.Fatalf("expected valid transaction, got %v", err)
	}
}

func TestTransactionValidate(t *testing.T) {
	good := NewTransaction(NewDate(2025, time.June, 2), 0, KnownAmount(1), "Food", "Shop", StatusCompleted)

	bads := []Transaction{
		{Hour: 10, Category: "c", Receiver: "r"},                     // zero date
		NewTransaction(good.Date, 24, good.Amount, "c", "r", "OK"),   // hour out of range
		NewTransaction(good.Date, 10, good.Amount, "  ", "r", "OK"),  // empty category
		NewTransaction(good.Date, 10, good.Amount, "c", "   ", "OK"), // empty receiver
	}
	for i, tx := range bads {
		if err := tx.Validate(); err == nil {
			t.Fatalf("case %d expected error", i)
		}
	}
}
