package ledger

import (
	"strings"
	"testing"
	"time"

	"upilens/internal/core"
)

const sampleCSV = `Date,Time,Amount,Category,Receiver,Status
2025-06-02,09:15:00,120.50,Food,Coffee Shop,COMPLETED
2025-06-03,21:40:00,400,Transport,Metro,PENDING
2025-06-04,08:00:00,abc,Bills,Power Co,COMPLETED
not-a-date,08:00:00,10,Food,Shop,COMPLETED
2025-06-05,late,10,Food,Shop,COMPLETED
`

func TestLoad(t *testing.T) {
	records, warnings, err := Load(strings.NewReader(sampleCSV))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(records) != 3 {
		t.Fatalf("expected 3 accepted rows, got %d", len(records))
	}
	if len(warnings) != 2 {
		t.Fatalf("expected 2 warnings, got %v", warnings)
	}
	// Warning lines count the header.
	if warnings[0].Line != 5 || warnings[1].Line != 6 {
		t.Fatalf("unexpected warning lines: %v", warnings)
	}

	first := records[0]
	if first.Date != core.NewDate(2025, time.June, 2) {
		t.Fatalf("unexpected date: %v", first.Date)
	}
	if first.Hour != 9 {
		t.Fatalf("expected hour 9, got %d", first.Hour)
	}
	if !first.Amount.Known || first.Amount.Cents != 12050 {
		t.Fatalf("unexpected amount: %+v", first.Amount)
	}
	if first.Weekday != time.Monday {
		t.Fatalf("derived weekday wrong: %v", first.Weekday)
	}

	// Malformed amount is accepted as unknown, not rejected.
	third := records[2]
	if third.Receiver != "Power Co" {
		t.Fatalf("unexpected receiver: %q", third.Receiver)
	}
	if third.Amount.Known {
		t.Fatalf("expected unknown amount, got %+v", third.Amount)
	}
}

func TestLoadHeaderCaseInsensitive(t *testing.T) {
	csv := "DATE,TIME,AMOUNT,CATEGORY,RECEIVER,STATUS\n2025-01-01,10:00,5,Food,Shop,COMPLETED\n"
	records, warnings, err := Load(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 1 || len(warnings) != 0 {
		t.Fatalf("expected 1 row, got %d records %d warnings", len(records), len(warnings))
	}
	if records[0].Hour != 10 {
		t.Fatalf("short time layout should parse, got hour %d", records[0].Hour)
	}
}

func TestLoadMissingColumns(t *testing.T) {
	csv := "Date,Amount\n2025-01-01,5\n"
	if _, _, err := Load(strings.NewReader(csv)); err == nil {
		t.Fatal("expected error for missing columns")
	}
}

func TestLoadEmptyInput(t *testing.T) {
	if _, _, err := Load(strings.NewReader("")); err == nil {
		t.Fatal("expected error for empty ledger")
	}
}

func TestLoadAlternateDateLayouts(t *testing.T) {
	csv := "Date,Time,Amount,Category,Receiver,Status\n02/06/2025,10:00,5,Food,Shop,COMPLETED\n"
	records, warnings, err := Load(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", warnings)
	}
	if records[0].Date != core.NewDate(2025, time.June, 2) {
		t.Fatalf("unexpected date: %v", records[0].Date)
	}
}
