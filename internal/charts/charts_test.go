package charts

import (
	"bytes"
	"testing"
	"time"

	"upilens/internal/core"
)

var pngHeader = []byte{0x89, 'P', 'N', 'G'}

func chartSummary() core.Summary {
	return core.Summary{
		CategoryTotals: []core.CategoryTotal{
			{Category: "Food", Total: core.KnownAmount(123450)},
			{Category: "Travel", Total: core.KnownAmount(50000)},
		},
		WeekdayTotals: []core.WeekdayTotal{
			{Weekday: time.Monday, Total: core.KnownAmount(100000)},
			{Weekday: time.Friday, Total: core.KnownAmount(73450)},
		},
		HourTotals: []core.HourTotal{
			{Hour: 9, Total: core.KnownAmount(90000)},
			{Hour: 21, Total: core.KnownAmount(83450)},
		},
		MonthlyTrend: []core.MonthTotal{
			{Month: core.YearMonth{Year: 2025, Month: time.May}, Total: core.KnownAmount(80000)},
			{Month: core.YearMonth{Year: 2025, Month: time.June}, Total: core.KnownAmount(93450)},
		},
	}
}

func TestRendererProducesPNG(t *testing.T) {
	r := NewRenderer()
	sum := chartSummary()

	renders := []struct {
		name string
		fn   func(core.Summary) ([]byte, error)
	}{
		{"category bar", r.CategoryBar},
		{"category pie", r.CategoryPie},
		{"weekday bar", r.WeekdayBar},
		{"hour bar", r.HourBar},
		{"monthly trend", r.MonthlyTrend},
	}

	for i, tt := range renders {
		data, err := tt.fn(sum)
		if err != nil {
			t.Fatalf("case %d (%s): unexpected error: %v", i, tt.name, err)
		}
		if len(data) == 0 {
			t.Fatalf("case %d (%s): expected image bytes, got none", i, tt.name)
		}
		if !bytes.HasPrefix(data, pngHeader) {
			t.Fatalf("case %d (%s): output is not a PNG", i, tt.name)
		}
	}
}

func TestRendererEmptySummary(t *testing.T) {
	r := NewRenderer()

	renders := []struct {
		name string
		fn   func(core.Summary) ([]byte, error)
	}{
		{"category bar", r.CategoryBar},
		{"category pie", r.CategoryPie},
		{"weekday bar", r.WeekdayBar},
		{"hour bar", r.HourBar},
		{"monthly trend", r.MonthlyTrend},
	}

	for i, tt := range renders {
		data, err := tt.fn(core.Summary{})
		if err != nil {
			t.Fatalf("case %d (%s): unexpected error: %v", i, tt.name, err)
		}
		if data != nil {
			t.Fatalf("case %d (%s): expected no image for empty summary", i, tt.name)
		}
	}
}

func TestMonthlyTrendSingleMonth(t *testing.T) {
	r := NewRenderer()
	sum := core.Summary{
		MonthlyTrend: []core.MonthTotal{
			{Month: core.YearMonth{Year: 2025, Month: time.June}, Total: core.KnownAmount(93450)},
		},
	}

	data, err := r.MonthlyTrend(sum)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bytes.HasPrefix(data, pngHeader) {
		t.Fatal("expected a PNG for a single-month trend")
	}
}

func TestCategoryPieSkipsNonPositive(t *testing.T) {
	r := NewRenderer()
	sum := core.Summary{
		CategoryTotals: []core.CategoryTotal{
			{Category: "Refunds", Total: core.KnownAmount(-5000)},
		},
	}

	data, err := r.CategoryPie(sum)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if data != nil {
		t.Fatal("expected no pie when no category has a positive total")
	}
}
