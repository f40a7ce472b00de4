// This file maps summary bundles onto the JSON wire format. Amounts cross
// the wire as integer cents so clients never see float rounding artifacts.

package http

import (
	"upilens/internal/core"
)

type summaryResponse struct {
	Start      string   `json:"start"`
	End        string   `json:"end"`
	Categories []string `json:"categories"`

	CategoryTotals []categoryTotalJSON `json:"category_totals"`
	WeekdayTotals  []weekdayTotalJSON  `json:"weekday_totals"`
	HourTotals     []hourTotalJSON     `json:"hour_totals"`
	TopMerchants   []merchantTotalJSON `json:"top_merchants"`
	MonthlyTrend   []monthTotalJSON    `json:"monthly_trend"`
	RecurringSmall []recurringJSON     `json:"recurring_small"`
	FlaggedStatus  []flaggedJSON       `json:"flagged_status"`
}

type categoryTotalJSON struct {
	Category   string `json:"category"`
	TotalCents int64  `json:"total_cents"`
}

type weekdayTotalJSON struct {
	Weekday    string `json:"weekday"`
	TotalCents int64  `json:"total_cents"`
}

type hourTotalJSON struct {
	Hour       int   `json:"hour"`
	TotalCents int64 `json:"total_cents"`
}

type merchantTotalJSON struct {
	Receiver   string `json:"receiver"`
	TotalCents int64  `json:"total_cents"`
}

type monthTotalJSON struct {
	Month      string `json:"month"`
	TotalCents int64  `json:"total_cents"`
}

type recurringJSON struct {
	Receiver string `json:"receiver"`
	Month    string `json:"month"`
	Count    int    `json:"count"`
}

type flaggedJSON struct {
	Date        string `json:"date"`
	Receiver    string `json:"receiver"`
	AmountCents int64  `json:"amount_cents"`
	AmountKnown bool   `json:"amount_known"`
	Status      string `json:"status"`
}

func buildSummaryResponse(p core.Params, sum core.Summary) summaryResponse {
	resp := summaryResponse{
		Start:          p.Start.Format("2006-01-02"),
		End:            p.End.Format("2006-01-02"),
		Categories:     p.Categories,
		CategoryTotals: make([]categoryTotalJSON, 0, len(sum.CategoryTotals)),
		WeekdayTotals:  make([]weekdayTotalJSON, 0, len(sum.WeekdayTotals)),
		HourTotals:     make([]hourTotalJSON, 0, len(sum.HourTotals)),
		TopMerchants:   make([]merchantTotalJSON, 0, len(sum.TopMerchants)),
		MonthlyTrend:   make([]monthTotalJSON, 0, len(sum.MonthlyTrend)),
		RecurringSmall: make([]recurringJSON, 0, len(sum.RecurringSmall)),
		FlaggedStatus:  make([]flaggedJSON, 0, len(sum.FlaggedStatus)),
	}

	for _, ct := range sum.CategoryTotals {
		resp.CategoryTotals = append(resp.CategoryTotals, categoryTotalJSON{
			Category:   ct.Category,
			TotalCents: ct.Total.Cents,
		})
	}
	for _, wt := range sum.WeekdayTotals {
		resp.WeekdayTotals = append(resp.WeekdayTotals, weekdayTotalJSON{
			Weekday:    wt.Weekday.String(),
			TotalCents: wt.Total.Cents,
		})
	}
	for _, ht := range sum.HourTotals {
		resp.HourTotals = append(resp.HourTotals, hourTotalJSON{
			Hour:       ht.Hour,
			TotalCents: ht.Total.Cents,
		})
	}
	for _, mt := range sum.TopMerchants {
		resp.TopMerchants = append(resp.TopMerchants, merchantTotalJSON{
			Receiver:   mt.Receiver,
			TotalCents: mt.Total.Cents,
		})
	}
	for _, mt := range sum.MonthlyTrend {
		resp.MonthlyTrend = append(resp.MonthlyTrend, monthTotalJSON{
			Month:      mt.Month.String(),
			TotalCents: mt.Total.Cents,
		})
	}
	for _, rc := range sum.RecurringSmall {
		resp.RecurringSmall = append(resp.RecurringSmall, recurringJSON{
			Receiver: rc.Receiver,
			Month:    rc.Month.String(),
			Count:    rc.Count,
		})
	}
	for _, ft := range sum.FlaggedStatus {
		resp.FlaggedStatus = append(resp.FlaggedStatus, flaggedJSON{
			Date:        ft.Date.Format("2006-01-02"),
			Receiver:    ft.Receiver,
			AmountCents: ft.Amount.Cents,
			AmountKnown: ft.Amount.Known,
			Status:      string(ft.Status),
		})
	}

	return resp
}
