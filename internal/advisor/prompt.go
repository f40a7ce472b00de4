package advisor

import (
	"fmt"
	"strconv"
	"strings"

	"upilens/internal/core"
)

// BuildPrompt renders a summary bundle into the fixed prompt layout sent to
// the advice backend. Every section is always present, even when empty, so
// the model sees a stable shape across requests.
func BuildPrompt(sum core.Summary) string {
	var b strings.Builder

	b.WriteString("You are a financial advisor AI. Analyze the user's UPI data and provide clear, actionable insights.\n\n")

	b.WriteString("Spending patterns by category: ")
	b.WriteString(formatPairs(categoryPairs(sum.CategoryTotals)))
	b.WriteString("\nSpending by day: ")
	b.WriteString(formatPairs(weekdayPairs(sum.WeekdayTotals)))
	b.WriteString("\nSpending by hour: ")
	b.WriteString(formatPairs(hourPairs(sum.HourTotals)))
	b.WriteString("\nTop merchants: ")
	b.WriteString(formatPairs(merchantPairs(sum.TopMerchants)))
	b.WriteString("\nSmall & recurring transactions: ")
	b.WriteString(formatRecurring(sum.RecurringSmall))
	b.WriteString("\nPending/Failed transactions: ")
	b.WriteString(formatFlagged(sum.FlaggedStatus))
	b.WriteString("\n")

	return b.String()
}

type pair struct {
	key    string
	amount core.Amount
}

func categoryPairs(ts []core.CategoryTotal) []pair {
	out := make([]pair, 0, len(ts))
	for _, t := range ts {
		out = append(out, pair{t.Category, t.Total})
	}
	return out
}

func weekdayPairs(ts []core.WeekdayTotal) []pair {
	out := make([]pair, 0, len(ts))
	for _, t := range ts {
		out = append(out, pair{t.Weekday.String(), t.Total})
	}
	return out
}

func hourPairs(ts []core.HourTotal) []pair {
	out := make([]pair, 0, len(ts))
	for _, t := range ts {
		out = append(out, pair{strconv.Itoa(t.Hour), t.Total})
	}
	return out
}

func merchantPairs(ts []core.MerchantTotal) []pair {
	out := make([]pair, 0, len(ts))
	for _, t := range ts {
		out = append(out, pair{t.Receiver, t.Total})
	}
	return out
}

func formatPairs(ps []pair) string {
	if len(ps) == 0 {
		return "{}"
	}
	var b strings.Builder
	b.WriteString("{")
	for i, p := range ps {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%s: %.2f", p.key, p.amount.Units())
	}
	b.WriteString("}")
	return b.String()
}

func formatRecurring(rs []core.RecurringCharge) string {
	if len(rs) == 0 {
		return "{}"
	}
	var b strings.Builder
	b.WriteString("{")
	for i, r := range rs {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "(%s, %s): %d", r.Receiver, r.Month, r.Count)
	}
	b.WriteString("}")
	return b.String()
}

func formatFlagged(fs []core.FlaggedTransaction) string {
	if len(fs) == 0 {
		return "[]"
	}
	var b strings.Builder
	b.WriteString("[")
	for i, f := range fs {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "{date: %s, receiver: %s, amount: %.2f, status: %s}",
			f.Date.Format("2006-01-02"), f.Receiver, f.Amount.Units(), f.Status)
	}
	b.WriteString("]")
	return b.String()
}
