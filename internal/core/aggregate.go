package core

import (
	"sort"
	"time"
)

// Defaults for the aggregation parameters, in line with the upstream UPI
// analyzer: payments under 500 units repeated more than 3 times a month are
// flagged, and the merchant ranking keeps 5 entries.
const (
	DefaultSmallAmountCents   = 500 * 100
	DefaultRecurrenceMinCount = 3
	DefaultTopMerchants       = 5
)

type (
	// Params scopes one aggregation pass. Start/End are inclusive on both
	// ends. Zero is the unset sentinel for the thresholds and falls back to
	// the package defaults; a negative SmallAmountCents disables
	// recurring-small detection entirely.
	Params struct {
		Start      Date
		End        Date
		Categories []string

		SmallAmountCents   int64
		RecurrenceMinCount int
		TopMerchants       int
	}

	CategoryTotal struct {
		Category string
		Total    Amount
	}

	WeekdayTotal struct {
		Weekday time.Weekday
		Total   Amount
	}

	HourTotal struct {
		Hour  int
		Total Amount
	}

	MerchantTotal struct {
		Receiver string
		Total    Amount
	}

	MonthTotal struct {
		Month YearMonth
		Total Amount
	}

	// RecurringCharge is a (receiver, month) pair whose small-payment count
	// exceeded the recurrence threshold.
	RecurringCharge struct {
		Receiver string
		Month    YearMonth
		Count    int
	}

	// FlaggedTransaction projects a PENDING/FAILED row for reporting.
	FlaggedTransaction struct {
		Date     Date
		Receiver string
		Amount   Amount
		Status   Status
	}

	// Summary is the full output bundle of one aggregation pass. All ranked
	// slices are ordered descending by total with ties broken by first
	// appearance in the input; MonthlyTrend alone is chronological because it
	// feeds a time-series view, not a ranking.
	Summary struct {
		CategoryTotals []CategoryTotal
		WeekdayTotals  []WeekdayTotal
		HourTotals     []HourTotal
		TopMerchants   []MerchantTotal
		MonthlyTrend   []MonthTotal
		RecurringSmall []RecurringCharge
		FlaggedStatus  []FlaggedTransaction
	}
)

func (p Params) withDefaults() Params {
	if p.SmallAmountCents == 0 {
		p.SmallAmountCents = DefaultSmallAmountCents
	}
	if p.RecurrenceMinCount == 0 {
		p.RecurrenceMinCount = DefaultRecurrenceMinCount
	}
	if p.TopMerchants == 0 {
		p.TopMerchants = DefaultTopMerchants
	}
	return p
}

// Aggregate is a pure function from (records, params) to a Summary. The
// input slice is never mutated and identical inputs produce identical
// bundles. An inverted date range or an empty category set yields an empty
// Summary rather than an error, mirroring permissive dashboard filtering.
func Aggregate(records []Transaction, p Params) Summary {
	p = p.withDefaults()

	var sum Summary
	if p.End.Before(p.Start.Time) || len(p.Categories) == 0 {
		return sum
	}

	wanted := make(map[string]bool, len(p.Categories))
	for _, c := range p.Categories {
		wanted[c] = true
	}

	filtered := make([]Transaction, 0, len(records))
	for _, t := range records {
		if t.Date.Before(p.Start.Time) || t.Date.After(p.End.Time) {
			continue
		}
		if !wanted[t.Category] {
			continue
		}
		filtered = append(filtered, t)
	}

	sum.CategoryTotals = categoryTotals(filtered)
	sum.WeekdayTotals = weekdayTotals(filtered)
	sum.HourTotals = hourTotals(filtered)
	sum.TopMerchants = topMerchants(filtered, p.TopMerchants)
	sum.MonthlyTrend = monthlyTrend(filtered)
	sum.RecurringSmall = recurringSmall(filtered, p.SmallAmountCents, p.RecurrenceMinCount)
	sum.FlaggedStatus = flaggedStatus(filtered)
	return sum
}

// grouped accumulates totals per string key while remembering first-seen
// order, which is the documented tie-break for ranked summaries.
type grouped struct {
	keys   []string
	totals map[string]int64
}

func newGrouped() *grouped {
	return &grouped{totals: make(map[string]int64)}
}

func (g *grouped) add(key string, a Amount) {
	if _, seen := g.totals[key]; !seen {
		g.keys = append(g.keys, key)
		g.totals[key] = 0
	}
	if a.Known {
		g.totals[key] += a.Cents
	}
}

// ranked returns keys sorted by total descending; equal totals keep
// first-seen order (sort.SliceStable over the insertion-ordered keys).
func (g *grouped) ranked() []string {
	keys := make([]string, len(g.keys))
	copy(keys, g.keys)
	sort.SliceStable(keys, func(i, j int) bool {
		return g.totals[keys[i]] > g.totals[keys[j]]
	})
	return keys
}

func categoryTotals(records []Transaction) []CategoryTotal {
	g := newGrouped()
	for _, t := range records {
		g.add(t.Category, t.Amount)
	}
	out := make([]CategoryTotal, 0, len(g.keys))
	for _, k := range g.ranked() {
		out = append(out, CategoryTotal{Category: k, Total: KnownAmount(g.totals[k])})
	}
	return out
}

func weekdayTotals(records []Transaction) []WeekdayTotal {
	g := newGrouped()
	byName := make(map[string]time.Weekday, 7)
	for _, t := range records {
		name := t.Weekday.String()
		byName[name] = t.Weekday
		g.add(name, t.Amount)
	}
	out := make([]WeekdayTotal, 0, len(g.keys))
	for _, k := range g.ranked() {
		out = append(out, WeekdayTotal{Weekday: byName[k], Total: KnownAmount(g.totals[k])})
	}
	return out
}

func hourTotals(records []Transaction) []HourTotal {
	g := newGrouped()
	byName := make(map[string]int, 24)
	for _, t := range records {
		name := hourKey(t.Hour)
		byName[name] = t.Hour
		g.add(name, t.Amount)
	}
	out := make([]HourTotal, 0, len(g.keys))
	for _, k := range g.ranked() {
		out = append(out, HourTotal{Hour: byName[k], Total: KnownAmount(g.totals[k])})
	}
	return out
}

func hourKey(hour int) string {
	// Two digits keep keys unique; the value itself comes from byName.
	return string([]byte{byte('0' + hour/10), byte('0' + hour%10)})
}

func topMerchants(records []Transaction, n int) []MerchantTotal {
	g := newGrouped()
	for _, t := range records {
		g.add(t.Receiver, t.Amount)
	}
	keys := g.ranked()
	if len(keys) > n {
		keys = keys[:n]
	}
	out := make([]MerchantTotal, 0, len(keys))
	for _, k := range keys {
		out = append(out, MerchantTotal{Receiver: k, Total: KnownAmount(g.totals[k])})
	}
	return out
}

func monthlyTrend(records []Transaction) []MonthTotal {
	totals := make(map[YearMonth]int64)
	months := make([]YearMonth, 0)
	for _, t := range records {
		if _, seen := totals[t.Month]; !seen {
			months = append(months, t.Month)
			totals[t.Month] = 0
		}
		if t.Amount.Known {
			totals[t.Month] += t.Amount.Cents
		}
	}
	sort.Slice(months, func(i, j int) bool { return months[i].Before(months[j]) })
	out := make([]MonthTotal, 0, len(months))
	for _, m := range months {
		out = append(out, MonthTotal{Month: m, Total: KnownAmount(totals[m])})
	}
	return out
}

func recurringSmall(records []Transaction, smallCents int64, minCount int) []RecurringCharge {
	if smallCents < 0 {
		return nil
	}
	type key struct {
		receiver string
		month    YearMonth
	}
	counts := make(map[key]int)
	order := make([]key, 0)
	for _, t := range records {
		// Unknown amounts cannot be judged small, so they never count here.
		if !t.Amount.Known || t.Amount.Cents >= smallCents {
			continue
		}
		k := key{receiver: t.Receiver, month: t.Month}
		if _, seen := counts[k]; !seen {
			order = append(order, k)
		}
		counts[k]++
	}
	var out []RecurringCharge
	for _, k := range order {
		if counts[k] > minCount {
			out = append(out, RecurringCharge{Receiver: k.receiver, Month: k.month, Count: counts[k]})
		}
	}
	return out
}

func flaggedStatus(records []Transaction) []FlaggedTransaction {
	var out []FlaggedTransaction
	for _, t := range records {
		if !t.Status.IsProblem() {
			continue
		}
		out = append(out, FlaggedTransaction{
			Date:     t.Date,
			Receiver: t.Receiver,
			Amount:   t.Amount,
			Status:   t.Status,
		})
	}
	return out
}
