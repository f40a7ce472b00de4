// Package ledger loads the transaction ledger from CSV.
//
// The loader is deliberately forgiving: a malformed amount coerces to an
// unknown value, while a malformed date or time rejects only that row and
// records a warning. A single bad row never aborts the batch.
package ledger

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"upilens/internal/core"
)

// Required header columns, matched case-insensitively.
const (
	colDate     = "date"
	colTime     = "time"
	colAmount   = "amount"
	colCategory = "category"
	colReceiver = "receiver"
	colStatus   = "status"
)

var dateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"02-01-2006",
	"02/01/2006",
}

var timeLayouts = []string{
	"15:04:05",
	"15:04",
}

// Warning describes a rejected or degraded row. Line is 1-based and counts
// the header.
type Warning struct {
	Line   int
	Reason string
}

func (w Warning) String() string {
	return fmt.Sprintf("line %d: %s", w.Line, w.Reason)
}

// LoadFile reads a ledger CSV from disk.
func LoadFile(path string) ([]core.Transaction, []Warning, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open ledger: %w", err)
	}
	defer f.Close()
	return Load(f)
}

// Load parses ledger rows from r. It returns the accepted transactions, a
// warning per rejected row, and an error only for structural problems
// (unreadable input, missing columns).
func Load(r io.Reader) ([]core.Transaction, []Warning, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, nil, fmt.Errorf("empty ledger")
	}
	if err != nil {
		return nil, nil, fmt.Errorf("read header: %w", err)
	}

	cols, err := mapHeader(header)
	if err != nil {
		return nil, nil, err
	}

	var (
		records  []core.Transaction
		warnings []Warning
	)
	line := 1
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			warnings = append(warnings, Warning{Line: line, Reason: err.Error()})
			continue
		}

		tx, reason := parseRow(row, cols)
		if reason != "" {
			warnings = append(warnings, Warning{Line: line, Reason: reason})
			continue
		}
		records = append(records, tx)
	}

	return records, warnings, nil
}

// mapHeader resolves required column indexes from the header row.
func mapHeader(header []string) (map[string]int, error) {
	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}
	var missing []string
	for _, want := range []string{colDate, colTime, colAmount, colCategory, colReceiver, colStatus} {
		if _, ok := cols[want]; !ok {
			missing = append(missing, want)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("ledger header missing columns: %s (got %v)", strings.Join(missing, ", "), header)
	}
	return cols, nil
}

func parseRow(row []string, cols map[string]int) (core.Transaction, string) {
	get := func(name string) string {
		idx := cols[name]
		if idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	date, err := parseDate(get(colDate))
	if err != nil {
		return core.Transaction{}, fmt.Sprintf("bad date %q", get(colDate))
	}
	hour, err := parseHour(get(colTime))
	if err != nil {
		return core.Transaction{}, fmt.Sprintf("bad time %q", get(colTime))
	}

	// Amounts never reject a row; unparseable values become unknown.
	amount := core.ParseAmount(get(colAmount))

	tx := core.NewTransaction(date, hour, amount, get(colCategory), get(colReceiver), core.Status(get(colStatus)))
	if err := tx.Validate(); err != nil {
		return core.Transaction{}, err.Error()
	}
	return tx, ""
}

func parseDate(s string) (core.Date, error) {
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return core.Date{Time: t}, nil
		}
	}
	return core.Date{}, core.ErrInvalidDate
}

func parseHour(s string) (int, error) {
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Hour(), nil
		}
	}
	return 0, fmt.Errorf("unparseable time of day")
}
