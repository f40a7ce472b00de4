// Package http exposes the analyzer over a JSON and PNG serving API.
//
// This file implements parsing and validation of filter parameters shared
// by the summary, chart, advice and export endpoints.
package http

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"upilens/internal/core"
)

// filterQuery holds the raw filter parameters of one request. Unset fields
// fall back to the full ledger range and the full category set.
type filterQuery struct {
	Start    core.Date
	End      core.Date
	HasStart bool
	HasEnd   bool

	// Categories stays nil when the parameter is absent; an explicitly
	// empty parameter means "no categories" and yields an empty summary.
	Categories    []string
	HasCategories bool
}

// parseFilter extracts start, end and categories query parameters.
// Dates use the YYYY-MM-DD layout; categories is a comma-separated list.
func parseFilter(r *http.Request) (filterQuery, error) {
	var f filterQuery
	q := r.URL.Query()

	if v := strings.TrimSpace(q.Get("start")); v != "" {
		d, err := parseDate(v)
		if err != nil {
			return f, fmt.Errorf("invalid start date %q: use YYYY-MM-DD", v)
		}
		f.Start = d
		f.HasStart = true
	}
	if v := strings.TrimSpace(q.Get("end")); v != "" {
		d, err := parseDate(v)
		if err != nil {
			return f, fmt.Errorf("invalid end date %q: use YYYY-MM-DD", v)
		}
		f.End = d
		f.HasEnd = true
	}

	if q.Has("categories") {
		f.HasCategories = true
		f.Categories = splitCategories(q.Get("categories"))
	}

	return f, nil
}

// parseDate parses a date string in YYYY-MM-DD format.
func parseDate(dateStr string) (core.Date, error) {
	parsedTime, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return core.Date{}, err
	}
	return core.Date{Time: parsedTime}, nil
}

func splitCategories(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
