package core

import (
	"errors"
	"strings"
	"time"
)

const (
	StatusCompleted Status = "COMPLETED"
	StatusPending   Status = "PENDING"
	StatusFailed    Status = "FAILED"
)

type (
	// Status is an open set; only PENDING and FAILED carry special meaning.
	Status string

	Date struct {
		time.Time
	}

	// YearMonth is a calendar bucket used for monthly grouping.
	YearMonth struct {
		Year  int
		Month time.Month
	}

	// Transaction is one immutable ledger row. Weekday and Month are derived
	// from Date once at construction; Hour comes from the time-of-day column.
	Transaction struct {
		Date     Date
		Hour     int // 0-23
		Weekday  time.Weekday
		Month    YearMonth
		Amount   Amount
		Category string
		Receiver string
		Status   Status
	}
)

var (
	ErrInvalidDate   = errors.New("invalid date")
	ErrInvalidHour   = errors.New("invalid hour")
	ErrEmptyCategory = errors.New("empty category")
	ErrEmptyReceiver = errors.New("empty receiver")
)

// NewDate creates a Date at UTC midnight for year, month, day.
func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

func (d Date) Validate() error {
	if d.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

// YearMonth returns the monthly bucket this date falls into.
func (d Date) YearMonth() YearMonth {
	return YearMonth{Year: d.Time.Year(), Month: d.Time.Month()}
}

// Before reports whether ym is strictly earlier in the calendar than other.
func (ym YearMonth) Before(other YearMonth) bool {
	if ym.Year != other.Year {
		return ym.Year < other.Year
	}
	return ym.Month < other.Month
}

// String renders the bucket as "2006-01".
func (ym YearMonth) String() string {
	return time.Date(ym.Year, ym.Month, 1, 0, 0, 0, 0, time.UTC).Format("2006-01")
}

// IsProblem reports whether the status marks a non-completed payment.
func (s Status) IsProblem() bool {
	return s == StatusPending || s == StatusFailed
}

// NewTransaction builds a Transaction with its derived fields populated.
func NewTransaction(date Date, hour int, amount Amount, category, receiver string, status Status) Transaction {
	return Transaction{
		Date:     date,
		Hour:     hour,
		Weekday:  date.Time.Weekday(),
		Month:    date.YearMonth(),
		Amount:   amount,
		Category: strings.TrimSpace(category),
		Receiver: strings.TrimSpace(receiver),
		Status:   Status(strings.ToUpper(strings.TrimSpace(string(status)))),
	}
}

func (t Transaction) Validate() error {
	if err := t.Date.Validate(); err != nil {
		return err
	}
	if t.Hour < 0 || t.Hour > 23 {
		return ErrInvalidHour
	}
	if t.Category == "" {
		return ErrEmptyCategory
	}
	if t.Receiver == "" {
		return ErrEmptyReceiver
	}
	return nil
}
