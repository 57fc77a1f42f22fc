package budget

import (
	"errors"
	"time"
)

var (
	ErrBudgetNotFound = errors.New("budget not found")
	ErrInvalidBudget  = errors.New("invalid budget")
)

// PeriodKind selects how a budget's active window is resolved.
type PeriodKind string

const (
	PeriodOneOff  PeriodKind = "one_off"
	PeriodMonthly PeriodKind = "monthly"
	PeriodYearly  PeriodKind = "yearly"
)

type Budget struct {
	ID   int
	Name string
	// Category scopes the budget to one spending category. Empty means the
	// budget covers all spending.
	Category string
	Period   PeriodKind
	// Amount is the spending limit in cents.
	Amount int64
	// StartDate and EndDate bound a one-off budget. Zero values leave the
	// corresponding side open.
	StartDate time.Time
	EndDate   time.Time
	// MonthValue and YearValue anchor a recurring budget to a fixed month
	// or year. Zero means "follow the current date".
	MonthValue int
	YearValue  int
}

// Window is the inclusive date range a budget is currently measured over.
type Window struct {
	Start time.Time
	End   time.Time
}

// Open bounds used when a one-off budget leaves a side unset.
var (
	openStart = time.Date(1970, time.January, 1, 0, 0, 0, 0, time.UTC)
	openEnd   = time.Date(2099, time.December, 31, 0, 0, 0, 0, time.UTC)
)

// ResolveWindow computes the budget's active window as of today. One-off
// budgets echo their stored dates; monthly and yearly budgets honor their
// anchors when set and otherwise follow today's date.
func (b Budget) ResolveWindow(today time.Time) Window {
	switch b.Period {
	case PeriodOneOff:
		window := Window{Start: b.StartDate, End: b.EndDate}
		if window.Start.IsZero() {
			window.Start = openStart
		}
		if window.End.IsZero() {
			window.End = openEnd
		}
		return window
	case PeriodMonthly:
		year, month := today.Year(), today.Month()
		if b.MonthValue >= 1 && b.MonthValue <= 12 {
			month = time.Month(b.MonthValue)
			if b.YearValue > 0 {
				year = b.YearValue
			}
		}
		start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
		return Window{Start: start, End: start.AddDate(0, 1, -1)}
	default:
		// Yearly, and any unknown kind, measure over a calendar year.
		year := today.Year()
		if b.Period == PeriodYearly && b.YearValue > 0 {
			year = b.YearValue
		}
		return Window{
			Start: time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC),
			End:   time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC),
		}
	}
}
