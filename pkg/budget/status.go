package budget

import (
	"math"
	"time"
)

// Classification buckets a budget by how much of its limit is spent.
type Classification string

const (
	OnTrack    Classification = "on_track"
	AlmostFull Classification = "almost_full"
	Exceeded   Classification = "exceeded"
)

// almostFullThreshold is the spent percentage at which a budget stops being
// on track.
const almostFullThreshold = 80

// Status describes how a budget stands against its window as of a given day.
// All money fields are in cents.
type Status struct {
	Spent     int64
	Limit     int64
	Remaining int64
	// Percent is spent relative to the limit, rounded half up. It is not
	// clamped, so an overspent budget reports more than 100.
	Percent int
	// DaysLeft counts whole days from today to the window end, never negative.
	DaysLeft int
	// DailyAllowance is how much can still be spent per remaining day.
	// Zero when the window has ended.
	DailyAllowance int64
	Classification Classification
}

// EvaluateStatus computes a budget status from the limit, the spend
// accumulated in the window, the window end, and today's date. A negative
// limit is rejected; a zero limit yields an on-track status with no
// percentage, so informational budgets never alarm.
func EvaluateStatus(limit, spent int64, windowEnd, today time.Time) (Status, error) {
	if limit < 0 {
		return Status{}, ErrInvalidBudget
	}

	status := Status{Spent: spent, Limit: limit}

	status.Remaining = limit - spent
	if status.Remaining < 0 {
		status.Remaining = 0
	}

	status.DaysLeft = daysBetween(today, windowEnd)
	if status.DaysLeft > 0 {
		status.DailyAllowance = int64(math.Round(float64(status.Remaining) / float64(status.DaysLeft)))
	}

	if limit == 0 {
		status.Classification = OnTrack
		return status, nil
	}

	status.Percent = int(math.Round(float64(spent) / float64(limit) * 100))
	switch {
	case spent >= limit:
		status.Classification = Exceeded
	case status.Percent >= almostFullThreshold:
		status.Classification = AlmostFull
	default:
		status.Classification = OnTrack
	}
	return status, nil
}

// daysBetween returns the whole days from a to b, ignoring the time of day.
// Negative results are clamped to zero.
func daysBetween(a, b time.Time) int {
	a = time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	b = time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	days := int(b.Sub(a).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days
}
