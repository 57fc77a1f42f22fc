package budget

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestBudget_ResolveWindow(t *testing.T) {
	today := date("2025-09-15")

	t.Run("one-off echoes its stored dates", func(t *testing.T) {
		budget := Budget{Period: PeriodOneOff, StartDate: date("2025-06-01"), EndDate: date("2025-06-20")}
		window := budget.ResolveWindow(today)
		assert.Equal(t, date("2025-06-01"), window.Start)
		assert.Equal(t, date("2025-06-20"), window.End)
	})

	t.Run("one-off fills missing dates with open bounds", func(t *testing.T) {
		budget := Budget{Period: PeriodOneOff}
		window := budget.ResolveWindow(today)
		assert.Equal(t, date("1970-01-01"), window.Start)
		assert.Equal(t, date("2099-12-31"), window.End)
	})

	t.Run("monthly honors its month and year anchors", func(t *testing.T) {
		budget := Budget{Period: PeriodMonthly, MonthValue: 9, YearValue: 2025}
		window := budget.ResolveWindow(today)
		assert.Equal(t, date("2025-09-01"), window.Start)
		assert.Equal(t, date("2025-09-30"), window.End)
	})

	t.Run("monthly with only a month anchor uses today's year", func(t *testing.T) {
		budget := Budget{Period: PeriodMonthly, MonthValue: 2}
		window := budget.ResolveWindow(today)
		assert.Equal(t, date("2025-02-01"), window.Start)
		assert.Equal(t, date("2025-02-28"), window.End)
	})

	t.Run("monthly anchored to a leap-year February ends on the 29th", func(t *testing.T) {
		budget := Budget{Period: PeriodMonthly, MonthValue: 2, YearValue: 2024}
		window := budget.ResolveWindow(today)
		assert.Equal(t, date("2024-02-01"), window.Start)
		assert.Equal(t, date("2024-02-29"), window.End)
	})

	t.Run("monthly without anchors follows today's month", func(t *testing.T) {
		budget := Budget{Period: PeriodMonthly}
		window := budget.ResolveWindow(today)
		assert.Equal(t, date("2025-09-01"), window.Start)
		assert.Equal(t, date("2025-09-30"), window.End)
	})

	t.Run("yearly honors its year anchor", func(t *testing.T) {
		budget := Budget{Period: PeriodYearly, YearValue: 2024}
		window := budget.ResolveWindow(today)
		assert.Equal(t, date("2024-01-01"), window.Start)
		assert.Equal(t, date("2024-12-31"), window.End)
	})

	t.Run("yearly without an anchor uses the current year", func(t *testing.T) {
		budget := Budget{Period: PeriodYearly}
		window := budget.ResolveWindow(today)
		assert.Equal(t, date("2025-01-01"), window.Start)
		assert.Equal(t, date("2025-12-31"), window.End)
	})

	t.Run("unknown period falls back to the current year", func(t *testing.T) {
		budget := Budget{Period: PeriodKind("weekly")}
		window := budget.ResolveWindow(today)
		assert.Equal(t, date("2025-01-01"), window.Start)
		assert.Equal(t, date("2025-12-31"), window.End)
	})
}
