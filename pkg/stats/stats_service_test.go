package stats

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/smartspend/smartspend/internal/utils"
	"github.com/smartspend/smartspend/pkg/expense"
	"github.com/smartspend/smartspend/pkg/income"
	"github.com/smartspend/smartspend/pkg/user"
)

var (
	statsExpensesStub = expense.NewStubExpenseRepo()
	statsIncomesStub  = income.NewStubIncomeRepo()
	statsClock        = &utils.MockClock{FixedNow: time.Date(2025, 9, 15, 10, 0, 0, 0, time.UTC)}
)

func setup(t *testing.T) (StatsService, context.Context, func()) {
	service := NewStatsService(statsExpensesStub, statsIncomesStub, &stubBudgetService{
		alerts: []string{"Food is on track (RM20.00 / RM100.00)"},
	}, statsClock)
	ctx := user.WithUser(context.Background(), user.User{Id: 1, Username: "maya"})
	return service, ctx, func() {
		t.Log("Teardown after test")
		statsExpensesStub.Cleanup()
		statsIncomesStub.Cleanup()
	}
}

func date(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d
}

func storeExpense(t *testing.T, ctx context.Context, day, category string, amount int64, note string) {
	t.Helper()
	_, err := statsExpensesStub.Store(ctx, 1, expense.Expense{
		Date: date(day), Category: category, Amount: amount, Note: note,
	}, nil)
	require.NoError(t, err)
}

func storeIncome(t *testing.T, ctx context.Context, day, source string, amount int64) {
	t.Helper()
	_, err := statsIncomesStub.Store(ctx, 1, income.Income{
		Date: date(day), Source: source, Amount: amount,
	})
	require.NoError(t, err)
}

func TestStatsServiceImpl_GetDashboard(t *testing.T) {
	t.Run("should summarize the current month", func(t *testing.T) {
		service, ctx, teardown := setup(t)
		defer teardown()

		// given
		storeIncome(t, ctx, "2025-09-01", "Salary", 350000)
		storeExpense(t, ctx, "2025-09-05", "Food", 12000, "")
		storeExpense(t, ctx, "2025-09-10", "Transport", 9000, "")
		storeExpense(t, ctx, "2025-08-20", "Food", 5000, "")

		// when
		summary, err := service.GetDashboard(ctx)

		// then
		require.NoError(t, err)
		assert.Equal(t, int64(350000), summary.TotalIncome)
		assert.Equal(t, int64(21000), summary.TotalExpense)
		assert.Equal(t, int64(329000), summary.Balance)
		assert.Equal(t, []string{"Food is on track (RM20.00 / RM100.00)"}, summary.Alerts)

		require.Len(t, summary.Months, 6)
		assert.Equal(t, "2025-04", summary.Months[0].Month)
		assert.Equal(t, "2025-09", summary.Months[5].Month)
		assert.Equal(t, int64(5000), summary.Months[4].Expense)

		require.Len(t, summary.Categories, 2)
		assert.Equal(t, "Food", summary.Categories[0].Category)
		assert.Equal(t, int64(12000), summary.Categories[0].Total)
	})

	t.Run("should cap the recent feed at seven rows", func(t *testing.T) {
		service, ctx, teardown := setup(t)
		defer teardown()

		for day := 1; day <= 9; day++ {
			storeExpense(t, ctx, time.Date(2025, 9, day, 0, 0, 0, 0, time.UTC).Format("2006-01-02"), "Food", 100, "")
		}

		summary, err := service.GetDashboard(ctx)
		require.NoError(t, err)
		require.Len(t, summary.Recent, 7)
		assert.Equal(t, date("2025-09-09"), summary.Recent[0].Date)
	})
}

func TestStatsServiceImpl_GetReport(t *testing.T) {
	t.Run("should merge incomes and expenses newest first", func(t *testing.T) {
		service, ctx, teardown := setup(t)
		defer teardown()

		// given
		storeIncome(t, ctx, "2025-09-01", "Salary", 350000)
		storeExpense(t, ctx, "2025-09-05", "Food", 12000, "")
		storeExpense(t, ctx, "2025-08-20", "Food", 5000, "")

		// when
		report, err := service.GetReport(ctx, ParsePeriod("month", "2025-09", ""))

		// then
		require.NoError(t, err)
		assert.Equal(t, int64(350000), report.TotalIncome)
		assert.Equal(t, int64(12000), report.TotalExpense)
		assert.Equal(t, int64(338000), report.Balance)
		require.Len(t, report.Transactions, 2)
		assert.Equal(t, KindExpense, report.Transactions[0].Kind)
		assert.Equal(t, KindIncome, report.Transactions[1].Kind)
	})

	t.Run("an invalid period falls back to the full history", func(t *testing.T) {
		service, ctx, teardown := setup(t)
		defer teardown()

		storeExpense(t, ctx, "2020-01-01", "Food", 5000, "")
		storeExpense(t, ctx, "2025-09-05", "Food", 12000, "")

		report, err := service.GetReport(ctx, ParsePeriod("month", "not-a-month", ""))
		require.NoError(t, err)
		assert.Len(t, report.Transactions, 2)
		assert.Equal(t, int64(17000), report.TotalExpense)
	})
}

func TestStatsServiceImpl_Search(t *testing.T) {
	t.Run("should match label, note and formatted amount", func(t *testing.T) {
		service, ctx, teardown := setup(t)
		defer teardown()

		// given
		storeExpense(t, ctx, "2025-09-05", "Food", 1550, "nasi lemak")
		storeExpense(t, ctx, "2025-09-06", "Transport", 800, "bus home")
		storeIncome(t, ctx, "2025-09-01", "Salary", 350000)

		// label, case-insensitive
		matches, err := service.Search(ctx, "salary", Period{}, "")
		require.NoError(t, err)
		require.Len(t, matches, 1)
		assert.Equal(t, KindIncome, matches[0].Kind)

		// note
		matches, err = service.Search(ctx, "lemak", Period{}, "")
		require.NoError(t, err)
		require.Len(t, matches, 1)
		assert.Equal(t, "Food", matches[0].Label)

		// formatted amount substring
		matches, err = service.Search(ctx, "15.50", Period{}, "")
		require.NoError(t, err)
		require.Len(t, matches, 1)
		assert.Equal(t, int64(1550), matches[0].Amount)
	})

	t.Run("should narrow by period and category", func(t *testing.T) {
		service, ctx, teardown := setup(t)
		defer teardown()

		// given
		storeExpense(t, ctx, "2025-09-05", "Food", 1550, "nasi lemak")
		storeExpense(t, ctx, "2025-08-05", "Food", 2000, "nasi goreng")
		storeIncome(t, ctx, "2025-09-01", "Salary", 350000)

		// when only September and the Food category are in scope
		matches, err := service.Search(ctx, "nasi", ParsePeriod("month", "2025-09", ""), "Food")

		// then the August row and the income are filtered out
		require.NoError(t, err)
		require.Len(t, matches, 1)
		assert.Equal(t, date("2025-09-05"), matches[0].Date)

		// a category alone is a valid search
		matches, err = service.Search(ctx, "", ParsePeriod("", "", ""), "Food")
		require.NoError(t, err)
		assert.Len(t, matches, 2)
	})

	t.Run("a blank query matches nothing", func(t *testing.T) {
		service, ctx, teardown := setup(t)
		defer teardown()

		storeExpense(t, ctx, "2025-09-05", "Food", 1550, "")
		matches, err := service.Search(ctx, "   ", Period{}, "")
		assert.NoError(t, err)
		assert.Empty(t, matches)
	})
}

func TestParsePeriod(t *testing.T) {
	t.Run("month", func(t *testing.T) {
		period := ParsePeriod("month", "2025-02", "")
		assert.Equal(t, date("2025-02-01"), period.From)
		assert.Equal(t, date("2025-02-28"), period.To)
	})

	t.Run("year", func(t *testing.T) {
		period := ParsePeriod("year", "", "2024")
		assert.Equal(t, date("2024-01-01"), period.From)
		assert.Equal(t, date("2024-12-31"), period.To)
	})

	t.Run("anything else is open", func(t *testing.T) {
		assert.Equal(t, Period{}, ParsePeriod("all", "", ""))
		assert.Equal(t, Period{}, ParsePeriod("year", "", "20xx"))
		assert.Equal(t, Period{}, ParsePeriod("", "", ""))
	})
}
