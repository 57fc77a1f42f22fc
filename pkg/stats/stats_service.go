package stats

import (
	"context"
	"sort"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/smartspend/smartspend/internal/money"
	"github.com/smartspend/smartspend/internal/utils"
	"github.com/smartspend/smartspend/pkg/budget"
	"github.com/smartspend/smartspend/pkg/expense"
	"github.com/smartspend/smartspend/pkg/income"
	"github.com/smartspend/smartspend/pkg/user"
)

// trendMonths is how many months the dashboard trend looks back, the
// current month included.
const trendMonths = 6

// recentLimit caps the dashboard activity feed.
const recentLimit = 7

type StatsService interface {
	// GetDashboard summarizes the current month as of the service clock.
	GetDashboard(ctx context.Context) (Summary, error)
	// GetReport lists all transactions inside the period with totals.
	GetReport(ctx context.Context, period Period) (Report, error)
	// Search matches the query against labels, notes and formatted amounts,
	// optionally narrowed to a period and an expense category.
	Search(ctx context.Context, query string, period Period, category string) ([]Transaction, error)
}

type StatsServiceImpl struct {
	expenseRepo   expense.ExpenseRepo
	incomeRepo    income.IncomeRepo
	budgetService budget.BudgetService
	clock         utils.Clock
}

func NewStatsService(expenseRepo expense.ExpenseRepo, incomeRepo income.IncomeRepo, budgetService budget.BudgetService, clock utils.Clock) *StatsServiceImpl {
	return &StatsServiceImpl{
		expenseRepo:   expenseRepo,
		incomeRepo:    incomeRepo,
		budgetService: budgetService,
		clock:         clock,
	}
}

func (s *StatsServiceImpl) GetDashboard(ctx context.Context) (Summary, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Summary{}, err
	}

	today := s.clock.Now()
	monthStart := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC)
	monthEnd := monthStart.AddDate(0, 1, -1)

	var summary Summary
	if summary.TotalIncome, err = s.incomeRepo.SumInRange(ctx, userId, monthStart, monthEnd); err != nil {
		return Summary{}, err
	}
	if summary.TotalExpense, err = s.expenseRepo.SumInWindow(ctx, userId, monthStart, monthEnd, ""); err != nil {
		return Summary{}, err
	}
	summary.Balance = summary.TotalIncome - summary.TotalExpense

	transactions, err := s.mergedTransactions(ctx, userId, Period{})
	if err != nil {
		return Summary{}, err
	}
	if len(transactions) > recentLimit {
		transactions = transactions[:recentLimit]
	}
	summary.Recent = transactions

	if summary.Categories, err = s.expenseRepo.SumByCategory(ctx, userId, monthStart, monthEnd); err != nil {
		return Summary{}, err
	}

	for i := trendMonths - 1; i >= 0; i-- {
		start := monthStart.AddDate(0, -i, 0)
		end := start.AddDate(0, 1, -1)
		monthIncome, err := s.incomeRepo.SumInRange(ctx, userId, start, end)
		if err != nil {
			return Summary{}, err
		}
		monthExpense, err := s.expenseRepo.SumInWindow(ctx, userId, start, end, "")
		if err != nil {
			return Summary{}, err
		}
		summary.Months = append(summary.Months, MonthTotal{
			Month:   start.Format("2006-01"),
			Income:  monthIncome,
			Expense: monthExpense,
		})
	}

	if summary.Alerts, err = s.budgetService.GetAlerts(ctx); err != nil {
		// The dashboard is still useful without alert lines.
		log.Warnf("Failed to evaluate budget alerts: %v", err)
		summary.Alerts = nil
	}
	return summary, nil
}

func (s *StatsServiceImpl) GetReport(ctx context.Context, period Period) (Report, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Report{}, err
	}

	report := Report{Period: period}
	if report.TotalIncome, err = s.incomeRepo.SumInRange(ctx, userId, period.From, period.To); err != nil {
		return Report{}, err
	}
	if report.TotalExpense, err = s.sumExpenses(ctx, userId, period); err != nil {
		return Report{}, err
	}
	report.Balance = report.TotalIncome - report.TotalExpense

	if report.Transactions, err = s.mergedTransactions(ctx, userId, period); err != nil {
		return Report{}, err
	}
	return report, nil
}

// sumExpenses widens open period bounds before delegating to the window sum.
func (s *StatsServiceImpl) sumExpenses(ctx context.Context, userId int, period Period) (int64, error) {
	from, to := period.From, period.To
	if from.IsZero() {
		from = time.Date(1970, time.January, 1, 0, 0, 0, 0, time.UTC)
	}
	if to.IsZero() {
		to = time.Date(2099, time.December, 31, 0, 0, 0, 0, time.UTC)
	}
	return s.expenseRepo.SumInWindow(ctx, userId, from, to, "")
}

func (s *StatsServiceImpl) Search(ctx context.Context, query string, period Period, category string) ([]Transaction, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, err
	}
	query = strings.TrimSpace(query)
	if query == "" && category == "" {
		return nil, nil
	}

	transactions, err := s.mergedTransactions(ctx, userId, period)
	if err != nil {
		return nil, err
	}

	needle := strings.ToLower(query)
	var matches []Transaction
	for _, transaction := range transactions {
		if category != "" && (transaction.Kind != KindExpense || transaction.Label != category) {
			continue
		}
		if query != "" &&
			!strings.Contains(strings.ToLower(transaction.Label), needle) &&
			!strings.Contains(strings.ToLower(transaction.Note), needle) &&
			!strings.Contains(money.Format(transaction.Amount), query) {
			continue
		}
		matches = append(matches, transaction)
	}
	return matches, nil
}

// mergedTransactions interleaves expenses and incomes, newest first.
func (s *StatsServiceImpl) mergedTransactions(ctx context.Context, userId int, period Period) ([]Transaction, error) {
	expenses, err := s.expenseRepo.Find(ctx, userId, expense.Filter{From: period.From, To: period.To})
	if err != nil {
		return nil, err
	}
	incomes, err := s.incomeRepo.Find(ctx, userId, period.From, period.To)
	if err != nil {
		return nil, err
	}

	transactions := make([]Transaction, 0, len(expenses)+len(incomes))
	for _, e := range expenses {
		transactions = append(transactions, Transaction{
			Kind: KindExpense, Id: e.ID, Date: e.Date, Label: e.Category, Amount: e.Amount, Note: e.Note,
		})
	}
	for _, i := range incomes {
		transactions = append(transactions, Transaction{
			Kind: KindIncome, Id: i.ID, Date: i.Date, Label: i.Source, Amount: i.Amount, Note: i.Note,
		})
	}
	sort.SliceStable(transactions, func(i, j int) bool {
		return transactions[i].Date.After(transactions[j].Date)
	})
	return transactions, nil
}

// ParsePeriod interprets the report query parameters. An unrecognized or
// malformed selection falls back to the full history.
func ParsePeriod(periodType, monthValue, yearValue string) Period {
	switch periodType {
	case "month":
		start, err := time.Parse("2006-01", monthValue)
		if err != nil {
			return Period{}
		}
		return Period{From: start, To: start.AddDate(0, 1, -1)}
	case "year":
		start, err := time.Parse("2006", yearValue)
		if err != nil {
			return Period{}
		}
		return Period{From: start, To: time.Date(start.Year(), time.December, 31, 0, 0, 0, 0, time.UTC)}
	default:
		return Period{}
	}
}
