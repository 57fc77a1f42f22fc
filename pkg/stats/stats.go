package stats

import (
	"time"

	"github.com/smartspend/smartspend/pkg/expense"
)

// TransactionKind distinguishes the two sides of the ledger in merged views.
type TransactionKind string

const (
	KindIncome  TransactionKind = "income"
	KindExpense TransactionKind = "expense"
)

// Transaction is one merged ledger row: an expense or an income.
type Transaction struct {
	Kind TransactionKind
	Id   int
	Date time.Time
	// Label is the expense category or the income source.
	Label string
	// Amount in cents, always positive; Kind carries the sign.
	Amount int64
	Note   string
}

// Period is the inclusive date range a report covers. Zero bounds are open.
type Period struct {
	From time.Time
	To   time.Time
}

// MonthTotal is one bar of the income/expense trend.
type MonthTotal struct {
	// Month in YYYY-MM form.
	Month   string
	Income  int64
	Expense int64
}

// Summary is the dashboard payload: current-month totals, the recent
// activity feed, the category breakdown, the six-month trend and the
// budget alert lines.
type Summary struct {
	TotalIncome  int64
	TotalExpense int64
	Balance      int64
	Recent       []Transaction
	Categories   []expense.CategorySum
	Months       []MonthTotal
	Alerts       []string
}

// Report is the full transaction listing over a period, with totals.
type Report struct {
	Period       Period
	TotalIncome  int64
	TotalExpense int64
	Balance      int64
	Transactions []Transaction
}
