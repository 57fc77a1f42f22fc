package event_bus

import "time"

const (
	ExpenseCreated EventType = "expense.created"
	BudgetUpdated  EventType = "budget.updated"
)

// ExpenseCreatedData is published after a new expense row is stored.
type ExpenseCreatedData struct {
	Id       int
	Date     time.Time
	Category string
	// Amount is the expense value in cents.
	Amount int64
}

// BudgetUpdatedData is published after a budget definition changes.
type BudgetUpdatedData struct {
	Id   int
	Name string
}
