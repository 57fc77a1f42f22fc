package app

import (
	"github.com/gorilla/mux"
	"github.com/smartspend/smartspend/internal/config"
)

// RegisterRoutes registers all API endpoints.
func RegisterRoutes(r *mux.Router, deps *Dependencies, cfg config.Application) {

	// Auth
	r.HandleFunc("/api/auth/register", deps.UserHandler.Register).Methods("POST")
	r.HandleFunc("/api/auth/login", deps.UserHandler.Login).Methods("POST")

	// User management
	r.HandleFunc("/api/user/current", deps.UserHandler.CurrentUser).Methods("GET")
	r.HandleFunc("/api/user/current", deps.UserHandler.UpdateUser).Methods("PUT")

	// Expenses
	r.HandleFunc("/api/expense", deps.ExpenseHandler.CreateExpense).Methods("POST")
	r.HandleFunc("/api/expense", deps.ExpenseHandler.ListExpenses).Methods("GET")
	r.HandleFunc("/api/expense/categories", deps.ExpenseHandler.ListCategories).Methods("GET")
	r.HandleFunc("/api/expense/{id}", deps.ExpenseHandler.GetExpense).Methods("GET")
	r.HandleFunc("/api/expense/{id}", deps.ExpenseHandler.DeleteExpense).Methods("DELETE")
	r.HandleFunc("/api/expense/{id}/receipt", deps.ExpenseHandler.GetReceipt).Methods("GET")

	// Incomes
	r.HandleFunc("/api/income", deps.IncomeHandler.CreateIncome).Methods("POST")
	r.HandleFunc("/api/income", deps.IncomeHandler.ListIncomes).Methods("GET")
	r.HandleFunc("/api/income/{id}", deps.IncomeHandler.DeleteIncome).Methods("DELETE")

	// Budgets
	r.HandleFunc("/api/budget", deps.BudgetHandler.CreateBudget).Methods("POST")
	r.HandleFunc("/api/budget", deps.BudgetHandler.ListBudgets).Methods("GET")
	r.HandleFunc("/api/budget/overview", deps.BudgetHandler.GetOverview).Methods("GET")
	r.HandleFunc("/api/budget/alerts", deps.BudgetHandler.GetAlerts).Methods("GET")
	r.HandleFunc("/api/budget/{id}", deps.BudgetHandler.GetBudget).Methods("GET")
	r.HandleFunc("/api/budget/{id}", deps.BudgetHandler.UpdateBudget).Methods("PUT")
	r.HandleFunc("/api/budget/{id}", deps.BudgetHandler.DeleteBudget).Methods("DELETE")
	r.HandleFunc("/api/budget/{id}/transactions", deps.BudgetHandler.GetTransactions).Methods("GET")

	// Stats
	r.HandleFunc("/api/stats/dashboard", deps.StatsHandler.GetDashboard).Methods("GET")
	r.HandleFunc("/api/stats/transactions", deps.StatsHandler.GetTransactions).Methods("GET")
	r.HandleFunc("/api/stats/search", deps.StatsHandler.Search).Methods("GET")

	// Receipt scanning
	r.HandleFunc("/api/receipt/scan", deps.ReceiptHandler.ScanReceipt).Methods("POST")
}
