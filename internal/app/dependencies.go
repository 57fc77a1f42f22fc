package app

import (
	"database/sql"
	"time"

	"github.com/smartspend/smartspend/internal/auth"
	"github.com/smartspend/smartspend/internal/config"
	"github.com/smartspend/smartspend/internal/event_bus"
	"github.com/smartspend/smartspend/internal/utils"
	"github.com/smartspend/smartspend/pkg/budget"
	"github.com/smartspend/smartspend/pkg/expense"
	"github.com/smartspend/smartspend/pkg/income"
	"github.com/smartspend/smartspend/pkg/receipt"
	"github.com/smartspend/smartspend/pkg/stats"
	"github.com/smartspend/smartspend/pkg/user"
)

// Dependencies holds all services and handlers for the application.
type Dependencies struct {
	AuthTokenValidator auth.TokenValidator
	EventBus           *event_bus.EventBus

	UserService user.Service
	UserHandler *user.Handler

	ExpenseRepo    expense.ExpenseRepo
	ExpenseService expense.ExpenseService
	ExpenseHandler *expense.ExpenseHandler

	IncomeRepo    income.IncomeRepo
	IncomeService income.IncomeService
	IncomeHandler *income.IncomeHandler

	BudgetRepo    budget.BudgetRepo
	BudgetService budget.BudgetService
	BudgetHandler *budget.BudgetHandler

	StatsService      stats.StatsService
	CsvReportRenderer *stats.CsvReportRendererImpl
	StatsHandler      *stats.StatsHandler

	ReceiptScanner receipt.Scanner
	ReceiptHandler *receipt.ReceiptHandler

	Clock utils.Clock
}

// BuildDependencies initializes and wires all application services and handlers.
func BuildDependencies(db *sql.DB, cfg config.Application) *Dependencies {
	deps := &Dependencies{}

	deps.Clock = &utils.SystemClock{}
	deps.EventBus = event_bus.NewEventBus()
	deps.AuthTokenValidator = auth.NewTokenValidator(cfg.Auth.Secret, time.Duration(cfg.Auth.TokenTTLHours)*time.Hour)

	deps.UserService = user.NewUserService(user.NewUserRepo(db))
	deps.UserHandler = user.NewHandler(deps.UserService, deps.AuthTokenValidator)

	deps.ExpenseRepo = expense.NewExpenseRepo(db)
	deps.ExpenseService = expense.NewExpenseService(deps.ExpenseRepo, deps.EventBus)
	deps.ExpenseHandler = expense.NewExpenseHandler(deps.ExpenseService, deps.Clock)

	deps.IncomeRepo = income.NewIncomeRepo(db)
	deps.IncomeService = income.NewIncomeService(deps.IncomeRepo)
	deps.IncomeHandler = income.NewIncomeHandler(deps.IncomeService)

	deps.BudgetRepo = budget.NewBudgetRepo(db)
	deps.BudgetService = budget.NewBudgetService(deps.BudgetRepo, deps.ExpenseRepo, deps.EventBus, deps.Clock)
	deps.BudgetHandler = budget.NewBudgetHandler(deps.BudgetService)
	budget.RegisterAlertNotifier(deps.EventBus, deps.BudgetService)

	deps.StatsService = stats.NewStatsService(deps.ExpenseRepo, deps.IncomeRepo, deps.BudgetService, deps.Clock)
	deps.CsvReportRenderer = stats.NewCsvReportRenderer()
	deps.StatsHandler = stats.NewStatsHandler(deps.StatsService, deps.CsvReportRenderer)

	deps.ReceiptScanner = receipt.NewScanner(receipt.NewCommandRunner(cfg.Ocr))
	deps.ReceiptHandler = receipt.NewReceiptHandler(deps.ReceiptScanner)

	return deps
}
