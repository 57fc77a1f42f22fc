package budget

import (
	"context"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/smartspend/smartspend/internal/event_bus"
	"github.com/smartspend/smartspend/internal/money"
	"github.com/smartspend/smartspend/internal/utils"
	"github.com/smartspend/smartspend/pkg/expense"
	"github.com/smartspend/smartspend/pkg/user"
)

// Overview pairs a budget with its current window and spend status.
type Overview struct {
	Budget Budget
	Window Window
	Status Status
}

// Transactions is a budget drill-down: the expenses that count against the
// budget inside its current window.
type Transactions struct {
	Overview
	Expenses []expense.Expense
}

type BudgetService interface {
	Create(ctx context.Context, budget Budget) (Budget, error)
	Get(ctx context.Context, id int) (Budget, error)
	GetAll(ctx context.Context) ([]Budget, error)
	Update(ctx context.Context, budget Budget) (Budget, error)
	Delete(ctx context.Context, id int) error
	// GetOverview evaluates every budget against today's window.
	GetOverview(ctx context.Context) ([]Overview, error)
	// GetAlerts renders one status line per budget, in stored order.
	GetAlerts(ctx context.Context) ([]string, error)
	GetTransactions(ctx context.Context, id int) (Transactions, error)
}

type BudgetServiceImpl struct {
	repo        BudgetRepo
	expenseRepo expense.ExpenseRepo
	bus         *event_bus.EventBus
	clock       utils.Clock
}

func NewBudgetService(repo BudgetRepo, expenseRepo expense.ExpenseRepo, bus *event_bus.EventBus, clock utils.Clock) *BudgetServiceImpl {
	return &BudgetServiceImpl{repo: repo, expenseRepo: expenseRepo, bus: bus, clock: clock}
}

func (s *BudgetServiceImpl) Create(ctx context.Context, budget Budget) (Budget, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Budget{}, err
	}
	budget, err = s.normalize(ctx, userId, budget)
	if err != nil {
		return Budget{}, err
	}
	id, err := s.repo.Store(ctx, userId, budget)
	if err != nil {
		return Budget{}, err
	}
	budget.ID = id
	return budget, nil
}

func (s *BudgetServiceImpl) Get(ctx context.Context, id int) (Budget, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Budget{}, err
	}
	return s.repo.Get(ctx, userId, id)
}

func (s *BudgetServiceImpl) GetAll(ctx context.Context) ([]Budget, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, err
	}
	return s.repo.GetAll(ctx, userId)
}

func (s *BudgetServiceImpl) Update(ctx context.Context, budget Budget) (Budget, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Budget{}, err
	}
	budget, err = s.normalize(ctx, userId, budget)
	if err != nil {
		return Budget{}, err
	}
	updated, err := s.repo.Update(ctx, userId, budget)
	if err != nil {
		return Budget{}, err
	}
	if !updated {
		return Budget{}, ErrBudgetNotFound
	}

	event := event_bus.NewEvent(ctx, event_bus.BudgetUpdated, event_bus.BudgetUpdatedData{
		Id:   budget.ID,
		Name: budget.Name,
	})
	if err := s.bus.Publish(event); err != nil {
		log.Warnf("Failed to publish budget updated event: %v", err)
	}
	return budget, nil
}

func (s *BudgetServiceImpl) Delete(ctx context.Context, id int) error {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return err
	}
	deleted, err := s.repo.Delete(ctx, userId, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrBudgetNotFound
	}
	return nil
}

// normalize validates a budget and aligns its category casing with the
// casing already used on expenses, so window sums match.
func (s *BudgetServiceImpl) normalize(ctx context.Context, userId int, budget Budget) (Budget, error) {
	budget.Name = strings.TrimSpace(budget.Name)
	if budget.Name == "" {
		return Budget{}, fmt.Errorf("%w: name is required", ErrInvalidBudget)
	}
	if budget.Amount <= 0 {
		return Budget{}, fmt.Errorf("%w: amount must be positive", ErrInvalidBudget)
	}

	switch budget.Period {
	case PeriodOneOff:
		if budget.StartDate.IsZero() || budget.EndDate.IsZero() {
			return Budget{}, fmt.Errorf("%w: a one-off budget needs start and end dates", ErrInvalidBudget)
		}
		if budget.EndDate.Before(budget.StartDate) {
			return Budget{}, fmt.Errorf("%w: end date is before start date", ErrInvalidBudget)
		}
	case PeriodMonthly:
		if budget.MonthValue < 1 || budget.MonthValue > 12 {
			return Budget{}, fmt.Errorf("%w: a monthly budget needs a month", ErrInvalidBudget)
		}
	case PeriodYearly:
		if budget.YearValue <= 0 {
			return Budget{}, fmt.Errorf("%w: a yearly budget needs a year", ErrInvalidBudget)
		}
	default:
		return Budget{}, fmt.Errorf("%w: unknown period %q", ErrInvalidBudget, budget.Period)
	}

	budget.Category = strings.TrimSpace(budget.Category)
	if budget.Category != "" {
		canonical, err := s.expenseRepo.CanonicalCategory(ctx, userId, budget.Category)
		if err != nil {
			return Budget{}, err
		}
		if canonical != "" {
			budget.Category = canonical
		}
	}
	return budget, nil
}

func (s *BudgetServiceImpl) GetOverview(ctx context.Context) ([]Overview, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, err
	}
	budgets, err := s.repo.GetAll(ctx, userId)
	if err != nil {
		return nil, err
	}

	today := s.clock.Now()
	overviews := make([]Overview, 0, len(budgets))
	for _, budget := range budgets {
		overview, err := s.evaluate(ctx, userId, budget)
		if err != nil {
			return nil, err
		}
		overviews = append(overviews, overview)
	}
	log.Debugf("Evaluated %d budgets as of %s", len(overviews), today.Format("2006-01-02"))
	return overviews, nil
}

func (s *BudgetServiceImpl) evaluate(ctx context.Context, userId int, budget Budget) (Overview, error) {
	today := s.clock.Now()
	window := budget.ResolveWindow(today)
	spent, err := s.expenseRepo.SumInWindow(ctx, userId, window.Start, window.End, budget.Category)
	if err != nil {
		return Overview{}, err
	}
	status, err := EvaluateStatus(budget.Amount, spent, window.End, today)
	if err != nil {
		return Overview{}, err
	}
	return Overview{Budget: budget, Window: window, Status: status}, nil
}

func (s *BudgetServiceImpl) GetAlerts(ctx context.Context) ([]string, error) {
	overviews, err := s.GetOverview(ctx)
	if err != nil {
		return nil, err
	}
	alerts := make([]string, 0, len(overviews))
	for _, overview := range overviews {
		alerts = append(alerts, AlertLine(overview))
	}
	return alerts, nil
}

// AlertLine renders the one-line status message for a budget.
func AlertLine(overview Overview) string {
	name := overview.Budget.Name
	limit := money.Format(overview.Status.Limit)
	spent := money.Format(overview.Status.Spent)
	switch overview.Status.Classification {
	case Exceeded:
		return fmt.Sprintf("%s exceeded! (limit RM%s, spent RM%s)", name, limit, spent)
	case AlmostFull:
		return fmt.Sprintf("%s is almost full (RM%s / RM%s)", name, spent, limit)
	default:
		return fmt.Sprintf("%s is on track (RM%s / RM%s)", name, spent, limit)
	}
}

func (s *BudgetServiceImpl) GetTransactions(ctx context.Context, id int) (Transactions, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Transactions{}, err
	}
	budget, err := s.repo.Get(ctx, userId, id)
	if err != nil {
		return Transactions{}, err
	}
	overview, err := s.evaluate(ctx, userId, budget)
	if err != nil {
		return Transactions{}, err
	}
	expenses, err := s.expenseRepo.FindInWindow(ctx, userId, overview.Window.Start, overview.Window.End, budget.Category)
	if err != nil {
		return Transactions{}, err
	}
	return Transactions{Overview: overview, Expenses: expenses}, nil
}
