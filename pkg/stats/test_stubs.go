package stats

import (
	"context"

	"github.com/smartspend/smartspend/pkg/budget"
)

// stubBudgetService serves canned alert lines; the rest of the interface is
// unused by stats.
type stubBudgetService struct {
	alerts []string
}

func (s *stubBudgetService) Create(context.Context, budget.Budget) (budget.Budget, error) {
	return budget.Budget{}, nil
}

func (s *stubBudgetService) Get(context.Context, int) (budget.Budget, error) {
	return budget.Budget{}, budget.ErrBudgetNotFound
}

func (s *stubBudgetService) GetAll(context.Context) ([]budget.Budget, error) {
	return nil, nil
}

func (s *stubBudgetService) Update(context.Context, budget.Budget) (budget.Budget, error) {
	return budget.Budget{}, budget.ErrBudgetNotFound
}

func (s *stubBudgetService) Delete(context.Context, int) error {
	return budget.ErrBudgetNotFound
}

func (s *stubBudgetService) GetOverview(context.Context) ([]budget.Overview, error) {
	return nil, nil
}

func (s *stubBudgetService) GetAlerts(context.Context) ([]string, error) {
	return s.alerts, nil
}

func (s *stubBudgetService) GetTransactions(context.Context, int) (budget.Transactions, error) {
	return budget.Transactions{}, budget.ErrBudgetNotFound
}
