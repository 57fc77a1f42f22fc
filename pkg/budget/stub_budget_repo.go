package budget

import "context"

type storedBudget struct {
	userId int
	budget Budget
}

type StubBudgetRepo struct {
	budgets []storedBudget
	nextId  int
}

func NewStubBudgetRepo() *StubBudgetRepo {
	return &StubBudgetRepo{nextId: 1}
}

func (r *StubBudgetRepo) Cleanup() {
	r.budgets = nil
	r.nextId = 1
}

func (r *StubBudgetRepo) Store(_ context.Context, userId int, budget Budget) (int, error) {
	budget.ID = r.nextId
	r.nextId++
	r.budgets = append(r.budgets, storedBudget{userId: userId, budget: budget})
	return budget.ID, nil
}

func (r *StubBudgetRepo) Get(_ context.Context, userId int, id int) (Budget, error) {
	for _, stored := range r.budgets {
		if stored.userId == userId && stored.budget.ID == id {
			return stored.budget, nil
		}
	}
	return Budget{}, ErrBudgetNotFound
}

func (r *StubBudgetRepo) GetAll(_ context.Context, userId int) ([]Budget, error) {
	var budgets []Budget
	for _, stored := range r.budgets {
		if stored.userId == userId {
			budgets = append(budgets, stored.budget)
		}
	}
	return budgets, nil
}

func (r *StubBudgetRepo) Update(_ context.Context, userId int, budget Budget) (bool, error) {
	for i, stored := range r.budgets {
		if stored.userId == userId && stored.budget.ID == budget.ID {
			r.budgets[i].budget = budget
			return true, nil
		}
	}
	return false, nil
}

func (r *StubBudgetRepo) Delete(_ context.Context, userId int, id int) (bool, error) {
	for i, stored := range r.budgets {
		if stored.userId == userId && stored.budget.ID == id {
			r.budgets = append(r.budgets[:i], r.budgets[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}
