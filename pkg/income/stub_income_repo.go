package income

import (
	"context"
	"sort"
	"time"
)

type storedIncome struct {
	userId int
	income Income
}

type StubIncomeRepo struct {
	incomes []storedIncome
	nextId  int
}

func NewStubIncomeRepo() *StubIncomeRepo {
	return &StubIncomeRepo{nextId: 1}
}

func (r *StubIncomeRepo) Cleanup() {
	r.incomes = nil
	r.nextId = 1
}

func (r *StubIncomeRepo) Store(_ context.Context, userId int, income Income) (int, error) {
	income.ID = r.nextId
	r.nextId++
	r.incomes = append(r.incomes, storedIncome{userId: userId, income: income})
	return income.ID, nil
}

func (r *StubIncomeRepo) Get(_ context.Context, userId int, id int) (Income, error) {
	for _, stored := range r.incomes {
		if stored.userId == userId && stored.income.ID == id {
			return stored.income, nil
		}
	}
	return Income{}, ErrIncomeNotFound
}

func (r *StubIncomeRepo) Find(_ context.Context, userId int, from, to time.Time) ([]Income, error) {
	var result []Income
	for _, stored := range r.incomes {
		if stored.userId != userId || !inRange(stored.income.Date, from, to) {
			continue
		}
		result = append(result, stored.income)
	}
	sort.SliceStable(result, func(i, j int) bool {
		if !result[i].Date.Equal(result[j].Date) {
			return result[i].Date.After(result[j].Date)
		}
		return result[i].ID > result[j].ID
	})
	return result, nil
}

func (r *StubIncomeRepo) Delete(_ context.Context, userId int, id int) (bool, error) {
	for i, stored := range r.incomes {
		if stored.userId == userId && stored.income.ID == id {
			r.incomes = append(r.incomes[:i], r.incomes[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (r *StubIncomeRepo) SumInRange(_ context.Context, userId int, from, to time.Time) (int64, error) {
	var total int64
	for _, stored := range r.incomes {
		if stored.userId == userId && inRange(stored.income.Date, from, to) {
			total += stored.income.Amount
		}
	}
	return total, nil
}

func inRange(date, from, to time.Time) bool {
	if !from.IsZero() && date.Before(from) {
		return false
	}
	if !to.IsZero() && date.After(to) {
		return false
	}
	return true
}
