package expense

import (
	"context"
	"sort"
	"strings"
	"time"
)

type storedExpense struct {
	userId  int
	expense Expense
	receipt *Receipt
}

type StubExpenseRepo struct {
	expenses []storedExpense
	nextId   int
}

func NewStubExpenseRepo() *StubExpenseRepo {
	return &StubExpenseRepo{nextId: 1}
}

func (r *StubExpenseRepo) Cleanup() {
	r.expenses = nil
	r.nextId = 1
}

func (r *StubExpenseRepo) Store(_ context.Context, userId int, expense Expense, receipt *Receipt) (int, error) {
	expense.ID = r.nextId
	expense.HasReceipt = receipt != nil
	r.nextId++
	r.expenses = append(r.expenses, storedExpense{userId: userId, expense: expense, receipt: receipt})
	return expense.ID, nil
}

func (r *StubExpenseRepo) Get(_ context.Context, userId int, id int) (Expense, error) {
	for _, stored := range r.expenses {
		if stored.userId == userId && stored.expense.ID == id {
			return stored.expense, nil
		}
	}
	return Expense{}, ErrExpenseNotFound
}

func (r *StubExpenseRepo) Find(_ context.Context, userId int, filter Filter) ([]Expense, error) {
	var result []Expense
	for _, stored := range r.expenses {
		if stored.userId != userId || !matchesFilter(stored.expense, filter) {
			continue
		}
		result = append(result, stored.expense)
	}
	sortNewestFirst(result)
	return result, nil
}

func matchesFilter(e Expense, filter Filter) bool {
	if !filter.From.IsZero() && e.Date.Before(filter.From) {
		return false
	}
	if !filter.To.IsZero() && e.Date.After(filter.To) {
		return false
	}
	if filter.Category != "" {
		if filter.Category == "Other" {
			if !strings.HasPrefix(e.Category, "Other") {
				return false
			}
		} else if e.Category != filter.Category {
			return false
		}
	}
	if filter.Keyword != "" {
		kw := strings.ToLower(filter.Keyword)
		if !strings.Contains(strings.ToLower(e.Category), kw) && !strings.Contains(strings.ToLower(e.Note), kw) {
			return false
		}
	}
	if filter.MinAmount != nil && e.Amount < *filter.MinAmount {
		return false
	}
	if filter.MaxAmount != nil && e.Amount > *filter.MaxAmount {
		return false
	}
	return true
}

func (r *StubExpenseRepo) FindInWindow(_ context.Context, userId int, start, end time.Time, category string) ([]Expense, error) {
	var result []Expense
	for _, stored := range r.expenses {
		e := stored.expense
		if stored.userId != userId || e.Date.Before(start) || e.Date.After(end) {
			continue
		}
		if category != "" && e.Category != category {
			continue
		}
		result = append(result, e)
	}
	sortNewestFirst(result)
	return result, nil
}

func sortNewestFirst(expenses []Expense) {
	sort.SliceStable(expenses, func(i, j int) bool {
		if !expenses[i].Date.Equal(expenses[j].Date) {
			return expenses[i].Date.After(expenses[j].Date)
		}
		return expenses[i].ID > expenses[j].ID
	})
}

func (r *StubExpenseRepo) Delete(_ context.Context, userId int, id int) (bool, error) {
	for i, stored := range r.expenses {
		if stored.userId == userId && stored.expense.ID == id {
			r.expenses = append(r.expenses[:i], r.expenses[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (r *StubExpenseRepo) SumInWindow(_ context.Context, userId int, start, end time.Time, category string) (int64, error) {
	var total int64
	for _, stored := range r.expenses {
		e := stored.expense
		if stored.userId != userId || e.Date.Before(start) || e.Date.After(end) {
			continue
		}
		if category != "" && e.Category != category {
			continue
		}
		total += e.Amount
	}
	return total, nil
}

func (r *StubExpenseRepo) SumByCategory(_ context.Context, userId int, start, end time.Time) ([]CategorySum, error) {
	totals := map[string]int64{}
	for _, stored := range r.expenses {
		e := stored.expense
		if stored.userId != userId {
			continue
		}
		if !start.IsZero() && e.Date.Before(start) {
			continue
		}
		if !end.IsZero() && e.Date.After(end) {
			continue
		}
		totals[e.Category] += e.Amount
	}
	var sums []CategorySum
	for category, total := range totals {
		sums = append(sums, CategorySum{Category: category, Total: total})
	}
	sort.Slice(sums, func(i, j int) bool { return sums[i].Total > sums[j].Total })
	return sums, nil
}

func (r *StubExpenseRepo) DistinctCategories(_ context.Context, userId int) ([]string, error) {
	seen := map[string]bool{}
	var categories []string
	for _, stored := range r.expenses {
		category := strings.TrimSpace(stored.expense.Category)
		if stored.userId != userId || category == "" || seen[category] {
			continue
		}
		seen[category] = true
		categories = append(categories, category)
	}
	sort.Slice(categories, func(i, j int) bool {
		return strings.ToLower(categories[i]) < strings.ToLower(categories[j])
	})
	return categories, nil
}

func (r *StubExpenseRepo) CanonicalCategory(_ context.Context, userId int, category string) (string, error) {
	needle := strings.ToLower(strings.TrimSpace(category))
	for _, stored := range r.expenses {
		if stored.userId != userId {
			continue
		}
		if strings.ToLower(strings.TrimSpace(stored.expense.Category)) == needle {
			return strings.TrimSpace(stored.expense.Category), nil
		}
	}
	return "", nil
}

func (r *StubExpenseRepo) GetReceipt(_ context.Context, userId int, id int) (Receipt, error) {
	for _, stored := range r.expenses {
		if stored.userId == userId && stored.expense.ID == id && stored.receipt != nil {
			return *stored.receipt, nil
		}
	}
	return Receipt{}, ErrExpenseNotFound
}
