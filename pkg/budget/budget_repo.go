package budget

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
)

const dateLayout = "2006-01-02"

type BudgetRepo interface {
	Store(ctx context.Context, userId int, budget Budget) (int, error)
	Get(ctx context.Context, userId int, id int) (Budget, error)
	// GetAll returns the user's budgets in insertion order.
	GetAll(ctx context.Context, userId int) ([]Budget, error)
	Update(ctx context.Context, userId int, budget Budget) (bool, error)
	Delete(ctx context.Context, userId int, id int) (bool, error)
}

type BudgetRepoImpl struct {
	db *sql.DB
}

func NewBudgetRepo(db *sql.DB) *BudgetRepoImpl {
	return &BudgetRepoImpl{db: db}
}

func (r *BudgetRepoImpl) Store(ctx context.Context, userId int, budget Budget) (int, error) {
	query := `INSERT INTO budget (user_id, name, category, period_type, amount, start_date, end_date, month_value, year_value)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	result, err := r.db.ExecContext(ctx, query,
		userId,
		budget.Name,
		nullableString(budget.Category),
		string(budget.Period),
		budget.Amount,
		nullableDate(budget.StartDate),
		nullableDate(budget.EndDate),
		nullableInt(budget.MonthValue),
		nullableInt(budget.YearValue),
	)
	if err != nil {
		err := fmt.Errorf("could not store budget: %w", err)
		log.Error(err)
		return 0, err
	}
	lastInsertID, err := result.LastInsertId()
	if err != nil {
		err := fmt.Errorf("could not retrieve last insert id: %w", err)
		log.Error(err)
		return 0, err
	}
	return int(lastInsertID), nil
}

func (r *BudgetRepoImpl) Get(ctx context.Context, userId int, id int) (Budget, error) {
	query := `SELECT id, name, category, period_type, amount, start_date, end_date, month_value, year_value
				FROM budget WHERE id = ? AND user_id = ?`
	budget, err := scanBudget(r.db.QueryRowContext(ctx, query, id, userId).Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Budget{}, ErrBudgetNotFound
		}
		err := fmt.Errorf("could not scan budget: %w", err)
		log.Error(err)
		return Budget{}, err
	}
	return budget, nil
}

func (r *BudgetRepoImpl) GetAll(ctx context.Context, userId int) ([]Budget, error) {
	query := `SELECT id, name, category, period_type, amount, start_date, end_date, month_value, year_value
				FROM budget WHERE user_id = ? ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query, userId)
	if err != nil {
		err := fmt.Errorf("could not query budgets: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	var budgets []Budget
	for rows.Next() {
		budget, err := scanBudget(rows.Scan)
		if err != nil {
			err := fmt.Errorf("could not scan budget: %w", err)
			log.Error(err)
			return nil, err
		}
		budgets = append(budgets, budget)
	}
	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over rows: %w", err)
		log.Error(err)
		return nil, err
	}
	return budgets, nil
}

func (r *BudgetRepoImpl) Update(ctx context.Context, userId int, budget Budget) (bool, error) {
	query := `UPDATE budget SET name = ?, category = ?, period_type = ?, amount = ?,
				start_date = ?, end_date = ?, month_value = ?, year_value = ?
				WHERE id = ? AND user_id = ?`
	result, err := r.db.ExecContext(ctx, query,
		budget.Name,
		nullableString(budget.Category),
		string(budget.Period),
		budget.Amount,
		nullableDate(budget.StartDate),
		nullableDate(budget.EndDate),
		nullableInt(budget.MonthValue),
		nullableInt(budget.YearValue),
		budget.ID,
		userId,
	)
	if err != nil {
		err := fmt.Errorf("could not update budget: %w", err)
		log.Error(err)
		return false, err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		err := fmt.Errorf("could not get rows affected: %w", err)
		log.Error(err)
		return false, err
	}
	return rowsAffected == 1, nil
}

func (r *BudgetRepoImpl) Delete(ctx context.Context, userId int, id int) (bool, error) {
	result, err := r.db.ExecContext(ctx, "DELETE FROM budget WHERE id = ? AND user_id = ?", id, userId)
	if err != nil {
		err := fmt.Errorf("could not delete budget: %w", err)
		log.Error(err)
		return false, err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		err := fmt.Errorf("could not get rows affected: %w", err)
		log.Error(err)
		return false, err
	}
	return rowsAffected == 1, nil
}

func scanBudget(scan func(dest ...any) error) (Budget, error) {
	var budget Budget
	var category sql.NullString
	var periodType string
	var startDate, endDate sql.NullString
	var monthValue, yearValue sql.NullInt64
	if err := scan(&budget.ID, &budget.Name, &category, &periodType, &budget.Amount,
		&startDate, &endDate, &monthValue, &yearValue); err != nil {
		return Budget{}, err
	}
	budget.Category = category.String
	budget.Period = PeriodKind(periodType)
	budget.MonthValue = int(monthValue.Int64)
	budget.YearValue = int(yearValue.Int64)

	var err error
	if budget.StartDate, err = parseNullableDate(startDate); err != nil {
		return Budget{}, err
	}
	if budget.EndDate, err = parseNullableDate(endDate); err != nil {
		return Budget{}, err
	}
	return budget, nil
}

func parseNullableDate(value sql.NullString) (time.Time, error) {
	if !value.Valid || value.String == "" {
		return time.Time{}, nil
	}
	date, err := time.Parse(dateLayout, value.String)
	if err != nil {
		return time.Time{}, fmt.Errorf("could not parse date: %w", err)
	}
	return date, nil
}

func nullableString(value string) interface{} {
	if value == "" {
		return nil
	}
	return value
}

func nullableDate(value time.Time) interface{} {
	if value.IsZero() {
		return nil
	}
	return value.Format(dateLayout)
}

func nullableInt(value int) interface{} {
	if value == 0 {
		return nil
	}
	return value
}
