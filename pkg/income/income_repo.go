package income

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
)

const dateLayout = "2006-01-02"

type IncomeRepo interface {
	Store(ctx context.Context, userId int, income Income) (int, error)
	Get(ctx context.Context, userId int, id int) (Income, error)
	// Find returns incomes inside [from, to], newest first. Zero bounds are open.
	Find(ctx context.Context, userId int, from, to time.Time) ([]Income, error)
	Delete(ctx context.Context, userId int, id int) (bool, error)
	// SumInRange sums amounts inside [from, to] inclusive. Zero bounds are open.
	SumInRange(ctx context.Context, userId int, from, to time.Time) (int64, error)
}

type IncomeRepoImpl struct {
	db *sql.DB
}

func NewIncomeRepo(db *sql.DB) *IncomeRepoImpl {
	return &IncomeRepoImpl{db: db}
}

func (r *IncomeRepoImpl) Store(ctx context.Context, userId int, income Income) (int, error) {
	query := "INSERT INTO income (user_id, date, source, amount, note) VALUES (?, ?, ?, ?, ?)"
	result, err := r.db.ExecContext(ctx, query,
		userId,
		income.Date.Format(dateLayout),
		income.Source,
		income.Amount,
		income.Note,
	)
	if err != nil {
		err := fmt.Errorf("could not store income: %w", err)
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

func (r *IncomeRepoImpl) Get(ctx context.Context, userId int, id int) (Income, error) {
	query := "SELECT id, date, source, amount, note FROM income WHERE id = ? AND user_id = ?"
	income, err := scanIncome(r.db.QueryRowContext(ctx, query, id, userId).Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Income{}, ErrIncomeNotFound
		}
		err := fmt.Errorf("could not scan income: %w", err)
		log.Error(err)
		return Income{}, err
	}
	return income, nil
}

func (r *IncomeRepoImpl) Find(ctx context.Context, userId int, from, to time.Time) ([]Income, error) {
	where := []string{"user_id = ?"}
	args := []interface{}{userId}
	if !from.IsZero() {
		where = append(where, "date >= ?")
		args = append(args, from.Format(dateLayout))
	}
	if !to.IsZero() {
		where = append(where, "date <= ?")
		args = append(args, to.Format(dateLayout))
	}
	query := fmt.Sprintf("SELECT id, date, source, amount, note FROM income WHERE %s ORDER BY date DESC, id DESC",
		strings.Join(where, " AND "))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		err := fmt.Errorf("could not query incomes: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	var incomes []Income
	for rows.Next() {
		income, err := scanIncome(rows.Scan)
		if err != nil {
			err := fmt.Errorf("could not scan income: %w", err)
			log.Error(err)
			return nil, err
		}
		incomes = append(incomes, income)
	}
	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over rows: %w", err)
		log.Error(err)
		return nil, err
	}
	return incomes, nil
}

func scanIncome(scan func(dest ...any) error) (Income, error) {
	var income Income
	var dateString string
	if err := scan(&income.ID, &dateString, &income.Source, &income.Amount, &income.Note); err != nil {
		return Income{}, err
	}
	date, err := time.Parse(dateLayout, dateString)
	if err != nil {
		return Income{}, fmt.Errorf("could not parse date: %w", err)
	}
	income.Date = date
	return income, nil
}

func (r *IncomeRepoImpl) Delete(ctx context.Context, userId int, id int) (bool, error) {
	result, err := r.db.ExecContext(ctx, "DELETE FROM income WHERE id = ? AND user_id = ?", id, userId)
	if err != nil {
		err := fmt.Errorf("could not delete income: %w", err)
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

func (r *IncomeRepoImpl) SumInRange(ctx context.Context, userId int, from, to time.Time) (int64, error) {
	where := []string{"user_id = ?"}
	args := []interface{}{userId}
	if !from.IsZero() {
		where = append(where, "date >= ?")
		args = append(args, from.Format(dateLayout))
	}
	if !to.IsZero() {
		where = append(where, "date <= ?")
		args = append(args, to.Format(dateLayout))
	}
	query := fmt.Sprintf("SELECT IFNULL(SUM(amount), 0) FROM income WHERE %s", strings.Join(where, " AND "))

	var total int64
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&total); err != nil {
		err := fmt.Errorf("could not sum incomes: %w", err)
		log.Error(err)
		return 0, err
	}
	return total, nil
}
