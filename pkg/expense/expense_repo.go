package expense

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

type ExpenseRepo interface {
	// Store stores a new expense, optionally with a receipt blob attached.
	Store(ctx context.Context, userId int, expense Expense, receipt *Receipt) (int, error)
	Get(ctx context.Context, userId int, id int) (Expense, error)
	Find(ctx context.Context, userId int, filter Filter) ([]Expense, error)
	// FindInWindow returns expenses inside [start, end] inclusive, exact
	// category match when category is non-empty. Used for budget drill-down.
	FindInWindow(ctx context.Context, userId int, start, end time.Time, category string) ([]Expense, error)
	Delete(ctx context.Context, userId int, id int) (bool, error)
	// SumInWindow sums amounts inside [start, end] inclusive, exact category
	// match when category is non-empty. Returns 0 when no rows match.
	SumInWindow(ctx context.Context, userId int, start, end time.Time, category string) (int64, error)
	// SumByCategory groups spend by category inside [start, end] inclusive,
	// highest total first. Zero bounds leave the range open.
	SumByCategory(ctx context.Context, userId int, start, end time.Time) ([]CategorySum, error)
	DistinctCategories(ctx context.Context, userId int) ([]string, error)
	// CanonicalCategory returns the stored casing of a category matched
	// case-insensitively, or "" when the user never used it.
	CanonicalCategory(ctx context.Context, userId int, category string) (string, error)
	GetReceipt(ctx context.Context, userId int, id int) (Receipt, error)
}

type ExpenseRepoImpl struct {
	db *sql.DB
}

func NewExpenseRepo(db *sql.DB) *ExpenseRepoImpl {
	return &ExpenseRepoImpl{db: db}
}

func (r *ExpenseRepoImpl) Store(ctx context.Context, userId int, expense Expense, receipt *Receipt) (int, error) {
	query := `INSERT INTO expense (user_id, date, category, amount, note, receipt_blob, receipt_type)
				VALUES (?, ?, ?, ?, ?, ?, ?)`

	var blobParam, typeParam interface{}
	if receipt != nil {
		blobParam = receipt.Data
		typeParam = receipt.MimeType
	}

	result, err := r.db.ExecContext(ctx, query,
		userId,
		expense.Date.Format(dateLayout),
		expense.Category,
		expense.Amount,
		expense.Note,
		blobParam,
		typeParam,
	)
	if err != nil {
		err := fmt.Errorf("could not store expense: %w", err)
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

func (r *ExpenseRepoImpl) Get(ctx context.Context, userId int, id int) (Expense, error) {
	query := `SELECT id, date, category, amount, note, receipt_blob IS NOT NULL
				FROM expense WHERE id = ? AND user_id = ?`
	row := r.db.QueryRowContext(ctx, query, id, userId)
	expense, err := scanExpense(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Expense{}, ErrExpenseNotFound
		}
		err := fmt.Errorf("could not scan expense: %w", err)
		log.Error(err)
		return Expense{}, err
	}
	return expense, nil
}

func (r *ExpenseRepoImpl) Find(ctx context.Context, userId int, filter Filter) ([]Expense, error) {
	where := []string{"user_id = ?"}
	args := []interface{}{userId}

	if !filter.From.IsZero() {
		where = append(where, "date >= ?")
		args = append(args, filter.From.Format(dateLayout))
	}
	if !filter.To.IsZero() {
		where = append(where, "date <= ?")
		args = append(args, filter.To.Format(dateLayout))
	}
	if filter.Category != "" {
		if filter.Category == "Other" {
			where = append(where, "category LIKE 'Other%'")
		} else {
			where = append(where, "category = ?")
			args = append(args, filter.Category)
		}
	}
	if filter.Keyword != "" {
		where = append(where, "(category LIKE ? OR note LIKE ?)")
		kw := "%" + filter.Keyword + "%"
		args = append(args, kw, kw)
	}
	if filter.MinAmount != nil {
		where = append(where, "amount >= ?")
		args = append(args, *filter.MinAmount)
	}
	if filter.MaxAmount != nil {
		where = append(where, "amount <= ?")
		args = append(args, *filter.MaxAmount)
	}

	query := fmt.Sprintf(`SELECT id, date, category, amount, note, receipt_blob IS NOT NULL
				FROM expense WHERE %s ORDER BY date DESC, id DESC`, strings.Join(where, " AND "))
	return r.queryExpenses(ctx, query, args...)
}

func (r *ExpenseRepoImpl) FindInWindow(ctx context.Context, userId int, start, end time.Time, category string) ([]Expense, error) {
	query := `SELECT id, date, category, amount, note, receipt_blob IS NOT NULL
				FROM expense WHERE user_id = ? AND date BETWEEN ? AND ?`
	args := []interface{}{userId, start.Format(dateLayout), end.Format(dateLayout)}
	if category != "" {
		query += " AND category = ?"
		args = append(args, category)
	}
	query += " ORDER BY date DESC, id DESC"
	return r.queryExpenses(ctx, query, args...)
}

func (r *ExpenseRepoImpl) queryExpenses(ctx context.Context, query string, args ...interface{}) ([]Expense, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		err := fmt.Errorf("could not query expenses: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	var expenses []Expense
	for rows.Next() {
		expense, err := scanExpense(rows.Scan)
		if err != nil {
			err := fmt.Errorf("could not scan expense: %w", err)
			log.Error(err)
			return nil, err
		}
		expenses = append(expenses, expense)
	}
	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over rows: %w", err)
		log.Error(err)
		return nil, err
	}
	return expenses, nil
}

func scanExpense(scan func(dest ...any) error) (Expense, error) {
	var expense Expense
	var dateString string
	if err := scan(&expense.ID, &dateString, &expense.Category, &expense.Amount, &expense.Note, &expense.HasReceipt); err != nil {
		return Expense{}, err
	}
	date, err := time.Parse(dateLayout, dateString)
	if err != nil {
		return Expense{}, fmt.Errorf("could not parse date: %w", err)
	}
	expense.Date = date
	return expense, nil
}

func (r *ExpenseRepoImpl) Delete(ctx context.Context, userId int, id int) (bool, error) {
	query := "DELETE FROM expense WHERE id = ? AND user_id = ?"
	result, err := r.db.ExecContext(ctx, query, id, userId)
	if err != nil {
		err := fmt.Errorf("could not delete expense: %w", err)
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

func (r *ExpenseRepoImpl) SumInWindow(ctx context.Context, userId int, start, end time.Time, category string) (int64, error) {
	query := "SELECT IFNULL(SUM(amount), 0) FROM expense WHERE user_id = ? AND date BETWEEN ? AND ?"
	args := []interface{}{userId, start.Format(dateLayout), end.Format(dateLayout)}
	if category != "" {
		query += " AND category = ?"
		args = append(args, category)
	}

	var total int64
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&total); err != nil {
		err := fmt.Errorf("could not sum expenses: %w", err)
		log.Error(err)
		return 0, err
	}
	return total, nil
}

func (r *ExpenseRepoImpl) SumByCategory(ctx context.Context, userId int, start, end time.Time) ([]CategorySum, error) {
	where := []string{"user_id = ?"}
	args := []interface{}{userId}
	if !start.IsZero() {
		where = append(where, "date >= ?")
		args = append(args, start.Format(dateLayout))
	}
	if !end.IsZero() {
		where = append(where, "date <= ?")
		args = append(args, end.Format(dateLayout))
	}
	query := fmt.Sprintf(`SELECT category, SUM(amount) AS total FROM expense
				WHERE %s GROUP BY category ORDER BY total DESC`, strings.Join(where, " AND "))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		err := fmt.Errorf("could not query category sums: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	var sums []CategorySum
	for rows.Next() {
		var sum CategorySum
		if err := rows.Scan(&sum.Category, &sum.Total); err != nil {
			err := fmt.Errorf("could not scan category sum: %w", err)
			log.Error(err)
			return nil, err
		}
		sums = append(sums, sum)
	}
	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over rows: %w", err)
		log.Error(err)
		return nil, err
	}
	return sums, nil
}

func (r *ExpenseRepoImpl) DistinctCategories(ctx context.Context, userId int) ([]string, error) {
	query := `SELECT DISTINCT TRIM(category) AS c FROM expense
				WHERE user_id = ? AND TRIM(category) != '' ORDER BY LOWER(c)`
	rows, err := r.db.QueryContext(ctx, query, userId)
	if err != nil {
		err := fmt.Errorf("could not query categories: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	var categories []string
	for rows.Next() {
		var category string
		if err := rows.Scan(&category); err != nil {
			err := fmt.Errorf("could not scan category: %w", err)
			log.Error(err)
			return nil, err
		}
		categories = append(categories, category)
	}
	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over rows: %w", err)
		log.Error(err)
		return nil, err
	}
	return categories, nil
}

func (r *ExpenseRepoImpl) CanonicalCategory(ctx context.Context, userId int, category string) (string, error) {
	query := `SELECT category FROM expense
				WHERE user_id = ? AND LOWER(TRIM(category)) = LOWER(TRIM(?)) LIMIT 1`
	var stored string
	err := r.db.QueryRowContext(ctx, query, userId, category).Scan(&stored)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		err := fmt.Errorf("could not look up category: %w", err)
		log.Error(err)
		return "", err
	}
	return strings.TrimSpace(stored), nil
}

func (r *ExpenseRepoImpl) GetReceipt(ctx context.Context, userId int, id int) (Receipt, error) {
	query := "SELECT receipt_blob, receipt_type FROM expense WHERE id = ? AND user_id = ?"
	var blob []byte
	var mimeType sql.NullString
	err := r.db.QueryRowContext(ctx, query, id, userId).Scan(&blob, &mimeType)
	if errors.Is(err, sql.ErrNoRows) {
		return Receipt{}, ErrExpenseNotFound
	}
	if err != nil {
		err := fmt.Errorf("could not query receipt: %w", err)
		log.Error(err)
		return Receipt{}, err
	}
	if blob == nil {
		return Receipt{}, ErrExpenseNotFound
	}
	return Receipt{Data: blob, MimeType: mimeType.String}, nil
}
