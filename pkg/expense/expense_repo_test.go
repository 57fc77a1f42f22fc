package expense

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/smartspend/smartspend/internal/test_utils"
)

func date(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestExpenseRepoImpl_SumInWindow(t *testing.T) {
	db := test_utils.SetupTestDB(t)
	repo := NewExpenseRepo(db)
	userId := test_utils.CreateTestUser(t, db, "maya")
	ctx := context.Background()

	store := func(day, category string, amount int64) {
		_, err := repo.Store(ctx, userId, Expense{Date: date(day), Category: category, Amount: amount}, nil)
		require.NoError(t, err)
	}

	t.Run("should return zero when nothing matches", func(t *testing.T) {
		total, err := repo.SumInWindow(ctx, userId, date("2025-09-01"), date("2025-09-30"), "")
		assert.NoError(t, err)
		assert.Equal(t, int64(0), total)
	})

	store("2025-08-31", "Food", 9999)
	store("2025-09-01", "Food", 12000)
	store("2025-09-15", "Food", 20000)
	store("2025-09-30", "Transport", 5000)
	store("2025-10-01", "Food", 7777)

	t.Run("should include both window bounds", func(t *testing.T) {
		total, err := repo.SumInWindow(ctx, userId, date("2025-09-01"), date("2025-09-30"), "")
		assert.NoError(t, err)
		assert.Equal(t, int64(37000), total)
	})

	t.Run("should filter by category with exact match", func(t *testing.T) {
		total, err := repo.SumInWindow(ctx, userId, date("2025-09-01"), date("2025-09-30"), "Food")
		assert.NoError(t, err)
		assert.Equal(t, int64(32000), total)
	})

	t.Run("should treat category names as case-sensitive", func(t *testing.T) {
		total, err := repo.SumInWindow(ctx, userId, date("2025-09-01"), date("2025-09-30"), "food")
		assert.NoError(t, err)
		assert.Equal(t, int64(0), total)
	})

	t.Run("should not see another user's expenses", func(t *testing.T) {
		otherId := test_utils.CreateTestUser(t, db, "other")
		total, err := repo.SumInWindow(ctx, otherId, date("2025-09-01"), date("2025-09-30"), "")
		assert.NoError(t, err)
		assert.Equal(t, int64(0), total)
	})
}

func TestExpenseRepoImpl_Find(t *testing.T) {
	db := test_utils.SetupTestDB(t)
	repo := NewExpenseRepo(db)
	userId := test_utils.CreateTestUser(t, db, "maya")
	ctx := context.Background()

	_, err := repo.Store(ctx, userId, Expense{Date: date("2025-09-01"), Category: "Food", Amount: 1500, Note: "lunch at mamak"}, nil)
	require.NoError(t, err)
	_, err = repo.Store(ctx, userId, Expense{Date: date("2025-09-02"), Category: "Other: Books", Amount: 4500}, nil)
	require.NoError(t, err)
	_, err = repo.Store(ctx, userId, Expense{Date: date("2025-09-03"), Category: "Transport", Amount: 800, Note: "bus"}, nil)
	require.NoError(t, err)

	t.Run("should return newest first", func(t *testing.T) {
		expenses, err := repo.Find(ctx, userId, Filter{})
		assert.NoError(t, err)
		require.Len(t, expenses, 3)
		assert.Equal(t, "Transport", expenses[0].Category)
		assert.Equal(t, "Food", expenses[2].Category)
	})

	t.Run("should match Other as a prefix", func(t *testing.T) {
		expenses, err := repo.Find(ctx, userId, Filter{Category: "Other"})
		assert.NoError(t, err)
		require.Len(t, expenses, 1)
		assert.Equal(t, "Other: Books", expenses[0].Category)
	})

	t.Run("should match keyword against note", func(t *testing.T) {
		expenses, err := repo.Find(ctx, userId, Filter{Keyword: "mamak"})
		assert.NoError(t, err)
		require.Len(t, expenses, 1)
		assert.Equal(t, "Food", expenses[0].Category)
	})

	t.Run("should honor amount bounds", func(t *testing.T) {
		minAmount, maxAmount := int64(1000), int64(2000)
		expenses, err := repo.Find(ctx, userId, Filter{MinAmount: &minAmount, MaxAmount: &maxAmount})
		assert.NoError(t, err)
		require.Len(t, expenses, 1)
		assert.Equal(t, int64(1500), expenses[0].Amount)
	})
}

func TestExpenseRepoImpl_Receipts(t *testing.T) {
	db := test_utils.SetupTestDB(t)
	repo := NewExpenseRepo(db)
	userId := test_utils.CreateTestUser(t, db, "maya")
	ctx := context.Background()

	withReceipt, err := repo.Store(ctx, userId,
		Expense{Date: date("2025-09-01"), Category: "Food", Amount: 1500},
		&Receipt{Data: []byte{0xFF, 0xD8, 0xFF}, MimeType: "image/jpeg"})
	require.NoError(t, err)
	withoutReceipt, err := repo.Store(ctx, userId,
		Expense{Date: date("2025-09-02"), Category: "Food", Amount: 900}, nil)
	require.NoError(t, err)

	t.Run("should round-trip the receipt blob", func(t *testing.T) {
		receipt, err := repo.GetReceipt(ctx, userId, withReceipt)
		assert.NoError(t, err)
		assert.Equal(t, []byte{0xFF, 0xD8, 0xFF}, receipt.Data)
		assert.Equal(t, "image/jpeg", receipt.MimeType)
	})

	t.Run("should report not found when no receipt was stored", func(t *testing.T) {
		_, err := repo.GetReceipt(ctx, userId, withoutReceipt)
		assert.ErrorIs(t, err, ErrExpenseNotFound)
	})

	t.Run("should flag the expense as having a receipt", func(t *testing.T) {
		expense, err := repo.Get(ctx, userId, withReceipt)
		assert.NoError(t, err)
		assert.True(t, expense.HasReceipt)
	})
}

func TestExpenseRepoImpl_Categories(t *testing.T) {
	db := test_utils.SetupTestDB(t)
	repo := NewExpenseRepo(db)
	userId := test_utils.CreateTestUser(t, db, "maya")
	ctx := context.Background()

	for _, category := range []string{"Food", "Transport", "Food"} {
		_, err := repo.Store(ctx, userId, Expense{Date: date("2025-09-01"), Category: category, Amount: 100}, nil)
		require.NoError(t, err)
	}

	t.Run("should list distinct categories", func(t *testing.T) {
		categories, err := repo.DistinctCategories(ctx, userId)
		assert.NoError(t, err)
		assert.Equal(t, []string{"Food", "Transport"}, categories)
	})

	t.Run("should resolve the stored casing", func(t *testing.T) {
		canonical, err := repo.CanonicalCategory(ctx, userId, "  fOOd ")
		assert.NoError(t, err)
		assert.Equal(t, "Food", canonical)
	})

	t.Run("should return empty string for an unused category", func(t *testing.T) {
		canonical, err := repo.CanonicalCategory(ctx, userId, "Rent")
		assert.NoError(t, err)
		assert.Equal(t, "", canonical)
	})
}
