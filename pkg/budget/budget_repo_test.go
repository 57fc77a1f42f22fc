package budget

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/smartspend/smartspend/internal/test_utils"
)

func TestBudgetRepoImpl(t *testing.T) {
	db := test_utils.SetupTestDB(t)
	repo := NewBudgetRepo(db)
	userId := test_utils.CreateTestUser(t, db, "maya")
	ctx := context.Background()

	t.Run("should round-trip a monthly budget", func(t *testing.T) {
		// given
		id, err := repo.Store(ctx, userId, Budget{
			Name: "Food budget", Category: "Food", Period: PeriodMonthly,
			Amount: 50000, MonthValue: 9, YearValue: 2025,
		})
		require.NoError(t, err)

		// when
		found, err := repo.Get(ctx, userId, id)

		// then
		assert.NoError(t, err)
		assert.Equal(t, "Food budget", found.Name)
		assert.Equal(t, "Food", found.Category)
		assert.Equal(t, PeriodMonthly, found.Period)
		assert.Equal(t, int64(50000), found.Amount)
		assert.Equal(t, 9, found.MonthValue)
		assert.Equal(t, 2025, found.YearValue)
		assert.True(t, found.StartDate.IsZero())
		assert.True(t, found.EndDate.IsZero())
	})

	t.Run("should round-trip a one-off budget with dates and no category", func(t *testing.T) {
		id, err := repo.Store(ctx, userId, Budget{
			Name: "Trip", Period: PeriodOneOff, Amount: 200000,
			StartDate: date("2025-12-01"), EndDate: date("2025-12-20"),
		})
		require.NoError(t, err)

		found, err := repo.Get(ctx, userId, id)
		assert.NoError(t, err)
		assert.Equal(t, "", found.Category)
		assert.Equal(t, date("2025-12-01"), found.StartDate)
		assert.Equal(t, date("2025-12-20"), found.EndDate)
		assert.Equal(t, 0, found.MonthValue)
	})

	t.Run("should update an existing budget", func(t *testing.T) {
		id, err := repo.Store(ctx, userId, Budget{
			Name: "Fun", Period: PeriodYearly, Amount: 100000, YearValue: 2025,
		})
		require.NoError(t, err)

		updated, err := repo.Update(ctx, userId, Budget{
			ID: id, Name: "Fun and games", Period: PeriodYearly, Amount: 120000, YearValue: 2026,
		})
		assert.NoError(t, err)
		assert.True(t, updated)

		found, err := repo.Get(ctx, userId, id)
		assert.NoError(t, err)
		assert.Equal(t, "Fun and games", found.Name)
		assert.Equal(t, int64(120000), found.Amount)
		assert.Equal(t, 2026, found.YearValue)
	})

	t.Run("should report not found for another user's budget", func(t *testing.T) {
		id, err := repo.Store(ctx, userId, Budget{
			Name: "Private", Period: PeriodYearly, Amount: 100, YearValue: 2025,
		})
		require.NoError(t, err)

		otherId := test_utils.CreateTestUser(t, db, "other")
		_, err = repo.Get(ctx, otherId, id)
		assert.ErrorIs(t, err, ErrBudgetNotFound)
	})

	t.Run("should delete a budget", func(t *testing.T) {
		id, err := repo.Store(ctx, userId, Budget{
			Name: "Short lived", Period: PeriodYearly, Amount: 100, YearValue: 2025,
		})
		require.NoError(t, err)

		deleted, err := repo.Delete(ctx, userId, id)
		assert.NoError(t, err)
		assert.True(t, deleted)

		_, err = repo.Get(ctx, userId, id)
		assert.ErrorIs(t, err, ErrBudgetNotFound)
	})
}
