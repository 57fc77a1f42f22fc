package income

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/smartspend/smartspend/pkg/user"
)

var incomeRepoStub = NewStubIncomeRepo()

func setup(t *testing.T) (IncomeService, context.Context, func()) {
	service := NewIncomeService(incomeRepoStub)
	ctx := user.WithUser(context.Background(), user.User{Id: 1, Username: "maya"})
	return service, ctx, func() {
		t.Log("Teardown after test")
		incomeRepoStub.Cleanup()
	}
}

func TestIncomeServiceImpl_Create(t *testing.T) {
	t.Run("should store a valid income", func(t *testing.T) {
		service, ctx, teardown := setup(t)
		defer teardown()

		created, err := service.Create(ctx, Income{
			Date:   time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC),
			Source: "Salary",
			Amount: 350000,
		})
		assert.NoError(t, err)
		assert.NotZero(t, created.ID)
	})

	t.Run("should reject a missing source", func(t *testing.T) {
		service, ctx, teardown := setup(t)
		defer teardown()

		_, err := service.Create(ctx, Income{
			Date:   time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC),
			Amount: 350000,
		})
		assert.Error(t, err)
	})

	t.Run("should reject a non-positive amount", func(t *testing.T) {
		service, ctx, teardown := setup(t)
		defer teardown()

		_, err := service.Create(ctx, Income{
			Date:   time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC),
			Source: "Salary",
		})
		assert.Error(t, err)
	})
}

func TestIncomeServiceImpl_Find(t *testing.T) {
	t.Run("should honor the date range", func(t *testing.T) {
		service, ctx, teardown := setup(t)
		defer teardown()

		// given
		_, err := service.Create(ctx, Income{
			Date: time.Date(2025, 8, 31, 0, 0, 0, 0, time.UTC), Source: "Salary", Amount: 350000,
		})
		require.NoError(t, err)
		_, err = service.Create(ctx, Income{
			Date: time.Date(2025, 9, 10, 0, 0, 0, 0, time.UTC), Source: "Freelance", Amount: 80000,
		})
		require.NoError(t, err)

		// when
		incomes, err := service.Find(ctx,
			time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2025, 9, 30, 0, 0, 0, 0, time.UTC))

		// then
		assert.NoError(t, err)
		require.Len(t, incomes, 1)
		assert.Equal(t, "Freelance", incomes[0].Source)
	})
}
