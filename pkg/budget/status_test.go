package budget

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluateStatus(t *testing.T) {
	today := date("2025-09-15")
	endOfMonth := date("2025-09-30")

	t.Run("should reject a negative limit", func(t *testing.T) {
		_, err := EvaluateStatus(-1, 0, endOfMonth, today)
		assert.ErrorIs(t, err, ErrInvalidBudget)
	})

	t.Run("zero limit stays on track with no percentage", func(t *testing.T) {
		status, err := EvaluateStatus(0, 12345, endOfMonth, today)
		require.NoError(t, err)
		assert.Equal(t, OnTrack, status.Classification)
		assert.Equal(t, 0, status.Percent)
		assert.Equal(t, int64(0), status.Remaining)
	})

	t.Run("spending exactly the limit is exceeded", func(t *testing.T) {
		status, err := EvaluateStatus(10000, 10000, endOfMonth, today)
		require.NoError(t, err)
		assert.Equal(t, Exceeded, status.Classification)
		assert.Equal(t, 100, status.Percent)
		assert.Equal(t, int64(0), status.Remaining)
	})

	t.Run("overspending reports more than 100 percent", func(t *testing.T) {
		status, err := EvaluateStatus(10000, 15000, endOfMonth, today)
		require.NoError(t, err)
		assert.Equal(t, Exceeded, status.Classification)
		assert.Equal(t, 150, status.Percent)
	})

	t.Run("85 percent spent is almost full", func(t *testing.T) {
		status, err := EvaluateStatus(10000, 8500, endOfMonth, today)
		require.NoError(t, err)
		assert.Equal(t, AlmostFull, status.Classification)
		assert.Equal(t, 85, status.Percent)
	})

	t.Run("below the threshold is on track", func(t *testing.T) {
		status, err := EvaluateStatus(10000, 7900, endOfMonth, today)
		require.NoError(t, err)
		assert.Equal(t, OnTrack, status.Classification)
		assert.Equal(t, 79, status.Percent)
	})

	t.Run("daily allowance splits the remaining over the days left", func(t *testing.T) {
		// RM50 left over 10 days is RM5.00 per day.
		status, err := EvaluateStatus(10000, 5000, date("2025-09-25"), today)
		require.NoError(t, err)
		assert.Equal(t, 10, status.DaysLeft)
		assert.Equal(t, int64(500), status.DailyAllowance)
	})

	t.Run("an ended window has no days left and no allowance", func(t *testing.T) {
		status, err := EvaluateStatus(10000, 5000, date("2025-09-01"), today)
		require.NoError(t, err)
		assert.Equal(t, 0, status.DaysLeft)
		assert.Equal(t, int64(0), status.DailyAllowance)
	})

	t.Run("percent rounds half up", func(t *testing.T) {
		status, err := EvaluateStatus(30000, 10000, endOfMonth, today)
		require.NoError(t, err)
		assert.Equal(t, 33, status.Percent)

		status, err = EvaluateStatus(40000, 10000, endOfMonth, today)
		require.NoError(t, err)
		assert.Equal(t, 25, status.Percent)
	})
}
