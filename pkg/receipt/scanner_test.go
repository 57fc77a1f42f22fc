package receipt

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubRunner returns canned extractor output instead of shelling out.
type stubRunner struct {
	stdout []byte
	stderr []byte
	err    error

	imagePath string
}

func (r *stubRunner) Run(_ context.Context, imagePath string) ([]byte, []byte, error) {
	r.imagePath = imagePath
	return r.stdout, r.stderr, r.err
}

func TestScannerImpl_Scan(t *testing.T) {
	image := []byte{0xFF, 0xD8, 0xFF}

	t.Run("should normalize the extractor output", func(t *testing.T) {
		runner := &stubRunner{
			stdout: []byte(`{"merchant": " TESCO KAJANG ", "amount": "RM 45.90", "date": "15/09/2025", "raw_text": "TESCO KAJANG\nTOTAL 45.90"}`),
			stderr: []byte("DEBUG: 2 candidate totals\n"),
		}
		scanner := NewScanner(runner)

		result, err := scanner.Scan(context.Background(), image, ".jpg")
		require.NoError(t, err)
		assert.Equal(t, "TESCO KAJANG", result.Merchant)
		assert.Equal(t, int64(4590), result.Amount)
		assert.Equal(t, time.Date(2025, 9, 15, 0, 0, 0, 0, time.UTC), result.Date)
		assert.Contains(t, result.RawText, "TOTAL 45.90")
		assert.NotEmpty(t, runner.imagePath)
	})

	t.Run("should surface an extractor-reported error", func(t *testing.T) {
		runner := &stubRunner{stdout: []byte(`{"error": "no text found"}`)}
		scanner := NewScanner(runner)

		_, err := scanner.Scan(context.Background(), image, ".jpg")
		assert.ErrorIs(t, err, ErrScanFailed)
		assert.Contains(t, err.Error(), "no text found")
	})

	t.Run("should fail on unreadable output", func(t *testing.T) {
		runner := &stubRunner{stdout: []byte("Traceback (most recent call last):")}
		scanner := NewScanner(runner)

		_, err := scanner.Scan(context.Background(), image, ".jpg")
		assert.ErrorIs(t, err, ErrScanFailed)
	})

	t.Run("should keep the result when only some fields were found", func(t *testing.T) {
		runner := &stubRunner{stdout: []byte(`{"merchant": "99 Speedmart", "amount": "", "date": "someday"}`)}
		scanner := NewScanner(runner)

		result, err := scanner.Scan(context.Background(), image, ".jpg")
		require.NoError(t, err)
		assert.Equal(t, "99 Speedmart", result.Merchant)
		assert.True(t, result.Date.IsZero())
		assert.Zero(t, result.Amount)
	})

	t.Run("should reject an empty image", func(t *testing.T) {
		scanner := NewScanner(&stubRunner{})
		_, err := scanner.Scan(context.Background(), nil, ".jpg")
		assert.ErrorIs(t, err, ErrScanFailed)
	})
}

func TestNormalizeDate(t *testing.T) {
	tests := []struct {
		input string
		want  string
		ok    bool
	}{
		{"2025-09-15", "2025-09-15", true},
		{"15/09/2025", "2025-09-15", true},
		{"15-09-2025", "2025-09-15", true},
		{"15.09.2025", "2025-09-15", true},
		{"2025/09/15", "2025-09-15", true},
		{"09/15/2025", "2025-09-15", true},
		{"15/9/25", "2025-09-15", true},
		{"1/2/2025", "2025-02-01", true},
		{"31/02/2025", "", false},
		{"someday", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			date, ok := NormalizeDate(tt.input)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, date.Format("2006-01-02"))
			}
		})
	}
}
