package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCsvReportRendererImpl_RenderReport(t *testing.T) {
	renderer := NewCsvReportRenderer()

	report := Report{
		TotalIncome:  350000,
		TotalExpense: 12000,
		Balance:      338000,
		Transactions: []Transaction{
			{Kind: KindExpense, Date: date("2025-09-05"), Label: "Food", Amount: 12000, Note: "groceries, weekly"},
			{Kind: KindIncome, Date: date("2025-09-01"), Label: "Salary", Amount: 350000},
		},
	}

	csv, err := renderer.RenderReport(report)
	require.NoError(t, err)

	expected := "Date,Type,Label,Amount,Note\n" +
		"05/09/2025,expense,Food,120.00,\"groceries, weekly\"\n" +
		"01/09/2025,income,Salary,3500.00,\n" +
		",,Total income,3500.00,\n" +
		",,Total expense,120.00,\n" +
		",,Balance,3380.00,\n"
	assert.Equal(t, expected, csv)
}
