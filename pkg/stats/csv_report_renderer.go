package stats

import (
	"bytes"
	"encoding/csv"

	log "github.com/sirupsen/logrus"
	"github.com/smartspend/smartspend/internal/money"
)

type CsvReportRendererImpl struct {
}

func NewCsvReportRenderer() *CsvReportRendererImpl {
	return &CsvReportRendererImpl{}
}

// RenderReport renders a transaction report as CSV: one row per
// transaction followed by the totals.
func (t *CsvReportRendererImpl) RenderReport(report Report) (string, error) {
	data := make([][]string, 0, len(report.Transactions)+4)
	data = append(data, []string{"Date", "Type", "Label", "Amount", "Note"})
	for _, transaction := range report.Transactions {
		data = append(data, []string{
			transaction.Date.Format("02/01/2006"),
			string(transaction.Kind),
			transaction.Label,
			money.Format(transaction.Amount),
			transaction.Note,
		})
	}
	data = append(data,
		[]string{"", "", "Total income", money.Format(report.TotalIncome), ""},
		[]string{"", "", "Total expense", money.Format(report.TotalExpense), ""},
		[]string{"", "", "Balance", money.Format(report.Balance), ""},
	)

	var b bytes.Buffer
	writer := csv.NewWriter(&b)
	for _, row := range data {
		err := writer.Write(row)
		if err != nil {
			log.Errorf("Error writing to csv: %v", err)
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		log.Errorf("Error writing to csv: %v", err)
		return "", err
	}

	return b.String(), nil
}
