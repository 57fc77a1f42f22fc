package stats

import (
	"encoding/json"
	"net/http"

	"github.com/smartspend/smartspend/internal/money"
	"github.com/smartspend/smartspend/pkg/expense"
)

// ReportRenderer renders a transaction report in an alternative format.
type ReportRenderer interface {
	RenderReport(report Report) (string, error)
}

type TransactionDTO struct {
	Kind   string `json:"kind"`
	Id     int    `json:"id"`
	Date   string `json:"date"`
	Label  string `json:"label"`
	Amount string `json:"amount"`
	Note   string `json:"note,omitempty"`
}

type CategorySumDTO struct {
	Category string `json:"category"`
	Total    string `json:"total"`
}

type MonthTotalDTO struct {
	Month   string `json:"month"`
	Income  string `json:"income"`
	Expense string `json:"expense"`
}

type SummaryDTO struct {
	TotalIncome  string           `json:"totalIncome"`
	TotalExpense string           `json:"totalExpense"`
	Balance      string           `json:"balance"`
	Recent       []TransactionDTO `json:"recent"`
	Categories   []CategorySumDTO `json:"categories"`
	Months       []MonthTotalDTO  `json:"months"`
	Alerts       []string         `json:"alerts"`
}

type ReportDTO struct {
	TotalIncome  string           `json:"totalIncome"`
	TotalExpense string           `json:"totalExpense"`
	Balance      string           `json:"balance"`
	Transactions []TransactionDTO `json:"transactions"`
}

type StatsHandler struct {
	statsService StatsService
	csvRenderer  ReportRenderer
}

func NewStatsHandler(statsService StatsService, csvRenderer ReportRenderer) *StatsHandler {
	return &StatsHandler{statsService, csvRenderer}
}

// GetDashboard godoc
// @Summary Current-month dashboard
// @Description Totals, recent activity, category breakdown, six-month trend and budget alerts
// @Tags Stats
// @Produce json
// @Success 200 {object} SummaryDTO
// @Router /api/stats/dashboard [get]
// @Security BearerToken
func (handler *StatsHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	summary, err := handler.statsService.GetDashboard(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(summaryToDTO(summary)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// GetTransactions godoc
// @Summary All transactions in a period
// @Description Merged incomes and expenses with totals. Returns CSV when requested via the Accept header.
// @Tags Stats
// @Produce json
// @Produce text/csv
// @Param period query string false "month, year or all"
// @Param month query string false "Month (YYYY-MM), with period=month"
// @Param year query string false "Year (YYYY), with period=year"
// @Success 200 {object} ReportDTO
// @Router /api/stats/transactions [get]
// @Security BearerToken
func (handler *StatsHandler) GetTransactions(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	period := ParsePeriod(query.Get("period"), query.Get("month"), query.Get("year"))

	report, err := handler.statsService.GetReport(r.Context(), period)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if r.Header.Get("Accept") == "text/csv" {
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		csv, err := handler.csvRenderer.RenderReport(report)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte(csv)); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(reportToDTO(report)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// Search godoc
// @Summary Search transactions
// @Description Match the query against categories, sources, notes and amounts
// @Tags Stats
// @Produce json
// @Param q query string true "Search query"
// @Param period query string false "month, year or all"
// @Param month query string false "Month (YYYY-MM), with period=month"
// @Param year query string false "Year (YYYY), with period=year"
// @Param category query string false "Limit to one expense category"
// @Success 200 {array} TransactionDTO
// @Router /api/stats/search [get]
// @Security BearerToken
func (handler *StatsHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	period := ParsePeriod(query.Get("period"), query.Get("month"), query.Get("year"))
	matches, err := handler.statsService.Search(r.Context(), query.Get("q"), period, query.Get("category"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	dtos := make([]TransactionDTO, 0, len(matches))
	for _, transaction := range matches {
		dtos = append(dtos, transactionToDTO(transaction))
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func transactionToDTO(transaction Transaction) TransactionDTO {
	return TransactionDTO{
		Kind:   string(transaction.Kind),
		Id:     transaction.Id,
		Date:   transaction.Date.Format("2006-01-02"),
		Label:  transaction.Label,
		Amount: money.Format(transaction.Amount),
		Note:   transaction.Note,
	}
}

func summaryToDTO(summary Summary) SummaryDTO {
	dto := SummaryDTO{
		TotalIncome:  money.Format(summary.TotalIncome),
		TotalExpense: money.Format(summary.TotalExpense),
		Balance:      money.Format(summary.Balance),
		Recent:       make([]TransactionDTO, 0, len(summary.Recent)),
		Categories:   make([]CategorySumDTO, 0, len(summary.Categories)),
		Months:       make([]MonthTotalDTO, 0, len(summary.Months)),
		Alerts:       summary.Alerts,
	}
	for _, transaction := range summary.Recent {
		dto.Recent = append(dto.Recent, transactionToDTO(transaction))
	}
	for _, sum := range summary.Categories {
		dto.Categories = append(dto.Categories, categorySumToDTO(sum))
	}
	for _, month := range summary.Months {
		dto.Months = append(dto.Months, MonthTotalDTO{
			Month:   month.Month,
			Income:  money.Format(month.Income),
			Expense: money.Format(month.Expense),
		})
	}
	if dto.Alerts == nil {
		dto.Alerts = []string{}
	}
	return dto
}

func categorySumToDTO(sum expense.CategorySum) CategorySumDTO {
	return CategorySumDTO{Category: sum.Category, Total: money.Format(sum.Total)}
}

func reportToDTO(report Report) ReportDTO {
	dto := ReportDTO{
		TotalIncome:  money.Format(report.TotalIncome),
		TotalExpense: money.Format(report.TotalExpense),
		Balance:      money.Format(report.Balance),
		Transactions: make([]TransactionDTO, 0, len(report.Transactions)),
	}
	for _, transaction := range report.Transactions {
		dto.Transactions = append(dto.Transactions, transactionToDTO(transaction))
	}
	return dto
}
