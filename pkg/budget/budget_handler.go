package budget

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"github.com/smartspend/smartspend/internal/money"
	"github.com/smartspend/smartspend/pkg/expense"
)

type BudgetDTO struct {
	Id       int    `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category,omitempty"`
	Period   string `json:"period"`
	Amount   string `json:"amount"`
	// StartDate and EndDate are set for one-off budgets.
	StartDate string `json:"startDate,omitempty"`
	EndDate   string `json:"endDate,omitempty"`
	// Month and Year anchor recurring budgets.
	Month int `json:"month,omitempty"`
	Year  int `json:"year,omitempty"`
}

type StatusDTO struct {
	WindowStart    string `json:"windowStart"`
	WindowEnd      string `json:"windowEnd"`
	Spent          string `json:"spent"`
	Limit          string `json:"limit"`
	Remaining      string `json:"remaining"`
	Percent        int    `json:"percent"`
	DaysLeft       int    `json:"daysLeft"`
	DailyAllowance string `json:"dailyAllowance"`
	Status         string `json:"status"`
}

type OverviewDTO struct {
	Budget BudgetDTO `json:"budget"`
	StatusDTO
}

type TransactionsDTO struct {
	OverviewDTO
	Expenses []expense.ExpenseDTO `json:"expenses"`
	Total    string               `json:"total"`
}

type BudgetHandler struct {
	service BudgetService
}

func NewBudgetHandler(service BudgetService) *BudgetHandler {
	return &BudgetHandler{service: service}
}

// CreateBudget godoc
// @Summary Create a budget
// @Tags Budget
// @Accept json
// @Produce json
// @Success 201 {object} BudgetDTO
// @Failure 400 {string} string "Bad Request"
// @Router /api/budget [post]
// @Security BearerToken
func (handler *BudgetHandler) CreateBudget(w http.ResponseWriter, r *http.Request) {
	log.Debug("Creating new budget")
	w.Header().Set("Content-Type", "application/json")
	budget, ok := handler.decodeBudget(w, r)
	if !ok {
		return
	}
	created, err := handler.service.Create(r.Context(), budget)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(BudgetToDTO(created)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// ListBudgets godoc
// @Summary List budgets
// @Tags Budget
// @Produce json
// @Success 200 {array} BudgetDTO
// @Router /api/budget [get]
// @Security BearerToken
func (handler *BudgetHandler) ListBudgets(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	budgets, err := handler.service.GetAll(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	dtos := make([]BudgetDTO, 0, len(budgets))
	for _, budget := range budgets {
		dtos = append(dtos, BudgetToDTO(budget))
	}
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// GetBudget godoc
// @Summary Get a single budget
// @Tags Budget
// @Produce json
// @Success 200 {object} BudgetDTO
// @Failure 404 {string} string "Not Found"
// @Router /api/budget/{id} [get]
// @Security BearerToken
func (handler *BudgetHandler) GetBudget(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid budget id", http.StatusBadRequest)
		return
	}
	budget, err := handler.service.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrBudgetNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(BudgetToDTO(budget)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// UpdateBudget godoc
// @Summary Update a budget
// @Tags Budget
// @Accept json
// @Produce json
// @Success 200 {object} BudgetDTO
// @Failure 400 {string} string "Bad Request"
// @Failure 404 {string} string "Not Found"
// @Router /api/budget/{id} [put]
// @Security BearerToken
func (handler *BudgetHandler) UpdateBudget(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid budget id", http.StatusBadRequest)
		return
	}
	budget, ok := handler.decodeBudget(w, r)
	if !ok {
		return
	}
	budget.ID = id
	updated, err := handler.service.Update(r.Context(), budget)
	if err != nil {
		if errors.Is(err, ErrBudgetNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(BudgetToDTO(updated)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// DeleteBudget godoc
// @Summary Delete a budget
// @Tags Budget
// @Success 204 {string} string "No Content"
// @Failure 404 {string} string "Not Found"
// @Router /api/budget/{id} [delete]
// @Security BearerToken
func (handler *BudgetHandler) DeleteBudget(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid budget id", http.StatusBadRequest)
		return
	}
	if err := handler.service.Delete(r.Context(), id); err != nil {
		if errors.Is(err, ErrBudgetNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetOverview godoc
// @Summary Evaluate all budgets against their current windows
// @Tags Budget
// @Produce json
// @Success 200 {array} OverviewDTO
// @Router /api/budget/overview [get]
// @Security BearerToken
func (handler *BudgetHandler) GetOverview(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	overviews, err := handler.service.GetOverview(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	dtos := make([]OverviewDTO, 0, len(overviews))
	for _, overview := range overviews {
		dtos = append(dtos, OverviewToDTO(overview))
	}
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// GetAlerts godoc
// @Summary Render one status line per budget
// @Tags Budget
// @Produce json
// @Success 200 {array} string
// @Router /api/budget/alerts [get]
// @Security BearerToken
func (handler *BudgetHandler) GetAlerts(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	alerts, err := handler.service.GetAlerts(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if alerts == nil {
		alerts = []string{}
	}
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(alerts); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// GetTransactions godoc
// @Summary List the expenses counted against a budget
// @Tags Budget
// @Produce json
// @Success 200 {object} TransactionsDTO
// @Failure 404 {string} string "Not Found"
// @Router /api/budget/{id}/transactions [get]
// @Security BearerToken
func (handler *BudgetHandler) GetTransactions(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid budget id", http.StatusBadRequest)
		return
	}
	transactions, err := handler.service.GetTransactions(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrBudgetNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	dto := TransactionsDTO{OverviewDTO: OverviewToDTO(transactions.Overview)}
	var total int64
	dto.Expenses = make([]expense.ExpenseDTO, 0, len(transactions.Expenses))
	for _, e := range transactions.Expenses {
		total += e.Amount
		dto.Expenses = append(dto.Expenses, expense.ExpenseToDTO(e))
	}
	dto.Total = money.Format(total)

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(dto); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (handler *BudgetHandler) decodeBudget(w http.ResponseWriter, r *http.Request) (Budget, bool) {
	var dto BudgetDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return Budget{}, false
	}
	amount, err := money.Parse(dto.Amount)
	if err != nil {
		http.Error(w, "invalid amount", http.StatusBadRequest)
		return Budget{}, false
	}
	budget := Budget{
		Name:       dto.Name,
		Category:   dto.Category,
		Period:     PeriodKind(dto.Period),
		Amount:     amount,
		MonthValue: dto.Month,
		YearValue:  dto.Year,
	}
	if dto.StartDate != "" {
		date, err := time.Parse("2006-01-02", dto.StartDate)
		if err != nil {
			http.Error(w, "invalid start date, expected YYYY-MM-DD", http.StatusBadRequest)
			return Budget{}, false
		}
		budget.StartDate = date
	}
	if dto.EndDate != "" {
		date, err := time.Parse("2006-01-02", dto.EndDate)
		if err != nil {
			http.Error(w, "invalid end date, expected YYYY-MM-DD", http.StatusBadRequest)
			return Budget{}, false
		}
		budget.EndDate = date
	}
	return budget, true
}

func BudgetToDTO(budget Budget) BudgetDTO {
	dto := BudgetDTO{
		Id:       budget.ID,
		Name:     budget.Name,
		Category: budget.Category,
		Period:   string(budget.Period),
		Amount:   money.Format(budget.Amount),
		Month:    budget.MonthValue,
		Year:     budget.YearValue,
	}
	if !budget.StartDate.IsZero() {
		dto.StartDate = budget.StartDate.Format("2006-01-02")
	}
	if !budget.EndDate.IsZero() {
		dto.EndDate = budget.EndDate.Format("2006-01-02")
	}
	return dto
}

func OverviewToDTO(overview Overview) OverviewDTO {
	return OverviewDTO{
		Budget: BudgetToDTO(overview.Budget),
		StatusDTO: StatusDTO{
			WindowStart:    overview.Window.Start.Format("2006-01-02"),
			WindowEnd:      overview.Window.End.Format("2006-01-02"),
			Spent:          money.Format(overview.Status.Spent),
			Limit:          money.Format(overview.Status.Limit),
			Remaining:      money.Format(overview.Status.Remaining),
			Percent:        overview.Status.Percent,
			DaysLeft:       overview.Status.DaysLeft,
			DailyAllowance: money.Format(overview.Status.DailyAllowance),
			Status:         string(overview.Status.Classification),
		},
	}
}
