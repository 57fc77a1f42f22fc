package income

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"github.com/smartspend/smartspend/internal/money"
)

type IncomeDTO struct {
	Id     int    `json:"id"`
	Date   string `json:"date"`
	Source string `json:"source"`
	Amount string `json:"amount"`
	Note   string `json:"note,omitempty"`
}

type CreateIncomeRequestDTO struct {
	Date   string `json:"date"`
	Source string `json:"source"`
	Amount string `json:"amount"`
	Note   string `json:"note,omitempty"`
}

type IncomeHandler struct {
	service IncomeService
}

func NewIncomeHandler(service IncomeService) *IncomeHandler {
	return &IncomeHandler{service: service}
}

// CreateIncome godoc
// @Summary Record an income
// @Tags Income
// @Accept json
// @Produce json
// @Success 201 {object} IncomeDTO
// @Failure 400 {string} string "Bad Request"
// @Router /api/income [post]
// @Security BearerToken
func (handler *IncomeHandler) CreateIncome(w http.ResponseWriter, r *http.Request) {
	log.Debug("Creating new income")
	w.Header().Set("Content-Type", "application/json")
	var dto CreateIncomeRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	date, err := time.Parse("2006-01-02", dto.Date)
	if err != nil {
		http.Error(w, "invalid date, expected YYYY-MM-DD", http.StatusBadRequest)
		return
	}
	amount, err := money.Parse(dto.Amount)
	if err != nil {
		http.Error(w, "invalid amount", http.StatusBadRequest)
		return
	}

	created, err := handler.service.Create(r.Context(), Income{
		Date:   date,
		Source: dto.Source,
		Amount: amount,
		Note:   dto.Note,
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(IncomeToDTO(created)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// ListIncomes godoc
// @Summary List incomes
// @Tags Income
// @Produce json
// @Param from query string false "Start date (YYYY-MM-DD)"
// @Param to query string false "End date (YYYY-MM-DD)"
// @Success 200 {array} IncomeDTO
// @Router /api/income [get]
// @Security BearerToken
func (handler *IncomeHandler) ListIncomes(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	var from, to time.Time
	if value := r.URL.Query().Get("from"); value != "" {
		parsed, err := time.Parse("2006-01-02", value)
		if err != nil {
			http.Error(w, "invalid from date, expected YYYY-MM-DD", http.StatusBadRequest)
			return
		}
		from = parsed
	}
	if value := r.URL.Query().Get("to"); value != "" {
		parsed, err := time.Parse("2006-01-02", value)
		if err != nil {
			http.Error(w, "invalid to date, expected YYYY-MM-DD", http.StatusBadRequest)
			return
		}
		to = parsed
	}

	incomes, err := handler.service.Find(r.Context(), from, to)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	dtos := make([]IncomeDTO, 0, len(incomes))
	for _, income := range incomes {
		dtos = append(dtos, IncomeToDTO(income))
	}
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// DeleteIncome godoc
// @Summary Delete an income
// @Tags Income
// @Success 204 {string} string "No Content"
// @Failure 404 {string} string "Not Found"
// @Router /api/income/{id} [delete]
// @Security BearerToken
func (handler *IncomeHandler) DeleteIncome(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid income id", http.StatusBadRequest)
		return
	}
	if err := handler.service.Delete(r.Context(), id); err != nil {
		if errors.Is(err, ErrIncomeNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func IncomeToDTO(income Income) IncomeDTO {
	return IncomeDTO{
		Id:     income.ID,
		Date:   income.Date.Format("2006-01-02"),
		Source: income.Source,
		Amount: money.Format(income.Amount),
		Note:   income.Note,
	}
}
