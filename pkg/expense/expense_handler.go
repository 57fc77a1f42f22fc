package expense

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"github.com/smartspend/smartspend/internal/money"
	"github.com/smartspend/smartspend/internal/rest"
	"github.com/smartspend/smartspend/internal/utils"
)

type ExpenseDTO struct {
	Id         int    `json:"id"`
	Date       string `json:"date"`
	Category   string `json:"category"`
	Amount     string `json:"amount"`
	Note       string `json:"note,omitempty"`
	HasReceipt bool   `json:"hasReceipt"`
}

type CreateExpenseRequestDTO struct {
	Date     string `json:"date"`
	Category string `json:"category"`
	Amount   string `json:"amount"`
	Note     string `json:"note,omitempty"`
	// ReceiptBase64 optionally attaches a receipt image to the expense.
	ReceiptBase64 string `json:"receiptBase64,omitempty"`
	ReceiptType   string `json:"receiptType,omitempty"`
}

type ExpenseListDTO struct {
	Expenses []ExpenseDTO `json:"expenses"`
	Total    string       `json:"total"`
}

type ExpenseHandler struct {
	service ExpenseService
	clock   utils.Clock
}

func NewExpenseHandler(service ExpenseService, clock utils.Clock) *ExpenseHandler {
	return &ExpenseHandler{service: service, clock: clock}
}

// CreateExpense godoc
// @Summary Record an expense
// @Description Store an expense, optionally with a base64-encoded receipt image
// @Tags Expense
// @Accept json
// @Produce json
// @Success 201 {object} ExpenseDTO
// @Failure 400 {string} string "Bad Request"
// @Router /api/expense [post]
// @Security BearerToken
func (handler *ExpenseHandler) CreateExpense(w http.ResponseWriter, r *http.Request) {
	log.Debug("Creating new expense")
	w.Header().Set("Content-Type", "application/json")
	var dto CreateExpenseRequestDTO
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

	var receipt *Receipt
	if dto.ReceiptBase64 != "" {
		data, err := base64.StdEncoding.DecodeString(dto.ReceiptBase64)
		if err != nil {
			http.Error(w, "invalid receipt encoding", http.StatusBadRequest)
			return
		}
		receipt = &Receipt{Data: data, MimeType: dto.ReceiptType}
	}

	created, err := handler.service.Create(r.Context(), Expense{
		Date:     date,
		Category: dto.Category,
		Amount:   amount,
		Note:     dto.Note,
	}, receipt)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(ExpenseToDTO(created)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// ListExpenses godoc
// @Summary List expenses
// @Description List expenses with optional range, category, keyword and amount filters
// @Tags Expense
// @Produce json
// @Param range query string false "month, last_month, year, custom or all"
// @Param from query string false "Start date (YYYY-MM-DD), with range=custom"
// @Param to query string false "End date (YYYY-MM-DD), with range=custom"
// @Param category query string false "Category filter"
// @Param keyword query string false "Substring match over category and note"
// @Param amin query string false "Minimum amount"
// @Param amax query string false "Maximum amount"
// @Success 200 {object} ExpenseListDTO
// @Router /api/expense [get]
// @Security BearerToken
func (handler *ExpenseHandler) ListExpenses(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	filter, err := handler.filterFromQuery(r)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		encodeErr := json.NewEncoder(w).Encode(rest.ErrorResponse{
			Error:   "Invalid filter",
			Details: err.Error(),
		})
		if encodeErr != nil {
			http.Error(w, encodeErr.Error(), http.StatusInternalServerError)
			return
		}
		return
	}

	expenses, err := handler.service.Find(r.Context(), filter)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	var total int64
	dtos := make([]ExpenseDTO, 0, len(expenses))
	for _, e := range expenses {
		total += e.Amount
		dtos = append(dtos, ExpenseToDTO(e))
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(ExpenseListDTO{Expenses: dtos, Total: money.Format(total)}); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (handler *ExpenseHandler) filterFromQuery(r *http.Request) (Filter, error) {
	query := r.URL.Query()
	var filter Filter

	today := handler.clock.Now()
	switch query.Get("range") {
	case "month":
		filter.From = time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC)
		filter.To = filter.From.AddDate(0, 1, -1)
	case "last_month":
		firstOfMonth := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC)
		filter.From = firstOfMonth.AddDate(0, -1, 0)
		filter.To = firstOfMonth.AddDate(0, 0, -1)
	case "year":
		filter.From = time.Date(today.Year(), 1, 1, 0, 0, 0, 0, time.UTC)
		filter.To = time.Date(today.Year(), 12, 31, 0, 0, 0, 0, time.UTC)
	case "custom":
		if from := query.Get("from"); from != "" {
			parsed, err := time.Parse("2006-01-02", from)
			if err != nil {
				return Filter{}, errors.New("invalid from date, expected YYYY-MM-DD")
			}
			filter.From = parsed
		}
		if to := query.Get("to"); to != "" {
			parsed, err := time.Parse("2006-01-02", to)
			if err != nil {
				return Filter{}, errors.New("invalid to date, expected YYYY-MM-DD")
			}
			filter.To = parsed
		}
	}

	filter.Category = query.Get("category")
	filter.Keyword = query.Get("keyword")
	if amin := query.Get("amin"); amin != "" {
		parsed, err := money.Parse(amin)
		if err != nil {
			return Filter{}, errors.New("invalid minimum amount")
		}
		filter.MinAmount = &parsed
	}
	if amax := query.Get("amax"); amax != "" {
		parsed, err := money.Parse(amax)
		if err != nil {
			return Filter{}, errors.New("invalid maximum amount")
		}
		filter.MaxAmount = &parsed
	}
	return filter, nil
}

// GetExpense godoc
// @Summary Get a single expense
// @Tags Expense
// @Produce json
// @Success 200 {object} ExpenseDTO
// @Failure 404 {string} string "Not Found"
// @Router /api/expense/{id} [get]
// @Security BearerToken
func (handler *ExpenseHandler) GetExpense(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid expense id", http.StatusBadRequest)
		return
	}
	expense, err := handler.service.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrExpenseNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(ExpenseToDTO(expense)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// DeleteExpense godoc
// @Summary Delete an expense
// @Tags Expense
// @Success 204 {string} string "No Content"
// @Failure 404 {string} string "Not Found"
// @Router /api/expense/{id} [delete]
// @Security BearerToken
func (handler *ExpenseHandler) DeleteExpense(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid expense id", http.StatusBadRequest)
		return
	}
	if err := handler.service.Delete(r.Context(), id); err != nil {
		if errors.Is(err, ErrExpenseNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetReceipt godoc
// @Summary Download the receipt image attached to an expense
// @Tags Expense
// @Produce octet-stream
// @Success 200 {file} binary
// @Failure 404 {string} string "Not Found"
// @Router /api/expense/{id}/receipt [get]
// @Security BearerToken
func (handler *ExpenseHandler) GetReceipt(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid expense id", http.StatusBadRequest)
		return
	}
	receipt, err := handler.service.GetReceipt(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrExpenseNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	mimeType := receipt.MimeType
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}
	w.Header().Set("Content-Type", mimeType)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(receipt.Data); err != nil {
		log.Errorf("Failed to write receipt response: %v", err)
	}
}

// ListCategories godoc
// @Summary List the categories the user has spent in
// @Tags Expense
// @Produce json
// @Success 200 {array} string
// @Router /api/expense/categories [get]
// @Security BearerToken
func (handler *ExpenseHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	categories, err := handler.service.Categories(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if categories == nil {
		categories = []string{}
	}
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(categories); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func ExpenseToDTO(e Expense) ExpenseDTO {
	return ExpenseDTO{
		Id:         e.ID,
		Date:       e.Date.Format("2006-01-02"),
		Category:   e.Category,
		Amount:     money.Format(e.Amount),
		Note:       e.Note,
		HasReceipt: e.HasReceipt,
	}
}
