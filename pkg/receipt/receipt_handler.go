package receipt

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"

	log "github.com/sirupsen/logrus"
	"github.com/smartspend/smartspend/internal/money"
)

type ScanRequestDTO struct {
	ImageBase64 string `json:"imageBase64"`
	// Extension hints the image type to the extractor, e.g. ".jpg".
	Extension string `json:"extension,omitempty"`
}

type ScanResultDTO struct {
	Date     string `json:"date,omitempty"`
	Merchant string `json:"merchant,omitempty"`
	Amount   string `json:"amount,omitempty"`
	RawText  string `json:"rawText,omitempty"`
}

type ReceiptHandler struct {
	scanner Scanner
}

func NewReceiptHandler(scanner Scanner) *ReceiptHandler {
	return &ReceiptHandler{scanner: scanner}
}

// ScanReceipt godoc
// @Summary Extract expense fields from a receipt image
// @Description Run OCR over the uploaded image and return the date, merchant and total it found
// @Tags Receipt
// @Accept json
// @Produce json
// @Success 200 {object} ScanResultDTO
// @Failure 400 {string} string "Bad Request"
// @Failure 422 {string} string "Scan failed"
// @Router /api/receipt/scan [post]
// @Security BearerToken
func (handler *ReceiptHandler) ScanReceipt(w http.ResponseWriter, r *http.Request) {
	log.Debug("Scanning receipt")
	w.Header().Set("Content-Type", "application/json")
	var dto ScanRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	image, err := base64.StdEncoding.DecodeString(dto.ImageBase64)
	if err != nil {
		http.Error(w, "invalid image encoding", http.StatusBadRequest)
		return
	}

	result, err := handler.scanner.Scan(r.Context(), image, dto.Extension)
	if err != nil {
		if errors.Is(err, ErrScanFailed) {
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	response := ScanResultDTO{
		Merchant: result.Merchant,
		RawText:  result.RawText,
	}
	if !result.Date.IsZero() {
		response.Date = result.Date.Format("2006-01-02")
	}
	if result.Amount > 0 {
		response.Amount = money.Format(result.Amount)
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}
