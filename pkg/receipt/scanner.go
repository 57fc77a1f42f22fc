package receipt

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/smartspend/smartspend/internal/money"
)

var ErrScanFailed = errors.New("receipt scan failed")

// ScanResult is what could be read off a receipt image. Zero values mean
// the extractor could not find that field.
type ScanResult struct {
	Date     time.Time
	Merchant string
	// Amount is the receipt total in cents, 0 when not found.
	Amount  int64
	RawText string
}

// extractorOutput is the JSON the OCR script prints on stdout.
type extractorOutput struct {
	Merchant string `json:"merchant"`
	Amount   string `json:"amount"`
	Date     string `json:"date"`
	RawText  string `json:"raw_text"`
	Error    string `json:"error"`
}

type Scanner interface {
	// Scan writes the image to a temporary file, runs the extractor over
	// it and normalizes the fields it found.
	Scan(ctx context.Context, image []byte, extension string) (ScanResult, error)
}

type ScannerImpl struct {
	runner Runner
}

func NewScanner(runner Runner) *ScannerImpl {
	return &ScannerImpl{runner: runner}
}

func (s *ScannerImpl) Scan(ctx context.Context, image []byte, extension string) (ScanResult, error) {
	if len(image) == 0 {
		return ScanResult{}, fmt.Errorf("%w: empty image", ErrScanFailed)
	}
	if extension == "" {
		extension = ".jpg"
	}

	tmpFile, err := os.CreateTemp("", "receipt-*"+extension)
	if err != nil {
		return ScanResult{}, fmt.Errorf("could not create temp file: %w", err)
	}
	defer os.Remove(tmpFile.Name())

	if _, err := tmpFile.Write(image); err != nil {
		tmpFile.Close()
		return ScanResult{}, fmt.Errorf("could not write temp file: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return ScanResult{}, fmt.Errorf("could not close temp file: %w", err)
	}

	stdout, stderr, err := s.runner.Run(ctx, tmpFile.Name())
	if len(stderr) > 0 {
		log.Debugf("OCR extractor stderr: %s", strings.TrimSpace(string(stderr)))
	}
	if err != nil {
		log.Errorf("OCR extractor failed: %v", err)
		return ScanResult{}, fmt.Errorf("%w: %v", ErrScanFailed, err)
	}

	var output extractorOutput
	if err := json.Unmarshal(stdout, &output); err != nil {
		return ScanResult{}, fmt.Errorf("%w: unreadable extractor output: %v", ErrScanFailed, err)
	}
	if output.Error != "" {
		return ScanResult{}, fmt.Errorf("%w: %s", ErrScanFailed, output.Error)
	}

	result := ScanResult{
		Merchant: strings.TrimSpace(output.Merchant),
		RawText:  output.RawText,
	}
	if output.Date != "" {
		if date, ok := NormalizeDate(output.Date); ok {
			result.Date = date
		} else {
			log.Warnf("Could not normalize receipt date %q", output.Date)
		}
	}
	if output.Amount != "" {
		if amount, err := money.Parse(output.Amount); err == nil {
			result.Amount = amount
		} else {
			log.Warnf("Could not parse receipt amount %q", output.Amount)
		}
	}
	return result, nil
}

var dateLayouts = []string{
	"2006-01-02",
	"02/01/2006",
	"02-01-2006",
	"01/02/2006",
	"02.01.2006",
	"2006/01/02",
}

var looseDatePattern = regexp.MustCompile(`^(\d{1,2})[/.-](\d{1,2})[/.-](\d{2,4})$`)

// NormalizeDate parses the date strings receipts commonly carry.
// Day-first forms win over month-first ones when both would fit.
func NormalizeDate(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	for _, layout := range dateLayouts {
		if date, err := time.Parse(layout, value); err == nil {
			return date, true
		}
	}

	match := looseDatePattern.FindStringSubmatch(value)
	if match == nil {
		return time.Time{}, false
	}
	day, _ := strconv.Atoi(match[1])
	month, _ := strconv.Atoi(match[2])
	year, _ := strconv.Atoi(match[3])
	if year < 100 {
		year += 2000
	}
	if month > 12 && day <= 12 {
		day, month = month, day
	}
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, false
	}
	date := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if date.Day() != day {
		// The day overflowed the month, e.g. 31/02.
		return time.Time{}, false
	}
	return date, true
}
