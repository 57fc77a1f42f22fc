package income

import (
	"errors"
	"time"
)

var ErrIncomeNotFound = errors.New("income not found")

type Income struct {
	ID     int
	Date   time.Time
	Source string
	// Amount is the income value in cents.
	Amount int64
	Note   string
}
