package expense

import (
	"errors"
	"time"
)

var ErrExpenseNotFound = errors.New("expense not found")

type Expense struct {
	ID       int
	Date     time.Time
	Category string
	// Amount is the expense value in cents.
	Amount int64
	Note   string
	// HasReceipt reports whether a receipt blob is stored for this expense.
	HasReceipt bool
}

// Receipt is the stored scan of a paper receipt.
type Receipt struct {
	Data     []byte
	MimeType string
}

// Filter narrows a listing of expenses. Zero time values leave the
// corresponding bound open; nil amount bounds are ignored.
type Filter struct {
	From time.Time
	To   time.Time
	// Category matches exactly, except "Other" which matches any category
	// starting with "Other" (legacy custom categories are stored as "Other: ...").
	Category  string
	Keyword   string
	MinAmount *int64
	MaxAmount *int64
}

type CategorySum struct {
	Category string
	// Total in cents.
	Total int64
}
