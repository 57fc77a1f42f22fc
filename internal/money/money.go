package money

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// Amounts are carried as integer cents everywhere; formatting to two decimal
// places happens only at the display boundary.

var ErrInvalidAmount = errors.New("invalid amount")

// Parse converts a decimal string to cents. It accepts both dot (12.34) and
// comma (12,34) decimal separators, strips RM/MYR/$ currency markers and
// thousands separators, and performs half-up rounding on the third decimal.
// Negative values are rejected.
func Parse(s string) (int64, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	for _, marker := range []string{"RM", "MYR", "$", " "} {
		s = strings.ReplaceAll(s, marker, "")
	}
	if s == "" {
		return 0, ErrInvalidAmount
	}
	if strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-") {
		return 0, ErrInvalidAmount
	}
	// A single comma followed by exactly two digits is a decimal comma;
	// any other comma is a thousands separator.
	if idx := strings.Index(s, ","); idx != -1 && !strings.Contains(s, ".") && len(s)-idx-1 == 2 && strings.Count(s, ",") == 1 {
		s = strings.Replace(s, ",", ".", 1)
	}
	s = strings.ReplaceAll(s, ",", "")

	parts := strings.Split(s, ".")
	if len(parts) > 2 {
		return 0, ErrInvalidAmount
	}
	intPart := parts[0]
	fracPart := ""
	if len(parts) == 2 {
		fracPart = parts[1]
	}
	if intPart == "" {
		intPart = "0"
	}
	for _, r := range intPart + fracPart {
		if !unicode.IsDigit(r) {
			return 0, ErrInvalidAmount
		}
	}

	iv, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return 0, ErrInvalidAmount
	}
	const maxSafeInt64 = (1<<63 - 1) / 100
	if iv > maxSafeInt64 {
		return 0, ErrInvalidAmount
	}

	var fracCents int64
	if len(fracPart) > 0 {
		fracCents = int64(fracPart[0]-'0') * 10
		if len(fracPart) > 1 {
			fracCents += int64(fracPart[1] - '0')
			if len(fracPart) > 2 && fracPart[2] >= '5' {
				fracCents++
			}
		}
	}
	return iv*100 + fracCents, nil
}

// Format renders cents as a plain decimal string with two decimal places.
func Format(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
}
