package betboard

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// ParseNumber reads a ledger number like "1,200.50" or "$300".
//
// Thousands separators and a leading dollar sign are ignored. Empty or
// unparseable text is 0, never an error.
func ParseNumber(text string) float64 {
	s := strings.TrimSpace(text)
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimPrefix(s, "$")
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0
	}
	return finite(d.InexactFloat64())
}

// parseQuantity is ParseNumber clamped to non-negative values.
func parseQuantity(text string) float64 {
	q := ParseNumber(text)
	if q < 0 {
		return 0
	}
	return q
}

// mul multiplies with decimal precision, so 0.1 BTC at 30000 is exactly 3000.
func mul(a, b float64) float64 {
	a, b = finite(a), finite(b)
	if a == 0 || b == 0 {
		return 0
	}
	return finite(decimal.NewFromFloat(a).Mul(decimal.NewFromFloat(b)).InexactFloat64())
}

// finite maps NaN and infinities to 0.
func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
