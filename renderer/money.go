package renderer

import (
	"math"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Currency of every value in the dashboard.
const Currency = "USD"

// Money formats a USD amount like "$1,200.00".
func Money(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		v = 0
	}
	// money.New never returns a nil currency, even for an unknown code.
	cur := money.New(0, Currency).Currency()
	minor := decimal.NewFromFloat(v).Shift(int32(cur.Fraction)).Round(0)
	return cur.Formatter().Format(minor.IntPart())
}

// Share formats value as a percentage of total with one decimal, "0.0%" when total is not positive.
func Share(value, total float64) string {
	return decimal.NewFromFloat(percent(value, total)).StringFixed(1) + "%"
}
