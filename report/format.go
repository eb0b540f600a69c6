package report

import (
	"math"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// Money formats v with exactly two decimals. Values that round to zero are
// printed without a sign.
func Money(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return strconv.FormatFloat(v, 'f', 2, 64)
	}
	return decimal.NewFromFloat(v).StringFixed(2)
}

// Amount formats an input amount the way it was typed: no forced decimals.
func Amount(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	return decimal.NewFromFloat(v).String()
}

func Term(months int) string {
	return strconv.Itoa(months)
}

func Date(t time.Time, layout string) string {
	if layout == "" {
		layout = "2006-01-02"
	}
	return t.Format(layout)
}
